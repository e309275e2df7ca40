package screens

import (
	"context"
	"slices"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

// Mailbox tabs.
const (
	TabInbox = "inbox"
	TabSent  = "sent"
)

// recipientRoles lists who each role may write to.
var recipientRoles = map[school.Role][]school.Role{
	school.RoleAdmin:   school.Roles,
	school.RoleTeacher: {school.RoleAdmin, school.RoleParent, school.RoleStudent},
	school.RoleParent:  {school.RoleAdmin, school.RoleTeacher},
	school.RoleStudent: {school.RoleAdmin, school.RoleTeacher},
}

// Messaging is the shared mailbox screen.
type Messaging struct {
	Query      Query
	Tab        string
	Inbox      int
	Sent       int
	Unread     int
	Messages   []school.Message
	Recipients []school.User
}

func (s *Service) messaging(ctx context.Context, me school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needMessages)
	if err != nil {
		return nil, err
	}
	tab := q.Tab
	if tab != TabSent {
		tab = TabInbox
	}
	m := Messaging{Query: q, Tab: tab, Messages: make([]school.Message, 0)}
	for _, msg := range c.messages {
		inbox := msg.ToID == me.ID
		sent := msg.FromID == me.ID
		if inbox {
			m.Inbox++
			if msg.Status == school.MessageUnread {
				m.Unread++
			}
		}
		if sent {
			m.Sent++
		}
		if (tab == TabInbox && !inbox) || (tab == TabSent && !sent) {
			continue
		}
		if !containsFold(q.Search, msg.Subject, msg.Content, msg.FromName) {
			continue
		}
		m.Messages = append(m.Messages, msg)
	}
	m.Recipients = Recipients(c.users, me)
	return m, nil
}

// Recipients returns the users me may write to, never including me.
func Recipients(users []school.User, me school.User) []school.User {
	allowed := recipientRoles[me.Role]
	out := make([]school.User, 0, len(users))
	for _, u := range users {
		if u.ID == me.ID {
			continue
		}
		if slices.Contains(allowed, u.Role) {
			out = append(out, u)
		}
	}
	return out
}
