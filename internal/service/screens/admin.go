package screens

import (
	"context"
	"slices"
	"sort"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

// UserManagement lists directory users matching the query.
type UserManagement struct {
	Query    Query
	Users    []school.User
	Total    int
	ByRole   map[school.Role]int
	Inactive int
}

// RoleCount returns how many directory users hold role.
func (m UserManagement) RoleCount(role string) int { return m.ByRole[school.Role(role)] }

func (s *Service) userManagement(ctx context.Context, _ school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needUsers)
	if err != nil {
		return nil, err
	}
	m := UserManagement{
		Query:  q,
		Users:  make([]school.User, 0, len(c.users)),
		Total:  len(c.users),
		ByRole: make(map[school.Role]int, len(school.Roles)),
	}
	for _, u := range c.users {
		m.ByRole[u.Role]++
		if !u.IsActive() {
			m.Inactive++
		}
		if !containsFold(q.Search, u.Name, u.Email) {
			continue
		}
		if !matches(q.Role, string(u.Role)) {
			continue
		}
		status := u.Status
		if status == "" {
			status = school.StatusActive
		}
		if !matches(q.Status, string(status)) {
			continue
		}
		m.Users = append(m.Users, u)
	}
	return m, nil
}

// GroupRow is one group with its enrolled students resolved.
type GroupRow struct {
	Group    school.Group
	Students []school.User
}

// GroupManagement lists groups matching the query.
type GroupManagement struct {
	Query            Query
	Groups           []GroupRow
	GradeLevels      []string
	Teachers         []school.User
	TotalGroups      int
	AssignedStudents int
	// Unassigned are students enrolled in no group.
	Unassigned []school.User
}

func (s *Service) groupManagement(ctx context.Context, _ school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needGroups)
	if err != nil {
		return nil, err
	}
	students := school.FilterByRole(c.users, school.RoleStudent)
	byID := school.IndexByID(students)

	m := GroupManagement{
		Query:       q,
		Groups:      make([]GroupRow, 0, len(c.groups)),
		Teachers:    school.FilterByRole(c.users, school.RoleTeacher),
		TotalGroups: len(c.groups),
	}
	levels := make(map[string]struct{})
	for _, g := range c.groups {
		levels[g.Grade] = struct{}{}
		m.AssignedStudents += len(g.Students)
		if !containsFold(q.Search, g.Name, g.TeacherName) || !matches(q.Grade, g.Grade) {
			continue
		}
		row := GroupRow{Group: g, Students: make([]school.User, 0, len(g.Students))}
		for _, id := range g.Students {
			if u, ok := byID[id]; ok {
				row.Students = append(row.Students, u)
			}
		}
		m.Groups = append(m.Groups, row)
	}
	for level := range levels {
		m.GradeLevels = append(m.GradeLevels, level)
	}
	sort.Strings(m.GradeLevels)

	for _, u := range students {
		enrolled := slices.ContainsFunc(c.groups, func(g school.Group) bool { return g.HasStudent(u.ID) })
		if !enrolled {
			m.Unassigned = append(m.Unassigned, u)
		}
	}
	return m, nil
}

// GradeBands buckets grades by score.
type GradeBands struct {
	Total            int
	Average          float64
	Excellent        int // >= 90
	Good             int // 80-89
	Satisfactory     int // 70-79
	NeedsImprovement int // < 70
}

// Statistics is the admin metrics panel.
type Statistics struct {
	Users struct {
		Total, Students, Teachers, Parents, Admins int
	}
	Groups     int
	Grades     GradeBands
	Attendance Tally
	Finance    MoneyTotals
	Activities ActivityCounts
	Messages   struct {
		Total, Read, Unread int
	}
}

func (s *Service) statistics(ctx context.Context, _ school.User, _ Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needGroups|needGrades|needAttendance|needActivities|needPayments|needMessages)
	if err != nil {
		return nil, err
	}
	var st Statistics
	st.Users.Total = len(c.users)
	st.Users.Students = len(school.FilterByRole(c.users, school.RoleStudent))
	st.Users.Teachers = len(school.FilterByRole(c.users, school.RoleTeacher))
	st.Users.Parents = len(school.FilterByRole(c.users, school.RoleParent))
	st.Users.Admins = len(school.FilterByRole(c.users, school.RoleAdmin))
	st.Groups = len(c.groups)

	st.Grades = bandGrades(c.grades)
	st.Attendance = tallyAttendance(c.attendance, 0)
	st.Finance = sumPayments(c.payments)
	st.Activities = countActivities(c.activities, s.today())

	st.Messages.Total = len(c.messages)
	for _, m := range c.messages {
		if m.Status == school.MessageUnread {
			st.Messages.Unread++
		} else {
			st.Messages.Read++
		}
	}
	return st, nil
}

func bandGrades(grades []school.Grade) GradeBands {
	b := GradeBands{Total: len(grades), Average: averageGrade(grades)}
	for _, g := range grades {
		switch {
		case g.Grade >= 90:
			b.Excellent++
		case g.Grade >= 80:
			b.Good++
		case g.Grade >= 70:
			b.Satisfactory++
		default:
			b.NeedsImprovement++
		}
	}
	return b
}
