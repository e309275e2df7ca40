// Package school holds the record types of the campus portal: users and the
// peripheral collections (groups, grades, attendance, activities, payments,
// messages) that management screens read.
package school

import "slices"

// Role is the closed set of portal roles. The string form is what the
// directory stores and what the session slot serializes.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
	RoleStudent Role = "student"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleTeacher, RoleParent, RoleStudent}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// Status is a user's account status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is a directory record. Email is the sign-in key and is expected to be
// unique within a directory. Role is fixed for the lifetime of a session.
type User struct {
	ID        string `json:"id"         validate:"required"`
	Name      string `json:"name"       validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Role      Role   `json:"role"       validate:"required,oneof=admin teacher parent student"`
	Phone     string `json:"phone,omitempty"`
	Status    Status `json:"status"     validate:"omitempty,oneof=active inactive"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	LastLogin string `json:"last_login,omitempty"`

	// Role-specific attachments.
	Subjects  []string `json:"subjects,omitempty"`
	Groups    []string `json:"groups,omitempty"`
	Children  []string `json:"children,omitempty"`
	Group     string   `json:"group,omitempty"`
	Grade     string   `json:"grade,omitempty"`
	ParentID  string   `json:"parent_id,omitempty"`
	BirthDate string   `json:"birth_date,omitempty"`
	StudentID string   `json:"student_id,omitempty"`
}

// IsActive reports whether the account is active. An empty status counts as active.
func (u User) IsActive() bool { return u.Status != StatusInactive }

// HasChild reports whether id is listed among the user's children.
func (u User) HasChild(id string) bool { return slices.Contains(u.Children, id) }

// FindByEmail returns the first user whose email equals email exactly
// (case-sensitive). Collection order breaks ties.
func FindByEmail(users []User, email string) (User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

// FilterByRole returns the users holding role, preserving order.
func FilterByRole(users []User, role Role) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// IndexByID maps user ids to records.
func IndexByID(users []User) map[string]User {
	idx := make(map[string]User, len(users))
	for _, u := range users {
		idx[u.ID] = u
	}
	return idx
}
