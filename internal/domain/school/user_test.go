package school

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("Admin").Valid())
	assert.False(t, Role("guest").Valid())
}

func TestFindByEmail(t *testing.T) {
	users := []User{
		{ID: "1", Email: "a@x.edu", Role: RoleAdmin},
		{ID: "2", Email: "b@x.edu", Role: RoleTeacher},
		{ID: "3", Email: "a@x.edu", Role: RoleStudent},
	}

	tests := []struct {
		name   string
		email  string
		wantID string
		wantOK bool
	}{
		{name: "first match wins", email: "a@x.edu", wantID: "1", wantOK: true},
		{name: "exact match", email: "b@x.edu", wantID: "2", wantOK: true},
		{name: "case sensitive", email: "A@x.edu", wantOK: false},
		{name: "no trimming", email: " a@x.edu", wantOK: false},
		{name: "empty", email: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := FindByEmail(users, tt.email)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, u.ID)
		})
	}
}

func TestUserHelpers(t *testing.T) {
	parent := User{ID: "p1", Role: RoleParent, Children: []string{"s1", "s2"}}
	assert.True(t, parent.HasChild("s2"))
	assert.False(t, parent.HasChild("s3"))
	assert.True(t, parent.IsActive())
	assert.False(t, User{Status: StatusInactive}.IsActive())

	users := []User{parent, {ID: "s1", Role: RoleStudent}, {ID: "s2", Role: RoleStudent}}
	students := FilterByRole(users, RoleStudent)
	assert.Len(t, students, 2)
	assert.Equal(t, "s1", students[0].ID)
	assert.Contains(t, IndexByID(users), "p1")
}
