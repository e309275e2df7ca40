// Package viewmodel holds the template-facing shapes shared by every page.
package viewmodel

// User represents the signed-in user as shown in the shell.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	RoleLabel string
	Avatar    string
	Initials  string
}

// NavItem is one sidebar entry.
type NavItem struct {
	ID     string
	Label  string
	Icon   string
	Href   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, flash messages).
type Layout struct {
	Title      string
	PageTitle  string
	SchoolName string
	Section    string
	CSRFToken  string
	// Notice is a one-shot flash shown above the content.
	Notice string
	// Error is shown instead of the content when the screen could not load.
	Error string
	User  *User
	Nav   []NavItem
}

// LayoutData implements LayoutProvider.
func (l *Layout) LayoutData() *Layout { return l }

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
