// Package viewrouter maps a role and a section identifier to the screen the
// shell renders, and a role to its sidebar navigation.
//
// The tables here are configuration data. Lookups never fail: an unknown
// section falls back to the role's dashboard and an unknown role yields an
// empty navigation and a generic placeholder screen.
package viewrouter

import "github.com/Digmusic88/mundo-world-school/internal/domain/school"

// DefaultSection is the home section every role falls back to.
const DefaultSection = "dashboard"

// Icon names a sidebar or tile glyph. The value is the icon's CSS class suffix.
type Icon string

const (
	IconHome          Icon = "home"
	IconUsers         Icon = "users"
	IconBookOpen      Icon = "book-open"
	IconUserCheck     Icon = "user-check"
	IconDollarSign    Icon = "dollar-sign"
	IconBarChart      Icon = "bar-chart"
	IconMessageSquare Icon = "message-square"
	IconSettings      Icon = "settings"
	IconTrendingUp    Icon = "trending-up"
	IconAward         Icon = "award"
	IconCalendar      Icon = "calendar"
	IconPlus          Icon = "plus"
)

// NavEntry is one sidebar item.
type NavEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  Icon   `json:"icon"`
}

var navigation = map[school.Role][]NavEntry{
	school.RoleAdmin: {
		{ID: "dashboard", Label: "Dashboard", Icon: IconHome},
		{ID: "users", Label: "Gestión de Usuarios", Icon: IconUsers},
		{ID: "groups", Label: "Gestión de Grupos", Icon: IconBookOpen},
		{ID: "attendance", Label: "Control de Asistencia", Icon: IconUserCheck},
		{ID: "finances", Label: "Panel de Finanzas", Icon: IconDollarSign},
		{ID: "statistics", Label: "Estadísticas", Icon: IconBarChart},
		{ID: "messages", Label: "Mensajería", Icon: IconMessageSquare},
		{ID: "settings", Label: "Configuración", Icon: IconSettings},
	},
	school.RoleTeacher: {
		{ID: "dashboard", Label: "Dashboard", Icon: IconHome},
		{ID: "subjects", Label: "Asignaturas", Icon: IconBookOpen},
		{ID: "groups", Label: "Mis Grupos", Icon: IconUsers},
		{ID: "students", Label: "Estudiantes", Icon: IconUsers},
		{ID: "activities", Label: "Actividades", Icon: IconBookOpen},
		{ID: "evaluations", Label: "Prove Yourself", Icon: IconBarChart},
		{ID: "grades", Label: "Calificaciones", Icon: IconBarChart},
		{ID: "attendance", Label: "Asistencia", Icon: IconUserCheck},
		{ID: "messages", Label: "Comunicación", Icon: IconMessageSquare},
	},
	school.RoleParent: {
		{ID: "dashboard", Label: "Dashboard", Icon: IconHome},
		{ID: "children", Label: "Mis Hijos", Icon: IconUsers},
		{ID: "grades", Label: "Calificaciones", Icon: IconBarChart},
		{ID: "attendance", Label: "Asistencia", Icon: IconUserCheck},
		{ID: "messages", Label: "Comunicación", Icon: IconMessageSquare},
		{ID: "schedule", Label: "Horarios", Icon: IconBookOpen},
		{ID: "activities", Label: "Actividades", Icon: IconBookOpen},
		{ID: "finances", Label: "Finanzas", Icon: IconDollarSign},
	},
	school.RoleStudent: {
		{ID: "dashboard", Label: "Mi Dashboard", Icon: IconHome},
		{ID: "grades", Label: "Mis Calificaciones", Icon: IconBarChart},
		{ID: "schedule", Label: "Mi Horario", Icon: IconBookOpen},
		{ID: "activities", Label: "Mis Actividades", Icon: IconBookOpen},
		{ID: "attendance", Label: "Mi Asistencia", Icon: IconUserCheck},
		{ID: "messages", Label: "Mensajes", Icon: IconMessageSquare},
		{ID: "resources", Label: "Recursos", Icon: IconBookOpen},
	},
}

// NavigationFor returns the role's sidebar entries in display order. The
// result is a fresh slice; callers may modify it. An unrecognized role gets
// an empty, non-nil slice.
func NavigationFor(role school.Role) []NavEntry {
	entries := navigation[role]
	out := make([]NavEntry, len(entries))
	copy(out, entries)
	return out
}

var roleLabels = map[school.Role]string{
	school.RoleAdmin:   "Administrador",
	school.RoleTeacher: "Profesor",
	school.RoleParent:  "Padre",
	school.RoleStudent: "Estudiante",
}

// RoleLabel returns the display name of role, or the raw value when unknown.
func RoleLabel(role school.Role) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return string(role)
}

// HeaderTitle returns the label of the active section's nav entry, or
// "Dashboard" when section is not in the role's navigation.
func HeaderTitle(role school.Role, section string) string {
	for _, e := range navigation[role] {
		if e.ID == section {
			return e.Label
		}
	}
	return "Dashboard"
}
