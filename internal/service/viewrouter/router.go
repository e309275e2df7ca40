package viewrouter

import "github.com/Digmusic88/mundo-world-school/internal/domain/school"

// Screen identifies a renderable screen. Several sections may share one
// screen (messaging is the same for every role).
type Screen string

const (
	ScreenAdminDashboard     Screen = "admin-dashboard"
	ScreenUserManagement     Screen = "user-management"
	ScreenGroupManagement    Screen = "group-management"
	ScreenStatistics         Screen = "statistics"
	ScreenMessaging          Screen = "messaging"
	ScreenTeacherDashboard   Screen = "teacher-dashboard"
	ScreenTeacherActivities  Screen = "teacher-activities"
	ScreenTeacherGrades      Screen = "teacher-grades"
	ScreenTeacherAttendance  Screen = "teacher-attendance"
	ScreenParentDashboard    Screen = "parent-dashboard"
	ScreenChildrenGrades     Screen = "children-grades"
	ScreenChildrenAttendance Screen = "children-attendance"
	ScreenParentFinances     Screen = "parent-finances"
	ScreenStudentDashboard   Screen = "student-dashboard"
	ScreenStudentGrades      Screen = "student-grades"
	ScreenStudentActivities  Screen = "student-activities"
	ScreenPlaceholder        Screen = "placeholder"
)

// Descriptor is what the shell needs to render a section. Section is the
// resolved section, so a fallback reports DefaultSection. Title is the
// section heading; for placeholders it is the name shown on the
// "under development" card.
type Descriptor struct {
	Role        school.Role `json:"role"`
	Section     string      `json:"section"`
	Screen      Screen      `json:"screen"`
	Title       string      `json:"title"`
	Placeholder bool        `json:"placeholder"`
	Dashboard   bool        `json:"dashboard"`
}

// route is one registry row. An empty screen marks a section that has a
// nav entry but no implementation yet.
type route struct {
	screen Screen
	title  string
}

var registry = map[school.Role]map[string]route{
	school.RoleAdmin: {
		"dashboard":  {screen: ScreenAdminDashboard, title: "Dashboard"},
		"users":      {screen: ScreenUserManagement, title: "Gestión de Usuarios"},
		"groups":     {screen: ScreenGroupManagement, title: "Gestión de Grupos"},
		"attendance": {title: "Control de Asistencia"},
		"finances":   {title: "Panel de Finanzas"},
		"statistics": {screen: ScreenStatistics, title: "Estadísticas"},
		"messages":   {screen: ScreenMessaging, title: "Mensajería"},
		"settings":   {title: "Configuración"},
	},
	school.RoleTeacher: {
		"dashboard":   {screen: ScreenTeacherDashboard, title: "Dashboard"},
		"subjects":    {title: "Asignaturas"},
		"groups":      {title: "Mis Grupos"},
		"students":    {title: "Estudiantes"},
		"activities":  {screen: ScreenTeacherActivities, title: "Actividades"},
		"evaluations": {title: "Prove Yourself"},
		"grades":      {screen: ScreenTeacherGrades, title: "Calificaciones"},
		"attendance":  {screen: ScreenTeacherAttendance, title: "Asistencia"},
		"messages":    {screen: ScreenMessaging, title: "Comunicación"},
	},
	school.RoleParent: {
		"dashboard":  {screen: ScreenParentDashboard, title: "Dashboard"},
		"children":   {title: "Mis Hijos"},
		"grades":     {screen: ScreenChildrenGrades, title: "Calificaciones"},
		"attendance": {screen: ScreenChildrenAttendance, title: "Asistencia"},
		"messages":   {screen: ScreenMessaging, title: "Comunicación"},
		"schedule":   {title: "Horarios"},
		"activities": {title: "Actividades"},
		"finances":   {screen: ScreenParentFinances, title: "Finanzas"},
	},
	school.RoleStudent: {
		"dashboard":  {screen: ScreenStudentDashboard, title: "Mi Dashboard"},
		"grades":     {screen: ScreenStudentGrades, title: "Mis Calificaciones"},
		"schedule":   {title: "Mi Horario"},
		"activities": {screen: ScreenStudentActivities, title: "Mis Actividades"},
		"attendance": {title: "Mi Asistencia"},
		"messages":   {screen: ScreenMessaging, title: "Mensajes"},
		"resources":  {title: "Recursos"},
	},
}

// unknownRoleTitle is shown when the role has no registry at all.
const unknownRoleTitle = "Contenido"

// Resolve maps (role, section) to a descriptor. A section the role does not
// map, including "", resolves exactly as DefaultSection does.
func Resolve(role school.Role, section string) Descriptor {
	routes, ok := registry[role]
	if !ok {
		return Descriptor{
			Role:        role,
			Section:     DefaultSection,
			Screen:      ScreenPlaceholder,
			Title:       unknownRoleTitle,
			Placeholder: true,
		}
	}

	r, ok := routes[section]
	if !ok {
		section = DefaultSection
		r = routes[section]
	}

	d := Descriptor{
		Role:      role,
		Section:   section,
		Screen:    r.screen,
		Title:     r.title,
		Dashboard: section == DefaultSection,
	}
	if d.Screen == "" {
		d.Screen = ScreenPlaceholder
		d.Placeholder = true
	}
	return d
}
