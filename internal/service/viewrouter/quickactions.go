package viewrouter

import "github.com/Digmusic88/mundo-world-school/internal/domain/school"

// QuickAction is a dashboard tile that navigates to Section when activated.
type QuickAction struct {
	Section     string `json:"section"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
}

var quickActions = map[school.Role][]QuickAction{
	school.RoleAdmin: {
		{Section: "users", Title: "Gestión de Usuarios", Description: "Administrar estudiantes, profesores y padres", Icon: IconUsers},
		{Section: "groups", Title: "Grupos y Clases", Description: "Gestionar grupos académicos", Icon: IconBookOpen},
		{Section: "attendance", Title: "Control de Asistencia", Description: "Revisar asistencia diaria", Icon: IconUserCheck},
		{Section: "finances", Title: "Panel de Finanzas", Description: "Gestionar pagos y cuotas", Icon: IconDollarSign},
		{Section: "statistics", Title: "Estadísticas", Description: "Ver métricas del centro", Icon: IconTrendingUp},
		{Section: "messages", Title: "Mensajería", Description: "Comunicación institucional", Icon: IconMessageSquare},
	},
	school.RoleTeacher: {
		{Section: "activities", Title: "Crear Actividad", Description: "Nueva tarea o proyecto", Icon: IconPlus},
		{Section: "grades", Title: "Registrar Calificaciones", Description: "Evaluar trabajos", Icon: IconAward},
		{Section: "attendance", Title: "Tomar Asistencia", Description: "Registro diario", Icon: IconUserCheck},
		{Section: "groups", Title: "Ver Mis Grupos", Description: "Gestionar clases", Icon: IconUsers},
	},
	school.RoleParent: {
		{Section: "grades", Title: "Ver Calificaciones", Description: "Notas y evaluaciones", Icon: IconAward},
		{Section: "attendance", Title: "Revisar Asistencia", Description: "Control de presencia", Icon: IconUserCheck},
		{Section: "messages", Title: "Mensajes", Description: "Comunicación con profesores", Icon: IconMessageSquare},
		{Section: "finances", Title: "Estado Financiero", Description: "Pagos y cuotas", Icon: IconDollarSign},
	},
	school.RoleStudent: {
		{Section: "grades", Title: "Mis Calificaciones", Description: "Ver todas mis notas", Icon: IconAward},
		{Section: "schedule", Title: "Mi Horario", Description: "Clases de hoy", Icon: IconCalendar},
		{Section: "activities", Title: "Mis Actividades", Description: "Tareas pendientes", Icon: IconBookOpen},
		{Section: "messages", Title: "Mensajes", Description: "Comunicación", Icon: IconMessageSquare},
	},
}

// QuickActionsFor returns the role's dashboard tiles in display order.
func QuickActionsFor(role school.Role) []QuickAction {
	actions := quickActions[role]
	out := make([]QuickAction, len(actions))
	copy(out, actions)
	return out
}
