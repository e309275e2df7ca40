package httpx

import (
	"net/url"

	"github.com/Digmusic88/mundo-world-school/internal/service/viewrouter"
)

// Portal paths.
const (
	PathLogin     = "/auth/login"
	PathLogout    = "/auth/logout"
	PathStatus    = "/auth/status"
	PathApp       = "/app/"
	PathDashboard = "/app/" + viewrouter.DefaultSection
)

// Template paths used for loading templates in tests and dev mode.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[viewrouter.Screen]string{
	viewrouter.ScreenAdminDashboard:     "admin-dashboard-content",
	viewrouter.ScreenUserManagement:     "user-management-content",
	viewrouter.ScreenGroupManagement:    "group-management-content",
	viewrouter.ScreenStatistics:         "statistics-content",
	viewrouter.ScreenMessaging:          "messaging-content",
	viewrouter.ScreenTeacherDashboard:   "teacher-dashboard-content",
	viewrouter.ScreenTeacherActivities:  "teacher-activities-content",
	viewrouter.ScreenTeacherGrades:      "teacher-grades-content",
	viewrouter.ScreenTeacherAttendance:  "teacher-attendance-content",
	viewrouter.ScreenParentDashboard:    "parent-dashboard-content",
	viewrouter.ScreenChildrenGrades:     "children-grades-content",
	viewrouter.ScreenChildrenAttendance: "children-attendance-content",
	viewrouter.ScreenParentFinances:     "parent-finances-content",
	viewrouter.ScreenStudentDashboard:   "student-dashboard-content",
	viewrouter.ScreenStudentGrades:      "student-grades-content",
	viewrouter.ScreenStudentActivities:  "student-activities-content",
	viewrouter.ScreenPlaceholder:        "placeholder-content",
}

// ContentTemplateFor returns the content template for a screen id.
// Falls back to placeholder-content for unknown screens.
func ContentTemplateFor(screen string) string {
	if name, ok := contentTemplates[viewrouter.Screen(screen)]; ok {
		return name
	}
	return "placeholder-content"
}

// SectionPath returns the shell URL of a section.
func SectionPath(section string) string {
	return PathApp + url.PathEscape(section)
}
