// Package screens assembles the view models of the management screens. Each
// build fetches the collections it needs once, concurrently, and scopes them
// to the signed-in user. Nothing is cached between builds.
package screens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
	"github.com/Digmusic88/mundo-world-school/internal/service/viewrouter"
)

// ServiceOptions groups dependencies for Service.
type ServiceOptions struct {
	Data   ports.SchoolData
	Logger *slog.Logger
	// Now defaults to time.Now. It fixes "today" for overdue checks and daily counts.
	Now func() time.Time
}

// Service builds screen view models.
type Service struct {
	data   ports.SchoolData
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a Service.
func NewService(opts ServiceOptions) (*Service, error) {
	if opts.Data == nil {
		return nil, errors.New("screens: data source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{data: opts.Data, logger: logger.With("component", "screens"), now: now}, nil
}

// Page is a built screen: the descriptor it was resolved from and its model.
// Model is nil for placeholders.
type Page struct {
	viewrouter.Descriptor
	Model any
}

type builder func(s *Service, ctx context.Context, me school.User, q Query) (any, error)

var builders = map[viewrouter.Screen]builder{
	viewrouter.ScreenAdminDashboard:     (*Service).adminDashboard,
	viewrouter.ScreenUserManagement:     (*Service).userManagement,
	viewrouter.ScreenGroupManagement:    (*Service).groupManagement,
	viewrouter.ScreenStatistics:         (*Service).statistics,
	viewrouter.ScreenMessaging:          (*Service).messaging,
	viewrouter.ScreenTeacherDashboard:   (*Service).teacherDashboard,
	viewrouter.ScreenTeacherGrades:      (*Service).teacherGrades,
	viewrouter.ScreenTeacherActivities:  (*Service).teacherActivities,
	viewrouter.ScreenTeacherAttendance:  (*Service).teacherAttendance,
	viewrouter.ScreenParentDashboard:    (*Service).parentDashboard,
	viewrouter.ScreenChildrenGrades:     (*Service).childrenGrades,
	viewrouter.ScreenChildrenAttendance: (*Service).childrenAttendance,
	viewrouter.ScreenParentFinances:     (*Service).parentFinances,
	viewrouter.ScreenStudentDashboard:   (*Service).studentDashboard,
	viewrouter.ScreenStudentGrades:      (*Service).studentGrades,
	viewrouter.ScreenStudentActivities:  (*Service).studentActivities,
}

// Build produces the page for d as seen by me. Placeholders need no data and
// never fail. A fetch failure is returned as-is so the caller can show the
// screen's error state.
func (s *Service) Build(ctx context.Context, me school.User, d viewrouter.Descriptor, q Query) (Page, error) {
	page := Page{Descriptor: d}
	if d.Placeholder {
		return page, nil
	}
	build, ok := builders[d.Screen]
	if !ok {
		return page, fmt.Errorf("screens: no builder for %q", d.Screen)
	}
	model, err := build(s, ctx, me, q)
	if err != nil {
		s.logger.ErrorContext(ctx, "screen data fetch failed",
			"screen", string(d.Screen), "user_id", me.ID, "error", err)
		return page, err
	}
	page.Model = model
	return page, nil
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}
