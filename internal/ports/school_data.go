package ports

import (
	"context"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

// SchoolData is the read-only source of the peripheral collections consumed
// by management screens. Each method is a one-shot fetch of a full collection.
type SchoolData interface {
	UserDirectory
	Groups(ctx context.Context) ([]school.Group, error)
	Grades(ctx context.Context) ([]school.Grade, error)
	Attendance(ctx context.Context) ([]school.Attendance, school.AttendanceStats, error)
	Activities(ctx context.Context) ([]school.Activity, error)
	Payments(ctx context.Context) ([]school.Payment, school.FinancialSummary, error)
	Messages(ctx context.Context) ([]school.Message, error)
	SchoolConfig(ctx context.Context) (school.Config, error)
}
