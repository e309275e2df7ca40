// Package fixtures serves the portal's collections from JSON documents on an
// fs.FS (the embedded static/data directory by default). Each collection is
// selected from its document with a JMESPath expression, so documents may
// wrap collections in envelopes ({"users": [...]}) or ship them bare.
package fixtures

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	apperrors "github.com/Digmusic88/mundo-world-school/internal/errors"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// Document names one fixture file and the expression selecting its collection.
type Document struct {
	File string
	Expr string
}

// Layout maps every collection to its document.
type Layout struct {
	Users            Document
	Groups           Document
	Grades           Document
	Attendance       Document
	AttendanceStats  Document
	Activities       Document
	Payments         Document
	FinancialSummary Document
	Messages         Document
	SchoolConfig     Document
}

// DefaultLayout matches the files shipped under frontend/static/data.
func DefaultLayout() Layout {
	return Layout{
		Users:            Document{File: "users.json", Expr: "users"},
		Groups:           Document{File: "groups.json", Expr: "groups"},
		Grades:           Document{File: "grades.json", Expr: "grades"},
		Attendance:       Document{File: "attendance.json", Expr: "attendance"},
		AttendanceStats:  Document{File: "attendance.json", Expr: "attendance_stats"},
		Activities:       Document{File: "activities.json", Expr: "activities"},
		Payments:         Document{File: "finances.json", Expr: "payments"},
		FinancialSummary: Document{File: "finances.json", Expr: "financial_summary"},
		Messages:         Document{File: "messages.json", Expr: "messages"},
		SchoolConfig:     Document{File: "school-config.json", Expr: "@"},
	}
}

func (l Layout) documents() []Document {
	return []Document{
		l.Users, l.Groups, l.Grades, l.Attendance, l.AttendanceStats,
		l.Activities, l.Payments, l.FinancialSummary, l.Messages, l.SchoolConfig,
	}
}

// Source reads collections from fsys on every call. It keeps no cache.
type Source struct {
	fsys   fs.FS
	layout Layout
}

// NewSource validates every layout expression and returns a Source.
func NewSource(fsys fs.FS, layout Layout) (*Source, error) {
	if fsys == nil {
		return nil, apperrors.Validation("fixtures: filesystem is required")
	}
	for _, d := range layout.documents() {
		if d.File == "" {
			return nil, apperrors.Validation("fixtures: document file is required")
		}
		if err := ValidateExpression(d.Expr); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "fixtures: invalid expression for %s", d.File)
		}
	}
	return &Source{fsys: fsys, layout: layout}, nil
}

func (s *Source) load(ctx context.Context, d Document, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := fs.ReadFile(s.fsys, d.File)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "read fixture %s", d.File)
	}
	if err := Extract(raw, d.Expr, out); err != nil {
		return fmt.Errorf("fixture %s: %w", d.File, err)
	}
	return nil
}

// FetchAllUsers implements ports.UserDirectory.
func (s *Source) FetchAllUsers(ctx context.Context) ([]school.User, error) {
	var users []school.User
	if err := s.load(ctx, s.layout.Users, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Source) Groups(ctx context.Context) ([]school.Group, error) {
	var out []school.Group
	if err := s.load(ctx, s.layout.Groups, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Source) Grades(ctx context.Context) ([]school.Grade, error) {
	var out []school.Grade
	if err := s.load(ctx, s.layout.Grades, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Attendance returns the records and the precomputed daily stats.
func (s *Source) Attendance(ctx context.Context) ([]school.Attendance, school.AttendanceStats, error) {
	var (
		out   []school.Attendance
		stats school.AttendanceStats
	)
	if err := s.load(ctx, s.layout.Attendance, &out); err != nil {
		return nil, stats, err
	}
	if err := s.load(ctx, s.layout.AttendanceStats, &stats); err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

func (s *Source) Activities(ctx context.Context) ([]school.Activity, error) {
	var out []school.Activity
	if err := s.load(ctx, s.layout.Activities, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Payments returns the payment records and the school-wide summary.
func (s *Source) Payments(ctx context.Context) ([]school.Payment, school.FinancialSummary, error) {
	var (
		out     []school.Payment
		summary school.FinancialSummary
	)
	if err := s.load(ctx, s.layout.Payments, &out); err != nil {
		return nil, summary, err
	}
	if err := s.load(ctx, s.layout.FinancialSummary, &summary); err != nil {
		return nil, summary, err
	}
	return out, summary, nil
}

func (s *Source) Messages(ctx context.Context) ([]school.Message, error) {
	var out []school.Message
	if err := s.load(ctx, s.layout.Messages, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Source) SchoolConfig(ctx context.Context) (school.Config, error) {
	var cfg school.Config
	if err := s.load(ctx, s.layout.SchoolConfig, &cfg); err != nil {
		return school.Config{}, err
	}
	return cfg, nil
}

var _ ports.SchoolData = (*Source)(nil)
