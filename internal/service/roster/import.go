// Package roster validates directory records and imports them into the
// Postgres user directory.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	apperrors "github.com/Digmusic88/mundo-world-school/internal/errors"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// UserWriter persists a batch of users.
type UserWriter interface {
	Upsert(ctx context.Context, users []school.User) (inserted, updated int, err error)
}

// ImporterOptions groups dependencies for Importer.
type ImporterOptions struct {
	Source ports.UserDirectory
	Sink   UserWriter
	Logger *slog.Logger
}

// Importer copies a directory into a writable store after validating it.
type Importer struct {
	source   ports.UserDirectory
	sink     UserWriter
	validate *validator.Validate
	logger   *slog.Logger
}

// NewImporter constructs an Importer.
func NewImporter(opts ImporterOptions) (*Importer, error) {
	if opts.Source == nil || opts.Sink == nil {
		return nil, errors.New("roster: source and sink are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		source:   opts.Source,
		sink:     opts.Sink,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "roster_import"),
	}, nil
}

// Report summarizes an import run.
type Report struct {
	Read     int
	Inserted int
	Updated  int
}

// Import fetches every user from the source, validates the batch and writes
// it. Nothing is written when any record is invalid or two records share an
// email.
func (im *Importer) Import(ctx context.Context) (Report, error) {
	users, err := im.source.FetchAllUsers(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read source directory: %w", err)
	}
	if err := im.Validate(users); err != nil {
		return Report{Read: len(users)}, err
	}

	inserted, updated, err := im.sink.Upsert(ctx, users)
	if err != nil {
		return Report{Read: len(users)}, fmt.Errorf("write directory: %w", err)
	}
	rep := Report{Read: len(users), Inserted: inserted, Updated: updated}
	im.logger.InfoContext(ctx, "directory imported",
		"read", rep.Read, "inserted", rep.Inserted, "updated", rep.Updated)
	return rep, nil
}

// Validate checks every record's struct constraints and email uniqueness.
// All problems are joined into one Validation error.
func (im *Importer) Validate(users []school.User) error {
	var errs []error
	seen := make(map[string]int, len(users))
	for i, u := range users {
		if err := im.validate.Struct(u); err != nil {
			errs = append(errs, describe(i, u, err))
		}
		if first, dup := seen[u.Email]; dup && u.Email != "" {
			errs = append(errs, apperrors.ValidationField("email",
				fmt.Sprintf("record %d (%s): email %q already used by record %d", i, u.ID, u.Email, first)))
			continue
		}
		seen[u.Email] = i
	}
	if len(errs) == 0 {
		return nil
	}
	return apperrors.Wrap(errors.Join(errs...), apperrors.ErrCodeValidation,
		fmt.Sprintf("%d invalid directory record(s)", len(errs)))
}

func describe(i int, u school.User, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("record %d (%s): %w", i, u.ID, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	field := strings.ToLower(verrs[0].Field())
	return apperrors.ValidationField(field, fmt.Sprintf("record %d (%s): %s", i, u.ID, strings.Join(parts, ", ")))
}
