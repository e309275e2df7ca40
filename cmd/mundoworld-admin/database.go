package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/Digmusic88/mundo-world-school/config"
	"github.com/Digmusic88/mundo-world-school/internal/adapters/fixtures"
	"github.com/Digmusic88/mundo-world-school/internal/bootstrap"
	"github.com/Digmusic88/mundo-world-school/internal/data"
	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
	"github.com/Digmusic88/mundo-world-school/internal/service/roster"
)

const (
	defaultMigrationTimeout = 5 * time.Minute
	defaultImportTimeout    = time.Minute
)

type importOptions struct {
	File    string
	DryRun  bool
	Timeout time.Duration
}

func parseImportFlags(cmdCtx *commandContext, args []string) (importOptions, error) {
	fs := newFlagSet(cmdCtx, "import-users")
	opts := importOptions{}
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Validate the users without writing them")
	fs.DurationVar(&opts.Timeout, "timeout", defaultImportTimeout, "Maximum duration of the import")
	if err := parseFlags(fs, args); err != nil {
		return importOptions{}, err
	}
	if fs.NArg() > 1 {
		return importOptions{}, usagef("import-users takes at most one file")
	}
	if opts.Timeout <= 0 {
		return importOptions{}, usagef("--timeout must be greater than zero")
	}
	opts.File = fs.Arg(0)
	return opts, nil
}

// importSource picks the users to import: a file, the HTTP directory when
// configured, otherwise the fixtures.
//
//nolint:ireturn // the source is chosen by flags and configuration.
func importSource(cmdCtx *commandContext, file string) (ports.UserDirectory, error) {
	if file != "" {
		layout := fixtures.DefaultLayout()
		layout.Users = fixtures.Document{File: filepath.Base(file), Expr: cmdCtx.Config.Directory.UsersExpr}
		return fixtures.NewSource(os.DirFS(filepath.Dir(file)), layout)
	}
	cfg := cmdCtx.Config.Directory
	if cfg.Source != config.DirectorySourceHTTP {
		cfg.Source = config.DirectorySourceFixtures
	}
	src, err := bootstrap.BuildSchoolData(cfg)
	if err != nil {
		return nil, err
	}
	return bootstrap.BuildDirectory(cfg, bootstrap.DirectoryDeps{Fixtures: src})
}

func runImportUsers(cmdCtx *commandContext, args []string) error {
	opts, err := parseImportFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	source, err := importSource(cmdCtx, opts.File)
	if err != nil {
		return fmt.Errorf("open import source: %w", err)
	}

	if opts.DryRun {
		return dryRunImport(cmdCtx, source, opts.Timeout)
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		importer, err := roster.NewImporter(roster.ImporterOptions{
			Source: source,
			Sink:   data.NewUserRepo(db),
			Logger: cmdCtx.Logger,
		})
		if err != nil {
			return err
		}
		rep, err := importer.Import(ctx)
		if err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Read %d users: %d inserted, %d updated\n", rep.Read, rep.Inserted, rep.Updated)
	})
}

// dryRunImport validates the source without touching the database.
func dryRunImport(cmdCtx *commandContext, source ports.UserDirectory, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, timeout)
	defer cancel()

	importer, err := roster.NewImporter(roster.ImporterOptions{
		Source: source,
		Sink:   discardWriter{},
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	users, err := source.FetchAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("read source directory: %w", err)
	}
	if err := importer.Validate(users); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "%d users valid (dry run, nothing written)\n", len(users))
}

type listUsersOptions struct {
	Filter  data.UserFilter
	Timeout time.Duration
}

func parseListUsersFlags(cmdCtx *commandContext, args []string) (listUsersOptions, error) {
	fs := newFlagSet(cmdCtx, "users")
	var role, status string
	opts := listUsersOptions{}
	fs.StringVar(&role, "role", "", "Only users with this role")
	fs.StringVar(&status, "status", "", "Only users with this status (active, inactive)")
	fs.StringVar(&opts.Filter.Search, "q", "", "Case-insensitive substring of name or email")
	fs.IntVar(&opts.Filter.Limit, "limit", 50, "Maximum rows to print (0 = all)")
	fs.IntVar(&opts.Filter.Offset, "offset", 0, "Rows to skip")
	fs.DurationVar(&opts.Timeout, "timeout", defaultImportTimeout, "Maximum duration of the query")
	if err := parseFlags(fs, args); err != nil {
		return listUsersOptions{}, err
	}
	if fs.NArg() != 0 {
		return listUsersOptions{}, usagef("users takes no arguments")
	}
	if role != "" && !school.Role(role).Valid() {
		return listUsersOptions{}, usagef("unknown role %q", role)
	}
	if status != "" && status != string(school.StatusActive) && status != string(school.StatusInactive) {
		return listUsersOptions{}, usagef("unknown status %q", status)
	}
	if opts.Filter.Limit < 0 || opts.Filter.Offset < 0 {
		return listUsersOptions{}, usagef("--limit and --offset must not be negative")
	}
	if opts.Timeout <= 0 {
		return listUsersOptions{}, usagef("--timeout must be greater than zero")
	}
	opts.Filter.Role = school.Role(role)
	opts.Filter.Status = school.Status(status)
	return opts, nil
}

func runListUsers(cmdCtx *commandContext, args []string) error {
	opts, err := parseListUsersFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		repo := data.NewUserRepo(db)
		total, err := repo.Count(ctx, opts.Filter)
		if err != nil {
			return err
		}
		users, err := repo.List(ctx, opts.Filter)
		if err != nil {
			return err
		}
		return printUsers(cmdCtx.Out, users, total)
	})
}

func printUsers(w io.Writer, users []school.User, total int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS\n"); err != nil {
		return err
	}
	for _, u := range users {
		status := u.Status
		if status == "" {
			status = school.StatusActive
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, status); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(w, "\n%d of %d users\n", len(users), total)
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "migrate")
	timeout := fs.Duration("timeout", defaultMigrationTimeout, "Maximum duration to wait for migrations to complete")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *timeout <= 0 {
		return usagef("--timeout must be greater than zero")
	}

	return withDatabase(cmdCtx, *timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("running database migrations")
		if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		return writef(cmdCtx.Out, "Migrations applied\n")
	})
}

func withDatabase(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}

// discardWriter satisfies roster.UserWriter for dry runs.
type discardWriter struct{}

func (discardWriter) Upsert(_ context.Context, _ []school.User) (int, int, error) {
	return 0, 0, errors.New("dry run: writes are disabled")
}
