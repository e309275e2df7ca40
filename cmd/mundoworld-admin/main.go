package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/Digmusic88/mundo-world-school/config"
	"github.com/Digmusic88/mundo-world-school/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	usage       string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
	Err    io.Writer
}

// usageError marks a command line the CLI cannot act on. It exits with 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	logger := bootstrap.InitLogger(level)
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, logger)) //nolint:forbidigo // CLI exit status is the command's contract with shell scripts
}

// run executes one command and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, logger *slog.Logger) int {
	if len(args) == 0 {
		logWriteErr(logger, printUsage(stderr))
		return 2
	}

	name := args[0]
	cmd, ok := commands()[name]
	if !ok {
		logWriteErr(logger, writef(stderr, "unknown command %q\n\n", name))
		logWriteErr(logger, printUsage(stderr))
		return 2
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(ctx, "load config", "error", err)
		return 1
	}

	cmdCtx := &commandContext{Ctx: ctx, Logger: logger, Config: cfg, Out: stdout, Err: stderr}
	if runErr := cmd.run(cmdCtx, args[1:]); runErr != nil {
		var uerr *usageError
		switch {
		case errors.Is(runErr, flag.ErrHelp):
			return 2
		case errors.As(runErr, &uerr):
			logWriteErr(logger, writef(stderr, "%s\nusage: mundoworld-admin %s %s\n", uerr.msg, cmd.name, cmd.usage))
			return 2
		default:
			logWriteErr(logger, writef(stderr, "error: %v\n", runErr))
			logger.ErrorContext(ctx, "command failed", "command", name, "error", runErr)
			return 1
		}
	}
	return 0
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			usage:       "<email> [password]",
			description: "Sign in against the user directory and persist the session locally",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Sign out and clear the local session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			usage:       "[--json]",
			description: "Show the local session state",
			run:         runWhoami,
		},
		"nav": {
			name:        "nav",
			usage:       "[role]",
			description: "Print the navigation menu of a role (default: the signed-in role)",
			run:         runNav,
		},
		"resolve": {
			name:        "resolve",
			usage:       "[--json] <section> [role]",
			description: "Show which screen a section resolves to",
			run:         runResolve,
		},
		"import-users": {
			name:        "import-users",
			usage:       "[--dry-run] [--timeout 1m] [users.json]",
			description: "Validate directory users and upsert them into Postgres",
			run:         runImportUsers,
		},
		"users": {
			name:        "users",
			usage:       "[--role r] [--status s] [--q text] [--limit n] [--offset n]",
			description: "List users stored in Postgres",
			run:         runListUsers,
		},
		"migrate": {
			name:        "migrate",
			usage:       "[--timeout 5m]",
			description: "Run database migrations",
			run:         runMigrations,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: mundoworld-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-14s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func newFlagSet(cmdCtx *commandContext, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)
	return fs
}

// parseFlags parses args and reports malformed flags as usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usagef("%v", err)
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func logWriteErr(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("write output failed", "error", err)
	}
}
