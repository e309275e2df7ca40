package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Digmusic88/mundo-world-school/config"
	"github.com/Digmusic88/mundo-world-school/internal/bootstrap"
	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	domainsession "github.com/Digmusic88/mundo-world-school/internal/domain/session"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
	"github.com/Digmusic88/mundo-world-school/internal/service/session"
	"github.com/Digmusic88/mundo-world-school/internal/service/viewrouter"
)

// openDirectory builds the configured user directory. The returned func
// releases any connection it opened.
//
//nolint:ireturn // the directory source is chosen by configuration.
func openDirectory(cmdCtx *commandContext) (ports.UserDirectory, func(), error) {
	cfg := cmdCtx.Config.Directory
	noop := func() {}

	fixtures, err := bootstrap.BuildSchoolData(cfg)
	if err != nil && cfg.Source == config.DirectorySourceFixtures {
		return nil, noop, fmt.Errorf("open fixtures: %w", err)
	}

	deps := bootstrap.DirectoryDeps{Fixtures: fixtures}
	closeFn := noop
	if cfg.Source == config.DirectorySourcePostgres {
		db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
			DBConfig: cmdCtx.Config.Postgres,
			Logger:   cmdCtx.Logger,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("connect db: %w", err)
		}
		deps.DB = db
		closeFn = func() {
			if cerr := db.Close(); cerr != nil {
				cmdCtx.Logger.Warn("db close failed", "error", cerr)
			}
		}
	}

	dir, err := bootstrap.BuildDirectory(cfg, deps)
	if err != nil {
		closeFn()
		return nil, noop, err
	}
	return dir, closeFn, nil
}

// openStore returns a resumed store over the local session file. A nil
// directory is allowed for commands that never sign in.
func openStore(cmdCtx *commandContext, dir ports.UserDirectory) (*session.Store, error) {
	slot, err := bootstrap.OpenFileSlot(cmdCtx.Config.Session)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	if dir == nil {
		dir = unusedDirectory{}
	}
	store, err := session.NewStore(session.StoreOptions{Directory: dir, Slot: slot, Logger: cmdCtx.Logger})
	if err != nil {
		return nil, err
	}
	store.Resume(cmdCtx.Ctx)
	return store, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "login")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return usagef("login needs an email")
	}
	email := fs.Arg(0)
	password := fs.Arg(1)

	dir, closeDir, err := openDirectory(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDir()

	store, err := openStore(cmdCtx, dir)
	if err != nil {
		return err
	}
	if current := store.Snapshot(); current.SignedIn() {
		return fmt.Errorf("already signed in as %s; run logout first", current.User.Email)
	}
	if !store.SignIn(cmdCtx.Ctx, email, password) {
		return fmt.Errorf("sign-in rejected for %q", email)
	}
	return printSnapshot(cmdCtx, store.Snapshot())
}

func runLogout(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "logout")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usagef("logout takes no arguments")
	}

	store, err := openStore(cmdCtx, nil)
	if err != nil {
		return err
	}
	if !store.Snapshot().SignedIn() {
		return writef(cmdCtx.Out, "Not signed in\n")
	}
	store.SignOut(cmdCtx.Ctx)
	return writef(cmdCtx.Out, "Signed out\n")
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "whoami")
	asJSON := fs.Bool("json", false, "Print the session snapshot as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usagef("whoami takes no arguments")
	}

	store, err := openStore(cmdCtx, nil)
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	if *asJSON {
		enc := json.NewEncoder(cmdCtx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return printSnapshot(cmdCtx, snap)
}

func printSnapshot(cmdCtx *commandContext, snap domainsession.Snapshot) error {
	if !snap.SignedIn() {
		return writef(cmdCtx.Out, "State: %s\n", snap.State)
	}
	u := snap.User
	lines := []string{
		"State: " + snap.State.String(),
		"User:  " + u.Name + " <" + u.Email + ">",
		"Role:  " + viewrouter.RoleLabel(u.Role) + " (" + string(u.Role) + ")",
		"ID:    " + u.ID,
	}
	return writef(cmdCtx.Out, "%s\n", strings.Join(lines, "\n"))
}

// unusedDirectory backs stores that only resume or sign out.
type unusedDirectory struct{}

func (unusedDirectory) FetchAllUsers(_ context.Context) ([]school.User, error) {
	return nil, errors.New("user directory not opened for this command")
}
