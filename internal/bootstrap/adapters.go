package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	mundoworld "github.com/Digmusic88/mundo-world-school"
	"github.com/Digmusic88/mundo-world-school/config"
	"github.com/Digmusic88/mundo-world-school/internal/adapters/fileslot"
	"github.com/Digmusic88/mundo-world-school/internal/adapters/fixtures"
	"github.com/Digmusic88/mundo-world-school/internal/adapters/httpdir"
	"github.com/Digmusic88/mundo-world-school/internal/adapters/memslot"
	redisadapter "github.com/Digmusic88/mundo-world-school/internal/adapters/redis"
	"github.com/Digmusic88/mundo-world-school/internal/data"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// fixtureDataDir is where the JSON collections live inside the embedded static tree.
const fixtureDataDir = staticDir + "/data"

// FixtureFS returns the fixture collections: dir when set, otherwise the
// embedded copy served under /static/data/.
func FixtureFS(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("fixtures dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("fixtures dir %q is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(mundoworld.StaticFS, fixtureDataDir)
	if err != nil {
		return nil, fmt.Errorf("embedded fixtures: %w", err)
	}
	return sub, nil
}

// BuildSchoolData opens the fixture source backing every read-only screen.
func BuildSchoolData(cfg config.DirectoryConfig) (*fixtures.Source, error) {
	fsys, err := FixtureFS(cfg.FixturesDir)
	if err != nil {
		return nil, err
	}
	layout := fixtures.DefaultLayout()
	layout.Users.Expr = cfg.UsersExpr
	return fixtures.NewSource(fsys, layout)
}

// DirectoryDeps carries what the non-fixture directory sources need.
type DirectoryDeps struct {
	// Fixtures serves the fixtures source.
	Fixtures ports.UserDirectory
	// DB serves the postgres source.
	DB *sql.DB
}

// BuildDirectory selects the user directory consulted on sign-in.
//
//nolint:ireturn // the source is chosen at runtime.
func BuildDirectory(cfg config.DirectoryConfig, deps DirectoryDeps) (ports.UserDirectory, error) {
	switch cfg.Source {
	case config.DirectorySourceHTTP:
		return httpdir.New(httpdir.Options{URL: cfg.URL, Expr: cfg.UsersExpr, Timeout: cfg.Timeout})
	case config.DirectorySourcePostgres:
		if deps.DB == nil {
			return nil, errors.New("postgres directory requires a database connection")
		}
		return data.NewUserRepo(deps.DB), nil
	case config.DirectorySourceFixtures, "":
		if deps.Fixtures == nil {
			return nil, errors.New("fixtures directory requires a fixture source")
		}
		return deps.Fixtures, nil
	default:
		return nil, fmt.Errorf("unknown directory source %q", cfg.Source)
	}
}

// BuildSlotFactory selects where browser sessions are persisted.
//
//nolint:ireturn // the backend is chosen at runtime.
func BuildSlotFactory(cfg config.SessionConfig, client redis.UniversalClient, logger *slog.Logger) (ports.SlotFactory, error) {
	switch cfg.SlotBackend {
	case config.SlotBackendRedis:
		if client == nil {
			return nil, errors.New("redis slot backend requires a redis client")
		}
		return redisadapter.NewSlotStore(client, redisadapter.SlotStoreOptions{
			Prefix: cfg.KeyPrefix,
			TTL:    cfg.TTL,
		}), nil
	case config.SlotBackendMemory, "":
		if logger != nil {
			logger.Warn("session slots are kept in memory; sessions end on restart",
				"ttl", cfg.TTL.String(),
			)
		}
		return memslot.New(memslot.WithTTL(cfg.TTL)), nil
	case config.SlotBackendFile:
		// A single file slot would be shared by every browser.
		return nil, errors.New("file slot backend is only supported by the admin CLI")
	default:
		return nil, fmt.Errorf("unknown slot backend %q", cfg.SlotBackend)
	}
}

// OpenFileSlot opens the CLI session slot.
func OpenFileSlot(cfg config.SessionConfig) (*fileslot.Slot, error) {
	path := cfg.FilePath
	if path == "" {
		path = config.DefaultSlotFile()
	}
	return fileslot.New(path)
}

// pingDirectory fetches the directory once so misconfiguration shows up at
// startup. A failure is logged only; sign-in reports it per attempt.
func pingDirectory(ctx context.Context, dir ports.UserDirectory, logger *slog.Logger) {
	users, err := dir.FetchAllUsers(ctx)
	if err != nil {
		logger.WarnContext(ctx, "user directory unreachable at startup", "error", err)
		return
	}
	logger.InfoContext(ctx, "user directory ready", "users", len(users))
}
