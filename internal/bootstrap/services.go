package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Digmusic88/mundo-world-school/config"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
	"github.com/Digmusic88/mundo-world-school/internal/service/screens"
	"github.com/Digmusic88/mundo-world-school/internal/service/session"
)

// ServiceContainer holds the services the HTTP layer is built from.
type ServiceContainer struct {
	Opener     *session.Opener
	Screens    *screens.Service
	Directory  ports.UserDirectory
	SchoolData ports.SchoolData

	DB    *sql.DB
	Redis redis.UniversalClient
}

// Close releases the infrastructure connections held by the container.
func (c *ServiceContainer) Close() error {
	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ServiceConfig groups the inputs of BuildServices.
type ServiceConfig struct {
	Config *config.AppConfig
	Logger *slog.Logger

	// DB and Redis are used as-is when set; otherwise they are connected on
	// demand from Config.
	DB    *sql.DB
	Redis redis.UniversalClient
}

// BuildServices connects the infrastructure the configuration asks for and
// wires the session opener and the screen builder.
func BuildServices(ctx context.Context, cfg ServiceConfig) (*ServiceContainer, error) {
	if cfg.Config == nil {
		return nil, errors.New("config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	container := &ServiceContainer{DB: cfg.DB, Redis: cfg.Redis}

	if err := connectInfra(ctx, container, appCfg, logger); err != nil {
		return nil, errors.Join(err, container.Close())
	}

	schoolData, err := BuildSchoolData(appCfg.Directory)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("school data: %w", err), container.Close())
	}
	container.SchoolData = schoolData

	dir, err := BuildDirectory(appCfg.Directory, DirectoryDeps{Fixtures: schoolData, DB: container.DB})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("user directory: %w", err), container.Close())
	}
	container.Directory = dir
	pingDirectory(ctx, dir, logger)

	slots, err := BuildSlotFactory(appCfg.Session, container.Redis, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("session slots: %w", err), container.Close())
	}

	if container.Opener, err = session.NewOpener(dir, slots, logger); err != nil {
		return nil, errors.Join(err, container.Close())
	}
	if container.Screens, err = screens.NewService(screens.ServiceOptions{Data: schoolData, Logger: logger}); err != nil {
		return nil, errors.Join(err, container.Close())
	}

	logger.InfoContext(ctx, "services ready",
		"directory", string(appCfg.Directory.Source),
		"slot_backend", string(appCfg.Session.SlotBackend),
	)
	return container, nil
}

func connectInfra(ctx context.Context, c *ServiceContainer, cfg *config.AppConfig, logger *slog.Logger) error {
	if cfg.NeedsPostgres() && c.DB == nil {
		db, err := ConnectDB(DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
		if err != nil {
			return err
		}
		c.DB = db
		if cfg.Postgres.RunMigrationsOnStart {
			if err := RunMigrations(ctx, db, logger); err != nil {
				return err
			}
		}
	}

	if cfg.NeedsRedis() && c.Redis == nil {
		client, err := ConnectRedis(ctx, RedisSlotConfig{
			Redis:  cfg.Redis,
			Prefix: cfg.Session.KeyPrefix,
			Logger: logger,
		})
		if err != nil {
			return err
		}
		c.Redis = client
	}
	return nil
}
