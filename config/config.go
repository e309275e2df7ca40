package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - session.go: Session slot configuration
//   - directory.go: User directory and school data configuration
//   - database.go: Database and Redis configuration
//   - http.go: HTTP server configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, verbose logs).
	// Set DEV=true or APP_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel is the minimum slog level (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Session persistence configuration
	Session SessionConfig `envPrefix:"SESSION_"`

	// User directory and school data configuration
	Directory DirectoryConfig `envPrefix:"DIRECTORY_"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// School branding
	School SchoolConfig `envPrefix:"SCHOOL_"`
}

// SchoolConfig holds institution-level display settings.
type SchoolConfig struct {
	Name string `env:"NAME" envDefault:"Mundo World School"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Session.Sanitize()
	c.Directory.Sanitize()

	if strings.TrimSpace(c.School.Name) == "" {
		c.School.Name = "Mundo World School"
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	c.detectDevMode()
}

// detectDevMode checks both DEV and APP_ENV environment variables.
// APP_ENV is checked as a fallback.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}

// NeedsRedis reports whether any configured component talks to Redis.
func (c *AppConfig) NeedsRedis() bool {
	return c.Session.SlotBackend == SlotBackendRedis
}

// NeedsPostgres reports whether any configured component talks to Postgres.
func (c *AppConfig) NeedsPostgres() bool {
	return c.Directory.Source == DirectorySourcePostgres
}
