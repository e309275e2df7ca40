package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse() error = %v", err)
	}
	cfg.Sanitize()

	if cfg.Session.SlotBackend != SlotBackendMemory {
		t.Errorf("SlotBackend = %q, want %q", cfg.Session.SlotBackend, SlotBackendMemory)
	}
	if cfg.Session.KeyPrefix != "mundo-world-user:" {
		t.Errorf("KeyPrefix = %q", cfg.Session.KeyPrefix)
	}
	if cfg.Session.TTL != 168*time.Hour {
		t.Errorf("TTL = %v, want 168h", cfg.Session.TTL)
	}
	if cfg.Directory.Source != DirectorySourceFixtures {
		t.Errorf("Directory.Source = %q, want fixtures", cfg.Directory.Source)
	}
	if cfg.Directory.UsersExpr != "users" {
		t.Errorf("UsersExpr = %q, want users", cfg.Directory.UsersExpr)
	}
	if cfg.School.Name != "Mundo World School" {
		t.Errorf("School.Name = %q", cfg.School.Name)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.NeedsRedis() || cfg.NeedsPostgres() {
		t.Errorf("defaults should need neither Redis nor Postgres")
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("SESSION_SLOT_BACKEND", "Redis")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_COOKIE_NAME", "sid")
	t.Setenv("DIRECTORY_SOURCE", "postgres")
	t.Setenv("DIRECTORY_TIMEOUT", "250ms")
	t.Setenv("DB_NAME", "school")
	t.Setenv("REDIS_SENTINEL_NODES", "a:1,b:2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SCHOOL_NAME", "Colegio Norte")
	t.Setenv("APP_COOKIE_DOMAIN", "auto")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse() error = %v", err)
	}
	cfg.Sanitize()

	if cfg.Session.SlotBackend != SlotBackendRedis {
		t.Errorf("SlotBackend = %q, want redis", cfg.Session.SlotBackend)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("TTL = %v", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "sid" {
		t.Errorf("CookieName = %q", cfg.Session.CookieName)
	}
	if !cfg.NeedsRedis() || !cfg.NeedsPostgres() {
		t.Errorf("NeedsRedis/NeedsPostgres = %v/%v, want true/true", cfg.NeedsRedis(), cfg.NeedsPostgres())
	}
	if cfg.Directory.Timeout != 250*time.Millisecond {
		t.Errorf("Directory.Timeout = %v", cfg.Directory.Timeout)
	}
	if cfg.Postgres.Name != "school" {
		t.Errorf("Postgres.Name = %q", cfg.Postgres.Name)
	}
	if len(cfg.Redis.SentinelNodes) != 2 || cfg.Redis.DB != 3 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.School.Name != "Colegio Norte" {
		t.Errorf("School.Name = %q", cfg.School.Name)
	}
	if cfg.HTTP.CookieDomain != CookieDomainAuto {
		t.Errorf("CookieDomain = %q", cfg.HTTP.CookieDomain)
	}
}

func TestAppConfig_RejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "slot backend", key: "SESSION_SLOT_BACKEND", val: "memcached"},
		{name: "directory source", key: "DIRECTORY_SOURCE", val: "ldap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			var cfg AppConfig
			if err := env.Parse(&cfg); err == nil {
				t.Fatalf("env.Parse() accepted %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  int
	}{
		{name: "below range", level: 0, want: 1},
		{name: "in range", level: 5, want: 5},
		{name: "above range", level: 12, want: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HTTPConfig{CompressionLevel: tt.level}
			h.Sanitize()
			if h.CompressionLevel != tt.want {
				t.Errorf("CompressionLevel = %d, want %d", h.CompressionLevel, tt.want)
			}
			if h.Addr != ":8080" {
				t.Errorf("Addr = %q, want :8080", h.Addr)
			}
		})
	}
}

func TestSessionConfig_SanitizeFillsZeroValues(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	var s SessionConfig
	s.Sanitize()

	if s.SlotBackend != SlotBackendMemory || s.CookieName != "mw_browser" || s.TTL != 168*time.Hour {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.FilePath != "/tmp/state/mundo-world/session.json" {
		t.Errorf("FilePath = %q", s.FilePath)
	}
}

func TestDevModeFromAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	var cfg AppConfig
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Error("APP_ENV=development should enable dev mode")
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5433, User: "u", Password: "p@ss", Name: "school", SSLMode: "disable"}
	want := "postgres://u:p%40ss@db:5433/school?sslmode=disable"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
