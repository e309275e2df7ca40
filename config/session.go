package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SlotBackend selects where session slots are persisted.
type SlotBackend string

const (
	// SlotBackendMemory keeps slots in process memory (single node, lost on restart).
	SlotBackendMemory SlotBackend = "memory"
	// SlotBackendRedis stores one key per browser in Redis.
	SlotBackendRedis SlotBackend = "redis"
	// SlotBackendFile stores a single slot in a local file (CLI).
	SlotBackendFile SlotBackend = "file"
)

// UnmarshalText implements encoding.TextUnmarshaler for SlotBackend.
func (b *SlotBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis", "file":
		*b = SlotBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SlotBackend: %q (valid options: memory, redis, file)", v)
	}
}

// SessionConfig controls session slot persistence and the browser cookie.
type SessionConfig struct {
	SlotBackend SlotBackend   `env:"SLOT_BACKEND" envDefault:"memory"`
	KeyPrefix   string        `env:"KEY_PREFIX"   envDefault:"mundo-world-user:"`
	TTL         time.Duration `env:"TTL"          envDefault:"168h"`
	CookieName  string        `env:"COOKIE_NAME"  envDefault:"mw_browser"`
	// FilePath is the slot file used by the file backend. Empty means the
	// user state directory.
	FilePath string `env:"FILE_PATH"`
}

// Sanitize fills defaults for zero values.
func (s *SessionConfig) Sanitize() {
	if s.SlotBackend == "" {
		s.SlotBackend = SlotBackendMemory
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "mundo-world-user:"
	}
	if s.TTL <= 0 {
		s.TTL = 168 * time.Hour
	}
	if s.CookieName == "" {
		s.CookieName = "mw_browser"
	}
	if s.FilePath == "" {
		s.FilePath = DefaultSlotFile()
	}
}

// DefaultSlotFile returns $XDG_STATE_HOME/mundo-world/session.json, falling
// back to ~/.local/state and finally the working directory.
func DefaultSlotFile() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".local", "state")
		}
	}
	if base == "" {
		return "mundo-world-session.json"
	}
	return filepath.Join(base, "mundo-world", "session.json")
}
