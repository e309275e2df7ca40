package config

import (
	"fmt"
	"strings"
	"time"
)

// DirectorySource selects where users (and school data) come from.
type DirectorySource string

const (
	// DirectorySourceFixtures reads the JSON collections from FixturesDir or the embedded copy.
	DirectorySourceFixtures DirectorySource = "fixtures"
	// DirectorySourceHTTP fetches users from a remote JSON document.
	DirectorySourceHTTP DirectorySource = "http"
	// DirectorySourcePostgres reads users from the users table.
	DirectorySourcePostgres DirectorySource = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for DirectorySource.
func (d *DirectorySource) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "fixtures", "http", "postgres":
		*d = DirectorySource(v)
		return nil
	default:
		return fmt.Errorf("invalid DirectorySource: %q (valid options: fixtures, http, postgres)", v)
	}
}

// DirectoryConfig configures the user directory. School data other than
// users always comes from fixtures.
type DirectoryConfig struct {
	Source DirectorySource `env:"SOURCE" envDefault:"fixtures"`
	// URL is the users document for the http source.
	URL string `env:"URL"`
	// UsersExpr is the JMESPath expression selecting the user array.
	UsersExpr string `env:"USERS_EXPR" envDefault:"users"`
	// FixturesDir overrides the embedded fixtures with a directory on disk.
	FixturesDir string        `env:"FIXTURES_DIR"`
	Timeout     time.Duration `env:"TIMEOUT"      envDefault:"5s"`
}

// Sanitize fills defaults for zero values.
func (d *DirectoryConfig) Sanitize() {
	if d.Source == "" {
		d.Source = DirectorySourceFixtures
	}
	if d.UsersExpr == "" {
		d.UsersExpr = "users"
	}
	if d.Timeout <= 0 {
		d.Timeout = 5 * time.Second
	}
}
