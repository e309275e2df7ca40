// Package testutil provides infrastructure helpers for integration tests.
// Helpers skip the calling test when Postgres or Redis is unreachable unless
// TEST_REQUIRE_INFRA (or the per-service variant) is set.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	// Register the pgx driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/Digmusic88/mundo-world-school/internal/migrate"
)

// TestingTB covers *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// TestDBConfig holds test database coordinates.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DefaultTestDBConfig reads TEST_DB_* variables. The port defaults to 55432,
// the docker-compose test profile.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "55432"),
		User:     getEnvOrDefault("TEST_DB_USER", "mundoworld"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "mundoworld"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "mundoworld"),
	}
}

// DSN renders the config as a postgres URL.
func (c TestDBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		c.User, c.Password, net.JoinHostPort(c.Host, c.Port), c.DBName)
}

// SetupTestDB opens the test database, applies migrations and empties the
// users table. The caller closes the handle.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", DefaultTestDBConfig().DSN())
	if err != nil {
		t.Fatal("open test database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		if requireDB() {
			t.Fatal("test database not available:", pingErr)
		}
		t.Skip("test database not available:", pingErr)
	}

	if migErr := migrate.Run(ctx, db); migErr != nil {
		t.Fatal("run migrations:", migErr)
	}
	if _, delErr := db.ExecContext(ctx, "DELETE FROM users"); delErr != nil {
		t.Fatalf("clean users table: %v", delErr)
	}
	return db
}

// SetupTestRedis returns a client on a flushed test database. REDIS_ADDR
// overrides the default candidates.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	candidates := []string{"redis:6379", "localhost:6379", "localhost:56379"}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		candidates = []string{addr}
	}

	for _, addr := range candidates {
		client := redis.NewClient(&redis.Options{Addr: addr, DB: testRedisDB()})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := client.Ping(ctx).Err()
		if err == nil {
			client.FlushDB(ctx)
			cancel()
			return client
		}
		cancel()
		t.Logf("redis not available at %s: %v", addr, err)
		_ = client.Close()
	}

	if requireRedis() {
		t.Fatal("redis not available for testing")
	}
	t.Skip("redis not available for testing")
	return nil
}

func testRedisDB() int {
	var db int
	if _, err := fmt.Sscanf(os.Getenv("TEST_REDIS_DB"), "%d", &db); err != nil || db < 0 {
		return 1
	}
	return db
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func requireDB() bool    { return envBool("TEST_REQUIRE_DB") || envBool("TEST_REQUIRE_INFRA") }
func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }
