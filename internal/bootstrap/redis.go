package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Digmusic88/mundo-world-school/config"
	redisadapter "github.com/Digmusic88/mundo-world-school/internal/adapters/redis"
)

// Session slots are single-key GET/SET/DEL calls made while a request is
// being served, so socket timeouts stay short.
const (
	redisDialTimeout  = 5 * time.Second
	redisIOTimeout    = 2 * time.Second
	redisCheckTimeout = 5 * time.Second
	slotCheckTTL      = 10 * time.Second
)

// RedisSlotConfig groups what ConnectRedis needs.
type RedisSlotConfig struct {
	Redis config.RedisConfig
	// Prefix is the session slot key prefix. The startup write check runs
	// under it. Empty means redisadapter.DefaultSlotPrefix.
	Prefix string
	Logger *slog.Logger
}

// ConnectRedis connects the session slot backend. Besides a ping it writes and
// deletes an expiring key under the slot prefix, so a read-only replica or an
// ACL that excludes the prefix fails at startup instead of on the first
// sign-in.
func ConnectRedis(ctx context.Context, cfg RedisSlotConfig) (*redis.Client, error) {
	var (
		client   *redis.Client
		addrDesc string
		err      error
	)
	if cfg.Redis.UseSentinel {
		client, addrDesc, err = newSentinelClient(cfg.Redis)
	} else {
		client, addrDesc, err = newDirectClient(cfg.Redis)
	}
	if err != nil {
		return nil, err
	}

	prefix := slotPrefix(cfg.Prefix)
	if checkErr := checkSlotWrites(ctx, client, prefix); checkErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			checkErr = errors.Join(checkErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, checkErr
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("redis connected",
			"addr", redactAddr(addrDesc),
			"slot_prefix", prefix,
		)
	}
	return client, nil
}

func newDirectClient(cfg config.RedisConfig) (*redis.Client, string, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, "", errors.New("redis direct configuration requires a URI")
	}

	if isRedisURL(uri) {
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, "", fmt.Errorf("parse redis url: %w", err)
		}
		opt.DialTimeout = redisDialTimeout
		opt.ReadTimeout = redisIOTimeout
		opt.WriteTimeout = redisIOTimeout
		return redis.NewClient(opt), opt.Addr, nil
	}

	return redis.NewClient(&redis.Options{
		Addr:         uri,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisIOTimeout,
		WriteTimeout: redisIOTimeout,
	}), uri, nil
}

func newSentinelClient(cfg config.RedisConfig) (*redis.Client, string, error) {
	nodes := normalizeAddrs(cfg.SentinelNodes)
	if len(nodes) == 0 {
		return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
	}
	master := strings.TrimSpace(cfg.SentinelMasterName)
	if master == "" {
		return nil, "", errors.New("redis sentinel configuration requires a master name")
	}

	client := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:       master,
		SentinelAddrs:    nodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
		DB:               cfg.DB,
		DialTimeout:      redisDialTimeout,
		ReadTimeout:      redisIOTimeout,
		WriteTimeout:     redisIOTimeout,
	})
	return client, "sentinel:" + master, nil
}

// checkSlotWrites pings, then sets and deletes a throwaway key under prefix.
func checkSlotWrites(ctx context.Context, client redis.Cmdable, prefix string) error {
	ctx, cancel := context.WithTimeout(ctx, redisCheckTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	key := slotCheckKey(prefix)
	if err := client.Set(ctx, key, "1", slotCheckTTL).Err(); err != nil {
		return fmt.Errorf("redis rejects session slot writes under %q: %w", prefix, err)
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis rejects session slot deletes under %q: %w", prefix, err)
	}
	return nil
}

func slotPrefix(prefix string) string {
	if prefix == "" {
		return redisadapter.DefaultSlotPrefix
	}
	return prefix
}

// slotCheckKey cannot collide with a real slot: browser ids are bare uuids.
func slotCheckKey(prefix string) string {
	return prefix + "startup-check:" + uuid.NewString()
}

// redactAddr strips credentials from a redis URL or user:pass@host string.
func redactAddr(addr string) string {
	if u, err := url.Parse(addr); err == nil && u.User != nil {
		u.User = url.User("*")
		return u.Redacted()
	}
	if i := strings.LastIndex(addr, "@"); i > -1 {
		return addr[i+1:]
	}
	return addr
}

func normalizeAddrs(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}
