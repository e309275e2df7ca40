package redis

// Package redis provides Redis-backed adapters for the portal.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// DefaultSlotPrefix namespaces slot keys. It carries the storage key name
// the browser front-end used for the signed-in user.
const DefaultSlotPrefix = "mundo-world-user:"

// SlotStore hands out one Redis key per browser id. Values expire after TTL;
// every write refreshes the expiry. A zero TTL keeps keys forever.
type SlotStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// SlotStoreOptions configures a SlotStore.
type SlotStoreOptions struct {
	Prefix string
	TTL    time.Duration
}

// NewSlotStore creates a SlotStore. An empty prefix uses DefaultSlotPrefix.
func NewSlotStore(client redis.UniversalClient, opts SlotStoreOptions) *SlotStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultSlotPrefix
	}
	return &SlotStore{client: client, prefix: prefix, ttl: opts.TTL}
}

// Slot returns the slot bound to browserID.
func (s *SlotStore) Slot(browserID string) ports.SessionSlot {
	return &slot{store: s, key: s.prefix + browserID, empty: browserID == ""}
}

type slot struct {
	store *SlotStore
	key   string
	empty bool
}

func (s *slot) Read(ctx context.Context) ([]byte, bool, error) {
	if s.empty {
		return nil, false, nil
	}
	data, err := s.store.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

func (s *slot) Write(ctx context.Context, data []byte) error {
	if s.empty {
		return errors.New("redis slot: browser id is empty")
	}
	if err := s.store.client.Set(ctx, s.key, data, s.store.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *slot) Clear(ctx context.Context) error {
	if s.empty {
		return nil
	}
	if err := s.store.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var _ ports.SlotFactory = (*SlotStore)(nil)
