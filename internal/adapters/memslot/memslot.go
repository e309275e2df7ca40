// Package memslot provides an in-process session slot factory for
// single-node and development runs. Contents do not survive a restart and
// are not shared between replicas; use the redis backend for either.
package memslot

import (
	"context"
	"sync"
	"time"

	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// sweepInterval bounds how often a Write scans the whole map for expired
// entries.
const sweepInterval = time.Minute

// Factory keeps one slot value per browser id. With a TTL, a value expires
// TTL after its last write, matching the redis backend.
type Factory struct {
	mu        sync.Mutex
	values    map[string]entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type entry struct {
	data    []byte
	expires time.Time // zero means never
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Option configures a Factory.
type Option func(*Factory)

// WithTTL expires each value ttl after its last write. Zero or negative keeps
// values until cleared.
func WithTTL(ttl time.Duration) Option {
	return func(f *Factory) { f.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) { f.now = now }
}

// New returns an empty Factory.
func New(opts ...Option) *Factory {
	f := &Factory{values: make(map[string]entry), now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	f.lastSweep = f.now()
	return f
}

// Slot returns the slot owned by browserID.
func (f *Factory) Slot(browserID string) ports.SessionSlot {
	return &slot{f: f, key: browserID}
}

// Len reports how many slots currently hold an unexpired value.
func (f *Factory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	n := 0
	for _, e := range f.values {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// sweepLocked drops expired entries at most once per sweepInterval.
func (f *Factory) sweepLocked(now time.Time) {
	if f.ttl <= 0 || now.Sub(f.lastSweep) < sweepInterval {
		return
	}
	f.lastSweep = now
	for k, e := range f.values {
		if e.expired(now) {
			delete(f.values, k)
		}
	}
}

type slot struct {
	f   *Factory
	key string
}

func (s *slot) Read(_ context.Context) ([]byte, bool, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	e, ok := s.f.values[s.key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(s.f.now()) {
		delete(s.f.values, s.key)
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

func (s *slot) Write(_ context.Context, data []byte) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	now := s.f.now()
	e := entry{data: append([]byte(nil), data...)}
	if s.f.ttl > 0 {
		e.expires = now.Add(s.f.ttl)
	}
	s.f.values[s.key] = e
	s.f.sweepLocked(now)
	return nil
}

func (s *slot) Clear(_ context.Context) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	delete(s.f.values, s.key)
	return nil
}

var _ ports.SlotFactory = (*Factory)(nil)
