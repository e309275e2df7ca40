// Package sessiontest contains hand-written test doubles for the session
// ports. They need no code generation and record how they were called.
package sessiontest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

var (
	_ ports.UserDirectory = (*StaticDirectory)(nil)
	_ ports.SessionSlot   = (*MemorySlot)(nil)
)

// StaticDirectory returns a fixed collection, or Err when set.
// FetchFunc, when set, overrides both.
type StaticDirectory struct {
	Users     []school.User
	Err       error
	FetchFunc func(ctx context.Context) ([]school.User, error)

	calls atomic.Int64
}

func (d *StaticDirectory) FetchAllUsers(ctx context.Context) ([]school.User, error) {
	d.calls.Add(1)
	if d.FetchFunc != nil {
		return d.FetchFunc(ctx)
	}
	if d.Err != nil {
		return nil, d.Err
	}
	out := make([]school.User, len(d.Users))
	copy(out, d.Users)
	return out, nil
}

// Calls reports how many times FetchAllUsers ran.
func (d *StaticDirectory) Calls() int { return int(d.calls.Load()) }

// MemorySlot is a single in-memory slot with injectable failures.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
	set  bool

	ReadErr  error
	WriteErr error
	ClearErr error

	Writes int
	Clears int
}

// NewMemorySlot returns a slot pre-filled with data when data is non-nil.
func NewMemorySlot(data []byte) *MemorySlot {
	s := &MemorySlot{}
	if data != nil {
		s.data = append([]byte(nil), data...)
		s.set = true
	}
	return s
}

func (s *MemorySlot) Read(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, false, s.ReadErr
	}
	if !s.set {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *MemorySlot) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.data = append([]byte(nil), data...)
	s.set = true
	return nil
}

func (s *MemorySlot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clears++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.data = nil
	s.set = false
	return nil
}

// Contents returns the stored bytes and whether the slot is set.
func (s *MemorySlot) Contents() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...), s.set
}
