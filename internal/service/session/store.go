// Package session implements the portal session store: the single source of
// truth for who is using the application, mirrored into a persistence slot.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	domainsession "github.com/Digmusic88/mundo-world-school/internal/domain/session"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// StoreOptions groups dependencies for Store.
type StoreOptions struct {
	Directory ports.UserDirectory
	Slot      ports.SessionSlot
	Logger    *slog.Logger
}

// Store holds at most one signed-in user.
//
// Lifecycle: Uninitialized -> (Resume) -> Anonymous | Authenticated(user).
// SignIn moves Anonymous -> Authenticated, SignOut moves Authenticated ->
// Anonymous. There is no direct Authenticated -> Authenticated(other) edge.
// SignIn is refused until Resume has run.
//
// Passwords are not verified. A sign-in succeeds for any password as long as
// the email exists in the directory.
type Store struct {
	dir    ports.UserDirectory
	slot   ports.SessionSlot
	logger *slog.Logger

	// opMu serializes Resume, SignIn and SignOut.
	opMu sync.Mutex

	mu    sync.RWMutex
	state domainsession.State
	user  *school.User

	busy atomic.Bool
}

// NewStore constructs a Store in the Uninitialized state.
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.Directory == nil {
		return nil, errors.New("session store: directory is required")
	}
	if opts.Slot == nil {
		return nil, errors.New("session store: slot is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    opts.Directory,
		slot:   opts.Slot,
		logger: logger.With("component", "session_store"),
	}, nil
}

// Resume derives the state from the persistence slot. A readable, decodable
// record with a valid role yields Authenticated; anything else (empty slot,
// read error, corrupt payload) yields Anonymous. It never fails.
//
// Calling Resume again re-derives the state from the slot. Because only the
// store writes the slot, this reproduces the current state.
func (s *Store) Resume(ctx context.Context) domainsession.State {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	user, ok := s.readSlot(ctx)
	if !ok {
		s.set(domainsession.Anonymous, nil)
		return domainsession.Anonymous
	}
	s.set(domainsession.Authenticated, &user)
	return domainsession.Authenticated
}

func (s *Store) readSlot(ctx context.Context) (school.User, bool) {
	data, ok, err := s.slot.Read(ctx)
	if err != nil {
		s.logger.DebugContext(ctx, "session slot unreadable, resuming anonymous", "error", err)
		return school.User{}, false
	}
	if !ok {
		return school.User{}, false
	}
	var user school.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.DebugContext(ctx, "persisted session corrupt, resuming anonymous", "error", err)
		return school.User{}, false
	}
	// SignIn only ever persists directory records, which carry both.
	if !user.Role.Valid() || user.Email == "" {
		s.logger.DebugContext(ctx, "persisted session incomplete, resuming anonymous", "role", user.Role)
		return school.User{}, false
	}
	return user, true
}

// SignIn looks up the first user whose email equals email (exact,
// case-sensitive) and, on a match, persists the record to the slot and
// transitions to Authenticated. The password argument is ignored.
//
// It returns false without changing state when: the store has not been
// resumed, a user is already signed in, the directory fetch fails, or no
// record matches. Busy reports true while the directory fetch is in flight.
func (s *Store) SignIn(ctx context.Context, email, _ string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	switch s.State() {
	case domainsession.Uninitialized:
		s.logger.WarnContext(ctx, "sign in attempted before resume", "email", email)
		return false
	case domainsession.Authenticated:
		s.logger.WarnContext(ctx, "sign in attempted while signed in", "email", email)
		return false
	}

	s.busy.Store(true)
	users, err := s.dir.FetchAllUsers(ctx)
	s.busy.Store(false)
	if err != nil {
		s.logger.ErrorContext(ctx, "user lookup failed", "email", email, "error", err)
		return false
	}

	user, ok := school.FindByEmail(users, email)
	if !ok {
		s.logger.InfoContext(ctx, "sign in rejected: unknown email", "email", email)
		return false
	}

	s.writeSlot(ctx, user)
	s.set(domainsession.Authenticated, &user)
	s.logger.InfoContext(ctx, "signed in", "user_id", user.ID, "role", string(user.Role))
	return true
}

func (s *Store) writeSlot(ctx context.Context, user school.User) {
	data, err := json.Marshal(user)
	if err != nil {
		s.logger.WarnContext(ctx, "encode session record", "error", err)
		return
	}
	if err := s.slot.Write(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "persist session record", "error", err)
	}
}

// SignOut clears the slot and transitions to Anonymous. It is a no-op unless
// a user is signed in.
func (s *Store) SignOut(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.State() != domainsession.Authenticated {
		return
	}
	if err := s.slot.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "clear session slot", "error", err)
	}
	user := s.User()
	s.set(domainsession.Anonymous, nil)
	if user != nil {
		s.logger.InfoContext(ctx, "signed out", "user_id", user.ID)
	}
}

func (s *Store) set(state domainsession.State, user *school.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Store) State() domainsession.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the signed-in user, or nil when not authenticated.
func (s *Store) User() *school.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Busy reports whether a sign-in lookup is in flight.
func (s *Store) Busy() bool { return s.busy.Load() }

// Snapshot returns the state, user and busy flag in one read.
func (s *Store) Snapshot() domainsession.Snapshot {
	s.mu.RLock()
	snap := domainsession.Snapshot{State: s.state}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	s.mu.RUnlock()
	snap.Busy = s.busy.Load()
	return snap
}
