// Package session contains the domain-level view of the portal session:
// its lifecycle states and the snapshot callers observe. It is free of
// adapter concerns.
package session

import "github.com/Digmusic88/mundo-world-school/internal/domain/school"

// State is the session lifecycle state.
type State int

const (
	// Uninitialized holds until the persisted-session check completes.
	Uninitialized State = iota
	// Anonymous means no user is signed in.
	Anonymous
	// Authenticated means a user is signed in.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// MarshalText renders the state in its lowercase string form for JSON payloads.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Snapshot is a consistent read of the session. User is non-nil only when
// State is Authenticated. Busy is orthogonal to State and is true while a
// sign-in lookup is in flight.
type Snapshot struct {
	State State        `json:"state"`
	User  *school.User `json:"user,omitempty"`
	Busy  bool         `json:"busy"`
}

// SignedIn reports whether the snapshot carries an authenticated user.
func (s Snapshot) SignedIn() bool { return s.State == Authenticated && s.User != nil }

// Role returns the signed-in user's role, or "" when anonymous.
func (s Snapshot) Role() school.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
