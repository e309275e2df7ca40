// Package ports defines the hexagonal ports of the portal: the user-lookup
// directory, the session persistence slot and the read-only school data
// source. Implementations live in internal/adapters and internal/data;
// orchestration lives in internal/service.
package ports

import (
	"context"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

// UserDirectory is the read-only user-lookup collaborator. It returns the
// whole collection on every call; callers neither paginate nor cache.
type UserDirectory interface {
	FetchAllUsers(ctx context.Context) ([]school.User, error)
}

// SessionSlot is a single named key-value entry holding one serialized user.
// Read reports ok=false when the slot is empty.
type SessionSlot interface {
	Read(ctx context.Context) (data []byte, ok bool, err error)
	Write(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// SlotFactory hands out the persistence slot owned by one browser.
type SlotFactory interface {
	Slot(browserID string) SessionSlot
}
