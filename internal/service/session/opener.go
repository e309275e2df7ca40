package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// Opener builds one Store per browser. Each browser owns its own slot, so
// every HTTP request resumes its store before any sign-in is possible.
type Opener struct {
	dir    ports.UserDirectory
	slots  ports.SlotFactory
	logger *slog.Logger
}

// NewOpener constructs an Opener.
func NewOpener(dir ports.UserDirectory, slots ports.SlotFactory, logger *slog.Logger) (*Opener, error) {
	if dir == nil || slots == nil {
		return nil, errors.New("session opener: directory and slot factory are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{dir: dir, slots: slots, logger: logger}, nil
}

// Open returns a resumed Store bound to browserID's slot.
func (o *Opener) Open(ctx context.Context, browserID string) *Store {
	// NewStore only fails on nil collaborators, which NewOpener rules out.
	store, _ := NewStore(StoreOptions{
		Directory: o.dir,
		Slot:      o.slots.Slot(browserID),
		Logger:    o.logger,
	})
	store.Resume(ctx)
	return store
}
