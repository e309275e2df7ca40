package httpx

import (
	"context"

	domainsession "github.com/Digmusic88/mundo-world-school/internal/domain/session"
	"github.com/Digmusic88/mundo-world-school/internal/service/session"
)

// Unexported context key types avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same keys.
type (
	browserIDKey struct{}
	storeKey     struct{}
)

func withBrowserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, browserIDKey{}, id)
}

// BrowserIDFromContext returns the browser id issued by the BrowserID middleware, or "".
func BrowserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(browserIDKey{}).(string)
	return id
}

// WithStore returns a child context carrying the request's session store.
// A nil store leaves ctx unchanged.
func WithStore(ctx context.Context, store *session.Store) context.Context {
	if store == nil {
		return ctx
	}
	return context.WithValue(ctx, storeKey{}, store)
}

// StoreFromContext returns the session store opened for this request.
func StoreFromContext(ctx context.Context) (*session.Store, bool) {
	store, ok := ctx.Value(storeKey{}).(*session.Store)
	return store, ok && store != nil
}

// SnapshotFromContext returns the request's session snapshot. Requests that
// never went through the Sessions middleware observe an anonymous session.
func SnapshotFromContext(ctx context.Context) domainsession.Snapshot {
	if store, ok := StoreFromContext(ctx); ok {
		return store.Snapshot()
	}
	return domainsession.Snapshot{State: domainsession.Anonymous}
}
