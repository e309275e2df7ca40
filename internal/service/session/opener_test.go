package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Digmusic88/mundo-world-school/internal/adapters/memslot"
	domainsession "github.com/Digmusic88/mundo-world-school/internal/domain/session"
	"github.com/Digmusic88/mundo-world-school/internal/mocks/sessiontest"
)

func TestNewOpener_RequiresCollaborators(t *testing.T) {
	_, err := NewOpener(nil, memslot.New(), nil)
	require.Error(t, err)

	_, err = NewOpener(&sessiontest.StaticDirectory{}, nil, nil)
	require.Error(t, err)
}

func TestOpener_OpenResumesPerBrowser(t *testing.T) {
	ctx := context.Background()
	factory := memslot.New()
	opener, err := NewOpener(&sessiontest.StaticDirectory{Users: testUsers()}, factory, quietLogger())
	require.NoError(t, err)

	store := opener.Open(ctx, "b1")
	assert.Equal(t, domainsession.Anonymous, store.State(), "opened stores are already resumed")
	require.True(t, store.SignIn(ctx, "ana.rodriguez@email.com", ""))

	again := opener.Open(ctx, "b1")
	assert.Equal(t, domainsession.Authenticated, again.State())
	assert.Equal(t, "3", again.User().ID)

	assert.Equal(t, domainsession.Anonymous, opener.Open(ctx, "b2").State())

	again.SignOut(ctx)
	assert.Equal(t, domainsession.Anonymous, opener.Open(ctx, "b1").State())
}
