package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Digmusic88/mundo-world-school/internal/testutil"
)

func TestSlotStore_ReadWriteClear(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	store := NewSlotStore(client, SlotStoreOptions{TTL: time.Minute})
	slot := store.Slot("browser-1")

	_, ok, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Write(ctx, []byte(`{"id":"u1"}`)))

	data, ok, err := store.Slot("browser-1").Read(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":"u1"}`, string(data))

	ttl, err := client.TTL(ctx, DefaultSlotPrefix+"browser-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, slot.Clear(ctx))
	_, ok, err = slot.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlotStore_PrefixIsolation(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	a := NewSlotStore(client, SlotStoreOptions{Prefix: "a:"})
	b := NewSlotStore(client, SlotStoreOptions{Prefix: "b:"})

	require.NoError(t, a.Slot("same").Write(ctx, []byte("x")))
	_, ok, err := b.Slot("same").Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlotStore_EmptyBrowserID(t *testing.T) {
	// No client calls are made for an empty id.
	store := NewSlotStore(nil, SlotStoreOptions{})
	slot := store.Slot("")
	ctx := context.Background()

	_, ok, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Error(t, slot.Write(ctx, []byte("x")))
	assert.NoError(t, slot.Clear(ctx))
}
