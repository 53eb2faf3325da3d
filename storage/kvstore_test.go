package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/envelope"
	"github.com/paritytech/bcts-go/knownvalues"
	"github.com/paritytech/bcts-go/primitives"
)

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rng := primitives.SeededRNG([]byte("store"))
	store := NewMemStore()

	id := components.NewARID(rng)
	e := envelope.NewString("stored document").
		AddAssertion(envelope.NewKnownValue(knownvalues.Note), envelope.NewString("kept"))

	require.NoError(t, store.Put(ctx, id, e))
	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Equal(e))

	other := components.NewARID(rng)
	_, err = store.Get(ctx, other)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, store.Delete(ctx, id))
}
