package knownvalues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "note", Note.Name())
	assert.Equal(t, "hasSecret", HasSecret.Name())
	assert.Equal(t, "12345", KnownValue(12345).Name())
}

func TestForName(t *testing.T) {
	kv, ok := GlobalStore().ForName("sskrShare")
	require.True(t, ok)
	assert.Equal(t, SSKRShare, kv)

	_, ok = GlobalStore().ForName("nonsense")
	assert.False(t, ok)
}

func TestInsertConflicts(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Insert(KnownValue(9000), "myPredicate"))
	// Exact duplicate is idempotent.
	require.NoError(t, s.Insert(KnownValue(9000), "myPredicate"))
	// A different name for the same codepoint is refused.
	err := s.Insert(KnownValue(9000), "otherPredicate")
	assert.ErrorIs(t, err, ErrNameConflict)
}

func TestCBORRoundTrip(t *testing.T) {
	for _, kv := range []KnownValue{IsA, Note, SSKRShare, KnownValue(424242)} {
		c := kv.CBOR()
		back, err := FromCBOR(c)
		require.NoError(t, err)
		assert.Equal(t, kv, back)
	}
}
