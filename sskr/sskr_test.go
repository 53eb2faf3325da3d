package sskr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-go/primitives"
)

func TestSplitCombine2of3(t *testing.T) {
	rng := primitives.SeededRNG([]byte("sskr"))
	secret := rng.RandomBytes(32)

	spec, err := NewSpec(1, []GroupSpec{{MemberThreshold: 2, MemberCount: 3}})
	require.NoError(t, err)
	groups, err := Generate(spec, secret, rng)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0], 3)

	// Every 2-share quorum recovers the secret.
	pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 0}}
	for _, p := range pairs {
		got, err := Combine([]Share{groups[0][p[0]], groups[0][p[1]]})
		require.NoError(t, err)
		assert.Equal(t, secret, got)
	}

	// All three work too.
	got, err := Combine(groups[0])
	require.NoError(t, err)
	assert.Equal(t, secret, got)

	// One share is not enough.
	_, err = Combine([]Share{groups[0][0]})
	assert.ErrorIs(t, err, ErrNotEnoughShares)
}

func TestCombineRejectsMixedSplits(t *testing.T) {
	rng := primitives.SeededRNG([]byte("mixed"))
	secret := rng.RandomBytes(16)
	spec, err := NewSpec(1, []GroupSpec{{MemberThreshold: 2, MemberCount: 3}})
	require.NoError(t, err)

	a, err := Generate(spec, secret, rng)
	require.NoError(t, err)
	b, err := Generate(spec, secret, rng)
	require.NoError(t, err)

	_, err = Combine([]Share{a[0][0], b[0][1]})
	assert.ErrorIs(t, err, ErrInvalidShareSet)
}

func TestTwoLevelGroups(t *testing.T) {
	rng := primitives.SeededRNG([]byte("groups"))
	secret := rng.RandomBytes(32)

	spec, err := NewSpec(2, []GroupSpec{
		{MemberThreshold: 2, MemberCount: 3},
		{MemberThreshold: 3, MemberCount: 5},
		{MemberThreshold: 1, MemberCount: 1},
	})
	require.NoError(t, err)
	groups, err := Generate(spec, secret, rng)
	require.NoError(t, err)

	// Quorum: group 0 (2 of 3) plus group 2 (1 of 1).
	got, err := Combine([]Share{groups[0][0], groups[0][2], groups[2][0]})
	require.NoError(t, err)
	assert.Equal(t, secret, got)

	// Quorum: group 1 (3 of 5) plus group 0 (2 of 3).
	got, err = Combine([]Share{
		groups[1][0], groups[1][2], groups[1][4],
		groups[0][1], groups[0][2],
	})
	require.NoError(t, err)
	assert.Equal(t, secret, got)

	// One full group is below the group threshold.
	_, err = Combine([]Share{groups[1][0], groups[1][1], groups[1][2]})
	assert.ErrorIs(t, err, ErrNotEnoughShares)

	// A full group plus a partial group still fails.
	_, err = Combine([]Share{groups[0][0], groups[0][1], groups[1][0]})
	assert.ErrorIs(t, err, ErrNotEnoughShares)
}

func TestGenerateValidatesInput(t *testing.T) {
	rng := primitives.SeededRNG([]byte("validate"))

	_, err := NewSpec(0, []GroupSpec{{MemberThreshold: 1, MemberCount: 1}})
	assert.ErrorIs(t, err, ErrInvalidSpec)
	_, err = NewSpec(2, []GroupSpec{{MemberThreshold: 1, MemberCount: 1}})
	assert.ErrorIs(t, err, ErrInvalidSpec)
	_, err = NewSpec(1, []GroupSpec{{MemberThreshold: 3, MemberCount: 2}})
	assert.ErrorIs(t, err, ErrInvalidSpec)

	spec, err := NewSpec(1, []GroupSpec{{MemberThreshold: 2, MemberCount: 2}})
	require.NoError(t, err)
	_, err = Generate(spec, rng.RandomBytes(15), rng)
	assert.ErrorIs(t, err, ErrSecretLength)
	_, err = Generate(spec, rng.RandomBytes(40), rng)
	assert.ErrorIs(t, err, ErrSecretLength)
}

func TestShareHeaderRoundTrip(t *testing.T) {
	m := shareMeta{
		id:              0xbeef,
		groupThreshold:  2,
		groupCount:      3,
		groupIndex:      1,
		memberThreshold: 2,
		memberIndex:     2,
	}
	value := make([]byte, 16)
	back, got, err := parseShare(m.encode(value))
	require.NoError(t, err)
	assert.Equal(t, m, back)
	assert.Equal(t, value, got)

	_, _, err = parseShare(Share{1, 2, 3})
	assert.ErrorIs(t, err, ErrShareFormat)
}
