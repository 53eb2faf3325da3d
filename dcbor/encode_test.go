package dcbor

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIntegers(t *testing.T) {
	tests := []struct {
		name string
		v    CBOR
		want string
	}{
		{"zero", NewUint(0), "00"},
		{"one", NewUint(1), "01"},
		{"23 inline", NewUint(23), "17"},
		{"24 one byte", NewUint(24), "1818"},
		{"255", NewUint(255), "18ff"},
		{"256", NewUint(256), "190100"},
		{"65535", NewUint(65535), "19ffff"},
		{"65536", NewUint(65536), "1a00010000"},
		{"2^32", NewUint(1 << 32), "1b0000000100000000"},
		{"max u64", NewUint(math.MaxUint64), "1bffffffffffffffff"},
		{"minus one", NewInt(-1), "20"},
		{"minus 24", NewInt(-24), "37"},
		{"minus 25", NewInt(-25), "3818"},
		{"minus 1000", NewInt(-1000), "3903e7"},
		{"min i64", NewInt(math.MinInt64), "3b7fffffffffffffff"},
		{"minus 2^64", NewNegative(math.MaxUint64), "3bffffffffffffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hex.EncodeToString(tt.v.Encode()))
		})
	}
}

func TestEncodeFloatReduction(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		want string
	}{
		{"1.0 reduces to 1", 1.0, "01"},
		{"0.0 reduces to 0", 0.0, "00"},
		{"negative zero reduces to 0", math.Copysign(0, -1), "00"},
		{"-1.0 reduces to -1", -1.0, "20"},
		{"42.0 reduces", 42.0, "182a"},
		{"2^32 reduces", 4294967296.0, "1b0000000100000000"},
		{"-2^64 reduces", -18446744073709551616.0, "3bffffffffffffffff"},
		{"1.5 stays float", 1.5, "fb3ff8000000000000"},
		{"pi stays float", math.Pi, "fb400921fb54442d18"},
		{"2^64 stays float", 18446744073709551616.0, "fb43f0000000000000"},
		{"NaN canonical", math.NaN(), "f97e00"},
		{"+inf", math.Inf(1), "f97c00"},
		{"-inf", math.Inf(-1), "f9fc00"},
		{"smallest subnormal", math.SmallestNonzeroFloat64, "fb0000000000000001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hex.EncodeToString(NewFloat(tt.f).Encode()))
		})
	}
}

func TestEncodeStringsAndArrays(t *testing.T) {
	assert.Equal(t, "60", hex.EncodeToString(NewText("").Encode()))
	assert.Equal(t, "6161", hex.EncodeToString(NewText("a").Encode()))
	assert.Equal(t, "6548656c6c6f", hex.EncodeToString(NewText("Hello").Encode()))
	assert.Equal(t, "40", hex.EncodeToString(NewBytes(nil).Encode()))
	assert.Equal(t, "4401020304", hex.EncodeToString(NewBytes([]byte{1, 2, 3, 4}).Encode()))
	assert.Equal(t, "80", hex.EncodeToString(NewArray().Encode()))
	assert.Equal(t, "83010203",
		hex.EncodeToString(NewArray(NewUint(1), NewUint(2), NewUint(3)).Encode()))
	assert.Equal(t, "c24101", hex.EncodeToString(NewTagged(2, NewBytes([]byte{1})).Encode()))
	assert.Equal(t, "f4", hex.EncodeToString(False.Encode()))
	assert.Equal(t, "f5", hex.EncodeToString(True.Encode()))
	assert.Equal(t, "f6", hex.EncodeToString(Null.Encode()))
}

func TestMapKeyOrdering(t *testing.T) {
	// Insertion order must not affect the encoding.
	m1 := NewMap()
	m1.Insert(NewText("b"), NewUint(2))
	m1.Insert(NewText("a"), NewUint(1))

	m2 := NewMap()
	m2.Insert(NewText("a"), NewUint(1))
	m2.Insert(NewText("b"), NewUint(2))

	assert.Equal(t, m1.CBOR().Encode(), m2.CBOR().Encode())
	assert.Equal(t, "a2616101616202", hex.EncodeToString(m1.CBOR().Encode()))

	// Keys sort by encoded bytes: 10 (0x0a) before text "a" (0x6161),
	// and shorter byte strings before longer ones sharing a prefix.
	m3 := NewMap()
	m3.Insert(NewText("aa"), NewUint(3))
	m3.Insert(NewUint(10), NewUint(1))
	m3.Insert(NewText("a"), NewUint(2))
	enc := m3.CBOR().Encode()
	assert.Equal(t, "a30a0161610262616103", hex.EncodeToString(enc))
}

func TestMapInsertReplaces(t *testing.T) {
	m := NewMap()
	m.Insert(NewText("k"), NewUint(1))
	m.Insert(NewText("k"), NewUint(2))
	require.Equal(t, 1, m.Len())
	v, ok := m.Get(NewText("k"))
	require.True(t, ok)
	u, err := v.Uint()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), u)
}

func TestEqualityByEncoding(t *testing.T) {
	assert.True(t, NewFloat(42.0).Equal(NewUint(42)))
	assert.True(t, NewInt(-1).Equal(NewNegative(0)))
	assert.False(t, NewUint(1).Equal(NewUint(2)))
	assert.False(t, NewText("1").Equal(NewUint(1)))
}
