package ur

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-go/dcbor"
)

func TestRoundTrip(t *testing.T) {
	value := dcbor.NewTagged(40001, dcbor.NewBytes([]byte{1, 2, 3}))
	u, err := New("digest", value)
	require.NoError(t, err)

	s := u.String()
	assert.True(t, strings.HasPrefix(s, "ur:digest/"))

	back, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "digest", back.Type())
	assert.True(t, back.CBOR().Equal(value))
}

func TestParseTyped(t *testing.T) {
	u, err := New("envelope", dcbor.NewUint(1))
	require.NoError(t, err)

	_, err = ParseTyped(u.String(), "envelope")
	require.NoError(t, err)

	_, err = ParseTyped(u.String(), "seed")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestParseRejects(t *testing.T) {
	_, err := Parse("digest/aeadao")
	assert.ErrorIs(t, err, ErrInvalidScheme)

	_, err = Parse("ur:DIGEST/aeadao")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = Parse("ur:digest")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = Parse("ur:digest/zzzz")
	assert.ErrorIs(t, err, ErrInvalidBody)

	_, err = New("Not Valid", dcbor.NewUint(1))
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestBodyIsNotCaseSensitive(t *testing.T) {
	u, err := New("seed", dcbor.NewBytes([]byte{9}))
	require.NoError(t, err)
	s := u.String()
	upper := "ur:seed/" + strings.ToUpper(strings.TrimPrefix(s, "ur:seed/"))
	back, err := Parse(upper)
	require.NoError(t, err)
	assert.True(t, back.CBOR().Equal(u.CBOR()))
}
