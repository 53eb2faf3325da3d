package bytewords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownVector(t *testing.T) {
	data := []byte{0, 1, 2, 128, 255}
	assert.Equal(t, "able acid also lava zoom jade need echo taxi", Encode(data, Standard))
	assert.Equal(t, "able-acid-also-lava-zoom-jade-need-echo-taxi", Encode(data, URI))
	assert.Equal(t, "aeadaolazmjendeoti", Encode(data, Minimal))
}

func TestRoundTripAllStyles(t *testing.T) {
	inputs := [][]byte{
		{},
		{0},
		{255},
		{0xde, 0xad, 0xbe, 0xef},
		make([]byte, 64),
	}
	for i := range inputs[4] {
		inputs[4][i] = byte(i * 4)
	}
	for _, data := range inputs {
		for _, style := range []Style{Standard, URI, Minimal} {
			enc := Encode(data, style)
			dec, err := Decode(enc, style)
			require.NoError(t, err, "style %d data %x", style, data)
			assert.Equal(t, data, dec)
		}
	}
}

func TestDecodeRejectsCorruption(t *testing.T) {
	enc := Encode([]byte{1, 2, 3}, Standard)
	// Swap the first word for a different valid word.
	corrupt := "zoom" + enc[4:]
	_, err := Decode(corrupt, Standard)
	assert.ErrorIs(t, err, ErrInvalidChecksum)

	_, err = Decode("notaword able", Standard)
	assert.ErrorIs(t, err, ErrInvalidWord)

	_, err = Decode("aeadao", Minimal)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Decode("aea", Minimal)
	assert.ErrorIs(t, err, ErrInvalidWord)
}

func TestMinimalIsCaseInsensitive(t *testing.T) {
	data := []byte{9, 8, 7}
	enc := Encode(data, Minimal)
	dec, err := Decode(strings.ToUpper(enc), Minimal)
	require.NoError(t, err)
	assert.Equal(t, data, dec)
}
