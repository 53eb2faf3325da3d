package components

import (
	"encoding/hex"
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// ARIDSize is the byte width of an ARID.
const ARIDSize = 32

// ARID is an apparently-random identifier used as a distributed-storage
// key. It is the same width as a Digest but a distinct type with a
// distinct CBOR tag.
type ARID struct {
	data [ARIDSize]byte
}

// NewARID draws a fresh identifier from rng.
func NewARID(rng primitives.RandomNumberGenerator) ARID {
	var a ARID
	copy(a.data[:], rng.RandomBytes(ARIDSize))
	return a
}

// NewARIDFromData wraps existing bytes, checking the size strictly.
func NewARIDFromData(data []byte) (ARID, error) {
	if len(data) != ARIDSize {
		return ARID{}, fmt.Errorf("%w: arid %d", ErrInvalidSize, len(data))
	}
	var a ARID
	copy(a.data[:], data)
	return a, nil
}

// NewARIDFromHex parses a 64-character hex form.
func NewARIDFromHex(s string) (ARID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ARID{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return NewARIDFromData(b)
}

// Data returns the identifier bytes.
func (a ARID) Data() []byte { return append([]byte(nil), a.data[:]...) }

// Equal compares by content.
func (a ARID) Equal(o ARID) bool { return a.data == o.data }

// Hex returns the full lowercase hex form.
func (a ARID) Hex() string { return hex.EncodeToString(a.data[:]) }

func (a ARID) String() string {
	return fmt.Sprintf("ARID(%s)", hex.EncodeToString(a.data[:8]))
}

func (a ARID) UntaggedCBOR() dcbor.CBOR { return dcbor.NewBytes(a.data[:]) }

func (a ARID) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagARID, a.UntaggedCBOR())
}

// ARIDFromTaggedCBOR reads the tag-40012 form.
func ARIDFromTaggedCBOR(c dcbor.CBOR) (ARID, error) {
	inner, err := c.ExpectTagged(TagARID)
	if err != nil {
		return ARID{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	b, err := inner.Bytes()
	if err != nil {
		return ARID{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewARIDFromData(b)
}

func (a ARID) URType() string { return "arid" }

func (a ARID) UR() string { return componentUR("arid", a.TaggedCBOR()) }

// ARIDFromUR parses the text form.
func ARIDFromUR(s string) (ARID, error) {
	c, err := componentFromUR(s, "arid", TagARID)
	if err != nil {
		return ARID{}, err
	}
	b, err := c.Bytes()
	if err != nil {
		return ARID{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewARIDFromData(b)
}
