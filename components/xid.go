package components

import (
	"encoding/hex"
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
)

// XIDSize is the byte width of an XID.
const XIDSize = 32

// XID is an extensible identifier: the SHA-256 of the canonical CBOR of
// the inception public-key set. It is stable across later key rotations,
// which only have to prove a chain back to the inception keys.
type XID struct {
	data [XIDSize]byte
}

// NewXIDFromInceptionKeys derives the identifier from the inception
// public-key container.
func NewXIDFromInceptionKeys(keys PublicKeys) XID {
	digest := NewDigestFromImage(keys.TaggedCBOR().Encode())
	var x XID
	copy(x.data[:], digest.Data())
	return x
}

// NewXIDFromData wraps an existing identifier, checking the size strictly.
func NewXIDFromData(data []byte) (XID, error) {
	if len(data) != XIDSize {
		return XID{}, fmt.Errorf("%w: xid %d", ErrInvalidSize, len(data))
	}
	var x XID
	copy(x.data[:], data)
	return x, nil
}

func (x XID) Data() []byte { return append([]byte(nil), x.data[:]...) }
func (x XID) Equal(o XID) bool { return x.data == o.data }

// Validate reports whether keys are this XID's inception keys.
func (x XID) Validate(keys PublicKeys) bool {
	return NewXIDFromInceptionKeys(keys).Equal(x)
}

func (x XID) String() string {
	return fmt.Sprintf("XID(%s)", hex.EncodeToString(x.data[:8]))
}

func (x XID) UntaggedCBOR() dcbor.CBOR { return dcbor.NewBytes(x.data[:]) }

func (x XID) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagXID, x.UntaggedCBOR())
}

// XIDFromTaggedCBOR reads the tag-40024 form.
func XIDFromTaggedCBOR(c dcbor.CBOR) (XID, error) {
	inner, err := c.ExpectTagged(TagXID)
	if err != nil {
		return XID{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	b, err := inner.Bytes()
	if err != nil {
		return XID{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewXIDFromData(b)
}

func (x XID) UR() string { return componentUR("xid", x.TaggedCBOR()) }

// XIDFromUR parses the text form.
func XIDFromUR(s string) (XID, error) {
	c, err := componentFromUR(s, "xid", TagXID)
	if err != nil {
		return XID{}, err
	}
	b, err := c.Bytes()
	if err != nil {
		return XID{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewXIDFromData(b)
}
