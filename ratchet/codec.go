package ratchet

import (
	"github.com/fxamacker/cbor/v2"
)

// CBORCodec pairs deterministic encode and strict decode modes for
// session-state serialization. State snapshots are operational data, not
// identity material, so the general-purpose codec serves here.
type CBORCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBORCodec builds the codec with deterministic encoding options.
func NewCBORCodec() (CBORCodec, error) {
	encOpts := cbor.CoreDetEncOptions()
	enc, err := encOpts.EncMode()
	if err != nil {
		return CBORCodec{}, err
	}
	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	dec, err := decOpts.DecMode()
	if err != nil {
		return CBORCodec{}, err
	}
	return CBORCodec{enc: enc, dec: dec}, nil
}

// MarshalCBOR encodes a value deterministically.
func (c CBORCodec) MarshalCBOR(value any) ([]byte, error) {
	return c.enc.Marshal(value)
}

// UnmarshalInto decodes into the provided pointer.
func (c CBORCodec) UnmarshalInto(data []byte, value any) error {
	return c.dec.Unmarshal(data, value)
}
