package components

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// UUID is an RFC-4122 identifier carried under tag 37 as 16 bytes.
type UUID struct {
	id uuid.UUID
}

// NewUUID draws a random (version 4) identifier from rng.
func NewUUID(rng primitives.RandomNumberGenerator) UUID {
	b := rng.RandomBytes(16)
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	id, _ := uuid.FromBytes(b)
	return UUID{id: id}
}

// NewUUIDFromString parses the canonical textual form.
func NewUUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return UUID{id: id}, nil
}

// NewUUIDFromData wraps 16 raw bytes.
func NewUUIDFromData(data []byte) (UUID, error) {
	id, err := uuid.FromBytes(data)
	if err != nil {
		return UUID{}, fmt.Errorf("%w: uuid %d", ErrInvalidSize, len(data))
	}
	return UUID{id: id}, nil
}

func (u UUID) String() string { return u.id.String() }

func (u UUID) Data() []byte {
	b := u.id
	return b[:]
}

func (u UUID) Equal(o UUID) bool { return u.id == o.id }

func (u UUID) UntaggedCBOR() dcbor.CBOR { return dcbor.NewBytes(u.Data()) }

func (u UUID) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagUUID, u.UntaggedCBOR())
}

// UUIDFromTaggedCBOR reads the tag-37 form.
func UUIDFromTaggedCBOR(c dcbor.CBOR) (UUID, error) {
	inner, err := c.ExpectTagged(TagUUID)
	if err != nil {
		return UUID{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	b, err := inner.Bytes()
	if err != nil {
		return UUID{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewUUIDFromData(b)
}
