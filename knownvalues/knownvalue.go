// Package knownvalues provides compact 64-bit codepoints standing for
// frequently used ontological concepts, and the process-wide registry
// mapping codepoints to short names.
package knownvalues

import (
	"github.com/paritytech/bcts-go/dcbor"
)

// TagKnownValue is the CBOR tag wrapping a known-value codepoint.
const TagKnownValue = 40000

// KnownValue is a non-negative 64-bit codepoint. Equality is by value;
// the name is a registry affordance, never part of identity.
type KnownValue uint64

// Codepoints assigned for the suite. The registry seeds these names.
const (
	IsA            KnownValue = 1
	ID             KnownValue = 2
	Signed         KnownValue = 3
	Note           KnownValue = 4
	HasRecipient   KnownValue = 5
	SSKRShare      KnownValue = 6
	Controller     KnownValue = 7
	Key            KnownValue = 8
	DereferenceVia KnownValue = 9
	Entity         KnownValue = 10
	HasName        KnownValue = 11
	Language       KnownValue = 12
	Issuer         KnownValue = 13
	Holder         KnownValue = 14
	Salt           KnownValue = 15
	Date           KnownValue = 16
	Unknown        KnownValue = 17
	Version        KnownValue = 18
	HasSecret      KnownValue = 20
	Attachment     KnownValue = 50
	Vendor         KnownValue = 51
	ConformsTo     KnownValue = 52
)

// Name resolves the codepoint through the global store; unknown values
// render as their decimal string.
func (kv KnownValue) Name() string {
	return GlobalStore().Name(kv)
}

// CBOR returns the tagged encoding of the codepoint.
func (kv KnownValue) CBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagKnownValue, dcbor.NewUint(uint64(kv)))
}

// FromCBOR reads a tagged known value.
func FromCBOR(c dcbor.CBOR) (KnownValue, error) {
	inner, err := c.ExpectTagged(TagKnownValue)
	if err != nil {
		return 0, err
	}
	u, err := inner.Uint()
	if err != nil {
		return 0, err
	}
	return KnownValue(u), nil
}

func (kv KnownValue) String() string {
	return "'" + kv.Name() + "'"
}
