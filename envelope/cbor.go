package envelope

import (
	"fmt"

	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/knownvalues"
	"github.com/paritytech/bcts-go/ur"
)

// Case discriminants in the tag-200 wire form.
const (
	wireLeaf       = 0
	wireKnownValue = 1
	wireWrapped    = 2
	wireNode       = 3
	wireAssertion  = 4
	wireElided     = 5
	wireEncrypted  = 6
	wireCompressed = 7
)

// UntaggedCBOR renders the case-discriminated array form.
func (e *Envelope) UntaggedCBOR() dcbor.CBOR {
	switch e.kind {
	case CaseLeaf:
		return dcbor.NewArray(dcbor.NewUint(wireLeaf), e.leaf)
	case CaseKnownValue:
		return dcbor.NewArray(dcbor.NewUint(wireKnownValue), dcbor.NewUint(uint64(e.knownValue)))
	case CaseWrapped:
		return dcbor.NewArray(dcbor.NewUint(wireWrapped), e.inner.UntaggedCBOR())
	case CaseNode:
		assertions := make([]dcbor.CBOR, len(e.assertions))
		for i, a := range e.assertions {
			assertions[i] = a.UntaggedCBOR()
		}
		return dcbor.NewArray(
			dcbor.NewUint(wireNode),
			e.subject.UntaggedCBOR(),
			dcbor.NewArray(assertions...),
		)
	case CaseAssertion:
		return dcbor.NewArray(
			dcbor.NewUint(wireAssertion),
			e.predicate.UntaggedCBOR(),
			e.object.UntaggedCBOR(),
		)
	case CaseElided:
		return dcbor.NewArray(dcbor.NewUint(wireElided), e.digest.UntaggedCBOR())
	case CaseEncrypted:
		return dcbor.NewArray(dcbor.NewUint(wireEncrypted), e.encrypted.TaggedCBOR())
	default:
		return dcbor.NewArray(dcbor.NewUint(wireCompressed), e.compressed.TaggedCBOR())
	}
}

// TaggedCBOR renders the tag-200 wire form.
func (e *Envelope) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(components.TagEnvelope, e.UntaggedCBOR())
}

// Encode returns the canonical wire bytes.
func (e *Envelope) Encode() []byte { return e.TaggedCBOR().Encode() }

// Decode parses canonical wire bytes.
func Decode(data []byte) (*Envelope, error) {
	c, err := dcbor.Decode(data)
	if err != nil {
		return nil, err
	}
	return FromTaggedCBOR(c)
}

// FromTaggedCBOR reads the tag-200 form. Any invariant violation fails
// the whole decode; partial success is never returned.
func FromTaggedCBOR(c dcbor.CBOR) (*Envelope, error) {
	inner, err := c.ExpectTagged(components.TagEnvelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return FromUntaggedCBOR(inner)
}

// FromUntaggedCBOR reads the case-discriminated array form.
func FromUntaggedCBOR(c dcbor.CBOR) (*Envelope, error) {
	items, err := c.Array()
	if err != nil || len(items) < 2 {
		return nil, fmt.Errorf("%w: envelope shape", ErrTypeMismatch)
	}
	wireCase, err := items[0].Uint()
	if err != nil {
		return nil, fmt.Errorf("%w: envelope case", ErrTypeMismatch)
	}
	switch wireCase {
	case wireLeaf:
		if len(items) != 2 {
			return nil, fmt.Errorf("%w: leaf shape", ErrTypeMismatch)
		}
		return NewLeaf(items[1]), nil
	case wireKnownValue:
		if len(items) != 2 {
			return nil, fmt.Errorf("%w: known value shape", ErrTypeMismatch)
		}
		kv, err := items[1].Uint()
		if err != nil {
			return nil, fmt.Errorf("%w: known value", ErrTypeMismatch)
		}
		return NewKnownValue(knownvalues.KnownValue(kv)), nil
	case wireWrapped:
		if len(items) != 2 {
			return nil, fmt.Errorf("%w: wrapped shape", ErrTypeMismatch)
		}
		inner, err := FromUntaggedCBOR(items[1])
		if err != nil {
			return nil, err
		}
		return inner.Wrap(), nil
	case wireNode:
		if len(items) != 3 {
			return nil, fmt.Errorf("%w: node shape", ErrTypeMismatch)
		}
		subject, err := FromUntaggedCBOR(items[1])
		if err != nil {
			return nil, err
		}
		rawAssertions, err := items[2].Array()
		if err != nil || len(rawAssertions) == 0 {
			return nil, fmt.Errorf("%w: node requires assertions", ErrTypeMismatch)
		}
		assertions := make([]*Envelope, len(rawAssertions))
		for i, raw := range rawAssertions {
			if assertions[i], err = FromUntaggedCBOR(raw); err != nil {
				return nil, err
			}
		}
		return newNode(subject, assertions), nil
	case wireAssertion:
		if len(items) != 3 {
			return nil, fmt.Errorf("%w: assertion shape", ErrTypeMismatch)
		}
		predicate, err := FromUntaggedCBOR(items[1])
		if err != nil {
			return nil, err
		}
		object, err := FromUntaggedCBOR(items[2])
		if err != nil {
			return nil, err
		}
		return NewAssertion(predicate, object), nil
	case wireElided:
		if len(items) != 2 {
			return nil, fmt.Errorf("%w: elided shape", ErrTypeMismatch)
		}
		digest, err := components.DigestFromUntaggedCBOR(items[1])
		if err != nil {
			return nil, err
		}
		return newElided(digest), nil
	case wireEncrypted:
		if len(items) != 2 {
			return nil, fmt.Errorf("%w: encrypted shape", ErrTypeMismatch)
		}
		message, err := components.EncryptedMessageFromTaggedCBOR(items[1])
		if err != nil {
			return nil, err
		}
		return newEncrypted(message)
	case wireCompressed:
		if len(items) != 2 {
			return nil, fmt.Errorf("%w: compressed shape", ErrTypeMismatch)
		}
		compressed, err := components.CompressedFromTaggedCBOR(items[1])
		if err != nil {
			return nil, err
		}
		return newCompressed(compressed)
	default:
		return nil, fmt.Errorf("%w: envelope case %d", ErrTypeMismatch, wireCase)
	}
}

// UR renders the "ur:envelope/..." text form.
func (e *Envelope) UR() string {
	components.RegisterTags()
	u, err := ur.New("envelope", e.TaggedCBOR())
	if err != nil {
		panic(err)
	}
	return u.String()
}

// FromUR parses the text form.
func FromUR(s string) (*Envelope, error) {
	components.RegisterTags()
	u, err := ur.ParseTyped(s, "envelope")
	if err != nil {
		return nil, err
	}
	return FromTaggedCBOR(u.CBOR())
}
