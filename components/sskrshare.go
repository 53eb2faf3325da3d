package components

import (
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
)

// SSKRShareComponent wraps one raw SSKR share for CBOR and UR transport.
// Encode always emits the current tag 40309; decode also accepts the
// legacy tag 309.
type SSKRShareComponent struct {
	data []byte
}

// NewSSKRShareComponent wraps raw share bytes.
func NewSSKRShareComponent(data []byte) (SSKRShareComponent, error) {
	if len(data) < 6 {
		return SSKRShareComponent{}, fmt.Errorf("%w: sskr share %d", ErrInvalidSize, len(data))
	}
	return SSKRShareComponent{data: append([]byte(nil), data...)}, nil
}

func (s SSKRShareComponent) Data() []byte { return append([]byte(nil), s.data...) }

func (s SSKRShareComponent) Equal(o SSKRShareComponent) bool {
	return string(s.data) == string(o.data)
}

func (s SSKRShareComponent) UntaggedCBOR() dcbor.CBOR { return dcbor.NewBytes(s.data) }

func (s SSKRShareComponent) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagSSKRShare, s.UntaggedCBOR())
}

// SSKRShareComponentFromTaggedCBOR accepts tag 40309 or the legacy 309.
func SSKRShareComponentFromTaggedCBOR(c dcbor.CBOR) (SSKRShareComponent, error) {
	tag, inner, err := c.Tagged()
	if err != nil {
		return SSKRShareComponent{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	if tag != TagSSKRShare && tag != TagSSKRShareLegacy {
		return SSKRShareComponent{}, fmt.Errorf("%w: sskr tag %d", ErrTypeMismatch, tag)
	}
	b, err := inner.Bytes()
	if err != nil {
		return SSKRShareComponent{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewSSKRShareComponent(b)
}

func (s SSKRShareComponent) UR() string { return componentUR("sskr", s.TaggedCBOR()) }

// SSKRShareComponentFromUR parses the text form.
func SSKRShareComponentFromUR(str string) (SSKRShareComponent, error) {
	c, err := parseComponentUR(str, "sskr")
	if err != nil {
		return SSKRShareComponent{}, err
	}
	return SSKRShareComponentFromTaggedCBOR(c)
}
