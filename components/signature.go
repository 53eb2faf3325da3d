package components

import (
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
)

// Signature is a scheme-discriminated signature value.
type Signature struct {
	scheme SigningScheme
	data   []byte
}

// NewSignature wraps raw signature bytes for a scheme.
func NewSignature(scheme SigningScheme, data []byte) Signature {
	return Signature{scheme: scheme, data: append([]byte(nil), data...)}
}

func (s Signature) Scheme() SigningScheme { return s.scheme }
func (s Signature) Data() []byte { return append([]byte(nil), s.data...) }

func (s Signature) Equal(o Signature) bool {
	return s.scheme == o.scheme && string(s.data) == string(o.data)
}

func (s Signature) String() string {
	return fmt.Sprintf("Signature(%v)", s.scheme)
}

// UntaggedCBOR selects the scheme-specific shape: bare bytes for the
// default Schnorr scheme, [discriminator, bytes] for the discriminated
// ones, and a nested tagged object for ML-DSA.
func (s Signature) UntaggedCBOR() dcbor.CBOR {
	switch {
	case s.scheme == SchemeSchnorr:
		return dcbor.NewBytes(s.data)
	case s.scheme.IsMLDSA():
		return dcbor.NewTagged(TagMLDSASignature, dcbor.NewArray(
			dcbor.NewUint(s.scheme.mldsaParamSet()),
			dcbor.NewBytes(s.data),
		))
	default:
		return dcbor.NewArray(
			dcbor.NewUint(s.scheme.disc()),
			dcbor.NewBytes(s.data),
		)
	}
}

func (s Signature) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagSignature, s.UntaggedCBOR())
}

// SignatureFromTaggedCBOR reads the tag-40020 form.
func SignatureFromTaggedCBOR(c dcbor.CBOR) (Signature, error) {
	inner, err := c.ExpectTagged(TagSignature)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return SignatureFromUntaggedCBOR(inner)
}

// SignatureFromUntaggedCBOR reads the scheme-selected shape.
func SignatureFromUntaggedCBOR(c dcbor.CBOR) (Signature, error) {
	switch c.Kind() {
	case dcbor.KindBytes:
		b, _ := c.Bytes()
		return NewSignature(SchemeSchnorr, b), nil
	case dcbor.KindTagged:
		inner, err := c.ExpectTagged(TagMLDSASignature)
		if err != nil {
			return Signature{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		items, err := inner.Array()
		if err != nil || len(items) != 2 {
			return Signature{}, fmt.Errorf("%w: ml-dsa signature shape", ErrTypeMismatch)
		}
		paramSet, err := items[0].Uint()
		if err != nil {
			return Signature{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		scheme, err := mldsaSchemeForParamSet(paramSet)
		if err != nil {
			return Signature{}, err
		}
		b, err := items[1].Bytes()
		if err != nil {
			return Signature{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return NewSignature(scheme, b), nil
	case dcbor.KindArray:
		items, _ := c.Array()
		if len(items) != 2 {
			return Signature{}, fmt.Errorf("%w: signature shape", ErrTypeMismatch)
		}
		disc, err := items[0].Uint()
		if err != nil {
			return Signature{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		scheme, err := schemeForDisc(disc)
		if err != nil {
			return Signature{}, err
		}
		b, err := items[1].Bytes()
		if err != nil {
			return Signature{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return NewSignature(scheme, b), nil
	default:
		return Signature{}, fmt.Errorf("%w: signature shape", ErrTypeMismatch)
	}
}

func (s Signature) UR() string { return componentUR("signature", s.TaggedCBOR()) }

// SignatureFromUR parses the text form.
func SignatureFromUR(str string) (Signature, error) {
	c, err := componentFromUR(str, "signature", TagSignature)
	if err != nil {
		return Signature{}, err
	}
	return SignatureFromUntaggedCBOR(c)
}
