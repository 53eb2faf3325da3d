package components

import (
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// EncapsulationScheme discriminates the key-encapsulation algorithms.
// X25519 is the family default.
type EncapsulationScheme int

const (
	KEMX25519 EncapsulationScheme = iota
	KEMMLKEM512
	KEMMLKEM768
	KEMMLKEM1024
)

// Wire discriminators inside KEM containers.
const (
	kemDiscX25519    = 0
	kemDiscMLKEM512  = 1
	kemDiscMLKEM768  = 2
	kemDiscMLKEM1024 = 3
)

func (s EncapsulationScheme) String() string {
	switch s {
	case KEMX25519:
		return "X25519"
	case KEMMLKEM512:
		return "ML-KEM-512"
	case KEMMLKEM768:
		return "ML-KEM-768"
	case KEMMLKEM1024:
		return "ML-KEM-1024"
	default:
		return fmt.Sprintf("EncapsulationScheme(%d)", int(s))
	}
}

// IsMLKEM reports whether the scheme is an ML-KEM parameter set.
func (s EncapsulationScheme) IsMLKEM() bool { return s != KEMX25519 }

func (s EncapsulationScheme) mlkemName() (string, error) {
	switch s {
	case KEMMLKEM512:
		return "ML-KEM-512", nil
	case KEMMLKEM768:
		return "ML-KEM-768", nil
	case KEMMLKEM1024:
		return "ML-KEM-1024", nil
	default:
		return "", fmt.Errorf("%w: %v is not ML-KEM", ErrInvalidData, s)
	}
}

func (s EncapsulationScheme) kemDisc() uint64 {
	switch s {
	case KEMMLKEM512:
		return kemDiscMLKEM512
	case KEMMLKEM768:
		return kemDiscMLKEM768
	case KEMMLKEM1024:
		return kemDiscMLKEM1024
	default:
		return kemDiscX25519
	}
}

func kemSchemeForDisc(disc uint64) (EncapsulationScheme, error) {
	switch disc {
	case kemDiscX25519:
		return KEMX25519, nil
	case kemDiscMLKEM512:
		return KEMMLKEM512, nil
	case kemDiscMLKEM768:
		return KEMMLKEM768, nil
	case kemDiscMLKEM1024:
		return KEMMLKEM1024, nil
	default:
		return 0, fmt.Errorf("%w: kem discriminator %d", ErrInvalidData, disc)
	}
}

// EncapsulationPrivateKey is the decapsulating half of a KEM key pair.
type EncapsulationPrivateKey struct {
	scheme EncapsulationScheme
	data   []byte
}

// EncapsulationPublicKey is the encapsulating half of a KEM key pair.
type EncapsulationPublicKey struct {
	scheme EncapsulationScheme
	data   []byte
}

// NewX25519PrivateKey draws an X25519 agreement key.
func NewX25519PrivateKey(rng primitives.RandomNumberGenerator) EncapsulationPrivateKey {
	return EncapsulationPrivateKey{scheme: KEMX25519, data: primitives.NewX25519PrivateKey(rng)}
}

// NewMLKEMPrivateKey derives an ML-KEM key pair and keeps the private half.
func NewMLKEMPrivateKey(scheme EncapsulationScheme, rng primitives.RandomNumberGenerator) (EncapsulationPrivateKey, error) {
	name, err := scheme.mlkemName()
	if err != nil {
		return EncapsulationPrivateKey{}, err
	}
	_, sk, err := primitives.MLKEMGenerate(name, rng)
	if err != nil {
		return EncapsulationPrivateKey{}, err
	}
	return EncapsulationPrivateKey{scheme: scheme, data: sk}, nil
}

// NewEncapsulationPrivateKeyFromData wraps raw key material, checking
// the X25519 width strictly.
func NewEncapsulationPrivateKeyFromData(scheme EncapsulationScheme, data []byte) (EncapsulationPrivateKey, error) {
	if scheme == KEMX25519 && len(data) != primitives.X25519KeySize {
		return EncapsulationPrivateKey{}, fmt.Errorf("%w: x25519 private key %d", ErrInvalidSize, len(data))
	}
	return EncapsulationPrivateKey{scheme: scheme, data: append([]byte(nil), data...)}, nil
}

func (k EncapsulationPrivateKey) Scheme() EncapsulationScheme { return k.scheme }
func (k EncapsulationPrivateKey) Data() []byte { return append([]byte(nil), k.data...) }

// PublicKey derives the encapsulating half.
func (k EncapsulationPrivateKey) PublicKey() (EncapsulationPublicKey, error) {
	if k.scheme == KEMX25519 {
		pub, err := primitives.X25519PublicKey(k.data)
		if err != nil {
			return EncapsulationPublicKey{}, err
		}
		return EncapsulationPublicKey{scheme: KEMX25519, data: pub}, nil
	}
	name, err := k.scheme.mlkemName()
	if err != nil {
		return EncapsulationPublicKey{}, err
	}
	pub, err := primitives.MLKEMPublicKey(name, k.data)
	if err != nil {
		return EncapsulationPublicKey{}, err
	}
	return EncapsulationPublicKey{scheme: k.scheme, data: pub}, nil
}

// NewEncapsulationPublicKeyFromData wraps raw key material.
func NewEncapsulationPublicKeyFromData(scheme EncapsulationScheme, data []byte) (EncapsulationPublicKey, error) {
	if scheme == KEMX25519 {
		if err := primitives.ValidateX25519PublicKey(data); err != nil {
			return EncapsulationPublicKey{}, err
		}
	}
	return EncapsulationPublicKey{scheme: scheme, data: append([]byte(nil), data...)}, nil
}

func (k EncapsulationPublicKey) Scheme() EncapsulationScheme { return k.scheme }
func (k EncapsulationPublicKey) Data() []byte { return append([]byte(nil), k.data...) }

func (k EncapsulationPublicKey) Equal(o EncapsulationPublicKey) bool {
	return k.scheme == o.scheme && string(k.data) == string(o.data)
}

// kemKeyCBOR applies the container encoding rule: bare bytes for X25519,
// [discriminator, bytes] for ML-KEM.
func kemKeyCBOR(scheme EncapsulationScheme, data []byte) dcbor.CBOR {
	if scheme == KEMX25519 {
		return dcbor.NewBytes(data)
	}
	return dcbor.NewArray(dcbor.NewUint(scheme.kemDisc()), dcbor.NewBytes(data))
}

func kemKeyFromCBOR(c dcbor.CBOR) (EncapsulationScheme, []byte, error) {
	switch c.Kind() {
	case dcbor.KindBytes:
		b, _ := c.Bytes()
		return KEMX25519, b, nil
	case dcbor.KindArray:
		items, _ := c.Array()
		if len(items) != 2 {
			return 0, nil, fmt.Errorf("%w: kem key shape", ErrTypeMismatch)
		}
		disc, err := items[0].Uint()
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		scheme, err := kemSchemeForDisc(disc)
		if err != nil {
			return 0, nil, err
		}
		b, err := items[1].Bytes()
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return scheme, b, nil
	default:
		return 0, nil, fmt.Errorf("%w: kem key shape", ErrTypeMismatch)
	}
}

func (k EncapsulationPrivateKey) UntaggedCBOR() dcbor.CBOR {
	return kemKeyCBOR(k.scheme, k.data)
}

// TaggedCBOR uses the X25519 private-key tag; ML-KEM keys carry their
// discriminator inside the same tag.
func (k EncapsulationPrivateKey) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagX25519PrivateKey, k.UntaggedCBOR())
}

// EncapsulationPrivateKeyFromTaggedCBOR reads the tag-40010 form.
func EncapsulationPrivateKeyFromTaggedCBOR(c dcbor.CBOR) (EncapsulationPrivateKey, error) {
	inner, err := c.ExpectTagged(TagX25519PrivateKey)
	if err != nil {
		return EncapsulationPrivateKey{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	scheme, data, err := kemKeyFromCBOR(inner)
	if err != nil {
		return EncapsulationPrivateKey{}, err
	}
	return NewEncapsulationPrivateKeyFromData(scheme, data)
}

func (k EncapsulationPublicKey) UntaggedCBOR() dcbor.CBOR {
	return kemKeyCBOR(k.scheme, k.data)
}

func (k EncapsulationPublicKey) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagX25519PublicKey, k.UntaggedCBOR())
}

// EncapsulationPublicKeyFromTaggedCBOR reads the tag-40011 form.
func EncapsulationPublicKeyFromTaggedCBOR(c dcbor.CBOR) (EncapsulationPublicKey, error) {
	inner, err := c.ExpectTagged(TagX25519PublicKey)
	if err != nil {
		return EncapsulationPublicKey{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	scheme, data, err := kemKeyFromCBOR(inner)
	if err != nil {
		return EncapsulationPublicKey{}, err
	}
	return NewEncapsulationPublicKeyFromData(scheme, data)
}
