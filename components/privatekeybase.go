package components

import (
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// HKDF info strings for key derivation from base material.
const (
	signingInfo   = "signing"
	agreementInfo = "agreement"
)

// PrivateKeyBase is seed material from which deterministic signing and
// agreement key pairs are derived. The same base always yields the same
// keys.
type PrivateKeyBase struct {
	material []byte
}

// NewPrivateKeyBase draws 32 bytes of base material.
func NewPrivateKeyBase(rng primitives.RandomNumberGenerator) PrivateKeyBase {
	return PrivateKeyBase{material: rng.RandomBytes(32)}
}

// NewPrivateKeyBaseFromData wraps existing material.
func NewPrivateKeyBaseFromData(data []byte) (PrivateKeyBase, error) {
	if len(data) < 1 {
		return PrivateKeyBase{}, fmt.Errorf("%w: empty key material", ErrInvalidSize)
	}
	return PrivateKeyBase{material: append([]byte(nil), data...)}, nil
}

// NewPrivateKeyBaseFromSeed derives base material from a Seed.
func NewPrivateKeyBaseFromSeed(seed Seed) PrivateKeyBase {
	return PrivateKeyBase{material: seed.Data()}
}

func (b PrivateKeyBase) Data() []byte { return append([]byte(nil), b.material...) }

func (b PrivateKeyBase) Equal(o PrivateKeyBase) bool {
	return string(b.material) == string(o.material)
}

// SchnorrSigningPrivateKey derives the default-scheme signing key.
func (b PrivateKeyBase) SchnorrSigningPrivateKey() SigningPrivateKey {
	scalar := primitives.NewSecp256k1PrivateKey(
		primitives.SeededRNG(primitives.HKDFSHA256(b.material, nil, []byte(signingInfo), 32)))
	k, _ := NewSigningPrivateKeyFromData(SchemeSchnorr, scalar)
	return k
}

// Ed25519SigningPrivateKey derives an Ed25519 signing key.
func (b PrivateKeyBase) Ed25519SigningPrivateKey() SigningPrivateKey {
	seed := primitives.HKDFSHA256(b.material, nil, []byte(signingInfo), primitives.Ed25519SeedSize)
	k, _ := NewSigningPrivateKeyFromData(SchemeEd25519, seed)
	return k
}

// X25519AgreementPrivateKey derives the agreement key.
func (b PrivateKeyBase) X25519AgreementPrivateKey() EncapsulationPrivateKey {
	scalar := primitives.HKDFSHA256(b.material, nil, []byte(agreementInfo), primitives.X25519KeySize)
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
	k, _ := NewEncapsulationPrivateKeyFromData(KEMX25519, scalar)
	return k
}

// PrivateKeys assembles the derived Schnorr + X25519 key pair container.
func (b PrivateKeyBase) PrivateKeys() PrivateKeys {
	return PrivateKeys{
		signing:       b.SchnorrSigningPrivateKey(),
		encapsulation: b.X25519AgreementPrivateKey(),
	}
}

// PublicKeys assembles the matching public container.
func (b PrivateKeyBase) PublicKeys() (PublicKeys, error) {
	return b.PrivateKeys().PublicKeys()
}

func (b PrivateKeyBase) UntaggedCBOR() dcbor.CBOR { return dcbor.NewBytes(b.material) }

func (b PrivateKeyBase) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagPrivateKeyBase, b.UntaggedCBOR())
}

// PrivateKeyBaseFromTaggedCBOR reads the tag-40013 form.
func PrivateKeyBaseFromTaggedCBOR(c dcbor.CBOR) (PrivateKeyBase, error) {
	inner, err := c.ExpectTagged(TagPrivateKeyBase)
	if err != nil {
		return PrivateKeyBase{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	data, err := inner.Bytes()
	if err != nil {
		return PrivateKeyBase{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewPrivateKeyBaseFromData(data)
}

func (b PrivateKeyBase) UR() string { return componentUR("crypto-prvkey-base", b.TaggedCBOR()) }

// PrivateKeyBaseFromUR parses the text form.
func PrivateKeyBaseFromUR(s string) (PrivateKeyBase, error) {
	c, err := componentFromUR(s, "crypto-prvkey-base", TagPrivateKeyBase)
	if err != nil {
		return PrivateKeyBase{}, err
	}
	data, err := c.Bytes()
	if err != nil {
		return PrivateKeyBase{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewPrivateKeyBaseFromData(data)
}
