package components

import (
	"encoding/hex"
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// NonceSize is the AEAD nonce width.
const NonceSize = 12

// Nonce is a 12-byte AEAD nonce.
type Nonce struct {
	data [NonceSize]byte
}

// NewNonce draws a fresh nonce from rng.
func NewNonce(rng primitives.RandomNumberGenerator) Nonce {
	var n Nonce
	copy(n.data[:], rng.RandomBytes(NonceSize))
	return n
}

// NewNonceFromData wraps existing bytes, checking the size strictly.
func NewNonceFromData(data []byte) (Nonce, error) {
	if len(data) != NonceSize {
		return Nonce{}, fmt.Errorf("%w: nonce %d", ErrInvalidSize, len(data))
	}
	var n Nonce
	copy(n.data[:], data)
	return n, nil
}

func (n Nonce) Data() []byte { return append([]byte(nil), n.data[:]...) }
func (n Nonce) Equal(o Nonce) bool { return n.data == o.data }
func (n Nonce) String() string { return "Nonce(" + hex.EncodeToString(n.data[:]) + ")" }
func (n Nonce) UntaggedCBOR() dcbor.CBOR { return dcbor.NewBytes(n.data[:]) }

func (n Nonce) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagNonce, n.UntaggedCBOR())
}

// NonceFromTaggedCBOR reads the tag-40004 form.
func NonceFromTaggedCBOR(c dcbor.CBOR) (Nonce, error) {
	inner, err := c.ExpectTagged(TagNonce)
	if err != nil {
		return Nonce{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	b, err := inner.Bytes()
	if err != nil {
		return Nonce{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewNonceFromData(b)
}

// Salt is an arbitrary-length decorrelation value.
type Salt struct {
	data []byte
}

// NewSalt draws n random bytes.
func NewSalt(rng primitives.RandomNumberGenerator, n int) (Salt, error) {
	if n < 1 {
		return Salt{}, fmt.Errorf("%w: salt %d", ErrInvalidSize, n)
	}
	return Salt{data: rng.RandomBytes(n)}, nil
}

// NewSaltForSize picks a salt length proportional to the size of the
// content it decorrelates: 8 bytes for small content, then roughly five
// percent of the content, capped at 16 plus a small random excursion.
func NewSaltForSize(rng primitives.RandomNumberGenerator, contentSize int) Salt {
	count := contentSize / 20
	if count < 8 {
		count = 8
	}
	if count > 16 {
		count = 16
	}
	extra := int(rng.RandomBytes(1)[0]) % 8
	s, _ := NewSalt(rng, count+extra)
	return s
}

// NewSaltFromData wraps existing bytes.
func NewSaltFromData(data []byte) (Salt, error) {
	if len(data) < 1 {
		return Salt{}, fmt.Errorf("%w: empty salt", ErrInvalidSize)
	}
	return Salt{data: append([]byte(nil), data...)}, nil
}

func (s Salt) Data() []byte { return append([]byte(nil), s.data...) }
func (s Salt) Equal(o Salt) bool { return string(s.data) == string(o.data) }
func (s Salt) String() string { return "Salt(" + hex.EncodeToString(s.data) + ")" }
func (s Salt) UntaggedCBOR() dcbor.CBOR { return dcbor.NewBytes(s.data) }

func (s Salt) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagSalt, s.UntaggedCBOR())
}

// SaltFromTaggedCBOR reads the tag-40018 form.
func SaltFromTaggedCBOR(c dcbor.CBOR) (Salt, error) {
	inner, err := c.ExpectTagged(TagSalt)
	if err != nil {
		return Salt{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	b, err := inner.Bytes()
	if err != nil {
		return Salt{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewSaltFromData(b)
}

// Seed is secret generation material with a minimum length of one byte.
type Seed struct {
	data []byte
}

// NewSeed draws a 16-byte seed.
func NewSeed(rng primitives.RandomNumberGenerator) Seed {
	return Seed{data: rng.RandomBytes(16)}
}

// NewSeedFromData wraps existing bytes.
func NewSeedFromData(data []byte) (Seed, error) {
	if len(data) < 1 {
		return Seed{}, fmt.Errorf("%w: empty seed", ErrInvalidSize)
	}
	return Seed{data: append([]byte(nil), data...)}, nil
}

func (s Seed) Data() []byte { return append([]byte(nil), s.data...) }
func (s Seed) Equal(o Seed) bool { return string(s.data) == string(o.data) }
func (s Seed) UntaggedCBOR() dcbor.CBOR { return dcbor.NewBytes(s.data) }

func (s Seed) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagSeed, s.UntaggedCBOR())
}

// SeedFromTaggedCBOR reads the tag-40000 form.
func SeedFromTaggedCBOR(c dcbor.CBOR) (Seed, error) {
	inner, err := c.ExpectTagged(TagSeed)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	b, err := inner.Bytes()
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewSeedFromData(b)
}

func (s Seed) URType() string { return "seed" }

func (s Seed) UR() string { return componentUR("seed", s.TaggedCBOR()) }

// SeedFromUR parses the text form.
func SeedFromUR(str string) (Seed, error) {
	c, err := componentFromUR(str, "seed", TagSeed)
	if err != nil {
		return Seed{}, err
	}
	b, err := c.Bytes()
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewSeedFromData(b)
}

// SymmetricKeySize is the ChaCha20-Poly1305 key width.
const SymmetricKeySize = 32

// SymmetricKey is a 256-bit AEAD content key.
type SymmetricKey struct {
	data [SymmetricKeySize]byte
}

// NewSymmetricKey draws a fresh key from rng.
func NewSymmetricKey(rng primitives.RandomNumberGenerator) SymmetricKey {
	var k SymmetricKey
	copy(k.data[:], rng.RandomBytes(SymmetricKeySize))
	return k
}

// NewSymmetricKeyFromData wraps existing bytes, checking the size strictly.
func NewSymmetricKeyFromData(data []byte) (SymmetricKey, error) {
	if len(data) != SymmetricKeySize {
		return SymmetricKey{}, fmt.Errorf("%w: symmetric key %d", ErrInvalidSize, len(data))
	}
	var k SymmetricKey
	copy(k.data[:], data)
	return k, nil
}

func (k SymmetricKey) Data() []byte { return append([]byte(nil), k.data[:]...) }
func (k SymmetricKey) Equal(o SymmetricKey) bool { return k.data == o.data }
func (k SymmetricKey) String() string { return "SymmetricKey" }

// Encrypt seals plaintext under this key with the given nonce and aad.
func (k SymmetricKey) Encrypt(plaintext []byte, aad []byte, nonce Nonce) (EncryptedMessage, error) {
	ct, err := primitives.AEADEncrypt(k.data[:], nonce.Data(), plaintext, aad)
	if err != nil {
		return EncryptedMessage{}, err
	}
	return EncryptedMessage{ciphertext: ct, nonce: nonce, aad: append([]byte(nil), aad...)}, nil
}

// Decrypt opens an EncryptedMessage.
func (k SymmetricKey) Decrypt(message EncryptedMessage) ([]byte, error) {
	return primitives.AEADDecrypt(k.data[:], message.nonce.Data(), message.ciphertext, message.aad)
}
