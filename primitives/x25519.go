package primitives

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// X25519KeySize is the byte width of scalars and u-coordinates.
const X25519KeySize = 32

// The u-coordinates of the known torsion-subgroup points, in canonical
// (high-bit clear) form. Non-canonical variants are caught by the
// high-bit check before this table is consulted.
var lowOrderPoints = [][X25519KeySize]byte{
	// 0 (order 4)
	{},
	// 1 (order 1)
	{0x01},
	// order 8
	{0xe0, 0xeb, 0x7a, 0x7c, 0x3b, 0x41, 0xb8, 0xae, 0x16, 0x56, 0xe3, 0xfa, 0xf1, 0x9f, 0xc4, 0x6a,
		0xda, 0x09, 0x8d, 0xeb, 0x9c, 0x32, 0xb1, 0xfd, 0x86, 0x62, 0x05, 0x16, 0x5f, 0x49, 0xb8, 0x00},
	// order 8
	{0x5f, 0x9c, 0x95, 0xbc, 0xa3, 0x50, 0x8c, 0x24, 0xb1, 0xd0, 0xb1, 0x55, 0x9c, 0x83, 0xef, 0x5b,
		0x04, 0x44, 0x5c, 0xc4, 0x58, 0x1c, 0x8e, 0x86, 0xd8, 0x22, 0x4e, 0xdd, 0xd0, 0x9f, 0x11, 0x57},
	// p-1 (order 2)
	{0xec, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f},
	// p (= 0)
	{0xed, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f},
	// p+1 (= 1)
	{0xee, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f},
}

// ValidateX25519PublicKey rejects non-canonical u-coordinates (high bit
// set) and the known low-order points.
func ValidateX25519PublicKey(publicKey []byte) error {
	if len(publicKey) != X25519KeySize {
		return fmt.Errorf("%w: x25519 public key %d", ErrInvalidSize, len(publicKey))
	}
	if publicKey[31]&0x80 != 0 {
		return ErrNonCanonicalKey
	}
	for i := range lowOrderPoints {
		if subtle.ConstantTimeCompare(publicKey, lowOrderPoints[i][:]) == 1 {
			return ErrLowOrderPoint
		}
	}
	return nil
}

// NewX25519PrivateKey draws a clamped scalar from rng.
func NewX25519PrivateKey(rng RandomNumberGenerator) []byte {
	scalar := rng.RandomBytes(X25519KeySize)
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
	return scalar
}

// X25519PublicKey returns the public u-coordinate for a scalar.
func X25519PublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != X25519KeySize {
		return nil, fmt.Errorf("%w: x25519 private key %d", ErrInvalidSize, len(privateKey))
	}
	return curve25519.X25519(privateKey, curve25519.Basepoint)
}

// X25519Agreement computes the shared secret, validating the peer point
// first. An all-zero product is rejected.
func X25519Agreement(privateKey, peerPublicKey []byte) ([]byte, error) {
	if len(privateKey) != X25519KeySize {
		return nil, fmt.Errorf("%w: x25519 private key %d", ErrInvalidSize, len(privateKey))
	}
	if err := ValidateX25519PublicKey(peerPublicKey); err != nil {
		return nil, err
	}
	shared, err := curve25519.X25519(privateKey, peerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return shared, nil
}
