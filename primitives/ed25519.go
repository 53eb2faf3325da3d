package primitives

import (
	"crypto/ed25519"
	"fmt"
)

// Ed25519 key and signature widths.
const (
	Ed25519SeedSize      = ed25519.SeedSize
	Ed25519PublicKeySize = ed25519.PublicKeySize
	Ed25519SignatureSize = ed25519.SignatureSize
)

// NewEd25519Seed draws a 32-byte private seed.
func NewEd25519Seed(rng RandomNumberGenerator) []byte {
	return rng.RandomBytes(Ed25519SeedSize)
}

// Ed25519PublicKeyFromSeed expands a seed to its public key.
func Ed25519PublicKeyFromSeed(seed []byte) ([]byte, error) {
	if len(seed) != Ed25519SeedSize {
		return nil, fmt.Errorf("%w: ed25519 seed %d", ErrInvalidSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return append([]byte(nil), priv.Public().(ed25519.PublicKey)...), nil
}

// Ed25519Sign signs message with the seed form of the private key.
func Ed25519Sign(seed, message []byte) ([]byte, error) {
	if len(seed) != Ed25519SeedSize {
		return nil, fmt.Errorf("%w: ed25519 seed %d", ErrInvalidSize, len(seed))
	}
	return ed25519.Sign(ed25519.NewKeyFromSeed(seed), message), nil
}

// Ed25519Verify reports whether signature is valid for message under
// publicKey. Malformed inputs verify as false, never panic.
func Ed25519Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != Ed25519PublicKeySize || len(signature) != Ed25519SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}
