package primitives

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// secp256k1 widths.
const (
	Secp256k1PrivateKeySize   = 32
	Secp256k1PublicKeySize    = 33 // compressed SEC1
	SchnorrPublicKeySize      = 32 // x-only, BIP-340
	SchnorrSignatureSize      = 64
	ECDSACompactSignatureSize = 64 // r || s
)

// NewSecp256k1PrivateKey draws a private scalar from rng.
func NewSecp256k1PrivateKey(rng RandomNumberGenerator) []byte {
	for {
		candidate := rng.RandomBytes(Secp256k1PrivateKeySize)
		var scalar secp.ModNScalar
		if overflow := scalar.SetByteSlice(candidate); !overflow && !scalar.IsZero() {
			return candidate
		}
	}
}

func parsePrivate(data []byte) (*btcec.PrivateKey, error) {
	if len(data) != Secp256k1PrivateKeySize {
		return nil, fmt.Errorf("%w: secp256k1 private key %d", ErrInvalidSize, len(data))
	}
	priv, _ := btcec.PrivKeyFromBytes(data)
	if priv.Key.IsZero() {
		return nil, fmt.Errorf("%w: zero secp256k1 scalar", ErrInvalidData)
	}
	return priv, nil
}

// Secp256k1PublicKey returns the compressed SEC1 public key.
func Secp256k1PublicKey(privateKey []byte) ([]byte, error) {
	priv, err := parsePrivate(privateKey)
	if err != nil {
		return nil, err
	}
	return priv.PubKey().SerializeCompressed(), nil
}

// SchnorrPublicKey returns the BIP-340 x-only public key.
func SchnorrPublicKey(privateKey []byte) ([]byte, error) {
	priv, err := parsePrivate(privateKey)
	if err != nil {
		return nil, err
	}
	return schnorr.SerializePubKey(priv.PubKey()), nil
}

// ECDSASign produces a compact 64-byte r||s signature over the SHA-256
// digest of message, with low-S normalization.
func ECDSASign(privateKey, message []byte) ([]byte, error) {
	priv, err := parsePrivate(privateKey)
	if err != nil {
		return nil, err
	}
	digest := SHA256(message)
	// SignCompact prepends a recovery byte; the compact form here is the
	// bare r || s.
	sig, err := btcecdsa.SignCompact(priv, digest, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return sig[1:], nil
}

// ECDSAVerify checks a compact signature against a compressed public key.
func ECDSAVerify(publicKey, message, signature []byte) bool {
	if len(publicKey) != Secp256k1PublicKeySize || len(signature) != ECDSACompactSignatureSize {
		return false
	}
	pub, err := btcec.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	var r, s secp.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(signature[32:]); overflow {
		return false
	}
	sig := btcecdsa.NewSignature(&r, &s)
	return sig.Verify(SHA256(message), pub)
}

// SchnorrSign produces a BIP-340 signature over the SHA-256 digest of
// message.
func SchnorrSign(privateKey, message []byte) ([]byte, error) {
	priv, err := parsePrivate(privateKey)
	if err != nil {
		return nil, err
	}
	digest := SHA256(message)
	sig, err := schnorr.Sign(priv, digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return sig.Serialize(), nil
}

// SchnorrVerify checks a BIP-340 signature against an x-only public key.
func SchnorrVerify(publicKey, message, signature []byte) bool {
	if len(publicKey) != SchnorrPublicKeySize || len(signature) != SchnorrSignatureSize {
		return false
	}
	pub, err := schnorr.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(SHA256(message), pub)
}
