package primitives

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// AEAD constants for IETF ChaCha20-Poly1305.
const (
	AEADKeySize   = chacha20poly1305.KeySize
	AEADNonceSize = chacha20poly1305.NonceSize
	AEADTagSize   = chacha20poly1305.Overhead
)

// AEADEncrypt seals plaintext under key/nonce with optional aad. The
// returned ciphertext includes the 16-byte tag.
func AEADEncrypt(key, nonce, plaintext, aad []byte) ([]byte, error) {
	if len(key) != AEADKeySize {
		return nil, fmt.Errorf("%w: aead key %d", ErrInvalidSize, len(key))
	}
	if len(nonce) != AEADNonceSize {
		return nil, fmt.Errorf("%w: aead nonce %d", ErrInvalidSize, len(nonce))
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// AEADDecrypt opens ciphertext; a tag mismatch returns ErrCrypto.
func AEADDecrypt(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(key) != AEADKeySize {
		return nil, fmt.Errorf("%w: aead key %d", ErrInvalidSize, len(key))
	}
	if len(nonce) != AEADNonceSize {
		return nil, fmt.Errorf("%w: aead nonce %d", ErrInvalidSize, len(nonce))
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: aead tag mismatch", ErrCrypto)
	}
	return plaintext, nil
}
