package components

import (
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// sealedMessageInfo is the fixed HKDF info string for content keys.
const sealedMessageInfo = "SealedMessage"

// SealedMessage combines an ephemeral KEM with an AEAD of the content:
// the recipient's public key encapsulates a shared secret, HKDF derives
// the content key, and the plaintext is sealed under a fresh nonce.
type SealedMessage struct {
	message      EncryptedMessage
	scheme       EncapsulationScheme
	encapsulated []byte // ephemeral public key (X25519) or kem ciphertext (ML-KEM)
}

// NewSealedMessage seals plaintext to a recipient with a random nonce.
func NewSealedMessage(plaintext []byte, recipient EncapsulationPublicKey, aad []byte, rng primitives.RandomNumberGenerator) (SealedMessage, error) {
	return NewSealedMessageWithNonce(plaintext, recipient, aad, NewNonce(rng), rng)
}

// NewSealedMessageWithNonce seals with an explicit nonce, for tests.
func NewSealedMessageWithNonce(plaintext []byte, recipient EncapsulationPublicKey, aad []byte, nonce Nonce, rng primitives.RandomNumberGenerator) (SealedMessage, error) {
	var shared, encapsulated []byte
	switch {
	case recipient.scheme == KEMX25519:
		ephemeral := primitives.NewX25519PrivateKey(rng)
		ephemeralPub, err := primitives.X25519PublicKey(ephemeral)
		if err != nil {
			return SealedMessage{}, err
		}
		shared, err = primitives.X25519Agreement(ephemeral, recipient.data)
		if err != nil {
			return SealedMessage{}, err
		}
		encapsulated = ephemeralPub
	default:
		name, err := recipient.scheme.mlkemName()
		if err != nil {
			return SealedMessage{}, err
		}
		encapsulated, shared, err = primitives.MLKEMEncapsulate(name, recipient.data, rng)
		if err != nil {
			return SealedMessage{}, err
		}
	}
	contentKey, err := NewSymmetricKeyFromData(
		primitives.HKDFSHA256(shared, nil, []byte(sealedMessageInfo), SymmetricKeySize))
	if err != nil {
		return SealedMessage{}, err
	}
	message, err := contentKey.Encrypt(plaintext, aad, nonce)
	if err != nil {
		return SealedMessage{}, err
	}
	return SealedMessage{message: message, scheme: recipient.scheme, encapsulated: encapsulated}, nil
}

// Scheme returns the encapsulation scheme used.
func (s SealedMessage) Scheme() EncapsulationScheme { return s.scheme }

// Message returns the sealed payload.
func (s SealedMessage) Message() EncryptedMessage { return s.message }

// Decrypt recovers the plaintext with the recipient's private key. A
// private key from a different scheme reports ErrSchemeMismatch.
func (s SealedMessage) Decrypt(recipient EncapsulationPrivateKey) ([]byte, error) {
	if recipient.scheme != s.scheme {
		return nil, fmt.Errorf("%w: sealed %v, key %v", ErrSchemeMismatch, s.scheme, recipient.scheme)
	}
	var shared []byte
	var err error
	if s.scheme == KEMX25519 {
		shared, err = primitives.X25519Agreement(recipient.data, s.encapsulated)
	} else {
		var name string
		name, err = s.scheme.mlkemName()
		if err == nil {
			shared, err = primitives.MLKEMDecapsulate(name, recipient.data, s.encapsulated)
		}
	}
	if err != nil {
		return nil, err
	}
	contentKey, err := NewSymmetricKeyFromData(
		primitives.HKDFSHA256(shared, nil, []byte(sealedMessageInfo), SymmetricKeySize))
	if err != nil {
		return nil, err
	}
	return contentKey.Decrypt(s.message)
}

func (s SealedMessage) UntaggedCBOR() dcbor.CBOR {
	return dcbor.NewArray(
		s.message.TaggedCBOR(),
		kemKeyCBOR(s.scheme, s.encapsulated),
	)
}

func (s SealedMessage) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagSealedMessage, s.UntaggedCBOR())
}

// SealedMessageFromTaggedCBOR reads the tag-40019 form.
func SealedMessageFromTaggedCBOR(c dcbor.CBOR) (SealedMessage, error) {
	inner, err := c.ExpectTagged(TagSealedMessage)
	if err != nil {
		return SealedMessage{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	items, err := inner.Array()
	if err != nil || len(items) != 2 {
		return SealedMessage{}, fmt.Errorf("%w: sealed message shape", ErrTypeMismatch)
	}
	message, err := EncryptedMessageFromTaggedCBOR(items[0])
	if err != nil {
		return SealedMessage{}, err
	}
	scheme, encapsulated, err := kemKeyFromCBOR(items[1])
	if err != nil {
		return SealedMessage{}, err
	}
	return SealedMessage{message: message, scheme: scheme, encapsulated: encapsulated}, nil
}

func (s SealedMessage) UR() string { return componentUR("crypto-sealed", s.TaggedCBOR()) }

// SealedMessageFromUR parses the text form.
func SealedMessageFromUR(str string) (SealedMessage, error) {
	RegisterTags()
	u, err := parseComponentUR(str, "crypto-sealed")
	if err != nil {
		return SealedMessage{}, err
	}
	return SealedMessageFromTaggedCBOR(u)
}
