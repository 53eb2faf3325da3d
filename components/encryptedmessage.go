package components

import (
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
)

// EncryptedMessage is an IETF ChaCha20-Poly1305 sealed payload. The
// ciphertext includes the 16-byte tag; the aad rides alongside in clear.
//
// When an envelope subject is encrypted, the aad carries the tagged CBOR
// of the subject's digest, which is how the Encrypted envelope case keeps
// its identity.
type EncryptedMessage struct {
	ciphertext []byte
	nonce      Nonce
	aad        []byte
}

// NewEncryptedMessage assembles a message from its parts.
func NewEncryptedMessage(ciphertext []byte, nonce Nonce, aad []byte) EncryptedMessage {
	return EncryptedMessage{
		ciphertext: append([]byte(nil), ciphertext...),
		nonce:      nonce,
		aad:        append([]byte(nil), aad...),
	}
}

func (m EncryptedMessage) Ciphertext() []byte { return append([]byte(nil), m.ciphertext...) }
func (m EncryptedMessage) Nonce() Nonce { return m.nonce }
func (m EncryptedMessage) AAD() []byte { return append([]byte(nil), m.aad...) }

// Digest recovers the identity digest when the aad carries one.
func (m EncryptedMessage) Digest() (Digest, bool) {
	if len(m.aad) == 0 {
		return Digest{}, false
	}
	c, err := dcbor.Decode(m.aad)
	if err != nil {
		return Digest{}, false
	}
	d, err := DigestFromTaggedCBOR(c)
	if err != nil {
		return Digest{}, false
	}
	return d, true
}

func (m EncryptedMessage) UntaggedCBOR() dcbor.CBOR {
	return dcbor.NewArray(
		dcbor.NewBytes(m.ciphertext),
		m.nonce.UntaggedCBOR(),
		dcbor.NewBytes(m.aad),
	)
}

func (m EncryptedMessage) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagEncryptedMessage, m.UntaggedCBOR())
}

// EncryptedMessageFromTaggedCBOR reads the tag-40002 form.
func EncryptedMessageFromTaggedCBOR(c dcbor.CBOR) (EncryptedMessage, error) {
	inner, err := c.ExpectTagged(TagEncryptedMessage)
	if err != nil {
		return EncryptedMessage{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return EncryptedMessageFromUntaggedCBOR(inner)
}

// EncryptedMessageFromUntaggedCBOR reads the [ciphertext, nonce, aad] array.
func EncryptedMessageFromUntaggedCBOR(c dcbor.CBOR) (EncryptedMessage, error) {
	items, err := c.Array()
	if err != nil || len(items) != 3 {
		return EncryptedMessage{}, fmt.Errorf("%w: encrypted message shape", ErrTypeMismatch)
	}
	ct, err := items[0].Bytes()
	if err != nil {
		return EncryptedMessage{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	nb, err := items[1].Bytes()
	if err != nil {
		return EncryptedMessage{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	nonce, err := NewNonceFromData(nb)
	if err != nil {
		return EncryptedMessage{}, err
	}
	aad, err := items[2].Bytes()
	if err != nil {
		return EncryptedMessage{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewEncryptedMessage(ct, nonce, aad), nil
}
