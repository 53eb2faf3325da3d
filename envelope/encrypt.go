package envelope

import (
	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/primitives"
)

// EncryptSubject seals the subject's canonical CBOR under contentKey
// with a fresh nonce, leaving assertions and the envelope digest intact.
// The subject's digest rides in the message aad.
func (e *Envelope) EncryptSubject(contentKey components.SymmetricKey, rng primitives.RandomNumberGenerator) (*Envelope, error) {
	return e.encryptSubjectWithNonce(contentKey, randomNonce(rng))
}

func (e *Envelope) encryptSubjectWithNonce(contentKey components.SymmetricKey, nonce components.Nonce) (*Envelope, error) {
	subject := e.Subject()
	if subject.IsObscured() {
		return nil, ErrAlreadyObscured
	}
	encrypted, err := encryptEnvelope(subject, contentKey, nonce)
	if err != nil {
		return nil, err
	}
	return e.ReplaceSubject(encrypted), nil
}

// encryptEnvelope seals a whole envelope, binding its digest via the aad.
func encryptEnvelope(target *Envelope, contentKey components.SymmetricKey, nonce components.Nonce) (*Envelope, error) {
	aad := target.Digest().TaggedCBOR().Encode()
	message, err := contentKey.Encrypt(target.Encode(), aad, nonce)
	if err != nil {
		return nil, err
	}
	return newEncrypted(message)
}

// DecryptSubject inverts EncryptSubject, checking that the recovered
// subject matches the digest the message was bound to.
func (e *Envelope) DecryptSubject(contentKey components.SymmetricKey) (*Envelope, error) {
	subject := e.Subject()
	if subject.kind != CaseEncrypted {
		return nil, ErrNotEncrypted
	}
	recovered, err := decryptEnvelope(subject, contentKey)
	if err != nil {
		return nil, err
	}
	return e.ReplaceSubject(recovered), nil
}

func decryptEnvelope(target *Envelope, contentKey components.SymmetricKey) (*Envelope, error) {
	plaintext, err := contentKey.Decrypt(target.encrypted)
	if err != nil {
		return nil, err
	}
	recovered, err := Decode(plaintext)
	if err != nil {
		return nil, err
	}
	if !recovered.Digest().Equal(target.digest) {
		return nil, ErrInvalidDigest
	}
	return recovered, nil
}

// Encrypt wraps the envelope and encrypts the wrapped subject, sealing
// the whole document.
func (e *Envelope) Encrypt(contentKey components.SymmetricKey, rng primitives.RandomNumberGenerator) (*Envelope, error) {
	return e.Wrap().EncryptSubject(contentKey, rng)
}

// Decrypt inverts Encrypt.
func (e *Envelope) Decrypt(contentKey components.SymmetricKey) (*Envelope, error) {
	decrypted, err := e.DecryptSubject(contentKey)
	if err != nil {
		return nil, err
	}
	return decrypted.TryUnwrap()
}
