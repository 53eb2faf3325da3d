package envelope

import (
	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/knownvalues"
	"github.com/paritytech/bcts-go/primitives"
)

// LockSubject encrypts the subject under a fresh content key and adds a
// 'hasSecret' assertion wrapping that key under (method, secret).
// Several locks can coexist on one envelope; each wraps the same content
// key under a different secret.
func (e *Envelope) LockSubject(method components.KeyDerivationMethod, secret components.KeyWrapSecret, rng primitives.RandomNumberGenerator) (*Envelope, error) {
	contentKey := components.NewSymmetricKey(rng)
	return e.LockSubjectWithKey(method, secret, contentKey, rng)
}

// LockSubjectWithKey locks with a caller-chosen content key, so multiple
// locks can share it.
func (e *Envelope) LockSubjectWithKey(method components.KeyDerivationMethod, secret components.KeyWrapSecret, contentKey components.SymmetricKey, rng primitives.RandomNumberGenerator) (*Envelope, error) {
	locked := e
	if e.Subject().kind != CaseEncrypted {
		var err error
		if locked, err = e.EncryptSubject(contentKey, rng); err != nil {
			return nil, err
		}
	}
	encryptedKey, err := components.LockKey(method, secret, contentKey, rng)
	if err != nil {
		return nil, err
	}
	return locked.AddAssertion(NewKnownValue(knownvalues.HasSecret), NewComponent(encryptedKey)), nil
}

// AddLock wraps the content key under an additional secret on an
// already-locked envelope. The caller must supply the same content key.
func (e *Envelope) AddLock(method components.KeyDerivationMethod, secret components.KeyWrapSecret, contentKey components.SymmetricKey, rng primitives.RandomNumberGenerator) (*Envelope, error) {
	if e.Subject().kind != CaseEncrypted {
		return nil, ErrNotEncrypted
	}
	encryptedKey, err := components.LockKey(method, secret, contentKey, rng)
	if err != nil {
		return nil, err
	}
	return e.AddAssertion(NewKnownValue(knownvalues.HasSecret), NewComponent(encryptedKey)), nil
}

// UnlockSubject tries every non-obscured 'hasSecret' assertion against
// the secret. Per-assertion failures drive the iteration and surface
// only as the aggregate ErrNoMatchingSecret.
func (e *Envelope) UnlockSubject(secret components.KeyWrapSecret) (*Envelope, error) {
	for _, assertion := range e.AssertionsWithKnownPredicate(knownvalues.HasSecret) {
		object, err := assertion.Object()
		if err != nil || object.IsObscured() {
			continue
		}
		leaf, err := object.Leaf()
		if err != nil {
			continue
		}
		encryptedKey, err := components.EncryptedKeyFromTaggedCBOR(leaf)
		if err != nil {
			continue
		}
		contentKey, err := encryptedKey.Unlock(secret)
		if err != nil {
			continue
		}
		decrypted, err := e.DecryptSubject(contentKey)
		if err != nil {
			continue
		}
		return decrypted, nil
	}
	return nil, ErrNoMatchingSecret
}

// Lock wraps the envelope, then locks the wrapped subject.
func (e *Envelope) Lock(method components.KeyDerivationMethod, secret components.KeyWrapSecret, rng primitives.RandomNumberGenerator) (*Envelope, error) {
	return e.Wrap().LockSubject(method, secret, rng)
}

// Unlock inverts Lock.
func (e *Envelope) Unlock(secret components.KeyWrapSecret) (*Envelope, error) {
	unlocked, err := e.UnlockSubject(secret)
	if err != nil {
		return nil, err
	}
	return unlocked.TryUnwrap()
}
