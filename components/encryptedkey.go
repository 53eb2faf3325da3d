package components

import (
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// KeyDerivationMethod selects how an EncryptedKey turns a secret into a
// wrap key.
type KeyDerivationMethod int

const (
	MethodPBKDF2 KeyDerivationMethod = iota
	MethodScrypt
	MethodArgon2id
	MethodSSHAgent
)

func (m KeyDerivationMethod) String() string {
	switch m {
	case MethodPBKDF2:
		return "PBKDF2"
	case MethodScrypt:
		return "Scrypt"
	case MethodArgon2id:
		return "Argon2id"
	case MethodSSHAgent:
		return "SSHAgent"
	default:
		return fmt.Sprintf("KeyDerivationMethod(%d)", int(m))
	}
}

// kdfSaltSize is the width of the per-key derivation salt.
const kdfSaltSize = 16

// EncryptedKey wraps a symmetric content key under a secret-derived wrap
// key: {method, parameters, kdf salt, nonce, ciphertext}. Unlocking with
// the wrong secret reports ErrWrongSecret.
type EncryptedKey struct {
	method     KeyDerivationMethod
	pbkdf2     primitives.PBKDF2Params
	scrypt     primitives.ScryptParams
	argon2     primitives.Argon2idParams
	salt       []byte
	nonce      Nonce
	ciphertext []byte
}

// KeyWrapSecret is the secret input to LockKey and Unlock. For the KDF
// methods it is a Password; for SSHAgent it is an AgentSecret holding an
// SSHAgentChallengeSigner.
type KeyWrapSecret interface {
	wrapKey(method KeyDerivationMethod, ek *EncryptedKey) ([]byte, error)
}

// Password is a byte-string secret for the KDF methods.
type Password []byte

func (p Password) wrapKey(method KeyDerivationMethod, ek *EncryptedKey) ([]byte, error) {
	switch method {
	case MethodPBKDF2:
		return ek.pbkdf2.Derive(p, ek.salt)
	case MethodScrypt:
		return ek.scrypt.Derive(p, ek.salt)
	case MethodArgon2id:
		return ek.argon2.Derive(p, ek.salt)
	default:
		return nil, fmt.Errorf("%w: password cannot serve %v", ErrInvalidData, method)
	}
}

// SSHAgentChallengeSigner produces a deterministic signature over a
// challenge; the SHA-256 of the signature is the wrap key. Ed25519 agent
// keys satisfy the determinism requirement.
type SSHAgentChallengeSigner interface {
	SignChallenge(challenge []byte) ([]byte, error)
}

// AgentSecret adapts an SSHAgentChallengeSigner to KeyWrapSecret.
type AgentSecret struct {
	Signer SSHAgentChallengeSigner
}

func (a AgentSecret) wrapKey(method KeyDerivationMethod, ek *EncryptedKey) ([]byte, error) {
	if method != MethodSSHAgent {
		return nil, fmt.Errorf("%w: agent cannot serve %v", ErrInvalidData, method)
	}
	sig, err := a.Signer.SignChallenge(ek.salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return primitives.SHA256(sig), nil
}

// LockKey wraps contentKey under (method, secret) with default
// parameters for the chosen method.
func LockKey(method KeyDerivationMethod, secret KeyWrapSecret, contentKey SymmetricKey, rng primitives.RandomNumberGenerator) (EncryptedKey, error) {
	ek := EncryptedKey{
		method: method,
		pbkdf2: primitives.DefaultPBKDF2Params,
		scrypt: primitives.DefaultScryptParams,
		argon2: primitives.DefaultArgon2idParams,
		salt:   rng.RandomBytes(kdfSaltSize),
		nonce:  NewNonce(rng),
	}
	wrap, err := secret.wrapKey(method, &ek)
	if err != nil {
		return EncryptedKey{}, err
	}
	ct, err := primitives.AEADEncrypt(wrap, ek.nonce.Data(), contentKey.Data(), nil)
	if err != nil {
		return EncryptedKey{}, err
	}
	ek.ciphertext = ct
	return ek, nil
}

// Unlock recovers the content key; an AEAD tag mismatch reports
// ErrWrongSecret.
func (ek EncryptedKey) Unlock(secret KeyWrapSecret) (SymmetricKey, error) {
	wrap, err := secret.wrapKey(ek.method, &ek)
	if err != nil {
		return SymmetricKey{}, err
	}
	raw, err := primitives.AEADDecrypt(wrap, ek.nonce.Data(), ek.ciphertext, nil)
	if err != nil {
		return SymmetricKey{}, ErrWrongSecret
	}
	return NewSymmetricKeyFromData(raw)
}

// Method returns the derivation method.
func (ek EncryptedKey) Method() KeyDerivationMethod { return ek.method }

// params renders the method-specific parameter array.
func (ek EncryptedKey) params() dcbor.CBOR {
	switch ek.method {
	case MethodPBKDF2:
		return dcbor.NewArray(dcbor.NewUint(uint64(ek.pbkdf2.Iterations)))
	case MethodScrypt:
		return dcbor.NewArray(
			dcbor.NewUint(uint64(ek.scrypt.LogN)),
			dcbor.NewUint(uint64(ek.scrypt.R)),
			dcbor.NewUint(uint64(ek.scrypt.P)),
		)
	case MethodArgon2id:
		return dcbor.NewArray(
			dcbor.NewUint(uint64(ek.argon2.Time)),
			dcbor.NewUint(uint64(ek.argon2.MemoryK)),
			dcbor.NewUint(uint64(ek.argon2.Threads)),
		)
	default:
		return dcbor.NewArray()
	}
}

func (ek EncryptedKey) UntaggedCBOR() dcbor.CBOR {
	return dcbor.NewArray(
		dcbor.NewUint(uint64(ek.method)),
		ek.params(),
		dcbor.NewBytes(ek.salt),
		ek.nonce.UntaggedCBOR(),
		dcbor.NewBytes(ek.ciphertext),
	)
}

func (ek EncryptedKey) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagEncryptedKey, ek.UntaggedCBOR())
}

// EncryptedKeyFromTaggedCBOR reads the tag-40021 form.
func EncryptedKeyFromTaggedCBOR(c dcbor.CBOR) (EncryptedKey, error) {
	inner, err := c.ExpectTagged(TagEncryptedKey)
	if err != nil {
		return EncryptedKey{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	items, err := inner.Array()
	if err != nil || len(items) != 5 {
		return EncryptedKey{}, fmt.Errorf("%w: encrypted key shape", ErrTypeMismatch)
	}
	methodRaw, err := items[0].Uint()
	if err != nil || methodRaw > uint64(MethodSSHAgent) {
		return EncryptedKey{}, fmt.Errorf("%w: derivation method", ErrTypeMismatch)
	}
	ek := EncryptedKey{method: KeyDerivationMethod(methodRaw)}
	params, err := items[1].Array()
	if err != nil {
		return EncryptedKey{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	if err := ek.readParams(params); err != nil {
		return EncryptedKey{}, err
	}
	if ek.salt, err = items[2].Bytes(); err != nil {
		return EncryptedKey{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	nb, err := items[3].Bytes()
	if err != nil {
		return EncryptedKey{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	if ek.nonce, err = NewNonceFromData(nb); err != nil {
		return EncryptedKey{}, err
	}
	if ek.ciphertext, err = items[4].Bytes(); err != nil {
		return EncryptedKey{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return ek, nil
}

func (ek *EncryptedKey) readParams(params []dcbor.CBOR) error {
	uints := make([]uint64, len(params))
	for i, p := range params {
		u, err := p.Uint()
		if err != nil {
			return fmt.Errorf("%w: kdf parameter", ErrTypeMismatch)
		}
		uints[i] = u
	}
	switch ek.method {
	case MethodPBKDF2:
		if len(uints) != 1 {
			return fmt.Errorf("%w: pbkdf2 parameters", ErrTypeMismatch)
		}
		ek.pbkdf2 = primitives.PBKDF2Params{Iterations: int(uints[0])}
	case MethodScrypt:
		if len(uints) != 3 {
			return fmt.Errorf("%w: scrypt parameters", ErrTypeMismatch)
		}
		ek.scrypt = primitives.ScryptParams{LogN: uint8(uints[0]), R: int(uints[1]), P: int(uints[2])}
	case MethodArgon2id:
		if len(uints) != 3 {
			return fmt.Errorf("%w: argon2id parameters", ErrTypeMismatch)
		}
		ek.argon2 = primitives.Argon2idParams{Time: uint32(uints[0]), MemoryK: uint32(uints[1]), Threads: uint8(uints[2])}
	case MethodSSHAgent:
		if len(uints) != 0 {
			return fmt.Errorf("%w: ssh agent parameters", ErrTypeMismatch)
		}
	}
	return nil
}
