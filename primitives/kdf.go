package primitives

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// DerivedKeySize is the width of every password-derived wrap key.
const DerivedKeySize = 32

// PBKDF2Params carries the tunables stored alongside a PBKDF2-wrapped key.
type PBKDF2Params struct {
	Iterations int
}

// DefaultPBKDF2Params matches the reference corpus.
var DefaultPBKDF2Params = PBKDF2Params{Iterations: 100_000}

// Derive runs PBKDF2-HMAC-SHA-256.
func (p PBKDF2Params) Derive(secret, salt []byte) ([]byte, error) {
	if p.Iterations < 1 {
		return nil, fmt.Errorf("%w: pbkdf2 iterations %d", ErrInvalidData, p.Iterations)
	}
	return pbkdf2.Key(secret, salt, p.Iterations, DerivedKeySize, sha256.New), nil
}

// ScryptParams carries the scrypt cost tunables.
type ScryptParams struct {
	LogN uint8
	R    int
	P    int
}

// DefaultScryptParams matches the reference corpus.
var DefaultScryptParams = ScryptParams{LogN: 15, R: 8, P: 1}

// Derive runs scrypt.
func (p ScryptParams) Derive(secret, salt []byte) ([]byte, error) {
	if p.LogN == 0 || p.LogN > 63 || p.R < 1 || p.P < 1 {
		return nil, fmt.Errorf("%w: scrypt parameters", ErrInvalidData)
	}
	key, err := scrypt.Key(secret, salt, 1<<p.LogN, p.R, p.P, DerivedKeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return key, nil
}

// Argon2idParams carries the Argon2id cost tunables.
type Argon2idParams struct {
	Time    uint32
	MemoryK uint32
	Threads uint8
}

// DefaultArgon2idParams matches the reference corpus.
var DefaultArgon2idParams = Argon2idParams{Time: 1, MemoryK: 64 * 1024, Threads: 4}

// Derive runs Argon2id.
func (p Argon2idParams) Derive(secret, salt []byte) ([]byte, error) {
	if p.Time < 1 || p.MemoryK < 8 || p.Threads < 1 {
		return nil, fmt.Errorf("%w: argon2id parameters", ErrInvalidData)
	}
	return argon2.IDKey(secret, salt, p.Time, p.MemoryK, p.Threads, DerivedKeySize), nil
}
