package primitives

import "errors"

var (
	ErrCrypto          = errors.New("primitives: cryptographic operation failed")
	ErrInvalidSize     = errors.New("primitives: data has the wrong length")
	ErrInvalidData     = errors.New("primitives: data is outside its permitted range")
	ErrCompression     = errors.New("primitives: compression failure")
	ErrChecksum        = errors.New("primitives: checksum mismatch")
	ErrLowOrderPoint   = errors.New("primitives: low-order x25519 point")
	ErrNonCanonicalKey = errors.New("primitives: non-canonical x25519 coordinate")
)
