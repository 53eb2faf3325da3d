package components

import "errors"

var (
	ErrInvalidSize       = errors.New("components: data has the wrong length")
	ErrInvalidData       = errors.New("components: data is outside its permitted range")
	ErrTypeMismatch      = errors.New("components: cbor has the wrong shape")
	ErrWrongSecret       = errors.New("components: secret does not unlock the key")
	ErrLevelMismatch     = errors.New("components: signature scheme does not match the verifier")
	ErrSchemeMismatch    = errors.New("components: encapsulation scheme mismatch")
	ErrUnsupportedScheme = errors.New("components: scheme carries no implementation")
	ErrInvalidURI        = errors.New("components: uri fails rfc 3986 validation")
	ErrCompression       = errors.New("components: compressed payload is corrupt")
)
