package ratchet

import "errors"

var (
	ErrMacMismatch        = errors.New("ratchet: wire mac verification failed")
	ErrMessageTooOld      = errors.New("ratchet: message key is unavailable or out of bounds")
	ErrInvalidMessage     = errors.New("ratchet: malformed wire message")
	ErrUnsupportedVersion = errors.New("ratchet: message version out of range")
	ErrInvalidKey         = errors.New("ratchet: invalid ratchet key material")
	ErrZeroRootKey        = errors.New("ratchet: derived root key is all zero")
	ErrUninitialized      = errors.New("ratchet: session is not initialized")
)
