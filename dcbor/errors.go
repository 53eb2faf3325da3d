package dcbor

import "errors"

var (
	ErrNonCanonical    = errors.New("dcbor: encoding is not canonical")
	ErrUnexpectedEnd   = errors.New("dcbor: unexpected end of data")
	ErrTypeMismatch    = errors.New("dcbor: value has the wrong type")
	ErrDuplicateMapKey = errors.New("dcbor: duplicate map key")
	ErrTrailingData    = errors.New("dcbor: trailing data after value")
	ErrInvalidUTF8     = errors.New("dcbor: text string is not valid utf-8")
	ErrWrongTag        = errors.New("dcbor: unexpected tag")
	ErrOutOfRange      = errors.New("dcbor: numeric value out of range")
	ErrDiagnostic      = errors.New("dcbor: invalid diagnostic notation")
)
