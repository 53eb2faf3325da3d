package envelope

import "errors"

var (
	ErrTypeMismatch         = errors.New("envelope: cbor has the wrong shape")
	ErrNotWrapped           = errors.New("envelope: subject is not wrapped")
	ErrNotAssertion         = errors.New("envelope: not an assertion")
	ErrNonexistentPredicate = errors.New("envelope: no assertion with that predicate")
	ErrAmbiguousPredicate   = errors.New("envelope: multiple assertions with that predicate")
	ErrAlreadyObscured      = errors.New("envelope: subject is already obscured")
	ErrNotEncrypted         = errors.New("envelope: subject is not encrypted")
	ErrNotCompressed        = errors.New("envelope: subject is not compressed")
	ErrMissingDigest        = errors.New("envelope: obscured form carries no digest")
	ErrInvalidDigest        = errors.New("envelope: digest does not match content")
	ErrUnverifiedSignature  = errors.New("envelope: no valid signature found")
	ErrNoMatchingSecret     = errors.New("envelope: no hasSecret assertion unlocks with that secret")
	ErrInvalidShares        = errors.New("envelope: sskr shares do not reassemble the content key")
)
