package components

import (
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/ur"
)

// componentUR renders the standard UR text form: the tagged CBOR of the
// component under its registered type identifier.
func componentUR(urType string, tagged dcbor.CBOR) string {
	RegisterTags()
	u, err := ur.New(urType, tagged)
	if err != nil {
		// Type identifiers here are compile-time constants.
		panic(err)
	}
	return u.String()
}

// parseComponentUR parses a UR string, checks the type identifier and
// returns the full tagged CBOR payload.
func parseComponentUR(s, urType string) (dcbor.CBOR, error) {
	RegisterTags()
	u, err := ur.ParseTyped(s, urType)
	if err != nil {
		return dcbor.CBOR{}, err
	}
	return u.CBOR(), nil
}

// componentFromUR parses a UR string, checks the type identifier, unwraps
// the expected outer tag and returns the inner CBOR.
func componentFromUR(s, urType string, tag uint64) (dcbor.CBOR, error) {
	RegisterTags()
	u, err := ur.ParseTyped(s, urType)
	if err != nil {
		return dcbor.CBOR{}, err
	}
	inner, err := u.CBOR().ExpectTagged(tag)
	if err != nil {
		return dcbor.CBOR{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return inner, nil
}
