// Package ur implements the Uniform Resource wrapper: a typed, URI-safe
// text form for tagged CBOR values, per BCR-2020-005.
package ur

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paritytech/bcts-go/bytewords"
	"github.com/paritytech/bcts-go/dcbor"
)

var (
	ErrInvalidScheme = errors.New("ur: string does not start with \"ur:\"")
	ErrInvalidType   = errors.New("ur: invalid type identifier")
	ErrTypeMismatch  = errors.New("ur: unexpected ur type")
	ErrInvalidBody   = errors.New("ur: invalid body")
)

// UR pairs a lowercase type identifier with a CBOR payload.
type UR struct {
	urType string
	cbor   dcbor.CBOR
}

// New builds a UR from a type identifier and CBOR value.
func New(urType string, value dcbor.CBOR) (UR, error) {
	if !isValidType(urType) {
		return UR{}, fmt.Errorf("%w: %q", ErrInvalidType, urType)
	}
	return UR{urType: urType, cbor: value}, nil
}

// Type returns the type identifier.
func (u UR) Type() string { return u.urType }

// CBOR returns the payload value.
func (u UR) CBOR() dcbor.CBOR { return u.cbor }

// String renders the "ur:<type>/<minimal bytewords>" form.
func (u UR) String() string {
	body := bytewords.Encode(u.cbor.Encode(), bytewords.Minimal)
	return "ur:" + u.urType + "/" + body
}

// Parse reads the string form back. Case of the body is ignored; the type
// identifier must be lowercase.
func Parse(s string) (UR, error) {
	rest, ok := strings.CutPrefix(s, "ur:")
	if !ok {
		return UR{}, ErrInvalidScheme
	}
	urType, body, ok := strings.Cut(rest, "/")
	if !ok || !isValidType(urType) {
		return UR{}, fmt.Errorf("%w: %q", ErrInvalidType, urType)
	}
	raw, err := bytewords.Decode(body, bytewords.Minimal)
	if err != nil {
		return UR{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	value, err := dcbor.Decode(raw)
	if err != nil {
		return UR{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return UR{urType: urType, cbor: value}, nil
}

// ParseTyped reads a UR and requires a specific type identifier.
func ParseTyped(s, urType string) (UR, error) {
	u, err := Parse(s)
	if err != nil {
		return UR{}, err
	}
	if u.urType != urType {
		return UR{}, fmt.Errorf("%w: want %q, got %q", ErrTypeMismatch, urType, u.urType)
	}
	return u, nil
}

// isValidType admits lowercase letters, digits and hyphens, the character
// set registered UR type identifiers draw from.
func isValidType(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' {
			continue
		}
		return false
	}
	return true
}
