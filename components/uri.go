package components

import (
	"fmt"
	"net/url"

	"github.com/paritytech/bcts-go/dcbor"
)

// URI is a validated RFC-3986 reference carried under tag 32.
type URI struct {
	value string
}

// NewURI validates and wraps a URI string. Only absolute URIs are
// admitted.
func NewURI(s string) (URI, error) {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return URI{}, fmt.Errorf("%w: %q", ErrInvalidURI, s)
	}
	return URI{value: s}, nil
}

func (u URI) String() string { return u.value }

func (u URI) Equal(o URI) bool { return u.value == o.value }

func (u URI) UntaggedCBOR() dcbor.CBOR { return dcbor.NewText(u.value) }

func (u URI) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagURI, u.UntaggedCBOR())
}

// URIFromTaggedCBOR reads the tag-32 form, re-validating the string.
func URIFromTaggedCBOR(c dcbor.CBOR) (URI, error) {
	inner, err := c.ExpectTagged(TagURI)
	if err != nil {
		return URI{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	s, err := inner.Text()
	if err != nil {
		return URI{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewURI(s)
}
