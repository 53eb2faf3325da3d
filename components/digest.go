package components

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// DigestSize is the byte width of a Digest.
const DigestSize = 32

// Digest is a SHA-256 output. It orders and compares by byte content and
// serves as the identity of every envelope and typed object.
type Digest struct {
	data [DigestSize]byte
}

// NewDigestFromImage hashes the source bytes.
func NewDigestFromImage(image []byte) Digest {
	var d Digest
	copy(d.data[:], primitives.SHA256(image))
	return d
}

// NewDigestFromData wraps an existing 32-byte digest value. The size is
// checked strictly.
func NewDigestFromData(data []byte) (Digest, error) {
	if len(data) != DigestSize {
		return Digest{}, fmt.Errorf("%w: digest %d", ErrInvalidSize, len(data))
	}
	var d Digest
	copy(d.data[:], data)
	return d, nil
}

// Data returns the digest bytes.
func (d Digest) Data() []byte { return append([]byte(nil), d.data[:]...) }

// Equal compares by content.
func (d Digest) Equal(o Digest) bool { return d.data == o.data }

// Less orders digests lexicographically.
func (d Digest) Less(o Digest) bool { return bytes.Compare(d.data[:], o.data[:]) < 0 }

// Validate re-hashes image and reports whether it matches.
func (d Digest) Validate(image []byte) bool {
	return NewDigestFromImage(image).Equal(d)
}

// ShortDescription is the first four bytes in hex, for summaries only.
func (d Digest) ShortDescription() string { return hex.EncodeToString(d.data[:4]) }

func (d Digest) String() string {
	return fmt.Sprintf("Digest(%s)", hex.EncodeToString(d.data[:8]))
}

// UntaggedCBOR returns the bare byte-string form.
func (d Digest) UntaggedCBOR() dcbor.CBOR { return dcbor.NewBytes(d.data[:]) }

// TaggedCBOR returns the tag-40001 form.
func (d Digest) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagDigest, d.UntaggedCBOR())
}

// DigestFromTaggedCBOR reads the tag-40001 form.
func DigestFromTaggedCBOR(c dcbor.CBOR) (Digest, error) {
	inner, err := c.ExpectTagged(TagDigest)
	if err != nil {
		return Digest{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return DigestFromUntaggedCBOR(inner)
}

// DigestFromUntaggedCBOR reads the bare byte-string form.
func DigestFromUntaggedCBOR(c dcbor.CBOR) (Digest, error) {
	b, err := c.Bytes()
	if err != nil {
		return Digest{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return NewDigestFromData(b)
}

// URType is the registered UR type identifier.
func (d Digest) URType() string { return "digest" }

// UR returns the text form.
func (d Digest) UR() string { return componentUR("digest", d.TaggedCBOR()) }

// DigestFromUR parses the text form.
func DigestFromUR(s string) (Digest, error) {
	c, err := componentFromUR(s, "digest", TagDigest)
	if err != nil {
		return Digest{}, err
	}
	return DigestFromUntaggedCBOR(c)
}
