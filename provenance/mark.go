// Package provenance implements forward-chained commitment marks: each
// mark reveals the key its predecessor committed to, carries a hash
// committing to its successor's key, and advances a sequence number and
// date. A verifier holding any contiguous run of marks can confirm the
// chain without any secret material.
package provenance

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
	"github.com/paritytech/bcts-go/ur"
)

var (
	ErrTypeMismatch = errors.New("provenance: cbor has the wrong shape")
	ErrInvalidSize  = errors.New("provenance: field width does not match the resolution")
)

// TagProvenanceMark is the CBOR tag for a mark.
const TagProvenanceMark = 40026

// Resolution selects the key and chain-id width of a chain.
type Resolution int

const (
	ResolutionLow Resolution = iota
	ResolutionMedium
	ResolutionQuartile
	ResolutionHigh
)

// KeyWidth returns the byte width of keys and chain ids at this
// resolution.
func (r Resolution) KeyWidth() int {
	switch r {
	case ResolutionLow:
		return 4
	case ResolutionMedium:
		return 8
	case ResolutionQuartile:
		return 16
	default:
		return 32
	}
}

func (r Resolution) String() string {
	switch r {
	case ResolutionLow:
		return "low"
	case ResolutionMedium:
		return "medium"
	case ResolutionQuartile:
		return "quartile"
	default:
		return "high"
	}
}

// Mark is one link of a provenance chain.
type Mark struct {
	resolution Resolution
	key        []byte
	hash       []byte
	chainID    []byte
	seq        uint32
	date       time.Time
	info       *dcbor.CBOR
}

func (m Mark) Resolution() Resolution { return m.resolution }
func (m Mark) Key() []byte { return append([]byte(nil), m.key...) }
func (m Mark) Hash() []byte { return append([]byte(nil), m.hash...) }
func (m Mark) ChainID() []byte { return append([]byte(nil), m.chainID...) }
func (m Mark) Seq() uint32 { return m.seq }
func (m Mark) Date() time.Time { return m.date }

// Info returns the optional info payload.
func (m Mark) Info() (dcbor.CBOR, bool) {
	if m.info == nil {
		return dcbor.CBOR{}, false
	}
	return *m.info, true
}

// IsGenesis reports whether the mark opens its chain: seq 0 and
// key == chainID.
func (m Mark) IsGenesis() bool {
	return m.seq == 0 && bytes.Equal(m.key, m.chainID)
}

// Precedes reports whether next is the valid successor of m: the hash
// chain holds, the sequence increments and the date does not go
// backwards.
func (m Mark) Precedes(next Mark) bool {
	return next.seq == m.seq+1 &&
		!next.date.Before(m.date) &&
		bytes.Equal(m.chainID, next.chainID) &&
		bytes.Equal(m.hash, markHash(m, next.key))
}

// markHash commits mark fields plus the successor's key.
func markHash(m Mark, nextKey []byte) []byte {
	var buf bytes.Buffer
	buf.Write(m.key)
	buf.Write(m.chainID)
	var seq [4]byte
	binary.BigEndian.PutUint32(seq[:], m.seq)
	buf.Write(seq[:])
	var date [8]byte
	binary.BigEndian.PutUint64(date[:], uint64(m.date.Unix()))
	buf.Write(date[:])
	if m.info != nil {
		buf.Write(m.info.Encode())
	}
	buf.Write(nextKey)
	return primitives.SHA256(buf.Bytes())
}

func (m Mark) String() string {
	return fmt.Sprintf("ProvenanceMark(%s seq %d)", m.resolution, m.seq)
}

// UntaggedCBOR renders [resolution, key, hash, chainID, seq, date, info?].
func (m Mark) UntaggedCBOR() dcbor.CBOR {
	items := []dcbor.CBOR{
		dcbor.NewUint(uint64(m.resolution)),
		dcbor.NewBytes(m.key),
		dcbor.NewBytes(m.hash),
		dcbor.NewBytes(m.chainID),
		dcbor.NewUint(uint64(m.seq)),
		dcbor.NewTagged(1, dcbor.NewInt(m.date.Unix())),
	}
	if m.info != nil {
		items = append(items, *m.info)
	}
	return dcbor.NewArray(items...)
}

func (m Mark) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagProvenanceMark, m.UntaggedCBOR())
}

// MarkFromTaggedCBOR reads the tagged form.
func MarkFromTaggedCBOR(c dcbor.CBOR) (Mark, error) {
	inner, err := c.ExpectTagged(TagProvenanceMark)
	if err != nil {
		return Mark{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	items, err := inner.Array()
	if err != nil || len(items) < 6 || len(items) > 7 {
		return Mark{}, fmt.Errorf("%w: mark shape", ErrTypeMismatch)
	}
	res, err := items[0].Uint()
	if err != nil || res > uint64(ResolutionHigh) {
		return Mark{}, fmt.Errorf("%w: resolution", ErrTypeMismatch)
	}
	m := Mark{resolution: Resolution(res)}
	if m.key, err = items[1].Bytes(); err != nil {
		return Mark{}, fmt.Errorf("%w: key", ErrTypeMismatch)
	}
	if m.hash, err = items[2].Bytes(); err != nil {
		return Mark{}, fmt.Errorf("%w: hash", ErrTypeMismatch)
	}
	if m.chainID, err = items[3].Bytes(); err != nil {
		return Mark{}, fmt.Errorf("%w: chain id", ErrTypeMismatch)
	}
	width := m.resolution.KeyWidth()
	if len(m.key) != width || len(m.chainID) != width {
		return Mark{}, fmt.Errorf("%w: key %d, chain id %d, want %d", ErrInvalidSize, len(m.key), len(m.chainID), width)
	}
	seq, err := items[4].Uint()
	if err != nil || seq > 0xffffffff {
		return Mark{}, fmt.Errorf("%w: seq", ErrTypeMismatch)
	}
	m.seq = uint32(seq)
	dateInner, err := items[5].ExpectTagged(1)
	if err != nil {
		return Mark{}, fmt.Errorf("%w: date", ErrTypeMismatch)
	}
	epoch, err := dateInner.Int()
	if err != nil {
		return Mark{}, fmt.Errorf("%w: date", ErrTypeMismatch)
	}
	m.date = time.Unix(epoch, 0).UTC()
	if len(items) == 7 {
		info := items[6]
		m.info = &info
	}
	return m, nil
}

// UR renders the "ur:provenance/..." text form.
func (m Mark) UR() string {
	u, err := ur.New("provenance", m.TaggedCBOR())
	if err != nil {
		panic(err)
	}
	return u.String()
}

// MarkFromUR parses the text form.
func MarkFromUR(s string) (Mark, error) {
	u, err := ur.ParseTyped(s, "provenance")
	if err != nil {
		return Mark{}, err
	}
	return MarkFromTaggedCBOR(u.CBOR())
}
