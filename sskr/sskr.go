// Package sskr implements Sharded Secret Key Reconstruction: a two-level
// Shamir scheme in which a master secret is split across groups, and
// each group's share is split among members. Any quorum of
// group-threshold groups, each reassembled from member-threshold
// shares, recovers the secret.
package sskr

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/paritytech/bcts-go/primitives"
)

var (
	ErrInvalidSpec     = errors.New("sskr: invalid split specification")
	ErrSecretLength    = errors.New("sskr: secret must be an even length of 16 to 32 bytes")
	ErrNotEnoughShares = errors.New("sskr: not enough shares to reconstruct")
	ErrInvalidShareSet = errors.New("sskr: shares do not belong to one split")
	ErrShareFormat     = errors.New("sskr: malformed share")
)

// shareHeaderSize covers id(2) plus three packed nibble bytes.
const shareHeaderSize = 5

// GroupSpec describes one group of a split.
type GroupSpec struct {
	MemberThreshold int
	MemberCount     int
}

// Spec describes a full split: how many groups must be reassembled, and
// the member policy of each group.
type Spec struct {
	GroupThreshold int
	Groups         []GroupSpec
}

// NewSpec validates and builds a Spec.
func NewSpec(groupThreshold int, groups []GroupSpec) (Spec, error) {
	if len(groups) < 1 || len(groups) > 16 {
		return Spec{}, fmt.Errorf("%w: %d groups", ErrInvalidSpec, len(groups))
	}
	if groupThreshold < 1 || groupThreshold > len(groups) {
		return Spec{}, fmt.Errorf("%w: group threshold %d of %d", ErrInvalidSpec, groupThreshold, len(groups))
	}
	for _, g := range groups {
		if g.MemberThreshold < 1 || g.MemberThreshold > g.MemberCount || g.MemberCount > 16 {
			return Spec{}, fmt.Errorf("%w: member threshold %d of %d", ErrInvalidSpec, g.MemberThreshold, g.MemberCount)
		}
	}
	return Spec{GroupThreshold: groupThreshold, Groups: groups}, nil
}

// Share is one encoded share: the 5-byte metadata header followed by the
// share value.
type Share []byte

type shareMeta struct {
	id              uint16
	groupThreshold  int
	groupCount      int
	groupIndex      int
	memberThreshold int
	memberIndex     int
}

func (m shareMeta) encode(value []byte) Share {
	out := make([]byte, shareHeaderSize+len(value))
	binary.BigEndian.PutUint16(out[0:2], m.id)
	out[2] = byte(m.groupThreshold-1)<<4 | byte(m.groupCount-1)
	out[3] = byte(m.groupIndex)<<4 | byte(m.memberThreshold-1)
	out[4] = byte(m.memberIndex)
	copy(out[shareHeaderSize:], value)
	return out
}

func parseShare(s Share) (shareMeta, []byte, error) {
	if len(s) < shareHeaderSize+16 {
		return shareMeta{}, nil, fmt.Errorf("%w: %d bytes", ErrShareFormat, len(s))
	}
	if s[4]&0xf0 != 0 {
		return shareMeta{}, nil, fmt.Errorf("%w: reserved bits set", ErrShareFormat)
	}
	m := shareMeta{
		id:              binary.BigEndian.Uint16(s[0:2]),
		groupThreshold:  int(s[2]>>4) + 1,
		groupCount:      int(s[2]&0x0f) + 1,
		groupIndex:      int(s[3] >> 4),
		memberThreshold: int(s[3]&0x0f) + 1,
		memberIndex:     int(s[4] & 0x0f),
	}
	if m.groupIndex >= m.groupCount || m.groupThreshold > m.groupCount {
		return shareMeta{}, nil, fmt.Errorf("%w: inconsistent header", ErrShareFormat)
	}
	return m, s[shareHeaderSize:], nil
}

// Generate splits secret per spec, returning one share list per group.
// The share identifier is drawn from rng, so shares from two different
// invocations never combine.
func Generate(spec Spec, secret []byte, rng primitives.RandomNumberGenerator) ([][]Share, error) {
	if _, err := NewSpec(spec.GroupThreshold, spec.Groups); err != nil {
		return nil, err
	}
	idBytes := rng.RandomBytes(2)
	id := binary.BigEndian.Uint16(idBytes)

	groupSecrets, err := shamirSplit(secret, spec.GroupThreshold, len(spec.Groups), rng)
	if err != nil {
		return nil, err
	}
	out := make([][]Share, len(spec.Groups))
	for gi, g := range spec.Groups {
		memberValues, err := shamirSplit(groupSecrets[gi], g.MemberThreshold, g.MemberCount, rng)
		if err != nil {
			return nil, err
		}
		shares := make([]Share, g.MemberCount)
		for mi, value := range memberValues {
			shares[mi] = shareMeta{
				id:              id,
				groupThreshold:  spec.GroupThreshold,
				groupCount:      len(spec.Groups),
				groupIndex:      gi,
				memberThreshold: g.MemberThreshold,
				memberIndex:     mi,
			}.encode(value)
		}
		out[gi] = shares
	}
	return out, nil
}

// Combine recovers the secret from any qualifying quorum of shares.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares", ErrNotEnoughShares)
	}
	var ref shareMeta
	type groupAcc struct {
		threshold int
		xs        []byte
		values    [][]byte
		seen      map[int]bool
	}
	groups := map[int]*groupAcc{}
	for i, s := range shares {
		m, value, err := parseShare(s)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			ref = m
		} else if m.id != ref.id || m.groupThreshold != ref.groupThreshold || m.groupCount != ref.groupCount {
			return nil, fmt.Errorf("%w: mismatched identifiers", ErrInvalidShareSet)
		}
		g := groups[m.groupIndex]
		if g == nil {
			g = &groupAcc{threshold: m.memberThreshold, seen: map[int]bool{}}
			groups[m.groupIndex] = g
		} else if g.threshold != m.memberThreshold {
			return nil, fmt.Errorf("%w: mismatched member thresholds", ErrInvalidShareSet)
		}
		if g.seen[m.memberIndex] {
			continue
		}
		g.seen[m.memberIndex] = true
		g.xs = append(g.xs, byte(m.memberIndex))
		g.values = append(g.values, value)
	}

	// Reassemble every group that reaches its member threshold.
	var groupXs []byte
	var groupSecrets [][]byte
	for gi, g := range groups {
		if len(g.values) < g.threshold {
			continue
		}
		secret, err := shamirCombine(g.xs, g.values, g.threshold)
		if err != nil {
			return nil, err
		}
		groupXs = append(groupXs, byte(gi))
		groupSecrets = append(groupSecrets, secret)
	}
	if len(groupSecrets) < ref.groupThreshold {
		return nil, fmt.Errorf("%w: %d of %d groups reassembled", ErrNotEnoughShares, len(groupSecrets), ref.groupThreshold)
	}
	return shamirCombine(groupXs, groupSecrets, ref.groupThreshold)
}
