package sskr

import (
	"fmt"

	"github.com/paritytech/bcts-go/primitives"
)

// Conventional interpolation indices: the secret lives at 255 and the
// verification digest share at 254, so member indices 0..15 never
// collide with either.
const (
	secretIndex = 255
	digestIndex = 254
)

const digestCheckSize = 4

// shamirSplit produces count shares of secret with the given threshold.
// With threshold 1 every share is the secret itself. Otherwise the
// digest share binds the split so that combining shares from different
// splits, or too few shares, is detected.
func shamirSplit(secret []byte, threshold, count int, rng primitives.RandomNumberGenerator) ([][]byte, error) {
	if threshold < 1 || threshold > count || count > 16 {
		return nil, fmt.Errorf("%w: threshold %d of %d", ErrInvalidSpec, threshold, count)
	}
	width := len(secret)
	if width < 16 || width > 32 || width%2 != 0 {
		return nil, fmt.Errorf("%w: secret length %d", ErrSecretLength, width)
	}
	if threshold == 1 {
		out := make([][]byte, count)
		for i := range out {
			out[i] = append([]byte(nil), secret...)
		}
		return out, nil
	}

	// The digest share: a 4-byte HMAC of the secret keyed by the random
	// remainder, padded into the secret width.
	random := rng.RandomBytes(width - digestCheckSize)
	digest := append(primitives.HMACSHA256(random, secret)[:digestCheckSize], random...)

	// Fix the polynomial through (digestIndex, digest) and (secretIndex,
	// secret) plus threshold-2 random points, then evaluate the member
	// indices.
	points := []gfPoint{
		{x: digestIndex, y: digest},
		{x: secretIndex, y: secret},
	}
	for i := range threshold - 2 {
		points = append(points, gfPoint{x: byte(i), y: rng.RandomBytes(width)})
	}
	out := make([][]byte, count)
	for i := range count {
		if i < threshold-2 {
			out[i] = append([]byte(nil), points[2+i].y...)
			continue
		}
		out[i] = interpolate(points, byte(i), width)
	}
	return out, nil
}

// shamirCombine recovers the secret from threshold shares with member
// indices xs. The digest check detects mismatched or insufficient
// shares.
func shamirCombine(xs []byte, shares [][]byte, threshold int) ([]byte, error) {
	if len(shares) < threshold || len(xs) != len(shares) {
		return nil, fmt.Errorf("%w: %d shares, threshold %d", ErrNotEnoughShares, len(shares), threshold)
	}
	width := len(shares[0])
	for _, s := range shares {
		if len(s) != width {
			return nil, fmt.Errorf("%w: inconsistent share widths", ErrInvalidShareSet)
		}
	}
	if threshold == 1 {
		return append([]byte(nil), shares[0]...), nil
	}
	points := make([]gfPoint, threshold)
	seen := map[byte]bool{}
	for i := range threshold {
		if seen[xs[i]] {
			return nil, fmt.Errorf("%w: duplicate member index %d", ErrInvalidShareSet, xs[i])
		}
		seen[xs[i]] = true
		points[i] = gfPoint{x: xs[i], y: shares[i]}
	}
	secret := interpolate(points, secretIndex, width)
	digest := interpolate(points, digestIndex, width)
	check := primitives.HMACSHA256(digest[digestCheckSize:], secret)[:digestCheckSize]
	if !primitives.HMACEqual(check, digest[:digestCheckSize]) {
		return nil, fmt.Errorf("%w: share digest check failed", ErrInvalidShareSet)
	}
	return secret, nil
}
