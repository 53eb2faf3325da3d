package primitives

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
)

// RandomNumberGenerator is the single source of randomness for the suite.
type RandomNumberGenerator interface {
	RandomBytes(n int) []byte
}

// SecureRandomNumberGenerator draws from the operating system CSPRNG.
type SecureRandomNumberGenerator struct{}

// SecureRNG returns the production randomness source.
func SecureRNG() RandomNumberGenerator { return SecureRandomNumberGenerator{} }

func (SecureRandomNumberGenerator) RandomBytes(n int) []byte {
	out := make([]byte, n)
	if _, err := rand.Read(out); err != nil {
		panic("primitives: system entropy unavailable")
	}
	return out
}

// SeededRandomNumberGenerator is a deterministic HMAC-counter generator
// for tests only. The same seed always yields the same stream.
type SeededRandomNumberGenerator struct {
	key     []byte
	counter uint64
}

// SeededRNG returns a deterministic generator for the seed.
func SeededRNG(seed []byte) *SeededRandomNumberGenerator {
	sum := sha256.Sum256(seed)
	return &SeededRandomNumberGenerator{key: sum[:]}
}

func (g *SeededRandomNumberGenerator) RandomBytes(n int) []byte {
	out := make([]byte, 0, n)
	var block [8]byte
	for len(out) < n {
		binary.BigEndian.PutUint64(block[:], g.counter)
		g.counter++
		mac := hmac.New(sha256.New, g.key)
		mac.Write(block[:])
		out = append(out, mac.Sum(nil)...)
	}
	return out[:n]
}
