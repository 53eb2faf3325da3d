package primitives

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"io"

	"golang.org/x/crypto/hkdf"
)

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// SHA512 returns the SHA-512 digest of data.
func SHA512(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}

// HMACSHA256 computes HMAC-SHA-256 over message with key.
func HMACSHA256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// HMACSHA512 computes HMAC-SHA-512 over message with key.
func HMACSHA512(key, message []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// HMACEqual compares two MACs in constant time.
func HMACEqual(a, b []byte) bool { return hmac.Equal(a, b) }

// HKDFSHA256 derives length bytes from keyMaterial per RFC 5869 with an
// explicit salt and info.
func HKDFSHA256(keyMaterial, salt, info []byte, length int) []byte {
	r := hkdf.New(sha256.New, keyMaterial, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		// Only reachable by asking for more than 255*32 bytes, which is a
		// programmer error.
		panic("primitives: hkdf output length")
	}
	return out
}
