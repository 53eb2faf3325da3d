// Package primitives collects the cryptographic building blocks the rest
// of the suite is written against: hashing, HKDF, the ChaCha20-Poly1305
// AEAD, X25519 agreement with low-order point rejection, Ed25519 and
// secp256k1 signing, the password KDFs, ML-KEM/ML-DSA, raw DEFLATE and
// the random number source.
//
// Everything here is synchronous and value-oriented. The only interface
// is RandomNumberGenerator, so deterministic tests can substitute a
// seeded source.
package primitives
