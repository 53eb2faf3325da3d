package primitives

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Vector(t *testing.T) {
	got := SHA256([]byte("abc"))
	want, _ := hex.DecodeString("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	assert.Equal(t, want, got)
}

func TestHMACSHA256Vector(t *testing.T) {
	// RFC 4231 test case 2.
	got := HMACSHA256([]byte("Jefe"), []byte("what do ya want for nothing?"))
	want, _ := hex.DecodeString("5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843")
	assert.Equal(t, want, got)
}

func TestHKDFSHA256Vector(t *testing.T) {
	// RFC 5869 test case 1.
	ikm := bytes.Repeat([]byte{0x0b}, 22)
	salt, _ := hex.DecodeString("000102030405060708090a0b0c")
	info, _ := hex.DecodeString("f0f1f2f3f4f5f6f7f8f9")
	got := HKDFSHA256(ikm, salt, info, 42)
	want, _ := hex.DecodeString("3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865")
	assert.Equal(t, want, got)
}

func TestAEADRoundTrip(t *testing.T) {
	rng := SeededRNG([]byte("aead"))
	key := rng.RandomBytes(AEADKeySize)
	nonce := rng.RandomBytes(AEADNonceSize)
	plaintext := []byte("some day, you will be old enough to start reading fairy tales again")
	aad := []byte("aad")

	ct, err := AEADEncrypt(key, nonce, plaintext, aad)
	require.NoError(t, err)
	assert.Len(t, ct, len(plaintext)+AEADTagSize)

	pt, err := AEADDecrypt(key, nonce, ct, aad)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)

	// Flipping any bit of the ciphertext, aad or key must fail the tag.
	corrupt := append([]byte(nil), ct...)
	corrupt[0] ^= 1
	_, err = AEADDecrypt(key, nonce, corrupt, aad)
	assert.ErrorIs(t, err, ErrCrypto)

	_, err = AEADDecrypt(key, nonce, ct, []byte("axd"))
	assert.ErrorIs(t, err, ErrCrypto)

	badKey := append([]byte(nil), key...)
	badKey[31] ^= 0x80
	_, err = AEADDecrypt(badKey, nonce, ct, aad)
	assert.ErrorIs(t, err, ErrCrypto)

	_, err = AEADEncrypt(key[:16], nonce, plaintext, aad)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestX25519Agreement(t *testing.T) {
	rng := SeededRNG([]byte("x25519"))
	aPriv := NewX25519PrivateKey(rng)
	bPriv := NewX25519PrivateKey(rng)
	aPub, err := X25519PublicKey(aPriv)
	require.NoError(t, err)
	bPub, err := X25519PublicKey(bPriv)
	require.NoError(t, err)

	ab, err := X25519Agreement(aPriv, bPub)
	require.NoError(t, err)
	ba, err := X25519Agreement(bPriv, aPub)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestX25519RejectsBadPoints(t *testing.T) {
	rng := SeededRNG([]byte("x25519"))
	priv := NewX25519PrivateKey(rng)

	for i, p := range lowOrderPoints {
		_, err := X25519Agreement(priv, p[:])
		assert.ErrorIs(t, err, ErrLowOrderPoint, "point %d", i)
	}

	pub, err := X25519PublicKey(priv)
	require.NoError(t, err)
	nonCanonical := append([]byte(nil), pub...)
	nonCanonical[31] |= 0x80
	_, err = X25519Agreement(priv, nonCanonical)
	assert.ErrorIs(t, err, ErrNonCanonicalKey)

	_, err = X25519Agreement(priv, pub[:31])
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestEd25519SignVerify(t *testing.T) {
	rng := SeededRNG([]byte("ed25519"))
	seed := NewEd25519Seed(rng)
	pub, err := Ed25519PublicKeyFromSeed(seed)
	require.NoError(t, err)

	message := []byte("Hello")
	sig, err := Ed25519Sign(seed, message)
	require.NoError(t, err)
	assert.True(t, Ed25519Verify(pub, message, sig))

	for i := range sig {
		bad := append([]byte(nil), sig...)
		bad[i] ^= 1
		assert.False(t, Ed25519Verify(pub, message, bad), "bit flip at byte %d", i)
	}
	assert.False(t, Ed25519Verify(pub, []byte("hello"), sig))
}

func TestECDSASignVerify(t *testing.T) {
	rng := SeededRNG([]byte("ecdsa"))
	priv := NewSecp256k1PrivateKey(rng)
	pub, err := Secp256k1PublicKey(priv)
	require.NoError(t, err)

	message := []byte("Hello")
	sig, err := ECDSASign(priv, message)
	require.NoError(t, err)
	assert.True(t, ECDSAVerify(pub, message, sig))
	assert.False(t, ECDSAVerify(pub, []byte("hello"), sig))

	bad := append([]byte(nil), sig...)
	bad[10] ^= 1
	assert.False(t, ECDSAVerify(pub, message, bad))
}

func TestSchnorrSignVerify(t *testing.T) {
	rng := SeededRNG([]byte("schnorr"))
	priv := NewSecp256k1PrivateKey(rng)
	pub, err := SchnorrPublicKey(priv)
	require.NoError(t, err)

	message := []byte("Hello")
	sig, err := SchnorrSign(priv, message)
	require.NoError(t, err)
	assert.True(t, SchnorrVerify(pub, message, sig))
	assert.False(t, SchnorrVerify(pub, []byte("hello"), sig))

	bad := append([]byte(nil), sig...)
	bad[63] ^= 1
	assert.False(t, SchnorrVerify(pub, message, bad))
}

func TestKDFDeterminism(t *testing.T) {
	secret := []byte("hunter2")
	salt := []byte("fixed salt value")

	k1, err := DefaultPBKDF2Params.Derive(secret, salt)
	require.NoError(t, err)
	k2, err := DefaultPBKDF2Params.Derive(secret, salt)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, DerivedKeySize)

	s1, err := ScryptParams{LogN: 10, R: 8, P: 1}.Derive(secret, salt)
	require.NoError(t, err)
	s2, err := ScryptParams{LogN: 10, R: 8, P: 1}.Derive(secret, salt)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.NotEqual(t, k1, s1)

	a1, err := Argon2idParams{Time: 1, MemoryK: 1024, Threads: 1}.Derive(secret, salt)
	require.NoError(t, err)
	a2, err := Argon2idParams{Time: 1, MemoryK: 1024, Threads: 1}.Derive(secret, salt)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, s1)

	_, err = PBKDF2Params{}.Derive(secret, salt)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestDeflateRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("compressible content "), 100)
	packed, err := Deflate(data, DefaultCompressionLevel)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(data))

	back, err := Inflate(packed)
	require.NoError(t, err)
	assert.Equal(t, data, back)

	_, err = Inflate([]byte{0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, ErrCompression)
}

func TestSeededRNGIsDeterministic(t *testing.T) {
	a := SeededRNG([]byte("seed")).RandomBytes(64)
	b := SeededRNG([]byte("seed")).RandomBytes(64)
	assert.Equal(t, a, b)
	c := SeededRNG([]byte("other")).RandomBytes(64)
	assert.NotEqual(t, a, c)

	// The stream advances.
	g := SeededRNG([]byte("seed"))
	assert.NotEqual(t, g.RandomBytes(32), g.RandomBytes(32))
}

func TestMLKEMRoundTrip(t *testing.T) {
	rng := SeededRNG([]byte("mlkem"))
	for _, name := range []string{"ML-KEM-512", "ML-KEM-768", "ML-KEM-1024"} {
		t.Run(name, func(t *testing.T) {
			pk, sk, err := MLKEMGenerate(name, rng)
			require.NoError(t, err)
			ct, ss, err := MLKEMEncapsulate(name, pk, rng)
			require.NoError(t, err)
			back, err := MLKEMDecapsulate(name, sk, ct)
			require.NoError(t, err)
			assert.Equal(t, ss, back)
		})
	}
}

func TestMLDSASignVerify(t *testing.T) {
	rng := SeededRNG([]byte("mldsa"))
	for _, name := range []string{"ML-DSA-44", "ML-DSA-65", "ML-DSA-87"} {
		t.Run(name, func(t *testing.T) {
			pk, sk, err := MLDSAGenerate(name, rng)
			require.NoError(t, err)
			message := []byte("Hello")
			sig, err := MLDSASign(name, sk, message)
			require.NoError(t, err)
			assert.True(t, MLDSAVerify(name, pk, message, sig))
			assert.False(t, MLDSAVerify(name, pk, []byte("hello"), sig))
		})
	}
}
