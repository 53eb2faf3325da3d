package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

func TestDigest(t *testing.T) {
	d := NewDigestFromImage([]byte("Hello"))
	assert.True(t, d.Validate([]byte("Hello")))
	assert.False(t, d.Validate([]byte("hello")))
	assert.Len(t, d.Data(), DigestSize)

	back, err := DigestFromTaggedCBOR(d.TaggedCBOR())
	require.NoError(t, err)
	assert.True(t, d.Equal(back))

	_, err = NewDigestFromData(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidSize)

	fromUR, err := DigestFromUR(d.UR())
	require.NoError(t, err)
	assert.True(t, d.Equal(fromUR))
	assert.True(t, strings.HasPrefix(d.UR(), "ur:digest/"))
}

func TestARIDDistinctFromDigest(t *testing.T) {
	rng := primitives.SeededRNG([]byte("arid"))
	a := NewARID(rng)
	// Same width, different tag: an ARID does not decode as a Digest.
	_, err := DigestFromTaggedCBOR(a.TaggedCBOR())
	assert.ErrorIs(t, err, ErrTypeMismatch)

	back, err := ARIDFromTaggedCBOR(a.TaggedCBOR())
	require.NoError(t, err)
	assert.True(t, a.Equal(back))

	hexForm, err := NewARIDFromHex(a.Hex())
	require.NoError(t, err)
	assert.True(t, a.Equal(hexForm))
}

func TestNonceSaltSeedRoundTrips(t *testing.T) {
	rng := primitives.SeededRNG([]byte("bytes"))

	n := NewNonce(rng)
	nBack, err := NonceFromTaggedCBOR(n.TaggedCBOR())
	require.NoError(t, err)
	assert.True(t, n.Equal(nBack))

	s, err := NewSalt(rng, 12)
	require.NoError(t, err)
	sBack, err := SaltFromTaggedCBOR(s.TaggedCBOR())
	require.NoError(t, err)
	assert.True(t, s.Equal(sBack))

	seed := NewSeed(rng)
	seedBack, err := SeedFromUR(seed.UR())
	require.NoError(t, err)
	assert.True(t, seed.Equal(seedBack))
}

func TestSaltForSizeBounds(t *testing.T) {
	rng := primitives.SeededRNG([]byte("salt"))
	for _, size := range []int{0, 10, 100, 1000, 100000} {
		s := NewSaltForSize(rng, size)
		assert.GreaterOrEqual(t, len(s.Data()), 8)
		assert.LessOrEqual(t, len(s.Data()), 24)
	}
}

func TestSymmetricKeyEncryptDecrypt(t *testing.T) {
	rng := primitives.SeededRNG([]byte("sym"))
	key := NewSymmetricKey(rng)
	msg, err := key.Encrypt([]byte("plaintext"), nil, NewNonce(rng))
	require.NoError(t, err)

	pt, err := key.Decrypt(msg)
	require.NoError(t, err)
	assert.Equal(t, []byte("plaintext"), pt)

	other := NewSymmetricKey(rng)
	_, err = other.Decrypt(msg)
	assert.ErrorIs(t, err, primitives.ErrCrypto)

	back, err := EncryptedMessageFromTaggedCBOR(msg.TaggedCBOR())
	require.NoError(t, err)
	pt, err = key.Decrypt(back)
	require.NoError(t, err)
	assert.Equal(t, []byte("plaintext"), pt)
}

func TestCompressedRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("compress me ", 50))
	c, err := NewCompressedFromDecompressed(data)
	require.NoError(t, err)
	assert.Less(t, c.CompressedSize(), len(data))

	out, err := c.Decompress()
	require.NoError(t, err)
	assert.Equal(t, data, out)

	back, err := CompressedFromTaggedCBOR(c.TaggedCBOR())
	require.NoError(t, err)
	out, err = back.Decompress()
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestCompressedIncompressibleStoresOriginal(t *testing.T) {
	rng := primitives.SeededRNG([]byte("incompressible"))
	data := rng.RandomBytes(64)
	c, err := NewCompressedFromDecompressed(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), c.CompressedSize())

	out, err := c.Decompress()
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestSignatureSchemes(t *testing.T) {
	rng := primitives.SeededRNG([]byte("signing"))
	message := []byte("Hello")

	keys := []SigningPrivateKey{
		NewSchnorrSigningPrivateKey(rng),
		NewECDSASigningPrivateKey(rng),
		NewEd25519SigningPrivateKey(rng),
	}
	mldsa, err := NewMLDSASigningPrivateKey(SchemeMLDSA65, rng)
	require.NoError(t, err)
	keys = append(keys, mldsa)

	for _, priv := range keys {
		t.Run(priv.Scheme().String(), func(t *testing.T) {
			pub, err := priv.PublicKey()
			require.NoError(t, err)

			sig, err := priv.Sign(message)
			require.NoError(t, err)

			ok, err := pub.Verify(sig, message)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = pub.Verify(sig, []byte("hello"))
			require.NoError(t, err)
			assert.False(t, ok)

			bad := NewSignature(sig.Scheme(), flipBit(sig.Data()))
			ok, err = pub.Verify(bad, message)
			require.NoError(t, err)
			assert.False(t, ok)

			// CBOR round trip preserves scheme and bytes.
			back, err := SignatureFromTaggedCBOR(sig.TaggedCBOR())
			require.NoError(t, err)
			assert.True(t, sig.Equal(back))

			keyBack, err := SigningPublicKeyFromTaggedCBOR(pub.TaggedCBOR())
			require.NoError(t, err)
			assert.True(t, pub.Equal(keyBack))
		})
	}
}

func flipBit(b []byte) []byte {
	out := append([]byte(nil), b...)
	out[0] ^= 1
	return out
}

func TestVerifyLevelMismatch(t *testing.T) {
	rng := primitives.SeededRNG([]byte("mismatch"))
	ed := NewEd25519SigningPrivateKey(rng)
	schnorr := NewSchnorrSigningPrivateKey(rng)

	sig, err := ed.Sign([]byte("m"))
	require.NoError(t, err)
	pub, err := schnorr.PublicKey()
	require.NoError(t, err)

	_, err = pub.Verify(sig, []byte("m"))
	assert.ErrorIs(t, err, ErrLevelMismatch)
}

func TestSr25519IsEncodingOnly(t *testing.T) {
	k, err := NewSigningPrivateKeyFromData(SchemeSr25519, make([]byte, 32))
	require.NoError(t, err)
	_, err = k.Sign([]byte("m"))
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	back, err := SigningPrivateKeyFromTaggedCBOR(k.TaggedCBOR())
	require.NoError(t, err)
	assert.Equal(t, SchemeSr25519, back.Scheme())
}

func TestSealedMessage(t *testing.T) {
	rng := primitives.SeededRNG([]byte("sealed"))
	plaintext := []byte("to the recipient's eyes only")

	t.Run("X25519", func(t *testing.T) {
		recipient := NewX25519PrivateKey(rng)
		recipientPub, err := recipient.PublicKey()
		require.NoError(t, err)

		sealed, err := NewSealedMessage(plaintext, recipientPub, nil, rng)
		require.NoError(t, err)

		out, err := sealed.Decrypt(recipient)
		require.NoError(t, err)
		assert.Equal(t, plaintext, out)

		back, err := SealedMessageFromTaggedCBOR(sealed.TaggedCBOR())
		require.NoError(t, err)
		out, err = back.Decrypt(recipient)
		require.NoError(t, err)
		assert.Equal(t, plaintext, out)

		other := NewX25519PrivateKey(rng)
		_, err = sealed.Decrypt(other)
		assert.ErrorIs(t, err, primitives.ErrCrypto)
	})

	t.Run("ML-KEM-768", func(t *testing.T) {
		recipient, err := NewMLKEMPrivateKey(KEMMLKEM768, rng)
		require.NoError(t, err)
		recipientPub, err := recipient.PublicKey()
		require.NoError(t, err)

		sealed, err := NewSealedMessage(plaintext, recipientPub, nil, rng)
		require.NoError(t, err)
		out, err := sealed.Decrypt(recipient)
		require.NoError(t, err)
		assert.Equal(t, plaintext, out)

		// Scheme mismatch is typed.
		x := NewX25519PrivateKey(rng)
		_, err = sealed.Decrypt(x)
		assert.ErrorIs(t, err, ErrSchemeMismatch)
	})
}

func TestEncryptedKeyLockUnlock(t *testing.T) {
	rng := primitives.SeededRNG([]byte("locking"))
	contentKey := NewSymmetricKey(rng)

	for _, method := range []KeyDerivationMethod{MethodPBKDF2, MethodScrypt, MethodArgon2id} {
		t.Run(method.String(), func(t *testing.T) {
			ek, err := LockKey(method, Password("hunter2"), contentKey, rng)
			require.NoError(t, err)

			got, err := ek.Unlock(Password("hunter2"))
			require.NoError(t, err)
			assert.True(t, contentKey.Equal(got))

			_, err = ek.Unlock(Password("wrong"))
			assert.ErrorIs(t, err, ErrWrongSecret)

			back, err := EncryptedKeyFromTaggedCBOR(ek.TaggedCBOR())
			require.NoError(t, err)
			got, err = back.Unlock(Password("hunter2"))
			require.NoError(t, err)
			assert.True(t, contentKey.Equal(got))
		})
	}
}

type fakeChallengeSigner struct{ key []byte }

func (f fakeChallengeSigner) SignChallenge(challenge []byte) ([]byte, error) {
	return primitives.HMACSHA256(f.key, challenge), nil
}

func TestEncryptedKeySSHAgentMethod(t *testing.T) {
	rng := primitives.SeededRNG([]byte("agent"))
	contentKey := NewSymmetricKey(rng)
	signer := fakeChallengeSigner{key: []byte("agent key")}

	ek, err := LockKey(MethodSSHAgent, AgentSecret{Signer: signer}, contentKey, rng)
	require.NoError(t, err)

	got, err := ek.Unlock(AgentSecret{Signer: signer})
	require.NoError(t, err)
	assert.True(t, contentKey.Equal(got))

	_, err = ek.Unlock(AgentSecret{Signer: fakeChallengeSigner{key: []byte("other")}})
	assert.ErrorIs(t, err, ErrWrongSecret)
}

func TestPrivateKeyBaseIsDeterministic(t *testing.T) {
	base, err := NewPrivateKeyBaseFromData([]byte("fixed material"))
	require.NoError(t, err)
	again, err := NewPrivateKeyBaseFromData([]byte("fixed material"))
	require.NoError(t, err)

	assert.Equal(t, base.SchnorrSigningPrivateKey().Data(), again.SchnorrSigningPrivateKey().Data())
	assert.Equal(t, base.X25519AgreementPrivateKey().Data(), again.X25519AgreementPrivateKey().Data())

	// Signing and agreement derivations diverge.
	assert.NotEqual(t, base.SchnorrSigningPrivateKey().Data(), base.X25519AgreementPrivateKey().Data())
}

func TestXIDStableAcrossRotation(t *testing.T) {
	rng := primitives.SeededRNG([]byte("xid"))
	base := NewPrivateKeyBase(rng)
	inception, err := base.PublicKeys()
	require.NoError(t, err)

	x := NewXIDFromInceptionKeys(inception)
	assert.True(t, x.Validate(inception))

	rotated, err := NewPrivateKeyBase(rng).PublicKeys()
	require.NoError(t, err)
	assert.False(t, x.Validate(rotated))

	back, err := XIDFromUR(x.UR())
	require.NoError(t, err)
	assert.True(t, x.Equal(back))
}

func TestPublicKeysRoundTrip(t *testing.T) {
	rng := primitives.SeededRNG([]byte("pubkeys"))
	keys := NewPrivateKeyBase(rng).PrivateKeys()
	pub, err := keys.PublicKeys()
	require.NoError(t, err)

	back, err := PublicKeysFromUR(pub.UR())
	require.NoError(t, err)
	assert.True(t, pub.Equal(back))

	privBack, err := PrivateKeysFromTaggedCBOR(keys.TaggedCBOR())
	require.NoError(t, err)
	pub2, err := privBack.PublicKeys()
	require.NoError(t, err)
	assert.True(t, pub.Equal(pub2))
}

func TestSSKRShareLegacyTag(t *testing.T) {
	share, err := NewSSKRShareComponent([]byte{1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)

	// Emits the current tag.
	tag, _, err := share.TaggedCBOR().Tagged()
	require.NoError(t, err)
	assert.Equal(t, uint64(TagSSKRShare), tag)

	// Accepts the legacy tag on read.
	legacy := dcbor.NewTagged(TagSSKRShareLegacy, share.UntaggedCBOR())
	back, err := SSKRShareComponentFromTaggedCBOR(legacy)
	require.NoError(t, err)
	assert.True(t, share.Equal(back))
}

func TestURIValidation(t *testing.T) {
	u, err := NewURI("https://example.com/path?q=1")
	require.NoError(t, err)
	back, err := URIFromTaggedCBOR(u.TaggedCBOR())
	require.NoError(t, err)
	assert.True(t, u.Equal(back))

	_, err = NewURI("not a uri")
	assert.ErrorIs(t, err, ErrInvalidURI)
	_, err = NewURI("relative/path")
	assert.ErrorIs(t, err, ErrInvalidURI)
}

func TestUUIDRoundTrip(t *testing.T) {
	rng := primitives.SeededRNG([]byte("uuid"))
	u := NewUUID(rng)
	back, err := UUIDFromTaggedCBOR(u.TaggedCBOR())
	require.NoError(t, err)
	assert.True(t, u.Equal(back))

	parsed, err := NewUUIDFromString(u.String())
	require.NoError(t, err)
	assert.True(t, u.Equal(parsed))
}
