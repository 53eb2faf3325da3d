package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/knownvalues"
	"github.com/paritytech/bcts-go/primitives"
	"github.com/paritytech/bcts-go/sskr"
)

func TestSignAndVerify(t *testing.T) {
	rng := primitives.SeededRNG([]byte("sign"))
	signer := components.NewEd25519SigningPrivateKey(rng)
	verifier, err := signer.PublicKey()
	require.NoError(t, err)

	e, err := greeting().AddSignature(signer)
	require.NoError(t, err)
	require.NoError(t, e.VerifySignatureFrom(verifier))

	// A different key does not verify.
	other, err := components.NewEd25519SigningPrivateKey(rng).PublicKey()
	require.NoError(t, err)
	assert.ErrorIs(t, e.VerifySignatureFrom(other), ErrUnverifiedSignature)

	// Corrupting the signature object breaks verification. Rebuild the
	// envelope with a flipped signature bit.
	sigObject, err := e.AssertionsWithKnownPredicate(knownvalues.Signed)[0].Object()
	require.NoError(t, err)
	leaf, err := sigObject.Leaf()
	require.NoError(t, err)
	sig, err := components.SignatureFromTaggedCBOR(leaf)
	require.NoError(t, err)
	data := sig.Data()
	data[0] ^= 1
	tampered := greeting().AddAssertion(
		NewKnownValue(knownvalues.Signed),
		NewComponent(components.NewSignature(sig.Scheme(), data)))
	assert.ErrorIs(t, tampered.VerifySignatureFrom(verifier), ErrUnverifiedSignature)
}

func TestSignWithMetadata(t *testing.T) {
	rng := primitives.SeededRNG([]byte("metadata"))
	signer := components.NewSchnorrSigningPrivateKey(rng)
	verifier, err := signer.PublicKey()
	require.NoError(t, err)

	metadata := []*Envelope{
		NewAssertion(NewKnownValue(knownvalues.Note), NewString("signed at noon")),
	}
	e, err := greeting().AddSignatureWithMetadata(signer, metadata)
	require.NoError(t, err)
	require.NoError(t, e.VerifySignatureFrom(verifier))

	// The metadata rides on the wrapped signature envelope.
	object, err := e.AssertionsWithKnownPredicate(knownvalues.Signed)[0].Object()
	require.NoError(t, err)
	inner, err := object.TryUnwrap()
	require.NoError(t, err)
	note, err := inner.ObjectForKnownPredicate(knownvalues.Note)
	require.NoError(t, err)
	assert.True(t, note.Equal(NewString("signed at noon")))

	// The outer signature over the wrapper also verifies.
	outer, err := object.ObjectForKnownPredicate(knownvalues.Signed)
	require.NoError(t, err)
	leaf, err := outer.Leaf()
	require.NoError(t, err)
	outerSig, err := components.SignatureFromTaggedCBOR(leaf)
	require.NoError(t, err)
	wrapped := object.Subject()
	ok, err := verifier.Verify(outerSig, wrapped.Digest().Data())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEncryptSubjectPreservesDigest(t *testing.T) {
	rng := primitives.SeededRNG([]byte("encrypt"))
	key := components.NewSymmetricKey(rng)
	e := greeting()

	encrypted, err := e.EncryptSubject(key, rng)
	require.NoError(t, err)
	assert.Equal(t, CaseEncrypted, encrypted.Subject().Case())
	assert.True(t, encrypted.Digest().Equal(e.Digest()))
	// Assertions stay in clear.
	assert.Len(t, encrypted.Assertions(), 1)

	decrypted, err := encrypted.DecryptSubject(key)
	require.NoError(t, err)
	assert.True(t, decrypted.Equal(e))
	assert.Equal(t, e.Encode(), decrypted.Encode())

	// Wrong key is a typed crypto failure.
	_, err = encrypted.DecryptSubject(components.NewSymmetricKey(rng))
	assert.ErrorIs(t, err, primitives.ErrCrypto)

	// Double encryption is refused.
	_, err = encrypted.EncryptSubject(key, rng)
	assert.ErrorIs(t, err, ErrAlreadyObscured)
}

func TestEncryptWholeEnvelope(t *testing.T) {
	rng := primitives.SeededRNG([]byte("whole"))
	key := components.NewSymmetricKey(rng)
	e := greeting()

	sealed, err := e.Encrypt(key, rng)
	require.NoError(t, err)
	back, err := sealed.Decrypt(key)
	require.NoError(t, err)
	assert.True(t, back.Equal(e))
}

func TestEncryptedRoundTripsThroughCBOR(t *testing.T) {
	rng := primitives.SeededRNG([]byte("encrypted-cbor"))
	key := components.NewSymmetricKey(rng)
	encrypted, err := greeting().EncryptSubject(key, rng)
	require.NoError(t, err)

	back, err := Decode(encrypted.Encode())
	require.NoError(t, err)
	assert.True(t, back.Equal(encrypted))

	decrypted, err := back.DecryptSubject(key)
	require.NoError(t, err)
	assert.True(t, decrypted.Equal(greeting()))
}

func TestCompressPreservesDigest(t *testing.T) {
	e := NewString("Hello").AddAssertion(
		NewKnownValue(knownvalues.Note),
		NewString("a note long enough to be worth deflating, repeated: la la la la la la la"))

	compressed, err := e.CompressSubject()
	require.NoError(t, err)
	assert.True(t, compressed.Digest().Equal(e.Digest()))

	back, err := compressed.UncompressSubject()
	require.NoError(t, err)
	assert.Equal(t, e.Encode(), back.Encode())

	whole, err := e.Compress()
	require.NoError(t, err)
	assert.True(t, whole.Digest().Equal(e.Digest()))
	assert.Equal(t, CaseCompressed, whole.Case())
	original, err := whole.Uncompress()
	require.NoError(t, err)
	assert.Equal(t, e.Encode(), original.Encode())

	// Compressed envelopes survive the wire.
	wireBack, err := Decode(whole.Encode())
	require.NoError(t, err)
	original, err = wireBack.Uncompress()
	require.NoError(t, err)
	assert.True(t, original.Equal(e))
}

func TestElideRemovingPreservesDigest(t *testing.T) {
	e := greeting()
	target := NewDigestSet(NewString("greeting"))

	elided := e.ElideRemoving(target)
	assert.True(t, elided.Digest().Equal(e.Digest()))

	// The object is now an elided placeholder.
	obj, err := elided.ObjectForKnownPredicate(knownvalues.Note)
	require.NoError(t, err)
	assert.Equal(t, CaseElided, obj.Case())

	// The wire form round-trips with the same digest.
	back, err := Decode(elided.Encode())
	require.NoError(t, err)
	assert.True(t, back.Digest().Equal(e.Digest()))
}

func TestElideRevealing(t *testing.T) {
	e := greeting()
	// Reveal only the spine: the envelope and its subject.
	target := NewDigestSet(e, e.Subject())
	revealed := e.ElideRevealing(target)
	assert.True(t, revealed.Digest().Equal(e.Digest()))
	assert.Equal(t, CaseLeaf, revealed.Subject().Case())

	// The assertion, not being in the target set, is elided.
	require.Len(t, revealed.Assertions(), 1)
	assert.Equal(t, CaseElided, revealed.Assertions()[0].Case())
}

func TestUnelideRestoresContent(t *testing.T) {
	e := greeting()
	note := e.Assertions()[0]
	elided := e.ElideRemoving(NewDigestSet(note))
	assert.Equal(t, CaseElided, elided.Assertions()[0].Case())

	restored := elided.Unelide(note)
	assert.True(t, restored.Digest().Equal(e.Digest()))
	assert.Equal(t, e.Encode(), restored.Encode())
}

func TestObscureActions(t *testing.T) {
	rng := primitives.SeededRNG([]byte("obscure"))
	key := components.NewSymmetricKey(rng)
	e := greeting()
	target := NewDigestSet(e.Assertions()[0])

	for _, tc := range []struct {
		name   string
		action ObscureAction
		want   Case
	}{
		{"elide", ElideAction(), CaseElided},
		{"encrypt", EncryptAction(key, rng), CaseEncrypted},
		{"compress", CompressAction(), CaseCompressed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			obscured, err := e.ObscureRemoving(target, tc.action)
			require.NoError(t, err)
			assert.True(t, obscured.Digest().Equal(e.Digest()))
			assert.Equal(t, tc.want, obscured.Assertions()[0].Case())
		})
	}
}

func TestLockUnlockWithPassword(t *testing.T) {
	rng := primitives.SeededRNG([]byte("secret"))
	e := greeting()

	locked, err := e.LockSubject(components.MethodArgon2id, components.Password("hunter2"), rng)
	require.NoError(t, err)
	// The subject's identity survives the lock; the hasSecret assertion
	// extends the node.
	assert.True(t, locked.Subject().Digest().Equal(e.Subject().Digest()))

	unlocked, err := locked.UnlockSubject(components.Password("hunter2"))
	require.NoError(t, err)
	assert.True(t, unlocked.Subject().Equal(e.Subject()))

	_, err = locked.UnlockSubject(components.Password("wrong"))
	assert.ErrorIs(t, err, ErrNoMatchingSecret)
}

func TestLockWholeEnvelope(t *testing.T) {
	rng := primitives.SeededRNG([]byte("lock-whole"))
	e := greeting()
	locked, err := e.Lock(components.MethodScrypt, components.Password("tr0ub4dor"), rng)
	require.NoError(t, err)

	back, err := locked.Unlock(components.Password("tr0ub4dor"))
	require.NoError(t, err)
	assert.True(t, back.Equal(e))
}

func TestMultipleSecretsShareOneContentKey(t *testing.T) {
	rng := primitives.SeededRNG([]byte("multi"))
	e := greeting()
	contentKey := components.NewSymmetricKey(rng)

	locked, err := e.LockSubjectWithKey(components.MethodPBKDF2, components.Password("first"), contentKey, rng)
	require.NoError(t, err)
	locked, err = locked.AddLock(components.MethodArgon2id, components.Password("second"), contentKey, rng)
	require.NoError(t, err)
	assert.Len(t, locked.AssertionsWithKnownPredicate(knownvalues.HasSecret), 2)

	one, err := locked.UnlockSubject(components.Password("first"))
	require.NoError(t, err)
	two, err := locked.UnlockSubject(components.Password("second"))
	require.NoError(t, err)
	assert.True(t, one.Subject().Equal(e.Subject()))
	assert.True(t, two.Subject().Equal(e.Subject()))
}

func TestAttachments(t *testing.T) {
	payload := NewString("attachment payload")
	e := greeting().AddAttachment(payload, "com.example", "https://example.com/schema")

	attachments := e.Attachments()
	require.Len(t, attachments, 1)
	vendor, err := attachments[0].AttachmentVendor()
	require.NoError(t, err)
	assert.Equal(t, "com.example", vendor)
	conforms, err := attachments[0].AttachmentConformsTo()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/schema", conforms)
	got, err := attachments[0].AttachmentPayload()
	require.NoError(t, err)
	assert.True(t, got.Equal(payload))

	assert.Len(t, e.AttachmentsWithVendor("com.example"), 1)
	assert.Empty(t, e.AttachmentsWithVendor("org.other"))
}

func TestAddSaltChangesDigest(t *testing.T) {
	rng := primitives.SeededRNG([]byte("salting"))
	e := greeting()
	salted := e.AddSalt(rng)
	assert.False(t, salted.Digest().Equal(e.Digest()))
	assert.True(t, salted.Subject().Equal(e.Subject()))
}

func TestSSKRSplitJoin(t *testing.T) {
	rng := primitives.SeededRNG([]byte("sskr-env"))
	e := greeting()
	spec, err := sskr.NewSpec(1, []sskr.GroupSpec{{MemberThreshold: 2, MemberCount: 3}})
	require.NoError(t, err)

	groups, err := e.SSKRSplit(spec, rng)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0], 3)

	// Any two shares reassemble.
	back, err := SSKRJoin([]*Envelope{groups[0][0], groups[0][2]})
	require.NoError(t, err)
	assert.True(t, back.Equal(e))

	// One share is not enough.
	_, err = SSKRJoin([]*Envelope{groups[0][1]})
	assert.ErrorIs(t, err, ErrInvalidShares)

	// Shares from different invocations do not combine.
	groups2, err := e.SSKRSplit(spec, rng)
	require.NoError(t, err)
	_, err = SSKRJoin([]*Envelope{groups[0][0], groups2[0][1]})
	assert.ErrorIs(t, err, ErrInvalidShares)
}
