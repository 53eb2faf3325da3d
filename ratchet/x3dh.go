package ratchet

import (
	"github.com/paritytech/bcts-go/primitives"
	"github.com/sirupsen/logrus"
)

// discontinuity is the fixed prefix of the X3DH secret input.
var discontinuity = make([]byte, 32)

func init() {
	for i := range discontinuity {
		discontinuity[i] = 0xff
	}
}

// AliceParameters collects the sender-side X3DH inputs.
type AliceParameters struct {
	OurIdentity        KeyPair
	OurBaseKey         KeyPair
	TheirIdentityKey   []byte
	TheirSignedPrekey  []byte
	TheirOneTimePrekey []byte // optional
	KyberSharedSecret  []byte // optional post-quantum augmentation
}

// BobParameters collects the receiver-side X3DH inputs.
type BobParameters struct {
	OurIdentity       KeyPair
	OurSignedPrekey   KeyPair
	OurOneTimePrekey  *KeyPair // optional
	OurRatchetKey     KeyPair  // fresh, seeds Bob's sender chain
	TheirIdentityKey  []byte
	TheirBaseKey      []byte
	KyberSharedSecret []byte // optional
}

// InitializeAlice runs the sender side of the handshake and returns a
// session in the AliceInitialized state.
func InitializeAlice(params AliceParameters, rng primitives.RandomNumberGenerator) (*Session, error) {
	for _, pub := range [][]byte{params.TheirIdentityKey, params.TheirSignedPrekey} {
		if err := primitives.ValidateX25519PublicKey(pub); err != nil {
			return nil, err
		}
	}
	if params.TheirOneTimePrekey != nil {
		if err := primitives.ValidateX25519PublicKey(params.TheirOneTimePrekey); err != nil {
			return nil, err
		}
	}

	secrets := append([]byte(nil), discontinuity...)
	dh1, err := agreement(params.OurIdentity.PrivateKey, params.TheirSignedPrekey)
	if err != nil {
		return nil, err
	}
	dh2, err := agreement(params.OurBaseKey.PrivateKey, params.TheirIdentityKey)
	if err != nil {
		return nil, err
	}
	dh3, err := agreement(params.OurBaseKey.PrivateKey, params.TheirSignedPrekey)
	if err != nil {
		return nil, err
	}
	secrets = append(secrets, dh1...)
	secrets = append(secrets, dh2...)
	secrets = append(secrets, dh3...)
	if params.TheirOneTimePrekey != nil {
		dh4, err := agreement(params.OurBaseKey.PrivateKey, params.TheirOneTimePrekey)
		if err != nil {
			return nil, err
		}
		secrets = append(secrets, dh4...)
	}
	version := 3
	if params.KyberSharedSecret != nil {
		secrets = append(secrets, params.KyberSharedSecret...)
		version = 4
	}

	rootKey, chainKeyBytes, pqrInitKey := deriveInitialKeys(secrets)

	s := &Session{
		state:          StateAliceInitialized,
		version:        version,
		rng:            rng,
		localIdentity:  append([]byte(nil), params.OurIdentity.PublicKey...),
		remoteIdentity: append([]byte(nil), params.TheirIdentityKey...),
		aliceBaseKey:   append([]byte(nil), params.OurBaseKey.PublicKey...),
		rootKey:        rootKey,
		senderRatchet:  params.OurBaseKey,
		senderChain:    chainKey{key: chainKeyBytes},
		skipped:        newSkippedKeyStore(),
	}
	if version == 4 {
		s.pqRatchetState = pqrInitKey
	}
	logrus.WithField("version", version).Debug("ratchet session initialized (alice)")
	return s, nil
}

// InitializeBob runs the receiver side. Bob's receiver chain is the
// X3DH-derived chain Alice sends on; his sender chain is seeded by an
// immediate DH step with his fresh ratchet key, so the session starts
// Established.
func InitializeBob(params BobParameters, rng primitives.RandomNumberGenerator) (*Session, error) {
	for _, pub := range [][]byte{params.TheirIdentityKey, params.TheirBaseKey} {
		if err := primitives.ValidateX25519PublicKey(pub); err != nil {
			return nil, err
		}
	}

	secrets := append([]byte(nil), discontinuity...)
	dh1, err := agreement(params.OurSignedPrekey.PrivateKey, params.TheirIdentityKey)
	if err != nil {
		return nil, err
	}
	dh2, err := agreement(params.OurIdentity.PrivateKey, params.TheirBaseKey)
	if err != nil {
		return nil, err
	}
	dh3, err := agreement(params.OurSignedPrekey.PrivateKey, params.TheirBaseKey)
	if err != nil {
		return nil, err
	}
	secrets = append(secrets, dh1...)
	secrets = append(secrets, dh2...)
	secrets = append(secrets, dh3...)
	if params.OurOneTimePrekey != nil {
		dh4, err := agreement(params.OurOneTimePrekey.PrivateKey, params.TheirBaseKey)
		if err != nil {
			return nil, err
		}
		secrets = append(secrets, dh4...)
	}
	version := 3
	if params.KyberSharedSecret != nil {
		secrets = append(secrets, params.KyberSharedSecret...)
		version = 4
	}

	rootKey, chainKeyBytes, pqrInitKey := deriveInitialKeys(secrets)

	s := &Session{
		state:          StateEstablished,
		version:        version,
		rng:            rng,
		localIdentity:  append([]byte(nil), params.OurIdentity.PublicKey...),
		remoteIdentity: append([]byte(nil), params.TheirIdentityKey...),
		aliceBaseKey:   append([]byte(nil), params.TheirBaseKey...),
		rootKey:        rootKey,
		skipped:        newSkippedKeyStore(),
	}
	if version == 4 {
		s.pqRatchetState = pqrInitKey
	}

	// Alice sends on the X3DH chain under her base key.
	s.pushReceiverChain(&receiverChain{
		ratchetPublic: append([]byte(nil), params.TheirBaseKey...),
		chain:         chainKey{key: chainKeyBytes},
	})

	// Seed Bob's sender chain from the root and his fresh ratchet key.
	dhOut, err := agreement(params.OurRatchetKey.PrivateKey, params.TheirBaseKey)
	if err != nil {
		return nil, err
	}
	newRoot, senderChainKey, err := rootKDF(s.rootKey, dhOut)
	if err != nil {
		return nil, err
	}
	s.rootKey = newRoot
	s.senderRatchet = params.OurRatchetKey
	s.senderChain = chainKey{key: senderChainKey}

	logrus.WithField("version", version).Debug("ratchet session initialized (bob)")
	return s, nil
}

// deriveInitialKeys expands the X3DH secret input into the root key, the
// first chain key and the post-quantum ratchet init key.
func deriveInitialKeys(secrets []byte) (rootKey, chainKey, pqrInitKey []byte) {
	salt := make([]byte, 32)
	out := primitives.HKDFSHA256(secrets, salt, []byte(x3dhInfo), 96)
	return out[:32], out[32:64], out[64:]
}
