package ratchet

import (
	"github.com/paritytech/bcts-go/primitives"
)

// KeyPair is an X25519 ratchet key pair.
type KeyPair struct {
	PrivateKey []byte
	PublicKey  []byte
}

// NewKeyPair draws a fresh ratchet key pair from rng.
func NewKeyPair(rng primitives.RandomNumberGenerator) (KeyPair, error) {
	priv := primitives.NewX25519PrivateKey(rng)
	pub, err := primitives.X25519PublicKey(priv)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{PrivateKey: priv, PublicKey: pub}, nil
}

// agreement validates the peer point and computes the shared secret.
func agreement(priv []byte, peerPub []byte) ([]byte, error) {
	shared, err := primitives.X25519Agreement(priv, peerPub)
	if err != nil {
		return nil, err
	}
	return shared, nil
}
