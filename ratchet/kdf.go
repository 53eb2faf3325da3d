package ratchet

import (
	"github.com/paritytech/bcts-go/primitives"
)

// Protocol limits. Exceeding a store limit evicts the oldest entries;
// exceeding the forward-jump bound rejects the message.
const (
	MaxForwardJumps   = 25_000
	MaxSkippedKeys    = 2_000
	MaxReceiverChains = 5
	MaxArchivedStates = 40
)

// Fixed derivation labels.
const (
	ratchetInfo     = "WhisperRatchet"
	messageKeysInfo = "WhisperMessageKeys"
	x3dhInfo        = "WhisperText_X25519_SHA-256_CRYSTALS-KYBER-1024"
)

// Keyed-PRF constants for the symmetric chain.
var (
	messageKeySeedLabel = []byte{0x01}
	chainKeyLabel       = []byte{0x02}
)

// rootKDF folds a DH output into the root key, yielding the next root
// key and a fresh chain key. An all-zero root key is rejected.
func rootKDF(rootKey, dhOutput []byte) (newRoot, chainKey []byte, err error) {
	out := primitives.HKDFSHA256(dhOutput, rootKey, []byte(ratchetInfo), 64)
	newRoot, chainKey = out[:32], out[32:]
	if allZero(newRoot) {
		return nil, nil, ErrZeroRootKey
	}
	return newRoot, chainKey, nil
}

// messageKeySeed derives the per-message key seed from a chain key.
func messageKeySeed(chainKey []byte) []byte {
	return primitives.HMACSHA256(chainKey, messageKeySeedLabel)
}

// nextChainKey advances the symmetric chain.
func nextChainKey(chainKey []byte) []byte {
	return primitives.HMACSHA256(chainKey, chainKeyLabel)
}

// messageKeyMaterial expands a message key seed into the AEAD cipher
// key, the wire MAC key and the nonce.
type messageKeyMaterial struct {
	cipherKey []byte
	macKey    []byte
	nonce     []byte
}

func expandMessageKeys(seed []byte) messageKeyMaterial {
	out := primitives.HKDFSHA256(seed, nil, []byte(messageKeysInfo), 32+32+12)
	return messageKeyMaterial{
		cipherKey: out[:32],
		macKey:    out[32:64],
		nonce:     out[64:],
	}
}

func allZero(b []byte) bool {
	var acc byte
	for _, x := range b {
		acc |= x
	}
	return acc == 0
}
