package ratchet

import (
	"bytes"
	"fmt"

	"github.com/paritytech/bcts-go/primitives"
	"github.com/sirupsen/logrus"
)

// State tracks the session lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateAliceInitialized
	StateEstablished
)

func (s State) String() string {
	switch s {
	case StateAliceInitialized:
		return "aliceInitialized"
	case StateEstablished:
		return "established"
	default:
		return "uninitialized"
	}
}

// Session is one endpoint of a double-ratchet conversation. It is
// single-owner: never share a *Session across goroutines without
// external ordering.
type Session struct {
	state   State
	version int
	rng     primitives.RandomNumberGenerator

	localIdentity  []byte
	remoteIdentity []byte
	aliceBaseKey   []byte

	rootKey         []byte
	senderRatchet   KeyPair
	senderChain     chainKey
	previousCounter uint32

	receiverChains []*receiverChain // newest first, bounded
	skipped        *skippedKeyStore
	archive        [][]byte // serialized prior states, bounded
	pqRatchetState []byte
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Version returns 3, or 4 when the post-quantum augmentation is active.
func (s *Session) Version() int { return s.version }

// RemoteIdentity returns the peer's identity key.
func (s *Session) RemoteIdentity() []byte { return append([]byte(nil), s.remoteIdentity...) }

// AliceBaseKey returns the handshake base key, which identifies the
// session across prekey message retries.
func (s *Session) AliceBaseKey() []byte { return append([]byte(nil), s.aliceBaseKey...) }

// Encrypt seals plaintext as the next message of the sender chain.
func (s *Session) Encrypt(plaintext []byte) ([]byte, error) {
	if s.state == StateUninitialized {
		return nil, ErrUninitialized
	}
	seed := messageKeySeed(s.senderChain.key)
	keys := expandMessageKeys(seed)
	ciphertext, err := primitives.AEADEncrypt(keys.cipherKey, keys.nonce, plaintext, nil)
	if err != nil {
		return nil, err
	}
	wire := encodeSignalMessage(
		s.version,
		s.senderRatchet.PublicKey,
		s.senderChain.index,
		s.previousCounter,
		ciphertext,
		keys.macKey,
		s.localIdentity,
		s.remoteIdentity,
	)
	s.senderChain = chainKey{key: nextChainKey(s.senderChain.key), index: s.senderChain.index + 1}
	return wire, nil
}

// Decrypt opens a wire message, ratcheting and skipping as needed. On
// any failure the session state is left exactly as it was; state
// mutations commit only when a message authenticates and decrypts.
func (s *Session) Decrypt(wire []byte) ([]byte, error) {
	if s.state == StateUninitialized {
		return nil, ErrUninitialized
	}
	backup := s.cloneMutableState()
	plaintext, err := s.decrypt(wire)
	if err != nil {
		s.restoreMutableState(backup)
		return nil, err
	}
	return plaintext, nil
}

func (s *Session) decrypt(wire []byte) ([]byte, error) {
	if s.state == StateUninitialized {
		return nil, ErrUninitialized
	}
	msg, err := ParseSignalMessage(wire)
	if err != nil {
		return nil, err
	}

	// Out-of-order arrival whose key was cached earlier.
	if seed, ok := s.skipped.take(msg.RatchetKey, msg.Counter); ok {
		return s.openWithSeed(msg, seed)
	}

	chain := s.receiverChain(msg.RatchetKey)
	if chain == nil {
		if err := s.ratchetStep(msg.RatchetKey); err != nil {
			return nil, err
		}
		chain = s.receiverChains[0]
	}

	if msg.Counter < chain.chain.index {
		// The chain advanced past this counter and no skipped key
		// remains: the key was consumed or evicted.
		return nil, ErrMessageTooOld
	}
	if uint64(msg.Counter)-uint64(chain.chain.index) > MaxForwardJumps {
		// Skipped-key derivation stops at the forward-jump bound.
		return nil, fmt.Errorf("%w: counter %d skips past %d", ErrMessageTooOld, msg.Counter, chain.chain.index)
	}

	// Walk the chain forward, caching the keys of skipped counters.
	ck := chain.chain.clone()
	for ck.index < msg.Counter {
		s.skipped.put(msg.RatchetKey, ck.index, messageKeySeed(ck.key))
		ck = chainKey{key: nextChainKey(ck.key), index: ck.index + 1}
	}
	seed := messageKeySeed(ck.key)
	chain.chain = chainKey{key: nextChainKey(ck.key), index: ck.index + 1}

	plaintext, err := s.openWithSeed(msg, seed)
	if err != nil {
		return nil, err
	}
	if s.state == StateAliceInitialized {
		s.state = StateEstablished
	}
	return plaintext, nil
}

// openWithSeed verifies the wire MAC and decrypts with a message-key
// seed.
func (s *Session) openWithSeed(msg *SignalMessage, seed []byte) ([]byte, error) {
	keys := expandMessageKeys(seed)
	if err := msg.verifyMAC(keys.macKey, s.remoteIdentity, s.localIdentity); err != nil {
		return nil, err
	}
	plaintext, err := primitives.AEADDecrypt(keys.cipherKey, keys.nonce, msg.Ciphertext, nil)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

// ratchetStep derives a receiver chain for a new peer ephemeral, then
// replaces the sender chain under a fresh local ephemeral. The previous
// state is archived for late messages.
func (s *Session) ratchetStep(theirRatchetKey []byte) error {
	s.archiveState()

	dhReceive, err := agreement(s.senderRatchet.PrivateKey, theirRatchetKey)
	if err != nil {
		return err
	}
	receiveRoot, receiveChainKey, err := rootKDF(s.rootKey, dhReceive)
	if err != nil {
		return err
	}
	s.pushReceiverChain(&receiverChain{
		ratchetPublic: append([]byte(nil), theirRatchetKey...),
		chain:         chainKey{key: receiveChainKey},
	})

	fresh, err := NewKeyPair(s.rng)
	if err != nil {
		return err
	}
	dhSend, err := agreement(fresh.PrivateKey, theirRatchetKey)
	if err != nil {
		return err
	}
	sendRoot, sendChainKey, err := rootKDF(receiveRoot, dhSend)
	if err != nil {
		return err
	}

	s.previousCounter = s.senderChain.index
	s.rootKey = sendRoot
	s.senderRatchet = fresh
	s.senderChain = chainKey{key: sendChainKey}

	logrus.WithFields(logrus.Fields{
		"chains":  len(s.receiverChains),
		"skipped": s.skipped.len(),
	}).Debug("dh ratchet step")
	return nil
}

// receiverChain finds the chain keyed by a peer ratchet public key.
func (s *Session) receiverChain(ratchetKey []byte) *receiverChain {
	for _, c := range s.receiverChains {
		if bytes.Equal(c.ratchetPublic, ratchetKey) {
			return c
		}
	}
	return nil
}

// pushReceiverChain prepends a chain, evicting the oldest past the
// bound.
func (s *Session) pushReceiverChain(c *receiverChain) {
	s.receiverChains = append([]*receiverChain{c}, s.receiverChains...)
	if len(s.receiverChains) > MaxReceiverChains {
		s.receiverChains = s.receiverChains[:MaxReceiverChains]
	}
}

// archiveState snapshots the serialized session before a ratchet step,
// bounded FIFO.
func (s *Session) archiveState() {
	snapshot, err := s.Serialize()
	if err != nil {
		return
	}
	s.archive = append(s.archive, snapshot)
	if len(s.archive) > MaxArchivedStates {
		s.archive = s.archive[1:]
	}
}

// ArchivedStates returns the bounded list of serialized prior states.
func (s *Session) ArchivedStates() [][]byte {
	out := make([][]byte, len(s.archive))
	copy(out, s.archive)
	return out
}

// mutableState is the decrypt-transactional part of a session.
type mutableState struct {
	state           State
	rootKey         []byte
	senderRatchet   KeyPair
	senderChain     chainKey
	previousCounter uint32
	receiverChains  []*receiverChain
	skipped         *skippedKeyStore
	archive         [][]byte
}

func (s *Session) cloneMutableState() mutableState {
	chains := make([]*receiverChain, len(s.receiverChains))
	for i, c := range s.receiverChains {
		chains[i] = &receiverChain{
			ratchetPublic: append([]byte(nil), c.ratchetPublic...),
			chain:         c.chain.clone(),
		}
	}
	skipped := newSkippedKeyStore()
	skipped.order = append([]skippedKeyID(nil), s.skipped.order...)
	for id, seed := range s.skipped.seeds {
		skipped.seeds[id] = seed
	}
	archive := make([][]byte, len(s.archive))
	copy(archive, s.archive)
	return mutableState{
		state:           s.state,
		rootKey:         append([]byte(nil), s.rootKey...),
		senderRatchet:   s.senderRatchet,
		senderChain:     s.senderChain.clone(),
		previousCounter: s.previousCounter,
		receiverChains:  chains,
		skipped:         skipped,
		archive:         archive,
	}
}

func (s *Session) restoreMutableState(m mutableState) {
	s.state = m.state
	s.rootKey = m.rootKey
	s.senderRatchet = m.senderRatchet
	s.senderChain = m.senderChain
	s.previousCounter = m.previousCounter
	s.receiverChains = m.receiverChains
	s.skipped = m.skipped
	s.archive = m.archive
}
