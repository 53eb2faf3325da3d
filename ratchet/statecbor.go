package ratchet

import (
	"fmt"

	"github.com/paritytech/bcts-go/primitives"
)

// serializedChain is the wire form of one receiver chain.
type serializedChain struct {
	RatchetPublic []byte `cbor:"1,keyasint"`
	ChainKey      []byte `cbor:"2,keyasint"`
	Index         uint32 `cbor:"3,keyasint"`
}

// serializedSkipped is the wire form of one cached message key.
type serializedSkipped struct {
	RatchetPublic []byte `cbor:"1,keyasint"`
	Counter       uint32 `cbor:"2,keyasint"`
	Seed          []byte `cbor:"3,keyasint"`
}

// serializedSession is the archival form of a session. The archive list
// itself is not nested, so snapshots stay flat.
type serializedSession struct {
	State           int                 `cbor:"1,keyasint"`
	Version         int                 `cbor:"2,keyasint"`
	LocalIdentity   []byte              `cbor:"3,keyasint"`
	RemoteIdentity  []byte              `cbor:"4,keyasint"`
	AliceBaseKey    []byte              `cbor:"5,keyasint"`
	RootKey         []byte              `cbor:"6,keyasint"`
	SenderPrivate   []byte              `cbor:"7,keyasint"`
	SenderPublic    []byte              `cbor:"8,keyasint"`
	SenderChainKey  []byte              `cbor:"9,keyasint"`
	SenderChainIdx  uint32              `cbor:"10,keyasint"`
	PreviousCounter uint32              `cbor:"11,keyasint"`
	ReceiverChains  []serializedChain   `cbor:"12,keyasint"`
	Skipped         []serializedSkipped `cbor:"13,keyasint"`
	PQRatchetState  []byte              `cbor:"14,keyasint,omitempty"`
}

// Serialize snapshots the session state, excluding the archive list.
func (s *Session) Serialize() ([]byte, error) {
	codec, err := NewCBORCodec()
	if err != nil {
		return nil, err
	}
	out := serializedSession{
		State:           int(s.state),
		Version:         s.version,
		LocalIdentity:   s.localIdentity,
		RemoteIdentity:  s.remoteIdentity,
		AliceBaseKey:    s.aliceBaseKey,
		RootKey:         s.rootKey,
		SenderPrivate:   s.senderRatchet.PrivateKey,
		SenderPublic:    s.senderRatchet.PublicKey,
		SenderChainKey:  s.senderChain.key,
		SenderChainIdx:  s.senderChain.index,
		PreviousCounter: s.previousCounter,
		PQRatchetState:  s.pqRatchetState,
	}
	for _, c := range s.receiverChains {
		out.ReceiverChains = append(out.ReceiverChains, serializedChain{
			RatchetPublic: c.ratchetPublic,
			ChainKey:      c.chain.key,
			Index:         c.chain.index,
		})
	}
	for _, id := range s.skipped.order {
		out.Skipped = append(out.Skipped, serializedSkipped{
			RatchetPublic: []byte(id.ratchetPublic),
			Counter:       id.counter,
			Seed:          s.skipped.seeds[id],
		})
	}
	return codec.MarshalCBOR(out)
}

// DeserializeSession restores a snapshot. The rng re-arms the session
// for future ratchet steps.
func DeserializeSession(data []byte, rng primitives.RandomNumberGenerator) (*Session, error) {
	codec, err := NewCBORCodec()
	if err != nil {
		return nil, err
	}
	var in serializedSession
	if err := codec.UnmarshalInto(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if in.State < int(StateUninitialized) || in.State > int(StateEstablished) {
		return nil, fmt.Errorf("%w: state %d", ErrInvalidMessage, in.State)
	}
	s := &Session{
		state:           State(in.State),
		version:         in.Version,
		rng:             rng,
		localIdentity:   in.LocalIdentity,
		remoteIdentity:  in.RemoteIdentity,
		aliceBaseKey:    in.AliceBaseKey,
		rootKey:         in.RootKey,
		senderRatchet:   KeyPair{PrivateKey: in.SenderPrivate, PublicKey: in.SenderPublic},
		senderChain:     chainKey{key: in.SenderChainKey, index: in.SenderChainIdx},
		previousCounter: in.PreviousCounter,
		skipped:         newSkippedKeyStore(),
		pqRatchetState:  in.PQRatchetState,
	}
	for _, c := range in.ReceiverChains {
		s.receiverChains = append(s.receiverChains, &receiverChain{
			ratchetPublic: c.RatchetPublic,
			chain:         chainKey{key: c.ChainKey, index: c.Index},
		})
	}
	for _, sk := range in.Skipped {
		s.skipped.put(sk.RatchetPublic, sk.Counter, sk.Seed)
	}
	return s, nil
}
