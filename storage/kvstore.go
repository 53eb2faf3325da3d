// Package storage defines the envelope store surface the suite's
// collaborators provide. Network transports (HTTP, DHT, IPFS) implement
// KvStore elsewhere; the core only needs the mapping from an ARID to an
// envelope, plus the in-memory implementation used by tests.
package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/envelope"
)

var ErrNotFound = errors.New("storage: no envelope for that arid")

// KvStore maps ARIDs to envelopes.
type KvStore interface {
	// Put stores an envelope under an ARID, replacing any previous value.
	Put(ctx context.Context, id components.ARID, e *envelope.Envelope) error

	// Get retrieves the envelope for an ARID; ErrNotFound when absent.
	Get(ctx context.Context, id components.ARID) (*envelope.Envelope, error)

	// Delete removes an entry. Deleting an absent entry is not an error.
	Delete(ctx context.Context, id components.ARID) error
}

// MemStore is the in-process KvStore. Values are stored in wire form so
// Get always returns an independent decoded envelope.
type MemStore struct {
	mu      sync.RWMutex
	entries map[[32]byte][]byte
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{entries: map[[32]byte][]byte{}}
}

func key(id components.ARID) [32]byte {
	var k [32]byte
	copy(k[:], id.Data())
	return k
}

func (m *MemStore) Put(ctx context.Context, id components.ARID, e *envelope.Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key(id)] = e.Encode()
	return nil
}

func (m *MemStore) Get(ctx context.Context, id components.ARID) (*envelope.Envelope, error) {
	m.mu.RLock()
	raw, ok := m.entries[key(id)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return envelope.Decode(raw)
}

func (m *MemStore) Delete(ctx context.Context, id components.ARID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key(id))
	return nil
}
