package knownvalues

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

var ErrNameConflict = errors.New("knownvalues: conflicting name for codepoint")

// Store is a codepoint <-> name registry. It follows a build-once
// read-many discipline: all insertion happens before the first lookup
// anywhere in the process.
type Store struct {
	mu     sync.RWMutex
	byVal  map[KnownValue]string
	byName map[string]KnownValue
}

// NewStore returns a store seeded with the bundled assignments.
func NewStore() *Store {
	s := &Store{
		byVal:  map[KnownValue]string{},
		byName: map[string]KnownValue{},
	}
	for kv, name := range assigned {
		// Seeding cannot conflict with itself.
		_ = s.Insert(kv, name)
	}
	return s
}

// Insert registers a name for a codepoint. Exact duplicates are
// idempotent; a different name for an already-named codepoint is an error.
func (s *Store) Insert(kv KnownValue, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byVal[kv]; ok {
		if existing == name {
			return nil
		}
		return fmt.Errorf("%w: %d is %q, refusing %q", ErrNameConflict, kv, existing, name)
	}
	s.byVal[kv] = name
	s.byName[name] = kv
	return nil
}

// Name returns the registered name, or the decimal string of the value.
func (s *Store) Name(kv KnownValue) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if name, ok := s.byVal[kv]; ok {
		return name
	}
	return strconv.FormatUint(uint64(kv), 10)
}

// ForName looks a codepoint up by name.
func (s *Store) ForName(name string) (KnownValue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kv, ok := s.byName[name]
	return kv, ok
}

var assigned = map[KnownValue]string{
	IsA:            "isA",
	ID:             "id",
	Signed:         "signed",
	Note:           "note",
	HasRecipient:   "hasRecipient",
	SSKRShare:      "sskrShare",
	Controller:     "controller",
	Key:            "key",
	DereferenceVia: "dereferenceVia",
	Entity:         "entity",
	HasName:        "hasName",
	Language:       "language",
	Issuer:         "issuer",
	Holder:         "holder",
	Salt:           "salt",
	Date:           "date",
	Unknown:        "unknown",
	Version:        "version",
	HasSecret:      "hasSecret",
	Attachment:     "attachment",
	Vendor:         "vendor",
	ConformsTo:     "conformsTo",
}

var (
	globalOnce  sync.Once
	globalStore *Store
)

// GlobalStore returns the process-wide registry, building it on first use.
func GlobalStore() *Store {
	globalOnce.Do(func() {
		globalStore = NewStore()
		logrus.WithField("entries", len(assigned)).Debug("known value registry loaded")
	})
	return globalStore
}
