package envelope

import (
	"encoding/binary"
	"sort"

	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/knownvalues"
	"github.com/paritytech/bcts-go/primitives"
)

// Case discriminates the envelope variants.
type Case int

const (
	CaseLeaf Case = iota
	CaseKnownValue
	CaseWrapped
	CaseNode
	CaseAssertion
	CaseElided
	CaseEncrypted
	CaseCompressed
)

func (c Case) String() string {
	switch c {
	case CaseLeaf:
		return "leaf"
	case CaseKnownValue:
		return "knownValue"
	case CaseWrapped:
		return "wrapped"
	case CaseNode:
		return "node"
	case CaseAssertion:
		return "assertion"
	case CaseElided:
		return "elided"
	case CaseEncrypted:
		return "encrypted"
	default:
		return "compressed"
	}
}

// Envelope is an immutable Merkle-DAG document node. The zero value is
// not a valid envelope; use the constructors.
type Envelope struct {
	kind   Case
	digest components.Digest

	leaf       dcbor.CBOR            // CaseLeaf
	knownValue knownvalues.KnownValue // CaseKnownValue
	inner      *Envelope             // CaseWrapped
	subject    *Envelope             // CaseNode
	assertions []*Envelope           // CaseNode: sorted by digest, deduplicated
	predicate  *Envelope             // CaseAssertion
	object     *Envelope             // CaseAssertion
	encrypted  components.EncryptedMessage // CaseEncrypted
	compressed components.Compressed       // CaseCompressed
}

// Digest domain-separation prefixes.
var (
	leafPrefix  = []byte("LEAF")
	knownPrefix = []byte("KNOWN")
	wrapPrefix  = []byte("WRAP")
)

// NewLeaf wraps an arbitrary dCBOR value as an envelope subject.
func NewLeaf(value dcbor.CBOR) *Envelope {
	image := append(append([]byte(nil), leafPrefix...), value.Encode()...)
	return &Envelope{
		kind:   CaseLeaf,
		digest: components.NewDigestFromImage(image),
		leaf:   value,
	}
}

// NewString is a convenience leaf constructor.
func NewString(s string) *Envelope { return NewLeaf(dcbor.NewText(s)) }

// NewInt is a convenience leaf constructor.
func NewInt(i int64) *Envelope { return NewLeaf(dcbor.NewInt(i)) }

// NewBytes is a convenience leaf constructor.
func NewBytes(b []byte) *Envelope { return NewLeaf(dcbor.NewBytes(b)) }

// TaggedCBORProvider is satisfied by every typed component.
type TaggedCBORProvider interface {
	TaggedCBOR() dcbor.CBOR
}

// NewComponent wraps a typed component as a leaf.
func NewComponent(c TaggedCBORProvider) *Envelope { return NewLeaf(c.TaggedCBOR()) }

// NewKnownValue wraps a known-value codepoint.
func NewKnownValue(kv knownvalues.KnownValue) *Envelope {
	image := make([]byte, len(knownPrefix)+8)
	copy(image, knownPrefix)
	binary.BigEndian.PutUint64(image[len(knownPrefix):], uint64(kv))
	return &Envelope{
		kind:       CaseKnownValue,
		digest:     components.NewDigestFromImage(image),
		knownValue: kv,
	}
}

// NewAssertion pairs a predicate with an object.
func NewAssertion(predicate, object *Envelope) *Envelope {
	image := append(predicate.digest.Data(), object.digest.Data()...)
	return &Envelope{
		kind:      CaseAssertion,
		digest:    components.NewDigestFromImage(image),
		predicate: predicate,
		object:    object,
	}
}

// newNode assembles a node from a subject and a non-empty assertion
// list, sorting by digest and deduplicating.
func newNode(subject *Envelope, assertions []*Envelope) *Envelope {
	sorted := make([]*Envelope, 0, len(assertions))
	seen := map[[8]byte][]*Envelope{}
	for _, a := range assertions {
		var short [8]byte
		copy(short[:], a.digest.Data())
		dup := false
		for _, prev := range seen[short] {
			if prev.digest.Equal(a.digest) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[short] = append(seen[short], a)
		sorted = append(sorted, a)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].digest.Less(sorted[j].digest)
	})
	image := subject.digest.Data()
	for _, a := range sorted {
		image = append(image, a.digest.Data()...)
	}
	return &Envelope{
		kind:       CaseNode,
		digest:     components.NewDigestFromImage(image),
		subject:    subject,
		assertions: sorted,
	}
}

// newElided reconstructs a placeholder from a bare digest.
func newElided(digest components.Digest) *Envelope {
	return &Envelope{kind: CaseElided, digest: digest}
}

// newEncrypted wraps an encrypted message that carries its identity
// digest in the aad.
func newEncrypted(message components.EncryptedMessage) (*Envelope, error) {
	digest, ok := message.Digest()
	if !ok {
		return nil, ErrMissingDigest
	}
	return &Envelope{kind: CaseEncrypted, digest: digest, encrypted: message}, nil
}

// newCompressed wraps a compressed container that carries its identity
// digest.
func newCompressed(compressed components.Compressed) (*Envelope, error) {
	digest, ok := compressed.Digest()
	if !ok {
		return nil, ErrMissingDigest
	}
	return &Envelope{kind: CaseCompressed, digest: digest, compressed: compressed}, nil
}

// Wrap treats the whole envelope as a new subject.
func (e *Envelope) Wrap() *Envelope {
	image := append(append([]byte(nil), wrapPrefix...), e.digest.Data()...)
	return &Envelope{
		kind:   CaseWrapped,
		digest: components.NewDigestFromImage(image),
		inner:  e,
	}
}

// TryUnwrap returns the inner envelope of a wrapped subject.
func (e *Envelope) TryUnwrap() (*Envelope, error) {
	subject := e.Subject()
	if subject.kind != CaseWrapped {
		return nil, ErrNotWrapped
	}
	return subject.inner, nil
}

// Case returns the variant for pattern matching by callers.
func (e *Envelope) Case() Case { return e.kind }

// Digest is the identity of the envelope.
func (e *Envelope) Digest() components.Digest { return e.digest }

// Equal compares by digest.
func (e *Envelope) Equal(o *Envelope) bool { return e.digest.Equal(o.digest) }

// Subject returns the node subject, or the envelope itself for every
// other case.
func (e *Envelope) Subject() *Envelope {
	if e.kind == CaseNode {
		return e.subject
	}
	return e
}

// Assertions returns the node's assertions in digest order.
func (e *Envelope) Assertions() []*Envelope {
	if e.kind != CaseNode {
		return nil
	}
	out := make([]*Envelope, len(e.assertions))
	copy(out, e.assertions)
	return out
}

// Predicate returns the assertion's predicate envelope.
func (e *Envelope) Predicate() (*Envelope, error) {
	if e.kind != CaseAssertion {
		return nil, ErrNotAssertion
	}
	return e.predicate, nil
}

// Object returns the assertion's object envelope.
func (e *Envelope) Object() (*Envelope, error) {
	if e.kind != CaseAssertion {
		return nil, ErrNotAssertion
	}
	return e.object, nil
}

// Leaf returns the leaf CBOR value.
func (e *Envelope) Leaf() (dcbor.CBOR, error) {
	if e.kind != CaseLeaf {
		return dcbor.CBOR{}, ErrTypeMismatch
	}
	return e.leaf, nil
}

// KnownValue returns the known-value codepoint.
func (e *Envelope) KnownValue() (knownvalues.KnownValue, error) {
	if e.kind != CaseKnownValue {
		return 0, ErrTypeMismatch
	}
	return e.knownValue, nil
}

// EncryptedMessage returns the encrypted payload of an Encrypted case.
func (e *Envelope) EncryptedMessage() (components.EncryptedMessage, error) {
	if e.kind != CaseEncrypted {
		return components.EncryptedMessage{}, ErrNotEncrypted
	}
	return e.encrypted, nil
}

// Compressed returns the container of a Compressed case.
func (e *Envelope) Compressed() (components.Compressed, error) {
	if e.kind != CaseCompressed {
		return components.Compressed{}, ErrNotCompressed
	}
	return e.compressed, nil
}

// IsObscured reports whether the envelope is elided, encrypted or
// compressed.
func (e *Envelope) IsObscured() bool {
	return e.kind == CaseElided || e.kind == CaseEncrypted || e.kind == CaseCompressed
}

// AddAssertion returns a new envelope with (predicate, object) attached.
// A non-node subject promotes to a node; duplicate-digest assertions are
// deduplicated.
func (e *Envelope) AddAssertion(predicate, object *Envelope) *Envelope {
	return e.AddAssertionEnvelope(NewAssertion(predicate, object))
}

// AddAssertionEnvelope attaches an existing assertion envelope, which
// may itself be elided or encrypted.
func (e *Envelope) AddAssertionEnvelope(assertion *Envelope) *Envelope {
	if e.kind == CaseNode {
		return newNode(e.subject, append(e.Assertions(), assertion))
	}
	return newNode(e, []*Envelope{assertion})
}

// AddAssertions attaches several assertion envelopes at once.
func (e *Envelope) AddAssertions(assertions []*Envelope) *Envelope {
	if len(assertions) == 0 {
		return e
	}
	if e.kind == CaseNode {
		return newNode(e.subject, append(e.Assertions(), assertions...))
	}
	return newNode(e, assertions)
}

// AssertionsWithPredicate returns the assertions whose predicate digest
// matches.
func (e *Envelope) AssertionsWithPredicate(predicate *Envelope) []*Envelope {
	var out []*Envelope
	for _, a := range e.Assertions() {
		if a.kind != CaseAssertion {
			continue
		}
		if a.predicate.Equal(predicate) {
			out = append(out, a)
		}
	}
	return out
}

// AssertionsWithKnownPredicate matches a known-value predicate.
func (e *Envelope) AssertionsWithKnownPredicate(kv knownvalues.KnownValue) []*Envelope {
	return e.AssertionsWithPredicate(NewKnownValue(kv))
}

// ObjectForPredicate returns the single object for a predicate;
// ErrNonexistentPredicate or ErrAmbiguousPredicate otherwise.
func (e *Envelope) ObjectForPredicate(predicate *Envelope) (*Envelope, error) {
	matches := e.AssertionsWithPredicate(predicate)
	switch len(matches) {
	case 0:
		return nil, ErrNonexistentPredicate
	case 1:
		return matches[0].object, nil
	default:
		return nil, ErrAmbiguousPredicate
	}
}

// ObjectForKnownPredicate matches a known-value predicate.
func (e *Envelope) ObjectForKnownPredicate(kv knownvalues.KnownValue) (*Envelope, error) {
	return e.ObjectForPredicate(NewKnownValue(kv))
}

// ReplaceSubject swaps the subject, keeping the assertion set. The
// result has a new digest unless newSubject preserves the old one.
func (e *Envelope) ReplaceSubject(newSubject *Envelope) *Envelope {
	if e.kind != CaseNode {
		return newSubject
	}
	return newNode(newSubject, e.assertions)
}

// DigestsOf collects the digest of every element of the envelope's
// spanning tree, including itself.
func (e *Envelope) DigestsOf() map[components.Digest]bool {
	out := map[components.Digest]bool{}
	e.Walk(func(sub *Envelope, level int, edge EdgeType) bool {
		out[sub.digest] = true
		return true
	})
	return out
}

// randomNonce is shared by the encrypting operations.
func randomNonce(rng primitives.RandomNumberGenerator) components.Nonce {
	return components.NewNonce(rng)
}
