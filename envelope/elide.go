package envelope

import (
	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/primitives"
)

// ObscureAction selects what happens to a targeted subtree: replacement
// by its digest, encryption under a key, or compression. All three
// preserve the digest of everything above the subtree.
type ObscureAction struct {
	kind       obscureKind
	contentKey components.SymmetricKey
	rng        primitives.RandomNumberGenerator
}

type obscureKind int

const (
	obscureElide obscureKind = iota
	obscureEncrypt
	obscureCompress
)

// ElideAction replaces targets with their digests.
func ElideAction() ObscureAction { return ObscureAction{kind: obscureElide} }

// EncryptAction seals targets under contentKey.
func EncryptAction(contentKey components.SymmetricKey, rng primitives.RandomNumberGenerator) ObscureAction {
	return ObscureAction{kind: obscureEncrypt, contentKey: contentKey, rng: rng}
}

// CompressAction stores targets compressed.
func CompressAction() ObscureAction { return ObscureAction{kind: obscureCompress} }

func (a ObscureAction) apply(target *Envelope) (*Envelope, error) {
	if target.kind == CaseElided {
		return target, nil
	}
	switch a.kind {
	case obscureElide:
		return newElided(target.digest), nil
	case obscureEncrypt:
		return encryptEnvelope(target, a.contentKey, randomNonce(a.rng))
	default:
		return compressEnvelope(target)
	}
}

// DigestSet is a selection of target digests.
type DigestSet map[components.Digest]bool

// NewDigestSet collects digests of the given envelopes.
func NewDigestSet(envelopes ...*Envelope) DigestSet {
	s := DigestSet{}
	for _, e := range envelopes {
		s[e.Digest()] = true
	}
	return s
}

// ElideRemoving obscures every subtree whose digest is in target,
// replacing it with its digest.
func (e *Envelope) ElideRemoving(target DigestSet) *Envelope {
	out, _ := e.elide(target, false, ElideAction())
	return out
}

// ElideRevealing obscures everything except the elements in target and
// the spine above them. The children of a revealed element are obscured
// unless they are in target or enclose an element that is.
func (e *Envelope) ElideRevealing(target DigestSet) *Envelope {
	out, _ := e.elide(target, true, ElideAction())
	return out
}

// ObscureRemoving applies an arbitrary action to matching subtrees.
func (e *Envelope) ObscureRemoving(target DigestSet, action ObscureAction) (*Envelope, error) {
	return e.elide(target, false, action)
}

// ObscureRevealing applies an arbitrary action to non-matching subtrees.
func (e *Envelope) ObscureRevealing(target DigestSet, action ObscureAction) (*Envelope, error) {
	return e.elide(target, true, action)
}

// elide recurses over the DAG. In removing mode a digest match obscures
// the subtree; in revealing mode an element that neither is nor encloses
// a target is obscured and any other recurses, so the revealed set is
// the dominator closure of the targets.
func (e *Envelope) elide(target DigestSet, revealing bool, action ObscureAction) (*Envelope, error) {
	matches := target[e.digest]
	if revealing && !matches {
		// An element enclosing a target stays revealed as part of the spine.
		e.Walk(func(sub *Envelope, _ int, _ EdgeType) bool {
			if target[sub.digest] {
				matches = true
			}
			return !matches
		})
	}
	if revealing != matches {
		return action.apply(e)
	}
	switch e.kind {
	case CaseNode:
		subject, err := e.subject.elide(target, revealing, action)
		if err != nil {
			return nil, err
		}
		assertions := make([]*Envelope, len(e.assertions))
		for i, a := range e.assertions {
			if assertions[i], err = a.elide(target, revealing, action); err != nil {
				return nil, err
			}
		}
		return newNode(subject, assertions), nil
	case CaseAssertion:
		predicate, err := e.predicate.elide(target, revealing, action)
		if err != nil {
			return nil, err
		}
		object, err := e.object.elide(target, revealing, action)
		if err != nil {
			return nil, err
		}
		return NewAssertion(predicate, object), nil
	case CaseWrapped:
		inner, err := e.inner.elide(target, revealing, action)
		if err != nil {
			return nil, err
		}
		return inner.Wrap(), nil
	default:
		return e, nil
	}
}

// Unelide re-attaches a revealed subtree: every elided element whose
// digest matches revealed is replaced by it. The result's digest always
// equals the receiver's.
func (e *Envelope) Unelide(revealed *Envelope) *Envelope {
	if e.digest.Equal(revealed.digest) {
		return revealed
	}
	switch e.kind {
	case CaseNode:
		subject := e.subject.Unelide(revealed)
		assertions := make([]*Envelope, len(e.assertions))
		for i, a := range e.assertions {
			assertions[i] = a.Unelide(revealed)
		}
		return newNode(subject, assertions)
	case CaseAssertion:
		return NewAssertion(e.predicate.Unelide(revealed), e.object.Unelide(revealed))
	case CaseWrapped:
		return e.inner.Unelide(revealed).Wrap()
	default:
		return e
	}
}
