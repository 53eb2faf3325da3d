package envelope

import (
	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/knownvalues"
	"github.com/paritytech/bcts-go/primitives"
	"github.com/paritytech/bcts-go/sskr"
)

// SSKRSplit encrypts the whole envelope under a fresh content key,
// splits that key per spec, and returns one envelope per share: each
// carries the same encrypted payload plus one 'sskrShare' assertion.
func (e *Envelope) SSKRSplit(spec sskr.Spec, rng primitives.RandomNumberGenerator) ([][]*Envelope, error) {
	contentKey := components.NewSymmetricKey(rng)
	sealed, err := e.Wrap().EncryptSubject(contentKey, rng)
	if err != nil {
		return nil, err
	}
	groups, err := sskr.Generate(spec, contentKey.Data(), rng)
	if err != nil {
		return nil, err
	}
	out := make([][]*Envelope, len(groups))
	for gi, group := range groups {
		out[gi] = make([]*Envelope, len(group))
		for mi, share := range group {
			component, err := components.NewSSKRShareComponent(share)
			if err != nil {
				return nil, err
			}
			out[gi][mi] = sealed.AddAssertion(
				NewKnownValue(knownvalues.SSKRShare), NewComponent(component))
		}
	}
	return out, nil
}

// SSKRJoin reassembles a split: envelopes are grouped by the digest of
// their encrypted payload, and each group in turn (in no defined order)
// has its shares combined and its payload decrypted with the recovered
// key. The first group that succeeds is returned.
func SSKRJoin(envelopes []*Envelope) (*Envelope, error) {
	if len(envelopes) == 0 {
		return nil, ErrInvalidShares
	}
	type group struct {
		payload *Envelope
		shares  []sskr.Share
	}
	groups := map[components.Digest]*group{}
	for _, e := range envelopes {
		subject := e.Subject()
		g := groups[subject.Digest()]
		if g == nil {
			g = &group{payload: e}
			groups[subject.Digest()] = g
		}
		for _, assertion := range e.AssertionsWithKnownPredicate(knownvalues.SSKRShare) {
			object, err := assertion.Object()
			if err != nil || object.IsObscured() {
				continue
			}
			leaf, err := object.Leaf()
			if err != nil {
				continue
			}
			component, err := components.SSKRShareComponentFromTaggedCBOR(leaf)
			if err != nil {
				continue
			}
			g.shares = append(g.shares, sskr.Share(component.Data()))
		}
	}
	for _, g := range groups {
		secret, err := sskr.Combine(g.shares)
		if err != nil {
			continue
		}
		contentKey, err := components.NewSymmetricKeyFromData(secret)
		if err != nil {
			continue
		}
		decrypted, err := g.payload.DecryptSubject(contentKey)
		if err != nil {
			continue
		}
		return decrypted.TryUnwrap()
	}
	return nil, ErrInvalidShares
}
