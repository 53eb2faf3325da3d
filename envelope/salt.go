package envelope

import (
	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/knownvalues"
	"github.com/paritytech/bcts-go/primitives"
)

// AddSalt attaches a random 'salt' assertion sized to the subject, so
// that structurally identical envelopes stop sharing digests before
// elision.
func (e *Envelope) AddSalt(rng primitives.RandomNumberGenerator) *Envelope {
	salt := components.NewSaltForSize(rng, len(e.Subject().Encode()))
	return e.AddAssertion(NewKnownValue(knownvalues.Salt), NewComponent(salt))
}
