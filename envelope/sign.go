package envelope

import (
	"github.com/paritytech/bcts-go/components"
	"github.com/paritytech/bcts-go/knownvalues"
)

// Signer produces signatures; satisfied by components.SigningPrivateKey
// and components.PrivateKeys.
type Signer interface {
	Sign(message []byte) (components.Signature, error)
}

// AddSignature signs the subject's digest and attaches the signature as
// a 'signed' assertion.
func (e *Envelope) AddSignature(signer Signer) (*Envelope, error) {
	return e.AddSignatureWithMetadata(signer, nil)
}

// AddSignatureWithMetadata signs the subject's digest. When metadata
// assertions are given, the signature envelope is wrapped, the metadata
// is attached to the wrapper, and an outer signature over the wrapper's
// digest is added; both signatures verify independently.
func (e *Envelope) AddSignatureWithMetadata(signer Signer, metadata []*Envelope) (*Envelope, error) {
	sig, err := signer.Sign(e.Subject().Digest().Data())
	if err != nil {
		return nil, err
	}
	object := NewComponent(sig)
	if len(metadata) > 0 {
		wrapped := object.AddAssertions(metadata).Wrap()
		outer, err := signer.Sign(wrapped.Digest().Data())
		if err != nil {
			return nil, err
		}
		object = wrapped.AddAssertion(NewKnownValue(knownvalues.Signed), NewComponent(outer))
	}
	return e.AddAssertion(NewKnownValue(knownvalues.Signed), object), nil
}

// Verifier checks signatures; satisfied by components.SigningPublicKey
// and components.PublicKeys.
type Verifier interface {
	Verify(sig components.Signature, message []byte) (bool, error)
}

// VerifySignatureFrom succeeds when at least one 'signed' assertion
// carries a signature over the subject's digest that verifies under
// verifier. Scheme mismatches on individual assertions do not abort the
// search.
func (e *Envelope) VerifySignatureFrom(verifier Verifier) error {
	subjectDigest := e.Subject().Digest().Data()
	for _, assertion := range e.AssertionsWithKnownPredicate(knownvalues.Signed) {
		object, err := assertion.Object()
		if err != nil || object.IsObscured() {
			continue
		}
		for _, sig := range candidateSignatures(object) {
			ok, err := verifier.Verify(sig, subjectDigest)
			if err == nil && ok {
				return nil
			}
		}
	}
	return ErrUnverifiedSignature
}

// HasVerifiedSignatureFrom is the boolean form of VerifySignatureFrom.
func (e *Envelope) HasVerifiedSignatureFrom(verifier Verifier) bool {
	return e.VerifySignatureFrom(verifier) == nil
}

// candidateSignatures extracts the signatures a 'signed' object can
// carry: a bare signature leaf, or a wrapped signature envelope with
// metadata (whose inner subject is the signature leaf).
func candidateSignatures(object *Envelope) []components.Signature {
	var out []components.Signature
	if sig, ok := signatureFromLeaf(object.Subject()); ok {
		out = append(out, sig)
	}
	if inner, err := object.TryUnwrap(); err == nil {
		if sig, ok := signatureFromLeaf(inner.Subject()); ok {
			out = append(out, sig)
		}
	}
	return out
}

func signatureFromLeaf(e *Envelope) (components.Signature, bool) {
	leaf, err := e.Leaf()
	if err != nil {
		return components.Signature{}, false
	}
	sig, err := components.SignatureFromTaggedCBOR(leaf)
	if err != nil {
		return components.Signature{}, false
	}
	return sig, true
}
