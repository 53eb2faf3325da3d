package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/knownvalues"
)

func greeting() *Envelope {
	return NewString("Hello").
		AddAssertion(NewKnownValue(knownvalues.Note), NewString("greeting"))
}

func TestLeafAndKnownValue(t *testing.T) {
	e := NewString("Hello")
	assert.Equal(t, CaseLeaf, e.Case())
	leaf, err := e.Leaf()
	require.NoError(t, err)
	s, err := leaf.Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello", s)

	kv := NewKnownValue(knownvalues.Note)
	assert.Equal(t, CaseKnownValue, kv.Case())
	got, err := kv.KnownValue()
	require.NoError(t, err)
	assert.Equal(t, knownvalues.Note, got)

	// Distinct content, distinct digests; equal content, equal digests.
	assert.False(t, e.Equal(kv))
	assert.True(t, NewString("Hello").Equal(e))
}

func TestAddAssertionPromotesAndDeduplicates(t *testing.T) {
	e := greeting()
	assert.Equal(t, CaseNode, e.Case())
	assert.Len(t, e.Assertions(), 1)

	// Same assertion again: deduplicated by digest.
	again := e.AddAssertion(NewKnownValue(knownvalues.Note), NewString("greeting"))
	assert.Len(t, again.Assertions(), 1)
	assert.True(t, e.Equal(again))

	// A different assertion extends the set.
	two := e.AddAssertion(NewKnownValue(knownvalues.IsA), NewString("salutation"))
	assert.Len(t, two.Assertions(), 2)
	assert.False(t, e.Equal(two))

	// Assertion order does not matter: the set orders by digest.
	other := NewString("Hello").
		AddAssertion(NewKnownValue(knownvalues.IsA), NewString("salutation")).
		AddAssertion(NewKnownValue(knownvalues.Note), NewString("greeting"))
	assert.True(t, two.Equal(other))
}

func TestSubjectAndQueries(t *testing.T) {
	e := greeting()
	assert.True(t, e.Subject().Equal(NewString("Hello")))

	obj, err := e.ObjectForKnownPredicate(knownvalues.Note)
	require.NoError(t, err)
	assert.True(t, obj.Equal(NewString("greeting")))

	_, err = e.ObjectForKnownPredicate(knownvalues.IsA)
	assert.ErrorIs(t, err, ErrNonexistentPredicate)

	multi := e.AddAssertion(NewKnownValue(knownvalues.Note), NewString("another"))
	_, err = multi.ObjectForKnownPredicate(knownvalues.Note)
	assert.ErrorIs(t, err, ErrAmbiguousPredicate)
	assert.Len(t, multi.AssertionsWithKnownPredicate(knownvalues.Note), 2)
}

func TestWrapUnwrap(t *testing.T) {
	e := greeting()
	wrapped := e.Wrap()
	assert.Equal(t, CaseWrapped, wrapped.Case())
	assert.False(t, wrapped.Equal(e))

	inner, err := wrapped.TryUnwrap()
	require.NoError(t, err)
	assert.True(t, inner.Equal(e))

	_, err = e.TryUnwrap()
	assert.ErrorIs(t, err, ErrNotWrapped)
}

func TestCBORRoundTrip(t *testing.T) {
	envelopes := []*Envelope{
		NewString("Hello"),
		NewInt(-42),
		NewBytes([]byte{1, 2, 3}),
		NewKnownValue(knownvalues.Note),
		greeting(),
		greeting().Wrap(),
		greeting().Wrap().AddAssertion(NewString("p"), NewString("o")),
		NewAssertion(NewString("p"), NewString("o")),
	}
	for _, e := range envelopes {
		back, err := Decode(e.Encode())
		require.NoError(t, err)
		assert.True(t, e.Equal(back), "round trip %v", e.Case())
		assert.Equal(t, e.Encode(), back.Encode())
	}
}

func TestURRoundTrip(t *testing.T) {
	e := greeting()
	back, err := FromUR(e.UR())
	require.NoError(t, err)
	assert.True(t, e.Equal(back))
}

func TestDecodeRejectsBadShapes(t *testing.T) {
	// Not tag 200.
	_, err := FromTaggedCBOR(dcbor.NewTagged(40001, dcbor.NewUint(1)))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	// Node with no assertions violates the node invariant.
	bad := dcbor.NewTagged(200, dcbor.NewArray(
		dcbor.NewUint(3),
		dcbor.NewArray(dcbor.NewUint(0), dcbor.NewText("s")),
		dcbor.NewArray(),
	))
	_, err = FromTaggedCBOR(bad)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	// Unknown case discriminant.
	_, err = FromTaggedCBOR(dcbor.NewTagged(200, dcbor.NewArray(dcbor.NewUint(9), dcbor.NewUint(0))))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestWalkOrder(t *testing.T) {
	e := greeting()
	items := e.Iter()
	// node, subject, assertion, predicate, object
	require.Len(t, items, 5)
	assert.Equal(t, EdgeNone, items[0].Edge)
	assert.Equal(t, EdgeSubject, items[1].Edge)
	assert.Equal(t, 1, items[1].Level)
	assert.Equal(t, EdgeAssertion, items[2].Edge)
	assert.Equal(t, EdgePredicate, items[3].Edge)
	assert.Equal(t, 2, items[3].Level)
	assert.Equal(t, EdgeObject, items[4].Edge)

	// Stopping descent prunes below but continues siblings.
	var visited int
	e.Walk(func(sub *Envelope, level int, edge EdgeType) bool {
		visited++
		return edge != EdgeAssertion
	})
	assert.Equal(t, 3, visited)
}

func TestDigestsKnownComposition(t *testing.T) {
	// Leaf digest is H("LEAF" || cbor); spot-check the composition rules
	// hold together via structural identities.
	hello := NewString("Hello")
	wrapped := hello.Wrap()
	assert.False(t, hello.Digest().Equal(wrapped.Digest()))

	a1 := NewAssertion(NewString("p"), NewString("o"))
	a2 := NewAssertion(NewString("p"), NewString("o"))
	assert.True(t, a1.Equal(a2))

	// Swapping predicate and object changes the digest.
	a3 := NewAssertion(NewString("o"), NewString("p"))
	assert.False(t, a1.Equal(a3))
}
