package envelope

/*

# Gordian Envelope

An envelope is a Merkle-DAG document: a subject plus a set of assertions
(predicate/object pairs), where every part is itself an envelope and the
identity of every part is the SHA-256 digest of a case-specific byte
composition. Because identity is structural, a subtree can be elided,
encrypted or compressed without changing the digest of anything above
it - which is what makes selective disclosure work.

Envelopes are immutable value objects. Every "modifying" operation
returns a new envelope sharing the unmodified subtrees. The DAG is
acyclic by construction: digest identity cannot express a reference
cycle.

The eight cases and their digests:

	Leaf        H("LEAF" || cbor)
	KnownValue  H("KNOWN" || be64(value))
	Wrapped     H("WRAP" || inner.digest)
	Assertion   H(predicate.digest || object.digest)
	Node        H(subject.digest || sorted assertion digests)
	Elided      the stored digest
	Encrypted   the digest carried in the message aad
	Compressed  the digest carried by the container

The CBOR form is a tag-200 wrapper over [case, fields...]; see cbor.go.

*/
