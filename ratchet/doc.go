package ratchet

/*

# Double ratchet sessions

This package implements a Signal-style forward-secret session: an X3DH
handshake establishes a shared root key, after which every message
advances a symmetric sender chain, and every observed peer ephemeral
triggers a DH ratchet that replaces both chains.

The state machine per session:

	Uninitialized -> AliceInitialized  (X3DH done, nothing received)
	AliceInitialized -> Established    (first reply processed)
	Bob begins at Established as soon as Alice's prekey message is
	processed.

Out-of-order delivery is handled by skipping message keys forward along
a receiver chain (bounded per message), caching the skipped keys
(bounded overall, FIFO eviction), and retaining a bounded set of old
receiver chains and archived session snapshots. A message whose key has
been evicted fails with ErrMessageTooOld.

Sessions are single-owner: a *Session must not be mutated concurrently
by two goroutines. Route operations through one owner or guard with a
mutex.

*/
