package components

import (
	"sync"

	"github.com/paritytech/bcts-go/dcbor"
)

// CBOR tags for the typed components. The SSKR share has a legacy tag that
// is accepted on decode only; everything else is symmetric.
const (
	TagURI  = 32
	TagUUID = 37

	TagEnvelope = 200

	TagSeed              = 40000
	TagDigest            = 40001
	TagEncryptedMessage  = 40002
	TagCompressed        = 40003
	TagNonce             = 40004
	TagX25519PrivateKey  = 40010
	TagX25519PublicKey   = 40011
	TagARID              = 40012
	TagPrivateKeyBase    = 40013
	TagSigningPrivateKey = 40014
	TagSigningPublicKey  = 40015
	TagPublicKeys        = 40017
	TagSalt              = 40018
	TagSealedMessage     = 40019
	TagSignature         = 40020
	TagEncryptedKey      = 40021
	TagXID               = 40024
	TagMLDSASignature    = 40025

	TagSSKRShare       = 40309
	TagSSKRShareLegacy = 309
)

var registerTagsOnce sync.Once

// RegisterTags seeds the global dcbor tag store with the component names.
// It is idempotent and is called by every component's UR path, so the
// registry is populated before any lookup.
func RegisterTags() {
	registerTagsOnce.Do(func() {
		tags := dcbor.GlobalTags()
		for _, t := range []dcbor.Tag{
			{Number: TagURI, Name: "uri"},
			{Number: TagUUID, Name: "uuid"},
			{Number: TagEnvelope, Name: "envelope"},
			{Number: TagSeed, Name: "seed"},
			{Number: TagDigest, Name: "digest"},
			{Number: TagEncryptedMessage, Name: "encrypted"},
			{Number: TagCompressed, Name: "compressed"},
			{Number: TagNonce, Name: "nonce"},
			{Number: TagX25519PrivateKey, Name: "agreement-private-key"},
			{Number: TagX25519PublicKey, Name: "agreement-public-key"},
			{Number: TagARID, Name: "arid"},
			{Number: TagPrivateKeyBase, Name: "crypto-prvkey-base"},
			{Number: TagSigningPrivateKey, Name: "signing-private-key"},
			{Number: TagSigningPublicKey, Name: "signing-public-key"},
			{Number: TagPublicKeys, Name: "crypto-pubkeys"},
			{Number: TagSalt, Name: "salt"},
			{Number: TagSealedMessage, Name: "crypto-sealed"},
			{Number: TagSignature, Name: "signature"},
			{Number: TagEncryptedKey, Name: "encrypted-key"},
			{Number: TagXID, Name: "xid"},
			{Number: TagMLDSASignature, Name: "mldsa-signature"},
			{Number: TagSSKRShare, Name: "sskr"},
		} {
			tags.Register(t)
		}
	})
}
