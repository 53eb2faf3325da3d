package components

import (
	"fmt"

	"github.com/paritytech/bcts-go/dcbor"
)

// PrivateKeys pairs a signing key with an encapsulation key.
type PrivateKeys struct {
	signing       SigningPrivateKey
	encapsulation EncapsulationPrivateKey
}

// NewPrivateKeys assembles the container.
func NewPrivateKeys(signing SigningPrivateKey, encapsulation EncapsulationPrivateKey) PrivateKeys {
	return PrivateKeys{signing: signing, encapsulation: encapsulation}
}

func (k PrivateKeys) SigningPrivateKey() SigningPrivateKey { return k.signing }
func (k PrivateKeys) EncapsulationPrivateKey() EncapsulationPrivateKey { return k.encapsulation }

// PublicKeys derives the matching public container.
func (k PrivateKeys) PublicKeys() (PublicKeys, error) {
	signingPub, err := k.signing.PublicKey()
	if err != nil {
		return PublicKeys{}, err
	}
	encapsulationPub, err := k.encapsulation.PublicKey()
	if err != nil {
		return PublicKeys{}, err
	}
	return PublicKeys{signing: signingPub, encapsulation: encapsulationPub}, nil
}

// Sign delegates to the signing key.
func (k PrivateKeys) Sign(message []byte) (Signature, error) {
	return k.signing.Sign(message)
}

func (k PrivateKeys) UntaggedCBOR() dcbor.CBOR {
	return dcbor.NewArray(k.signing.UntaggedCBOR(), k.encapsulation.UntaggedCBOR())
}

func (k PrivateKeys) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagSalt, k.UntaggedCBOR())
}

// PrivateKeysFromTaggedCBOR reads the container form. The container
// shares its tag number with Salt per the registry; the array shape
// disambiguates.
func PrivateKeysFromTaggedCBOR(c dcbor.CBOR) (PrivateKeys, error) {
	inner, err := c.ExpectTagged(TagSalt)
	if err != nil {
		return PrivateKeys{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	items, err := inner.Array()
	if err != nil || len(items) != 2 {
		return PrivateKeys{}, fmt.Errorf("%w: private keys shape", ErrTypeMismatch)
	}
	scheme, data, err := schemeKeyFromCBOR(items[0])
	if err != nil {
		return PrivateKeys{}, err
	}
	signing, err := NewSigningPrivateKeyFromData(scheme, data)
	if err != nil {
		return PrivateKeys{}, err
	}
	kemScheme, kemData, err := kemKeyFromCBOR(items[1])
	if err != nil {
		return PrivateKeys{}, err
	}
	encapsulation, err := NewEncapsulationPrivateKeyFromData(kemScheme, kemData)
	if err != nil {
		return PrivateKeys{}, err
	}
	return PrivateKeys{signing: signing, encapsulation: encapsulation}, nil
}

// PublicKeys pairs a signature verifier with an encapsulation key. Its
// canonical CBOR is the image from which an XID is derived.
type PublicKeys struct {
	signing       SigningPublicKey
	encapsulation EncapsulationPublicKey
}

// NewPublicKeys assembles the container.
func NewPublicKeys(signing SigningPublicKey, encapsulation EncapsulationPublicKey) PublicKeys {
	return PublicKeys{signing: signing, encapsulation: encapsulation}
}

func (k PublicKeys) SigningPublicKey() SigningPublicKey { return k.signing }
func (k PublicKeys) EncapsulationPublicKey() EncapsulationPublicKey { return k.encapsulation }

func (k PublicKeys) Equal(o PublicKeys) bool {
	return k.signing.Equal(o.signing) && k.encapsulation.Equal(o.encapsulation)
}

// Verify delegates to the signature verifier.
func (k PublicKeys) Verify(sig Signature, message []byte) (bool, error) {
	return k.signing.Verify(sig, message)
}

func (k PublicKeys) UntaggedCBOR() dcbor.CBOR {
	return dcbor.NewArray(k.signing.UntaggedCBOR(), k.encapsulation.UntaggedCBOR())
}

func (k PublicKeys) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagPublicKeys, k.UntaggedCBOR())
}

// PublicKeysFromTaggedCBOR reads the tag-40017 form.
func PublicKeysFromTaggedCBOR(c dcbor.CBOR) (PublicKeys, error) {
	inner, err := c.ExpectTagged(TagPublicKeys)
	if err != nil {
		return PublicKeys{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	items, err := inner.Array()
	if err != nil || len(items) != 2 {
		return PublicKeys{}, fmt.Errorf("%w: public keys shape", ErrTypeMismatch)
	}
	scheme, data, err := schemeKeyFromCBOR(items[0])
	if err != nil {
		return PublicKeys{}, err
	}
	signing, err := NewSigningPublicKeyFromData(scheme, data)
	if err != nil {
		return PublicKeys{}, err
	}
	kemScheme, kemData, err := kemKeyFromCBOR(items[1])
	if err != nil {
		return PublicKeys{}, err
	}
	encapsulation, err := NewEncapsulationPublicKeyFromData(kemScheme, kemData)
	if err != nil {
		return PublicKeys{}, err
	}
	return PublicKeys{signing: signing, encapsulation: encapsulation}, nil
}

func (k PublicKeys) UR() string { return componentUR("crypto-pubkeys", k.TaggedCBOR()) }

// PublicKeysFromUR parses the text form.
func PublicKeysFromUR(s string) (PublicKeys, error) {
	c, err := parseComponentUR(s, "crypto-pubkeys")
	if err != nil {
		return PublicKeys{}, err
	}
	return PublicKeysFromTaggedCBOR(c)
}
