package components

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/ssh"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// SigningPrivateKey holds scheme-specific private material:
//   - Schnorr, ECDSA: a 32-byte secp256k1 scalar
//   - Ed25519: the 32-byte seed
//   - ML-DSA: the marshalled private key
//   - SSH: the PEM-encoded OpenSSH private key
//
// Sr25519 carries opaque bytes only; signing with it reports
// ErrUnsupportedScheme.
type SigningPrivateKey struct {
	scheme SigningScheme
	data   []byte
}

// NewSchnorrSigningPrivateKey draws a secp256k1 scalar for the default
// scheme.
func NewSchnorrSigningPrivateKey(rng primitives.RandomNumberGenerator) SigningPrivateKey {
	return SigningPrivateKey{scheme: SchemeSchnorr, data: primitives.NewSecp256k1PrivateKey(rng)}
}

// NewECDSASigningPrivateKey draws a secp256k1 scalar for ECDSA.
func NewECDSASigningPrivateKey(rng primitives.RandomNumberGenerator) SigningPrivateKey {
	return SigningPrivateKey{scheme: SchemeECDSA, data: primitives.NewSecp256k1PrivateKey(rng)}
}

// NewEd25519SigningPrivateKey draws an Ed25519 seed.
func NewEd25519SigningPrivateKey(rng primitives.RandomNumberGenerator) SigningPrivateKey {
	return SigningPrivateKey{scheme: SchemeEd25519, data: primitives.NewEd25519Seed(rng)}
}

// NewMLDSASigningPrivateKey derives an ML-DSA key pair and keeps the
// private half.
func NewMLDSASigningPrivateKey(scheme SigningScheme, rng primitives.RandomNumberGenerator) (SigningPrivateKey, error) {
	name, err := scheme.mldsaName()
	if err != nil {
		return SigningPrivateKey{}, err
	}
	_, sk, err := primitives.MLDSAGenerate(name, rng)
	if err != nil {
		return SigningPrivateKey{}, err
	}
	return SigningPrivateKey{scheme: scheme, data: sk}, nil
}

// NewSSHSigningPrivateKeyFromPEM wraps an OpenSSH private key, deriving
// the scheme from the key type.
func NewSSHSigningPrivateKeyFromPEM(pemBytes []byte) (SigningPrivateKey, error) {
	signer, err := ssh.ParsePrivateKey(pemBytes)
	if err != nil {
		return SigningPrivateKey{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	scheme, err := sshSchemeForKeyType(signer.PublicKey().Type())
	if err != nil {
		return SigningPrivateKey{}, err
	}
	return SigningPrivateKey{scheme: scheme, data: append([]byte(nil), pemBytes...)}, nil
}

// NewSigningPrivateKeyFromData wraps raw scheme material, checking fixed
// widths strictly.
func NewSigningPrivateKeyFromData(scheme SigningScheme, data []byte) (SigningPrivateKey, error) {
	switch scheme {
	case SchemeSchnorr, SchemeECDSA, SchemeEd25519, SchemeSr25519:
		if len(data) != 32 {
			return SigningPrivateKey{}, fmt.Errorf("%w: %v private key %d", ErrInvalidSize, scheme, len(data))
		}
	}
	return SigningPrivateKey{scheme: scheme, data: append([]byte(nil), data...)}, nil
}

func (k SigningPrivateKey) Scheme() SigningScheme { return k.scheme }
func (k SigningPrivateKey) Data() []byte { return append([]byte(nil), k.data...) }

// PublicKey derives the matching verifier.
func (k SigningPrivateKey) PublicKey() (SigningPublicKey, error) {
	switch {
	case k.scheme == SchemeSchnorr:
		pub, err := primitives.SchnorrPublicKey(k.data)
		if err != nil {
			return SigningPublicKey{}, err
		}
		return SigningPublicKey{scheme: k.scheme, data: pub}, nil
	case k.scheme == SchemeECDSA:
		pub, err := primitives.Secp256k1PublicKey(k.data)
		if err != nil {
			return SigningPublicKey{}, err
		}
		return SigningPublicKey{scheme: k.scheme, data: pub}, nil
	case k.scheme == SchemeEd25519:
		pub, err := primitives.Ed25519PublicKeyFromSeed(k.data)
		if err != nil {
			return SigningPublicKey{}, err
		}
		return SigningPublicKey{scheme: k.scheme, data: pub}, nil
	case k.scheme.IsMLDSA():
		name, err := k.scheme.mldsaName()
		if err != nil {
			return SigningPublicKey{}, err
		}
		pub, err := primitives.MLDSAPublicKey(name, k.data)
		if err != nil {
			return SigningPublicKey{}, err
		}
		return SigningPublicKey{scheme: k.scheme, data: pub}, nil
	case k.scheme.IsSSH():
		signer, err := ssh.ParsePrivateKey(k.data)
		if err != nil {
			return SigningPublicKey{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		return SigningPublicKey{scheme: k.scheme, data: ssh.MarshalAuthorizedKey(signer.PublicKey())}, nil
	default:
		return SigningPublicKey{}, fmt.Errorf("%w: %v", ErrUnsupportedScheme, k.scheme)
	}
}

// Sign produces a signature over message in the key's scheme.
func (k SigningPrivateKey) Sign(message []byte) (Signature, error) {
	switch {
	case k.scheme == SchemeSchnorr:
		sig, err := primitives.SchnorrSign(k.data, message)
		if err != nil {
			return Signature{}, err
		}
		return NewSignature(k.scheme, sig), nil
	case k.scheme == SchemeECDSA:
		sig, err := primitives.ECDSASign(k.data, message)
		if err != nil {
			return Signature{}, err
		}
		return NewSignature(k.scheme, sig), nil
	case k.scheme == SchemeEd25519:
		sig, err := primitives.Ed25519Sign(k.data, message)
		if err != nil {
			return Signature{}, err
		}
		return NewSignature(k.scheme, sig), nil
	case k.scheme.IsMLDSA():
		name, err := k.scheme.mldsaName()
		if err != nil {
			return Signature{}, err
		}
		sig, err := primitives.MLDSASign(name, k.data, message)
		if err != nil {
			return Signature{}, err
		}
		return NewSignature(k.scheme, sig), nil
	case k.scheme.IsSSH():
		signer, err := ssh.ParsePrivateKey(k.data)
		if err != nil {
			return Signature{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		sig, err := signer.Sign(rand.Reader, message)
		if err != nil {
			return Signature{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		return NewSignature(k.scheme, ssh.Marshal(sig)), nil
	default:
		return Signature{}, fmt.Errorf("%w: %v", ErrUnsupportedScheme, k.scheme)
	}
}

func (k SigningPrivateKey) UntaggedCBOR() dcbor.CBOR {
	return schemeKeyCBOR(k.scheme, k.data)
}

func (k SigningPrivateKey) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagSigningPrivateKey, k.UntaggedCBOR())
}

// SigningPrivateKeyFromTaggedCBOR reads the tag-40014 form.
func SigningPrivateKeyFromTaggedCBOR(c dcbor.CBOR) (SigningPrivateKey, error) {
	inner, err := c.ExpectTagged(TagSigningPrivateKey)
	if err != nil {
		return SigningPrivateKey{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	scheme, data, err := schemeKeyFromCBOR(inner)
	if err != nil {
		return SigningPrivateKey{}, err
	}
	return NewSigningPrivateKeyFromData(scheme, data)
}

// SigningPublicKey holds scheme-specific verification material:
//   - Schnorr: the 32-byte x-only point
//   - ECDSA: the 33-byte compressed SEC1 point
//   - Ed25519: the 32-byte point
//   - ML-DSA: the marshalled public key
//   - SSH: the authorized_keys-format line
type SigningPublicKey struct {
	scheme SigningScheme
	data   []byte
}

// NewSigningPublicKeyFromData wraps raw scheme material.
func NewSigningPublicKeyFromData(scheme SigningScheme, data []byte) (SigningPublicKey, error) {
	switch scheme {
	case SchemeSchnorr, SchemeEd25519, SchemeSr25519:
		if len(data) != 32 {
			return SigningPublicKey{}, fmt.Errorf("%w: %v public key %d", ErrInvalidSize, scheme, len(data))
		}
	case SchemeECDSA:
		if len(data) != 33 {
			return SigningPublicKey{}, fmt.Errorf("%w: ecdsa public key %d", ErrInvalidSize, len(data))
		}
	}
	return SigningPublicKey{scheme: scheme, data: append([]byte(nil), data...)}, nil
}

func (k SigningPublicKey) Scheme() SigningScheme { return k.scheme }
func (k SigningPublicKey) Data() []byte { return append([]byte(nil), k.data...) }

func (k SigningPublicKey) Equal(o SigningPublicKey) bool {
	return k.scheme == o.scheme && string(k.data) == string(o.data)
}

// Verify checks a signature over message. A signature from a different
// scheme reports ErrLevelMismatch; an invalid signature returns (false,
// nil).
func (k SigningPublicKey) Verify(sig Signature, message []byte) (bool, error) {
	if sig.scheme != k.scheme {
		return false, fmt.Errorf("%w: signature %v, verifier %v", ErrLevelMismatch, sig.scheme, k.scheme)
	}
	switch {
	case k.scheme == SchemeSchnorr:
		return primitives.SchnorrVerify(k.data, message, sig.data), nil
	case k.scheme == SchemeECDSA:
		return primitives.ECDSAVerify(k.data, message, sig.data), nil
	case k.scheme == SchemeEd25519:
		return primitives.Ed25519Verify(k.data, message, sig.data), nil
	case k.scheme.IsMLDSA():
		name, err := k.scheme.mldsaName()
		if err != nil {
			return false, err
		}
		return primitives.MLDSAVerify(name, k.data, message, sig.data), nil
	case k.scheme.IsSSH():
		pub, _, _, _, err := ssh.ParseAuthorizedKey(k.data)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		var wire ssh.Signature
		if err := ssh.Unmarshal(sig.data, &wire); err != nil {
			return false, nil
		}
		return pub.Verify(message, &wire) == nil, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrUnsupportedScheme, k.scheme)
	}
}

func (k SigningPublicKey) UntaggedCBOR() dcbor.CBOR {
	return schemeKeyCBOR(k.scheme, k.data)
}

func (k SigningPublicKey) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagSigningPublicKey, k.UntaggedCBOR())
}

// SigningPublicKeyFromTaggedCBOR reads the tag-40015 form.
func SigningPublicKeyFromTaggedCBOR(c dcbor.CBOR) (SigningPublicKey, error) {
	inner, err := c.ExpectTagged(TagSigningPublicKey)
	if err != nil {
		return SigningPublicKey{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	scheme, data, err := schemeKeyFromCBOR(inner)
	if err != nil {
		return SigningPublicKey{}, err
	}
	return NewSigningPublicKeyFromData(scheme, data)
}

// schemeKeyCBOR applies the family encoding rule shared by signing keys.
func schemeKeyCBOR(scheme SigningScheme, data []byte) dcbor.CBOR {
	switch {
	case scheme == SchemeSchnorr:
		return dcbor.NewBytes(data)
	case scheme.IsMLDSA():
		return dcbor.NewTagged(TagMLDSASignature, dcbor.NewArray(
			dcbor.NewUint(scheme.mldsaParamSet()),
			dcbor.NewBytes(data),
		))
	default:
		return dcbor.NewArray(dcbor.NewUint(scheme.disc()), dcbor.NewBytes(data))
	}
}

func schemeKeyFromCBOR(c dcbor.CBOR) (SigningScheme, []byte, error) {
	switch c.Kind() {
	case dcbor.KindBytes:
		b, _ := c.Bytes()
		return SchemeSchnorr, b, nil
	case dcbor.KindTagged:
		inner, err := c.ExpectTagged(TagMLDSASignature)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		items, err := inner.Array()
		if err != nil || len(items) != 2 {
			return 0, nil, fmt.Errorf("%w: ml-dsa key shape", ErrTypeMismatch)
		}
		paramSet, err := items[0].Uint()
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		scheme, err := mldsaSchemeForParamSet(paramSet)
		if err != nil {
			return 0, nil, err
		}
		b, err := items[1].Bytes()
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return scheme, b, nil
	case dcbor.KindArray:
		items, _ := c.Array()
		if len(items) != 2 {
			return 0, nil, fmt.Errorf("%w: key shape", ErrTypeMismatch)
		}
		disc, err := items[0].Uint()
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		scheme, err := schemeForDisc(disc)
		if err != nil {
			return 0, nil, err
		}
		b, err := items[1].Bytes()
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return scheme, b, nil
	default:
		return 0, nil, fmt.Errorf("%w: key shape", ErrTypeMismatch)
	}
}

func sshSchemeForKeyType(keyType string) (SigningScheme, error) {
	switch keyType {
	case ssh.KeyAlgoED25519:
		return SchemeSSHEd25519, nil
	case ssh.KeyAlgoDSA:
		return SchemeSSHDSA, nil
	case ssh.KeyAlgoECDSA256:
		return SchemeSSHECDSAP256, nil
	case ssh.KeyAlgoECDSA384:
		return SchemeSSHECDSAP384, nil
	default:
		return 0, fmt.Errorf("%w: ssh key type %q", ErrUnsupportedScheme, keyType)
	}
}
