package components

import "fmt"

// SigningScheme discriminates the closed set of signature algorithms.
// Schnorr over secp256k1 is the family default and encodes as a bare
// byte string; the discriminated schemes encode as [discriminator,
// bytes]; the ML-DSA parameter sets nest a tagged object.
type SigningScheme int

const (
	SchemeSchnorr SigningScheme = iota
	SchemeECDSA
	SchemeEd25519
	SchemeSr25519
	SchemeMLDSA44
	SchemeMLDSA65
	SchemeMLDSA87
	SchemeSSHEd25519
	SchemeSSHDSA
	SchemeSSHECDSAP256
	SchemeSSHECDSAP384
)

// Wire discriminators for the array-encoded schemes.
const (
	discECDSA        = 1
	discEd25519      = 2
	discSr25519      = 3
	discSSHEd25519   = 4
	discSSHDSA       = 5
	discSSHECDSAP256 = 6
	discSSHECDSAP384 = 7
)

func (s SigningScheme) String() string {
	switch s {
	case SchemeSchnorr:
		return "Schnorr"
	case SchemeECDSA:
		return "ECDSA"
	case SchemeEd25519:
		return "Ed25519"
	case SchemeSr25519:
		return "Sr25519"
	case SchemeMLDSA44:
		return "ML-DSA-44"
	case SchemeMLDSA65:
		return "ML-DSA-65"
	case SchemeMLDSA87:
		return "ML-DSA-87"
	case SchemeSSHEd25519:
		return "SSH-Ed25519"
	case SchemeSSHDSA:
		return "SSH-DSA"
	case SchemeSSHECDSAP256:
		return "SSH-ECDSA-P256"
	case SchemeSSHECDSAP384:
		return "SSH-ECDSA-P384"
	default:
		return fmt.Sprintf("SigningScheme(%d)", int(s))
	}
}

// IsMLDSA reports whether the scheme is an ML-DSA parameter set.
func (s SigningScheme) IsMLDSA() bool {
	return s == SchemeMLDSA44 || s == SchemeMLDSA65 || s == SchemeMLDSA87
}

// IsSSH reports whether the scheme delegates to an SSH signer.
func (s SigningScheme) IsSSH() bool {
	switch s {
	case SchemeSSHEd25519, SchemeSSHDSA, SchemeSSHECDSAP256, SchemeSSHECDSAP384:
		return true
	}
	return false
}

// mldsaName maps an ML-DSA scheme to its standard parameter-set name.
func (s SigningScheme) mldsaName() (string, error) {
	switch s {
	case SchemeMLDSA44:
		return "ML-DSA-44", nil
	case SchemeMLDSA65:
		return "ML-DSA-65", nil
	case SchemeMLDSA87:
		return "ML-DSA-87", nil
	default:
		return "", fmt.Errorf("%w: %v is not ML-DSA", ErrInvalidData, s)
	}
}

// mldsaParamSet is the integer carried inside the ML-DSA tag.
func (s SigningScheme) mldsaParamSet() uint64 {
	switch s {
	case SchemeMLDSA44:
		return 44
	case SchemeMLDSA65:
		return 65
	default:
		return 87
	}
}

func mldsaSchemeForParamSet(n uint64) (SigningScheme, error) {
	switch n {
	case 44:
		return SchemeMLDSA44, nil
	case 65:
		return SchemeMLDSA65, nil
	case 87:
		return SchemeMLDSA87, nil
	default:
		return 0, fmt.Errorf("%w: ml-dsa parameter set %d", ErrInvalidData, n)
	}
}

func schemeForDisc(disc uint64) (SigningScheme, error) {
	switch disc {
	case discECDSA:
		return SchemeECDSA, nil
	case discEd25519:
		return SchemeEd25519, nil
	case discSr25519:
		return SchemeSr25519, nil
	case discSSHEd25519:
		return SchemeSSHEd25519, nil
	case discSSHDSA:
		return SchemeSSHDSA, nil
	case discSSHECDSAP256:
		return SchemeSSHECDSAP256, nil
	case discSSHECDSAP384:
		return SchemeSSHECDSAP384, nil
	default:
		return 0, fmt.Errorf("%w: signing scheme discriminator %d", ErrInvalidData, disc)
	}
}

func (s SigningScheme) disc() uint64 {
	switch s {
	case SchemeECDSA:
		return discECDSA
	case SchemeEd25519:
		return discEd25519
	case SchemeSr25519:
		return discSr25519
	case SchemeSSHEd25519:
		return discSSHEd25519
	case SchemeSSHDSA:
		return discSSHDSA
	case SchemeSSHECDSAP256:
		return discSSHECDSAP256
	case SchemeSSHECDSAP384:
		return discSSHECDSAP384
	default:
		panic("components: scheme has no discriminator")
	}
}
