package primitives

import (
	"fmt"

	"github.com/cloudflare/circl/kem"
	kemschemes "github.com/cloudflare/circl/kem/schemes"
	"github.com/cloudflare/circl/sign"
	signschemes "github.com/cloudflare/circl/sign/schemes"
)

// MLKEMScheme resolves an ML-KEM parameter set by its standard name
// (ML-KEM-512, ML-KEM-768, ML-KEM-1024).
func MLKEMScheme(name string) (kem.Scheme, error) {
	s := kemschemes.ByName(name)
	if s == nil {
		return nil, fmt.Errorf("%w: unknown kem %q", ErrInvalidData, name)
	}
	return s, nil
}

// MLDSAScheme resolves an ML-DSA parameter set by its standard name
// (ML-DSA-44, ML-DSA-65, ML-DSA-87).
func MLDSAScheme(name string) (sign.Scheme, error) {
	s := signschemes.ByName(name)
	if s == nil {
		return nil, fmt.Errorf("%w: unknown signature scheme %q", ErrInvalidData, name)
	}
	return s, nil
}

// MLKEMGenerate derives a key pair from rng, returning marshalled forms.
func MLKEMGenerate(name string, rng RandomNumberGenerator) (publicKey, privateKey []byte, err error) {
	s, err := MLKEMScheme(name)
	if err != nil {
		return nil, nil, err
	}
	pk, sk := s.DeriveKeyPair(rng.RandomBytes(s.SeedSize()))
	pkb, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	skb, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return pkb, skb, nil
}

// MLKEMPublicKey recovers the marshalled public key embedded in a
// marshalled private key.
func MLKEMPublicKey(name string, privateKey []byte) ([]byte, error) {
	s, err := MLKEMScheme(name)
	if err != nil {
		return nil, err
	}
	sk, err := s.UnmarshalBinaryPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	pkb, err := sk.Public().MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return pkb, nil
}

// MLKEMEncapsulate produces (ciphertext, sharedSecret) for a peer public key.
func MLKEMEncapsulate(name string, publicKey []byte, rng RandomNumberGenerator) (ciphertext, shared []byte, err error) {
	s, err := MLKEMScheme(name)
	if err != nil {
		return nil, nil, err
	}
	pk, err := s.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	ct, ss, err := s.EncapsulateDeterministically(pk, rng.RandomBytes(s.EncapsulationSeedSize()))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return ct, ss, nil
}

// MLKEMDecapsulate recovers the shared secret from a ciphertext.
func MLKEMDecapsulate(name string, privateKey, ciphertext []byte) ([]byte, error) {
	s, err := MLKEMScheme(name)
	if err != nil {
		return nil, err
	}
	sk, err := s.UnmarshalBinaryPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	ss, err := s.Decapsulate(sk, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return ss, nil
}

// MLDSAGenerate derives a signing key pair from rng, returning marshalled
// forms.
func MLDSAGenerate(name string, rng RandomNumberGenerator) (publicKey, privateKey []byte, err error) {
	s, err := MLDSAScheme(name)
	if err != nil {
		return nil, nil, err
	}
	pk, sk := s.DeriveKey(rng.RandomBytes(s.SeedSize()))
	pkb, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	skb, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return pkb, skb, nil
}

// MLDSAPublicKey recovers the marshalled public key embedded in a
// marshalled private key.
func MLDSAPublicKey(name string, privateKey []byte) ([]byte, error) {
	s, err := MLDSAScheme(name)
	if err != nil {
		return nil, err
	}
	sk, err := s.UnmarshalBinaryPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	pk, ok := sk.Public().(sign.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: private key has no public half", ErrInvalidData)
	}
	pkb, err := pk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return pkb, nil
}

// MLDSASign signs message with a marshalled private key.
func MLDSASign(name string, privateKey, message []byte) ([]byte, error) {
	s, err := MLDSAScheme(name)
	if err != nil {
		return nil, err
	}
	sk, err := s.UnmarshalBinaryPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return s.Sign(sk, message, nil), nil
}

// MLDSAVerify checks a signature with a marshalled public key.
func MLDSAVerify(name string, publicKey, message, signature []byte) bool {
	s, err := MLDSAScheme(name)
	if err != nil {
		return false
	}
	pk, err := s.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return false
	}
	return s.Verify(pk, message, signature, nil)
}
