package rsa

import (
	"errors"
	"math/big"
)

var (
	ErrKeyGeneration   = errors.New("rsa: key generation failed")
	ErrCodec           = errors.New("rsa: malformed key encoding")
	ErrEncryptionRange = errors.New("rsa: message does not fit the modulus")
	ErrDecryptionRange = errors.New("rsa: ciphertext out of range")
	ErrInvalidKey      = errors.New("rsa: invalid key")
)

// Key is an (exponent, modulus) pair. Both values are non-negative.
type Key struct {
	Exponent *big.Int
	Modulus  *big.Int
}

// Equal reports whether k and other hold the same values.
func (k *Key) Equal(other *Key) bool {
	if k == nil || other == nil {
		return k == other
	}
	return intEqual(k.Exponent, other.Exponent) && intEqual(k.Modulus, other.Modulus)
}

func intEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

func (k *Key) validate() error {
	if k == nil || k.Exponent == nil || k.Modulus == nil {
		return ErrInvalidKey
	}
	if k.Exponent.Sign() < 0 || k.Modulus.Cmp(big.NewInt(1)) <= 0 {
		return ErrInvalidKey
	}
	return nil
}

// PublicKey is the (e, n) half of a key pair.
type PublicKey struct {
	Key
}

// PrivateKey is the (d, n) half of a key pair.
type PrivateKey struct {
	Key
}

// NewPublicKey returns the public key (e, n).
func NewPublicKey(e, n *big.Int) *PublicKey {
	return &PublicKey{Key{Exponent: e, Modulus: n}}
}

// NewPrivateKey returns the private key (d, n).
func NewPrivateKey(d, n *big.Int) *PrivateKey {
	return &PrivateKey{Key{Exponent: d, Modulus: n}}
}
