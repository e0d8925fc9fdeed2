package rsa

import (
	"encoding/base64"
	"math/big"

	"github.com/mr-shifu/rsa-messenger/core/math/arith"
	"github.com/pkg/errors"
)

// Encrypt computes c = mᵉ (mod n) where m is the UTF-8 encoding of plaintext
// read as a non-negative big-endian integer. It returns c's signed byte form in
// base64.
//
// There is no padding and no chunking: m must be smaller than n, otherwise
// ErrEncryptionRange is returned. Leading NUL bytes of plaintext do not survive
// the round trip.
func Encrypt(pub *PublicKey, plaintext string) (string, error) {
	if pub == nil {
		return "", ErrInvalidKey
	}
	if err := pub.validate(); err != nil {
		return "", err
	}

	m := new(big.Int).SetBytes([]byte(plaintext))
	if m.Cmp(pub.Modulus) >= 0 {
		return "", errors.Wrapf(ErrEncryptionRange, "%d byte message, %d bit modulus", len(plaintext), pub.Modulus.BitLen())
	}

	c := arith.ModulusFromBig(pub.Modulus).Exp(m, pub.Exponent)
	return base64.StdEncoding.EncodeToString(arith.SignedBytes(c)), nil
}

// Decrypt computes m = cᵈ (mod n) for a base64 ciphertext produced by Encrypt
// and returns m's bytes as a string.
func Decrypt(priv *PrivateKey, ciphertext string) (string, error) {
	if priv == nil {
		return "", ErrInvalidKey
	}
	if err := priv.validate(); err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Wrap(ErrCodec, err.Error())
	}
	c := arith.FromSignedBytes(data)
	if c.Sign() < 0 || c.Cmp(priv.Modulus) >= 0 {
		return "", ErrDecryptionRange
	}

	m := arith.ModulusFromBig(priv.Modulus).Exp(c, priv.Exponent)
	return string(m.Bytes()), nil
}
