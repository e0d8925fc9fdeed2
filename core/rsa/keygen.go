package rsa

import (
	"crypto/rand"
	"math/big"

	"github.com/mr-shifu/rsa-messenger/core/math/prime"
	"github.com/mr-shifu/rsa-messenger/core/math/sample"
	"github.com/mr-shifu/rsa-messenger/core/pool"
	"github.com/pkg/errors"
)

const (
	// ExponentBits is the bit length of the public exponent, itself a prime.
	ExponentBits = 16

	// the two prime sizes differ from totalBits/2 by jitterMin..jitterMax bits
	jitterMin = 20
	jitterMax = 29
)

// KeyPair is the result of one key generation run. P and Q are kept for
// inspection only and are never encoded.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
	P, Q    *big.Int
}

// GenerateKeyPair creates a textbook RSA key pair whose modulus has about
// totalBits bits.
func GenerateKeyPair(pl *pool.Pool, totalBits int) (*PublicKey, *PrivateKey, error) {
	kp, err := GenerateKey(pl, totalBits)
	if err != nil {
		return nil, nil, err
	}
	return kp.Public, kp.Private, nil
}

// GenerateKey creates a key pair and also returns its primes.
//
// The primes get deliberately unequal sizes: pBits = totalBits/2 ± jitter and
// qBits = totalBits - pBits, with jitter drawn from [20, 29].
func GenerateKey(pl *pool.Pool, totalBits int) (*KeyPair, error) {
	pBits, qBits, err := primeSizes(totalBits)
	if err != nil {
		return nil, err
	}

	p, err := prime.FindOne(pl, pBits)
	if err != nil {
		return nil, errors.WithMessage(err, "rsa: failed to find p")
	}
	q, err := prime.FindOne(pl, qBits)
	if err != nil {
		return nil, errors.WithMessage(err, "rsa: failed to find q")
	}

	n := new(big.Int).Mul(p, q)
	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	lambda := new(big.Int).Mul(pMinus1, qMinus1)

	e, err := prime.FindOne(pl, ExponentBits)
	if err != nil {
		return nil, errors.WithMessage(err, "rsa: failed to find e")
	}
	d, err := ModInverse(e, lambda)
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		Public:  NewPublicKey(e, n),
		Private: NewPrivateKey(d, new(big.Int).Set(n)),
		P:       p,
		Q:       q,
	}, nil
}

func primeSizes(totalBits int) (int, int, error) {
	jitter, err := sample.IntN(rand.Reader, jitterMax-jitterMin+1)
	if err != nil {
		return 0, 0, err
	}
	jitter += jitterMin
	sign, err := sample.IntN(rand.Reader, 2)
	if err != nil {
		return 0, 0, err
	}
	if sign == 1 {
		jitter = -jitter
	}

	pBits := totalBits/2 + jitter
	qBits := totalBits - pBits
	if pBits < 2 || qBits < 2 {
		return 0, 0, errors.Wrapf(ErrKeyGeneration, "key size %d is too small", totalBits)
	}
	return pBits, qBits, nil
}

var one = big.NewInt(1)

// ModInverse returns d in [0, m) with a⋅d ≡ 1 (mod m), computed with the
// extended Euclidean algorithm. It returns ErrKeyGeneration if gcd(a, m) ≠ 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if a.Sign() <= 0 || m.Sign() <= 0 {
		return nil, errors.Wrap(ErrKeyGeneration, "modular inverse needs positive operands")
	}

	// i and e walk the remainder sequence, v and d the Bézout coefficients of a
	i := new(big.Int).Set(m)
	e := new(big.Int).Set(a)
	v := new(big.Int)
	d := big.NewInt(1)
	z, r := new(big.Int), new(big.Int)
	for e.Sign() > 0 {
		z.QuoRem(i, e, r)
		i, e = e, new(big.Int).Set(r)
		next := new(big.Int).Mul(z, d)
		v, d = d, next.Sub(v, next)
	}
	if i.Cmp(one) != 0 {
		return nil, errors.Wrapf(ErrKeyGeneration, "%s has no inverse modulo %s", a, m)
	}

	v.Mod(v, m)
	return v, nil
}
