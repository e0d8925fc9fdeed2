package prime

import (
	"crypto/rand"
	"math/big"

	"github.com/mr-shifu/rsa-messenger/core/math/arith"
	"github.com/mr-shifu/rsa-messenger/core/math/sample"
)

// DefaultRounds is the number of Miller-Rabin trials used when none is given.
// The false positive probability is at most 4^(-DefaultRounds).
const DefaultRounds = 10

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// IsProbablyPrime runs the Miller-Rabin test on n with `rounds` random witnesses
// drawn from crypto/rand. If rounds <= 0, DefaultRounds is used.
//
// Every call allocates its own registers, so it is safe for concurrent use.
func IsProbablyPrime(n *big.Int, rounds int) bool {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true
	}
	if n.Cmp(two) < 0 || n.Bit(0) == 0 {
		return false
	}

	// n - 1 = d⋅2ˢ with d odd
	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	nMod := arith.ModulusFromBig(n)
	nMinus2 := new(big.Int).Sub(n, two)

	for i := 0; i < rounds; i++ {
		a, err := sample.IntRange(rand.Reader, two, nMinus2)
		if err != nil {
			// without randomness the trial cannot be run
			return false
		}
		if !witnessPasses(nMod, a, d, nMinus1, s) {
			return false
		}
	}
	return true
}

// witnessPasses reports whether a fails to prove n composite.
func witnessPasses(nMod *arith.Modulus, a, d, nMinus1 *big.Int, s int) bool {
	// x = aᵈ (mod n)
	x := nMod.Exp(a, d)
	if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}
	for r := 1; r < s; r++ {
		x = nMod.Square(x)
		if x.Cmp(one) == 0 {
			return false
		}
		if x.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}
