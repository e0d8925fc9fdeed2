package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus together with its math/big value so that
// callers working with *big.Int can use saferith's modular exponentiation.
type Modulus struct {
	// represents modulus n
	*saferith.Modulus
	n *big.Int
}

// ModulusFromBig creates a Modulus from n. n must be positive.
// The value is copied.
func ModulusFromBig(n *big.Int) *Modulus {
	nNat := new(saferith.Nat).SetBig(n, n.BitLen())
	return &Modulus{
		Modulus: saferith.ModulusFromNat(nNat),
		n:       new(big.Int).Set(n),
	}
}

// Big returns a copy of the modulus value.
func (n *Modulus) Big() *big.Int {
	return new(big.Int).Set(n.n)
}

// Exp returns xᵉ (mod n). x may be any non-negative value, it is reduced first.
func (n *Modulus) Exp(x, e *big.Int) *big.Int {
	xNat := new(saferith.Nat).SetBig(x, x.BitLen())
	xNat.Mod(xNat, n.Modulus)
	eNat := new(saferith.Nat).SetBig(e, e.BitLen())
	return new(saferith.Nat).Exp(xNat, eNat, n.Modulus).Big()
}

// Square returns x² (mod n).
func (n *Modulus) Square(x *big.Int) *big.Int {
	xNat := new(saferith.Nat).SetBig(x, x.BitLen())
	xNat.Mod(xNat, n.Modulus)
	return xNat.ModMul(xNat, xNat, n.Modulus).Big()
}
