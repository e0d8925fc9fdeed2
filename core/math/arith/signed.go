package arith

import "math/big"

// SignedBytes returns the minimal big-endian two's complement encoding of x.
//
// A non-negative value whose top bit would be set gets a leading 0x00 byte,
// zero is encoded as a single 0x00 byte.
func SignedBytes(x *big.Int) []byte {
	switch x.Sign() {
	case 0:
		return []byte{0}
	case 1:
		b := x.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}

	// -x = 2^(8k) - |x|, with k the smallest byte count such that the
	// result has its top bit set.
	abs := new(big.Int).Neg(x)
	k := (abs.BitLen() + 8) / 8
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*k))
	b := mod.Sub(mod, abs).Bytes()
	for len(b) < k {
		b = append([]byte{0xff}, b...)
	}
	// drop redundant sign bytes, e.g. 0xff 0x80 -> 0x80
	for len(b) > 1 && b[0] == 0xff && b[1]&0x80 != 0 {
		b = b[1:]
	}
	return b
}

// FromSignedBytes decodes a big-endian two's complement byte slice.
// An empty slice decodes to zero.
func FromSignedBytes(b []byte) *big.Int {
	x := new(big.Int).SetBytes(b)
	if len(b) == 0 || b[0]&0x80 == 0 {
		return x
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
	return x.Sub(x, mod)
}
