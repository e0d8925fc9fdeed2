package prime

import "math/big"

// CountDivisors returns the number of positive divisors of n by trial division
// up to √n. It returns 0 for n < 1.
//
// The running time grows with √n, so it is only practical for small values.
func CountDivisors(n *big.Int) int {
	if n.Sign() < 1 {
		return 0
	}

	count := 0
	f := big.NewInt(1)
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(n, f, r)
		switch q.Cmp(f) {
		case -1:
			return count
		case 0:
			if r.Sign() == 0 {
				count++
			}
			return count
		}
		if r.Sign() == 0 {
			count += 2
		}
		f.Add(f, one)
	}
}
