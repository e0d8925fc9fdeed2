package sample

import (
	cryptorand "crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// Bits returns a uniformly random value of exactly `bits` bits, i.e. with the
// most significant bit set.
func Bits(rand io.Reader, bits int) (*big.Int, error) {
	if bits < 1 {
		return nil, errors.New("sample: bit length must be positive")
	}
	if rand == nil {
		rand = cryptorand.Reader
	}

	buf, err := read(rand, (bits+7)/8)
	if err != nil {
		return nil, err
	}

	// clear the bits above the requested length and set the top one
	b := uint(bits % 8)
	if b == 0 {
		b = 8
	}
	buf[0] &= uint8(int(1<<b) - 1)
	buf[0] |= 1 << (b - 1)

	return new(big.Int).SetBytes(buf), nil
}

// Odd returns a uniformly random odd value of exactly `bits` bits.
func Odd(rand io.Reader, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, errors.New("sample: odd values need at least 2 bits")
	}
	x, err := Bits(rand, bits)
	if err != nil {
		return nil, err
	}
	return x.SetBit(x, 0, 1), nil
}

// IntRange returns a uniformly random value in [lo, hi].
//
// Values with the byte length of hi are drawn until one falls in range. Bits
// above hi's bit length are masked off, which keeps the rejection rate below
// one half without changing the distribution.
func IntRange(rand io.Reader, lo, hi *big.Int) (*big.Int, error) {
	if lo.Sign() < 0 || lo.Cmp(hi) > 0 {
		return nil, errors.New("sample: invalid range")
	}
	if rand == nil {
		rand = cryptorand.Reader
	}

	bits := hi.BitLen()
	if bits == 0 {
		return new(big.Int), nil
	}
	b := uint(bits % 8)
	if b == 0 {
		b = 8
	}

	x := new(big.Int)
	for {
		buf, err := read(rand, (bits+7)/8)
		if err != nil {
			return nil, err
		}
		buf[0] &= uint8(int(1<<b) - 1)
		x.SetBytes(buf)
		if x.Cmp(lo) >= 0 && x.Cmp(hi) <= 0 {
			return x, nil
		}
	}
}

// IntN returns a uniformly random int in [0, n).
func IntN(rand io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("sample: n must be positive")
	}
	if rand == nil {
		rand = cryptorand.Reader
	}
	x, err := cryptorand.Int(rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.WithMessage(err, "sample: failed to read random int")
	}
	return int(x.Int64()), nil
}

func read(rand io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, errors.WithMessage(err, "sample: failed to read random bytes")
	}
	return buf, nil
}
