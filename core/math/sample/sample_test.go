package sample

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBits(t *testing.T) {
	for _, bits := range []int{1, 2, 7, 8, 9, 16, 31, 64, 257} {
		for i := 0; i < 50; i++ {
			x, err := Bits(rand.Reader, bits)
			require.NoError(t, err)
			assert.Equal(t, bits, x.BitLen(), "bits=%d", bits)
		}
	}

	_, err := Bits(rand.Reader, 0)
	assert.Error(t, err)
}

func TestOdd(t *testing.T) {
	for i := 0; i < 50; i++ {
		x, err := Odd(nil, 32)
		require.NoError(t, err)
		assert.Equal(t, uint(1), x.Bit(0))
		assert.Equal(t, 32, x.BitLen())
	}
}

func TestIntRange(t *testing.T) {
	lo, hi := big.NewInt(2), big.NewInt(3)
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		x, err := IntRange(rand.Reader, lo, hi)
		require.NoError(t, err)
		assert.True(t, x.Cmp(lo) >= 0 && x.Cmp(hi) <= 0)
		seen[x.Int64()] = true
	}
	assert.Len(t, seen, 2)

	hi = new(big.Int).Lsh(big.NewInt(1), 200)
	for i := 0; i < 100; i++ {
		x, err := IntRange(rand.Reader, lo, hi)
		require.NoError(t, err)
		assert.True(t, x.Cmp(lo) >= 0 && x.Cmp(hi) <= 0)
	}

	_, err := IntRange(rand.Reader, big.NewInt(5), big.NewInt(4))
	assert.Error(t, err)
}

func TestIntN(t *testing.T) {
	for i := 0; i < 100; i++ {
		x, err := IntN(nil, 10)
		require.NoError(t, err)
		assert.True(t, x >= 0 && x < 10)
	}
	_, err := IntN(nil, 0)
	assert.Error(t, err)
}

func TestShortRead(t *testing.T) {
	_, err := Bits(bytes.NewReader([]byte{1}), 64)
	assert.Error(t, err)
}
