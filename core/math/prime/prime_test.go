package prime

import (
	"math/big"
	"testing"
	"time"

	"github.com/mr-shifu/rsa-messenger/core/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProbablyPrime_Small(t *testing.T) {
	primes := map[int64]bool{2: true, 3: true, 5: true, 7: true, 11: true, 13: true, 97: true, 7919: true}
	for n := int64(-3); n < 100; n++ {
		want := primes[n]
		if !want && n > 1 {
			want = big.NewInt(n).ProbablyPrime(20)
		}
		assert.Equal(t, want, IsProbablyPrime(big.NewInt(n), 10), "n=%d", n)
	}
	assert.True(t, IsProbablyPrime(big.NewInt(7919), 0))
}

func TestIsProbablyPrime_Composites(t *testing.T) {
	// Carmichael numbers and strong pseudoprimes to small bases
	for _, n := range []int64{561, 1105, 1729, 2465, 2821, 6601, 8911, 2047, 3215031751} {
		assert.False(t, IsProbablyPrime(big.NewInt(n), 20), "n=%d", n)
	}

	// product of two 64-bit primes
	p, _ := new(big.Int).SetString("18446744073709551557", 10)
	q, _ := new(big.Int).SetString("18446744073709551533", 10)
	assert.True(t, IsProbablyPrime(p, 10))
	assert.True(t, IsProbablyPrime(q, 10))
	assert.False(t, IsProbablyPrime(new(big.Int).Mul(p, q), 10))
}

func TestIsProbablyPrime_Mersenne(t *testing.T) {
	m127 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	assert.True(t, IsProbablyPrime(m127, 10))
	m128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	assert.False(t, IsProbablyPrime(m128, 10))
}

func TestFind_BitLengths(t *testing.T) {
	pl := pool.NewPool(0)
	for _, bits := range []int{32, 64, 128, 256} {
		primes, err := Find(pl, bits, 1)
		require.NoError(t, err)
		require.Len(t, primes, 1)
		p := primes[0]
		assert.Equal(t, bits, p.BitLen(), "bits=%d", bits)
		assert.True(t, p.ProbablyPrime(20), "bits=%d", bits)
		assert.True(t, IsProbablyPrime(p, 10), "bits=%d", bits)
	}
}

func TestFind_Count(t *testing.T) {
	pl := pool.NewPool(0)
	for _, count := range []int{1, 2, 5, 17} {
		primes, err := Find(pl, 32, count)
		require.NoError(t, err)
		require.Len(t, primes, count)
		for _, p := range primes {
			require.NotNil(t, p)
			assert.True(t, p.ProbablyPrime(20))
		}
	}
}

func TestFind_MoreSlotsThanWorkers(t *testing.T) {
	primes, err := Find(pool.NewPool(2), 24, 40)
	require.NoError(t, err)
	assert.Len(t, primes, 40)
}

func TestFind_InvalidParams(t *testing.T) {
	pl := pool.NewPool(0)
	_, err := Find(pl, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = Find(pl, 32, 0)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestFind_Tiny(t *testing.T) {
	p, err := FindOne(pool.NewPool(0), 2)
	require.NoError(t, err)
	assert.Contains(t, []int64{2, 3}, p.Int64())
}

func TestFind_NoDuplicates(t *testing.T) {
	pl := pool.NewPool(0)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			primes, err := Find(pl, 64, 4)
			if !assert.NoError(t, err) {
				return
			}
			seen := make(map[string]bool)
			for _, p := range primes {
				assert.False(t, seen[p.String()], "duplicate prime %s", p)
				seen[p.String()] = true
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Minute):
		t.Fatal("prime search did not finish in time")
	}
}

func TestCollector_Claim(t *testing.T) {
	c := newCollector(2)
	assert.True(t, c.open())
	assert.Nil(t, c.results())

	assert.True(t, c.claim(big.NewInt(3)))
	assert.True(t, c.claim(big.NewInt(5)))
	assert.False(t, c.open())
	assert.False(t, c.claim(big.NewInt(7)))

	res := c.results()
	require.Len(t, res, 2)
	assert.Equal(t, int64(3), res[0].Int64())
	assert.Equal(t, int64(5), res[1].Int64())
}

func TestCountDivisors(t *testing.T) {
	cases := map[int64]int{0: 0, 1: 1, 2: 2, 6: 4, 9: 3, 12: 6, 36: 9, 97: 2, 945: 16}
	for n, want := range cases {
		assert.Equal(t, want, CountDivisors(big.NewInt(n)), "n=%d", n)
	}
}
