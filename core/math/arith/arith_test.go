package arith

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedBytes(t *testing.T) {
	cases := []struct {
		x    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x00, 0x80}},
		{255, []byte{0x00, 0xff}},
		{256, []byte{0x01, 0x00}},
		{-1, []byte{0xff}},
		{-128, []byte{0x80}},
		{-129, []byte{0xff, 0x7f}},
		{-256, []byte{0xff, 0x00}},
		{-32768, []byte{0x80, 0x00}},
	}
	for _, c := range cases {
		got := SignedBytes(big.NewInt(c.x))
		assert.Equal(t, c.want, got, "encoding of %d", c.x)
		assert.Equal(t, 0, FromSignedBytes(got).Cmp(big.NewInt(c.x)), "decoding of %d", c.x)
	}
}

func TestSignedBytes_Random(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 2048)
	for i := 0; i < 200; i++ {
		x, err := rand.Int(rand.Reader, limit)
		require.NoError(t, err)
		if i%2 == 1 {
			x.Neg(x)
		}
		assert.Equal(t, 0, FromSignedBytes(SignedBytes(x)).Cmp(x))
	}
}

func TestFromSignedBytes_Empty(t *testing.T) {
	assert.Equal(t, 0, FromSignedBytes(nil).Sign())
}

func TestModulus_Exp(t *testing.T) {
	n := big.NewInt(3233) // 61 * 53
	m := ModulusFromBig(n)

	assert.Equal(t, int64(2790), m.Exp(big.NewInt(65), big.NewInt(17)).Int64())
	assert.Equal(t, int64(65), m.Exp(big.NewInt(2790), big.NewInt(2753)).Int64())
	assert.Equal(t, int64(1), m.Exp(big.NewInt(65), big.NewInt(0)).Int64())

	// unreduced base
	assert.Equal(t, int64(2790), m.Exp(big.NewInt(65+3233), big.NewInt(17)).Int64())

	assert.Equal(t, int64(65*65%3233), m.Square(big.NewInt(65)).Int64())
	assert.Equal(t, 0, m.Big().Cmp(n))
}

func TestModulus_ExpMatchesBig(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 512)
	for i := 0; i < 20; i++ {
		n, err := rand.Int(rand.Reader, limit)
		require.NoError(t, err)
		n.SetBit(n, 0, 1)
		x, err := rand.Int(rand.Reader, limit)
		require.NoError(t, err)
		e, err := rand.Int(rand.Reader, limit)
		require.NoError(t, err)

		want := new(big.Int).Exp(x, e, n)
		assert.Equal(t, 0, ModulusFromBig(n).Exp(x, e).Cmp(want))
	}
}
