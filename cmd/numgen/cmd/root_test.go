package cmd

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/mr-shifu/rsa-messenger/core/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) ([]string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return strings.Split(strings.TrimSpace(out.String()), "\n"), err
}

func TestNumGen_Prime(t *testing.T) {
	lines, err := run("64", "prime", "3")
	require.NoError(t, err)
	require.Len(t, lines, 5)
	assert.Equal(t, "BitLength: 64 bits", lines[0])
	assert.True(t, strings.HasPrefix(lines[4], "Time to Generate: "))

	for i, line := range lines[1:4] {
		fields := strings.SplitN(line, ": ", 2)
		require.Len(t, fields, 2)
		assert.Equal(t, string(rune('1'+i)), fields[0])
		p, ok := new(big.Int).SetString(fields[1], 10)
		require.True(t, ok)
		assert.Equal(t, 64, p.BitLen())
		assert.True(t, p.ProbablyPrime(20))
	}
}

func TestNumGen_Odd(t *testing.T) {
	lines, err := run("32", "odd", "2")
	require.NoError(t, err)
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[2], "Number of factors: "))
}

func TestNumGen_InvalidArgs(t *testing.T) {
	for _, args := range [][]string{
		{"16", "prime", "1"},
		{"33", "prime", "1"},
		{"x", "prime", "1"},
		{"32", "even", "1"},
		{"32", "prime", "0"},
		{"32", "prime"},
	} {
		_, err := run(args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestOddNumbers(t *testing.T) {
	results, err := oddNumbers(pool.NewPool(0), 32, 5)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.Equal(t, uint(1), r.n.Bit(0))
		assert.Equal(t, 32, r.n.BitLen())
		assert.GreaterOrEqual(t, r.factors, 2)
	}
}
