package cmd

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/mr-shifu/rsa-messenger/core/math/prime"
	"github.com/mr-shifu/rsa-messenger/core/math/sample"
	"github.com/mr-shifu/rsa-messenger/core/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Verbose boolean flag for verbose logging
	Verbose bool
)

// minBits is the smallest accepted bit length.
const minBits = 32

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "numgen <bits> <odd|prime> <count>",
	Short: "Generate random primes, or odd numbers with their divisor count",
	Long: `Generate count random numbers of the given bit length.

bits:   bits of the numbers to generate (at least 32, a multiple of 8)
option: 'prime' for probable primes, 'odd' for odd numbers and their number of divisors
count:  count of numbers to generate`,
	Args:          cobra.ExactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Verbose {
			log.SetLevel(log.DebugLevel)
		}

		bits, err := strconv.Atoi(args[0])
		if err != nil || bits < minBits || bits%8 != 0 {
			return fmt.Errorf("bits must be a multiple of 8 and at least %d, got %q", minBits, args[0])
		}
		count, err := strconv.Atoi(args[2])
		if err != nil || count < 1 {
			return fmt.Errorf("count must be a positive integer, got %q", args[2])
		}

		pl := pool.NewPool(viper.GetInt("workers"))
		log.WithFields(log.Fields{"bits": bits, "count": count, "workers": pl.Workers()}).Debug("generating")

		start := time.Now()
		switch args[1] {
		case "prime":
			primes, err := prime.Find(pl, bits, count)
			if err != nil {
				return err
			}
			printPrimes(cmd.OutOrStdout(), bits, primes, time.Since(start))
		case "odd":
			results, err := oddNumbers(pl, bits, count)
			if err != nil {
				return err
			}
			printOdd(cmd.OutOrStdout(), bits, results, time.Since(start))
		default:
			return fmt.Errorf("option must be 'odd' or 'prime', got %q", args[1])
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	log.SetHandler(clihander.Default)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
	rootCmd.Flags().IntP("workers", "w", 0, "number of workers (default 2x cpus)")
	viper.BindPFlag("workers", rootCmd.Flags().Lookup("workers"))
	viper.SetEnvPrefix("rsamsg")
	viper.BindEnv("workers", "RSAMSG_KEYGEN_WORKERS")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

type oddResult struct {
	n       *big.Int
	factors int
}

// oddNumbers samples count odd numbers of exactly bits bits and counts the
// divisors of each, in parallel.
func oddNumbers(pl *pool.Pool, bits, count int) ([]oddResult, error) {
	out := pl.Parallelize(count, func(int) interface{} {
		n, err := sample.Odd(rand.Reader, bits)
		if err != nil {
			return err
		}
		return oddResult{n: n, factors: prime.CountDivisors(n)}
	})

	results := make([]oddResult, 0, count)
	for _, r := range out {
		switch t := r.(type) {
		case error:
			return nil, t
		case oddResult:
			results = append(results, t)
		}
	}
	return results, nil
}

func printPrimes(w io.Writer, bits int, primes []*big.Int, elapsed time.Duration) {
	fmt.Fprintf(w, "BitLength: %d bits\n", bits)
	for i, p := range primes {
		fmt.Fprintf(w, "%d: %s\n", i+1, p)
	}
	fmt.Fprintf(w, "Time to Generate: %s\n", elapsed)
}

func printOdd(w io.Writer, bits int, results []oddResult, elapsed time.Duration) {
	fmt.Fprintf(w, "BitLength: %d bits\n", bits)
	for i, r := range results {
		fmt.Fprintf(w, "%d: %s\n", i+1, r.n)
		fmt.Fprintf(w, "Number of factors: %d\n", r.factors)
	}
	fmt.Fprintf(w, "Time to Generate: %s\n", elapsed)
}
