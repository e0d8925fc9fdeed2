package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keyGenCmd)
}

// keyGenCmd represents the keyGen command
var keyGenCmd = &cobra.Command{
	Use:           "keyGen <keysize>",
	Short:         "Generate a new key pair and store it locally",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		bits, err := strconv.Atoi(args[0])
		if err != nil || bits <= 0 {
			return fmt.Errorf("invalid keysize %q", args[0])
		}

		m, closer, err := openMessenger()
		if err != nil {
			return err
		}
		defer closer()

		s := spinner.New(spinner.CharSets[38], 100*time.Millisecond)
		s.Prefix = "   • Generating keys... "
		s.Writer = cmd.ErrOrStderr()
		s.Start()
		key, err := m.KeyGen(bits)
		s.Stop()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), key.Fingerprint())
		return nil
	},
}
