package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fingerprintCmd)
}

// fingerprintCmd represents the fingerprint command
var fingerprintCmd = &cobra.Command{
	Use:           "fingerprint [email]",
	Short:         "Print the fingerprint of the local key or of a stored contact key",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, closer, err := openMessenger()
		if err != nil {
			return err
		}
		defer closer()

		var email string
		if len(args) > 0 {
			email = args[0]
		}
		fp, err := m.Fingerprint(email)
		if err != nil {
			return explain(err, email)
		}
		fmt.Fprintln(cmd.OutOrStdout(), fp)
		return nil
	},
}
