package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sendKeyCmd)
}

// sendKeyCmd represents the sendKey command
var sendKeyCmd = &cobra.Command{
	Use:           "sendKey <email>",
	Short:         "Upload the local public key for email",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, closer, err := openMessenger()
		if err != nil {
			return err
		}
		defer closer()

		if err := m.SendKey(cmd.Context(), args[0]); err != nil {
			return explain(err, args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Key saved")
		return nil
	},
}
