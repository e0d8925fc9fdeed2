package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sendMsgCmd)
}

// sendMsgCmd represents the sendMsg command
var sendMsgCmd = &cobra.Command{
	Use:           "sendMsg <email> <plaintext>...",
	Short:         "Encrypt plaintext for email and upload it",
	Args:          cobra.MinimumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, closer, err := openMessenger()
		if err != nil {
			return err
		}
		defer closer()

		email, text := args[0], strings.Join(args[1:], " ")
		if err := m.SendMsg(cmd.Context(), email, text); err != nil {
			return explain(err, email)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Message written")
		return nil
	},
}
