package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getMsgCmd)
}

// getMsgCmd represents the getMsg command
var getMsgCmd = &cobra.Command{
	Use:           "getMsg <email>",
	Short:         "Download and decrypt the message stored for email",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, closer, err := openMessenger()
		if err != nil {
			return err
		}
		defer closer()

		text, err := m.GetMsg(cmd.Context(), args[0])
		if err != nil {
			return explain(err, args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
