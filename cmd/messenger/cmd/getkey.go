package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getKeyCmd)
}

// getKeyCmd represents the getKey command
var getKeyCmd = &cobra.Command{
	Use:           "getKey <email>",
	Short:         "Download and store the public key of email",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, closer, err := openMessenger()
		if err != nil {
			return err
		}
		defer closer()

		key, err := m.GetKey(cmd.Context(), args[0])
		if err != nil {
			return explain(err, args[0])
		}
		log.WithField("fingerprint", key.Fingerprint()).Debugf("stored key of %s", args[0])
		return nil
	},
}
