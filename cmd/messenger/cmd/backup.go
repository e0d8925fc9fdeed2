package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:           "backup <file>",
	Short:         "Write all local keys and contacts to a backup file",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, closer, err := openMessenger()
		if err != nil {
			return err
		}
		defer closer()

		f, err := os.OpenFile(args[0], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return err
		}
		if err := m.Backup(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Infof("Created backup %s", args[0])
		return nil
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:           "restore <file>",
	Short:         "Import the keys and contacts of a backup file",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, closer, err := openMessenger()
		if err != nil {
			return err
		}
		defer closer()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if err := m.Restore(f); err != nil {
			return err
		}
		log.WithField("contacts", len(m.Contacts())).Infof("Restored backup %s", args[0])
		return nil
	},
}
