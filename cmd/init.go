package cmd

import (
	"log/slog"

	"github.com/josephlewis42/clic/core/config"
	"github.com/spf13/cobra"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir, err := configDir()
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		_, err = config.Initialize(dir, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
