package cmd

import (
	"os"

	"github.com/josephlewis42/clic/commands"
	"github.com/josephlewis42/clic/core"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// shellCmd runs an interactive shell on the local terminal
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell (default).",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	isTerminal := isatty.IsTerminal(os.Stdout.Fd())
	out := commands.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), env.config.UseColor(isTerminal))

	sh, err := core.NewSession(env.config, afero.NewOsFs(), env.logger.NewSession(), out)
	if err != nil {
		return err
	}

	sh.PrintBanner(env.config.Banner)
	status, err := sh.RunInteractive(commands.Terminal{
		Stdin:       os.Stdin,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		HistoryFile: env.config.HistoryPath(),
	})
	if err != nil {
		return err
	}
	return statusError(status)
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
