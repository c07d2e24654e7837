package cmd

import (
	"os"

	"github.com/josephlewis42/clic/commands"
	"github.com/josephlewis42/clic/core"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// runCmd executes lines without reading from the terminal
var runCmd = &cobra.Command{
	Use:   "run LINE...",
	Short: "Run each argument as a line of input, then exit.",
	Long: `Run each argument as a line of input, then exit with the status of the
last command. Variables defined by earlier lines are visible to later ones.`,
	Example: `  clic run 'set r = 2' 'setop area = r "math.pi * $ * $"' 'write $area'`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		return statusError(sh.RunLines(args).Status())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
