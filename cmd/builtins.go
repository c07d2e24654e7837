package cmd

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/clic/commands"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the commands available inside the shell
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		for _, c := range commands.DefaultRegistry().Commands() {
			fmt.Fprintf(w, "%s\t%s\n", strings.Join(c.Names, ", "), c.Short)
		}

		for _, name := range commands.BuiltinNames() {
			fmt.Fprintln(w, "shell:"+name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
