package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
)

// AllBuiltins holds the commands that act on the shell itself rather than on
// CommandArguments.
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) ReturnValue
}

type ShellBuiltinFunc func(s *Shell, args []string) ReturnValue

func (f ShellBuiltinFunc) Main(s *Shell, args []string) ReturnValue {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinNames returns the sorted names of the shell builtins.
func BuiltinNames() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exit quits the shell
func Exit(s *Shell, args []string) ReturnValue {
	s.Quit = true
	return Success
}

// Help describes a single command.
func Help(s *Shell, args []string) ReturnValue {
	ca := s.Arguments
	if len(args) != 1 {
		return ca.Fail(errors.New("expected one command. If you want to see all available commands, use lscmd"))
	}

	name := strings.ToLower(args[0])
	if _, ok := AllBuiltins[name]; ok {
		ca.Output.Printf("%s is a shell builtin.\n", name)
		return Success
	}

	cmd, ok := s.Registry.Find(name)
	if !ok {
		return ca.Fail(fmt.Errorf("command %s not found", args[0]))
	}

	ca.Output.Printf("usage: %s\n%s\n", cmd.Use, cmd.Short)
	if cmd.Help != "" {
		ca.Output.Printf("\n%s\n", cmd.Help)
	}
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		ca.Output.Printf("\nAliases: %s\n", strings.Join(aliases, ", "))
	}
	return Success
}

// LsCmd lists the registered commands and their aliases.
func LsCmd(s *Shell, args []string) ReturnValue {
	w := s.Arguments.Output.Stdout
	fmt.Fprintln(w, "Available Commands:")
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Command\tAliases\tDescription")
	for _, cmd := range s.Registry.Commands() {
		aliases := strings.Join(cmd.Aliases(), ", ")
		if aliases == "" {
			aliases = "~"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", cmd.Name(), aliases, cmd.Short)
	}
	for _, name := range BuiltinNames() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, "~", "shell builtin")
	}
	tw.Flush()

	return Number(float64(len(s.Registry.Commands())))
}

func History(s *Shell, args []string) ReturnValue {
	cmd := &SimpleCommand{
		Use:   "history [-c]",
		Short: "Display the history list with line numbers.",
	}
	clearHistory := cmd.Flags().Bool('c', "clear the history by deleting all entries")

	return cmd.Run("history", args, s.Arguments, func() ReturnValue {
		if *clearHistory {
			if s.Readline != nil {
				s.Readline.Operation.ResetHistory()
			}
			s.history = nil
			return Success
		}

		for i, line := range s.history {
			s.Arguments.Output.Printf("% 5d  %s\n", i, line)
		}
		return Success
	})
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["help"] = ShellBuiltinFunc(Help)
	AllBuiltins["lscmd"] = ShellBuiltinFunc(LsCmd)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
}
