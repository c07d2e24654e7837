package commands

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCommandName = errors.New("command names must be lowercase ASCII letters")
	ErrDuplicateCommand   = errors.New("command already registered")
)

// Command is a named entry point the shell can dispatch to.
type Command struct {
	// Names holds the canonical name followed by aliases.
	Names []string
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string
	// Help holds an optional longer description.
	Help string

	Run CommandFunc
}

// Name returns the canonical name.
func (c *Command) Name() string {
	return c.Names[0]
}

// Aliases returns the names other than the canonical one.
func (c *Command) Aliases() []string {
	return c.Names[1:]
}

// Registry maps names and aliases to commands.
type Registry struct {
	commands []*Command
	byName   map[string]*Command
}

// NewRegistry creates a registry holding cmds.
func NewRegistry(cmds ...*Command) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Command)}
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a command, every one of its names must be unused.
func (r *Registry) Register(cmd *Command) error {
	if len(cmd.Names) == 0 || cmd.Run == nil {
		return fmt.Errorf("register %v: command needs a name and a function", cmd.Names)
	}

	for _, name := range cmd.Names {
		if !validCommandName(name) {
			return fmt.Errorf("register %q: %w", name, ErrInvalidCommandName)
		}
		if _, ok := r.byName[name]; ok {
			return fmt.Errorf("register %q: %w", name, ErrDuplicateCommand)
		}
	}

	for _, name := range cmd.Names {
		r.byName[name] = cmd
	}
	r.commands = append(r.commands, cmd)
	return nil
}

// Find looks a command up by name or alias, ignoring case.
func (r *Registry) Find(name string) (*Command, bool) {
	cmd, ok := r.byName[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns the commands in registration order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.commands...)
}

func validCommandName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 'a' || name[i] > 'z' {
			return false
		}
	}
	return true
}

// BuiltinCommands returns the table of commands every shell starts with.
func BuiltinCommands() []*Command {
	return []*Command{
		{
			Names: []string{"write", "echo", "e"},
			Use:   "write [TEXT]...",
			Short: "Print each argument on its own line.",
			Run:   Write,
		},
		{
			Names: []string{"cd"},
			Use:   "cd [PATH]",
			Short: "Print or change the working folder.",
			Run:   Cd,
		},
		{
			Names: []string{"ls"},
			Use:   "ls [-d] [-h] [PATH]",
			Short: "List the files and folders of a folder.",
			Run:   Ls,
		},
		{
			Names: []string{"set"},
			Use:   "set NAME (=|!) TEXT",
			Short: "Create a variable, ! makes it immutable.",
			Help:  "The kind is picked from TEXT: true or false make a bool, numbers make a double and anything else a string.",
			Run:   Set,
		},
		{
			Names: []string{"get"},
			Use:   "get NAME",
			Short: "Print a variable.",
			Run:   Get,
		},
		{
			Names: []string{"lsvar"},
			Use:   "lsvar [--kind KIND]",
			Short: "List all variables.",
			Run:   LsVar,
		},
		{
			Names: []string{"cng", "mod", "md"},
			Use:   "cng NAME = VALUE",
			Short: "Change the value of a mutable variable.",
			Help:  "VALUE must match the kind of the variable.",
			Run:   Cng,
		},
		{
			Names: []string{"setop"},
			Use:   "setop NAME = DOUBLEVAR EXPRESSION",
			Short: "Create an operation variable computed from a double variable.",
			Help: "Every $ in EXPRESSION stands for the value of DOUBLEVAR, e.g.\n" +
				"\tsetop area = r \"math.pi * $ * $\"\n" +
				"The result is recomputed whenever DOUBLEVAR changes.",
			Run: SetOp,
		},
		{
			Names: []string{"getop"},
			Use:   "getop NAME",
			Short: "Print an operation variable along with its expression.",
			Run:   GetOp,
		},
		{
			Names: []string{"del", "unset"},
			Use:   "del NAME",
			Short: "Remove a variable.",
			Run:   Del,
		},
	}
}

// DefaultRegistry returns a registry holding BuiltinCommands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands()...)
	if err != nil {
		panic(err)
	}
	return r
}
