package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/clic/core/logger"
	"github.com/josephlewis42/clic/core/shell"
)

const DefaultPrompt = `\w; `

// Terminal describes the terminal an interactive shell talks to.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal reports whether line editing escapes can be used.
	IsTerminal func() bool
	// Width reports the current width of the terminal.
	Width func() int
	// HistoryFile is the path of the persistent history, empty disables it.
	HistoryFile string
}

type Shell struct {
	Registry  *Registry
	Arguments *CommandArguments
	Logger    *logger.SessionLogger
	Readline  *readline.Instance

	// Prompt is shown before every line, \w is replaced with the working
	// folder.
	Prompt string

	lastResult ReturnValue
	history    []string

	// Set to true to quit the shell
	Quit bool
}

// NewShell creates a shell dispatching to the commands in registry.
func NewShell(registry *Registry, ca *CommandArguments, log *logger.SessionLogger) *Shell {
	return &Shell{
		Registry:   registry,
		Arguments:  ca,
		Logger:     log,
		Prompt:     DefaultPrompt,
		lastResult: Success,
	}
}

// LastResult returns the value produced by the last command.
func (s *Shell) LastResult() ReturnValue {
	return s.lastResult
}

// RunCommand resolves variables in the line and dispatches it.
func (s *Shell) RunCommand(line string) (result ReturnValue) {
	if strings.TrimSpace(line) == "" {
		return s.lastResult
	}

	command, args := shell.Resolve(line, s.Arguments.Variables)
	s.Logger.Debug("resolved line", "line", line, "command", command, "args", args)

	name := strings.ToLower(command)
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Panic(name, r)
			s.Arguments.Output.Errorf("%s: internal error", command)
			result = Failure
		}
		s.lastResult = result
	}()

	if builtin, ok := AllBuiltins[name]; ok {
		result = builtin.Main(s, args)
		s.logInvocation(name, args, result)
		return result
	}

	if cmd, ok := s.Registry.Find(name); ok {
		result = cmd.Run(args, s.Arguments)
		s.logInvocation(name, args, result)
		return result
	}

	s.Logger.UnknownCommand(command, args)
	s.Arguments.Output.Errorf("Command %q not found", command)
	return Failure
}

func (s *Shell) logInvocation(name string, args []string, result ReturnValue) {
	if err := s.Arguments.takeInvalid(); err != nil {
		s.Logger.InvalidInvocation(name, args, err)
	}
	s.Logger.RunCommand(name, args, result.Status())
}

// RunLines runs each line in order, stopping early if the shell quits.
func (s *Shell) RunLines(lines []string) ReturnValue {
	for _, line := range lines {
		if s.Quit {
			break
		}
		s.RunCommand(line)
	}
	return s.lastResult
}

func (s *Shell) prompt() string {
	return unescape(strings.ReplaceAll(s.Prompt, `\w`, s.Arguments.WorkingFolder.Path()))
}

// RunInteractive reads and runs lines from the terminal until the input is
// closed or the shell quits. It returns the exit status of the shell.
func (s *Shell) RunInteractive(term Terminal) (int, error) {
	cfg := &readline.Config{
		Stdin:          readline.NewCancelableStdin(term.Stdin),
		Stdout:         term.Stdout,
		Stderr:         term.Stderr,
		FuncGetWidth:   term.Width,
		FuncIsTerminal: term.IsTerminal,
		HistoryFile:    term.HistoryFile,
	}

	if err := cfg.Init(); err != nil {
		return 1, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return 1, err
	}
	defer rl.Close()
	s.Readline = rl

	for !s.Quit {
		s.Readline.SetPrompt(s.prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return s.lastResult.Status(), nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			s.Logger.Debug("readline failed", "error", err)
			continue

		case len(line) == 0:
			continue // empty line

		default:
			s.history = append(s.history, line)
			s.RunCommand(line)
		}
	}

	return s.lastResult.Status(), nil
}

// PrintBanner writes the banner followed by an empty line.
func (s *Shell) PrintBanner(banner string) {
	if banner == "" {
		return
	}
	fmt.Fprintln(s.Arguments.Output.Stdout, strings.TrimRight(banner, "\n"))
	fmt.Fprintln(s.Arguments.Output.Stdout)
}
