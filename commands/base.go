// Package commands holds the shell and the commands it dispatches to.
package commands

import (
	"fmt"
	"io"
	"math"

	"github.com/josephlewis42/clic/core/vars"
	"github.com/josephlewis42/clic/core/workdir"
	getopt "github.com/pborman/getopt/v2"
)

// CommandFunc is the entry point of a command.
type CommandFunc func(args []string, ca *CommandArguments) ReturnValue

// CommandArguments holds the state a command works with besides its
// arguments. It's borrowed for the duration of a single invocation.
type CommandArguments struct {
	Variables     *vars.Store
	WorkingFolder *workdir.Folder
	Output        *Output

	invalid error
}

// Fail reports err to the user and returns Failure.
func (ca *CommandArguments) Fail(err error) ReturnValue {
	ca.Output.Errorf("%v", err)
	ca.invalid = err
	return Failure
}

// FailUsage reports the expected form of the command and returns
// InvalidUsage.
func (ca *CommandArguments) FailUsage(use string) ReturnValue {
	ca.Output.Errorf("Command must be of form\t%s", use)
	ca.invalid = fmt.Errorf("usage: %s", use)
	return InvalidUsage
}

// takeInvalid returns and clears the error recorded by the last failure.
func (ca *CommandArguments) takeInvalid() error {
	err := ca.invalid
	ca.invalid = nil
	return err
}

// ReturnValue is the result of a command, either numeric or textual.
type ReturnValue struct {
	text   string
	number float64
	isText bool
}

var (
	Success      = Number(0)
	Failure      = Number(-1)
	InvalidUsage = Number(math.MinInt32)
)

// Number creates a numeric result.
func Number(n float64) ReturnValue {
	return ReturnValue{number: n}
}

// Text creates a textual result.
func Text(s string) ReturnValue {
	return ReturnValue{text: s, isText: true}
}

// IsText reports whether the result is textual.
func (r ReturnValue) IsText() bool {
	return r.isText
}

// String returns the result as text, numbers use the current locale.
func (r ReturnValue) String() string {
	if r.isText {
		return r.text
	}
	return vars.CurrentFormat().FormatFloat(r.number)
}

// Status converts the result to an exit status. Textual results are
// successful.
func (r ReturnValue) Status() int {
	switch {
	case r.isText:
		return 0
	case math.IsNaN(r.number):
		return -1
	case r.number <= math.MinInt32:
		return math.MinInt32
	case r.number >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int(r.number)
	}
}

// AsVariable converts the result into an immutable variable.
func (r ReturnValue) AsVariable(name string) (*vars.Variable, error) {
	return vars.Create(name, r.String(), true)
}

func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses the flags in args, if parsing was successful call the callback.
func (s *SimpleCommand) Run(name string, args []string, ca *CommandArguments, callback func() ReturnValue) ReturnValue {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(append([]string{name}, args...), nil); err != nil {
		ca.Fail(fmt.Errorf("%s: %w", name, err))
		s.PrintHelp(ca.Output.Stdout)
		return InvalidUsage
	}

	if *s.ShowHelp {
		s.PrintHelp(ca.Output.Stdout)
		return Success
	}

	return callback()
}
