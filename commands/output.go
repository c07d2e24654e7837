package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorRed       = color.New(color.FgRed)
)

// Output is where commands write text meant for the user.
type Output struct {
	Stdout io.Writer
	Stderr io.Writer
	// Color enables ANSI colors regardless of whether the process' own
	// stdout is a terminal.
	Color bool
}

// NewOutput creates an output writing to the given streams.
func NewOutput(stdout, stderr io.Writer, useColor bool) *Output {
	return &Output{Stdout: stdout, Stderr: stderr, Color: useColor}
}

// Println writes a line to stdout.
func (o *Output) Println(a ...interface{}) {
	fmt.Fprintln(o.Stdout, a...)
}

// Printf writes formatted text to stdout.
func (o *Output) Printf(format string, a ...interface{}) {
	fmt.Fprintf(o.Stdout, format, a...)
}

// Errorf writes a red error line to stderr.
func (o *Output) Errorf(format string, a ...interface{}) {
	fmt.Fprintln(o.Stderr, o.Sprintf(ColorRed, format, a...))
}

// Sprintf formats like fmt.Sprintf, colored if the output allows it.
func (o *Output) Sprintf(c *color.Color, format string, a ...interface{}) string {
	if !o.Color {
		return fmt.Sprintf(format, a...)
	}

	// fatih/color disables itself when the process isn't attached to a
	// terminal, remote sessions still want colors.
	forced := *c
	forced.EnableColor()
	return forced.Sprintf(format, a...)
}
