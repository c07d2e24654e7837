package commands

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/josephlewis42/clic/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellGolden(t *testing.T) {
	cases := goldenTestSuite{
		"write":   {`write hello "big world"`, `echo`, `e a  b`},
		"unknown": {`frobnicate now`, `$nope`},
		"variables": {
			`set n = 2`,
			`setop triple = n "$*3"`,
			`write $triple`,
			`cng n = 5`,
			`get triple`,
			`getop triple`,
			`set greet ! "hi there"`,
			`$greet friend`,
			`lsvar`,
			`del n`,
			`write $triple`,
			`get triple`,
		},
		"help": {`help setop`, `help cng`, `help exit`, `help`, `help nope`},
		"ls":   {`ls`, `ls docs`, `ls nowhere`},
	}

	cases.Run(t)
}

func TestRunCommandStatus(t *testing.T) {
	sh, _ := newTestShell(t)

	assert.Equal(t, Success, sh.RunCommand("write hi"))
	assert.Equal(t, Failure, sh.RunCommand("nope"))
	assert.Equal(t, Failure, sh.LastResult())

	// Blank lines keep the previous result.
	assert.Equal(t, Failure, sh.RunCommand("   "))

	assert.Equal(t, InvalidUsage, sh.RunCommand("set x"))
	assert.Equal(t, InvalidUsage, sh.LastResult())
}

func TestRunCommandIgnoresCase(t *testing.T) {
	sh, out := newTestShell(t)

	assert.Equal(t, Success, sh.RunCommand("WRITE hi"))
	assert.Equal(t, Success, sh.RunCommand("Echo there"))
	assert.Equal(t, "hi\nthere\n", out.String())
}

func TestRunCommandSubstitutesCommand(t *testing.T) {
	sh, out := newTestShell(t)

	sh.RunCommand(`set say = "write hello"`)
	sh.RunCommand(`$say world`)
	assert.Equal(t, "hello\nworld\n", out.String())
}

func TestRunCommandRecoversPanics(t *testing.T) {
	sh, out := newTestShell(t)
	require.NoError(t, sh.Registry.Register(&Command{
		Names: []string{"boom"},
		Run: func(args []string, ca *CommandArguments) ReturnValue {
			panic("kaboom")
		},
	}))

	assert.Equal(t, Failure, sh.RunCommand("boom"))
	assert.Equal(t, "boom: internal error\n", out.String())

	// The shell keeps working.
	assert.Equal(t, Success, sh.RunCommand("write ok"))
}

func TestRunCommandLogsEvents(t *testing.T) {
	sh, _ := newTestShell(t)
	var appLog bytes.Buffer
	sh.Logger = logger.New(logger.NewJSONLinesHandler(&appLog)).NewSession()

	sh.RunCommand("write hi")
	sh.RunCommand("nope a")
	sh.RunCommand("cd missing")

	var entries []*logger.Entry
	require.NoError(t, logger.ReadJSONLinesLog(&appLog, func(le *logger.Entry) {
		entries = append(entries, le)
	}))
	require.Len(t, entries, 4)

	assert.Equal(t, logger.EventRunCommand, entries[0].Event)
	assert.Equal(t, "write", entries[0].Command)
	assert.Equal(t, []string{"hi"}, entries[0].Args)

	assert.Equal(t, logger.EventUnknownCommand, entries[1].Event)
	assert.Equal(t, "nope", entries[1].Command)

	assert.Equal(t, logger.EventInvalidInvocation, entries[2].Event)
	assert.Equal(t, "cd /home/clic/missing: file does not exist", entries[2].Error)

	assert.Equal(t, logger.EventRunCommand, entries[3].Event)
	assert.Equal(t, -1, entries[3].Status)
}

func TestExit(t *testing.T) {
	sh, out := newTestShell(t)

	result := sh.RunLines([]string{"write before", "exit", "write after"})
	assert.Equal(t, Success, result)
	assert.True(t, sh.Quit)
	assert.Equal(t, "before\n", out.String())
}

func TestHistory(t *testing.T) {
	sh, out := newTestShell(t)
	sh.history = []string{"write a", "lsvar"}

	sh.RunCommand("history")
	assert.Equal(t, "    0  write a\n    1  lsvar\n", out.String())

	sh.RunCommand("history -c")
	assert.Empty(t, sh.history)
}

func TestLsCmd(t *testing.T) {
	sh, out := newTestShell(t)

	result := sh.RunCommand("lscmd")
	assert.Equal(t, Number(float64(len(BuiltinCommands()))), result)

	listing := out.String()
	assert.True(t, strings.HasPrefix(listing, "Available Commands:\n\n"))
	for _, line := range []string{"write ", "echo, e", "cng ", "mod, md", "exit ", "shell builtin"} {
		assert.Contains(t, listing, line)
	}
}

func TestPrompt(t *testing.T) {
	sh, _ := newTestShell(t)
	assert.Equal(t, "/home/clic; ", sh.prompt())

	sh.Prompt = `\033[01;34m\w\033[00m> `
	assert.Equal(t, "\x1b[01;34m/home/clic\x1b[00m> ", sh.prompt())
}

func TestPrintBanner(t *testing.T) {
	sh, out := newTestShell(t)

	sh.PrintBanner("")
	assert.Empty(t, out.String())

	sh.PrintBanner("CLIC\n")
	assert.Equal(t, "CLIC\n\n", out.String())
}

func TestRunInteractive(t *testing.T) {
	sh, out := newTestShell(t)

	status, err := sh.RunInteractive(Terminal{
		Stdin:      io.NopCloser(strings.NewReader("set x = 1\nwrite $x\nexit\nwrite unreachable\n")),
		Stdout:     out,
		Stderr:     out,
		IsTerminal: func() bool { return false },
		Width:      func() int { return 80 },
	})
	require.NoError(t, err)

	assert.Equal(t, 0, status)
	assert.True(t, sh.Quit)
	assert.Equal(t, []string{"set x = 1", "write $x", "exit"}, sh.history)
	assert.Contains(t, out.String(), "1\n")
	assert.NotContains(t, out.String(), "unreachable")
}

func TestFailRecordsInvalidInvocation(t *testing.T) {
	sh, out := newTestShell(t)

	assert.Equal(t, Failure, sh.Arguments.Fail(errors.New("broken")))
	assert.Equal(t, "broken\n", out.String())
	assert.EqualError(t, sh.Arguments.takeInvalid(), "broken")
	assert.NoError(t, sh.Arguments.takeInvalid())
}
