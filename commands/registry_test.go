package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopCommand(args []string, ca *CommandArguments) ReturnValue {
	return Success
}

func TestRegistryRegister(t *testing.T) {
	cases := map[string]struct {
		names   []string
		wantErr error
	}{
		"ok":          {names: []string{"foo", "f"}},
		"upper case":  {names: []string{"Foo"}, wantErr: ErrInvalidCommandName},
		"digits":      {names: []string{"foo2"}, wantErr: ErrInvalidCommandName},
		"empty alias": {names: []string{"foo", ""}, wantErr: ErrInvalidCommandName},
		"taken":       {names: []string{"write"}, wantErr: ErrDuplicateCommand},
		"alias taken": {names: []string{"foo", "e"}, wantErr: ErrDuplicateCommand},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			r := DefaultRegistry()
			err := r.Register(&Command{Names: tc.names, Run: noopCommand})
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)

			// Failed registrations leave no names behind.
			_, ok := r.Find("foo")
			assert.False(t, ok)
		})
	}
}

func TestRegistryRegisterIncomplete(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	assert.Error(t, r.Register(&Command{Run: noopCommand}))
	assert.Error(t, r.Register(&Command{Names: []string{"foo"}}))
	assert.Empty(t, r.Commands())
}

func TestRegistryFind(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{"cng", "mod", "MD", "Cng"} {
		cmd, ok := r.Find(name)
		require.True(t, ok, name)
		assert.Equal(t, "cng", cmd.Name())
		assert.Equal(t, []string{"mod", "md"}, cmd.Aliases())
	}

	_, ok := r.Find("exit")
	assert.False(t, ok, "builtins aren't part of the registry")
}

func TestBuiltinCommands(t *testing.T) {
	r := DefaultRegistry()
	assert.Len(t, r.Commands(), len(BuiltinCommands()))

	for _, cmd := range r.Commands() {
		assert.NotEmpty(t, cmd.Use, cmd.Name())
		assert.NotEmpty(t, cmd.Short, cmd.Name())

		for _, name := range cmd.Names {
			_, isBuiltin := AllBuiltins[name]
			assert.False(t, isBuiltin, "%s shadows a shell builtin", name)
		}
	}
}
