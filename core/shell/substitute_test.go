package shell

import (
	"testing"

	"github.com/josephlewis42/clic/core/vars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) Lookup {
	return LookupFunc(func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	})
}

func TestSubstitute(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"a":     "1",
		"b":     "2",
		"greet": "hi there",
		"empty": "",
	})

	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"$a", "1"},
		{"$nope", "$nope"},
		{"$greet", "hi there"},
		{"$a $b", "1 2"},
		{"x$a y", "x1 y"},
		{"$a-$b", "$a-$b"},
		{"$", "$"},
		{"$ a", "$ a"},
		{"$$a", "$$a"},
		{"[$empty]", "[$empty]"},
		{"$empty x", " x"},
		{"$nope $a", "$nope 1"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Substitute(tc.in, lookup))
		})
	}
}

func TestResolve(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"x":     "echo hi",
		"greet": "hi there",
		"a":     "1",
		"cmd":   "write",
		"empty": "",
	})

	cases := []struct {
		line        string
		wantCommand string
		wantArgs    []string
	}{
		{`$x there`, "echo", []string{"hi", "there"}},
		{`$greet friend`, "hi", []string{"there", "friend"}},
		{`$cmd $a`, "write", []string{"1"}},
		{`write "$a"`, "write", []string{"1"}},
		{`write "$a b"`, "write", []string{"1 b"}},
		{`write "$greet"`, "write", []string{"hi there"}},
		{`$nope arg`, "$nope", []string{"arg"}},
		{`$empty x`, "", []string{"x"}},
		{`ls`, "ls", []string{}},
		{`$x`, "echo", []string{"hi"}},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			command, args := Resolve(tc.line, lookup)
			assert.Equal(t, tc.wantCommand, command)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestResolveWithStore(t *testing.T) {
	store := vars.NewStore()
	greet, err := vars.Create("greet", "hi there", false)
	require.NoError(t, err)
	require.NoError(t, store.Add(greet))

	n, err := vars.Create("n", "2", false)
	require.NoError(t, err)
	require.NoError(t, store.Add(n))

	op, err := vars.NewOperation("op", n, "$*3")
	require.NoError(t, err)
	require.NoError(t, store.Add(op))

	command, args := Resolve(`$greet friend $op`, store)
	assert.Equal(t, "hi", command)
	assert.Equal(t, []string{"there", "friend", "6"}, args)

	// A dangling operation isn't substituted.
	store.Remove(n)
	_, args = Resolve(`write $op`, store)
	assert.Equal(t, []string{"$op"}, args)
}
