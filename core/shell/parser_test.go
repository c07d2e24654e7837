package shell

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/anmitsu/go-shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleTokenize() {
	fmt.Printf("%q\n", Tokenize(`cd "My Docs"`, true))
	fmt.Printf("%q\n", Tokenize(`echo a b  c`, false))
	fmt.Printf("%q\n", Tokenize(`echo "`, false))

	// Output: ["cd" "My Docs"]
	// ["a" "b" "c"]
	// [""]
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		line        string
		withCommand []string
		withoutCmd  []string
	}{
		{`ls`, []string{"ls"}, []string{}},
		{` ls `, []string{"", "ls"}, []string{"ls"}},
		{`cd "My Docs"`, []string{"cd", "My Docs"}, []string{"My Docs"}},
		{`echo a b  c`, []string{"echo", "a", "b", "c"}, []string{"a", "b", "c"}},
		{`echo "`, []string{"echo", ""}, []string{""}},
		{`echo ""`, []string{"echo", ""}, []string{""}},
		{`echo "" ""`, []string{"echo", "", ""}, []string{"", ""}},
		{`echo "abc`, []string{"echo", "abc"}, []string{"abc"}},
		{`echo "a  b" c`, []string{"echo", "a  b", "c"}, []string{"a  b", "c"}},
		{`echo "a"b`, []string{"echo", "a", "b"}, []string{"a", "b"}},
		{`echo a"b c"`, []string{"echo", `a"b`, `c"`}, []string{`a"b`, `c"`}},
		{`echo   `, []string{"echo"}, []string{}},
		{`set x = "hi there"`, []string{"set", "x", "=", "hi there"}, []string{"x", "=", "hi there"}},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.withCommand, Tokenize(tc.line, true))
			assert.Equal(t, tc.withoutCmd, Tokenize(tc.line, false))
		})
	}
}

// randomLine builds a line with balanced quotes, quoted spans only start
// after a space.
func randomLine(r *rand.Rand, leadingSpace bool) string {
	const letters = "abcxyz"
	word := func(minLen int) string {
		n := minLen + r.Intn(5)
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteByte(letters[r.Intn(len(letters))])
		}
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString("cmd")
	for i, n := 0, r.Intn(6); i < n; i++ {
		sb.WriteString(strings.Repeat(" ", 1+r.Intn(3)))
		switch r.Intn(3) {
		case 0:
			minLen := 1
			if leadingSpace {
				minLen = 0
			}
			sb.WriteString(`"` + word(minLen) + strings.Repeat(" ", r.Intn(3)) + word(1) + `"`)
		default:
			sb.WriteString(word(1))
		}
	}
	return sb.String()
}

func TestTokenizeRejoin(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		line := randomLine(r, true)
		tokens := Tokenize(line, false)

		var quoted []string
		for _, token := range tokens {
			if token == "" || strings.Contains(token, " ") {
				token = `"` + token + `"`
			}
			quoted = append(quoted, token)
		}
		rejoined := strings.TrimSpace("cmd " + strings.Join(quoted, " "))

		assert.Equal(t, tokens, Tokenize(rejoined, false), "line %q rejoined as %q", line, rejoined)
	}
}

func TestTokenizeMatchesShlex(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		line := randomLine(r, false)

		want, err := shlex.Split(line, true)
		require.NoError(t, err)
		assert.Equal(t, want, Tokenize(line, true), "line %q", line)
	}
}
