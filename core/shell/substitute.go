package shell

import "strings"

// Lookup resolves a variable name to the text of its current value.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(name string) (string, bool)

// Lookup implements Lookup.
func (f LookupFunc) Lookup(name string) (string, bool) {
	return f(name)
}

var _ Lookup = (LookupFunc)(nil)

// Substitute replaces every $name reference in text with the variable's
// value. A name runs from after the $ to the next space or the end of text.
// References that can't be resolved are kept verbatim.
func Substitute(text string, lookup Lookup) string {
	if strings.IndexByte(text, '$') < 0 {
		return text
	}

	var sb strings.Builder
	rest := text
	for {
		dollar := strings.IndexByte(rest, '$')
		if dollar < 0 {
			sb.WriteString(rest)
			break
		}
		sb.WriteString(rest[:dollar])

		name, tail := rest[dollar+1:], ""
		if end := strings.IndexByte(name, ' '); end >= 0 {
			name, tail = name[:end], name[end:]
		}

		if value, ok := lookup.Lookup(name); ok {
			sb.WriteString(value)
		} else {
			sb.WriteByte('$')
			sb.WriteString(name)
		}
		rest = tail
	}

	return sb.String()
}

// Resolve turns a raw line into the command to run and its arguments.
func Resolve(line string, lookup Lookup) (command string, args []string) {
	word := line
	if end := strings.IndexByte(line, ' '); end >= 0 {
		word = line[:end]
	}

	// The substituted command word may hold several tokens, the extras lead
	// the argument list.
	expanded := Tokenize(Substitute(word, lookup), true)
	command = expanded[0]
	args = append([]string{}, expanded[1:]...)

	for _, raw := range Tokenize(line, false) {
		args = append(args, Substitute(raw, lookup))
	}

	return command, args
}
