// Package shell turns a raw input line into a command word and arguments.
//
// A line is processed in three steps:
//
// 1. The command word (everything before the first space) has its variable
// references substituted. Because a value may contain spaces, the result is
// tokenized again: the first token becomes the command and the rest become
// leading arguments.
//
// 2. The remainder of the original line is broken into tokens: runs of spaces
// separate tokens and double quotes group text, spaces included, into a single
// token. An unterminated quote runs to the end of the line.
//
// 3. Each token has its variable references substituted independently.
package shell

import "strings"

// Tokenize splits line into tokens, skipping the command word unless
// includeCommand is set. It never fails.
func Tokenize(line string, includeCommand bool) []string {
	commandEnd := strings.IndexByte(line, ' ')
	if commandEnd < 0 {
		if includeCommand {
			return []string{strings.TrimSpace(line)}
		}
		return []string{}
	}

	var tokens []string
	if includeCommand {
		tokens = append(tokens, strings.TrimSpace(line[:commandEnd]))
	}

	rest := line[commandEnd+1:]
	for len(rest) > 0 {
		var token string
		switch rest[0] {
		case ' ':
			rest = rest[1:]
			continue
		case '"':
			token, rest = splitAt(rest[1:], '"')
		default:
			token, rest = splitAt(rest, ' ')
		}
		tokens = append(tokens, token)
	}

	if tokens == nil {
		return []string{}
	}
	return tokens
}

// splitAt returns the text before the first sep and the text after it. If sep
// is missing the whole string is the token.
func splitAt(s string, sep byte) (token, rest string) {
	end := strings.IndexByte(s, sep)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end+1:]
}
