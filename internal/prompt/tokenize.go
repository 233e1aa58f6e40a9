// Package prompt implements the modal single-line editor, its
// shell-style argument tokenizer, and the composable Completer family
// that backs tab completion.
package prompt

import "unicode/utf8"

type tokState int

const (
	stWord tokState = iota
	stBlank
	stSingleQuote
	stDoubleQuote
)

// Split tokenizes line the way a shell-ish prompt would: whitespace
// separates words, single quotes preserve their content literally,
// double quotes honor a small escape set, and backslash in bare Word
// state escapes the next rune. point is a rune offset into line used to
// report which resulting argument (if any) contains it, for completion.
// The final token is emitted even with no trailing whitespace.
func Split(line []rune, point int) (args []string, argAt int) {
	var cur []rune
	inArg := 0
	assigned := false

	state := stBlank
	if len(line) == 0 || !isSpace(line[0]) {
		state = stWord
	}

	for k := 0; k < len(line); k++ {
		c := line[k]
		switch state {
		case stWord, stBlank:
			switch {
			case c == '\'':
				state = stSingleQuote
				continue
			case c == '"':
				state = stDoubleQuote
				continue
			}
		}

		switch state {
		case stWord:
			switch {
			case c == '\\':
				if k+1 < len(line) {
					k++
					cur = append(cur, line[k])
				} else {
					k = len(line)
				}
			case isSpace(c):
				if !assigned && point <= k {
					inArg = len(args)
					assigned = true
				}
				args = append(args, string(cur))
				cur = nil
				state = stBlank
			default:
				cur = append(cur, c)
			}

		case stBlank:
			if !isSpace(c) {
				cur = append(cur, c)
				state = stWord
			}

		case stSingleQuote:
			if c == '\'' {
				state = stWord
			} else {
				cur = append(cur, c)
			}

		case stDoubleQuote:
			switch {
			case c == '"':
				state = stWord
			case c == '\\':
				if k+1 >= len(line) {
					k = len(line)
					break
				}
				k++
				switch line[k] {
				case 't':
					cur = append(cur, '\t')
				case 'n':
					cur = append(cur, '\n')
				case 'e':
					cur = append(cur, '\x1b')
				default:
					cur = append(cur, line[k])
				}
			default:
				cur = append(cur, c)
			}
		}
	}

	if state != stBlank {
		args = append(args, string(cur))
	}
	// a cursor past every separator sits in the final argument
	if !assigned && len(args) > 0 {
		inArg = len(args) - 1
	}
	return args, inArg
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// SplitBytes decodes b as UTF-8 and delegates to Split, for callers that
// only have the raw line buffer.
func SplitBytes(b []byte, bytePoint int) (args []string, argAt int) {
	runes := make([]rune, 0, len(b))
	point := 0
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if i < bytePoint {
			point = len(runes) + 1
		}
		runes = append(runes, r)
		i += size
	}
	return Split(runes, point)
}
