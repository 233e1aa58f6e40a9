package prompt

import (
	"fmt"
	"io"
)

// Outcome is what a finished Editor session produced.
type Outcome struct {
	Line      string
	Completed bool // false if the user aborted (Esc-Esc or Ctrl-C)
}

// Editor is a modal, single-line, byte-driven editor: feed it input
// bytes one at a time via Feed, and it writes the redraw deltas to out
// as it goes: echo and ANSI-nudge the cursor rather than redrawing the
// whole line every key.
type Editor struct {
	ps        string
	out       io.Writer
	complete  Completer
	at        int // rune offset
	line      []rune
	pend      []byte
	done      bool
	outcome   Outcome
	lastHints []string
}

// NewEditor starts an editor session, writing the prompt string ps to
// out immediately.
func NewEditor(ps string, out io.Writer, complete Completer) *Editor {
	fmt.Fprint(out, ps)
	if complete == nil {
		complete = None{}
	}
	return &Editor{ps: ps, out: out, complete: complete}
}

// Done reports whether Feed has produced a final Outcome.
func (e *Editor) Done() bool { return e.done }

// Outcome returns the final result; valid only once Done is true.
func (e *Editor) Outcome() Outcome { return e.outcome }

// LastHints returns the completion candidates from the most recent Tab,
// if any; the host is expected to render these itself (e.g. on a
// status line) since the editor has no concept of a second viewport.
func (e *Editor) LastHints() []string { return e.lastHints }

// Feed processes one input byte. It returns true while the session is
// still live; once it returns false, Done is true and Outcome holds the
// result.
func (e *Editor) Feed(b byte) bool {
	if e.done {
		return false
	}
	e.pend = append(e.pend, b)
	keep := false

	switch {
	case bytesEqual(e.pend, []byte{0x1b, 0x1b}):
		e.finish(Outcome{Completed: false})
		return false

	case bytesEqual(e.pend, []byte{0x01}) || bytesEqual(e.pend, []byte("\x1b[H")):
		if e.at > 0 {
			fmt.Fprintf(e.out, "\x1b[%dD", e.at)
			e.at = 0
		}

	case bytesEqual(e.pend, []byte{0x02}) || bytesEqual(e.pend, []byte("\x1b[D")):
		if e.at > 0 {
			fmt.Fprint(e.out, "\x08")
			e.at--
		}

	case bytesEqual(e.pend, []byte{0x03}):
		e.finish(Outcome{Completed: false})
		return false

	case bytesEqual(e.pend, []byte{0x04}) || bytesEqual(e.pend, []byte("\x1b[3~")):
		if e.at < len(e.line) {
			e.line = append(e.line[:e.at], e.line[e.at+1:]...)
			fmt.Fprint(e.out, "\x1b[P")
		}

	case bytesEqual(e.pend, []byte{0x05}) || bytesEqual(e.pend, []byte("\x1b[F")):
		if e.at < len(e.line) {
			fmt.Fprintf(e.out, "\x1b[%dC", len(e.line)-e.at)
			e.at = len(e.line)
		}

	case bytesEqual(e.pend, []byte{0x06}) || bytesEqual(e.pend, []byte("\x1b[C")):
		if e.at < len(e.line) {
			fmt.Fprintf(e.out, "%c", e.line[e.at])
			e.at++
		}

	case len(e.pend) > 0 && e.pend[len(e.pend)-1] == 0x07:
		// bell anywhere in the pending sequence aborts just that sequence

	case bytesEqual(e.pend, []byte{0x08}) || bytesEqual(e.pend, []byte{127}):
		if e.at > 0 {
			e.at--
			e.line = append(e.line[:e.at], e.line[e.at+1:]...)
			fmt.Fprint(e.out, "\x08\x1b[P")
		}

	case bytesEqual(e.pend, []byte{0x09}):
		args, argAt := Split(e.line, e.at)
		before, _ := Split(e.line[:e.at], e.at)
		charAt := 0
		if len(before) == argAt+1 {
			charAt = len([]rune(before[argAt]))
		}
		e.lastHints = e.complete.Complete(args, argAt, charAt)

	case bytesEqual(e.pend, []byte{0x0a}) || bytesEqual(e.pend, []byte{0x0d}):
		e.finish(Outcome{Line: string(e.line), Completed: true})
		return false

	case bytesEqual(e.pend, []byte{0x0b}):
		fmt.Fprintf(e.out, "\x1b[%dP", len(e.line)-e.at)
		e.line = e.line[:e.at]

	case bytesEqual(e.pend, []byte{0x0c}):
		fmt.Fprintf(e.out, "\x1b[G\x1b[K%s", e.ps)
		for _, c := range e.line {
			fmt.Fprintf(e.out, "%c", c)
		}
		fmt.Fprintf(e.out, "\x1b[%dD", len(e.line)-e.at)

	case bytesEqual(e.pend, []byte{0x15}):
		fmt.Fprintf(e.out, "\x1b[%dD\x1b[%dP", e.at, e.at)
		e.line = append([]rune(nil), e.line[e.at:]...)
		e.at = 0

	case isEscPrefix(e.pend):
		keep = true // still a valid prefix of a longer escape sequence

	case len(e.pend) == 1 && e.pend[0] >= ' ':
		r, size := decodeUTF8(e.pend)
		if size == 0 {
			keep = true // need more continuation bytes
		} else {
			e.insert(r)
		}

	case len(e.pend) > 1 && e.pend[0] != 0x1b:
		r, size := decodeUTF8(e.pend)
		if size == 0 {
			keep = true
		} else {
			e.insert(r)
		}

	default:
		// unrecognized control byte or dead-end escape sequence: drop it
	}

	if !keep {
		e.pend = e.pend[:0]
	}
	return true
}

func (e *Editor) insert(r rune) {
	e.line = append(e.line, 0)
	copy(e.line[e.at+1:], e.line[e.at:])
	e.line[e.at] = r
	fmt.Fprintf(e.out, "\x1b[@%c", r)
	e.at++
}

func (e *Editor) finish(o Outcome) {
	e.outcome = o
	e.done = true
}

func isEscPrefix(pend []byte) bool {
	if len(pend) == 0 || pend[0] != 0x1b {
		return false
	}
	switch string(pend) {
	case "\x1b", "\x1b[":
		return true
	}
	if len(pend) == 2 && pend[1] == '[' {
		return true
	}
	if len(pend) == 3 && pend[1] == '[' && pend[2] >= '0' && pend[2] <= '9' {
		return true
	}
	return false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// decodeUTF8 decodes a rune from a pending byte run that might still be
// incomplete (leading byte indicates more continuation bytes than are
// buffered so far). size == 0 means "valid so far, need more bytes".
func decodeUTF8(pend []byte) (rune, int) {
	lead := pend[0]
	var want int
	switch {
	case lead < 0x80:
		want = 1
	case lead&0xe0 == 0xc0:
		want = 2
	case lead&0xf0 == 0xe0:
		want = 3
	case lead&0xf8 == 0xf0:
		want = 4
	default:
		return 0xfffd, 1
	}
	if len(pend) < want {
		return 0, 0
	}
	r := rune(lead)
	switch want {
	case 1:
		return r, 1
	case 2:
		r &= 0x1f
	case 3:
		r &= 0x0f
	case 4:
		r &= 0x07
	}
	for _, c := range pend[1:want] {
		r = r<<6 | rune(c&0x3f)
	}
	return r, want
}
