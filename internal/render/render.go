// Package render draws a treecore.Tree as an ANSI tree view: a
// depth-first walk through each node's overlay, clipped to a viewport
// and annotated with cursor/mark decoration, followed by the status
// line.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/brianmcjilton/treest/internal/navigate"
	"github.com/brianmcjilton/treest/internal/termctl"
	"github.com/brianmcjilton/treest/internal/treecore"
)

// Appearance is the glyph set used for branch/indent rendering.
type Appearance struct {
	Branch     string
	Indent     string
	BranchLast string
	IndentLast string
}

var ASCII = Appearance{
	Branch:     "|-- ",
	Indent:     "|   ",
	BranchLast: "`-- ",
	IndentLast: "    ",
}

var PRETTY = Appearance{
	Branch:     "├── ",
	Indent:     "│   ",
	BranchLast: "└── ",
	IndentLast: "    ",
}

// Stringer is the minimal requirement on a Tree's fragment type for
// rendering: it must know how to print itself.
type Stringer interface {
	String() string
}

// Render draws nav's tree into w: clear screen, walk the tree, then the
// status line (path, message, pending buffer). It repopulates nav's
// View (Total and LineMapping) as it goes, so mouse clicks can map rows
// back to handles.
func Render[F Stringer](w io.Writer, nav *navigate.Navigate[F]) error {
	fmt.Fprint(w, "\x1b[H\x1b[J")

	view := nav.View()
	start, end := view.Visible()
	if end < start {
		end = start
	}
	if len(view.LineMapping) != end-start {
		view.LineMapping = make([]treecore.NodeHandle, end-start)
	}
	for i := range view.LineMapping {
		view.LineMapping[i] = nav.Tree().Root()
	}

	appearance := ASCII
	if nav.Options().Pretty {
		appearance = PRETTY
	}

	current := 0
	if err := renderAt(w, nav, nav.Tree().Root(), "", &current, start, end, view.LineMapping, appearance); err != nil {
		return err
	}
	view.Total = current

	if current < end {
		fmt.Fprint(w, strings.Repeat("\n", end-current))
	}

	var status strings.Builder
	status.WriteString(nav.Tree().FragmentPathDisplay(nav.Cursor()))
	if msg, has := nav.Message(); has {
		status.WriteString("  ")
		status.WriteString(msg)
	}
	if pend := nav.Pending(); len(pend) > 0 {
		status.WriteString("  ")
		for _, k := range pend {
			if k >= 0x20 && k < 0x7f {
				status.WriteByte(k)
			} else {
				fmt.Fprintf(&status, "<0x%02x>", k)
			}
		}
	}
	_, cols := termctl.Size()
	fmt.Fprint(w, clipPad(status.String(), cols))

	return nil
}

// clipPad truncates s to width visible columns and pads it with spaces
// up to width, so the status line always overwrites the full row.
// Escape sequences pass through uncounted.
func clipPad(s string, width int) string {
	var sb strings.Builder
	visible := 0
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			j := i + 1
			if j < len(s) && s[j] == '[' {
				j++
				for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
					j++
				}
				if j < len(s) {
					j++
				}
			}
			sb.WriteString(s[i:j])
			i = j
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		if visible < width {
			sb.WriteString(s[i : i+size])
			visible++
		}
		i += size
	}
	for ; visible < width; visible++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}

func renderAt[F Stringer](
	w io.Writer,
	nav *navigate.Navigate[F],
	at treecore.NodeHandle,
	indent string,
	current *int,
	start, end int,
	which []treecore.NodeHandle,
	appearance Appearance,
) error {
	tree := nav.Tree()
	frag := tree.Fragment(at)
	visible := *current >= start && *current < end

	if visible {
		if tree.Marked(at) {
			fmt.Fprint(w, " \x1b[4m")
		}
		if nav.Cursor() == at {
			fmt.Fprint(w, "\x1b[7m")
		}
		fmt.Fprintf(w, "%s\x1b[m", frag.String())
		which[*current-start] = at
	}

	if tree.Folded(at) {
		if visible {
			fmt.Fprint(w, "\r\n")
		}
		*current++
		return nil
	}

	children, _ := tree.Children(at)
	if len(children) == 0 {
		if visible {
			fmt.Fprint(w, "\r\n")
		}
		*current++
		return nil
	}

	if len(children) == 1 && nav.Options().OnlyChild {
		return renderAt(w, nav, children[0], indent, current, start, end, which, appearance)
	}

	if visible {
		fmt.Fprint(w, "\r\n")
	}
	*current++

	for _, child := range children[:len(children)-1] {
		if *current >= start && *current < end {
			fmt.Fprintf(w, "%s%s", indent, appearance.Branch)
		}
		if err := renderAt(w, nav, child, indent+appearance.Indent, current, start, end, which, appearance); err != nil {
			return err
		}
	}

	last := children[len(children)-1]
	if *current >= start && *current < end {
		fmt.Fprintf(w, "%s%s", indent, appearance.BranchLast)
	}
	return renderAt(w, nav, last, indent+appearance.IndentLast, current, start, end, which, appearance)
}
