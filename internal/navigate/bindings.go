package navigate

import (
	"os"

	"github.com/brianmcjilton/treest/internal/keymap"
)

// bindDefaults installs the built-in byte-level key table into n.keys.
func (n *Navigate[F]) bindDefaults() {
	bind := func(seq string, f func()) {
		n.keys.BindPath([]byte(seq), keymap.Fn(func([]string) { f() }))
	}

	bind("0", n.Root)
	bind("H", n.Fold)
	bind("\x7f", n.Fold) // DEL
	bind("L", n.Unfold)
	bind("h", n.Leave)
	bind("\x1b[D", n.Leave)
	bind("j", func() { n.SiblingSat(Next) })
	bind("\x1b[B", func() { n.SiblingSat(Next) })
	bind("k", func() { n.SiblingSat(Prev) })
	bind("\x1b[A", func() { n.SiblingSat(Prev) })
	bind("l", n.Enter)
	bind("\x1b[C", n.Enter)
	bind(" ", n.ToggleMark)
	bind("q", n.Quit)
	bind(":", n.OpenCommandPrompt)
	bind("t", n.SpawnSubTree)
	bind("T", n.OpenSubTreePrompt)
	bind("f", n.RunFileCommand)
	bind("F", func() {
		n.ReadCurrentFile(func(path string) (string, error) {
			b, err := os.ReadFile(path)
			return string(b), err
		})
	})

	// Ctrl-key view jumps and wrap-siblings: these are single control
	// bytes, not ASCII letters, so they cannot collide with the letter
	// bindings above.
	bind("\x02", func() { n.UpView(Win) })      // ^B
	bind("\x04", func() { n.DownView(HalfWin) }) // ^D
	bind("\x05", func() { n.DownView(Line) })    // ^E
	bind("\x06", func() { n.DownView(Win) })     // ^F
	bind("\x0a", func() { n.SiblingWrap(Next) }) // ^J
	bind("\x0b", func() { n.SiblingWrap(Prev) }) // ^K
	bind("\x0c", n.ClearMessage)                 // ^L
	bind("\x0d", n.ToggleFold)                   // ^M
	bind("\x15", func() { n.UpView(HalfWin) })   // ^U
	bind("\x19", func() { n.UpView(Line) })      // ^Y
}
