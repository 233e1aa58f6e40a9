package navigate

import "strings"

// Navigation actions. These are the targets bindDefaults wires into the
// keymap, and are exported so a host embedding Navigate can build its
// own keymap.Action values around them (e.g. for `:bind`).

// Root moves the cursor to the tree root.
func (n *Navigate[F]) Root() { n.cursor = n.tree.Root() }

// Fold folds the cursor's node.
func (n *Navigate[F]) Fold() { n.tree.FoldAt(n.cursor) }

// Unfold unfolds the cursor's node. A failed Provider.Provide call is
// surfaced as a message; the node still becomes a provided, childless
// leaf.
func (n *Navigate[F]) Unfold() {
	if err := n.tree.UnfoldAt(n.cursor); err != nil {
		n.setProviderError(err)
	}
}

// ToggleFold folds an unfolded cursor, or unfolds a folded one.
func (n *Navigate[F]) ToggleFold() {
	if n.tree.Folded(n.cursor) {
		n.Unfold()
	} else {
		n.Fold()
	}
}

// ToggleMark flips the cursor's mark.
func (n *Navigate[F]) ToggleMark() { n.tree.ToggleMarkAt(n.cursor) }

// Enter unfolds the cursor and, if it has any children in overlay
// order, moves the cursor to the first one.
func (n *Navigate[F]) Enter() {
	n.Unfold()
	if children, ok := n.tree.Children(n.cursor); ok && len(children) > 0 {
		n.cursor = children[0]
	}
}

// Leave moves the cursor to its parent (the root's parent is itself).
func (n *Navigate[F]) Leave() {
	n.cursor = n.tree.Parent(n.cursor)
}

// SiblingSat moves the cursor to the previous/next sibling in overlay
// order, saturating at the ends.
func (n *Navigate[F]) SiblingSat(dir Direction) { n.moveSibling(dir, Direction.Sat) }

// SiblingWrap is the same as SiblingSat but wraps around at the ends.
func (n *Navigate[F]) SiblingWrap(dir Direction) { n.moveSibling(dir, Direction.Wrap) }

func (n *Navigate[F]) moveSibling(dir Direction, step func(Direction, int, int) int) {
	parent := n.tree.Parent(n.cursor)
	siblings, ok := n.tree.Children(parent)
	if !ok {
		return
	}
	for i, c := range siblings {
		if c == n.cursor {
			n.cursor = siblings[step(dir, i, len(siblings))]
			return
		}
	}
}

// DownView, UpView and ClearMessage wrap the view/message mutations
// bindDefaults hangs off the Ctrl-key bindings.
func (n *Navigate[F]) DownView(by JumpBy) { n.view.Down(by) }
func (n *Navigate[F]) UpView(by JumpBy)   { n.view.Up(by) }
func (n *Navigate[F]) ClearMessage()      { n.clearMessage() }

// OpenCommandPrompt suspends into the `:` command prompt.
func (n *Navigate[F]) OpenCommandPrompt() {
	n.state = NewPromptState(":")
	n.clearMessage()
}

// OpenSubTreePrompt suspends into the sub-tree-provider-type prompt the
// `T` binding opens.
func (n *Navigate[F]) OpenSubTreePrompt() {
	n.clearMessage()
	n.state = NewPromptState("sub-tree type: ")
}

// SpawnSubTree suspends into an ExecStatus request re-invoking treest
// on the cursor's path (the `t` binding).
func (n *Navigate[F]) SpawnSubTree() {
	path := n.tree.FragmentPathString(n.cursor)
	n.state = NewExecStatusState(ExecRequest{Restore: true, Path: "treest", Args: []string{"", path}})
}

// RunFileCommand suspends into an ExecOutput request running the
// system `file` command on the cursor's path (the `f` binding).
func (n *Navigate[F]) RunFileCommand() {
	path := n.tree.FragmentPathString(n.cursor)
	n.state = NewExecOutputState(ExecRequest{Restore: false, Path: "file", Args: []string{path}})
}

// Quit requests the driver loop stop.
func (n *Navigate[F]) Quit() { n.quit = true }

// ReadCurrentFile reads the cursor's path as text into the status
// message, translating newlines to CRLF the way a raw terminal expects
// (the `F` binding). This is plain local file I/O, not a subprocess, so
// unlike `f`/`t` it needs no suspension. A read failure is surfaced as a
// message rather than silently cleared.
func (n *Navigate[F]) ReadCurrentFile(read func(path string) (string, error)) {
	path := n.tree.FragmentPathString(n.cursor)
	content, err := read(path)
	if err != nil {
		n.setProviderError(err)
		return
	}
	n.setMessage(strings.ReplaceAll(content, "\n", "\r\n"))
}
