// Package treecore implements the generic lazy tree: stable node identity
// over internal/arena, fold/unfold against a pluggable Provider, and
// ordering through internal/fisovec.
package treecore

import (
	"fmt"
	"strings"

	"github.com/brianmcjilton/treest/internal/arena"
	"github.com/brianmcjilton/treest/internal/fisovec"
)

// NodeHandle is a stable identifier for a node in a Tree. Equality is
// identity. A NodeHandle from one Tree must never be used with another.
type NodeHandle = arena.Handle

type childState int

const (
	notYetProvided childState = iota
	provided
)

type node[F any] struct {
	fragment F
	parent   NodeHandle
	state    childState
	children []NodeHandle
	overlay  *fisovec.Overlay[NodeHandle]
	folded   bool
	marked   bool
}

// Tree owns all Node storage for one Provider and exposes handle-keyed
// operations only; nothing outside this package ever sees a fragment's
// storage location, only its Fragment value and Handle.
type Tree[F any] struct {
	arena    arena.Arena[node[F]]
	provider Full[F]
	root     NodeHandle
}

// handleSorter adapts a Tree's Provider (a FilterSorter over fragments)
// into a fisovec.FilterSorter over NodeHandles, so a node's overlay can be
// built directly from its children handles.
type handleSorter[F any] struct {
	t *Tree[F]
}

func (s handleSorter[F]) Compare(a, b NodeHandle) int {
	na, _ := s.t.arena.Get(a)
	nb, _ := s.t.arena.Get(b)
	return s.t.provider.Compare(na.fragment, nb.fragment)
}

func (s handleSorter[F]) Keep(a NodeHandle) bool {
	na, _ := s.t.arena.Get(a)
	return s.t.provider.Keep(na.fragment)
}

// New builds a Tree with a freshly inserted, folded, unprovided root node.
func New[F any](provider Full[F]) *Tree[F] {
	t := &Tree[F]{provider: provider}
	root := node[F]{
		fragment: provider.ProvideRoot(),
		folded:   true,
	}
	h := t.arena.Insert(root)
	// The root is its own parent.
	n := t.arena.GetPtr(h)
	n.parent = h
	t.root = h
	return t
}

// Provider returns the Tree's Provider, for callers that need to probe
// for the optional Ext interface or call ProviderCommand.
func (t *Tree[F]) Provider() Full[F] {
	return t.provider
}

// Root returns the synthetic top-level NodeHandle, which always exists
// and is never removed.
func (t *Tree[F]) Root() NodeHandle {
	return t.root
}

// Fragment returns the fragment stored at h.
func (t *Tree[F]) Fragment(h NodeHandle) F {
	n, _ := t.arena.Get(h)
	return n.fragment
}

// Parent returns h's parent. The root's parent is itself.
func (t *Tree[F]) Parent(h NodeHandle) NodeHandle {
	n, _ := t.arena.Get(h)
	return n.parent
}

// Folded reports whether h is currently folded (the renderer should not
// descend into it).
func (t *Tree[F]) Folded(h NodeHandle) bool {
	n, _ := t.arena.Get(h)
	return n.folded
}

// Marked reports h's user-toggled mark state.
func (t *Tree[F]) Marked(h NodeHandle) bool {
	n, _ := t.arena.Get(h)
	return n.marked
}

// Children returns h's overlay-ordered (filtered, sorted) children and
// true, or nil and false if h has never been unfolded-and-provided.
func (t *Tree[F]) Children(h NodeHandle) ([]NodeHandle, bool) {
	n, ok := t.arena.Get(h)
	if !ok || n.state != provided {
		return nil, false
	}
	return n.overlay.Slice(), true
}

// PathAt returns the ordered fragment sequence from root to h inclusive.
func (t *Tree[F]) PathAt(h NodeHandle) []F {
	var chain []NodeHandle
	cur := h
	for {
		chain = append(chain, cur)
		if cur == t.root {
			break
		}
		cur = t.Parent(cur)
	}
	path := make([]F, len(chain))
	for i, hh := range chain {
		path[len(chain)-1-i] = t.Fragment(hh)
	}
	return path
}

// UnfoldAt unfolds h. If h's children have never been provided, it calls
// Provider.Provide with the fragment path to h, inserts each returned
// fragment as a fresh node parented at h, and builds h's overlay. If
// children were already provided (even if h is currently folded), the
// Provider is not re-queried: children are provided exactly once.
// Unfolding a leaf (empty Provide result) is a no-op beyond marking it
// provided; it is never an error.
//
// If Provide itself fails, UnfoldAt still
// marks h provided with whatever fragments it got (typically none) so it
// renders as a leaf rather than retrying forever, and returns the error
// for the caller to surface as a message.
func (t *Tree[F]) UnfoldAt(h NodeHandle) error {
	n := t.arena.GetPtr(h)
	if n == nil {
		return nil
	}
	n.folded = false
	if n.state == provided {
		return nil
	}

	path := t.PathAt(h)
	fragments, err := t.provider.Provide(path)
	children := make([]NodeHandle, 0, len(fragments))
	for _, frag := range fragments {
		ch := t.arena.Insert(node[F]{fragment: frag, parent: h, folded: true})
		children = append(children, ch)
	}

	n = t.arena.GetPtr(h)
	n.children = children
	n.state = provided
	n.overlay = fisovec.New(children, handleSorter[F]{t})
	return err
}

// FoldAt folds h. Children, if any were provided, are left intact; only
// the render-visibility bit changes. Folding a leaf is a no-op.
func (t *Tree[F]) FoldAt(h NodeHandle) {
	n := t.arena.GetPtr(h)
	if n == nil {
		return
	}
	n.folded = true
}

// ToggleMarkAt flips h's mark state.
func (t *Tree[F]) ToggleMarkAt(h NodeHandle) {
	n := t.arena.GetPtr(h)
	if n == nil {
		return
	}
	n.marked = !n.marked
}

// IsProvided reports whether h's children have already been fetched from
// the Provider (whether or not h is currently folded).
func (t *Tree[F]) IsProvided(h NodeHandle) bool {
	n, ok := t.arena.Get(h)
	return ok && n.state == provided
}

// FragmentPathString renders path using the Provider's Ext.WriteArgPath if
// the Provider implements Ext, falling back to fmt.Sprint of the last
// fragment otherwise (a Provider with no Ext has opted out of shell
// substitution support, but the "%"-argument path must still produce
// something rather than panic).
func (t *Tree[F]) FragmentPathString(h NodeHandle) string {
	path := t.PathAt(h)
	if ext, ok := any(t.provider).(Ext[F]); ok {
		var sb strings.Builder
		if err := ext.WriteArgPath(&sb, path); err == nil {
			return sb.String()
		}
	}
	if len(path) == 0 {
		return ""
	}
	return fmt.Sprint(path[len(path)-1])
}

// FragmentPathDisplay renders the path to h for the status line via the
// Provider's Ext.FmtFragPath when implemented, falling back to the
// substitution arg path.
func (t *Tree[F]) FragmentPathDisplay(h NodeHandle) string {
	if ext, ok := any(t.provider).(Ext[F]); ok {
		var sb strings.Builder
		if err := ext.FmtFragPath(&sb, t.PathAt(h)); err == nil {
			return sb.String()
		}
	}
	return t.FragmentPathString(h)
}
