// Package keymap implements a prefix-trie key dispatcher: a byte-keyed
// trie of Action values, where a key sequence either resolves
// immediately, is still pending more bytes, or is unbound.
package keymap

// Action is something a fully-resolved key sequence runs. args are any
// extra tokens the caller supplies beyond the key sequence itself;
// navigate passes none, but a Bind/Chain built from user rebinds can
// still carry fixed arguments.
type Action interface {
	Apply(args []string)
}

// Fn is a bare action with no bound arguments.
type Fn func(args []string)

func (f Fn) Apply(args []string) { f(args) }

// Bind pins a fixed argument prefix ahead of whatever args Apply is
// called with.
type Bind struct {
	Func  func(args []string)
	Bound []string
}

func (b Bind) Apply(args []string) {
	all := make([]string, 0, len(b.Bound)+len(args))
	all = append(all, b.Bound...)
	all = append(all, args...)
	b.Func(all)
}

// Chain runs each action in order, passing the same args to each.
type Chain []Action

func (c Chain) Apply(args []string) {
	for _, a := range c {
		a.Apply(args)
	}
}

type entry struct {
	action Action
	next   map[byte]*entry
}

// Map is a mutable trie from key-byte sequences to Actions. The zero
// value is ready to use.
type Map struct {
	root map[byte]*entry
}

// Result reports what a Try call found.
type Result int

const (
	// NoMatch means the sequence so far cannot extend into any bound
	// action: the caller should drop its pending buffer.
	NoMatch Result = iota
	// Matched means the sequence resolved to an Action, which Try
	// returns alongside.
	Matched
	// Pending means the sequence is a valid prefix of at least one
	// longer binding: the caller should keep buffering.
	Pending
)

// Try walks path and reports whether it is unbound, already resolves to
// an Action, or is a prefix of a longer binding. An empty path is
// always NoMatch.
func (m *Map) Try(path []byte) (Action, Result) {
	if len(path) == 0 {
		return nil, NoMatch
	}

	cur, ok := m.root[path[0]]
	for _, b := range path[1:] {
		if !ok {
			return nil, NoMatch
		}
		if cur.action != nil {
			// a bound key has no continuation: a longer path is unbound
			return nil, NoMatch
		}
		cur, ok = cur.next[b]
	}

	if !ok {
		return nil, NoMatch
	}
	if cur.action != nil {
		return cur.action, Matched
	}
	return nil, Pending
}

// BindPath registers action at path, creating intermediate pending nodes
// as needed and overwriting whatever was there before.
func (m *Map) BindPath(path []byte, action Action) {
	if len(path) == 0 {
		return
	}
	if m.root == nil {
		m.root = make(map[byte]*entry)
	}
	acc := m.root
	for _, b := range path[:len(path)-1] {
		e, ok := acc[b]
		if !ok || e.action != nil {
			e = &entry{next: make(map[byte]*entry)}
			acc[b] = e
		}
		acc = e.next
	}
	last := path[len(path)-1]
	acc[last] = &entry{action: action}
}
