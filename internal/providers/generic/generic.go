// Package generic is the shared tree-walking scaffold Json/Yaml/Toml
// build on: any parsed document that can describe its own children and
// format its own leaves becomes a treecore.Full provider for free. A
// Fragment holds its Value directly; values are small, already-parsed
// tree nodes, so carrying one through an interface value costs nothing.
package generic

import (
	"fmt"
	"io"
	"strings"
)

// KeyStyle selects the notation Key.String uses.
type KeyStyle int

const (
	// StylePlain renders names and indices bare, and the root as an
	// empty label.
	StylePlain KeyStyle = iota
	// StylePath renders a document path the way JSON tooling writes
	// one: "$" for the root, ".name" for object keys ("['name']" when
	// the name isn't identifier-like), "[index]" for array elements.
	StylePath
)

// Key is a child's position in its parent: either a numeric index
// (arrays) or a string key (maps/objects). Style is stamped by the
// Provider so each document kind keeps its own index notation.
//
// Ordinal records the position Provide returned this child at, so a
// Provider with Order == OrderNatural can restore source order as a
// sort key instead of re-deriving it from Name/Index (which would
// clobber object-key insertion order with an alphabetical one).
type Key struct {
	IsIndex bool
	Index   int
	Name    string
	Ordinal int
	IsRoot  bool
	Style   KeyStyle
}

func IndexKey(i int) Key    { return Key{IsIndex: true, Index: i} }
func NameKey(name string) Key { return Key{Name: name} }

func (k Key) String() string {
	if k.Style == StylePath {
		switch {
		case k.IsRoot:
			return "$"
		case k.IsIndex:
			return fmt.Sprintf("[%d]", k.Index)
		case identLike(k.Name):
			return "." + k.Name
		default:
			return "['" + k.Name + "']"
		}
	}
	if k.IsIndex {
		return fmt.Sprintf("%d", k.Index)
	}
	return k.Name
}

// identLike reports whether name can follow a bare "." in a path
// expression: ASCII letters, digits and underscores, not starting with
// a digit.
func identLike(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Less orders indices before names, and within each kind by natural
// order. There's no single natural order across index/name pairs, so
// this is a pragmatic total order.
func (k Key) Less(other Key) bool {
	if k.IsIndex != other.IsIndex {
		return k.IsIndex
	}
	if k.IsIndex {
		return k.Index < other.Index
	}
	return k.Name < other.Name
}

// Value is a node in a parsed document: it knows its own children (if
// any) and how to format itself as a leaf when it has none worth
// descending into (or regardless, for the render-inline case).
type Value interface {
	Children() []Child
	FmtLeaf(w io.Writer) error
}

// Child pairs a Key with the Value found there.
type Child struct {
	Key   Key
	Value Value
}

// Fragment is the tree.Provider fragment type: a document position
// (Key) plus the Value living there.
type Fragment struct {
	Key   Key
	Value Value
}

// String renders a Fragment: a blue key, a colon, then the leaf in
// dim/white.
func (f Fragment) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[34m%s\x1b[m\x1b[37m: ", f.Key.String())
	f.Value.FmtLeaf(&sb)
	return sb.String()
}

// Order selects how a Provider's Compare orders siblings.
type Order int

const (
	// OrderNatural preserves the order Provide returned children in:
	// array index or object/mapping-key insertion order, as gjson and
	// yaml.v3's Node API both hand us directly.
	OrderNatural Order = iota
	// OrderSorted orders by Key (index, then alphabetical name),
	// needed when the underlying decode (e.g. Go's map[string]any for
	// TOML) has already discarded source order, so natural position is
	// meaningless and a deterministic order has to be imposed instead.
	OrderSorted
)

// Provider adapts a parsed document's root Value into a treecore.Full
// provider. It satisfies treecore.Ext too (FmtFragPath/WriteArgPath).
type Provider struct {
	Root  Value
	Order Order
	Style KeyStyle
}

func (p *Provider) ProvideRoot() Fragment {
	return Fragment{Key: Key{IsRoot: true, Style: p.Style}, Value: p.Root}
}

// Provide never fails: the document is fully parsed up front by New, so
// walking its already-built Value tree has nothing left to error on.
func (p *Provider) Provide(path []Fragment) ([]Fragment, error) {
	last := path[len(path)-1]
	children := last.Value.Children()
	out := make([]Fragment, len(children))
	for i, c := range children {
		key := c.Key
		key.Ordinal = i
		key.Style = p.Style
		out[i] = Fragment{Key: key, Value: c.Value}
	}
	return out, nil
}

func (p *Provider) Compare(a, b Fragment) int {
	if p.Order == OrderNatural {
		switch {
		case a.Key.Ordinal < b.Key.Ordinal:
			return -1
		case a.Key.Ordinal > b.Key.Ordinal:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a.Key.Less(b.Key):
		return -1
	case b.Key.Less(a.Key):
		return 1
	default:
		return 0
	}
}

// Keep always keeps every node; document providers expose no filtering.
func (p *Provider) Keep(a Fragment) bool { return true }

func (p *Provider) FmtFragPath(w io.Writer, path []Fragment) error {
	if p.Style == StylePath {
		_, err := io.WriteString(w, p.pathString(path))
		return err
	}
	for _, f := range path {
		if _, err := fmt.Fprintf(w, " %s", f.Key.String()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) WriteArgPath(w io.Writer, path []Fragment) error {
	_, err := io.WriteString(w, shellQuote(p.pathString(path)))
	return err
}

// pathString joins a fragment path into one expression: path-style keys
// concatenate ("$.x[0]"), plain keys join with dots.
func (p *Provider) pathString(path []Fragment) string {
	if p.Style == StylePath {
		var sb strings.Builder
		for _, f := range path {
			sb.WriteString(f.Key.String())
		}
		return sb.String()
	}
	parts := make([]string, len(path))
	for i, f := range path {
		parts[i] = f.Key.String()
	}
	return strings.Join(parts, ".")
}

// shellQuote wraps s so it survives re-parsing by a shell; strings made
// only of safe bytes pass through untouched.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool { return !shellSafe(r) }) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func shellSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("_-./,:=+%@", r)
}

func (p *Provider) ProviderCommand(args []string) (string, error) {
	return "", fmt.Errorf("no provider-specific commands")
}
