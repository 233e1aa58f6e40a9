// Package tomlprov provides a TOML document tree via
// pelletier/go-toml/v2, plugged into the internal/providers/generic
// scaffold. go-toml/v2's public API is decode-into-any rather than an
// exported tree type, so this walks map[string]any / []any / scalars.
package tomlprov

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/brianmcjilton/treest/internal/providers/generic"
)

// Value adapts a decoded TOML value (map[string]any, []any, or a
// scalar) into generic.Value.
type Value struct {
	v any
}

func (v Value) Children() []generic.Child {
	switch t := v.v.(type) {
	case map[string]any:
		children := make([]generic.Child, 0, len(t))
		for k, val := range t {
			children = append(children, generic.Child{Key: generic.NameKey(k), Value: Value{v: val}})
		}
		return children
	case []any:
		children := make([]generic.Child, len(t))
		for i, val := range t {
			children[i] = generic.Child{Key: generic.IndexKey(i), Value: Value{v: val}}
		}
		return children
	default:
		return nil
	}
}

func (v Value) FmtLeaf(w io.Writer) error {
	switch t := v.v.(type) {
	case string:
		s := t
		if len(s) > 42 {
			s = s[:42]
		}
		_, err := fmt.Fprintf(w, "\x1b[32m%q", s)
		return err
	case int64:
		_, err := fmt.Fprintf(w, "\x1b[33m%d", t)
		return err
	case float64:
		_, err := fmt.Fprintf(w, "\x1b[33m%g", t)
		return err
	case bool:
		_, err := fmt.Fprintf(w, "\x1b[35m%t", t)
		return err
	case time.Time:
		_, err := fmt.Fprintf(w, "\x1b[33m%s", t.Format(time.RFC3339))
		return err
	case map[string]any, []any:
		return nil // tables/arrays render via their own children, not a leaf
	default:
		_, err := fmt.Fprintf(w, "%v", t)
		return err
	}
}

// New builds a toml provider over the file at path.
func New(path string) (*generic.Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("tomlprov: %s: %w", path, err)
	}
	return &generic.Provider{Root: Value{v: v}, Order: generic.OrderSorted}, nil
}
