// Package yamlprov provides a YAML document tree via gopkg.in/yaml.v3,
// plugged into the internal/providers/generic scaffold. It walks a
// *yaml.Node tree directly so mapping key order from the source
// document is preserved, which a plain decode into map[string]any
// would not.
package yamlprov

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brianmcjilton/treest/internal/providers/generic"
)

// Value adapts a *yaml.Node into generic.Value.
type Value struct {
	node *yaml.Node
}

func (v Value) Children() []generic.Child {
	n := v.node
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}

	switch n.Kind {
	case yaml.MappingNode:
		var children []generic.Child
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			val := n.Content[i+1]
			children = append(children, generic.Child{
				Key:   generic.NameKey(key.Value),
				Value: Value{node: val},
			})
		}
		return children

	case yaml.SequenceNode:
		children := make([]generic.Child, len(n.Content))
		for i, val := range n.Content {
			children[i] = generic.Child{Key: generic.IndexKey(i), Value: Value{node: val}}
		}
		return children

	default:
		return nil
	}
}

func (v Value) FmtLeaf(w io.Writer) error {
	n := v.node
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}

	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!str" {
			s := n.Value
			if len(s) > 42 {
				s = s[:42]
			}
			_, err := fmt.Fprintf(w, "\x1b[32m%q", s)
			return err
		}
		if n.Tag == "!!null" || n.Tag == "!!bool" {
			_, err := fmt.Fprintf(w, "\x1b[35m%s", n.Value)
			return err
		}
		if n.Tag == "!!int" || n.Tag == "!!float" {
			_, err := fmt.Fprintf(w, "\x1b[33m%s", n.Value)
			return err
		}
		_, err := io.WriteString(w, n.Value)
		return err
	case yaml.MappingNode:
		_, err := fmt.Fprintf(w, "{%d}", len(n.Content)/2)
		return err
	case yaml.SequenceNode:
		_, err := fmt.Fprintf(w, "[%d]", len(n.Content))
		return err
	case yaml.AliasNode:
		_, err := io.WriteString(w, "*"+n.Value)
		return err
	default:
		_, err := io.WriteString(w, strings.TrimSpace(n.Value))
		return err
	}
}

// New builds a yaml provider over the file at path.
func New(path string) (*generic.Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yamlprov: %s: %w", path, err)
	}
	return &generic.Provider{Root: Value{node: &doc}}, nil
}
