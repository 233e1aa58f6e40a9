package yamlprov

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/brianmcjilton/treest/internal/providers/generic"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestNewRejectsInvalidYAML(t *testing.T) {
	path := writeTemp(t, "a: [unterminated\n")
	if _, err := New(path); err == nil {
		t.Fatalf("expected error for invalid YAML")
	}
}

func TestMappingChildrenPreserveInsertionOrder(t *testing.T) {
	path := writeTemp(t, "b: 1\na: 2\nc: 3\n")
	p, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	children := p.ProvideRoot().Value.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	want := []string{"b", "a", "c"}
	for i, c := range children {
		if c.Key.Name != want[i] {
			t.Fatalf("child %d: want key %q, got %q", i, want[i], c.Key.Name)
		}
	}
}

func TestSequenceChildrenAreIndexKeyed(t *testing.T) {
	path := writeTemp(t, "- 10\n- 20\n- 30\n")
	p, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	children := p.ProvideRoot().Value.Children()
	for i, c := range children {
		if !c.Key.IsIndex || c.Key.Index != i {
			t.Fatalf("child %d should be index-keyed at %d, got %+v", i, i, c.Key)
		}
	}
}

func TestScalarHasNoChildren(t *testing.T) {
	v := Value{node: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: "42"}}
	if children := v.Children(); children != nil {
		t.Fatalf("scalar should have no children, got %v", children)
	}
}

func TestFmtLeafStringIsGreenAndQuoted(t *testing.T) {
	v := Value{node: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "hello"}}
	var buf bytes.Buffer
	if err := v.FmtLeaf(&buf); err != nil {
		t.Fatalf("FmtLeaf: %v", err)
	}
	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("\x1b[32m")) || !bytes.Contains(buf.Bytes(), []byte(`"hello"`)) {
		t.Fatalf("unexpected leaf format: %q", out)
	}
}

func TestFmtLeafStringTruncatesTo42(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	v := Value{node: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(long)}}
	var buf bytes.Buffer
	v.FmtLeaf(&buf)
	if bytes.Count(buf.Bytes(), []byte("x")) != 42 {
		t.Fatalf("expected 42 x's in truncated output, got %q", buf.String())
	}
}

func TestFmtLeafNullIsMagenta(t *testing.T) {
	v := Value{node: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}}
	var buf bytes.Buffer
	v.FmtLeaf(&buf)
	if !bytes.Contains(buf.Bytes(), []byte("\x1b[35m")) {
		t.Fatalf("expected magenta escape for null, got %q", buf.String())
	}
}

func TestFmtLeafMappingShowsCount(t *testing.T) {
	v := Value{node: &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "x"}, {Kind: yaml.ScalarNode, Value: "1"},
			{Kind: yaml.ScalarNode, Value: "y"}, {Kind: yaml.ScalarNode, Value: "2"},
		},
	}}
	var buf bytes.Buffer
	v.FmtLeaf(&buf)
	if buf.String() != "{2}" {
		t.Fatalf("expected {2}, got %q", buf.String())
	}
}

func TestProviderProvideAssignsOrdinals(t *testing.T) {
	path := writeTemp(t, "x:\n  - 1\n  - 2\ny: null\n")
	p, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := p.ProvideRoot()
	kids, err := p.Provide([]generic.Fragment{root})
	if err != nil {
		t.Fatalf("Provide: %v", err)
	}
	if len(kids) != 2 {
		t.Fatalf("expected 2 children, got %d", len(kids))
	}
	if kids[0].Key.Ordinal != 0 || kids[1].Key.Ordinal != 1 {
		t.Fatalf("expected ordinals 0,1, got %d,%d", kids[0].Key.Ordinal, kids[1].Key.Ordinal)
	}
}
