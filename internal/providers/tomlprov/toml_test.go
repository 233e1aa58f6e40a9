package tomlprov

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestNewParsesTableAndArray(t *testing.T) {
	path := writeTemp(t, "name = \"treest\"\n[owner]\nyears = 3\n[[tags]]\nid = 1\n")
	p, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := p.ProvideRoot()
	children := root.Value.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 top-level children, got %d", len(children))
	}
}

func TestFmtLeafStringIsGreenAndQuoted(t *testing.T) {
	v := Value{v: "hello"}
	var buf bytes.Buffer
	if err := v.FmtLeaf(&buf); err != nil {
		t.Fatalf("FmtLeaf: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[32m") || !strings.Contains(out, `"hello"`) {
		t.Fatalf("unexpected leaf format: %q", out)
	}
}

func TestFmtLeafStringTruncatesTo42(t *testing.T) {
	long := strings.Repeat("x", 100)
	v := Value{v: long}
	var buf bytes.Buffer
	v.FmtLeaf(&buf)
	out := buf.String()
	if strings.Count(out, "x") != 42 {
		t.Fatalf("expected 42 x's in truncated output, got %q", out)
	}
}

func TestFmtLeafBoolIsMagenta(t *testing.T) {
	v := Value{v: true}
	var buf bytes.Buffer
	v.FmtLeaf(&buf)
	if !strings.Contains(buf.String(), "\x1b[35m") {
		t.Fatalf("expected magenta escape for bool, got %q", buf.String())
	}
}

func TestChildrenOfTableAreNameKeyed(t *testing.T) {
	v := Value{v: map[string]any{"a": int64(1), "b": int64(2)}}
	children := v.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	for _, c := range children {
		if c.Key.IsIndex {
			t.Fatalf("table child should be name-keyed, got %+v", c.Key)
		}
	}
}

func TestChildrenOfArrayAreIndexKeyed(t *testing.T) {
	v := Value{v: []any{int64(1), int64(2), int64(3)}}
	children := v.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	for i, c := range children {
		if !c.Key.IsIndex || c.Key.Index != i {
			t.Fatalf("array child %d should be index-keyed at %d, got %+v", i, i, c.Key)
		}
	}
}

func TestScalarHasNoChildren(t *testing.T) {
	v := Value{v: int64(42)}
	if children := v.Children(); children != nil {
		t.Fatalf("scalar should have no children, got %v", children)
	}
}
