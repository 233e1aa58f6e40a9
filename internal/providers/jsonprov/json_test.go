package jsonprov

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/brianmcjilton/treest/internal/providers/generic"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestNewRejectsInvalidJSON(t *testing.T) {
	path := writeTemp(t, `{not json`)
	if _, err := New(path); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestObjectChildrenPreserveInsertionOrder(t *testing.T) {
	path := writeTemp(t, `{"b":1,"a":2,"c":3}`)
	p, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := p.ProvideRoot()
	children := root.Value.Children()
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

func TestArrayChildrenAreIndexKeyed(t *testing.T) {
	path := writeTemp(t, `[10,20,30]`)
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
	v := Value{result: gjson.Parse("42")}
	if children := v.Children(); children != nil {
		t.Fatalf("scalar should have no children, got %v", children)
	}
}

func TestFmtLeafNullIsMagenta(t *testing.T) {
	v := Value{result: gjson.Parse("null")}
	var buf bytes.Buffer
	if err := v.FmtLeaf(&buf); err != nil {
		t.Fatalf("FmtLeaf: %v", err)
	}
	if buf.String() != "\x1b[35mnull" {
		t.Fatalf("expected magenta null, got %q", buf.String())
	}
}

func TestFmtLeafNumberIsYellow(t *testing.T) {
	v := Value{result: gjson.Parse("42.5")}
	var buf bytes.Buffer
	v.FmtLeaf(&buf)
	if buf.String() != "\x1b[33m42.5" {
		t.Fatalf("expected yellow number, got %q", buf.String())
	}
}

func TestFmtLeafStringIsGreenAndQuoted(t *testing.T) {
	v := Value{result: gjson.Parse(`"hello"`)}
	var buf bytes.Buffer
	v.FmtLeaf(&buf)
	if buf.String() != "\x1b[32m\"hello\"" {
		t.Fatalf("expected green quoted string, got %q", buf.String())
	}
}

func TestFmtLeafStringTruncatesTo42(t *testing.T) {
	long := strings.Repeat("x", 60)
	v := Value{result: gjson.Parse(`"` + long + `"`)}
	var buf bytes.Buffer
	v.FmtLeaf(&buf)
	want := "\x1b[32m\"" + strings.Repeat("x", 42) + "\""
	if buf.String() != want {
		t.Fatalf("expected 42-byte truncation, got %q", buf.String())
	}
}

func TestFmtLeafObjectShowsCount(t *testing.T) {
	v := Value{result: gjson.Parse(`{"x":1,"y":2}`)}
	var buf bytes.Buffer
	v.FmtLeaf(&buf)
	if buf.String() != "{2}" {
		t.Fatalf("expected {2}, got %q", buf.String())
	}
}

func TestKeyNotationIsPathStyle(t *testing.T) {
	path := writeTemp(t, `{"x":[1,2,3],"a b":null}`)
	p, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := p.ProvideRoot()
	if got := root.Key.String(); got != "$" {
		t.Fatalf("root key = %q, want $", got)
	}
	kids, err := p.Provide([]generic.Fragment{root})
	if err != nil {
		t.Fatalf("Provide: %v", err)
	}
	if got := kids[0].Key.String(); got != ".x" {
		t.Fatalf("object key = %q, want .x", got)
	}
	if got := kids[1].Key.String(); got != "['a b']" {
		t.Fatalf("non-identifier key = %q, want ['a b']", got)
	}
	elems, err := p.Provide([]generic.Fragment{root, kids[0]})
	if err != nil {
		t.Fatalf("Provide: %v", err)
	}
	if got := elems[0].Key.String(); got != "[0]" {
		t.Fatalf("array key = %q, want [0]", got)
	}
}

func TestProviderProvideAssignsOrdinals(t *testing.T) {
	path := writeTemp(t, `{"x":[1,2,3],"y":null}`)
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
