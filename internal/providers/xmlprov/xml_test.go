package xmlprov

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
	path := filepath.Join(dir, "doc.xml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestNewParsesNestedElements(t *testing.T) {
	path := writeTemp(t, `<root a="1"><child>hello</child><child>world</child></root>`)
	p, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := p.ProvideRoot()
	children := root.Value.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 child elements, got %d", len(children))
	}
}

func TestNewRejectsUnbalancedDocument(t *testing.T) {
	path := writeTemp(t, `<root><child></root>`)
	if _, err := New(path); err == nil {
		t.Fatalf("expected error for unbalanced document")
	}
}

func TestTextNodeFmtLeafIsGreenAndTruncated(t *testing.T) {
	n := &Node{isText: true, text: strings.Repeat("y", 100)}
	var buf bytes.Buffer
	if err := n.FmtLeaf(&buf); err != nil {
		t.Fatalf("FmtLeaf: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[32m") {
		t.Fatalf("expected green escape, got %q", out)
	}
	if strings.Count(out, "y") != 42 {
		t.Fatalf("expected truncation to 42 chars, got %q", out)
	}
}

func TestElementFmtLeafListsAttributes(t *testing.T) {
	path := writeTemp(t, `<root a="1" b="2"></root>`)
	p, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := p.ProvideRoot().Value.FmtLeaf(&buf); err != nil {
		t.Fatalf("FmtLeaf: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `a="1"`) || !strings.Contains(out, `b="2"`) {
		t.Fatalf("expected attributes in leaf output, got %q", out)
	}
}

func TestTextLeafHasNoChildren(t *testing.T) {
	n := &Node{isText: true, text: "hi"}
	if children := n.Children(); children != nil {
		t.Fatalf("text node should have no children, got %v", children)
	}
}
