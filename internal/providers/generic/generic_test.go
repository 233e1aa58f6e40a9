package generic

import (
	"bytes"
	"io"
	"testing"
)

type stubValue struct{ leaf string }

func (v stubValue) Children() []Child { return nil }
func (v stubValue) FmtLeaf(w io.Writer) error {
	_, err := io.WriteString(w, v.leaf)
	return err
}

func TestKeyLessOrdersIndexBeforeName(t *testing.T) {
	if !IndexKey(0).Less(NameKey("a")) {
		t.Fatalf("index keys should sort before name keys")
	}
	if NameKey("a").Less(IndexKey(0)) {
		t.Fatalf("name key should not sort before index key")
	}
}

func TestKeyLessWithinKind(t *testing.T) {
	if !IndexKey(1).Less(IndexKey(2)) {
		t.Fatalf("index 1 should sort before index 2")
	}
	if !NameKey("a").Less(NameKey("b")) {
		t.Fatalf("name a should sort before name b")
	}
}

func TestCompareNaturalUsesOrdinal(t *testing.T) {
	p := &Provider{Order: OrderNatural}
	a := Fragment{Key: Key{Name: "z", Ordinal: 0}}
	b := Fragment{Key: Key{Name: "a", Ordinal: 1}}
	if p.Compare(a, b) >= 0 {
		t.Fatalf("expected a (ordinal 0) to sort before b (ordinal 1) under OrderNatural")
	}
}

func TestCompareSortedIgnoresOrdinal(t *testing.T) {
	p := &Provider{Order: OrderSorted}
	a := Fragment{Key: Key{Name: "z", Ordinal: 0}}
	b := Fragment{Key: Key{Name: "a", Ordinal: 1}}
	if p.Compare(a, b) <= 0 {
		t.Fatalf("expected b (name a) to sort before a (name z) under OrderSorted")
	}
}

func TestProvideAssignsSequentialOrdinals(t *testing.T) {
	p := &Provider{Root: stubValue{}}
	root := Fragment{Key: Key{}, Value: stubValue{}}
	root.Value = fakeParent{children: []Child{
		{Key: NameKey("b")}, {Key: NameKey("a")}, {Key: NameKey("c")},
	}}
	kids, err := p.Provide([]Fragment{root})
	if err != nil {
		t.Fatalf("Provide: %v", err)
	}
	for i, k := range kids {
		if k.Key.Ordinal != i {
			t.Fatalf("child %d: expected ordinal %d, got %d", i, i, k.Key.Ordinal)
		}
	}
}

func TestKeepAlwaysTrue(t *testing.T) {
	p := &Provider{}
	if !p.Keep(Fragment{}) {
		t.Fatalf("Keep should always return true")
	}
}

func TestFragmentStringIncludesKeyAndLeaf(t *testing.T) {
	f := Fragment{Key: NameKey("x"), Value: stubValue{leaf: "42"}}
	s := f.String()
	if !bytes.Contains([]byte(s), []byte("x")) || !bytes.Contains([]byte(s), []byte("42")) {
		t.Fatalf("expected key and leaf in fragment string, got %q", s)
	}
}

func TestWriteArgPathJoinsWithDots(t *testing.T) {
	p := &Provider{}
	var buf bytes.Buffer
	path := []Fragment{{Key: NameKey("a")}, {Key: IndexKey(0)}, {Key: NameKey("b")}}
	if err := p.WriteArgPath(&buf, path); err != nil {
		t.Fatalf("WriteArgPath: %v", err)
	}
	if buf.String() != "a.0.b" {
		t.Fatalf("expected %q, got %q", "a.0.b", buf.String())
	}
}

func TestPathStyleKeyNotation(t *testing.T) {
	root := Key{IsRoot: true, Style: StylePath}
	if got := root.String(); got != "$" {
		t.Fatalf("root = %q, want $", got)
	}
	name := NameKey("x")
	name.Style = StylePath
	if got := name.String(); got != ".x" {
		t.Fatalf("name = %q, want .x", got)
	}
	odd := NameKey("a b")
	odd.Style = StylePath
	if got := odd.String(); got != "['a b']" {
		t.Fatalf("odd name = %q, want ['a b']", got)
	}
	idx := IndexKey(3)
	idx.Style = StylePath
	if got := idx.String(); got != "[3]" {
		t.Fatalf("index = %q, want [3]", got)
	}
}

func TestWriteArgPathConcatenatesPathStyle(t *testing.T) {
	p := &Provider{Style: StylePath}
	root := Key{IsRoot: true, Style: StylePath}
	name := NameKey("x")
	name.Style = StylePath
	idx := IndexKey(0)
	idx.Style = StylePath
	var buf bytes.Buffer
	if err := p.WriteArgPath(&buf, []Fragment{{Key: root}, {Key: name}, {Key: idx}}); err != nil {
		t.Fatalf("WriteArgPath: %v", err)
	}
	// brackets aren't shell-safe, so the whole expression gets quoted
	if buf.String() != "'$.x[0]'" {
		t.Fatalf("got %q, want '$.x[0]'", buf.String())
	}
}

func TestShellQuote(t *testing.T) {
	if got := shellQuote("plain/path.txt"); got != "plain/path.txt" {
		t.Fatalf("safe string should pass through, got %q", got)
	}
	if got := shellQuote("a b"); got != "'a b'" {
		t.Fatalf("got %q, want 'a b'", got)
	}
	if got := shellQuote("it's"); got != `'it'\''s'` {
		t.Fatalf("got %q", got)
	}
	if got := shellQuote(""); got != "''" {
		t.Fatalf("empty should quote to '', got %q", got)
	}
}

func TestProviderCommandReturnsError(t *testing.T) {
	p := &Provider{}
	if _, err := p.ProviderCommand([]string{"anything"}); err == nil {
		t.Fatalf("expected error for unsupported provider command")
	}
}

type fakeParent struct{ children []Child }

func (v fakeParent) Children() []Child          { return v.children }
func (v fakeParent) FmtLeaf(w io.Writer) error { return nil }
