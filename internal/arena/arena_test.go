package arena

import "testing"

func TestInsertRemoveReuse(t *testing.T) {
	var a Arena[string]

	ha := a.Insert("A")
	hb := a.Insert("B")
	if ha == hb {
		t.Fatalf("distinct inserts got the same handle")
	}

	v, ok := a.Remove(ha)
	if !ok || v != "A" {
		t.Fatalf("Remove(ha) = %q, %v; want \"A\", true", v, ok)
	}

	hc := a.Insert("C")
	if hc != ha {
		t.Fatalf("Insert after Remove got handle %v, want reused slot %v", hc, ha)
	}
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
}

func TestRemoveIdempotent(t *testing.T) {
	var a Arena[int]
	h := a.Insert(1)
	if _, ok := a.Remove(h); !ok {
		t.Fatalf("first Remove should succeed")
	}
	if _, ok := a.Remove(h); ok {
		t.Fatalf("second Remove of a free slot should report false")
	}
}

func TestGetInvalid(t *testing.T) {
	var a Arena[int]
	if _, ok := a.Get(Handle(42)); ok {
		t.Fatalf("Get of out-of-range handle should report false")
	}
	if _, ok := a.Get(Invalid()); ok {
		t.Fatalf("Get of the sentinel Invalid() handle should report false")
	}
}

func TestTrailingSlotsTrimmed(t *testing.T) {
	var a Arena[int]
	h0 := a.Insert(0)
	h1 := a.Insert(1)
	_ = h0

	if _, ok := a.Remove(h1); !ok {
		t.Fatalf("Remove(h1) failed")
	}
	// The trailing free slot must have been trimmed, so a fresh insert
	// reuses h1 rather than appending a third slot.
	h2 := a.Insert(2)
	if h2 != h1 {
		t.Fatalf("Insert after trimming trailing free slot = %v, want %v", h2, h1)
	}
}

func TestReplace(t *testing.T) {
	var a Arena[string]
	h := a.Insert("old")
	prev, ok := a.Replace(h, "new")
	if !ok || prev != "old" {
		t.Fatalf("Replace = %q, %v; want \"old\", true", prev, ok)
	}
	v, _ := a.Get(h)
	if v != "new" {
		t.Fatalf("Get after Replace = %q, want \"new\"", v)
	}
	if _, ok := a.Replace(Handle(99), "x"); ok {
		t.Fatalf("Replace of out-of-range handle should report false")
	}
}

func TestAllOrderAndSnapshot(t *testing.T) {
	var a Arena[int]
	a.Insert(10)
	h1 := a.Insert(11)
	a.Insert(12)
	a.Remove(h1)

	all := a.All()
	if len(all) != 2 {
		t.Fatalf("All() len = %d, want 2", len(all))
	}
	if all[0].Value != 10 || all[1].Value != 12 {
		t.Fatalf("All() = %+v, want [10 12] in ascending handle order", all)
	}
}

func BenchmarkInsertRemove(b *testing.B) {
	var a Arena[int]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := a.Insert(i)
		a.Remove(h)
	}
}
