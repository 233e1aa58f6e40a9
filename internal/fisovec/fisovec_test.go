package fisovec

import (
	"reflect"
	"testing"
)

type intAsc struct{ keepEven bool }

func (s intAsc) Compare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (s intAsc) Keep(a int) bool {
	if !s.keepEven {
		return true
	}
	return a%2 == 0
}

func TestRebuildFiltersAndSorts(t *testing.T) {
	o := New([]int{5, 3, 1, 4, 2}, intAsc{})
	if got := o.Slice(); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("Slice() = %v, want sorted ascending", got)
	}
}

func TestKeepFilters(t *testing.T) {
	o := New([]int{5, 3, 1, 4, 2}, intAsc{keepEven: true})
	if got := o.Slice(); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Fatalf("Slice() = %v, want only evens sorted", got)
	}
}

func TestRebuildIdempotent(t *testing.T) {
	o := New([]int{3, 1, 2}, intAsc{})
	first := o.Slice()
	o.Rebuild(intAsc{})
	second := o.Slice()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Rebuild without mutation changed order: %v != %v", first, second)
	}
}

func TestIndexOf(t *testing.T) {
	o := New([]int{30, 10, 20}, intAsc{})
	// underlying[1] == 10, which sorts to overlay position 0.
	if got := o.IndexOf(1); got != 0 {
		t.Fatalf("IndexOf(1) = %d, want 0", got)
	}
	if got := o.IndexOf(99); got != -1 {
		t.Fatalf("IndexOf(99) = %d, want -1 for an index outside the underlying slice", got)
	}
}

func TestMutateThenRebuild(t *testing.T) {
	o := New([]int{2, 1}, intAsc{})
	o.SetUnderlying(append(o.Underlying(), 0))
	o.Rebuild(intAsc{})
	if got := o.Slice(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("Slice() after mutate+Rebuild = %v, want [0 1 2]", got)
	}
}

func BenchmarkRebuild(b *testing.B) {
	data := make([]int, 1000)
	for i := range data {
		data[i] = len(data) - i
	}
	o := New(data, intAsc{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		o.Rebuild(intAsc{})
	}
}
