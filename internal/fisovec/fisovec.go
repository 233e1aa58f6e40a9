// Package fisovec implements FilterSortOverlay: a filtered, sorted
// permutation view over an ordered container that never mutates the
// container itself. The underlying slice stays in insertion order; a
// parallel index permutation, rebuilt from a FilterSorter strategy, gives
// the filtered/sorted view.
package fisovec

import "sort"

// FilterSorter orders and filters values of type T. Compare need not be a
// total order: ties or undefined pairs are permitted to land in any
// relative order, and that order need not match insertion order, only be
// fixed for the duration of one Rebuild call (Rebuild uses sort.Slice,
// an unstable sort, for exactly this reason).
type FilterSorter[T any] interface {
	// Compare reports whether a sorts before, with, or after b.
	Compare(a, b T) int
	// Keep reports whether a belongs in the filtered view at all.
	Keep(a T) bool
}

// Overlay holds the underlying slice in insertion order plus the current
// filtered/sorted permutation over it.
type Overlay[T any] struct {
	underlying []T
	indices    []int
}

// New builds an Overlay over underlying, already filtered and sorted by
// with. The overlay retains underlying by reference semantics of the
// slice header only; callers that mutate underlying in place must call
// Rebuild afterwards.
func New[T any](underlying []T, with FilterSorter[T]) *Overlay[T] {
	o := &Overlay[T]{underlying: underlying}
	o.Rebuild(with)
	return o
}

// Rebuild recomputes the retained, sorted index permutation. It must be
// called after any bulk mutation of the slice returned by Underlying, and
// after any change to the FilterSorter's behavior (e.g. toggling a
// provider-specific option) that should be reflected on the next indexed
// read.
func (o *Overlay[T]) Rebuild(with FilterSorter[T]) {
	indices := make([]int, 0, len(o.underlying))
	for i, v := range o.underlying {
		if with.Keep(v) {
			indices = append(indices, i)
		}
	}
	// sort.Slice is not guaranteed stable: ties may land in any relative
	// order, but that order is fixed for this one Rebuild call.
	sort.Slice(indices, func(i, j int) bool {
		return with.Compare(o.underlying[indices[i]], o.underlying[indices[j]]) < 0
	})
	o.indices = indices
}

// Len returns the number of retained (post-filter) elements.
func (o *Overlay[T]) Len() int {
	return len(o.indices)
}

// At returns the element at overlay position i (0 <= i < Len()).
func (o *Overlay[T]) At(i int) T {
	return o.underlying[o.indices[i]]
}

// IndexOf returns the overlay position of the underlying-slice index k,
// or -1 if k isn't retained under the current filter.
func (o *Overlay[T]) IndexOf(k int) int {
	for i, idx := range o.indices {
		if idx == k {
			return i
		}
	}
	return -1
}

// Slice returns the overlay-ordered elements as a freshly allocated slice.
func (o *Overlay[T]) Slice() []T {
	out := make([]T, len(o.indices))
	for i, idx := range o.indices {
		out[i] = o.underlying[idx]
	}
	return out
}

// Underlying returns the backing slice in insertion order, for bulk
// mutation (e.g. appending newly-provided children). Rebuild must be
// called before the next indexed read after any such mutation.
func (o *Overlay[T]) Underlying() []T {
	return o.underlying
}

// SetUnderlying replaces the backing slice wholesale (e.g. once a node's
// children have just been provided for the first time) without rebuilding;
// call Rebuild afterwards.
func (o *Overlay[T]) SetUnderlying(underlying []T) {
	o.underlying = underlying
}
