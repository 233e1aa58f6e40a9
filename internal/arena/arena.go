// Package arena implements a slot arena with stable, reusable integer
// handles, the storage backbone for the tree in internal/treecore.
// Insertion reuses the lowest free slot, removal frees it, and trailing
// free slots are trimmed so a long-lived session doesn't grow unbounded
// after heavy fold/unfold churn.
package arena

// Handle is an opaque, stable identifier for a value stored in an Arena.
// Equality is identity: two Handles are the same slot iff they compare
// equal. A Handle is only valid for the Arena that produced it, and only
// until that slot is removed; once freed, the integer may be reissued to
// an unrelated value.
type Handle int

// invalidHandle is never issued by Insert; it is useful as a zero value
// for callers that need a sentinel before any node exists.
const invalidHandle Handle = -1

// Invalid returns the sentinel Handle that no Insert call ever produces.
func Invalid() Handle { return invalidHandle }

// Arena is a slot arena over values of type T. The zero value is an empty,
// ready-to-use Arena.
type Arena[T any] struct {
	slots     []*T
	freeSlots int
}

// Insert stores it in the lowest-numbered free slot, or appends a new slot
// if none is free, and returns the Handle for that slot.
func (a *Arena[T]) Insert(it T) Handle {
	if a.freeSlots > 0 {
		for i, s := range a.slots {
			if s == nil {
				v := it
				a.slots[i] = &v
				a.freeSlots--
				return Handle(i)
			}
		}
	}
	v := it
	a.slots = append(a.slots, &v)
	return Handle(len(a.slots) - 1)
}

// Remove frees the slot at h and returns the value that was there, or the
// zero value and false if h was already free or out of range. Trailing
// free slots are trimmed so repeated insert/remove at the tail doesn't
// grow the backing slice.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	if !a.valid(h) {
		return zero, false
	}
	v := a.slots[h]
	if v == nil {
		return zero, false
	}
	a.slots[h] = nil
	a.freeSlots++
	for len(a.slots) > 0 && a.slots[len(a.slots)-1] == nil {
		a.slots = a.slots[:len(a.slots)-1]
		a.freeSlots--
	}
	return *v, true
}

// Replace stores it at h, returning the previous value and true, or the
// zero value and false if h was free or out of range (in which case
// nothing is stored).
func (a *Arena[T]) Replace(h Handle, it T) (T, bool) {
	var zero T
	if !a.valid(h) || a.slots[h] == nil {
		return zero, false
	}
	prev := *a.slots[h]
	v := it
	a.slots[h] = &v
	return prev, true
}

// Get returns the value at h, or the zero value and false if the slot is
// free or out of range.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	var zero T
	if !a.valid(h) || a.slots[h] == nil {
		return zero, false
	}
	return *a.slots[h], true
}

// GetPtr returns a pointer to the live value at h for in-place mutation,
// or nil if the slot is free or out of range. The pointer is invalidated
// by any subsequent Remove of the same handle.
func (a *Arena[T]) GetPtr(h Handle) *T {
	if !a.valid(h) {
		return nil
	}
	return a.slots[h]
}

func (a *Arena[T]) valid(h Handle) bool {
	return h >= 0 && int(h) < len(a.slots)
}

// Len returns the number of live (non-removed) entries.
func (a *Arena[T]) Len() int {
	return len(a.slots) - a.freeSlots
}

// Entry pairs a Handle with the value currently stored there, yielded by
// All in ascending handle order.
type Entry[T any] struct {
	Handle Handle
	Value  T
}

// All returns every live entry, in ascending handle order. The returned
// slice is a snapshot; subsequent Insert/Remove calls don't affect it.
func (a *Arena[T]) All() []Entry[T] {
	out := make([]Entry[T], 0, a.Len())
	for i, s := range a.slots {
		if s != nil {
			out = append(out, Entry[T]{Handle: Handle(i), Value: *s})
		}
	}
	return out
}
