// Package history keeps undo/redo stacks of whole-value snapshots for one
// structure engine.
//
// Values are held by pointer and compared by identity: Set with the pointer
// that is already present is a no-op, so engines must build a new value for
// every mutation they want recorded. Engines treat stored values as
// immutable, which lets snapshots share unmodified parts (for example the
// untouched subtrees of a path-copied BST).
//
// The undo stack may be bounded; once full, the oldest entry is dropped.
package history

// History is an undo/redo log over *T values.
// It is not safe for concurrent use.
type History[T any] struct {
	past    []*T
	present *T
	future  []*T
	limit   int
}

// New returns a History whose present value is initial. limit caps the
// number of undo entries; zero or negative means unbounded.
func New[T any](initial *T, limit int) *History[T] {
	return &History[T]{present: initial, limit: limit}
}

// Present returns the current value.
func (h *History[T]) Present() *T { return h.present }

// Set makes next the present value, pushing the previous present onto the
// undo stack and clearing the redo stack. It reports whether an entry was
// recorded; next identical to the present value records nothing.
func (h *History[T]) Set(next *T) bool {
	if next == h.present {
		return false
	}
	h.past = append(h.past, h.present)
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.present = next
	h.future = nil

	return true
}

// Undo restores the previous value. It reports false when there is nothing
// to undo.
func (h *History[T]) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, h.present)
	h.present = prev

	return true
}

// Redo re-applies the most recently undone value.
func (h *History[T]) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, h.present)
	h.present = next

	return true
}

// Reset replaces the present value and forgets both stacks.
func (h *History[T]) Reset(value *T) {
	h.past, h.future = nil, nil
	h.present = value
}

// CanUndo reports whether Undo would change the present value.
func (h *History[T]) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether Redo would change the present value.
func (h *History[T]) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History[T]) Depth() (undo, redo int) { return len(h.past), len(h.future) }
