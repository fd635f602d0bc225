package linear

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/structviz/history"
)

// Array is a fixed-order sequence with indexed update and append.
type Array struct {
	hist *history.History[[]int]
}

// NewArray returns an Array seeded with DefaultArray unless WithValues is given.
func NewArray(opts ...Option) *Array {
	o := buildOptions(DefaultArray, opts)
	return &Array{hist: history.New(&o.seed, o.histSize)}
}

// Values returns a copy of the current contents.
func (a *Array) Values() []int { return slices.Clone(*a.hist.Present()) }

// Len returns the number of elements.
func (a *Array) Len() int { return len(*a.hist.Present()) }

// Update overwrites the element at index.
func (a *Array) Update(index, value int) (*SeqTrace, error) {
	cur := *a.hist.Present()
	if index < 0 || index >= len(cur) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(cur))
	}
	next := slices.Clone(cur)
	next[index] = value
	a.hist.Set(&next)

	return single(next, fmt.Sprintf("set [%d] = %d", index, value), index), nil
}

// Append adds value at the end.
func (a *Array) Append(value int) *SeqTrace {
	next := append(slices.Clone(*a.hist.Present()), value)
	a.hist.Set(&next)

	return single(next, fmt.Sprintf("append %d", value), len(next)-1)
}

// Undo reverts the last mutation.
func (a *Array) Undo() bool { return a.hist.Undo() }

// Redo re-applies the last undone mutation.
func (a *Array) Redo() bool { return a.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (a *Array) CanUndo() bool { return a.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (a *Array) CanRedo() bool { return a.hist.CanRedo() }
