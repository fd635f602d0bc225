// Package heap implements the binary min-heap engine on a slice.
//
// Parent of i is (i-1)/2; children are 2i+1 and 2i+2. After every
// operation heap[i] >= heap[parent(i)] for all i > 0.
//
// Insert appends and sifts up; ExtractMin moves the last element to the
// root and sifts down. Every swap is a trace step carrying a copy of the
// slice at that moment with the two swapped indices highlighted.
package heap

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

// ErrEmpty is returned by ExtractMin and Peek on an empty heap.
var ErrEmpty = errors.New("heap: empty")

// DefaultValues is the seed used when WithValues is not given. It already
// satisfies the heap property.
var DefaultValues = []int{4, 10, 8, 20, 15, 12, 9}

// Trace is a sequence of heap snapshots highlighted by index.
type Trace = trace.Trace[[]int, int]

// Option configures New.
type Option func(*options)

type options struct {
	seed     []int
	seeded   bool
	histSize int
}

// WithValues seeds the heap; the values are heapified.
func WithValues(values ...int) Option {
	return func(o *options) {
		o.seed = append([]int(nil), values...)
		o.seeded = true
	}
}

// WithHistoryLimit caps the undo stack (0 = unbounded).
func WithHistoryLimit(n int) Option { return func(o *options) { o.histSize = n } }

// Heap is the min-heap engine. It is not safe for concurrent use.
type Heap struct {
	hist *history.History[[]int]
}

// New returns a heap seeded with DefaultValues unless WithValues is given.
func New(opts ...Option) *Heap {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if !o.seeded {
		o.seed = slices.Clone(DefaultValues)
	}
	for i := len(o.seed)/2 - 1; i >= 0; i-- {
		siftDown(o.seed, i, nil)
	}

	return &Heap{hist: history.New(&o.seed, o.histSize)}
}

// Values returns a copy of the backing slice.
func (h *Heap) Values() []int { return slices.Clone(*h.hist.Present()) }

// Len returns the number of elements.
func (h *Heap) Len() int { return len(*h.hist.Present()) }

// Peek returns the minimum without removing it.
func (h *Heap) Peek() (int, error) {
	cur := *h.hist.Present()
	if len(cur) == 0 {
		return 0, ErrEmpty
	}

	return cur[0], nil
}

func parent(i int) int { return (i - 1) / 2 }

// Insert appends value and restores the heap property.
func (h *Heap) Insert(value int) *Trace {
	next := append(slices.Clone(*h.hist.Present()), value)
	rec := trace.NewRecorder[[]int, int]()
	rec.Emit(slices.Clone(next), fmt.Sprintf("append %d", value), len(next)-1)

	i := len(next) - 1
	for i > 0 && next[i] < next[parent(i)] {
		p := parent(i)
		next[i], next[p] = next[p], next[i]
		rec.Emit(slices.Clone(next), fmt.Sprintf("swap %d and %d", next[p], next[i]), i, p)
		i = p
	}
	h.hist.Set(&next)
	rec.Emit(next, fmt.Sprintf("%d settled at index %d", value, i), i)

	return rec.Trace()
}

// ExtractMin removes and returns the minimum.
func (h *Heap) ExtractMin() (int, *Trace, error) {
	cur := *h.hist.Present()
	if len(cur) == 0 {
		return 0, nil, ErrEmpty
	}
	rec := trace.NewRecorder[[]int, int]()
	next := slices.Clone(cur)
	last := len(next) - 1
	top := next[0]
	next[0], next[last] = next[last], next[0]
	rec.Emit(slices.Clone(next), fmt.Sprintf("swap root %d with last %d", top, next[0]), 0, last)
	next = next[:last]
	rec.Emit(slices.Clone(next), fmt.Sprintf("remove %d", top))

	siftDown(next, 0, rec)
	h.hist.Set(&next)
	rec.EmitResult(next, fmt.Sprintf("extracted %d", top), top)

	return top, rec.Trace(), nil
}

// siftDown moves a[i] down until neither child is smaller. rec may be nil.
func siftDown(a []int, i int, rec *trace.Recorder[[]int, int]) {
	for {
		smallest := i
		l, r := 2*i+1, 2*i+2
		if l < len(a) && a[l] < a[smallest] {
			smallest = l
		}
		if r < len(a) && a[r] < a[smallest] {
			smallest = r
		}
		if smallest == i {
			return
		}
		a[i], a[smallest] = a[smallest], a[i]
		if rec != nil {
			rec.Emit(slices.Clone(a), fmt.Sprintf("swap %d and %d", a[i], a[smallest]), i, smallest)
		}
		i = smallest
	}
}

// Undo reverts the last mutation.
func (h *Heap) Undo() bool { return h.hist.Undo() }

// Redo re-applies the last undone mutation.
func (h *Heap) Redo() bool { return h.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (h *Heap) CanUndo() bool { return h.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (h *Heap) CanRedo() bool { return h.hist.CanRedo() }
