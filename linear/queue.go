package linear

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/structviz/history"
)

// Queue is a FIFO container; the front is the first element of Values.
type Queue struct {
	hist *history.History[[]int]
}

// NewQueue returns a Queue seeded with DefaultQueue unless WithValues is given.
func NewQueue(opts ...Option) *Queue {
	o := buildOptions(DefaultQueue, opts)
	return &Queue{hist: history.New(&o.seed, o.histSize)}
}

// Values returns a copy of the contents, front first.
func (q *Queue) Values() []int { return slices.Clone(*q.hist.Present()) }

// Len returns the number of elements.
func (q *Queue) Len() int { return len(*q.hist.Present()) }

// Enqueue appends value at the rear.
func (q *Queue) Enqueue(value int) *SeqTrace {
	next := append(slices.Clone(*q.hist.Present()), value)
	q.hist.Set(&next)

	return single(next, fmt.Sprintf("enqueue %d", value), len(next)-1)
}

// Dequeue removes and returns the front element.
func (q *Queue) Dequeue() (int, *SeqTrace, error) {
	cur := *q.hist.Present()
	if len(cur) == 0 {
		return 0, nil, ErrEmpty
	}
	front := cur[0]
	next := slices.Clone(cur[1:])
	q.hist.Set(&next)

	return front, single(cur, fmt.Sprintf("dequeue %d", front), 0), nil
}

// Peek returns the front element without removing it.
func (q *Queue) Peek() (int, *SeqTrace, error) {
	cur := *q.hist.Present()
	if len(cur) == 0 {
		return 0, nil, ErrEmpty
	}

	return cur[0], single(cur, fmt.Sprintf("peek %d", cur[0]), 0), nil
}

// Undo reverts the last mutation.
func (q *Queue) Undo() bool { return q.hist.Undo() }

// Redo re-applies the last undone mutation.
func (q *Queue) Redo() bool { return q.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (q *Queue) CanUndo() bool { return q.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (q *Queue) CanRedo() bool { return q.hist.CanRedo() }
