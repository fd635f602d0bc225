package linear

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/structviz/history"
)

// Stack is a LIFO container; the top is the last element of Values.
type Stack struct {
	hist *history.History[[]int]
}

// NewStack returns a Stack seeded with DefaultStack unless WithValues is given.
func NewStack(opts ...Option) *Stack {
	o := buildOptions(DefaultStack, opts)
	return &Stack{hist: history.New(&o.seed, o.histSize)}
}

// Values returns a copy of the contents, bottom first.
func (s *Stack) Values() []int { return slices.Clone(*s.hist.Present()) }

// Len returns the number of elements.
func (s *Stack) Len() int { return len(*s.hist.Present()) }

// Push places value on top.
func (s *Stack) Push(value int) *SeqTrace {
	next := append(slices.Clone(*s.hist.Present()), value)
	s.hist.Set(&next)

	return single(next, fmt.Sprintf("push %d", value), len(next)-1)
}

// Pop removes and returns the top element.
func (s *Stack) Pop() (int, *SeqTrace, error) {
	cur := *s.hist.Present()
	if len(cur) == 0 {
		return 0, nil, ErrEmpty
	}
	top := cur[len(cur)-1]
	next := slices.Clone(cur[:len(cur)-1])
	s.hist.Set(&next)

	rec := single(cur, fmt.Sprintf("pop %d", top), len(cur)-1)

	return top, rec, nil
}

// Peek returns the top element without removing it.
func (s *Stack) Peek() (int, *SeqTrace, error) {
	cur := *s.hist.Present()
	if len(cur) == 0 {
		return 0, nil, ErrEmpty
	}
	top := cur[len(cur)-1]

	return top, single(cur, fmt.Sprintf("peek %d", top), len(cur)-1), nil
}

// Undo reverts the last mutation.
func (s *Stack) Undo() bool { return s.hist.Undo() }

// Redo re-applies the last undone mutation.
func (s *Stack) Redo() bool { return s.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (s *Stack) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (s *Stack) CanRedo() bool { return s.hist.CanRedo() }
