package linear

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

// ListNode is one element of a LinkedList. IDs are unique within the list's
// engine and never reused.
type ListNode struct {
	ID    int `json:"id"`
	Value int `json:"value"`
}

// ListTrace highlights node ids.
type ListTrace = trace.Trace[[]ListNode, int]

// LinkedList is an ordered sequence of id-tagged nodes.
type LinkedList struct {
	hist   *history.History[[]ListNode]
	nextID int
}

// NewLinkedList returns a list seeded with DefaultLinked (ids 1..n) unless
// WithValues is given.
func NewLinkedList(opts ...Option) *LinkedList {
	o := buildOptions(DefaultLinked, opts)
	l := &LinkedList{nextID: 1}
	nodes := make([]ListNode, 0, len(o.seed))
	for _, v := range o.seed {
		nodes = append(nodes, ListNode{ID: l.nextID, Value: v})
		l.nextID++
	}
	l.hist = history.New(&nodes, o.histSize)

	return l
}

// Nodes returns a copy of the nodes in order.
func (l *LinkedList) Nodes() []ListNode { return slices.Clone(*l.hist.Present()) }

// Append adds a node carrying value at the tail and returns its id.
func (l *LinkedList) Append(value int) (int, *ListTrace) {
	id := l.nextID
	l.nextID++
	next := append(slices.Clone(*l.hist.Present()), ListNode{ID: id, Value: value})
	l.hist.Set(&next)

	rec := trace.NewRecorder[[]ListNode, int]()
	rec.Emit(next, fmt.Sprintf("append %d (#%d)", value, id), id)

	return id, rec.Trace()
}

// Remove deletes the node with the given id.
func (l *LinkedList) Remove(id int) (*ListTrace, error) {
	cur := *l.hist.Present()
	idx := slices.IndexFunc(cur, func(n ListNode) bool { return n.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("%w: #%d", ErrNodeNotFound, id)
	}
	next := slices.Delete(slices.Clone(cur), idx, idx+1)
	l.hist.Set(&next)

	rec := trace.NewRecorder[[]ListNode, int]()
	rec.Emit(cur, fmt.Sprintf("unlink #%d", id), id)
	rec.Emit(next, fmt.Sprintf("removed #%d", id))

	return rec.Trace(), nil
}

// Undo reverts the last mutation.
func (l *LinkedList) Undo() bool { return l.hist.Undo() }

// Redo re-applies the last undone mutation.
func (l *LinkedList) Redo() bool { return l.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (l *LinkedList) CanUndo() bool { return l.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (l *LinkedList) CanRedo() bool { return l.hist.CanRedo() }
