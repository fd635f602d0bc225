// Package segtree implements the iterative range-sum segment tree engine.
//
// For a source of length N the tree is a slice of length 2N: leaves live at
// [N, 2N) and internal node i covers children 2i and 2i+1, so
// tree[i] == tree[2i] + tree[2i+1] for every 1 <= i < N. Index 0 is unused.
//
// Update rewrites one leaf and recomputes only its ancestors, O(log N).
// Query walks the two boundaries upwards, O(log N).
package segtree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

var (
	// ErrIndexOutOfRange is returned by Update for an index outside [0, N).
	ErrIndexOutOfRange = errors.New("segtree: index out of range")
	// ErrBadRange is returned by Query unless 0 <= l <= r < N.
	ErrBadRange = errors.New("segtree: invalid range")
	// ErrEmptySource is returned by Build for an empty source.
	ErrEmptySource = errors.New("segtree: empty source")
)

// DefaultSource is the seed used when WithSource is not given.
var DefaultSource = []int{1, 3, 5, 7, 9, 11}

// State is one snapshot: the source values and the tree built over them.
type State struct {
	Source []int `json:"source"`
	Tree   []int `json:"tree"`
}

func (s *State) clone() *State {
	return &State{Source: slices.Clone(s.Source), Tree: slices.Clone(s.Tree)}
}

// Trace is a sequence of snapshots highlighted by tree index.
type Trace = trace.Trace[*State, int]

// Build returns the tree slice for source.
func Build(source []int) []int {
	n := len(source)
	tree := make([]int, 2*n)
	copy(tree[n:], source)
	for i := n - 1; i > 0; i-- {
		tree[i] = tree[2*i] + tree[2*i+1]
	}

	return tree
}

// Option configures New.
type Option func(*options)

type options struct {
	source   []int
	histSize int
}

// WithSource replaces DefaultSource.
func WithSource(values ...int) Option {
	return func(o *options) { o.source = slices.Clone(values) }
}

// WithHistoryLimit caps the undo stack (0 = unbounded).
func WithHistoryLimit(n int) Option { return func(o *options) { o.histSize = n } }

// Tree is the segment tree engine. It is not safe for concurrent use.
type Tree struct {
	hist *history.History[State]
}

// New builds a tree over DefaultSource unless WithSource is given.
func New(opts ...Option) (*Tree, error) {
	o := options{source: slices.Clone(DefaultSource)}
	for _, fn := range opts {
		fn(&o)
	}
	if len(o.source) == 0 {
		return nil, ErrEmptySource
	}

	return &Tree{hist: history.New(&State{Source: o.source, Tree: Build(o.source)}, o.histSize)}, nil
}

// State returns the current snapshot. It must not be mutated.
func (t *Tree) State() *State { return t.hist.Present() }

// Len returns N.
func (t *Tree) Len() int { return len(t.State().Source) }

// Rebuild replaces the source and rebuilds the whole tree.
func (t *Tree) Rebuild(source []int) (*Trace, error) {
	if len(source) == 0 {
		return nil, ErrEmptySource
	}
	next := &State{Source: slices.Clone(source), Tree: Build(source)}
	t.hist.Set(next)

	rec := trace.NewRecorder[*State, int]()
	rec.Emit(next, fmt.Sprintf("built over %d values", len(source)), 1)

	return rec.Trace(), nil
}

// Update sets source[index] = value and recomputes the leaf's ancestors.
// Each recomputed node is a step; the highlight accumulates the path.
func (t *Tree) Update(index, value int) (*Trace, error) {
	cur := t.State()
	n := len(cur.Source)
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, n)
	}
	next := cur.clone()
	next.Source[index] = value
	i := n + index
	next.Tree[i] = value

	rec := trace.NewRecorder[*State, int]()
	path := []int{i}
	rec.Emit(next.clone(), fmt.Sprintf("leaf %d = %d", i, value), path...)
	for i > 1 {
		i /= 2
		next.Tree[i] = next.Tree[2*i] + next.Tree[2*i+1]
		path = append(path, i)
		rec.Emit(next.clone(), fmt.Sprintf("node %d = %d", i, next.Tree[i]), slices.Clone(path)...)
	}
	t.hist.Set(next)

	return rec.Trace(), nil
}

// Query returns the sum of source[l..r] inclusive. Every tree index added
// to the sum is a step; the last step's Result is the sum.
func (t *Tree) Query(l, r int) (int, *Trace, error) {
	s := t.State()
	n := len(s.Source)
	if l < 0 || r >= n || l > r {
		return 0, nil, fmt.Errorf("%w: [%d,%d] with N=%d", ErrBadRange, l, r, n)
	}

	rec := trace.NewRecorder[*State, int]()
	var visited []int
	sum := 0
	add := func(i int) {
		sum += s.Tree[i]
		visited = append(visited, i)
		rec.Emit(s, fmt.Sprintf("add tree[%d] = %d, sum %d", i, s.Tree[i], sum), slices.Clone(visited)...)
	}
	for l, r = l+n, r+n; l <= r; l, r = l/2, r/2 {
		if l%2 == 1 {
			add(l)
			l++
		}
		if r%2 == 0 {
			add(r)
			r--
		}
	}
	rec.EmitResult(s, fmt.Sprintf("sum = %d", sum), sum, visited...)

	return sum, rec.Trace(), nil
}

// Undo reverts the last mutation.
func (t *Tree) Undo() bool { return t.hist.Undo() }

// Redo re-applies the last undone mutation.
func (t *Tree) Redo() bool { return t.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (t *Tree) CanUndo() bool { return t.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (t *Tree) CanRedo() bool { return t.hist.CanRedo() }
