// Package dsu implements the disjoint-set-union (union-find) engine.
//
// State is a parent slice: parent[i] == i marks a representative. Find
// walks the parent chain and then compresses it, pointing every visited
// item straight at the root. Union runs Find on both arguments and attaches
// b's root under a's root; there is no rank or size heuristic.
//
// After Find(x) has compressed the path, a second Find(x) reaches the
// root in at most one hop.
package dsu

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

var (
	// ErrOutOfRange is returned for an item outside [0, universe).
	ErrOutOfRange = errors.New("dsu: item out of range")
	// ErrBadUniverse is returned by New for a non-positive universe.
	ErrBadUniverse = errors.New("dsu: universe must be positive")
)

// DefaultUniverse is the number of singleton items in a new engine.
const DefaultUniverse = 10

// Trace is a sequence of parent-slice snapshots highlighted by item.
type Trace = trace.Trace[[]int, int]

// FindResult is the outcome of a Find: the representative and the visited
// chain, starting at the queried item and ending at Root.
type FindResult struct {
	Root int   `json:"root"`
	Path []int `json:"path"`
}

// Hops is the number of parent links followed.
func (r FindResult) Hops() int { return len(r.Path) - 1 }

// Option configures New.
type Option func(*options)

type options struct {
	universe int
	histSize int
}

// WithUniverse sets the number of items.
func WithUniverse(n int) Option { return func(o *options) { o.universe = n } }

// WithHistoryLimit caps the undo stack (0 = unbounded).
func WithHistoryLimit(n int) Option { return func(o *options) { o.histSize = n } }

// DSU is the union-find engine. It is not safe for concurrent use.
type DSU struct {
	hist *history.History[[]int]
}

// New returns a DSU of singletons.
func New(opts ...Option) (*DSU, error) {
	o := options{universe: DefaultUniverse}
	for _, fn := range opts {
		fn(&o)
	}
	if o.universe <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadUniverse, o.universe)
	}
	parent := make([]int, o.universe)
	for i := range parent {
		parent[i] = i
	}

	return &DSU{hist: history.New(&parent, o.histSize)}, nil
}

// Parents returns a copy of the parent slice.
func (d *DSU) Parents() []int { return slices.Clone(*d.hist.Present()) }

// Len returns the universe size.
func (d *DSU) Len() int { return len(*d.hist.Present()) }

func (d *DSU) check(items ...int) error {
	n := d.Len()
	for _, i := range items {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, n)
		}
	}

	return nil
}

// find walks from i on parent, emitting one step per visited item, then
// compresses parent in place. It reports whether any link changed.
func find(parent []int, i int, rec *trace.Recorder[[]int, int]) (FindResult, bool) {
	snapshot := slices.Clone(parent)
	path := []int{i}
	for cur := i; ; {
		rec.Emit(snapshot, fmt.Sprintf("visit %d", cur), slices.Clone(path)...)
		if parent[cur] == cur {
			break
		}
		cur = parent[cur]
		path = append(path, cur)
	}
	root := path[len(path)-1]

	changed := false
	for _, x := range path {
		if parent[x] != root {
			parent[x] = root
			changed = true
		}
	}

	return FindResult{Root: root, Path: path}, changed
}

// Find returns the representative of i, compressing the visited path.
func (d *DSU) Find(i int) (FindResult, *Trace, error) {
	if err := d.check(i); err != nil {
		return FindResult{}, nil, err
	}
	next := d.Parents()
	rec := trace.NewRecorder[[]int, int]()
	res, changed := find(next, i, rec)
	if changed {
		d.hist.Set(&next)
	} else {
		next = *d.hist.Present()
	}
	rec.EmitResult(next, fmt.Sprintf("root of %d is %d", i, res.Root), res, res.Root)

	return res, rec.Trace(), nil
}

// Union merges the sets of a and b; b's root is attached under a's root.
// It reports whether the sets were distinct. The two finds and the link are
// one history entry.
func (d *DSU) Union(a, b int) (bool, *Trace, error) {
	if err := d.check(a, b); err != nil {
		return false, nil, err
	}
	next := d.Parents()
	rec := trace.NewRecorder[[]int, int]()
	ra, c1 := find(next, a, rec)
	rb, c2 := find(next, b, rec)

	merged := ra.Root != rb.Root
	if merged {
		next[rb.Root] = ra.Root
	}
	if merged || c1 || c2 {
		d.hist.Set(&next)
	} else {
		next = *d.hist.Present()
	}

	note := fmt.Sprintf("%d and %d already joined under %d", a, b, ra.Root)
	if merged {
		note = fmt.Sprintf("attach %d under %d", rb.Root, ra.Root)
	}
	rec.EmitResult(next, note, merged, ra.Root, rb.Root)

	return merged, rec.Trace(), nil
}

// Groups partitions items by representative. Groups are ordered by their
// smallest item and each group is ascending.
func (d *DSU) Groups() [][]int {
	parent := *d.hist.Present()
	byRoot := map[int][]int{}
	for i := range parent {
		r := i
		for parent[r] != r {
			r = parent[r]
		}
		byRoot[r] = append(byRoot[r], i)
	}
	out := make([][]int, 0, len(byRoot))
	for _, g := range byRoot {
		out = append(out, g)
	}
	slices.SortFunc(out, func(x, y []int) int { return cmp.Compare(x[0], y[0]) })

	return out
}

// Undo reverts the last mutation.
func (d *DSU) Undo() bool { return d.hist.Undo() }

// Redo re-applies the last undone mutation.
func (d *DSU) Redo() bool { return d.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (d *DSU) CanUndo() bool { return d.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (d *DSU) CanRedo() bool { return d.hist.CanRedo() }
