package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/structviz/avl"
	"github.com/katalvlaran/structviz/bintree"
	"github.com/katalvlaran/structviz/bst"
	"github.com/katalvlaran/structviz/config"
	"github.com/katalvlaran/structviz/dsu"
	"github.com/katalvlaran/structviz/graph"
	"github.com/katalvlaran/structviz/hashtable"
	"github.com/katalvlaran/structviz/heap"
	"github.com/katalvlaran/structviz/linear"
	"github.com/katalvlaran/structviz/segtree"
	"github.com/katalvlaran/structviz/trace"
	"github.com/katalvlaran/structviz/tree"
	"github.com/katalvlaran/structviz/trie"
)

// historian is the undo/redo surface every engine shares.
type historian interface {
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
}

type runFunc func(ctx context.Context, a args) ([]Frame, any, error)

type opEntry struct {
	Op
	run runFunc
}

// engine adapts one structure to string intents.
type engine struct {
	info  Info
	ops   map[string]opEntry
	view  func() (state, derived any)
	hist  historian
	pacer trace.Pacer
}

func (e *engine) add(name string, argNames []string, run runFunc) {
	e.ops[name] = opEntry{Op: Op{Name: name, Args: argNames}, run: run}
	e.info.Ops = append(e.info.Ops, Op{Name: name, Args: argNames})
}

func (e *engine) addVariadic(name, argName string, run runFunc) {
	op := Op{Name: name, Args: []string{argName}, Variadic: true}
	e.ops[name] = opEntry{Op: op, run: run}
	e.info.Ops = append(e.info.Ops, op)
}

func (e *engine) lookup(name string, a args) (opEntry, error) {
	entry, ok := e.ops[strings.ToLower(name)]
	if !ok {
		return opEntry{}, fmt.Errorf("%w: %s has no %q", ErrUnknownOp, e.info.ID, name)
	}
	switch {
	case entry.Variadic && len(a) < len(entry.Args):
		return opEntry{}, fmt.Errorf("%w: %s needs at least %d argument(s)", ErrBadArgs, name, len(entry.Args))
	case !entry.Variadic && len(a) != len(entry.Args):
		return opEntry{}, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrBadArgs, name, len(entry.Args), len(a))
	}

	return entry, nil
}

// args are the raw intent arguments.
type args []string

func (a args) num(i int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(a[i]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrBadArgs, a[i])
	}

	return v, nil
}

func (a args) ints() ([]int, error) {
	out := make([]int, len(a))
	for i := range a {
		v, err := a.num(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func (a args) str(i int) string { return strings.TrimSpace(a[i]) }

// framesOf converts a typed trace into display frames.
func framesOf[S any, K comparable](tr *trace.Trace[S, K]) []Frame {
	var out []Frame
	for s := range tr.All() {
		hl := make([]string, len(s.Highlight))
		for i, k := range s.Highlight {
			hl[i] = fmt.Sprint(k)
		}
		out = append(out, Frame{State: s.State, Highlight: hl, Note: s.Note, Result: s.Result})
	}

	return out
}

// settlePacer waits step between frames and settle after the last one.
func settlePacer(step, settle time.Duration) trace.Pacer {
	return trace.PacerFunc(func(i, total int) time.Duration {
		if i == total-1 {
			return settle
		}

		return step
	})
}

var names = map[Structure]string{
	Array:       "Array",
	Stack:       "Stack",
	Queue:       "Queue",
	LinkedList:  "Linked List",
	HashTable:   "Hash Table",
	Tree:        "Tree",
	BinaryTree:  "Binary Tree",
	BST:         "Binary Search Tree",
	AVL:         "AVL Tree",
	Heap:        "Heap",
	Trie:        "Trie",
	DSU:         "Disjoint Set Union",
	SegmentTree: "Segment Tree",
	Graph:       "Graph",
}

// order fixes the listing order of Structures.
var order = []Structure{
	Array, Stack, Queue, LinkedList, HashTable, Tree, BinaryTree,
	BST, AVL, Heap, Trie, DSU, SegmentTree, Graph,
}

func newEngine(id Structure, cfg *config.Config) (*engine, error) {
	anim := cfg.Animation
	e := &engine{
		info:  Info{ID: id, Name: names[id]},
		ops:   map[string]opEntry{},
		pacer: settlePacer(anim.StepDelay, anim.SettleDelay),
	}
	limit := cfg.History.MaxEntries

	switch id {
	case Array:
		wireArray(e, linear.NewArray(linear.WithHistoryLimit(limit)))
	case Stack:
		wireStack(e, linear.NewStack(linear.WithHistoryLimit(limit)))
	case Queue:
		wireQueue(e, linear.NewQueue(linear.WithHistoryLimit(limit)))
	case LinkedList:
		wireLinkedList(e, linear.NewLinkedList(linear.WithHistoryLimit(limit)))
	case HashTable:
		t, err := hashtable.New(hashtable.WithSize(cfg.HashTable.Size), hashtable.WithHistoryLimit(limit))
		if err != nil {
			return nil, err
		}
		wireHashTable(e, t)
	case Tree:
		wireTree(e, tree.New(tree.WithHistoryLimit(limit)))
	case BinaryTree:
		wireBinaryTree(e, bintree.NewTree(bintree.WithHistoryLimit(limit)))
	case BST:
		wireBST(e, bst.New(bintree.WithHistoryLimit(limit)))
	case AVL:
		wireAVL(e, avl.New(bintree.WithHistoryLimit(limit)))
	case Heap:
		e.pacer = settlePacer(anim.SwapDelay, anim.SettleDelay)
		wireHeap(e, heap.New(heap.WithHistoryLimit(limit)))
	case Trie:
		e.pacer = settlePacer(anim.TrieDelay, anim.SettleDelay)
		wireTrie(e, trie.New(trie.WithHistoryLimit(limit)))
	case DSU:
		d, err := dsu.New(dsu.WithUniverse(cfg.DSU.Universe), dsu.WithHistoryLimit(limit))
		if err != nil {
			return nil, err
		}
		e.pacer = trace.PerStepPacer(anim.DSUHopDelay)
		wireDSU(e, d)
	case SegmentTree:
		st, err := segtree.New(segtree.WithHistoryLimit(limit))
		if err != nil {
			return nil, err
		}
		wireSegTree(e, st)
	case Graph:
		wireGraph(e, graph.New(limit))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStructure, id)
	}

	return e, nil
}

func wireArray(e *engine, arr *linear.Array) {
	e.hist = arr
	e.view = func() (any, any) { return arr.Values(), nil }
	e.add("update", []string{"index", "value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		idx, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		v, err := a.num(1)
		if err != nil {
			return nil, nil, err
		}
		tr, err := arr.Update(idx, v)

		return framesOf(tr), nil, err
	})
	e.add("append", []string{"value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		v, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}

		return framesOf(arr.Append(v)), nil, nil
	})
}

func wireStack(e *engine, s *linear.Stack) {
	e.hist = s
	e.view = func() (any, any) { return s.Values(), nil }
	e.add("push", []string{"value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		v, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}

		return framesOf(s.Push(v)), nil, nil
	})
	e.add("pop", nil, func(context.Context, args) ([]Frame, any, error) {
		v, tr, err := s.Pop()
		return framesOf(tr), v, err
	})
	e.add("peek", nil, func(context.Context, args) ([]Frame, any, error) {
		v, tr, err := s.Peek()
		return framesOf(tr), v, err
	})
}

func wireQueue(e *engine, q *linear.Queue) {
	e.hist = q
	e.view = func() (any, any) { return q.Values(), nil }
	e.add("enqueue", []string{"value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		v, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}

		return framesOf(q.Enqueue(v)), nil, nil
	})
	e.add("dequeue", nil, func(context.Context, args) ([]Frame, any, error) {
		v, tr, err := q.Dequeue()
		return framesOf(tr), v, err
	})
	e.add("peek", nil, func(context.Context, args) ([]Frame, any, error) {
		v, tr, err := q.Peek()
		return framesOf(tr), v, err
	})
}

func wireLinkedList(e *engine, l *linear.LinkedList) {
	e.hist = l
	e.view = func() (any, any) { return l.Nodes(), nil }
	e.add("append", []string{"value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		v, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		id, tr := l.Append(v)

		return framesOf(tr), id, nil
	})
	e.add("remove", []string{"id"}, func(_ context.Context, a args) ([]Frame, any, error) {
		id, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		tr, err := l.Remove(id)

		return framesOf(tr), nil, err
	})
}

func wireHashTable(e *engine, t *hashtable.Table) {
	e.hist = t
	e.view = func() (any, any) { return t.Buckets(), nil }
	e.add("insert", []string{"key", "value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		tr, err := t.Insert(a.str(0), a.str(1))
		return framesOf(tr), nil, err
	})
	e.add("search", []string{"key"}, func(_ context.Context, a args) ([]Frame, any, error) {
		key := a.str(0)
		if key == "" {
			return nil, nil, hashtable.ErrEmptyKey
		}
		entry, found, tr := t.Search(key)
		if !found {
			return framesOf(tr), nil, nil
		}

		return framesOf(tr), entry, nil
	})
	e.add("remove", []string{"key"}, func(_ context.Context, a args) ([]Frame, any, error) {
		key := a.str(0)
		if key == "" {
			return nil, nil, hashtable.ErrEmptyKey
		}
		removed, tr := t.Remove(key)

		return framesOf(tr), removed, nil
	})
}

func wireTree(e *engine, t *tree.Tree) {
	e.hist = t
	e.view = func() (any, any) { return t.Root(), nil }
	e.add("add_child", []string{"parent", "value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		parent, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		v, err := a.num(1)
		if err != nil {
			return nil, nil, err
		}
		id, tr, err := t.AddChild(parent, v)

		return framesOf(tr), id, err
	})
	e.add("remove", []string{"id"}, func(_ context.Context, a args) ([]Frame, any, error) {
		id, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		tr, err := t.Remove(id)

		return framesOf(tr), nil, err
	})
	e.add("find", []string{"id"}, func(_ context.Context, a args) ([]Frame, any, error) {
		id, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		node, _, ok := t.Find(id)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %d", tree.ErrNodeNotFound, id)
		}
		rec := trace.NewRecorder[*tree.Node, int]()
		rec.EmitResult(t.Root(), fmt.Sprintf("found node #%d", id), node.Value, id)

		return framesOf(rec.Trace()), node.Value, nil
	})
}

func wireBinaryTree(e *engine, t *bintree.Tree) {
	e.hist = t
	e.view = func() (any, any) { return t.Root(), nil }
	e.add("insert", []string{"value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		v, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}

		return framesOf(t.Insert(v)), nil, nil
	})
	e.add("traverse", []string{"order"}, func(_ context.Context, a args) ([]Frame, any, error) {
		ord, err := bintree.ParseOrder(a.str(0))
		if err != nil {
			return nil, nil, err
		}
		values, tr, err := t.Traverse(ord)

		return framesOf(tr), values, err
	})
}

func wireBST(e *engine, t *bst.Tree) {
	e.hist = t
	e.view = func() (any, any) { return t.Root(), t.Values() }
	e.add("insert", []string{"value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		v, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		tr, err := t.Insert(v)

		return framesOf(tr), nil, err
	})
	e.add("search", []string{"value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		v, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		found, tr := t.Search(v)

		return framesOf(tr), found, nil
	})
}

func wireAVL(e *engine, t *avl.Tree) {
	e.hist = t
	e.view = func() (any, any) { return t.Root(), map[string]int{"height": t.Height()} }
	e.add("insert", []string{"value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		v, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		tr, err := t.Insert(v)

		return framesOf(tr), nil, err
	})
}

func wireHeap(e *engine, h *heap.Heap) {
	e.hist = h
	e.view = func() (any, any) { return h.Values(), nil }
	e.add("insert", []string{"value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		v, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}

		return framesOf(h.Insert(v)), nil, nil
	})
	e.add("extract_min", nil, func(context.Context, args) ([]Frame, any, error) {
		v, tr, err := h.ExtractMin()
		return framesOf(tr), v, err
	})
}

func wireTrie(e *engine, t *trie.Trie) {
	e.hist = t
	e.view = func() (any, any) { return t.Root(), t.Words() }
	e.add("insert", []string{"word"}, func(_ context.Context, a args) ([]Frame, any, error) {
		tr, err := t.Insert(a.str(0))
		return framesOf(tr), nil, err
	})
	e.add("search", []string{"word"}, func(_ context.Context, a args) ([]Frame, any, error) {
		out, tr, err := t.Search(a.str(0))
		return framesOf(tr), out.String(), err
	})
}

func wireDSU(e *engine, d *dsu.DSU) {
	e.hist = d
	e.view = func() (any, any) { return d.Parents(), d.Groups() }
	e.add("find", []string{"item"}, func(_ context.Context, a args) ([]Frame, any, error) {
		i, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		res, tr, err := d.Find(i)

		return framesOf(tr), res, err
	})
	e.add("union", []string{"a", "b"}, func(_ context.Context, a args) ([]Frame, any, error) {
		x, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		y, err := a.num(1)
		if err != nil {
			return nil, nil, err
		}
		merged, tr, err := d.Union(x, y)

		return framesOf(tr), merged, err
	})
}

func wireSegTree(e *engine, st *segtree.Tree) {
	e.hist = st
	e.view = func() (any, any) { return st.State(), nil }
	e.add("update", []string{"index", "value"}, func(_ context.Context, a args) ([]Frame, any, error) {
		idx, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		v, err := a.num(1)
		if err != nil {
			return nil, nil, err
		}
		tr, err := st.Update(idx, v)

		return framesOf(tr), nil, err
	})
	e.add("query", []string{"l", "r"}, func(_ context.Context, a args) ([]Frame, any, error) {
		l, err := a.num(0)
		if err != nil {
			return nil, nil, err
		}
		r, err := a.num(1)
		if err != nil {
			return nil, nil, err
		}
		sum, tr, err := st.Query(l, r)

		return framesOf(tr), sum, err
	})
	e.addVariadic("build", "values", func(_ context.Context, a args) ([]Frame, any, error) {
		values, err := a.ints()
		if err != nil {
			return nil, nil, err
		}
		tr, err := st.Rebuild(values)

		return framesOf(tr), nil, err
	})
}

func wireGraph(e *engine, g *graph.Graph) {
	e.hist = g
	e.view = func() (any, any) { return g.State(), nil }
	e.add("add_node", []string{"id"}, func(_ context.Context, a args) ([]Frame, any, error) {
		return nil, nil, g.AddNode(a.str(0))
	})
	e.add("add_edge", []string{"source", "target"}, func(_ context.Context, a args) ([]Frame, any, error) {
		return nil, nil, g.AddEdge(a.str(0), a.str(1))
	})
	e.add("bfs", []string{"start"}, func(ctx context.Context, a args) ([]Frame, any, error) {
		res, tr, err := g.BFS(ctx, a.str(0))
		if err != nil {
			return nil, nil, err
		}

		return framesOf(tr), res.Order, nil
	})
	e.add("path", []string{"start", "target"}, func(ctx context.Context, a args) ([]Frame, any, error) {
		path, tr, err := g.Path(ctx, a.str(0), a.str(1))
		if err != nil {
			return nil, nil, err
		}
		if path == nil {
			return framesOf(tr), nil, nil
		}

		return framesOf(tr), path, nil
	})
}
