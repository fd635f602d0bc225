package bintree

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

// Tree is the plain binary tree engine: values are placed in level order,
// not by comparison. It is not safe for concurrent use.
type Tree struct {
	hist   *history.History[Node]
	nextID int
}

// NewTree returns an empty binary tree, or one built from WithValues.
func NewTree(opts ...Option) *Tree {
	cfg := ApplyOptions(nil, opts...)
	t := &Tree{hist: history.New[Node](nil, cfg.HistoryLimit)}
	for _, v := range cfg.Seed {
		t.Insert(v)
	}
	t.hist.Reset(t.hist.Present())

	return t
}

// Root returns the current root (nil when empty). Nodes are shared with
// history snapshots and must not be mutated.
func (t *Tree) Root() *Node { return t.hist.Present() }

func (t *Tree) newNode(value int) *Node {
	n := &Node{ID: t.nextID, Value: value}
	t.nextID++

	return n
}

type slot struct {
	node *Node
	path []bool // false = left, true = right
}

func extend(path []bool, right bool) []bool {
	return append(slices.Clip(path), right)
}

// Insert places value in the first free child slot found in level order.
// The trace highlights every node inspected, then the new node.
func (t *Tree) Insert(value int) *Trace {
	root := t.Root()
	leaf := t.newNode(value)
	rec := trace.NewRecorder[*Node, int]()

	if root == nil {
		t.hist.Set(leaf)
		rec.Emit(leaf, fmt.Sprintf("%d becomes the root", value), leaf.ID)
		return rec.Trace()
	}

	var target []bool
	queue := []slot{{node: root}}
	for len(queue) > 0 && target == nil {
		cur := queue[0]
		queue = queue[1:]
		rec.Emit(root, fmt.Sprintf("inspect %d", cur.node.Value), cur.node.ID)
		switch {
		case cur.node.Left == nil:
			target = extend(cur.path, false)
		case cur.node.Right == nil:
			queue = append(queue, slot{node: cur.node.Left, path: extend(cur.path, false)})
			target = extend(cur.path, true)
		default:
			queue = append(queue,
				slot{node: cur.node.Left, path: extend(cur.path, false)},
				slot{node: cur.node.Right, path: extend(cur.path, true)},
			)
		}
	}

	next := attach(root, target, leaf)
	t.hist.Set(next)
	rec.Emit(next, fmt.Sprintf("insert %d", value), leaf.ID)

	return rec.Trace()
}

// attach copies the nodes along path and hangs leaf at its end.
func attach(n *Node, path []bool, leaf *Node) *Node {
	c := n.Clone()
	right := path[0]
	if len(path) == 1 {
		if right {
			c.Right = leaf
		} else {
			c.Left = leaf
		}
		return c
	}
	if right {
		c.Right = attach(n.Right, path[1:], leaf)
	} else {
		c.Left = attach(n.Left, path[1:], leaf)
	}

	return c
}

// Traverse walks the tree in the given order. Each step highlights the
// visited node and carries the values visited so far as its Result.
func (t *Tree) Traverse(order Order) ([]int, *Trace, error) {
	return Traverse(t.Root(), order)
}

// Traverse records a traversal of root as a trace.
func Traverse(root *Node, order Order) ([]int, *Trace, error) {
	rec := trace.NewRecorder[*Node, int]()
	var seen []int
	res, err := DFS(root, order, WithOnVisit(func(n *Node, _ int) error {
		seen = append(seen, n.Value)
		rec.EmitResult(root, fmt.Sprintf("%s visit %d", order, n.Value), slices.Clone(seen), n.ID)
		return nil
	}))
	if err != nil {
		return nil, nil, err
	}

	return res.Values(), rec.Trace(), nil
}

// Undo reverts the last mutation.
func (t *Tree) Undo() bool { return t.hist.Undo() }

// Redo re-applies the last undone mutation.
func (t *Tree) Redo() bool { return t.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (t *Tree) CanUndo() bool { return t.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (t *Tree) CanRedo() bool { return t.hist.CanRedo() }
