// Package bst implements the binary search tree engine.
//
// Insert descends by comparison and attaches a new leaf; equal values are
// rejected with ErrDuplicate and leave the tree untouched. Search descends
// iteratively and stops at the matching node or at a missing child.
//
// Nodes are bintree.Node values. Insert copies only the root-to-leaf path,
// so earlier history snapshots keep sharing every untouched subtree.
//
// Complexity (h = height): Insert O(h), Search O(h).
package bst

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/structviz/bintree"
	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

// ErrDuplicate is returned when inserting a value already present.
var ErrDuplicate = errors.New("bst: value already present")

// DefaultValues seed a new tree when no WithValues option is given.
var DefaultValues = []int{50, 30, 70, 20, 40, 60, 80}

// Tree is the BST engine. It is not safe for concurrent use.
type Tree struct {
	hist   *history.History[bintree.Node]
	nextID int
}

// New returns a tree seeded with DefaultValues unless bintree.WithValues is
// given. Seeding does not create history entries.
func New(opts ...bintree.Option) *Tree {
	cfg := bintree.ApplyOptions(DefaultValues, opts...)
	t := &Tree{hist: history.New[bintree.Node](nil, cfg.HistoryLimit)}
	for _, v := range cfg.Seed {
		_, _ = t.Insert(v)
	}
	t.hist.Reset(t.hist.Present())

	return t
}

// Root returns the current root. Nodes must not be mutated.
func (t *Tree) Root() *bintree.Node { return t.hist.Present() }

// Values returns the stored values in ascending order.
func (t *Tree) Values() []int { return bintree.Values(t.Root()) }

// Insert adds value as a new leaf. The trace highlights each node compared
// on the way down and finally the new node.
func (t *Tree) Insert(value int) (*bintree.Trace, error) {
	root := t.Root()
	rec := trace.NewRecorder[*bintree.Node, int]()
	for cur := root; cur != nil; {
		if value == cur.Value {
			return nil, fmt.Errorf("%w: %d", ErrDuplicate, value)
		}
		rec.Emit(root, fmt.Sprintf("compare %d with %d", value, cur.Value), cur.ID)
		if value < cur.Value {
			cur = cur.Left
		} else {
			cur = cur.Right
		}
	}

	leaf := &bintree.Node{ID: t.nextID, Value: value}
	t.nextID++
	next := insert(root, leaf)
	t.hist.Set(next)
	rec.Emit(next, fmt.Sprintf("insert %d", value), leaf.ID)

	return rec.Trace(), nil
}

// insert path-copies n and attaches leaf; leaf.Value is known to be absent.
func insert(n, leaf *bintree.Node) *bintree.Node {
	if n == nil {
		return leaf
	}
	c := n.Clone()
	if leaf.Value < n.Value {
		c.Left = insert(n.Left, leaf)
	} else {
		c.Right = insert(n.Right, leaf)
	}

	return c
}

// Search descends towards value. Each step highlights the node being
// compared; the last step's Result is true when value was found.
func (t *Tree) Search(value int) (bool, *bintree.Trace) {
	root := t.Root()
	rec := trace.NewRecorder[*bintree.Node, int]()
	for cur := root; cur != nil; {
		if value == cur.Value {
			rec.EmitResult(root, fmt.Sprintf("found %d", value), true, cur.ID)
			return true, rec.Trace()
		}
		if value < cur.Value {
			rec.Emit(root, fmt.Sprintf("%d < %d, go left", value, cur.Value), cur.ID)
			cur = cur.Left
		} else {
			rec.Emit(root, fmt.Sprintf("%d > %d, go right", value, cur.Value), cur.ID)
			cur = cur.Right
		}
	}
	rec.EmitResult(root, fmt.Sprintf("%d not found", value), false)

	return false, rec.Trace()
}

// Contains reports whether value is stored, without recording a trace.
func (t *Tree) Contains(value int) bool {
	for cur := t.Root(); cur != nil; {
		switch {
		case value == cur.Value:
			return true
		case value < cur.Value:
			cur = cur.Left
		default:
			cur = cur.Right
		}
	}

	return false
}

// Traverse records a traversal in the given order.
func (t *Tree) Traverse(order bintree.Order) ([]int, *bintree.Trace, error) {
	return bintree.Traverse(t.Root(), order)
}

// Undo reverts the last mutation.
func (t *Tree) Undo() bool { return t.hist.Undo() }

// Redo re-applies the last undone mutation.
func (t *Tree) Redo() bool { return t.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (t *Tree) CanUndo() bool { return t.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (t *Tree) CanRedo() bool { return t.hist.CanRedo() }
