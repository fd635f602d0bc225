package avl

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/structviz/bintree"
	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

// ErrDuplicate is returned when inserting a value already present.
var ErrDuplicate = errors.New("avl: value already present")

// Rotation names a rebalancing case applied during an insert.
type Rotation string

const (
	RotateRight     Rotation = "LL"
	RotateLeft      Rotation = "RR"
	RotateLeftRight Rotation = "LR"
	RotateRightLeft Rotation = "RL"
)

// Tree is the AVL engine. It is not safe for concurrent use.
type Tree struct {
	hist   *history.History[bintree.Node]
	nextID int
}

// New returns an empty tree, or one holding the values of bintree.WithValues.
func New(opts ...bintree.Option) *Tree {
	cfg := bintree.ApplyOptions(nil, opts...)
	t := &Tree{hist: history.New[bintree.Node](nil, cfg.HistoryLimit)}
	for _, v := range cfg.Seed {
		_, _ = t.Insert(v)
	}
	t.hist.Reset(t.hist.Present())

	return t
}

// Root returns the current root. Nodes must not be mutated.
func (t *Tree) Root() *bintree.Node { return t.hist.Present() }

// Height returns the height of the tree; empty is 0, a single node is 1.
func (t *Tree) Height() int { return height(t.Root()) }

// Values returns the stored values in ascending order.
func (t *Tree) Values() []int { return bintree.Values(t.Root()) }

// unwindEvent is one node revisited while the insert recursion returns.
type unwindEvent struct {
	id       int
	height   int
	balance  int
	rotation Rotation
}

type inserter struct {
	leaf   *bintree.Node
	events []unwindEvent
}

// Insert adds value and rebalances. Duplicates return ErrDuplicate.
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

	ins := &inserter{leaf: &bintree.Node{ID: t.nextID, Value: value, Height: 1}}
	t.nextID++
	next := ins.insert(root)
	t.hist.Set(next)

	for _, ev := range ins.events {
		note := fmt.Sprintf("node #%d: height %d, balance %d", ev.id, ev.height, ev.balance)
		if ev.rotation != "" {
			note += fmt.Sprintf(", %s rotation", ev.rotation)
		}
		rec.Emit(next, note, ev.id)
	}
	rec.Emit(next, fmt.Sprintf("insert %d", value), ins.leaf.ID)

	return rec.Trace(), nil
}

// insert path-copies n, attaches the leaf and rebalances on the way back.
// Every node it mutates is either a fresh clone or the new leaf.
func (in *inserter) insert(n *bintree.Node) *bintree.Node {
	if n == nil {
		return in.leaf
	}
	c := n.Clone()
	v := in.leaf.Value
	if v < n.Value {
		c.Left = in.insert(n.Left)
	} else {
		c.Right = in.insert(n.Right)
	}
	update(c)

	ev := unwindEvent{id: c.ID, height: c.Height, balance: balance(c)}
	switch {
	case ev.balance > 1 && v < c.Left.Value:
		ev.rotation = RotateRight
		c = rotateRight(c)
	case ev.balance < -1 && v > c.Right.Value:
		ev.rotation = RotateLeft
		c = rotateLeft(c)
	case ev.balance > 1 && v > c.Left.Value:
		ev.rotation = RotateLeftRight
		c.Left = rotateLeft(c.Left)
		c = rotateRight(c)
	case ev.balance < -1 && v < c.Right.Value:
		ev.rotation = RotateRightLeft
		c.Right = rotateRight(c.Right)
		c = rotateLeft(c)
	}
	in.events = append(in.events, ev)

	return c
}

func height(n *bintree.Node) int {
	if n == nil {
		return 0
	}

	return n.Height
}

func balance(n *bintree.Node) int {
	if n == nil {
		return 0
	}

	return height(n.Left) - height(n.Right)
}

func update(n *bintree.Node) { n.Height = 1 + max(height(n.Left), height(n.Right)) }

//	    y          x
//	   / \        / \
//	  x   C  =>  A   y
//	 / \            / \
//	A   B          B   C
func rotateRight(y *bintree.Node) *bintree.Node {
	x := y.Left
	y.Left = x.Right
	x.Right = y
	update(y)
	update(x)

	return x
}

func rotateLeft(x *bintree.Node) *bintree.Node {
	y := x.Right
	x.Right = y.Left
	y.Left = x
	update(x)
	update(y)

	return y
}

// Undo reverts the last insert.
func (t *Tree) Undo() bool { return t.hist.Undo() }

// Redo re-applies the last undone insert.
func (t *Tree) Redo() bool { return t.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (t *Tree) CanUndo() bool { return t.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (t *Tree) CanRedo() bool { return t.hist.CanRedo() }
