// Package tree implements the n-ary tree engine: a rooted tree where any
// node may gain children and any node except the root may be removed
// together with its subtree.
//
// Snapshots are persistent: a mutation copies only the nodes on the path
// from the root to the changed parent, so undo history shares every other
// subtree with the live tree.
package tree

import (
	"errors"

	"github.com/katalvlaran/structviz/trace"
)

var (
	// ErrNodeNotFound is returned when an id does not name a node.
	ErrNodeNotFound = errors.New("tree: node not found")
	// ErrRootRemoval is returned when Remove targets the root.
	ErrRootRemoval = errors.New("tree: root cannot be removed")
)

const (
	// DefaultRootValue is the value of the seed root.
	DefaultRootValue = 10
	// RootID is the id of the root node.
	RootID = 1
)

// Node is one tree node. Children keep insertion order.
type Node struct {
	ID       int     `json:"id"`
	Value    int     `json:"value"`
	Children []*Node `json:"children,omitempty"`
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	s := 1
	for _, c := range n.Children {
		s += c.Size()
	}

	return s
}

func (n *Node) clone() *Node {
	c := *n
	c.Children = append([]*Node(nil), n.Children...)

	return &c
}

// Trace is a sequence of root snapshots highlighted by node id.
type Trace = trace.Trace[*Node, int]

// Option customizes New.
type Option func(*options)

type options struct {
	rootValue int
	histSize  int
}

// WithRootValue sets the value of the seed root.
func WithRootValue(v int) Option { return func(o *options) { o.rootValue = v } }

// WithHistoryLimit caps the undo stack (0 = unbounded).
func WithHistoryLimit(n int) Option { return func(o *options) { o.histSize = n } }
