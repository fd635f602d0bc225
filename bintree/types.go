package bintree

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/structviz/trace"
)

// Sentinel errors for binary tree walks and the binary tree engine.
var (
	// ErrEmptyTree is returned when an operation needs at least one node.
	ErrEmptyTree = errors.New("bintree: tree is empty")

	// ErrBadOrder is returned for an unknown traversal order.
	ErrBadOrder = errors.New("bintree: unknown traversal order")
)

// Node is a binary tree node. IDs are unique per engine and survive
// structural copies so displays can track a node across snapshots.
type Node struct {
	ID     int   `json:"id"`
	Value  int   `json:"value"`
	Height int   `json:"height,omitempty"`
	Left   *Node `json:"left,omitempty"`
	Right  *Node `json:"right,omitempty"`
}

// Clone returns a shallow copy: a new node sharing n's children.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n

	return &c
}

// Size counts the nodes of the subtree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}

	return 1 + n.Left.Size() + n.Right.Size()
}

// Order selects a traversal.
type Order int

// Traversal orders.
const (
	LevelOrder Order = iota // breadth-first
	PreOrder
	InOrder
	PostOrder
)

// String implements fmt.Stringer.
func (o Order) String() string {
	switch o {
	case LevelOrder:
		return "bfs"
	case PreOrder:
		return "preorder"
	case InOrder:
		return "inorder"
	case PostOrder:
		return "postorder"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder maps a name ("bfs", "pre", "preorder", "in", "inorder",
// "post", "postorder") to an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "bfs", "level", "levelorder":
		return LevelOrder, nil
	case "pre", "preorder":
		return PreOrder, nil
	case "in", "inorder":
		return InOrder, nil
	case "post", "postorder":
		return PostOrder, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadOrder, s)
	}
}

// Trace is the trace type of all binary tree engines: the state is the root
// and highlights are node ids.
type Trace = trace.Trace[*Node, int]

// WalkOption configures BFS and DFS.
type WalkOption func(*WalkOptions)

// WalkOptions holds walk hooks. Nil hooks are skipped.
type WalkOptions struct {
	// OnEnqueue is called when BFS queues a node (not used by DFS).
	OnEnqueue func(n *Node, depth int)

	// OnDequeue is called when BFS takes a node off the queue.
	OnDequeue func(n *Node, depth int)

	// OnVisit is called when a node is emitted in traversal order.
	// Returning an error aborts the walk.
	OnVisit func(n *Node, depth int) error
}

// WithOnEnqueue registers a BFS enqueue hook.
func WithOnEnqueue(fn func(n *Node, depth int)) WalkOption {
	return func(o *WalkOptions) { o.OnEnqueue = fn }
}

// WithOnDequeue registers a BFS dequeue hook.
func WithOnDequeue(fn func(n *Node, depth int)) WalkOption {
	return func(o *WalkOptions) { o.OnDequeue = fn }
}

// WithOnVisit registers a visit hook.
func WithOnVisit(fn func(n *Node, depth int) error) WalkOption {
	return func(o *WalkOptions) { o.OnVisit = fn }
}

// WalkResult is the outcome of a walk.
type WalkResult struct {
	// Order lists nodes in visit order.
	Order []*Node

	// Depth maps node id to its distance from the root.
	Depth map[int]int
}

// Values returns the visited values in order.
func (r *WalkResult) Values() []int {
	out := make([]int, len(r.Order))
	for i, n := range r.Order {
		out[i] = n.Value
	}

	return out
}

// Option configures a binary tree engine.
type Option func(*options)

type options struct {
	seed     []int
	seeded   bool
	histSize int
}

// WithValues inserts values, in order, into the new engine. An empty call
// starts the engine empty even when it has a default seed.
func WithValues(values ...int) Option {
	return func(o *options) {
		o.seed = append([]int(nil), values...)
		o.seeded = true
	}
}

// WithHistoryLimit caps the undo stack (0 = unbounded).
func WithHistoryLimit(n int) Option { return func(o *options) { o.histSize = n } }

// Settings is the resolved form of a list of Options.
type Settings struct {
	Seed         []int
	HistoryLimit int
}

// ApplyOptions resolves options for engines built on this package; def is
// used as the seed unless WithValues was given.
func ApplyOptions(def []int, opts ...Option) Settings {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if !o.seeded {
		o.seed = def
	}

	return Settings{Seed: o.seed, HistoryLimit: o.histSize}
}
