package bintree

import "fmt"

type queueItem struct {
	node  *Node
	depth int
}

// walker carries mutable walk state.
type walker struct {
	opts  WalkOptions
	queue []queueItem
	res   *WalkResult
}

func newWalker(opts []WalkOption) *walker {
	o := WalkOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	return &walker{
		opts: o,
		res:  &WalkResult{Depth: make(map[int]int)},
	}
}

// BFS walks the tree in level order.
func BFS(root *Node, opts ...WalkOption) (*WalkResult, error) {
	if root == nil {
		return nil, ErrEmptyTree
	}
	w := newWalker(opts)
	w.enqueue(root, 0)
	for len(w.queue) > 0 {
		item := w.dequeue()
		if err := w.visit(item.node, item.depth); err != nil {
			return w.res, err
		}
		if item.node.Left != nil {
			w.enqueue(item.node.Left, item.depth+1)
		}
		if item.node.Right != nil {
			w.enqueue(item.node.Right, item.depth+1)
		}
	}

	return w.res, nil
}

func (w *walker) enqueue(n *Node, depth int) {
	if w.opts.OnEnqueue != nil {
		w.opts.OnEnqueue(n, depth)
	}
	w.queue = append(w.queue, queueItem{node: n, depth: depth})
}

func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	if w.opts.OnDequeue != nil {
		w.opts.OnDequeue(item.node, item.depth)
	}

	return item
}

func (w *walker) visit(n *Node, depth int) error {
	w.res.Order = append(w.res.Order, n)
	w.res.Depth[n.ID] = depth
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(n, depth); err != nil {
			return fmt.Errorf("bintree: OnVisit hook for #%d: %w", n.ID, err)
		}
	}

	return nil
}

// DFS walks the tree depth-first, emitting nodes in the requested order.
// LevelOrder is delegated to BFS.
func DFS(root *Node, order Order, opts ...WalkOption) (*WalkResult, error) {
	if order == LevelOrder {
		return BFS(root, opts...)
	}
	if order < PreOrder || order > PostOrder {
		return nil, fmt.Errorf("%w: %d", ErrBadOrder, int(order))
	}
	if root == nil {
		return nil, ErrEmptyTree
	}
	w := newWalker(opts)

	return w.res, w.traverse(root, order, 0)
}

func (w *walker) traverse(n *Node, order Order, depth int) error {
	if order == PreOrder {
		if err := w.visit(n, depth); err != nil {
			return err
		}
	}
	if n.Left != nil {
		if err := w.traverse(n.Left, order, depth+1); err != nil {
			return err
		}
	}
	if order == InOrder {
		if err := w.visit(n, depth); err != nil {
			return err
		}
	}
	if n.Right != nil {
		if err := w.traverse(n.Right, order, depth+1); err != nil {
			return err
		}
	}
	if order == PostOrder {
		return w.visit(n, depth)
	}

	return nil
}

// Values returns the in-order values of the subtree at root.
func Values(root *Node) []int {
	if root == nil {
		return nil
	}
	res, _ := DFS(root, InOrder)

	return res.Values()
}
