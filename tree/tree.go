package tree

import (
	"fmt"

	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

// Tree is the n-ary tree engine. It is not safe for concurrent use.
type Tree struct {
	hist   *history.History[Node]
	nextID int
}

// New returns a tree holding only the root {id: 1, value: 10}.
func New(opts ...Option) *Tree {
	o := options{rootValue: DefaultRootValue}
	for _, fn := range opts {
		fn(&o)
	}

	return &Tree{
		hist:   history.New(&Node{ID: RootID, Value: o.rootValue}, o.histSize),
		nextID: RootID + 2,
	}
}

// Root returns the current root. Nodes must not be mutated.
func (t *Tree) Root() *Node { return t.hist.Present() }

// Find looks up id breadth-first and returns the node and its parent
// (nil for the root).
func (t *Tree) Find(id int) (node, parent *Node, ok bool) {
	type item struct{ n, p *Node }
	queue := []item{{n: t.Root()}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if it.n.ID == id {
			return it.n, it.p, true
		}
		for _, c := range it.n.Children {
			queue = append(queue, item{n: c, p: it.n})
		}
	}

	return nil, nil, false
}

// pathTo returns the nodes from the root down to id inclusive.
func pathTo(n *Node, id int) []*Node {
	if n.ID == id {
		return []*Node{n}
	}
	for _, c := range n.Children {
		if p := pathTo(c, id); p != nil {
			return append([]*Node{n}, p...)
		}
	}

	return nil
}

// rebuild copies every node of path and applies edit to the copy of the
// last one, returning the new root.
func rebuild(path []*Node, edit func(*Node)) *Node {
	copies := make([]*Node, len(path))
	for i, n := range path {
		copies[i] = n.clone()
		if i > 0 {
			parent := copies[i-1]
			for j, c := range parent.Children {
				if c == n {
					parent.Children[j] = copies[i]
					break
				}
			}
		}
	}
	edit(copies[len(copies)-1])

	return copies[0]
}

// AddChild appends a child holding value under parentID and returns the id
// assigned to it.
func (t *Tree) AddChild(parentID, value int) (int, *Trace, error) {
	path := pathTo(t.Root(), parentID)
	if path == nil {
		return 0, nil, fmt.Errorf("%w: %d", ErrNodeNotFound, parentID)
	}
	child := &Node{ID: t.nextID, Value: value}
	t.nextID++
	next := rebuild(path, func(p *Node) { p.Children = append(p.Children, child) })
	t.hist.Set(next)

	rec := trace.NewRecorder[*Node, int]()
	rec.Emit(next, fmt.Sprintf("add %d under #%d", value, parentID), parentID, child.ID)

	return child.ID, rec.Trace(), nil
}

// Remove deletes id and its whole subtree. The root cannot be removed.
func (t *Tree) Remove(id int) (*Trace, error) {
	root := t.Root()
	if id == root.ID {
		return nil, ErrRootRemoval
	}
	path := pathTo(root, id)
	if path == nil {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	target := path[len(path)-1]
	next := rebuild(path[:len(path)-1], func(p *Node) {
		kept := p.Children[:0]
		for _, c := range p.Children {
			if c != target {
				kept = append(kept, c)
			}
		}
		p.Children = kept
	})
	t.hist.Set(next)

	rec := trace.NewRecorder[*Node, int]()
	rec.Emit(root, fmt.Sprintf("remove #%d (%d nodes)", id, target.Size()), id)
	rec.Emit(next, fmt.Sprintf("removed #%d", id))

	return rec.Trace(), nil
}

// Undo reverts the last mutation.
func (t *Tree) Undo() bool { return t.hist.Undo() }

// Redo re-applies the last undone mutation.
func (t *Tree) Redo() bool { return t.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (t *Tree) CanUndo() bool { return t.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (t *Tree) CanRedo() bool { return t.hist.CanRedo() }
