package graph

import (
	"fmt"
)

type queueItem struct {
	id     string
	depth  int
	parent string // empty for the start node
}

// walker encapsulates mutable BFS state.
type walker struct {
	state   *State
	opts    BFSOptions
	queue   []queueItem
	visited map[string]bool
	res     *BFSResult
}

// BFS runs breadth-first search over s from start. Nodes are marked visited
// when enqueued, so no node enters the queue twice.
func BFS(s *State, start string, opts ...Option) (*BFSResult, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if s == nil || !s.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNotFound, start)
	}

	n := len(s.Nodes)
	w := &walker{
		state:   s,
		opts:    o,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &BFSResult{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
	w.enqueue(start, 0, "")

	return w.res, w.loop()
}

func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d, parent: parent})
	w.opts.OnEnqueue(id, d)
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.opts.OnDequeue(item.id, item.depth)

		w.res.Order = append(w.res.Order, item.id)
		next := item.depth + 1
		for _, nbr := range w.state.Neighbors(item.id) {
			if !w.visited[nbr] {
				w.enqueue(nbr, next, item.id)
			}
		}
	}

	return nil
}
