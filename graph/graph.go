package graph

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

// Graph is the graph engine. It is not safe for concurrent use.
type Graph struct {
	hist *history.History[State]
}

// New returns an empty graph. histLimit caps the undo stack (0 = unbounded).
func New(histLimit int) *Graph {
	return &Graph{hist: history.New(&State{Adj: map[string][]string{}}, histLimit)}
}

// State returns the current snapshot. It must not be mutated.
func (g *Graph) State() *State { return g.hist.Present() }

// AddNode adds id with an empty adjacency list.
func (g *Graph) AddNode(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}
	cur := g.State()
	if cur.HasNode(id) {
		return fmt.Errorf("%w: %q", ErrNodeExists, id)
	}
	next := cur.clone()
	next.Nodes = append(next.Nodes, id)
	next.Adj[id] = []string{}
	g.hist.Set(next)

	return nil
}

// AddEdge appends target to source's adjacency list. Both endpoints must
// exist; duplicates and self-loops are kept.
func (g *Graph) AddEdge(source, target string) error {
	cur := g.State()
	for _, id := range []string{source, target} {
		if !cur.HasNode(id) {
			return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
		}
	}
	next := cur.clone()
	next.Edges = append(next.Edges, Edge{Source: source, Target: target})
	next.Adj[source] = append(slices.Clone(cur.Adj[source]), target)
	g.hist.Set(next)

	return nil
}

// BFS searches the current snapshot from start and records the trace.
func (g *Graph) BFS(ctx context.Context, start string) (*BFSResult, *Trace, error) {
	var (
		visited []string
		queue   []string
	)
	rec := trace.NewRecorder[Frame, string]()
	frame := func() Frame {
		return Frame{Visited: slices.Clone(visited), Queue: slices.Clone(queue)}
	}

	res, err := BFS(g.State(), start,
		WithContext(ctx),
		WithOnEnqueue(func(id string, depth int) {
			visited = append(visited, id)
			queue = append(queue, id)
			if depth == 0 {
				rec.Emit(frame(), fmt.Sprintf("start at %s", id), id)
				return
			}
			rec.Emit(frame(), fmt.Sprintf("enqueue %s (depth %d)", id, depth), id)
		}),
		WithOnDequeue(func(id string, _ int) {
			queue = queue[1:]
			rec.Emit(frame(), fmt.Sprintf("dequeue %s", id), id)
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	rec.EmitResult(frame(), fmt.Sprintf("order %s", strings.Join(res.Order, " ")), res.Order)

	return res, rec.Trace(), nil
}

// Path searches from start and appends a final step highlighting the
// shortest hop path to target. An unreachable target gives a nil path and a
// closing "no path" step; it is not an error.
func (g *Graph) Path(ctx context.Context, start, target string) ([]string, *Trace, error) {
	if !g.State().HasNode(target) {
		return nil, nil, fmt.Errorf("%w: %q", ErrNodeNotFound, target)
	}
	res, tr, err := g.BFS(ctx, start)
	if err != nil {
		return nil, nil, err
	}
	steps := tr.Steps()
	last := steps[len(steps)-1].State

	path, err := res.PathTo(target)
	if err != nil {
		steps = append(steps, trace.Step[Frame, string]{
			State: last,
			Note:  fmt.Sprintf("no path from %s to %s", start, target),
		})

		return nil, trace.FromSteps(steps), nil
	}
	steps = append(steps, trace.Step[Frame, string]{
		State:     last,
		Highlight: path,
		Note:      fmt.Sprintf("path %s", strings.Join(path, " -> ")),
		Result:    path,
	})

	return path, trace.FromSteps(steps), nil
}

// Undo reverts the last mutation.
func (g *Graph) Undo() bool { return g.hist.Undo() }

// Redo re-applies the last undone mutation.
func (g *Graph) Redo() bool { return g.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (g *Graph) CanUndo() bool { return g.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (g *Graph) CanRedo() bool { return g.hist.CanRedo() }
