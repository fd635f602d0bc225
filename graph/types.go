package graph

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/katalvlaran/structviz/trace"
)

// Sentinel errors for graph operations.
var (
	// ErrEmptyID is returned for a blank node id.
	ErrEmptyID = errors.New("graph: empty node id")

	// ErrNodeExists is returned when adding a node twice.
	ErrNodeExists = errors.New("graph: node already exists")

	// ErrNodeNotFound is returned when an edge endpoint is missing.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrStartNotFound is returned when the BFS start is absent.
	ErrStartNotFound = errors.New("graph: start node not found")

	// ErrNoPath is returned when a BFS never reached the destination.
	ErrNoPath = errors.New("graph: no path")
)

// Edge is a directed source -> target link.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// State is one immutable graph snapshot.
type State struct {
	Nodes []string            `json:"nodes"`
	Edges []Edge              `json:"edges"`
	Adj   map[string][]string `json:"adjacency"`
}

// HasNode reports whether id is a node.
func (s *State) HasNode(id string) bool {
	_, ok := s.Adj[id]
	return ok
}

// Neighbors returns id's targets in edge order.
func (s *State) Neighbors(id string) []string { return s.Adj[id] }

func (s *State) clone() *State {
	return &State{
		Nodes: slices.Clone(s.Nodes),
		Edges: slices.Clone(s.Edges),
		Adj:   maps.Clone(s.Adj),
	}
}

// Frame is the BFS progress shown by one trace step.
type Frame struct {
	Visited []string `json:"visited"`
	Queue   []string `json:"queue"`
}

// Trace is a sequence of BFS frames highlighted by node id.
type Trace = trace.Trace[Frame, string]

// Option configures BFS.
type Option func(*BFSOptions)

// BFSOptions carries the context and the queue hooks Graph.BFS records
// frames from.
type BFSOptions struct {
	Ctx       context.Context
	OnEnqueue func(id string, depth int) // node marked visited and queued
	OnDequeue func(id string, depth int) // node about to be visited
}

// DefaultOptions returns a background context and no-op hooks.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:       context.Background(),
		OnEnqueue: func(string, int) {},
		OnDequeue: func(string, int) {},
	}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers the enqueue hook.
func WithOnEnqueue(fn func(id string, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers the dequeue hook.
func WithOnDequeue(fn func(id string, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// BFSResult holds the visit order, hop depths and BFS-tree parents.
type BFSResult struct {
	Order  []string          `json:"order"`
	Depth  map[string]int    `json:"depth"`
	Parent map[string]string `json:"parent"`
}

// PathTo walks parent links back from dest and returns the shortest hop
// path from the start. ErrNoPath means dest was never reached.
func (r *BFSResult) PathTo(dest string) ([]string, error) {
	d, ok := r.Depth[dest]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoPath, dest)
	}
	path := make([]string, d+1)
	for i, cur := d, dest; i >= 0; i-- {
		path[i] = cur
		cur = r.Parent[cur]
	}

	return path, nil
}
