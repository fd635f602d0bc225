package graph_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/structviz/graph"
)

// diamond builds A->B, A->C, B->D, C->D, D->A.
func diamond(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(0)
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		if err := g.AddNode(id); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}, {"D", "A"}} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}

	return g
}

func TestBFS_OrderAndDepth(t *testing.T) {
	g := diamond(t)
	res, _, err := g.BFS(context.Background(), "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	if d := res.Depth["D"]; d != 2 {
		t.Errorf("Depth[D] = %d; want 2", d)
	}
	if _, ok := res.Depth["E"]; ok {
		t.Errorf("E is unreachable but has a depth")
	}
	path, err := res.PathTo("D")
	if err != nil || !reflect.DeepEqual(path, []string{"A", "B", "D"}) {
		t.Errorf("PathTo(D) = %v, %v", path, err)
	}
	if _, err := res.PathTo("E"); err == nil {
		t.Errorf("PathTo(E) should fail")
	}
}

func TestBFS_TraceFrames(t *testing.T) {
	g := diamond(t)
	_, tr, err := g.BFS(context.Background(), "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	steps := tr.Steps()
	// start + 4 dequeues + 3 enqueues (B, C, D) + result
	if len(steps) != 9 {
		t.Fatalf("len(steps) = %d; want 9", len(steps))
	}
	first := steps[0].State
	if !reflect.DeepEqual(first.Visited, []string{"A"}) || !reflect.DeepEqual(first.Queue, []string{"A"}) {
		t.Errorf("first frame = %+v", first)
	}
	// after dequeuing A the queue is empty, then B and C are enqueued
	if q := steps[1].State.Queue; len(q) != 0 {
		t.Errorf("queue after dequeue(A) = %v", q)
	}
	if q := steps[3].State.Queue; !reflect.DeepEqual(q, []string{"B", "C"}) {
		t.Errorf("queue after enqueue(C) = %v", q)
	}
	last := steps[len(steps)-1]
	if !reflect.DeepEqual(last.State.Visited, []string{"A", "B", "C", "D"}) {
		t.Errorf("final visited = %v", last.State.Visited)
	}
	// visited-on-enqueue: no node appears twice
	seen := map[string]bool{}
	for _, id := range last.State.Visited {
		if seen[id] {
			t.Errorf("%s visited twice", id)
		}
		seen[id] = true
	}
}

func TestBFS_Errors(t *testing.T) {
	g := diamond(t)
	if _, _, err := g.BFS(context.Background(), "Z"); !errors.Is(err, graph.ErrStartNotFound) {
		t.Errorf("missing start: want ErrStartNotFound, got %v", err)
	}
	res, _, err := g.BFS(context.Background(), "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := res.PathTo("E"); !errors.Is(err, graph.ErrNoPath) {
		t.Errorf("PathTo(E): want ErrNoPath, got %v", err)
	}
}

func TestGraph_Path(t *testing.T) {
	g := diamond(t)
	path, tr, err := g.Path(context.Background(), "A", "D")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"A", "B", "D"}; !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v; want %v", path, want)
	}
	last, ok := tr.Last()
	if !ok || !reflect.DeepEqual(last.Highlight, path) || last.Note != "path A -> B -> D" {
		t.Errorf("last step = %+v", last)
	}
	// BFS frames come first, the path step is appended after them
	if n := tr.Len(); n != 10 {
		t.Errorf("len(steps) = %d; want 10", n)
	}

	path, tr, err = g.Path(context.Background(), "A", "E")
	if err != nil || path != nil {
		t.Fatalf("unreachable: path = %v, err = %v", path, err)
	}
	if last, _ := tr.Last(); last.Note != "no path from A to E" {
		t.Errorf("last note = %q", last.Note)
	}

	if _, _, err := g.Path(context.Background(), "A", "Z"); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Errorf("missing target: want ErrNodeNotFound, got %v", err)
	}
}

func TestBFS_Cancelled(t *testing.T) {
	g := diamond(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := graph.BFS(g.State(), "A", graph.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}
