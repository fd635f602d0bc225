// Package graph implements the directed, unweighted graph engine and its
// breadth-first search.
//
// What:
//
//	Nodes are string ids kept in insertion order. Edges are ordered
//	(source, target) pairs; parallel edges and self-loops are kept as-is.
//	Each node's adjacency list holds targets in edge insertion order.
//
// Why:
//
//	BFS explores vertices in increasing hop distance from a start node,
//	which makes the visiting order easy to follow step by step.
//
// Complexity:
//
//	AddNode, AddEdge: O(V + E) (the snapshot is copied).
//	BFS, Path: O(V + E) time, O(V) memory.
//
// Traces:
//
//	Graph.BFS marks nodes visited on enqueue. It emits one step for the
//	seeded start node, one per dequeue and one per newly enqueued neighbor.
//	Each step carries the visited set and the remaining queue. Graph.Path
//	replays the same search and adds one step highlighting the hop path.
//
// Errors:
//
//	ErrEmptyID        - blank node id.
//	ErrNodeExists     - AddNode with an id already present (no-op).
//	ErrNodeNotFound   - AddEdge with a missing endpoint (no-op).
//	ErrStartNotFound  - BFS from an absent node.
//	ErrNoPath         - Path to a node the search never reached.
//
// Usage:
//
//	g := graph.New(0)
//	_ = g.AddNode("A")
//	_ = g.AddNode("B")
//	_ = g.AddEdge("A", "B")
//	res, tr, _ := g.BFS(ctx, "A")
package graph
