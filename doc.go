// Package structviz is an in-memory playground for watching data structures
// work: every operation returns a step-by-step trace of what it touched, and
// every change can be undone and redone.
//
// 🚀 What is in the box?
//
//	• Linear: array, stack, queue, linked list
//	• Hashing: chained hash table with a visible bucket walk
//	• Trees: n-ary tree, binary tree (BFS, pre/in/post-order), BST, AVL with rotations
//	• Heaps and friends: min-heap, trie, disjoint set union, segment tree
//	• Graphs: directed graph with a breadth-first search trace
//	• Complexity: Big-O growth classes with counts, cards and a chart
//
// ✨ How it fits together
//
//   - Engines own their state as immutable snapshots behind a history, so
//     undo is a pointer swap and old traces never change under the viewer
//   - A trace is a restartable sequence of steps; drivers pace it for display
//   - A session keeps one engine per structure and turns string intents into
//     calls, ignoring malformed ones instead of failing
//
// Packages:
//
//	trace/, history/          steps, pacing, undo/redo
//	linear/ … graph/          one engine per structure
//	session/                  intent dispatch, busy gate, scripts
//	render/                   terminal tables, highlights and diffs
//	httpapi/, mcpserver/      JSON HTTP and MCP surfaces
//	complexity/, describe/    explainer pages and descriptive info
//	config/, observability/   viper settings, slog, prometheus, otel
//
// Quick look at a heap insert of 1 into [4 10 8 20 15 12 9]:
//
//	append   [4 10 8 20 15 12 9 1]
//	swap     [4 10 8 1 15 12 9 20]
//	swap     [4 1 8 10 15 12 9 20]
//	swap     [1 4 8 10 15 12 9 20]
//	settle
//
//	go install github.com/katalvlaran/structviz/cmd/structviz@latest
package structviz
