// Package bintree provides the binary node type shared by the tree engines
// (binary tree, BST, AVL), breadth- and depth-first walkers over it, and the
// Binary Tree engine itself.
//
// What
//
//   - Node: {ID, Value, Height, Left, Right}. Height is maintained only by AVL.
//   - BFS(root, opts...): level-order walk with OnEnqueue/OnDequeue/OnVisit hooks.
//   - DFS(root, order, opts...): pre-, in- or post-order walk with OnVisit.
//   - Tree: binary tree engine. Insert fills the first free slot in level
//     order, ignoring values; Traverse produces a step per visited node.
//
// Ownership
//
//	Nodes reachable from a published root are never mutated. Engines copy the
//	path from the root to every node they change and share the rest, so each
//	history snapshot stays valid without a deep copy.
//
// Determinism
//
//	Children are always visited left before right, so every walk order is
//	reproducible.
//
// Complexity (n nodes)
//
//   - BFS, DFS:         O(n) time, O(n) memory.
//   - Tree.Insert:      O(n) to find the slot, O(depth) copying.
//
// Errors
//
//   - ErrEmptyTree      traversal of an empty tree.
//   - ErrBadOrder       unknown traversal order.
//   - errors returned by hooks, wrapped with the node id.
package bintree
