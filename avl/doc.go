// Package avl implements a self-balancing binary search tree (AVL tree).
//
// What:
//
//	Insert descends like a plain BST, attaches a leaf and, while the
//	recursion unwinds, recomputes each node's height and balance factor.
//	A node whose balance leaves [-1, 1] is repaired with one of the four
//	rotation cases (LL, RR, LR, RL).
//
// Why:
//
//	Keeping |height(left) - height(right)| <= 1 at every node bounds the
//	height to O(log n), so search and insert stay logarithmic regardless of
//	insertion order.
//
// Complexity:
//
//	Insert O(log n) time, O(log n) fresh nodes (the root-to-leaf path).
//
// Traces:
//
//	One step per comparison on the way down, one step per node on the way
//	back up (height and balance in the note, rotations named), and a final
//	step with the committed tree.
//
// Errors:
//
//	ErrDuplicate - value already present; the tree is unchanged.
package avl
