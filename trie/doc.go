// Package trie implements the prefix-tree engine.
//
// Each node has a string id from a per-engine counter (the root is "0" and
// exists from the start), an end-of-word flag, and one child per next
// character. Insert and Search trace the descent one node at a time, with
// the whole path walked so far highlighted.
//
// Search distinguishes three outcomes:
//
//	NotFound   - some character has no child; the prefix is absent.
//	PrefixOnly - the path exists but its last node is not a word end.
//	Word       - the path exists and ends a previously inserted word.
//
// Insert copies the nodes on the descent path only; everything else is
// shared with earlier snapshots.
package trie
