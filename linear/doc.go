// Package linear implements the sequential structure engines of structviz:
// Array, Stack, Queue and LinkedList.
//
// Every engine owns one current value kept in an undo/redo history. Each
// mutation builds a fresh slice, so history snapshots never alias the live
// value. Operations return a one-step trace highlighting the index (or node
// id) they touched; there is no multi-step internal algorithm to show.
//
// Complexity
//
//   - Array:  Update O(n) copy, Append O(n) copy.
//   - Stack:  Push/Pop O(n) copy, Peek O(1).
//   - Queue:  Enqueue/Dequeue O(n) copy, Peek O(1).
//   - LinkedList: Append O(n), Remove O(n).
//
// The copies are the price of whole-value history; instances are small.
//
// Errors
//
//   - ErrIndexOutOfRange  Update outside [0, len).
//   - ErrEmpty            Pop/Peek/Dequeue on an empty container.
//   - ErrNodeNotFound     LinkedList.Remove with an unknown id.
//
// On error the value is untouched and no trace is produced.
package linear
