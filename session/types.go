// Package session owns one instance of every structure engine and turns
// display-surface intents (structure, operation, string arguments) into
// engine calls.
//
// Invalid input and unmet preconditions are not failures here: the engine
// error is logged at debug level and the caller gets an Outcome with
// Ignored set. Only an unknown structure, a busy engine or a cancelled
// playback surface as errors.
package session

import (
	"errors"

	"github.com/katalvlaran/structviz/avl"
	"github.com/katalvlaran/structviz/bintree"
	"github.com/katalvlaran/structviz/bst"
	"github.com/katalvlaran/structviz/dsu"
	"github.com/katalvlaran/structviz/graph"
	"github.com/katalvlaran/structviz/hashtable"
	"github.com/katalvlaran/structviz/heap"
	"github.com/katalvlaran/structviz/linear"
	"github.com/katalvlaran/structviz/segtree"
	"github.com/katalvlaran/structviz/trace"
	"github.com/katalvlaran/structviz/tree"
	"github.com/katalvlaran/structviz/trie"
)

// Sentinel errors for intent handling.
var (
	// ErrUnknownStructure is returned for a structure id not in Structures.
	ErrUnknownStructure = errors.New("session: unknown structure")

	// ErrUnknownOp is returned for an operation the structure lacks.
	ErrUnknownOp = errors.New("session: unknown operation")

	// ErrBadArgs is returned for a wrong argument count or a non-numeric
	// argument where a number is required.
	ErrBadArgs = errors.New("session: invalid arguments")

	// ErrBadScript is returned by LoadScript for malformed scripts.
	ErrBadScript = errors.New("session: invalid script")
)

// Structure identifies one engine.
type Structure string

const (
	Array       Structure = "array"
	Stack       Structure = "stack"
	Queue       Structure = "queue"
	LinkedList  Structure = "linked_list"
	HashTable   Structure = "hash_table"
	Tree        Structure = "tree"
	BinaryTree  Structure = "binary_tree"
	BST         Structure = "binary_search_tree"
	AVL         Structure = "avl_tree"
	Heap        Structure = "heap"
	Trie        Structure = "trie"
	DSU         Structure = "dsu"
	SegmentTree Structure = "segment_tree"
	Graph       Structure = "graph"
)

// Frame is one display step. Highlight keys are rendered as strings so
// index-keyed and id-keyed structures share one shape.
type Frame = trace.Step[any, string]

// Op describes one operation of a structure.
type Op struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
	// Variadic marks the last argument as repeatable.
	Variadic bool `json:"variadic,omitempty"`
}

// Info describes one structure for listings.
type Info struct {
	ID   Structure `json:"id"`
	Name string    `json:"name"`
	Ops  []Op      `json:"ops"`
}

// Outcome is the result of applying one intent.
type Outcome struct {
	Structure Structure `json:"structure"`
	Op        string    `json:"op"`
	Args      []string  `json:"args,omitempty"`

	// Ignored is set when the intent was malformed or its precondition
	// failed; Reason carries the engine error text.
	Ignored bool   `json:"ignored"`
	Reason  string `json:"reason,omitempty"`

	Frames []Frame `json:"frames,omitempty"`
	Result any     `json:"result,omitempty"`

	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// Trace returns the frames as a replayable trace.
func (o Outcome) Trace() *trace.Trace[any, string] { return trace.FromSteps(o.Frames) }

// View is the current value of a structure plus its history flags.
type View struct {
	Structure Structure `json:"structure"`
	Name      string    `json:"name"`
	State     any       `json:"state"`
	// Derived is a read-only projection such as DSU groups or BST in-order values.
	Derived any  `json:"derived,omitempty"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
	Busy    bool `json:"busy"`
}

var ignorable = []error{
	ErrUnknownOp, ErrBadArgs,
	linear.ErrIndexOutOfRange, linear.ErrEmpty, linear.ErrNodeNotFound,
	hashtable.ErrEmptyKey,
	tree.ErrNodeNotFound, tree.ErrRootRemoval,
	bintree.ErrEmptyTree, bintree.ErrBadOrder,
	bst.ErrDuplicate, avl.ErrDuplicate,
	heap.ErrEmpty,
	trie.ErrEmptyWord,
	dsu.ErrOutOfRange,
	segtree.ErrIndexOutOfRange, segtree.ErrBadRange, segtree.ErrEmptySource,
	graph.ErrEmptyID, graph.ErrNodeExists, graph.ErrNodeNotFound, graph.ErrStartNotFound,
}

// IsIgnorable reports whether err is an invalid-input or precondition error
// that the session turns into an ignored Outcome.
func IsIgnorable(err error) bool {
	for _, target := range ignorable {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
