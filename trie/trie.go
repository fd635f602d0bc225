package trie

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

// ErrEmptyWord is returned for an empty insert or search argument.
var ErrEmptyWord = errors.New("trie: empty word")

// Node is one trie node. Children are keyed by a single character.
type Node struct {
	ID       string           `json:"id"`
	End      bool             `json:"isEndOfWord"`
	Children map[string]*Node `json:"children"`
}

// Keys returns the child characters in sorted order.
func (n *Node) Keys() []string { return slices.Sorted(maps.Keys(n.Children)) }

func (n *Node) clone() *Node {
	c := *n
	c.Children = maps.Clone(n.Children)
	if c.Children == nil {
		c.Children = map[string]*Node{}
	}

	return &c
}

// Outcome is the result of Search.
type Outcome int

const (
	NotFound Outcome = iota
	PrefixOnly
	Word
)

func (o Outcome) String() string {
	switch o {
	case PrefixOnly:
		return "prefix exists but is not a word"
	case Word:
		return "word found"
	default:
		return "prefix not found"
	}
}

// Trace is a sequence of root snapshots highlighted by node id.
type Trace = trace.Trace[*Node, string]

// Option configures New.
type Option func(*options)

type options struct {
	words    []string
	histSize int
}

// WithWords inserts words into the new trie without recording history.
func WithWords(words ...string) Option {
	return func(o *options) { o.words = append(o.words, words...) }
}

// WithHistoryLimit caps the undo stack (0 = unbounded).
func WithHistoryLimit(n int) Option { return func(o *options) { o.histSize = n } }

// Trie is the trie engine. It is not safe for concurrent use.
type Trie struct {
	hist   *history.History[Node]
	nextID int
}

// New returns a trie holding only the root.
func New(opts ...Option) *Trie {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	t := &Trie{}
	t.hist = history.New(t.newNode(), o.histSize)
	for _, w := range o.words {
		_, _ = t.Insert(w)
	}
	t.hist.Reset(t.hist.Present())

	return t
}

func (t *Trie) newNode() *Node {
	n := &Node{ID: strconv.Itoa(t.nextID), Children: map[string]*Node{}}
	t.nextID++

	return n
}

// Root returns the current root. Nodes must not be mutated.
func (t *Trie) Root() *Node { return t.hist.Present() }

// Insert adds word. Inserting a word already present records no history.
func (t *Trie) Insert(word string) (*Trace, error) {
	if word == "" {
		return nil, ErrEmptyWord
	}
	if t.lookup(word) == Word {
		return t.walk(word, fmt.Sprintf("%q already present", word), nil), nil
	}

	root := t.Root().clone()
	cur := root
	for _, r := range word {
		ch := string(r)
		next, ok := cur.Children[ch]
		if ok {
			next = next.clone()
		} else {
			next = t.newNode()
		}
		cur.Children[ch] = next
		cur = next
	}
	cur.End = true
	t.hist.Set(root)

	return t.walk(word, fmt.Sprintf("inserted %q", word), nil), nil
}

// Search looks word up and reports how far it matched.
func (t *Trie) Search(word string) (Outcome, *Trace, error) {
	if word == "" {
		return NotFound, nil, ErrEmptyWord
	}
	out := t.lookup(word)
	tr := t.walk(word, fmt.Sprintf("%q: %s", word, out), out)

	return out, tr, nil
}

func (t *Trie) lookup(word string) Outcome {
	cur := t.Root()
	for _, r := range word {
		next, ok := cur.Children[string(r)]
		if !ok {
			return NotFound
		}
		cur = next
	}
	if cur.End {
		return Word
	}

	return PrefixOnly
}

// walk records the descent along word over the current root: one step per
// node reached, each highlighting the path so far. The last step carries
// note and result.
func (t *Trie) walk(word, note string, result any) *Trace {
	root := t.Root()
	rec := trace.NewRecorder[*Node, string]()
	path := []string{root.ID}
	cur := root
	for _, r := range word {
		rec.Emit(root, fmt.Sprintf("at %s", cur.ID), slices.Clone(path)...)
		next, ok := cur.Children[string(r)]
		if !ok {
			break
		}
		cur = next
		path = append(path, cur.ID)
	}
	rec.EmitResult(root, note, result, path...)

	return rec.Trace()
}

// Words lists every stored word in lexical order.
func (t *Trie) Words() []string {
	var out []string
	var visit func(n *Node, prefix string)
	visit = func(n *Node, prefix string) {
		if n.End {
			out = append(out, prefix)
		}
		for _, k := range n.Keys() {
			visit(n.Children[k], prefix+k)
		}
	}
	visit(t.Root(), "")

	return out
}

// Undo reverts the last insert.
func (t *Trie) Undo() bool { return t.hist.Undo() }

// Redo re-applies the last undone insert.
func (t *Trie) Redo() bool { return t.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (t *Trie) CanUndo() bool { return t.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (t *Trie) CanRedo() bool { return t.hist.CanRedo() }
