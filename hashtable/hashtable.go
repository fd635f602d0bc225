package hashtable

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/structviz/history"
	"github.com/katalvlaran/structviz/trace"
)

// Table is the hash table engine. It is not safe for concurrent use.
type Table struct {
	hist *history.History[Buckets]
	size int
}

// New returns an empty table. It fails only for a non-positive size.
func New(opts ...Option) (*Table, error) {
	o := options{size: DefaultSize}
	for _, fn := range opts {
		fn(&o)
	}
	if o.size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, o.size)
	}
	b := make(Buckets, o.size)
	for i := range b {
		b[i] = []Entry{}
	}

	return &Table{hist: history.New(&b, o.histSize), size: o.size}, nil
}

// Size returns the number of buckets.
func (t *Table) Size() int { return t.size }

// Buckets returns the current table. Callers must not mutate it.
func (t *Table) Buckets() Buckets { return *t.hist.Present() }

// Len returns the number of stored entries.
func (t *Table) Len() int {
	n := 0
	for _, chain := range t.Buckets() {
		n += len(chain)
	}

	return n
}

// Insert stores value under key, overwriting an existing entry in place or
// appending to the end of the bucket's chain.
func (t *Table) Insert(key, value string) (*Trace, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	idx := Hash(key, t.size)
	cur := t.Buckets()

	rec := trace.NewRecorder[Buckets, int]()
	rec.Emit(cur, fmt.Sprintf("hash(%q) = %d", key, idx), idx)

	next := t.spine(cur)
	chain := slices.Clone(cur[idx])
	if pos := slices.IndexFunc(chain, func(e Entry) bool { return e.Key == key }); pos >= 0 {
		chain[pos].Value = value
		rec.Emit(next, fmt.Sprintf("update %q in bucket %d", key, idx), idx)
	} else {
		chain = append(chain, Entry{Key: key, Value: value})
		rec.Emit(next, fmt.Sprintf("append %q to bucket %d", key, idx), idx)
	}
	next[idx] = chain
	t.hist.Set(&next)

	return rec.Trace(), nil
}

// Search looks key up. The trace's final step carries the *Entry found (or
// nil) as its Result.
func (t *Table) Search(key string) (Entry, bool, *Trace) {
	cur := t.Buckets()
	if key == "" {
		return Entry{}, false, nil
	}
	idx := Hash(key, t.size)

	rec := trace.NewRecorder[Buckets, int]()
	rec.Emit(cur, fmt.Sprintf("hash(%q) = %d", key, idx), idx)
	for _, e := range cur[idx] {
		if e.Key == key {
			found := e
			rec.EmitResult(cur, fmt.Sprintf("found %q = %q", e.Key, e.Value), &found, idx)
			return e, true, rec.Trace()
		}
	}
	rec.EmitResult(cur, fmt.Sprintf("%q not found", key), (*Entry)(nil), idx)

	return Entry{}, false, rec.Trace()
}

// Remove deletes key from its chain. Removing an absent key changes nothing
// and records no history, but still highlights the bucket.
func (t *Table) Remove(key string) (bool, *Trace) {
	cur := t.Buckets()
	if key == "" {
		return false, nil
	}
	idx := Hash(key, t.size)

	rec := trace.NewRecorder[Buckets, int]()
	rec.Emit(cur, fmt.Sprintf("hash(%q) = %d", key, idx), idx)

	chain := slices.DeleteFunc(slices.Clone(cur[idx]), func(e Entry) bool { return e.Key == key })
	if len(chain) == len(cur[idx]) {
		rec.Emit(cur, fmt.Sprintf("%q not present", key), idx)
		return false, rec.Trace()
	}
	next := t.spine(cur)
	next[idx] = chain
	t.hist.Set(&next)
	rec.Emit(next, fmt.Sprintf("removed %q from bucket %d", key, idx), idx)

	return true, rec.Trace()
}

// spine copies the outer slice; chains are shared until replaced.
func (t *Table) spine(cur Buckets) Buckets {
	return slices.Clone(cur)
}

// Undo reverts the last mutation.
func (t *Table) Undo() bool { return t.hist.Undo() }

// Redo re-applies the last undone mutation.
func (t *Table) Redo() bool { return t.hist.Redo() }

// CanUndo reports whether Undo is possible.
func (t *Table) CanUndo() bool { return t.hist.CanUndo() }

// CanRedo reports whether Redo is possible.
func (t *Table) CanRedo() bool { return t.hist.CanRedo() }
