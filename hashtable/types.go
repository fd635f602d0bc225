// Package hashtable implements a fixed-size, separately chained hash table
// engine with bucket-level highlighting.
//
// The hash is position weighted:
//
//	h = 0
//	for i, c := range key { h = (h + code(c)*(i+1)) mod size }
//
// so "ab" and "ba" usually land in different buckets. Keys are hashed by
// Unicode code point.
//
// Complexity (n entries, m buckets): Insert/Search/Remove O(1 + n/m) expected,
// plus an O(m) copy of the bucket spine per mutation for history.
package hashtable

import (
	"errors"

	"github.com/katalvlaran/structviz/trace"
)

// DefaultSize is the number of buckets used when no size is configured.
const DefaultSize = 7

var (
	// ErrEmptyKey is returned for operations on the empty key.
	ErrEmptyKey = errors.New("hashtable: key is empty")

	// ErrBadSize is returned when a table is configured with fewer than one bucket.
	ErrBadSize = errors.New("hashtable: size must be positive")
)

// Entry is a key/value pair stored in a bucket chain.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Buckets is the table value: one chain per bucket index.
type Buckets [][]Entry

// Trace highlights bucket indices.
type Trace = trace.Trace[Buckets, int]

// Option configures a Table.
type Option func(*options)

type options struct {
	size     int
	histSize int
}

// WithSize sets the bucket count.
func WithSize(n int) Option { return func(o *options) { o.size = n } }

// WithHistoryLimit caps the undo stack (0 = unbounded).
func WithHistoryLimit(n int) Option { return func(o *options) { o.histSize = n } }

// Hash returns the bucket index of key in a table of the given size.
func Hash(key string, size int) int {
	h := 0
	i := 0
	for _, c := range key {
		h = (h + int(c)*(i+1)) % size
		i++
	}

	return h
}
