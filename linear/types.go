package linear

import (
	"errors"

	"github.com/katalvlaran/structviz/trace"
)

// Sentinel errors for linear engines.
var (
	// ErrIndexOutOfRange is returned when an index falls outside the array.
	ErrIndexOutOfRange = errors.New("linear: index out of range")

	// ErrEmpty is returned when removing or peeking from an empty container.
	ErrEmpty = errors.New("linear: container is empty")

	// ErrNodeNotFound is returned when a linked-list id does not exist.
	ErrNodeNotFound = errors.New("linear: node not found")
)

// Seed values used when an engine is created without WithValues.
var (
	DefaultArray  = []int{10, 20, 30, 40, 50}
	DefaultStack  = []int{10, 20, 30}
	DefaultQueue  = []int{10, 20, 30}
	DefaultLinked = []int{10, 99, 37}
)

// SeqTrace is the trace type produced by slice-backed engines; highlight
// keys are indices.
type SeqTrace = trace.Trace[[]int, int]

// Option configures a linear engine.
type Option func(*options)

type options struct {
	seed     []int
	seeded   bool
	histSize int
}

// WithValues replaces the default seed. An empty call seeds an empty container.
func WithValues(values ...int) Option {
	return func(o *options) {
		o.seed = append([]int(nil), values...)
		o.seeded = true
	}
}

// WithHistoryLimit caps the undo stack (0 = unbounded).
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.histSize = n
		}
	}
}

func buildOptions(def []int, opts []Option) options {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if !o.seeded {
		o.seed = append([]int(nil), def...)
	}

	return o
}

func single(state []int, note string, highlight ...int) *SeqTrace {
	rec := trace.NewRecorder[[]int, int]()
	rec.Emit(state, note, highlight...)

	return rec.Trace()
}
