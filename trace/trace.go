package trace

import (
	"context"
	"iter"
	"sync/atomic"
	"time"
)

// Trace is a finite, restartable sequence of steps.
// The zero value is an empty trace.
type Trace[S any, K comparable] struct {
	gen func(yield func(Step[S, K]) bool)
	n   int
}

// FromSteps builds a trace that replays a recorded slice.
// The slice is not copied; callers must not mutate it afterwards.
func FromSteps[S any, K comparable](steps []Step[S, K]) *Trace[S, K] {
	return &Trace[S, K]{
		n: len(steps),
		gen: func(yield func(Step[S, K]) bool) {
			for _, s := range steps {
				if !yield(s) {
					return
				}
			}
		},
	}
}

// All returns an iterator over the steps, starting from the first one.
func (t *Trace[S, K]) All() iter.Seq[Step[S, K]] {
	return func(yield func(Step[S, K]) bool) {
		if t == nil || t.gen == nil {
			return
		}
		t.gen(yield)
	}
}

// Len returns the number of steps.
func (t *Trace[S, K]) Len() int {
	if t == nil {
		return 0
	}

	return t.n
}

// Steps drains the trace into a slice.
func (t *Trace[S, K]) Steps() []Step[S, K] {
	out := make([]Step[S, K], 0, max(t.Len(), 0))
	for s := range t.All() {
		out = append(out, s)
	}

	return out
}

// Last returns the final step, or false for an empty trace.
func (t *Trace[S, K]) Last() (Step[S, K], bool) {
	var (
		last Step[S, K]
		ok   bool
	)
	for s := range t.All() {
		last, ok = s, true
	}

	return last, ok
}

// Cursor returns a pull-style reader positioned before the first step.
func (t *Trace[S, K]) Cursor() *Cursor[S, K] {
	return &Cursor[S, K]{trace: t}
}

// Cursor steps through a trace one frame at a time.
// Call Stop (or drain it) to release the underlying iterator.
type Cursor[S any, K comparable] struct {
	trace *Trace[S, K]
	next  func() (Step[S, K], bool)
	stop  func()
	pos   int
	done  bool
}

// Next returns the next step, or false once the trace is exhausted.
func (c *Cursor[S, K]) Next() (Step[S, K], bool) {
	if c.done {
		var zero Step[S, K]
		return zero, false
	}
	if c.next == nil {
		c.next, c.stop = iter.Pull(c.trace.All())
	}
	s, ok := c.next()
	if !ok {
		c.Stop()
		return s, false
	}
	c.pos++

	return s, true
}

// Pos returns how many steps have been consumed so far.
func (c *Cursor[S, K]) Pos() int { return c.pos }

// RunToCompletion consumes every remaining step and returns the last one.
// ok is false when no step remained.
func (c *Cursor[S, K]) RunToCompletion() (last Step[S, K], ok bool) {
	for {
		s, more := c.Next()
		if !more {
			return last, ok
		}
		last, ok = s, true
	}
}

// Reset rewinds the cursor to the beginning of the trace.
func (c *Cursor[S, K]) Reset() {
	c.Stop()
	c.pos = 0
	c.done = false
}

// Stop releases the iterator; subsequent Next calls report exhaustion until
// Reset. It is safe to call more than once.
func (c *Cursor[S, K]) Stop() {
	if c.stop != nil {
		c.stop()
	}
	c.next, c.stop = nil, nil
	c.done = true
}

// Recorder accumulates steps during an operation.
type Recorder[S any, K comparable] struct {
	steps []Step[S, K]
}

// NewRecorder returns an empty recorder.
func NewRecorder[S any, K comparable]() *Recorder[S, K] {
	return &Recorder[S, K]{}
}

// Emit appends a step with the given snapshot, note and highlight keys.
func (r *Recorder[S, K]) Emit(state S, note string, highlight ...K) {
	r.steps = append(r.steps, Step[S, K]{State: state, Note: note, Highlight: highlight})
}

// EmitResult appends a step carrying a scalar result.
func (r *Recorder[S, K]) EmitResult(state S, note string, result any, highlight ...K) {
	r.steps = append(r.steps, Step[S, K]{State: state, Note: note, Highlight: highlight, Result: result})
}

// Len returns the number of recorded steps.
func (r *Recorder[S, K]) Len() int { return len(r.steps) }

// Trace freezes the recorded steps into a replayable trace.
func (r *Recorder[S, K]) Trace() *Trace[S, K] {
	return FromSteps(r.steps)
}

// Play hands every step of tr to show, pausing between steps as pacer says.
// It returns early if ctx is cancelled or show fails.
func Play[S any, K comparable](ctx context.Context, tr *Trace[S, K], pacer Pacer, show func(Step[S, K]) error) error {
	if pacer == nil {
		pacer = NoPause
	}
	total := tr.Len()
	i := 0
	for s := range tr.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := show(s); err != nil {
			return err
		}
		if err := sleep(ctx, pacer.Pause(i, total)); err != nil {
			return err
		}
		i++
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Gate serializes trace-producing operations on one engine instance.
// A second caller is rejected with ErrBusy rather than queued.
type Gate struct {
	busy atomic.Bool
}

// TryAcquire claims the gate. It returns ErrBusy if it is already held.
func (g *Gate) TryAcquire() error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}

	return nil
}

// Release frees the gate.
func (g *Gate) Release() { g.busy.Store(false) }

// Busy reports whether a trace is currently in flight. Display surfaces use
// it to disable input.
func (g *Gate) Busy() bool { return g.busy.Load() }
