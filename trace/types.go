package trace

import (
	"errors"
	"time"
)

// ErrBusy is returned when an operation is attempted while another trace
// is still in flight on the same engine.
var ErrBusy = errors.New("trace: another operation is in progress")

// Step is a single frame of an operation's internal trace.
type Step[S any, K comparable] struct {
	// State is the (partial or final) value to render for this frame.
	State S `json:"state"`

	// Highlight lists the indices or node ids that the frame emphasizes.
	Highlight []K `json:"highlight,omitempty"`

	// Note is a short human-readable description ("swap 3 and 1").
	Note string `json:"note,omitempty"`

	// Result is an optional scalar outcome (a root, a sum, a popped value).
	// It is nil for frames that carry none.
	Result any `json:"result,omitempty"`
}

// Highlighted reports whether key is part of the step's highlight set.
func (s Step[S, K]) Highlighted(key K) bool {
	for _, k := range s.Highlight {
		if k == key {
			return true
		}
	}

	return false
}

// Pacer decides how long a driver pauses after showing step i of total.
type Pacer interface {
	Pause(i, total int) time.Duration
}

// PacerFunc adapts a plain function to Pacer.
type PacerFunc func(i, total int) time.Duration

// Pause implements Pacer.
func (f PacerFunc) Pause(i, total int) time.Duration { return f(i, total) }

// FixedPacer pauses d after every step.
func FixedPacer(d time.Duration) Pacer {
	return PacerFunc(func(int, int) time.Duration { return d })
}

// PerStepPacer pauses once, after the final step, for perStep multiplied by
// the number of steps. It matches displays that show a whole path at once
// and hold it for a time proportional to its length.
func PerStepPacer(perStep time.Duration) Pacer {
	return PacerFunc(func(i, total int) time.Duration {
		if i != total-1 {
			return 0
		}

		return time.Duration(total) * perStep
	})
}

// NoPause is a Pacer that never waits. Tests and non-interactive surfaces use it.
var NoPause Pacer = FixedPacer(0)
