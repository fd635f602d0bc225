package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Intent is one scripted operation.
type Intent struct {
	Structure string   `yaml:"structure" json:"structure"`
	Op        string   `yaml:"op" json:"op"`
	Args      []string `yaml:"args,omitempty,flow" json:"args,omitempty"`
}

// Script is an ordered list of intents, usually loaded from YAML:
//
//	name: heap demo
//	steps:
//	  - {structure: heap, op: insert, args: [1]}
//	  - {structure: heap, op: extract_min}
type Script struct {
	Name  string   `yaml:"name,omitempty" json:"name,omitempty"`
	Steps []Intent `yaml:"steps" json:"steps"`
}

// LoadScript decodes a YAML (or JSON) script. Unknown fields are rejected.
func LoadScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Script
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrBadScript)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadScript, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrBadScript)
	}
	for i, st := range sc.Steps {
		if st.Structure == "" || st.Op == "" {
			return nil, fmt.Errorf("%w: step %d needs structure and op", ErrBadScript, i+1)
		}
	}

	return &sc, nil
}

// RunHooks observe a scripted run. Any nil hook is skipped; an error from
// a hook stops the run.
type RunHooks struct {
	// Before runs ahead of step i (zero-based) and may read the state.
	Before func(i int, st Intent) error

	// Frame receives each paced frame of the step's trace.
	Frame func(st Intent, f Frame) error

	// After runs once the step has played, ignored or not.
	After func(i int, st Intent, out Outcome) error
}

// Run plays every step in order. Ignored steps are kept in the returned
// outcomes and do not stop the run; any other error does.
func (s *Session) Run(ctx context.Context, sc *Script, h RunHooks) ([]Outcome, error) {
	outs := make([]Outcome, 0, len(sc.Steps))
	for i, st := range sc.Steps {
		if h.Before != nil {
			if err := h.Before(i, st); err != nil {
				return outs, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		show := func(Frame) error { return nil }
		if h.Frame != nil {
			show = func(f Frame) error { return h.Frame(st, f) }
		}
		out, err := s.Play(ctx, st.Structure, st.Op, st.Args, show)
		if err != nil {
			return outs, fmt.Errorf("step %d (%s %s): %w", i+1, st.Structure, st.Op, err)
		}
		outs = append(outs, out)
		if h.After != nil {
			if err := h.After(i, st, out); err != nil {
				return outs, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}

	return outs, nil
}
