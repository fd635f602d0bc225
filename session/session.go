package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/structviz/config"
	"github.com/katalvlaran/structviz/observability"
	"github.com/katalvlaran/structviz/trace"
)

// Session holds one engine per structure for the lifetime of a display
// surface. Operations on different structures may run concurrently; a
// second operation on a structure whose trace is still playing is
// rejected with trace.ErrBusy.
type Session struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	tracer  oteltrace.Tracer

	// engines is fixed after New; Reset swaps the engine inside a slot.
	engines map[Structure]*slot
}

// slot pairs an engine with the lock guarding its state. The gate marks
// playback; mu guards the engine pointer and the engine's own fields. A
// slot outlives Reset so callers holding it never act on a stale engine.
type slot struct {
	id   Structure
	gate trace.Gate

	mu sync.RWMutex
	*engine
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Ignored intents are logged at debug level.
func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.logger = l } }

// WithMetrics records operation counts, trace sizes and history moves.
func WithMetrics(m *observability.Metrics) Option { return func(s *Session) { s.metrics = m } }

// WithTracer overrides the OpenTelemetry tracer.
func WithTracer(t oteltrace.Tracer) Option { return func(s *Session) { s.tracer = t } }

// New builds every engine from cfg. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{
		cfg:     cfg,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  observability.Tracer(),
		engines: make(map[Structure]*slot, len(order)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, id := range order {
		e, err := newEngine(id, cfg)
		if err != nil {
			return nil, fmt.Errorf("session: build %s: %w", id, err)
		}
		s.engines[id] = &slot{id: id, engine: e}
	}

	return s, nil
}

// Structures lists every structure with its operations.
func (s *Session) Structures() []Info {
	out := make([]Info, 0, len(order))
	for _, id := range order {
		sl := s.engines[id]
		sl.mu.RLock()
		out = append(out, sl.info)
		sl.mu.RUnlock()
	}

	return out
}

func (s *Session) lookup(structure string) (*slot, error) {
	id := Structure(strings.ToLower(strings.TrimSpace(structure)))
	sl, ok := s.engines[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStructure, structure)
	}

	return sl, nil
}

// Apply runs one operation and returns its outcome with the full trace.
// Invalid intents come back with Ignored set and a nil error.
func (s *Session) Apply(ctx context.Context, structure, op string, args ...string) (Outcome, error) {
	sl, err := s.acquire(structure, op)
	if err != nil {
		return Outcome{}, err
	}
	defer sl.gate.Release()

	return s.apply(ctx, sl, op, args)
}

// Play applies the operation, then hands each frame to show paced by the
// structure's configured delays. The structure stays busy until the last
// frame has been shown.
func (s *Session) Play(ctx context.Context, structure, op string, args []string, show func(Frame) error) (Outcome, error) {
	sl, err := s.acquire(structure, op)
	if err != nil {
		return Outcome{}, err
	}
	defer sl.gate.Release()

	out, err := s.apply(ctx, sl, op, args)
	if err != nil || out.Ignored {
		return out, err
	}
	if s.metrics != nil {
		s.metrics.InFlight.Inc()
		defer s.metrics.InFlight.Dec()
	}
	if err := trace.Play(ctx, out.Trace(), sl.pacer, show); err != nil {
		return out, err
	}

	return out, nil
}

func (s *Session) acquire(structure, op string) (*slot, error) {
	sl, err := s.lookup(structure)
	if err != nil {
		s.count(structure, op, observability.OutcomeError)
		return nil, err
	}
	if err := sl.gate.TryAcquire(); err != nil {
		s.count(string(sl.id), op, observability.OutcomeBusy)
		return nil, fmt.Errorf("%s: %w", sl.id, err)
	}

	return sl, nil
}

func (s *Session) apply(ctx context.Context, sl *slot, op string, raw []string) (Outcome, error) {
	id := sl.id
	ctx, span := s.tracer.Start(ctx, "session.apply", oteltrace.WithAttributes(
		attribute.String("structure", string(id)),
		attribute.String("op", op),
	))
	defer span.End()

	out := Outcome{Structure: id, Op: op, Args: raw}
	sl.mu.Lock()
	entry, err := sl.lookup(op, raw)
	if err == nil {
		out.Frames, out.Result, err = entry.run(ctx, args(raw))
	}
	out.CanUndo, out.CanRedo = sl.hist.CanUndo(), sl.hist.CanRedo()
	sl.mu.Unlock()

	switch {
	case err == nil:
	case IsIgnorable(err):
		s.logger.DebugContext(ctx, "intent ignored",
			slog.String("structure", string(id)),
			slog.String("op", op),
			slog.Any("args", raw),
			slog.String("reason", err.Error()))
		s.count(string(id), op, observability.OutcomeIgnored)
		span.SetAttributes(attribute.Bool("ignored", true))

		return Outcome{Structure: id, Op: op, Args: raw, Ignored: true, Reason: err.Error(),
			CanUndo: out.CanUndo, CanRedo: out.CanRedo}, nil
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.count(string(id), op, observability.OutcomeError)

		return Outcome{}, fmt.Errorf("%s %s: %w", id, op, err)
	}

	span.SetAttributes(attribute.Int("steps", len(out.Frames)))
	s.count(string(id), op, observability.OutcomeApplied)
	if s.metrics != nil {
		s.metrics.TraceSteps.WithLabelValues(string(id)).Observe(float64(len(out.Frames)))
	}
	s.logger.DebugContext(ctx, "intent applied",
		slog.String("structure", string(id)),
		slog.String("op", op),
		slog.Int("steps", len(out.Frames)))

	return out, nil
}

func (s *Session) count(structure, op, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Operations.WithLabelValues(structure, op, outcome).Inc()
}

// Undo steps the structure back one history entry. It reports false when
// there was nothing to undo.
func (s *Session) Undo(structure string) (bool, error) {
	return s.move(structure, "undo", func(h historian) bool { return h.Undo() })
}

// Redo re-applies the most recently undone entry.
func (s *Session) Redo(structure string) (bool, error) {
	return s.move(structure, "redo", func(h historian) bool { return h.Redo() })
}

func (s *Session) move(structure, direction string, fn func(historian) bool) (bool, error) {
	sl, err := s.lookup(structure)
	if err != nil {
		return false, err
	}
	if err := sl.gate.TryAcquire(); err != nil {
		return false, fmt.Errorf("%s: %w", sl.id, err)
	}
	defer sl.gate.Release()

	sl.mu.Lock()
	moved := fn(sl.hist)
	sl.mu.Unlock()

	if s.metrics != nil {
		s.metrics.History.WithLabelValues(string(sl.id), direction, strconv.FormatBool(moved)).Inc()
	}
	s.logger.Debug("history move",
		slog.String("structure", string(sl.id)),
		slog.String("direction", direction),
		slog.Bool("moved", moved))

	return moved, nil
}

// View returns the current value of a structure.
func (s *Session) View(structure string) (View, error) {
	sl, err := s.lookup(structure)
	if err != nil {
		return View{}, err
	}
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	state, derived := sl.view()

	return View{
		Structure: sl.id,
		Name:      sl.info.Name,
		State:     state,
		Derived:   derived,
		CanUndo:   sl.hist.CanUndo(),
		CanRedo:   sl.hist.CanRedo(),
		Busy:      sl.gate.Busy(),
	}, nil
}

// Busy reports whether a trace is still playing on the structure.
func (s *Session) Busy(structure string) (bool, error) {
	sl, err := s.lookup(structure)
	if err != nil {
		return false, err
	}

	return sl.gate.Busy(), nil
}

// Reset reseeds the structure in place and drops its history.
func (s *Session) Reset(structure string) error {
	sl, err := s.lookup(structure)
	if err != nil {
		return err
	}
	if err := sl.gate.TryAcquire(); err != nil {
		return fmt.Errorf("%s: %w", sl.id, err)
	}
	defer sl.gate.Release()

	e, err := newEngine(sl.id, s.cfg)
	if err != nil {
		return err
	}
	sl.mu.Lock()
	sl.engine = e
	sl.mu.Unlock()
	s.logger.Info("structure reset", slog.String("structure", string(sl.id)))

	return nil
}
