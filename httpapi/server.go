// Package httpapi exposes a structviz session over JSON HTTP.
//
//	GET  /api/structures                 list structures and their operations
//	GET  /api/structures/{name}          current state
//	POST /api/structures/{name}/ops      apply {"op": "...", "args": [...]}
//	POST /api/structures/{name}/play     apply, then stream paced frames (NDJSON)
//	POST /api/structures/{name}/undo     step back
//	POST /api/structures/{name}/redo     step forward
//	POST /api/structures/{name}/reset    reseed
//	GET  /api/structures/{name}/info     descriptive info
//	GET  /api/complexity?n=10            operation counts per class
//	GET  /complexity?n=10                growth chart (HTML)
//	GET  /metrics                        Prometheus scrape
//
// Ignored intents answer 200 with "ignored": true. An unknown structure is
// 404. While /play is streaming, the structure reports busy and every other
// mutating request on it answers 409.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/structviz/complexity"
	"github.com/katalvlaran/structviz/config"
	"github.com/katalvlaran/structviz/describe"
	"github.com/katalvlaran/structviz/observability"
	"github.com/katalvlaran/structviz/session"
	vtrace "github.com/katalvlaran/structviz/trace"
)

const (
	defaultN        = 10
	maxBodyBytes    = 1 << 16
	ndjsonType      = "application/x-ndjson"
	shutdownTimeout = 5 * time.Second
	idleTimeout     = 120 * time.Second
)

// OpRequest is the body of POST /api/structures/{name}/ops.
type OpRequest struct {
	Op   string   `json:"op"`
	Args []string `json:"args,omitempty"`
}

// PlayEvent is one line of a /play stream: a frame while the trace plays,
// then the outcome. Error is set instead when playback stops early.
type PlayEvent struct {
	Frame   *session.Frame   `json:"frame,omitempty"`
	Outcome *session.Outcome `json:"outcome,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// HistoryResponse answers undo and redo.
type HistoryResponse struct {
	Moved bool         `json:"moved"`
	View  session.View `json:"view"`
}

// ComplexityResponse answers GET /api/complexity.
type ComplexityResponse struct {
	N      int                `json:"n"`
	Counts []complexity.Count `json:"counts"`
	Cards  []complexity.Card  `json:"cards"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Server routes HTTP requests to a session.
type Server struct {
	sess      *session.Session
	metrics   *observability.Metrics
	describer *describe.Provider
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics mounts /metrics.
func WithMetrics(m *observability.Metrics) Option { return func(s *Server) { s.metrics = m } }

// WithDescriber serves /info from p. Without it /info returns the fallback.
func WithDescriber(p *describe.Provider) Option { return func(s *Server) { s.describer = p } }

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.logger = l } }

// WithTracer overrides the tracer used for server spans.
func WithTracer(t trace.Tracer) Option { return func(s *Server) { s.tracer = t } }

// New returns a Server for sess.
func New(sess *session.Session, opts ...Option) *Server {
	s := &Server{
		sess:   sess,
		logger: slog.New(slog.DiscardHandler),
		tracer: observability.Tracer(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler returns the routed handler wrapped in request middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/structures", s.handleList)
	mux.HandleFunc("GET /api/structures/{name}", s.handleView)
	mux.HandleFunc("POST /api/structures/{name}/ops", s.handleApply)
	mux.HandleFunc("POST /api/structures/{name}/play", s.handlePlay)
	mux.HandleFunc("POST /api/structures/{name}/undo", s.handleHistory(s.sess.Undo))
	mux.HandleFunc("POST /api/structures/{name}/redo", s.handleHistory(s.sess.Redo))
	mux.HandleFunc("POST /api/structures/{name}/reset", s.handleReset)
	mux.HandleFunc("GET /api/structures/{name}/info", s.handleInfo)
	mux.HandleFunc("GET /api/complexity", s.handleComplexity)
	mux.HandleFunc("GET /complexity", s.handleChart)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	return middleware(s.tracer, s.logger, mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", slog.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpapi: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(ctx, "encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrUnknownStructure):
		status = http.StatusNotFound
	case errors.Is(err, vtrace.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, complexity.ErrBadN), errors.Is(err, errBadBody):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx, "request failed", slog.Any("error", err))
	}
	s.writeJSON(ctx, w, status, errorBody{Error: err.Error()})
}

var errBadBody = errors.New("invalid request body")

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(r.Context(), w, http.StatusOK, s.sess.Structures())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, err := s.sess.View(r.PathValue("name"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, v)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req OpRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(r.Context(), w, fmt.Errorf("%w: %v", errBadBody, err))
		return
	}
	out, err := s.sess.Apply(r.Context(), r.PathValue("name"), req.Op, req.Args...)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, out)
}

// handlePlay keeps the structure's gate for the whole paced trace, so the
// response only ends once the last frame has settled.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req OpRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(ctx, w, fmt.Errorf("%w: %v", errBadBody, err))
		return
	}

	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)
	started := false
	send := func(ev PlayEvent) error {
		if !started {
			started = true
			// Playback outlasts the server's write timeout.
			_ = rc.SetWriteDeadline(time.Time{})
			w.Header().Set("Content-Type", ndjsonType)
			w.WriteHeader(http.StatusOK)
		}
		if err := enc.Encode(ev); err != nil {
			return err
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}

		return nil
	}

	out, err := s.sess.Play(ctx, r.PathValue("name"), req.Op, req.Args, func(f session.Frame) error {
		return send(PlayEvent{Frame: &f})
	})
	if err != nil {
		if !started {
			s.writeError(ctx, w, err)
			return
		}
		s.logger.WarnContext(ctx, "play stream stopped", slog.Any("error", err))
		_ = send(PlayEvent{Error: err.Error()})
		return
	}
	out.Frames = nil
	if err := send(PlayEvent{Outcome: &out}); err != nil {
		s.logger.WarnContext(ctx, "play stream outcome", slog.Any("error", err))
	}
}

func (s *Server) handleHistory(move func(string) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		moved, err := move(name)
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}
		v, err := s.sess.View(name)
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}
		s.writeJSON(r.Context(), w, http.StatusOK, HistoryResponse{Moved: moved, View: v})
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.sess.Reset(name); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	v, err := s.sess.View(name)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, v)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	v, err := s.sess.View(r.PathValue("name"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	info := describe.Fallback()
	if s.describer != nil {
		info = s.describer.Fetch(r.Context(), v.Name)
	}
	s.writeJSON(r.Context(), w, http.StatusOK, info)
}

func queryN(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return defaultN, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", complexity.ErrBadN, raw)
	}

	return n, nil
}

func (s *Server) handleComplexity(w http.ResponseWriter, r *http.Request) {
	n, err := queryN(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	counts, err := complexity.Counts(n)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, ComplexityResponse{N: n, Counts: counts, Cards: complexity.Cards()})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	n, err := queryN(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if _, err := complexity.Counts(n); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := complexity.RenderChart(w, n); err != nil {
		s.logger.ErrorContext(r.Context(), "render chart", slog.Any("error", err))
	}
}
