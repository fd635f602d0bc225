// Package mcpserver exposes a structviz session as Model Context Protocol
// tools so an assistant can drive the structures and read their traces.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/structviz/complexity"
	"github.com/katalvlaran/structviz/describe"
	"github.com/katalvlaran/structviz/observability"
	"github.com/katalvlaran/structviz/session"
)

const (
	serverName = "structviz"
	spanPrefix = "mcp."
	toolCount  = 6
)

// Deps holds the server's collaborators. Zero fields use defaults.
type Deps struct {
	Session   *session.Session
	Describer *describe.Provider
	Logger    *slog.Logger
	Tracer    trace.Tracer
	Version   string
}

// Server wraps the SDK server with the structviz tools registered.
type Server struct {
	inner     *mcpsdk.Server
	sess      *session.Session
	describer *describe.Provider
	tracer    trace.Tracer
	tools     []string
}

// NewServer registers every tool against deps.Session.
func NewServer(deps Deps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = observability.Tracer()
	}
	describer := deps.Describer
	if describer == nil {
		describer = describe.NewProvider(nil)
	}

	s := &Server{
		inner:     mcpsdk.NewServer(&mcpsdk.Implementation{Name: serverName, Version: version}, opts),
		sess:      deps.Session,
		describer: describer,
		tracer:    tracer,
		tools:     make([]string, 0, toolCount),
	}
	s.register()

	return s
}

// ToolNames returns the registered tool names, sorted.
func (s *Server) ToolNames() []string {
	out := append([]string(nil), s.tools...)
	sort.Strings(out)

	return out
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.RunWithTransport(ctx, &mcpsdk.StdioTransport{})
}

// RunWithTransport serves over transport.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	if err := s.inner.Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

func (s *Server) register() {
	addTool(s, ToolNameStructures, structuresDescription, s.handleStructures)
	addTool(s, ToolNameApply, applyDescription, s.handleApply)
	addTool(s, ToolNameView, viewDescription, s.handleView)
	addTool(s, ToolNameHistory, historyDescription, s.handleHistory)
	addTool(s, ToolNameDescribe, describeDescription, s.handleDescribe)
	addTool(s, ToolNameComplexity, complexityDescription, s.handleComplexity)
}

type handler[In any] func(context.Context, *mcpsdk.CallToolRequest, In) (*mcpsdk.CallToolResult, ToolOutput, error)

func addTool[In any](s *Server, name, description string, h handler[In]) {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{Name: name, Description: description},
		mcpsdk.ToolHandlerFor[In, ToolOutput](withTracing(s.tracer, name, h)))
	s.tools = append(s.tools, name)
}

func withTracing[In any](tracer trace.Tracer, name string, h handler[In]) handler[In] {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest, in In) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, spanPrefix+name,
			trace.WithAttributes(attribute.String("mcp.tool", name)))
		defer span.End()

		res, out, err := h(ctx, req, in)
		if res != nil && res.IsError {
			span.SetStatus(codes.Error, "tool error")
		}

		return res, out, err
	}
}

func (s *Server) handleStructures(context.Context, *mcpsdk.CallToolRequest, StructuresInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return jsonResult(s.sess.Structures())
}

func (s *Server) handleApply(ctx context.Context, _ *mcpsdk.CallToolRequest, in ApplyInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	out, err := s.sess.Apply(ctx, in.Structure, in.Op, in.Args...)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(out)
}

func (s *Server) handleView(_ context.Context, _ *mcpsdk.CallToolRequest, in ViewInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	v, err := s.sess.View(in.Structure)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(v)
}

type historyResult struct {
	Moved bool         `json:"moved"`
	View  session.View `json:"view"`
}

func (s *Server) handleHistory(_ context.Context, _ *mcpsdk.CallToolRequest, in HistoryInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	var move func(string) (bool, error)
	switch strings.ToLower(in.Direction) {
	case "undo":
		move = s.sess.Undo
	case "redo":
		move = s.sess.Redo
	default:
		return errorResult(fmt.Errorf("%w: %q", ErrBadDirection, in.Direction))
	}
	moved, err := move(in.Structure)
	if err != nil {
		return errorResult(err)
	}
	v, err := s.sess.View(in.Structure)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(historyResult{Moved: moved, View: v})
}

func (s *Server) handleDescribe(ctx context.Context, _ *mcpsdk.CallToolRequest, in ViewInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	v, err := s.sess.View(in.Structure)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(s.describer.Fetch(ctx, v.Name))
}

func (s *Server) handleComplexity(_ context.Context, _ *mcpsdk.CallToolRequest, in ComplexityInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	counts, err := complexity.Counts(in.N)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(counts)
}
