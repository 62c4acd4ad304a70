// Package lispmcp exposes a lisp session as Model Context Protocol tools.
package lispmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bmatsuo/rlisp/history"
	"github.com/bmatsuo/rlisp/lisp"
	"github.com/bmatsuo/rlisp/lisp/lispjson"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names
const (
	ToolEval  = "rlisp_eval"
	ToolBind  = "rlisp_bind"
	ToolReset = "rlisp_reset"
)

// EnvFunc creates a fresh root environment for a session.
type EnvFunc func() (*lisp.LEnv, error)

// Server serves one lisp session over MCP.  Tool calls are serialized.
type Server struct {
	mu      sync.Mutex
	env     *lisp.LEnv
	newEnv  EnvFunc
	history *history.Store
	session string
	logger  *slog.Logger
	mcp     *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithHistory records every evaluation in store under session.
func WithHistory(store *history.Store, session string) Option {
	return func(s *Server) {
		s.history = store
		s.session = session
	}
}

// WithLogger makes the server log tool calls to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New returns a Server whose session environment is created by newEnv.
func New(name, version string, newEnv EnvFunc, opts ...Option) (*Server, error) {
	env, err := newEnv()
	if err != nil {
		return nil, err
	}
	s := &Server{
		env:    env,
		newEnv: newEnv,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcp = server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
	)
	s.mcp.AddTool(
		mcp.NewTool(ToolEval,
			mcp.WithDescription("Evaluate lisp source code in the session. Definitions persist between calls. Returns the rendered value of the last expression and its JSON form."),
			mcp.WithString("source",
				mcp.Required(),
				mcp.Description("Source code to evaluate, e.g. (define (sq x) (* x x)) (sq 4)"),
			),
		),
		s.handleEval,
	)
	s.mcp.AddTool(
		mcp.NewTool(ToolBind,
			mcp.WithDescription("Bind a symbol in the session to a value given as JSON. Arrays become lists; objects are not supported."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Symbol name to bind"),
			),
			mcp.WithString("json",
				mcp.Required(),
				mcp.Description("JSON value, e.g. [1, 2, 3]"),
			),
		),
		s.handleBind,
	)
	s.mcp.AddTool(
		mcp.NewTool(ToolReset,
			mcp.WithDescription("Discard every definition in the session and start over."),
		),
		s.handleReset,
	)
	return s, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the session over stdin/stdout until stdin is closed.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// evalResult is the JSON document returned by the eval tool.
type evalResult struct {
	Result string          `json:"result"`
	JSON   json.RawMessage `json:"json,omitempty"`
}

func (s *Server) handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("mcp tool call", "tool", ToolEval, "source", source)
	v, err := lisp.Eval(source, s.env)
	s.record(ctx, source, v, err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := evalResult{Result: v.String()}
	if b, err := lispjson.Dump(v); err == nil {
		res.JSON = b
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleBind(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := request.RequireString("json")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v := lispjson.Load([]byte(text))
	if err := lisp.GoError(v); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !isSymbol(s.env.Runtime.Reader, name) {
		return mcp.NewToolResultError(fmt.Sprintf("not a bindable symbol: %q", name)), nil
	}
	s.logger.Debug("mcp tool call", "tool", ToolBind, "name", name)
	s.env.Put(name, v)
	return mcp.NewToolResultText(fmt.Sprintf("%s = %v", name, v)), nil
}

// isSymbol reports whether name reads back as exactly one symbol, which is
// the only way a binding can later be referenced.
func isSymbol(reader lisp.Reader, name string) bool {
	if reader == nil {
		return false
	}
	exprs, err := reader.Read(ToolBind, strings.NewReader(name))
	if err != nil || len(exprs) != 1 {
		return false
	}
	return exprs[0].Type == lisp.LSymbol && exprs[0].Str == name
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	env, err := s.newEnv()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("mcp tool call", "tool", ToolReset)
	s.env = env
	return mcp.NewToolResultText("session reset"), nil
}

func (s *Server) record(ctx context.Context, source string, v *lisp.LVal, err error) {
	if s.history == nil {
		return
	}
	e := history.Entry{Session: s.session, Source: source}
	if err != nil {
		e.Error = err.Error()
	} else {
		e.Result = v.String()
	}
	if err := s.history.Record(ctx, e); err != nil {
		s.logger.Warn("unable to record history", "error", err)
	}
}
