// Package mcp exposes the gateway's tool catalog over the Model Context
// Protocol: stdio for local clients, streamable HTTP and SSE for remote ones.
// Each session's identity is resolved once per request and decides which
// tools the session can see and call.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/gatehouse/internal/logging"
	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/ports"
)

const serverName = "gatehouse"

// Engine defines the invocation surface the transport drives.
type Engine interface {
	Catalog() []domain.Descriptor
	List(ctx context.Context, id domain.Identity) []domain.Descriptor
	Invoke(ctx context.Context, id domain.Identity, name string, args map[string]any) (domain.Result, error)
}

// Server wraps the invocation engine and exposes it as an MCP server.
type Server struct {
	engine   Engine
	auth     ports.Authenticator
	logger   *slog.Logger
	metrics  http.Handler
	baseURL  string
	version  string
	fallback domain.Identity

	mcpServer *server.MCPServer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures the server.
type Option func(*Server)

// WithAuthenticator installs the session authenticator. Without one every
// session gets the default identity.
func WithAuthenticator(a ports.Authenticator) Option {
	return func(s *Server) { s.auth = a }
}

// WithDefaultIdentity sets the identity attached to sessions that present no
// token, and to every session when no authenticator is installed. Stdio
// deployments use it to pin the process owner's identity. Defaults to
// anonymous.
func WithDefaultIdentity(id domain.Identity) Option {
	return func(s *Server) { s.fallback = id }
}

// WithLogger injects a logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsHandler mounts h at /metrics on the HTTP transport.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithBaseURL sets the externally visible base URL advertised to SSE clients.
func WithBaseURL(u string) Option {
	return func(s *Server) { s.baseURL = u }
}

// WithVersion sets the protocol-advertised server version.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// NewServer creates an MCP server over the engine. The full catalog is
// installed once; what each session sees is filtered per request.
func NewServer(eng Engine, opts ...Option) *Server {
	s := &Server{
		engine:  eng,
		logger:  logging.NewNop(),
		version: "dev",
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}

	hooks := &server.Hooks{}
	hooks.AddOnUnregisterSession(func(_ context.Context, session server.ClientSession) {
		s.releaseSession(session.SessionID())
	})

	s.mcpServer = server.NewMCPServer(serverName, s.version,
		server.WithToolFilter(s.filterTools),
		server.WithHooks(hooks),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	for _, d := range s.engine.Catalog() {
		name := d.Name
		s.mcpServer.AddTool(toTool(d), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.handleCall(ctx, name, request)
		})
	}
}

// filterTools trims the advertised catalog to what the session's identity
// may see. It runs on every tools/list, so visibility changes apply to the
// next list without reconnecting.
func (s *Server) filterTools(ctx context.Context, tools []mcp.Tool) []mcp.Tool {
	id := domain.IdentityFromContext(ctx)

	visible := make(map[string]struct{})
	for _, d := range s.engine.List(ctx, id) {
		visible[d.Name] = struct{}{}
	}

	filtered := make([]mcp.Tool, 0, len(tools))
	for _, tool := range tools {
		if _, ok := visible[tool.Name]; ok {
			filtered = append(filtered, tool)
		}
	}
	return filtered
}

// handleCall runs one tool call. Calls within a session run serially;
// separate sessions never contend. Faults come back as protocol-level error
// results, never as transport errors.
func (s *Server) handleCall(ctx context.Context, name string, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if unlock := s.lockSession(sessionID(ctx)); unlock != nil {
		defer unlock()
	}

	id := domain.IdentityFromContext(ctx)
	result, err := s.engine.Invoke(ctx, id, name, request.GetArguments())
	if err != nil {
		return toErrorResult(err), nil
	}
	return toCallResult(result), nil
}

func sessionID(ctx context.Context) string {
	if session := server.ClientSessionFromContext(ctx); session != nil {
		return session.SessionID()
	}
	return ""
}

// lockSession acquires the per-session mutex and returns its release func,
// or nil when the call has no session to serialize against.
func (s *Server) lockSession(id string) func() {
	if id == "" {
		return nil
	}

	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// releaseSession drops the mutex of a closed session.
func (s *Server) releaseSession(id string) {
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
}

// ServeStdio starts the server on stdin/stdout. The session token, if any,
// comes from the environment since stdio has no request headers.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer, server.WithStdioContextFunc(s.stdioContext))
}

// Handler returns the HTTP transport: streamable MCP at /mcp, SSE at /sse
// and /message, liveness at /healthz, plus /metrics when configured.
func (s *Server) Handler() http.Handler {
	streamable := server.NewStreamableHTTPServer(s.mcpServer,
		server.WithHTTPContextFunc(s.httpContext),
	)

	sseOpts := []server.SSEOption{server.WithSSEContextFunc(s.httpContext)}
	if s.baseURL != "" {
		sseOpts = append(sseOpts, server.WithBaseURL(s.baseURL))
	}
	sse := server.NewSSEServer(s.mcpServer, sseOpts...)

	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Handle("/mcp", corsMiddleware(streamable))
	r.Handle("/sse", corsMiddleware(sse.SSEHandler()))
	r.Handle("/message", corsMiddleware(sse.MessageHandler()))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

// ListenAndServe runs the HTTP transport until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, draining connections")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// requestLogger logs one line per completed request. SSE streams log when
// the client disconnects.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start),
		)
	})
}

// statusRecorder captures the response status. It forwards Flush so the SSE
// transport keeps streaming through the wrapper.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
