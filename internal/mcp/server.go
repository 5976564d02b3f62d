// Package mcp exposes the WebDAV origin listing to AI agents over the Model
// Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aki/davbridge/internal/core/logger"
	"github.com/aki/davbridge/internal/webdav"
)

// Transport names accepted by Start
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Server is the MCP server for one WebDAV origin
type Server struct {
	mcpServer *server.MCPServer
	origin    *webdav.Origin
	listPath  string
	transport string
	port      int
	log       logger.Logger
}

// Options configures NewServer
type Options struct {
	Origin    *webdav.Origin
	ListPath  string
	Transport string
	Port      int
	Version   string
	Logger    logger.Logger
}

// NewServer creates an MCP server with the listing tool and resource registered
func NewServer(opts Options) (*Server, error) {
	if opts.Origin == nil {
		return nil, fmt.Errorf("origin is required")
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	mcpServer := server.NewMCPServer(
		"davbridge",
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
	)

	s := &Server{
		mcpServer: mcpServer,
		origin:    opts.Origin,
		listPath:  opts.ListPath,
		transport: opts.Transport,
		port:      opts.Port,
		log:       opts.Logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Start serves until ctx is cancelled (http) or stdin closes (stdio)
func (s *Server) Start(ctx context.Context) error {
	switch s.transport {
	case "", TransportStdio:
		return server.ServeStdio(s.mcpServer)
	case TransportHTTP:
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
		if err != nil {
			return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
		}
		return s.serveHTTP(ctx, ln)
	default:
		return fmt.Errorf("unsupported transport: %s", s.transport)
	}
}

// httpHandler routes the SSE transport endpoints
func (s *Server) httpHandler() http.Handler {
	sseServer := server.NewSSEServer(s.mcpServer)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)
	r.Handle("/sse", sseServer.SSEHandler())
	r.Handle("/message", sseServer.MessageHandler())

	return r
}

func (s *Server) serveHTTP(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.httpHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Failed to shut down MCP server", "error", err)
		}
	}()

	s.log.Info("MCP server listening",
		"sse", fmt.Sprintf("http://%s/sse", ln.Addr()),
		"message", fmt.Sprintf("http://%s/message", ln.Addr()),
	)

	if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
