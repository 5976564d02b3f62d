// Package server is the HTTP side of the bridge: routing, the directory lister
// and the file relay.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aki/davbridge/internal/core/config"
	"github.com/aki/davbridge/internal/core/id"
	"github.com/aki/davbridge/internal/core/logger"
	"github.com/aki/davbridge/internal/listing"
	"github.com/aki/davbridge/internal/webdav"
)

const shutdownTimeout = 5 * time.Second

// Server serves the listing and download endpoints for one WebDAV origin
type Server struct {
	origin   *webdav.Origin
	renderer *listing.Renderer
	listPath string
	title    string
	cfg      config.ServerConfig
	ids      id.Generator
	log      logger.Logger
}

// Option configures a Server
type Option func(*Server)

// WithTitle sets the heading of the listing page
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// WithIDGenerator replaces the random request ID source
func WithIDGenerator(gen id.Generator) Option {
	return func(s *Server) {
		s.ids = gen
	}
}

// New creates a Server for origin using the resolved configuration
func New(cfg config.Config, origin *webdav.Origin, log logger.Logger, opts ...Option) (*Server, error) {
	renderer, err := listing.NewRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		origin:   origin,
		renderer: renderer,
		listPath: cfg.Origin.ListPath,
		title:    "File List",
		cfg:      cfg.Server,
		ids:      id.NewUUIDGenerator(),
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestContext)

	r.Get("/list", s.handleList)
	r.Get("/list.json", s.handleListJSON)
	r.Get(listing.DownloadPrefix+"/*", s.handleDownload)
	r.Head(listing.DownloadPrefix+"/*", s.handleDownload)
	r.Get("/healthz", handleHealth)

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)

	return r
}

// ListenAndServe serves on the configured port until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Failed to shut down server", "error", err)
		}
	}()

	s.log.Info("Bridge listening", "addr", ln.Addr().String(), "origin", s.origin.URL(s.listPath))

	if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not found", http.StatusNotFound)
}
