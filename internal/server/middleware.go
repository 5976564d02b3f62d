package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/aki/davbridge/internal/core/logger"
)

// RequestIDHeader carries the request ID back to the client
const RequestIDHeader = "X-Request-Id"

// requestContext attaches a request-scoped logger to the context and logs the
// outcome of every request.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := s.ids.Generate()
		w.Header().Set(RequestIDHeader, requestID)

		log := s.log.With("request_id", requestID, "method", r.Method, "path", r.URL.EscapedPath())
		ctx := logger.WithContext(r.Context(), log)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		log.Info("Request handled",
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
