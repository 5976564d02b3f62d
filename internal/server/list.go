package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/aki/davbridge/internal/core/logger"
	"github.com/aki/davbridge/internal/listing"
	"github.com/aki/davbridge/internal/webdav"
)

const listFailed = "Failed to list files"

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page, ok := s.loadPage(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page); err != nil {
		logger.FromContext(r.Context()).Error("Failed to render listing", "error", err)
		http.Error(w, listFailed, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleListJSON(w http.ResponseWriter, r *http.Request) {
	page, ok := s.loadPage(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		logger.FromContext(r.Context()).Warn("Failed to write listing", "error", err)
	}
}

// loadPage lists the configured directory. On failure it writes the error
// response itself and returns false.
func (s *Server) loadPage(w http.ResponseWriter, r *http.Request) (listing.Page, bool) {
	log := logger.FromContext(r.Context())

	entries, err := s.origin.List(r.Context(), s.listPath)
	if err != nil {
		status, ok := webdav.StatusCode(err)
		if !ok {
			status = http.StatusBadGateway
		}
		log.Warn("Listing failed", "error", err, "status", status)
		http.Error(w, listFailed, status)
		return listing.Page{}, false
	}

	return listing.NewPage(s.title, entries, s.origin.RelativePath), true
}
