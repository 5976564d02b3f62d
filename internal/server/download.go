package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aki/davbridge/internal/core/logger"
	"github.com/aki/davbridge/internal/listing"
	"github.com/aki/davbridge/internal/webdav"
)

const downloadFailed = "Failed to download file"

// hopByHopHeaders belong to a single connection and are never relayed
var hopByHopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	filePath := strings.TrimPrefix(r.URL.EscapedPath(), listing.DownloadPrefix)

	resp, err := s.origin.Fetch(r.Context(), r.Method, filePath, r.Header)
	if err != nil {
		if r.Context().Err() != nil {
			log.Debug("Client went away before upstream answered", "path", filePath)
			return
		}
		status, ok := webdav.StatusCode(err)
		if !ok {
			status = http.StatusBadGateway
		}
		log.Warn("Download failed", "path", filePath, "error", err, "status", status)
		http.Error(w, downloadFailed, status)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	header := w.Header()
	for name, values := range resp.Header {
		if hopByHopHeaders[http.CanonicalHeaderKey(name)] {
			continue
		}
		header[name] = append([]string(nil), values...)
	}
	header.Set("Content-Disposition", contentDisposition(webdav.LastSegment(filePath)))
	w.WriteHeader(resp.StatusCode)

	if r.Method == http.MethodHead {
		return
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil && !errors.Is(err, r.Context().Err()) {
		log.Warn("Relay interrupted", "path", filePath, "bytes", n, "error", err)
	}
}

// contentDisposition builds an attachment header for name. Quotes and
// backslashes are escaped; the rest of the name is kept as decoded.
func contentDisposition(name string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(name)
	return `attachment; filename="` + escaped + `"`
}
