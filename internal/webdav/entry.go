// Package webdav talks to a remote WebDAV origin: PROPFIND listings, ranged GETs
// and parsing of multistatus responses.
package webdav

import (
	"net/url"
	"strings"
)

// FileEntry is one resource reported by a PROPFIND multistatus response.
// Dates are passed through exactly as the server formatted them.
type FileEntry struct {
	Href         string `json:"href"`
	CreationDate string `json:"creationDate,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
	// ContentLength stays textual until it is formatted; empty means the server
	// reported no length (typically a collection).
	ContentLength string `json:"contentLength,omitempty"`
	ContentType   string `json:"contentType,omitempty"`
	Collection    bool   `json:"collection"`
}

// Name returns the decoded last path segment of the href
func (e FileEntry) Name() string {
	return LastSegment(strings.TrimSuffix(e.Href, "/"))
}

// LastSegment returns the percent-decoded last segment of an escaped path.
// Segments that fail to decode are returned as-is.
func LastSegment(escapedPath string) string {
	segment := escapedPath
	if i := strings.LastIndex(escapedPath, "/"); i >= 0 {
		segment = escapedPath[i+1:]
	}

	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return decoded
}
