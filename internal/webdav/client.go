package webdav

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aki/davbridge/internal/core/logger"
)

// MethodPropfind is the WebDAV property query method
const MethodPropfind = "PROPFIND"

// allpropBody asks for every live and dead property of the listed resources
const allpropBody = `<?xml version="1.0" encoding="utf-8"?>
<D:propfind xmlns:D="DAV:"><D:allprop/></D:propfind>`

// forwardedRequestHeaders are copied from the inbound request to ranged GETs
var forwardedRequestHeaders = []string{"Range", "If-Range"}

// Origin is a WebDAV server reached over HTTP with static basic-auth credentials.
type Origin struct {
	base     string
	basePath string
	username string
	password string
	client   *http.Client
}

// Option configures an Origin
type Option func(*Origin)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(o *Origin) {
		o.client = client
	}
}

// NewOrigin creates an Origin for the given base URL
func NewOrigin(rawURL, username, password string, opts ...Option) (*Origin, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidOrigin{URL: rawURL, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidOrigin{URL: rawURL, Reason: "scheme must be http or https"}
	}
	if u.Host == "" {
		return nil, ErrInvalidOrigin{URL: rawURL, Reason: "missing host"}
	}

	o := &Origin{
		base:     strings.TrimRight(rawURL, "/"),
		basePath: strings.TrimRight(u.EscapedPath(), "/"),
		username: username,
		password: password,
		client:   http.DefaultClient,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// URL returns the absolute upstream URL for an escaped path. The path is
// appended verbatim so percent-encoding survives.
func (o *Origin) URL(escapedPath string) string {
	if escapedPath == "" {
		return o.base
	}
	if !strings.HasPrefix(escapedPath, "/") {
		escapedPath = "/" + escapedPath
	}
	return o.base + escapedPath
}

// RelativePath maps an href reported by the server back to a path relative to
// the origin base, so that URL(RelativePath(href)) addresses the same resource.
func (o *Origin) RelativePath(href string) string {
	p := href
	if u, err := url.Parse(href); err == nil && u.Host != "" {
		p = u.EscapedPath()
	}

	if o.basePath != "" && (p == o.basePath || strings.HasPrefix(p, o.basePath+"/")) {
		p = strings.TrimPrefix(p, o.basePath)
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// List runs a Depth: 1 PROPFIND against escapedPath and parses the result.
// Non-2xx answers return ErrUnexpectedStatus. A body that cannot be parsed is
// logged and yields an empty listing.
func (o *Origin) List(ctx context.Context, escapedPath string) ([]FileEntry, error) {
	log := logger.FromContext(ctx)

	req, err := o.newRequest(ctx, MethodPropfind, escapedPath, strings.NewReader(allpropBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Depth", "1")
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", escapedPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrUnexpectedStatus{Method: MethodPropfind, Path: escapedPath, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing: %w", err)
	}

	entries, err := DecodeMultistatus(bytes.NewReader(body))
	if err != nil {
		log.Warn("Discarding unparseable listing", "path", escapedPath, "error", err)
	}

	log.Debug("Listed directory", "path", escapedPath, "entries", len(entries))
	return entries, nil
}

// Fetch issues a GET or HEAD for escapedPath, forwarding the Range and If-Range
// headers found in inbound. On success (200 or 206) the caller owns the response
// body. Any other status is returned as ErrUnexpectedStatus with the body closed.
func (o *Origin) Fetch(ctx context.Context, method, escapedPath string, inbound http.Header) (*http.Response, error) {
	if method != http.MethodHead {
		method = http.MethodGet
	}

	req, err := o.newRequest(ctx, method, escapedPath, nil)
	if err != nil {
		return nil, err
	}
	// Keep the transport from transparently decoding the body; bytes are relayed as stored.
	req.Header.Set("Accept-Encoding", "identity")
	for _, name := range forwardedRequestHeaders {
		if v := inbound.Get(name); v != "" {
			req.Header.Set(name, v)
		}
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", escapedPath, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, ErrUnexpectedStatus{Method: method, Path: escapedPath, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

func (o *Origin) newRequest(ctx context.Context, method, escapedPath string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, o.URL(escapedPath), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.SetBasicAuth(o.username, o.password)
	return req, nil
}
