// Package helpers provides shared fixtures for davbridge tests.
package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"strings"
	"sync"
	"testing"

	"golang.org/x/net/webdav"
)

const (
	// OriginUser is the basic-auth user accepted by test origins
	OriginUser = "alice"
	// OriginPassword is the basic-auth password accepted by test origins
	OriginPassword = "s3cret"
)

// Origin is a real WebDAV server backed by an in-memory filesystem
type Origin struct {
	*httptest.Server
	FS     webdav.FileSystem
	Prefix string

	mu       sync.Mutex
	requests []*http.Request
}

// StartOrigin starts a WebDAV origin serving files under prefix (which may be
// empty). Keys of files are slash-separated paths; a key ending in "/" creates a
// directory. Requests without the test credentials get 401.
func StartOrigin(t *testing.T, prefix string, files map[string]string) *Origin {
	t.Helper()

	ctx := context.Background()
	fs := webdav.NewMemFS()
	for name, content := range files {
		if err := writeMemFile(ctx, fs, name, content); err != nil {
			t.Fatalf("Failed to seed %s: %v", name, err)
		}
	}

	o := &Origin{FS: fs, Prefix: prefix}
	dav := &webdav.Handler{
		Prefix:     prefix,
		FileSystem: fs,
		LockSystem: webdav.NewMemLS(),
	}

	o.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		o.mu.Lock()
		o.requests = append(o.requests, r.Clone(context.Background()))
		o.mu.Unlock()

		user, pass, ok := r.BasicAuth()
		if !ok || user != OriginUser || pass != OriginPassword {
			w.Header().Set("WWW-Authenticate", `Basic realm="test"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		dav.ServeHTTP(w, r)
	}))
	t.Cleanup(o.Close)

	return o
}

// BaseURL returns the origin URL including its prefix
func (o *Origin) BaseURL() string {
	return o.URL + o.Prefix
}

// Requests returns a snapshot of every request the origin received
func (o *Origin) Requests() []*http.Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*http.Request(nil), o.requests...)
}

// LastRequest returns the most recent request, or nil
func (o *Origin) LastRequest() *http.Request {
	reqs := o.Requests()
	if len(reqs) == 0 {
		return nil
	}
	return reqs[len(reqs)-1]
}

func writeMemFile(ctx context.Context, fs webdav.FileSystem, name, content string) error {
	name = "/" + strings.TrimPrefix(name, "/")
	if strings.HasSuffix(name, "/") {
		return mkdirAll(ctx, fs, name)
	}
	if err := mkdirAll(ctx, fs, path.Dir(name)); err != nil {
		return err
	}

	f, err := fs.OpenFile(ctx, name, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write([]byte(content)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func mkdirAll(ctx context.Context, fs webdav.FileSystem, dir string) error {
	current := ""
	for _, part := range strings.Split(strings.Trim(dir, "/"), "/") {
		if part == "" {
			continue
		}
		current += "/" + part
		if err := fs.Mkdir(ctx, current, 0o755); err != nil && !os.IsExist(err) {
			return err
		}
	}
	return nil
}
