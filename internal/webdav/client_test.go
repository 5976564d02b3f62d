package webdav

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/davbridge/internal/tests/helpers"
)

func newTestOrigin(t *testing.T, base string) *Origin {
	t.Helper()
	o, err := NewOrigin(base, helpers.OriginUser, helpers.OriginPassword)
	require.NoError(t, err)
	return o
}

func TestNewOrigin(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "http", url: "http://dav.example.com"},
		{name: "https with path", url: "https://dav.example.com/remote.php/dav/"},
		{name: "missing scheme", url: "dav.example.com/files", wantErr: true},
		{name: "ftp", url: "ftp://dav.example.com", wantErr: true},
		{name: "missing host", url: "http:///files", wantErr: true},
		{name: "unparseable", url: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrigin(tt.url, "u", "p")
			if tt.wantErr {
				var invalid ErrInvalidOrigin
				assert.ErrorAs(t, err, &invalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOrigin_URLAndRelativePath(t *testing.T) {
	o := newTestOrigin(t, "https://dav.example.com/remote/dav/")

	assert.Equal(t, "https://dav.example.com/remote/dav", o.URL(""))
	assert.Equal(t, "https://dav.example.com/remote/dav/My%20File.pdf", o.URL("/My%20File.pdf"))
	assert.Equal(t, "https://dav.example.com/remote/dav/a.txt", o.URL("a.txt"))

	assert.Equal(t, "/My%20File.pdf", o.RelativePath("/remote/dav/My%20File.pdf"))
	assert.Equal(t, "/", o.RelativePath("/remote/dav"))
	assert.Equal(t, "/sub/x.bin", o.RelativePath("https://dav.example.com/remote/dav/sub/x.bin"))
	assert.Equal(t, "/elsewhere/x", o.RelativePath("/elsewhere/x"))
	assert.Equal(t, "/remote/davish/x", o.RelativePath("/remote/davish/x"))
}

func TestOrigin_List(t *testing.T) {
	origin := helpers.StartOrigin(t, "/dav", map[string]string{
		"/hello.txt":      "hello world",
		"/docs/":          "",
		"/My File.pdf":    "%PDF",
		"/docs/inner.txt": "not listed at depth 1",
	})
	o := newTestOrigin(t, origin.BaseURL())

	entries, err := o.List(context.Background(), "")
	require.NoError(t, err)

	byHref := map[string]FileEntry{}
	for _, e := range entries {
		byHref[e.Href] = e
	}

	// The collection itself plus its three children
	assert.Len(t, entries, 4)

	hello, ok := byHref["/dav/hello.txt"]
	require.True(t, ok, "hello.txt should be listed: %v", entries)
	assert.Equal(t, "11", hello.ContentLength)
	assert.NotEmpty(t, hello.LastModified)
	assert.NotEmpty(t, hello.ContentType)
	assert.False(t, hello.Collection)

	docs, ok := byHref["/dav/docs/"]
	require.True(t, ok, "docs/ should be listed: %v", entries)
	assert.True(t, docs.Collection)

	_, ok = byHref["/dav/docs/inner.txt"]
	assert.False(t, ok, "listing must stop at depth 1")

	req := origin.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, MethodPropfind, req.Method)
	assert.Equal(t, "1", req.Header.Get("Depth"))
	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, helpers.OriginUser, user)
	assert.Equal(t, helpers.OriginPassword, pass)
}

func TestOrigin_ListUnexpectedStatus(t *testing.T) {
	origin := helpers.StartOrigin(t, "", nil)
	o, err := NewOrigin(origin.URL, "mallory", "wrong")
	require.NoError(t, err)

	_, err = o.List(context.Background(), "")
	code, ok := StatusCode(err)
	require.True(t, ok, "expected status error, got %v", err)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestOrigin_ListMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(207)
		_, _ = io.WriteString(w, "<D:multistatus><broken")
	}))
	defer srv.Close()

	o := newTestOrigin(t, srv.URL)
	entries, err := o.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestOrigin_Fetch(t *testing.T) {
	origin := helpers.StartOrigin(t, "", map[string]string{
		"/data.bin": "0123456789abcdefghij",
	})
	o := newTestOrigin(t, origin.URL)
	ctx := context.Background()

	t.Run("full content", func(t *testing.T) {
		resp, err := o.Fetch(ctx, http.MethodGet, "/data.bin", http.Header{})
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "0123456789abcdefghij", string(body))
	})

	t.Run("forwards range", func(t *testing.T) {
		inbound := http.Header{}
		inbound.Set("Range", "bytes=0-4")

		resp, err := o.Fetch(ctx, http.MethodGet, "/data.bin", inbound)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
		assert.Equal(t, "bytes 0-4/20", resp.Header.Get("Content-Range"))
		assert.Equal(t, "01234", string(body))
		assert.Equal(t, "bytes=0-4", origin.LastRequest().Header.Get("Range"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := o.Fetch(ctx, http.MethodGet, "/nope.bin", http.Header{})
		code, ok := StatusCode(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("other methods become GET", func(t *testing.T) {
		resp, err := o.Fetch(ctx, http.MethodPost, "/data.bin", http.Header{})
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.MethodGet, origin.LastRequest().Method)
	})
}
