package webdav

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apacheSingleResponse = `<?xml version="1.0" encoding="utf-8"?>
<D:multistatus xmlns:D="DAV:">
	<D:response xmlns:lp1="DAV:" xmlns:lp2="http://apache.org/dav/props/">
		<D:href>/dav/report.pdf</D:href>
		<D:propstat>
			<D:prop>
				<lp1:resourcetype/>
				<lp1:creationdate>2016-11-01T18:56:59Z</lp1:creationdate>
				<lp1:getcontentlength>2048</lp1:getcontentlength>
				<lp1:getlastmodified>Tue, 01 Nov 2016 18:58:02 GMT</lp1:getlastmodified>
				<lp1:getetag>"500364-1000-54041e75d72a9"</lp1:getetag>
				<D:getcontenttype>application/pdf</D:getcontenttype>
			</D:prop>
			<D:status>HTTP/1.1 200 OK</D:status>
		</D:propstat>
	</D:response>
</D:multistatus>`

func multistatusWith(responses ...string) string {
	return `<?xml version="1.0" encoding="utf-8"?><D:multistatus xmlns:D="DAV:">` +
		strings.Join(responses, "") + `</D:multistatus>`
}

func fileResponse(href string) string {
	return fmt.Sprintf(`<D:response><D:href>%s</D:href><D:propstat><D:prop>
		<D:getcontentlength>10</D:getcontentlength>
		<D:getlastmodified>Mon, 02 Jan 2006 15:04:05 GMT</D:getlastmodified>
	</D:prop><D:status>HTTP/1.1 200 OK</D:status></D:propstat></D:response>`, href)
}

func TestParseMultistatus_SingleResponse(t *testing.T) {
	entries := ParseMultistatusString(apacheSingleResponse)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "/dav/report.pdf", entry.Href)
	assert.Equal(t, "2016-11-01T18:56:59Z", entry.CreationDate)
	assert.Equal(t, "Tue, 01 Nov 2016 18:58:02 GMT", entry.LastModified)
	assert.Equal(t, "2048", entry.ContentLength)
	assert.Equal(t, "application/pdf", entry.ContentType)
	assert.False(t, entry.Collection)
	assert.Equal(t, "report.pdf", entry.Name())
}

func TestParseMultistatus_ResponseCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		t.Run(fmt.Sprintf("%d responses", n), func(t *testing.T) {
			var responses []string
			for i := 0; i < n; i++ {
				responses = append(responses, fileResponse(fmt.Sprintf("/file-%d.txt", i)))
			}

			entries := ParseMultistatusString(multistatusWith(responses...))
			require.Len(t, entries, n)
			for i, entry := range entries {
				assert.Equal(t, fmt.Sprintf("/file-%d.txt", i), entry.Href, "server order is kept")
			}
		})
	}
}

func TestParseMultistatus_DropsResponsesWithoutHref(t *testing.T) {
	doc := multistatusWith(
		fileResponse("/a.txt"),
		`<D:response><D:propstat><D:prop><D:getcontentlength>1</D:getcontentlength></D:prop></D:propstat></D:response>`,
		fileResponse("   "),
		fileResponse("/b.txt"),
	)

	entries := ParseMultistatusString(doc)
	require.Len(t, entries, 2)
	assert.Equal(t, "/a.txt", entries[0].Href)
	assert.Equal(t, "/b.txt", entries[1].Href)
}

func TestParseMultistatus_AlternateNamespace(t *testing.T) {
	doc := multistatusWith(`<D:response xmlns:lp2="http://apache.org/dav/props/">
		<D:href>/movie.mkv</D:href>
		<D:propstat><D:prop>
			<lp2:getcontenttype>video/x-matroska</lp2:getcontenttype>
			<lp2:getlastmodified>yesterday</lp2:getlastmodified>
		</D:prop><D:status>HTTP/1.1 200 OK</D:status></D:propstat>
	</D:response>`)

	entries := ParseMultistatusString(doc)
	require.Len(t, entries, 1)
	assert.Equal(t, "video/x-matroska", entries[0].ContentType)
	assert.Equal(t, "yesterday", entries[0].LastModified)
}

func TestParseMultistatus_PrimaryNamespaceWins(t *testing.T) {
	doc := multistatusWith(`<D:response xmlns:lp2="http://apache.org/dav/props/">
		<D:href>/notes.txt</D:href>
		<D:propstat><D:prop>
			<lp2:getcontenttype>application/octet-stream</lp2:getcontenttype>
			<D:getcontenttype>text/plain</D:getcontenttype>
		</D:prop></D:propstat>
	</D:response>`)

	entries := ParseMultistatusString(doc)
	require.Len(t, entries, 1)
	assert.Equal(t, "text/plain", entries[0].ContentType)
}

func TestParseMultistatus_Collections(t *testing.T) {
	doc := multistatusWith(`<D:response>
		<D:href>/dav/photos/</D:href>
		<D:propstat>
			<D:prop><D:resourcetype><D:collection/></D:resourcetype></D:prop>
			<D:status>HTTP/1.1 200 OK</D:status>
		</D:propstat>
		<D:propstat>
			<D:prop><D:getcontentlength/></D:prop>
			<D:status>HTTP/1.1 404 Not Found</D:status>
		</D:propstat>
	</D:response>`)

	entries := ParseMultistatusString(doc)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Collection)
	assert.Empty(t, entries[0].ContentLength)
	assert.Equal(t, "photos", entries[0].Name())
}

func TestParseMultistatus_FailedPropstatIgnored(t *testing.T) {
	doc := multistatusWith(`<D:response>
		<D:href>/x</D:href>
		<D:propstat>
			<D:prop><D:getcontenttype>bogus/type</D:getcontenttype></D:prop>
			<D:status>HTTP/1.1 403 Forbidden</D:status>
		</D:propstat>
	</D:response>`)

	entries := ParseMultistatusString(doc)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].ContentType)
}

func TestParseMultistatus_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "not xml", doc: "<<<definitely not xml"},
		{name: "truncated", doc: `<D:multistatus xmlns:D="DAV:"><D:response><D:href>/a`},
		{name: "wrong root", doc: `<html><body>login required</body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ParseMultistatusString(tt.doc)
			assert.NotNil(t, entries)
			assert.Empty(t, entries)

			_, err := DecodeMultistatus(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseMultistatus_Latin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<D:multistatus xmlns:D=\"DAV:\"><D:response><D:href>/caf\xe9.txt</D:href></D:response></D:multistatus>"

	entries := ParseMultistatusString(doc)
	require.Len(t, entries, 1)
	assert.Equal(t, "/café.txt", entries[0].Href)
}

func TestLastSegment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/download/My%20File.pdf", "My File.pdf"},
		{"/a/b/c.txt", "c.txt"},
		{"plain", "plain"},
		{"/bad%zzescape", "bad%zzescape"},
		{"/dir/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, LastSegment(tt.input))
		})
	}
}
