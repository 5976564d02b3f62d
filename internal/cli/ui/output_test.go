package ui

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aki/davbridge/internal/webdav"
)

func TestPrintEntryList(t *testing.T) {
	t.Run("prints a row per entry", func(t *testing.T) {
		var buf bytes.Buffer
		restore := captureOutput(&buf, io.Discard)
		defer restore()

		PrintEntryList("/dav/", []webdav.FileEntry{
			{Href: "/dav/docs/", Collection: true},
			{
				Href:          "/dav/My%20File.pdf",
				LastModified:  "Mon, 01 Jan 2024 00:00:00 GMT",
				ContentLength: "1536",
				ContentType:   "application/pdf",
			},
		})

		out := buf.String()
		assert.Contains(t, out, "/dav/ (2)")
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "docs/")
		assert.Contains(t, out, "My File.pdf")
		assert.Contains(t, out, "2 KB")
		assert.Contains(t, out, "application/pdf")
		assert.Contains(t, out, "Mon, 01 Jan 2024 00:00:00 GMT")
	})

	t.Run("empty listing", func(t *testing.T) {
		var buf bytes.Buffer
		restore := captureOutput(&buf, io.Discard)
		defer restore()

		PrintEntryList("/dav/", nil)
		assert.Contains(t, buf.String(), "No files found")
	})
}

func TestMessages(t *testing.T) {
	var stdout, stderr bytes.Buffer
	restore := captureOutput(&stdout, &stderr)
	defer restore()

	Success("saved %s", "davbridge.yaml")
	Error("failed: %d", 3)
	OutputLine("plain %s", "line")

	assert.Contains(t, stdout.String(), "saved davbridge.yaml")
	assert.Contains(t, stdout.String(), "plain line\n")
	assert.Contains(t, stderr.String(), "failed: 3")
	assert.NotContains(t, stdout.String(), "failed")
}
