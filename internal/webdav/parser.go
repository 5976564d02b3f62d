package webdav

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// davNamespace is the namespace of the standard WebDAV properties
const davNamespace = "DAV:"

// multistatus mirrors the PROPFIND response envelope. Elements are matched by
// local name so servers that bind DAV: to unusual prefixes still decode.
type multistatus struct {
	XMLName   xml.Name   `xml:"multistatus"`
	Responses []response `xml:"response"`
}

type response struct {
	Href      string     `xml:"href"`
	Propstats []propstat `xml:"propstat"`
}

type propstat struct {
	Prop   prop   `xml:"prop"`
	Status string `xml:"status"`
}

type prop struct {
	Values []property `xml:",any"`
}

type property struct {
	XMLName  xml.Name
	Value    string     `xml:",chardata"`
	Children []property `xml:",any"`
}

// ParseMultistatus turns a PROPFIND Depth: 1 response body into file entries.
// Malformed or unexpected documents produce an empty listing.
func ParseMultistatus(r io.Reader) []FileEntry {
	entries, err := DecodeMultistatus(r)
	if err != nil {
		return []FileEntry{}
	}
	return entries
}

// ParseMultistatusString is ParseMultistatus for an in-memory document
func ParseMultistatusString(doc string) []FileEntry {
	return ParseMultistatus(strings.NewReader(doc))
}

// DecodeMultistatus is like ParseMultistatus but reports why a document was
// rejected. The returned slice is never nil.
func DecodeMultistatus(r io.Reader) ([]FileEntry, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var ms multistatus
	if err := decoder.Decode(&ms); err != nil {
		return []FileEntry{}, fmt.Errorf("failed to decode multistatus: %w", err)
	}

	// A single <response> still lands in a one-element slice.
	entries := make([]FileEntry, 0, len(ms.Responses))
	for _, resp := range ms.Responses {
		href := strings.TrimSpace(resp.Href)
		if href == "" {
			continue
		}

		entries = append(entries, FileEntry{
			Href:          href,
			CreationDate:  resp.lookup("creationdate"),
			LastModified:  resp.lookup("getlastmodified"),
			ContentLength: resp.lookup("getcontentlength"),
			ContentType:   resp.lookup("getcontenttype"),
			Collection:    resp.isCollection(),
		})
	}

	return entries, nil
}

// lookup returns the value of the named property. The DAV: namespaced property
// wins; the same local name under any other namespace is the fallback.
func (r response) lookup(local string) string {
	var fallback string
	for _, p := range r.properties() {
		if p.XMLName.Local != local {
			continue
		}

		value := strings.TrimSpace(p.Value)
		if value == "" {
			continue
		}

		if p.XMLName.Space == davNamespace {
			return value
		}
		if fallback == "" {
			fallback = value
		}
	}
	return fallback
}

func (r response) isCollection() bool {
	for _, p := range r.properties() {
		if p.XMLName.Local != "resourcetype" {
			continue
		}
		for _, child := range p.Children {
			if child.XMLName.Local == "collection" {
				return true
			}
		}
	}
	return false
}

// properties flattens the props of every propstat that did not fail
func (r response) properties() []property {
	var props []property
	for _, ps := range r.Propstats {
		if !ps.succeeded() {
			continue
		}
		props = append(props, ps.Prop.Values...)
	}
	return props
}

// succeeded reports whether the propstat status line is 2xx. A missing status
// line is treated as success.
func (ps propstat) succeeded() bool {
	fields := strings.Fields(ps.Status)
	if len(fields) < 2 {
		return true
	}
	return strings.HasPrefix(fields[1], "2")
}
