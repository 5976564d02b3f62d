// Package listing turns WebDAV file entries into the HTML directory page.
package listing

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/CloudyKit/jet/v6"

	"github.com/aki/davbridge/internal/webdav"
)

// DownloadPrefix is the route prefix served by the file relay
const DownloadPrefix = "/download"

const templateName = "/listing.jet"

//go:embed templates/listing.jet
var listingTemplate string

// Row is one rendered line of the listing
type Row struct {
	Href         string `json:"href"`
	Name         string `json:"name"`
	Link         string `json:"link"`
	LastModified string `json:"lastModified,omitempty"`
	Size         string `json:"size,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	Collection   bool   `json:"collection"`
}

// Page is the data handed to the listing template
type Page struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// NewPage builds a page from entries. relative maps a server href to the path
// that follows DownloadPrefix in the relay route.
func NewPage(title string, entries []webdav.FileEntry, relative func(href string) string) Page {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Href:         e.Href,
			Name:         e.Name(),
			Link:         DownloadPrefix + relative(e.Href),
			LastModified: e.LastModified,
			Size:         FormatSize(e.ContentLength),
			ContentType:  e.ContentType,
			Collection:   e.Collection,
		})
	}
	return Page{Title: title, Rows: rows}
}

// Renderer executes the embedded listing template
type Renderer struct {
	set *jet.Set
}

// NewRenderer parses the embedded template
func NewRenderer() (*Renderer, error) {
	loader := jet.NewInMemLoader()
	loader.Set(templateName, listingTemplate)

	set := jet.NewSet(loader)
	if _, err := set.GetTemplate(templateName); err != nil {
		return nil, fmt.Errorf("failed to parse listing template: %w", err)
	}

	return &Renderer{set: set}, nil
}

// Render writes the HTML page for p to w
func (r *Renderer) Render(w io.Writer, p Page) error {
	tmpl, err := r.set.GetTemplate(templateName)
	if err != nil {
		return fmt.Errorf("failed to load listing template: %w", err)
	}

	if err := tmpl.Execute(w, make(jet.VarMap), p); err != nil {
		return fmt.Errorf("failed to render listing: %w", err)
	}
	return nil
}
