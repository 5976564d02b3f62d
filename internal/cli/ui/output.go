package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/aki/davbridge/internal/listing"
	"github.com/aki/davbridge/internal/webdav"
)

// Stdout and Stderr are where the print functions write. Tests swap them out.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Print functions for consistent output

func Error(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func Success(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning goes to Stderr so it never corrupts JSON output
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// OutputLine prints an unstyled line
func OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, format+"\n", args...)
}

// PrintEntryList displays a directory listing using a table
func PrintEntryList(title string, entries []webdav.FileEntry) {
	if len(entries) == 0 {
		Info("No files found")
		return
	}

	tbl := NewTable("NAME", "LAST MODIFIED", "SIZE", "TYPE")

	for _, e := range entries {
		icon := FileIcon
		name := e.Name()
		if e.Collection {
			icon = FolderIcon
			name += "/"
		}

		tbl.AddRow(icon+" "+name, orDash(e.LastModified), orDash(listing.FormatSize(e.ContentLength)), orDash(e.ContentType))
	}

	PrintSectionHeader(ListingIcon, title, len(entries))
	tbl.Print()
	fmt.Fprintln(Stdout)
}

func orDash(s string) string {
	if s == "" {
		return DimStyle.Render("-")
	}
	return s
}
