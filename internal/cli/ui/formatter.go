package ui

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat selects how commands print their results
type OutputFormat string

const (
	// FormatPretty prints tables and styled messages
	FormatPretty OutputFormat = "pretty"
	// FormatJSON prints indented JSON documents
	FormatJSON OutputFormat = "json"
)

// ParseFormat converts a --format value. An empty value means pretty.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", FormatPretty:
		return FormatPretty, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Formatter prints command results in one output format
type Formatter interface {
	// Output prints a result value
	Output(data interface{}) error

	// OutputError prints a command failure
	OutputError(err error) error

	// IsJSON reports whether results are printed as JSON
	IsJSON() bool
}

// NewFormatter returns the formatter for format writing results to out and
// errors to errOut.
func NewFormatter(format OutputFormat, out, errOut io.Writer) (Formatter, error) {
	switch format {
	case FormatPretty:
		return &prettyFormatter{out: out, errOut: errOut}, nil
	case FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return &jsonFormatter{encoder: encoder, errOut: errOut}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

type prettyFormatter struct {
	out    io.Writer
	errOut io.Writer
}

// Output prints strings verbatim; commands render anything richer themselves.
func (f *prettyFormatter) Output(data interface{}) error {
	if str, ok := data.(string); ok {
		_, err := fmt.Fprint(f.out, str)
		return err
	}
	_, err := fmt.Fprintln(f.out, data)
	return err
}

func (f *prettyFormatter) OutputError(err error) error {
	_, werr := fmt.Fprintf(f.errOut, "%s %s\n", ErrorIcon, ErrorStyle.Render(err.Error()))
	return werr
}

func (f *prettyFormatter) IsJSON() bool {
	return false
}

type jsonFormatter struct {
	encoder *json.Encoder
	errOut  io.Writer
}

func (f *jsonFormatter) Output(data interface{}) error {
	return f.encoder.Encode(data)
}

// OutputError keeps errors as plain text on stderr so stdout stays parseable
func (f *jsonFormatter) OutputError(err error) error {
	_, werr := fmt.Fprintf(f.errOut, "Error: %v\n", err)
	return werr
}

func (f *jsonFormatter) IsJSON() bool {
	return true
}

// GlobalFormatter is the formatter selected by the --format flag
var GlobalFormatter Formatter = &prettyFormatter{out: Stdout, errOut: Stderr}

// SetGlobalFormatter switches GlobalFormatter to format, bound to the current
// Stdout and Stderr.
func SetGlobalFormatter(format OutputFormat) error {
	f, err := NewFormatter(format, Stdout, Stderr)
	if err != nil {
		return err
	}
	GlobalFormatter = f
	return nil
}
