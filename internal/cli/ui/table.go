package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable creates a table writing to Stdout with styled headers and a bold
// first column
func NewTable(headers ...interface{}) table.Table {
	tbl := table.New(headers...).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return HeaderStyle.Render(fmt.Sprintf(format, vals...))
		}).
		WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
			return BoldStyle.Render(fmt.Sprintf(format, vals...))
		}).
		WithPadding(2).
		// cells carry ANSI styling, so measure them the way lipgloss does
		WithWidthFunc(lipgloss.Width).
		WithWriter(Stdout)

	return tbl
}

// PrintSectionHeader prints a listing title with its entry count
func PrintSectionHeader(icon string, title string, count int) {
	OutputLine("\n%s %s (%d)", icon, title, count)
}
