// Package ui provides UI styling and output functions for the CLI.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette picks readable shades on both light and dark terminals
var (
	colorRed    = lipgloss.AdaptiveColor{Light: "#C00000", Dark: "#FF5555"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "#007A00", Dark: "#50FA7B"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#005FCC", Dark: "#3FA9FF"}
	colorAmber  = lipgloss.AdaptiveColor{Light: "#A15C00", Dark: "#FFB86C"}
	colorSubtle = lipgloss.AdaptiveColor{Light: "#707070", Dark: "#888888"}
)

var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorGreen)
	InfoStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	WarningStyle = lipgloss.NewStyle().Foreground(colorAmber)
	DimStyle     = lipgloss.NewStyle().Foreground(colorSubtle)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	// HeaderStyle renders table column titles
	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Icons prefixed to messages and listing rows
const (
	ListingIcon = "🗂"
	FolderIcon  = "📁"
	FileIcon    = "📄"
	SuccessIcon = "✅"
	ErrorIcon   = "❌"
	InfoIcon    = "ⓘ"
	WarningIcon = "⚠️"
)
