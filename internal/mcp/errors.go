package mcp

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestions is an error that points the agent at what to try next
type ErrorWithSuggestions struct {
	Message     string
	Suggestions []string
}

func (e *ErrorWithSuggestions) Error() string {
	if len(e.Suggestions) == 0 {
		return e.Message
	}

	var sb strings.Builder
	sb.WriteString(e.Message)
	sb.WriteString("\n\nSuggestions:\n")
	for _, suggestion := range e.Suggestions {
		sb.WriteString("  - ")
		sb.WriteString(suggestion)
		sb.WriteString("\n")
	}
	return sb.String()
}

// NewErrorWithSuggestions creates a new error with suggestions
func NewErrorWithSuggestions(message string, suggestions ...string) error {
	return &ErrorWithSuggestions{
		Message:     message,
		Suggestions: suggestions,
	}
}

// ListingFailedError reports an origin that refused a listing
func ListingFailedError(path string, status int) error {
	suggestions := []string{
		ListToolName + " without a path - List the configured directory",
	}
	switch status {
	case 401, 403:
		suggestions = append(suggestions, "Check the origin username and password in the bridge configuration")
	case 404:
		suggestions = append(suggestions, "Use a path taken from a previous "+ListToolName+" result")
	}

	return NewErrorWithSuggestions(
		fmt.Sprintf("failed to list files at %s: origin returned status %d", path, status),
		suggestions...,
	)
}

// InvalidParameterError returns an error for a malformed tool argument
func InvalidParameterError(param string, expected string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("invalid %s: expected %s", param, expected),
		"Use the tool description to understand parameter requirements",
	)
}
