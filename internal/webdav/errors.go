package webdav

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is returned when the origin answers with a status code the
// operation does not accept.
type ErrUnexpectedStatus struct {
	Method     string
	Path       string
	StatusCode int
}

func (e ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// StatusCode extracts the upstream status from err, if err carries one.
func StatusCode(err error) (int, bool) {
	var statusErr ErrUnexpectedStatus
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// ErrInvalidOrigin is returned when the configured origin URL cannot be used
type ErrInvalidOrigin struct {
	URL    string
	Reason string
}

func (e ErrInvalidOrigin) Error() string {
	return fmt.Sprintf("invalid WebDAV origin %q: %s", e.URL, e.Reason)
}
