package config

import "fmt"

// ErrNotFound is returned when the configuration file does not exist
type ErrNotFound struct {
	Path string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("configuration file not found: %s (run 'davbridge config init')", e.Path)
}

// ErrUnknownKey is returned by Set for keys that cannot be set
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return fmt.Sprintf("unknown configuration key: %s", e.Key)
}

// ErrInvalid is returned when a resolved configuration cannot be used
type ErrInvalid struct {
	Field  string
	Reason string
}

func (e ErrInvalid) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}
