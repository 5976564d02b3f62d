// Package filemanager reads and writes YAML documents under a process-safe
// file lock.
package filemanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// ErrLockTimeout is returned when the file lock cannot be acquired in time
var ErrLockTimeout = errors.New("timeout acquiring file lock")

const lockRetryDelay = 100 * time.Millisecond

// FileInfo identifies the version of a file that was read
type FileInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// UpdateFunc modifies a document in place
type UpdateFunc[T any] func(doc *T) error

// Validator inspects raw file content before it is decoded
type Validator func(data []byte) error

// Manager reads and writes YAML documents of type T
type Manager[T any] struct {
	lockTimeout time.Duration
	validate    Validator
}

// Option configures a Manager
type Option func(*options)

type options struct {
	lockTimeout time.Duration
	validate    Validator
}

// WithLockTimeout bounds how long Read and Write wait for the file lock
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lockTimeout = d
	}
}

// WithValidator runs v on the raw bytes of every document read
func WithValidator(v Validator) Option {
	return func(o *options) {
		o.validate = v
	}
}

// NewManager creates a Manager
func NewManager[T any](opts ...Option) *Manager[T] {
	o := options{lockTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[T]{lockTimeout: o.lockTimeout, validate: o.validate}
}

// Read decodes the document at path under a shared lock
func (m *Manager[T]) Read(ctx context.Context, path string) (*T, *FileInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, err
	}

	var (
		doc  *T
		info *FileInfo
	)
	err := m.withLock(ctx, path, false, func() error {
		var err error
		doc, info, err = m.readUnlocked(path)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return doc, info, nil
}

// Write replaces the document at path under an exclusive lock
func (m *Manager[T]) Write(ctx context.Context, path string, doc *T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return m.withLock(ctx, path, true, func() error {
		return writeUnlocked(path, doc)
	})
}

// Update applies fn to the document at path while holding the exclusive lock
// for the whole read-modify-write. A missing file starts from the zero value.
func (m *Manager[T]) Update(ctx context.Context, path string, fn UpdateFunc[T]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return m.withLock(ctx, path, true, func() error {
		doc, _, err := m.readUnlocked(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to read file: %w", err)
			}
			doc = new(T)
		}

		if err := fn(doc); err != nil {
			return fmt.Errorf("update function failed: %w", err)
		}
		return writeUnlocked(path, doc)
	})
}

func (m *Manager[T]) readUnlocked(path string) (*T, *FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if m.validate != nil {
		if err := m.validate(data); err != nil {
			return nil, nil, err
		}
	}

	var doc T
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	return &doc, &FileInfo{Path: path, ModTime: stat.ModTime(), Size: stat.Size()}, nil
}

func writeUnlocked[T any](path string, doc *T) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	// Credentials may live in the file, keep it private to the owner.
	tempFile := fmt.Sprintf("%s.%d.%d.tmp", path, os.Getpid(), time.Now().UnixNano())
	if err := os.WriteFile(tempFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := atomicRename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

func (m *Manager[T]) withLock(ctx context.Context, path string, exclusive bool, fn func() error) error {
	lock := flock.New(path + ".lock")

	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = lock.TryLockContext(lockCtx, lockRetryDelay)
	} else {
		locked, err = lock.TryRLockContext(lockCtx, lockRetryDelay)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrLockTimeout
		}
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}
