//go:build windows

package filemanager

import (
	"errors"
	"os"
	"syscall"
	"time"
)

const (
	errAccessDenied  syscall.Errno = 5
	errAlreadyExists syscall.Errno = 183

	renameAttempts = 3
	renameBackoff  = 10 * time.Millisecond
)

// atomicRename replaces dst with src. Windows refuses to rename over a file
// another process still holds open, so the rename is retried after removing dst.
func atomicRename(src, dst string) error {
	err := os.Rename(src, dst)
	for attempt := 1; err != nil && attempt < renameAttempts; attempt++ {
		var errno syscall.Errno
		if !errors.As(err, &errno) || (errno != errAccessDenied && errno != errAlreadyExists) {
			return err
		}

		_ = os.Remove(dst)
		time.Sleep(time.Duration(attempt) * renameBackoff)
		err = os.Rename(src, dst)
	}
	return err
}
