package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is a non-blocking, cross-process file lock.
type Lock struct {
	fl *flock.Flock
}

// New prepares a lock backed by the file at path. The parent directory is
// created on first use.
func New(path string) (*Lock, error) {
	if path == "" {
		return nil, fmt.Errorf("runlock: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("runlock: create lock dir: %w", err)
	}
	return &Lock{fl: flock.New(path)}, nil
}

// TryLock acquires the lock without waiting; false means another holder has it.
func (l *Lock) TryLock() (bool, error) {
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("runlock: %w", err)
	}
	return ok, nil
}

func (l *Lock) Unlock() error {
	return l.fl.Unlock()
}

func (l *Lock) Path() string {
	return l.fl.Path()
}
