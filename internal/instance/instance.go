// Package instance decides which running copy owns the session-wide
// integrations (the MPRIS bus name).
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
)

// ErrHeld is returned when another instance holds the lock.
var ErrHeld = errors.New("another instance is running")

// Lock is an advisory lock on a file in the runtime dir.
type Lock struct {
	path string
	lock *flock.Flock
}

// DefaultPath returns $XDG_RUNTIME_DIR/subrepeat.lock.
func DefaultPath() string {
	return filepath.Join(xdg.RuntimeDir, "subrepeat.lock")
}

// Acquire takes the lock at path without blocking.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	l := &Lock{path: path, lock: flock.New(path)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return l, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. Safe on a nil Lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	return l.lock.Unlock()
}
