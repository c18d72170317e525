package operation

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gitlab.com/tozd/go/errors"
)

// ErrLocked is returned when another run already holds the root's lock
var ErrLocked = errors.Base("another swcfix run is rewriting this root")

// 🔒 RunLock keeps two processes from rewriting the same root at once.
// The lock file lives in the temp dir so the tree itself is never touched.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// 🏭 NewRunLock derives the lock path from the absolute root
func NewRunLock(root string) (*RunLock, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	path := filepath.Join(os.TempDir(), "swcfix-"+hex.EncodeToString(sum[:8])+".lock")
	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}, nil
}

// Path is the lock file location
func (l *RunLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking
func (l *RunLock) Acquire() error {
	ok, err := l.flock.TryLock()
	if err != nil {
		return errors.Errorf("locking %s: %w", l.path, err)
	}
	if !ok {
		return errors.Errorf("%w (%s)", ErrLocked, l.path)
	}
	return nil
}

// Release drops the lock
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return errors.Errorf("unlocking %s: %w", l.path, err)
	}
	return nil
}
