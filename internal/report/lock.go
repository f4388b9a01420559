package report

import (
	"fmt"

	"github.com/gofrs/flock"
)

// fileLock serialises writers of one output file across processes.
// The lock file lives next to the output at <path>.lock.
type fileLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

func newFileLock(output string) *fileLock {
	lockPath := output + ".lock"
	return &fileLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// Lock blocks until the lock is held.
func (l *fileLock) Lock() error {
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", l.path, err)
	}
	l.locked = true
	return nil
}

// Unlock releases the lock. The lock file is left in place; removing it
// would let a waiting writer and a new one lock different inodes.
// It is safe to call on an unlocked fileLock.
func (l *fileLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.path, err)
	}
	return nil
}
