// Package dirlock provides an advisory, non-blocking, inter-process lock
// used to serialize runs that share one output directory.
//
// The snapshot/reconcile protocol is not safe when two runs mutate the same
// generated files at once. The build graph normally guarantees exclusion; the
// lock turns a violation of that guarantee into a clear error instead of
// silently wrong timestamps.
package dirlock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrLocked is returned when another process holds the lock.
type ErrLocked struct {
	Path      string
	HolderPID int
}

func (e *ErrLocked) Error() string {
	if e.HolderPID > 0 {
		return fmt.Sprintf("output directory is locked by another run (PID %d, lock %s)", e.HolderPID, e.Path)
	}
	return fmt.Sprintf("output directory is locked by another run (lock %s)", e.Path)
}

// errWouldBlock is returned by tryLock when the lock is held elsewhere.
var errWouldBlock = errors.New("lock held")

// Lock is a held advisory lock on a lock file.
type Lock struct {
	path string
	file *os.File
}

// Acquire takes an exclusive lock on path, creating the file if needed, and
// records the current PID in it. It never blocks.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file %s: %w", path, err)
	}

	if err := tryLock(f); err != nil {
		f.Close()
		if errors.Is(err, errWouldBlock) {
			return nil, &ErrLocked{Path: path, HolderPID: readPID(path)}
		}
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}

	// The PID is informational; failing to record it does not release the lock.
	if err := f.Truncate(0); err == nil {
		_, _ = f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	}

	return &Lock{path: path, file: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unlock(l.file)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("unlocking %s: %w", l.path, err)
	}
	return closeErr
}

func readPID(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}
