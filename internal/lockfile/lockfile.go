// Package lockfile guards the state directory against concurrent civicbot
// processes. Two instances sharing one directory would race on the SQLite
// session and WhatsApp device databases.
package lockfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// LockFileName is created inside the state directory while an instance runs.
const LockFileName = "civicbot.lock"

// Lock is a held flock on the state directory. The kernel drops the lock
// when the process exits, so a leftover file from a crash never blocks the
// next startup.
type Lock struct {
	file *os.File
	path string
}

// LockError reports that another process holds the state directory.
type LockError struct {
	LockPath  string
	HolderPID int
	Cause     error
}

func (e *LockError) Error() string {
	if e.HolderPID > 0 {
		return fmt.Sprintf("state directory is locked by another civicbot process (pid %d, lock file %s)", e.HolderPID, e.LockPath)
	}
	return fmt.Sprintf("state directory is locked by another civicbot process (lock file %s)", e.LockPath)
}

func (e *LockError) Unwrap() error {
	return e.Cause
}

// AcquireLock takes an exclusive non-blocking flock on the lock file inside
// stateDir, creating the directory if needed. On success the holder's PID
// is written to the file so a conflicting start can name it.
func AcquireLock(stateDir string) (*Lock, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", stateDir, err)
	}

	path := filepath.Join(stateDir, LockFileName)
	// No O_TRUNC: a failed acquisition must not wipe the holder's PID.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		pid := holderPID(file)
		file.Close()
		slog.Error("lockfile.AcquireLock: state directory already locked", "lock_path", path, "holder_pid", pid)
		return nil, &LockError{LockPath: path, HolderPID: pid, Cause: err}
	}

	if err := file.Truncate(0); err == nil {
		fmt.Fprintf(file, "%d\n", os.Getpid())
		file.Sync()
	}

	slog.Info("lockfile.AcquireLock: state directory locked", "lock_path", path, "pid", os.Getpid())
	return &Lock{file: file, path: path}, nil
}

// Release drops the flock and removes the lock file. Safe to call more
// than once.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		slog.Error("lockfile.Release: unlock failed", "error", err, "lock_path", l.path)
	}
	l.file.Close()
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("lockfile.Release: could not remove lock file", "error", err, "lock_path", l.path)
	}
	l.file = nil
	slog.Info("lockfile.Release: state directory unlocked", "lock_path", l.path)
	return nil
}

// holderPID reads the PID the current holder wrote, or 0 if unreadable.
func holderPID(file *os.File) int {
	buf := make([]byte, 32)
	n, err := file.ReadAt(buf, 0)
	if n == 0 && err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(buf[:n])))
	if err != nil {
		return 0
	}
	return pid
}
