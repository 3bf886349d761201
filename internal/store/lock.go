package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const (
	lockAttempts   = 20
	lockBackoff    = 50 * time.Millisecond
	lockStaleAfter = 30 * time.Second
)

// dataLock is the cross-process lock on a data file. It is a sibling file
// created exclusively and holding the owner's PID.
type dataLock struct {
	path string
}

func (s *FileStore) lock() dataLock {
	return dataLock{path: s.filePath + ".lock"}
}

// acquire takes the lock, waiting for other ecoplate processes to release
// it. A lock left behind by a process that no longer runs is taken over once
// it is older than lockStaleAfter. The returned func releases the lock.
func (l dataLock) acquire() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for attempt := 0; attempt < lockAttempts; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		switch {
		case err == nil:
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			_ = f.Close()
			return func() { _ = os.Remove(l.path) }, nil
		case !errors.Is(err, os.ErrExist):
			return nil, fmt.Errorf("creating lockfile %s: %w", l.path, err)
		}

		if l.abandoned() {
			_ = os.Remove(l.path)
			continue
		}
		time.Sleep(lockBackoff)
	}
	return nil, fmt.Errorf("data file %s is locked by another ecoplate process", strings.TrimSuffix(l.path, ".lock"))
}

// abandoned reports whether the lockfile is old and its owner is gone.
func (l dataLock) abandoned() bool {
	info, err := os.Stat(l.path)
	if err != nil || time.Since(info.ModTime()) <= lockStaleAfter {
		return false
	}

	raw, err := os.ReadFile(l.path)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || pid <= 0 {
		return true
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return true
	}
	// Signal 0 checks existence without delivering anything.
	return proc.Signal(syscall.Signal(0)) != nil
}
