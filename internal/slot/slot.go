// Package slot guards the single terminal line and ambient output sink that a
// loader session takes over. Only one holder may own the slot at a time;
// a second Acquire fails fast instead of waiting.
package slot

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harrison/tickline/internal/filelock"
)

// ErrAlreadyRunning is returned when the slot is already held.
var ErrAlreadyRunning = errors.New("a loader session is already running")

// Holder is whoever owns the slot, normally a loader session.
type Holder interface {
	ID() string
	Interval() time.Duration
}

// Manager is a mutex-guarded "current session" handle. When a lock file is
// configured it also holds a non-blocking file lock so that two processes
// sharing a terminal cannot animate at once.
type Manager struct {
	mu       sync.Mutex
	holder   Holder
	lockPath string
	lock     *filelock.FileLock
}

// Default is the process-wide manager used by loader sessions.
var Default = NewManager()

// NewManager returns an empty manager without a lock file.
func NewManager() *Manager {
	return &Manager{}
}

// SetLockFile enables cross-process locking on path. An empty path disables it.
// It fails while the slot is held.
func (m *Manager) SetLockFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.holder != nil {
		return fmt.Errorf("cannot change lock file while session %s holds the slot: %w", m.holder.ID(), ErrAlreadyRunning)
	}
	m.lockPath = path
	return nil
}

// LockFile returns the configured lock file path.
func (m *Manager) LockFile() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lockPath
}

// Acquire makes h the holder. It returns ErrAlreadyRunning if the slot is
// taken in this process or, with a lock file, by another process.
func (m *Manager) Acquire(h Holder) error {
	if h == nil {
		return errors.New("slot holder cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.holder != nil {
		return fmt.Errorf("session %s is active: %w", m.holder.ID(), ErrAlreadyRunning)
	}

	if m.lockPath != "" {
		lock := filelock.NewFileLock(m.lockPath)
		acquired, err := lock.TryLock()
		if err != nil {
			return err
		}
		if !acquired {
			return fmt.Errorf("terminal lock %s is held by another process: %w", m.lockPath, ErrAlreadyRunning)
		}
		m.lock = lock
	}

	m.holder = h
	return nil
}

// Release frees the slot if h holds it and reports whether it did.
func (m *Manager) Release(h Holder) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.holder == nil || h == nil || m.holder.ID() != h.ID() {
		return false
	}
	m.holder = nil
	if m.lock != nil {
		// The lock dies with the process anyway; an unlock error leaves
		// nothing to recover here.
		_ = m.lock.Unlock()
		m.lock = nil
	}
	return true
}

// Current returns the holder, or nil when the slot is free.
func (m *Manager) Current() Holder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.holder
}

// Held reports whether the slot is taken.
func (m *Manager) Held() bool {
	return m.Current() != nil
}
