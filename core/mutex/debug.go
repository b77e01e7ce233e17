package mutex

import (
	"sync"
	"time"
)

// Debug is a non-blocking reader/writer mutex. Acquisition either succeeds
// at once or fails with ErrWouldBlock; it never waits. The timed try-forms
// do not wait either.
//
// Debug is safe for concurrent use, but it is meant for containers that are
// used from a single goroutine, where a conflict is always a lifetime bug.
type Debug struct {
	mu      sync.Mutex
	readers int
	writer  bool
}

// NewDebug returns an unlocked Debug mutex.
func NewDebug() *Debug { return &Debug{} }

func (m *Debug) Lock() error {
	if !m.TryLock() {
		return ErrWouldBlock
	}
	return nil
}

func (m *Debug) TryLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writer || m.readers > 0 {
		return false
	}
	m.writer = true
	return true
}

func (m *Debug) TryLockFor(time.Duration) bool  { return m.TryLock() }
func (m *Debug) TryLockUntil(time.Time) bool    { return m.TryLock() }
func (m *Debug) TryRLockFor(time.Duration) bool { return m.TryRLock() }
func (m *Debug) TryRLockUntil(time.Time) bool   { return m.TryRLock() }

func (m *Debug) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.writer {
		panic("mutex: unlock of unlocked debug mutex")
	}
	m.writer = false
}

func (m *Debug) RLock() error {
	if !m.TryRLock() {
		return ErrWouldBlock
	}
	return nil
}

func (m *Debug) TryRLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writer {
		return false
	}
	m.readers++
	return true
}

func (m *Debug) RUnlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readers == 0 {
		panic("mutex: runlock of unlocked debug mutex")
	}
	m.readers--
}

// Readers returns the number of shared holders.
func (m *Debug) Readers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readers
}

var _ SharedMutex = (*Debug)(nil)
