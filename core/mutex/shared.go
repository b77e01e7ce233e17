package mutex

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// maxReaders is the weight an exclusive holder takes; each shared holder
// takes a weight of one.
const maxReaders = 1 << 30

// Shared is a blocking reader/writer mutex with timed acquisition.
//
// Waiters are served in FIFO order: once a writer is queued, later readers
// wait behind it, so writers cannot starve.
type Shared struct {
	sem *semaphore.Weighted
}

// NewShared returns an unlocked Shared mutex.
func NewShared() *Shared {
	return &Shared{sem: semaphore.NewWeighted(maxReaders)}
}

// Lock blocks until the mutex is held exclusively. It always returns nil.
func (m *Shared) Lock() error { return m.LockContext(context.Background()) }

// LockContext is like Lock but gives up when ctx is done.
func (m *Shared) LockContext(ctx context.Context) error {
	return m.sem.Acquire(ctx, maxReaders)
}

func (m *Shared) Unlock()       { m.sem.Release(maxReaders) }
func (m *Shared) TryLock() bool { return m.sem.TryAcquire(maxReaders) }

func (m *Shared) TryLockFor(d time.Duration) bool {
	return m.TryLockUntil(time.Now().Add(d))
}

func (m *Shared) TryLockUntil(deadline time.Time) bool {
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()
	return m.LockContext(ctx) == nil
}

// RLock blocks until a shared hold is acquired. It always returns nil.
func (m *Shared) RLock() error { return m.RLockContext(context.Background()) }

// RLockContext is like RLock but gives up when ctx is done.
func (m *Shared) RLockContext(ctx context.Context) error {
	return m.sem.Acquire(ctx, 1)
}

func (m *Shared) RUnlock()       { m.sem.Release(1) }
func (m *Shared) TryRLock() bool { return m.sem.TryAcquire(1) }

func (m *Shared) TryRLockFor(d time.Duration) bool {
	return m.TryRLockUntil(time.Now().Add(d))
}

func (m *Shared) TryRLockUntil(deadline time.Time) bool {
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()
	return m.RLockContext(ctx) == nil
}

var _ SharedMutex = (*Shared)(nil)
