// Package mutex provides the lock capability used by safeany containers.
//
// Two behaviors are offered behind the same interfaces:
//
//   - [Debug] never blocks. A conflicting acquisition fails immediately with
//     [ErrWouldBlock], which turns same-goroutine lifetime bugs into errors.
//   - [Shared] is a real reader/writer mutex that blocks, with timed and
//     context-aware acquisition.
//
// [Nop] accepts every acquisition and is used where the lock protocol is
// satisfied trivially (values that can never be replaced).
package mutex

import (
	"errors"
	"time"
)

// ErrWouldBlock is returned by a non-blocking mutex when the requested hold
// conflicts with an existing one.
var ErrWouldBlock = errors.New("mutex: acquisition would block")

// Mutex is an exclusive lock.
type Mutex interface {
	// Lock acquires the mutex exclusively. Blocking implementations wait;
	// non-blocking implementations return ErrWouldBlock on conflict.
	Lock() error
	Unlock()
	TryLock() bool
	TryLockFor(d time.Duration) bool
	TryLockUntil(deadline time.Time) bool
}

// SharedMutex is a reader/writer lock: any number of shared holders or a
// single exclusive holder.
type SharedMutex interface {
	Mutex
	RLock() error
	RUnlock()
	TryRLock() bool
	TryRLockFor(d time.Duration) bool
	TryRLockUntil(deadline time.Time) bool
}
