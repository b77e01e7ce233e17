package mutex

import "time"

// Nop is a SharedMutex whose acquisitions always succeed.
type Nop struct{}

func (Nop) Lock() error                   { return nil }
func (Nop) Unlock()                       {}
func (Nop) TryLock() bool                 { return true }
func (Nop) TryLockFor(time.Duration) bool { return true }
func (Nop) TryLockUntil(time.Time) bool   { return true }

func (Nop) RLock() error                   { return nil }
func (Nop) RUnlock()                       {}
func (Nop) TryRLock() bool                 { return true }
func (Nop) TryRLockFor(time.Duration) bool { return true }
func (Nop) TryRLockUntil(time.Time) bool   { return true }

var _ SharedMutex = Nop{}

