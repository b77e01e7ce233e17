package safeany

import (
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/safeany/core/erasure"
	"github.com/codewandler/safeany/core/mutex"
)

// hold is one shared acquisition of a container's structure lock. Guards
// cloned from each other share a hold; the lock is released when the last
// of them is released.
type hold struct {
	b    *Base
	id   string
	refs atomic.Int32
}

func (h *hold) unref() {
	if h.refs.Add(-1) > 0 {
		return
	}
	h.b.borrows.remove(h.id)
	h.b.structure.RUnlock()
}

type handle struct {
	h        *hold
	released atomic.Bool
}

func (hd *handle) release(leaked bool) {
	if hd.released.Swap(true) {
		return
	}
	if leaked {
		hd.h.b.log.Warn("guard was not released and got collected", slog.String("guard", hd.h.id))
	}
	hd.h.b.metrics.GuardReleased(leaked)
	hd.h.unref()
}

// Guard keeps a container's structure lock shared for as long as it lives:
// while any guard on a container is alive, the value of that container
// cannot be replaced, reset or moved out.
//
// A Guard is not safe for concurrent use; give each goroutine its own
// Clone. Release a guard when done with it. A guard that becomes unreachable
// without being released is released by the garbage collector eventually,
// and a warning is logged.
type Guard struct {
	hd *handle
}

// NewGuard takes a shared structure hold on the container behind ref.
// Depending on the container's mutex it fails with a ViolationError or
// blocks while the container is being modified.
func NewGuard(ref Ref) (*Guard, error) {
	b, err := ref.Get()
	if err != nil {
		return nil, err
	}
	return b.guard(b.structure.RLock)
}

// TryNewGuard is like NewGuard but waits at most d for the structure lock.
func TryNewGuard(ref Ref, d time.Duration) (*Guard, error) {
	b, err := ref.Get()
	if err != nil {
		return nil, err
	}
	return b.guard(func() error {
		if !b.structure.TryRLockFor(d) {
			return mutex.ErrWouldBlock
		}
		return nil
	})
}

func (b *Base) guard(rlock func() error) (*Guard, error) {
	if err := rlock(); err != nil {
		return nil, b.violation("guard", ViolationStructure, err)
	}
	if b.closed.Load() {
		b.structure.RUnlock()
		return nil, ErrClosed
	}
	h := &hold{b: b, id: "guard-" + gonanoid.Must(8)}
	h.refs.Store(1)
	b.borrows.add(h.id)
	return newGuard(h), nil
}

// newGuard wraps a hold whose reference count already accounts for the
// returned guard.
func newGuard(h *hold) *Guard {
	h.b.metrics.GuardAcquired()
	g := &Guard{hd: &handle{h: h}}
	runtime.AddCleanup(g, func(hd *handle) { hd.release(true) }, g.hd)
	return g
}

// ID identifies the hold shared by g and its clones.
func (g *Guard) ID() string { return g.hd.h.id }

// Released reports whether g was released or moved.
func (g *Guard) Released() bool { return g.hd.released.Load() }

// HasValue reports whether the guarded container holds a value.
func (g *Guard) HasValue() bool { return g.hd.h.b.HasValue() }

// Type returns the type held by the guarded container. It cannot change
// while g is alive.
func (g *Guard) Type() erasure.TypeID { return g.hd.h.b.Type() }

// Clone returns a new guard sharing g's hold.
func (g *Guard) Clone() (*Guard, error) {
	if g.Released() {
		return nil, ErrGuardReleased
	}
	g.hd.h.refs.Add(1)
	return newGuard(g.hd.h), nil
}

// Move transfers g's hold to a new guard and leaves g released.
func (g *Guard) Move() (*Guard, error) {
	if g.hd.released.Swap(true) {
		return nil, ErrGuardReleased
	}
	g.hd.h.b.metrics.GuardReleased(false)
	return newGuard(g.hd.h), nil
}

// Release drops g's share of the hold. It is idempotent.
func (g *Guard) Release() { g.hd.release(false) }
