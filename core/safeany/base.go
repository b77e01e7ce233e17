package safeany

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/safeany/core/erasure"
	"github.com/codewandler/safeany/core/mutex"
	"github.com/codewandler/safeany/core/tracked"
)

// Ref is an ownership-tracked reference to a container. Guards are built
// from a Ref rather than from a bare pointer, so a guard cannot be taken on
// a container that has been closed.
type Ref = tracked.Ref[Base]

// Container is implemented by every container variant.
type Container interface {
	HasValue() bool
	Type() erasure.TypeID
	core() *Base
}

// Mutable is implemented by the variants whose value can be replaced.
type Mutable interface {
	Container
	mutable()
}

// Base is the value, its structure and access locks and the bookkeeping
// shared by all container variants.
//
// The structure lock is held exclusively by every operation that changes
// which value is stored, and shared by every live Guard. The access lock is
// held by every operation that exposes the stored value. Access is always
// acquired before structure.
//
// Containers shared between goroutines also have a payload lock. It orders
// reads and writes of the stored value made through element pointers
// against each other and against casts. It is always acquired last.
//
// Base must not be copied; use the constructors of the variants.
type Base struct {
	val       erasure.Any
	kind      atomic.Pointer[erasure.TypeID]
	structure mutex.SharedMutex
	access    mutex.Mutex
	payload   *mutex.Shared
	owner     *tracked.Owner[Base]
	borrows   borrows
	closed    atomic.Bool

	name    string
	log     *slog.Logger
	metrics Metrics
	async   bool
	fixed   bool
}

func (b *Base) init(structure mutex.SharedMutex, access mutex.Mutex, cfg *config) {
	b.structure = structure
	b.access = access
	b.owner = tracked.NewOwner(b)
	b.name = cfg.name
	b.log = cfg.log.With(slog.String("container", cfg.name))
	b.metrics = cfg.metrics
}

func (b *Base) core() *Base { return b }
func (b *Base) mutable()    {}

// Name returns the container name used in logs and errors.
func (b *Base) Name() string { return b.name }

// HasValue reports whether a value is stored. It takes no lock.
func (b *Base) HasValue() bool { return b.kind.Load() != nil }

// Type returns the TypeID of the stored value. It takes no lock.
func (b *Base) Type() erasure.TypeID {
	if t := b.kind.Load(); t != nil {
		return *t
	}
	return erasure.TypeID{}
}

// Ref hands out a tracked reference to b.
func (b *Base) Ref() Ref { return b.owner.Ref() }

// Borrows returns the IDs of the outstanding guards and payload borrows.
func (b *Base) Borrows() []string { return b.borrows.ids() }

func (b *Base) String() string {
	return fmt.Sprintf("%s(%s)", b.name, b.Type())
}

// Reset destroys the stored value.
func (b *Base) Reset() error {
	return b.mutate("reset", func(a *erasure.Any) error {
		a.Reset()
		return nil
	})
}

// TryReset is like Reset but waits at most d for the structure lock.
func (b *Base) TryReset(d time.Duration) error {
	if err := b.usable(); err != nil {
		return err
	}
	timer := b.metrics.StructureLockWait("reset")
	ok := b.structure.TryLockFor(d)
	timer.ObserveDuration()
	if !ok {
		return b.violation("reset", ViolationStructure, mutex.ErrWouldBlock)
	}
	defer b.structure.Unlock()
	defer b.publish()
	if b.closed.Load() {
		return ErrClosed
	}
	b.val.Reset()
	return nil
}

// CopyFrom replaces the value of b with a copy of the value of src.
func (b *Base) CopyFrom(src Container) error {
	s := src.core()
	if s == b {
		return nil
	}
	var tmp erasure.Any
	err := s.expose("copy", func(a *erasure.Any) error {
		if b.async && !a.Shareable() {
			return b.notShareable(a.Type())
		}
		tmp.CopyFrom(a)
		return nil
	})
	if err != nil {
		return err
	}
	return b.mutate("assign", func(a *erasure.Any) error {
		a.MoveFrom(&tmp)
		return nil
	})
}

// MoveFrom replaces the value of b with the value of src and leaves src
// empty. Moving a value out is both an access to src and a change of its
// structure, so src must be neither borrowed nor guarded.
func (b *Base) MoveFrom(src Mutable) error {
	s := src.core()
	if s == b {
		return nil
	}
	var tmp erasure.Any
	err := s.takeOut("move", func(a *erasure.Any) error {
		if b.async && !a.Shareable() {
			return b.notShareable(a.Type())
		}
		tmp.MoveFrom(a)
		return nil
	})
	if err != nil {
		return err
	}
	err = b.mutate("assign", func(a *erasure.Any) error {
		a.MoveFrom(&tmp)
		return nil
	})
	if err != nil {
		if rerr := s.mutate("restore", func(a *erasure.Any) error {
			a.MoveFrom(&tmp)
			return nil
		}); rerr != nil {
			s.log.Error("value lost while restoring failed move", slog.Any("error", rerr))
			tmp.Reset()
		}
	}
	return err
}

// Swap exchanges the values of b and other.
//
// The exchange runs in three steps that each lock a single container, so it
// is not atomic for a third party that only borrows one of the two sides.
// If the second step fails, b gets its own value back.
func (b *Base) Swap(other Mutable) error {
	o := other.core()
	if o == b {
		return nil
	}

	var tmp erasure.Any
	err := b.mutate("swap", func(a *erasure.Any) error {
		if o.async && !a.Shareable() {
			return o.notShareable(a.Type())
		}
		tmp.MoveFrom(a)
		return nil
	})
	if err != nil {
		return err
	}

	err = o.mutate("swap", func(a *erasure.Any) error {
		if b.async && !a.Shareable() {
			return b.notShareable(a.Type())
		}
		a.Swap(&tmp)
		return nil
	})

	if rerr := b.mutate("swap", func(a *erasure.Any) error {
		a.MoveFrom(&tmp)
		return nil
	}); rerr != nil {
		b.log.Error("value lost while completing swap", slog.Any("error", rerr))
		tmp.Reset()
		if err == nil {
			err = rerr
		}
	}
	return err
}

// Visit borrows the stored value exclusively for the duration of fn. While
// fn runs, any other access to the container fails (or blocks, for
// AsyncAny). fn may replace the value.
func (b *Base) Visit(fn func(a *erasure.Any) error) error {
	id := "visit-" + gonanoid.Must(8)
	return b.takeOut("visit", func(a *erasure.Any) error {
		b.borrows.add(id)
		defer b.borrows.remove(id)
		return fn(a)
	})
}

// Close destroys the stored value and invalidates every Ref handed out by b.
// Closing a container that is still borrowed is a lifetime bug and panics.
// Fixed containers ignore Close.
func (b *Base) Close() {
	if b.fixed || b.closed.Swap(true) {
		return
	}
	b.owner.Release()
	if err := b.structure.Lock(); err != nil {
		panic(b.violation("close", ViolationStructure, err))
	}
	defer b.structure.Unlock()
	defer b.publish()
	b.val.Reset()
	b.log.Debug("container closed")
}

// Closed reports whether Close was called.
func (b *Base) Closed() bool { return b.closed.Load() }

// ----- locking -----

func (b *Base) usable() error {
	if b.fixed {
		return ErrFixed
	}
	if b.closed.Load() {
		return ErrClosed
	}
	return nil
}

// mutate runs fn with the structure lock held exclusively.
func (b *Base) mutate(op string, fn func(a *erasure.Any) error) error {
	if err := b.usable(); err != nil {
		return err
	}
	timer := b.metrics.StructureLockWait(op)
	err := b.structure.Lock()
	timer.ObserveDuration()
	if err != nil {
		return b.violation(op, ViolationStructure, err)
	}
	defer b.structure.Unlock()
	defer b.publish()
	if b.closed.Load() {
		return ErrClosed
	}
	return fn(&b.val)
}

// expose runs fn with the access lock held and the structure lock shared.
func (b *Base) expose(op string, fn func(a *erasure.Any) error) error {
	if err := b.access.Lock(); err != nil {
		return b.violation(op, ViolationAccess, err)
	}
	defer b.access.Unlock()
	if err := b.structure.RLock(); err != nil {
		return b.violation(op, ViolationStructure, err)
	}
	defer b.structure.RUnlock()
	if b.closed.Load() {
		return ErrClosed
	}
	defer b.readPayload()()
	return fn(&b.val)
}

// readPayload takes the payload lock shared and returns its release.
// Containers without a payload lock are used from a single goroutine.
func (b *Base) readPayload() func() {
	if b.payload == nil {
		return func() {}
	}
	_ = b.payload.RLock()
	return b.payload.RUnlock
}

// writePayload is like readPayload but takes the payload lock exclusively.
func (b *Base) writePayload() func() {
	if b.payload == nil {
		return func() {}
	}
	_ = b.payload.Lock()
	return b.payload.Unlock
}

// takeOut runs fn with the access lock held and, nested, the structure lock
// held exclusively.
func (b *Base) takeOut(op string, fn func(a *erasure.Any) error) error {
	if err := b.usable(); err != nil {
		return err
	}
	if err := b.access.Lock(); err != nil {
		return b.violation(op, ViolationAccess, err)
	}
	defer b.access.Unlock()
	return b.mutate(op, fn)
}

func (b *Base) publish() {
	t := b.val.Type()
	if t.IsZero() {
		b.kind.Store(nil)
		return
	}
	b.kind.Store(&t)
}

func (b *Base) admit(t erasure.TypeID, shareable bool) error {
	if b.async && !shareable {
		return b.notShareable(t)
	}
	return nil
}

func (b *Base) notShareable(t erasure.TypeID) error {
	return fmt.Errorf("%s: %w: %s", b.name, ErrNotShareable, t)
}

func (b *Base) violation(op string, kind ViolationKind, cause error) error {
	err := &ViolationError{
		Kind:      kind,
		Container: b.name,
		Op:        op,
		Borrows:   b.borrows.ids(),
		Cause:     cause,
	}
	b.metrics.LockViolation(kind)
	b.log.Debug("lock violation",
		slog.String("op", op),
		slog.String("kind", string(kind)),
		slog.Any("borrows", err.Borrows),
	)
	return err
}
