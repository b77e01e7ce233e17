package safeany

import (
	"errors"
	"log/slog"

	"github.com/codewandler/safeany/core/erasure"
)

// AnyCast returns a copy of the value held by c if it is a T.
func AnyCast[T any](c Container) (v T, err error) {
	b := c.core()
	err = b.expose("cast", func(a *erasure.Any) error {
		v, err = erasure.Get[T](a)
		return err
	})
	if errors.Is(err, ErrBadCast) {
		b.metrics.BadCast()
	}
	return v, err
}

// MaybeAnyCast is like AnyCast but reports failure as ok == false.
func MaybeAnyCast[T any](c Container) (T, bool) {
	v, err := AnyCast[T](c)
	return v, err == nil
}

// AnyCastPtr returns a pointer to the value held by c if it is a T, nil
// otherwise. No guard backs the pointer: it is only valid until the value
// is next replaced. Use NewElementPointer to keep it valid.
//
// AnyCastPtr always returns nil for an AsyncAny.
func AnyCastPtr[T any](c Container) *T {
	b := c.core()
	if b.async {
		b.log.Debug("cast pointer refused", slog.Any("error", ErrUnsynchronized))
		return nil
	}
	var p *T
	err := b.expose("cast", func(a *erasure.Any) (err error) {
		p, err = erasure.Ref[T](a)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrBadCast) {
			b.metrics.BadCast()
		}
		b.log.Debug("cast pointer failed", slog.Any("error", err))
		return nil
	}
	return p
}

// Take moves the value out of c, leaving the zero T behind (Pinned values
// are copied instead). Taking is an access and a change of structure, so c
// must be neither borrowed nor guarded.
func Take[T any](c Mutable) (v T, err error) {
	b := c.core()
	err = b.takeOut("take", func(a *erasure.Any) error {
		v, err = erasure.Take[T](a)
		return err
	})
	if errors.Is(err, ErrBadCast) {
		b.metrics.BadCast()
	}
	return v, err
}

// Emplace replaces the value of c with a new T constructed in place by init.
func Emplace[T any](c Mutable, init func(p *T)) error {
	b := c.core()
	if err := b.admit(erasure.TypeOf[T](), erasure.Shareable[T]()); err != nil {
		return err
	}
	return b.mutate("emplace", func(a *erasure.Any) error {
		erasure.EmplaceWith(a, init)
		return nil
	})
}

// Assign replaces the value of c with a copy of v.
func Assign[T any](c Mutable, v T) error {
	b := c.core()
	if err := b.admit(erasure.TypeOf[T](), erasure.Shareable[T]()); err != nil {
		return err
	}
	return b.mutate("assign", func(a *erasure.Any) error {
		erasure.Emplace(a, v)
		return nil
	})
}

// Swap exchanges the values of a and b. See Base.Swap.
func Swap(a, b Mutable) error { return a.core().Swap(b) }
