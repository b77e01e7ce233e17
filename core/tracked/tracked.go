// Package tracked provides ownership-tracked references.
//
// An [Owner] wraps a value and hands out [Ref]s to it. Once the owner is
// released, every ref it ever handed out reports itself invalid and refuses
// to dereference, so a stale ref surfaces as [ErrDangling] rather than as a
// read of a torn-down object.
//
//	owner := tracked.NewOwner(&value)
//	ref := owner.Ref()
//
//	p, err := ref.Get() // p == &value
//	owner.Release()
//	_, err = ref.Get()  // errors.Is(err, tracked.ErrDangling)
package tracked

import (
	"errors"
	"sync/atomic"
)

// ErrDangling is returned when a Ref is dereferenced after its owner was released.
var ErrDangling = errors.New("tracked: reference outlived its owner")

type state struct {
	released atomic.Bool
	refs     atomic.Int64
}

// Owner owns a value and tracks the references handed out to it.
type Owner[T any] struct {
	v  *T
	st *state
}

// NewOwner starts tracking v. v must not be nil.
func NewOwner[T any](v *T) *Owner[T] {
	if v == nil {
		panic("tracked: nil owner value")
	}
	return &Owner[T]{v: v, st: &state{}}
}

// Ref hands out a new reference to the owned value.
func (o *Owner[T]) Ref() Ref[T] {
	o.st.refs.Add(1)
	return Ref[T]{v: o.v, st: o.st}
}

// Refs returns the number of references handed out so far.
func (o *Owner[T]) Refs() int64 { return o.st.refs.Load() }

// Released reports whether Release was called.
func (o *Owner[T]) Released() bool { return o.st.released.Load() }

// Release invalidates every reference handed out by o. It is idempotent.
func (o *Owner[T]) Release() { o.st.released.Store(true) }

// Ref is a reference to a value owned by an Owner. The zero Ref is invalid.
type Ref[T any] struct {
	v  *T
	st *state
}

// Valid reports whether the referenced value is still owned.
func (r Ref[T]) Valid() bool {
	return r.st != nil && !r.st.released.Load()
}

// Get dereferences r.
func (r Ref[T]) Get() (*T, error) {
	if !r.Valid() {
		return nil, ErrDangling
	}
	return r.v, nil
}

// MustGet is like Get but panics on a dangling reference.
func (r Ref[T]) MustGet() *T {
	v, err := r.Get()
	if err != nil {
		panic(err)
	}
	return v
}
