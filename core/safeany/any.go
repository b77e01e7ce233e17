package safeany

import (
	"github.com/codewandler/safeany/core/erasure"
	"github.com/codewandler/safeany/core/mutex"
)

// Any is a container for use from a single goroutine. Its locks never
// block: a conflicting operation fails right away with a ViolationError.
type Any struct {
	Base
}

// New returns an empty Any.
func New(opts ...Option) *Any {
	a := &Any{}
	a.init(mutex.NewDebug(), mutex.NewDebug(), newConfig(opts))
	return a
}

// MakeAny returns an Any holding a copy of v.
func MakeAny[T any](v T, opts ...Option) *Any {
	a := New(opts...)
	erasure.Emplace(&a.val, v)
	a.publish()
	return a
}
