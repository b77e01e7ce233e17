package safeany

import (
	"github.com/codewandler/safeany/core/erasure"
	"github.com/codewandler/safeany/core/mutex"
)

// AsyncAny is a container that may be shared between goroutines. Its locks
// block: a mutation waits for outstanding guards to be released, and a new
// guard waits for a mutation in progress.
//
// Only values that are safe to share between goroutines can be stored
// (see erasure.Shareable); others are rejected with ErrNotShareable.
//
// Element pointers into an AsyncAny must be read and written with Load,
// Store and Update, which synchronize with each other and with casts. Raw
// pointers (ElementPointer.Ptr, AnyCastPtr) are not handed out.
type AsyncAny struct {
	Base
}

// NewAsync returns an empty AsyncAny.
func NewAsync(opts ...Option) *AsyncAny {
	a := &AsyncAny{}
	a.init(mutex.NewShared(), mutex.NewShared(), newConfig(opts))
	a.async = true
	a.payload = mutex.NewShared()
	return a
}

// MakeAsyncAny returns an AsyncAny holding a copy of v.
func MakeAsyncAny[T any](v T, opts ...Option) (*AsyncAny, error) {
	a := NewAsync(opts...)
	if err := a.admit(erasure.TypeOf[T](), erasure.Shareable[T]()); err != nil {
		return nil, err
	}
	erasure.Emplace(&a.val, v)
	a.publish()
	return a, nil
}
