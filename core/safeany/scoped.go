package safeany

import "github.com/codewandler/safeany/core/mutex"

// Scoped is a container that only exists for the duration of a WithScope
// callback. Because it cannot outlive the callback, guards are taken on it
// directly instead of through a tracked Ref.
type Scoped struct {
	Base
}

// WithScope creates a Scoped container, passes it to fn and closes it when
// fn returns. A guard or element pointer still alive at that point is a
// lifetime bug and panics.
func WithScope(fn func(s *Scoped) error, opts ...Option) error {
	s := &Scoped{}
	s.init(mutex.NewDebug(), mutex.NewDebug(), newConfig(opts))
	defer s.Close()
	return fn(s)
}

// Guard takes a shared structure hold on s.
func (s *Scoped) Guard() (*Guard, error) {
	return s.guard(s.structure.RLock)
}

// ScopedElementPointer returns a pointer to the value of s.
func ScopedElementPointer[T any](s *Scoped) (*ElementPointer[T], error) {
	g, err := s.Guard()
	if err != nil {
		return nil, err
	}
	return fold[T](g)
}
