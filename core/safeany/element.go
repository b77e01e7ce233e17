package safeany

import "github.com/codewandler/safeany/core/erasure"

// ElementPointer points at the value stored in a container and owns a guard
// on that container, so the value cannot be replaced while the pointer is
// alive. Release the pointer to release the guard.
type ElementPointer[T any] struct {
	g *Guard
	p *T
}

// Element type-checks the value guarded by g and returns a pointer to it.
// The pointer owns its own share of g's hold; g stays independently
// releasable.
func Element[T any](g *Guard) (*ElementPointer[T], error) {
	if g.Released() {
		return nil, ErrGuardReleased
	}
	p, err := elementOf[T](g)
	if err != nil {
		return nil, err
	}
	shared, err := g.Clone()
	if err != nil {
		return nil, err
	}
	return &ElementPointer[T]{g: shared, p: p}, nil
}

// NewElementPointer guards the container behind ref and returns a pointer
// to its value.
func NewElementPointer[T any](ref Ref) (*ElementPointer[T], error) {
	g, err := NewGuard(ref)
	if err != nil {
		return nil, err
	}
	return fold[T](g)
}

// fold turns g into an element pointer, or releases it on failure.
func fold[T any](g *Guard) (*ElementPointer[T], error) {
	p, err := elementOf[T](g)
	if err != nil {
		g.Release()
		return nil, err
	}
	return &ElementPointer[T]{g: g, p: p}, nil
}

// elementOf needs no access lock: the shared structure hold already pins the
// stored value in place.
func elementOf[T any](g *Guard) (*T, error) {
	b := g.hd.h.b
	p, err := erasure.Ref[T](&b.val)
	if err != nil {
		b.metrics.BadCast()
		return nil, err
	}
	return p, nil
}

func (e *ElementPointer[T]) deref() *T {
	if e.g.Released() {
		panic(ErrGuardReleased)
	}
	return e.p
}

func (e *ElementPointer[T]) base() *Base { return e.g.hd.h.b }

// Ptr returns the raw pointer. It is only valid until e is released.
// Accesses through it cannot be synchronized, so on an AsyncAny Ptr panics
// with ErrUnsynchronized.
func (e *ElementPointer[T]) Ptr() *T {
	p := e.deref()
	if e.base().async {
		panic(ErrUnsynchronized)
	}
	return p
}

// Load returns a copy of the pointed-to value.
func (e *ElementPointer[T]) Load() T {
	p := e.deref()
	defer e.base().readPayload()()
	return *p
}

// Store overwrites the pointed-to value.
func (e *ElementPointer[T]) Store(v T) {
	p := e.deref()
	defer e.base().writePayload()()
	*p = v
}

// Update calls fn with the pointed-to value, excluding every other reader
// and writer of the value for the duration of the call.
func (e *ElementPointer[T]) Update(fn func(p *T)) {
	p := e.deref()
	defer e.base().writePayload()()
	fn(p)
}

// Guard returns the guard owned by e.
func (e *ElementPointer[T]) Guard() *Guard { return e.g }

// Const returns a read-only pointer to the same value, sharing e's hold.
func (e *ElementPointer[T]) Const() (*ConstElementPointer[T], error) {
	g, err := e.g.Clone()
	if err != nil {
		return nil, err
	}
	return &ConstElementPointer[T]{e: ElementPointer[T]{g: g, p: e.p}}, nil
}

// Release releases the guard owned by e. It is idempotent.
func (e *ElementPointer[T]) Release() { e.g.Release() }

// ConstElementPointer is an ElementPointer without write access.
type ConstElementPointer[T any] struct {
	e ElementPointer[T]
}

// NewConstElementPointer guards the container behind ref and returns a
// read-only pointer to its value.
func NewConstElementPointer[T any](ref Ref) (*ConstElementPointer[T], error) {
	e, err := NewElementPointer[T](ref)
	if err != nil {
		return nil, err
	}
	return &ConstElementPointer[T]{e: *e}, nil
}

func (c *ConstElementPointer[T]) Load() T       { return c.e.Load() }
func (c *ConstElementPointer[T]) Guard() *Guard { return c.e.g }
func (c *ConstElementPointer[T]) Release()      { c.e.Release() }
