package erasure

import "unsafe"

// Any holds at most one value of any type. The zero Any is empty.
//
// An Any must not be copied after first use: a copy shares heap storage
// with the original, and resetting either one destroys the value of both.
// Use Clone or CopyFrom to duplicate a value, MoveFrom to transfer it.
type Any struct {
	c  cell
	tb *table
}

// New returns an Any holding a copy of v.
func New[T any](v T) Any {
	var a Any
	Emplace(&a, v)
	return a
}

// Make is like New but returns a pointer.
func Make[T any](v T) *Any {
	a := &Any{}
	Emplace(a, v)
	return a
}

// Emplace destroys the current value of a and stores a copy of v.
func Emplace[T any](a *Any, v T) {
	EmplaceWith(a, func(p *T) { *p = copyOf(&v) })
}

// EmplaceWith destroys the current value of a and constructs a new T in
// place: init receives a pointer to the zero T inside a's storage. If init
// panics, a is left empty.
func EmplaceWith[T any](a *Any, init func(p *T)) {
	tb := tableFor[T]()
	a.Reset()
	if tb.placement == PlacementHeap {
		p := new(T)
		if init != nil {
			init(p)
		}
		a.c.heap = unsafe.Pointer(p)
	} else {
		// init may have panicked halfway through a previous value.
		a.c.buf = [InlineCapacity / 8]uint64{}
		if init != nil {
			init((*T)(a.c.inline()))
		}
	}
	a.tb = tb
}

func (a *Any) HasValue() bool { return a.tb != nil }

// Type returns the TypeID of the stored value, or the zero TypeID if a is empty.
func (a *Any) Type() TypeID {
	if a.tb == nil {
		return TypeID{}
	}
	return a.tb.id
}

// Placement returns where the stored value lives.
func (a *Any) Placement() Placement {
	if a.tb == nil {
		return PlacementNone
	}
	return a.tb.placement
}

// Shareable reports whether the stored value may be shared between
// goroutines. An empty Any is shareable.
func (a *Any) Shareable() bool { return a.tb == nil || a.tb.shareable }

// Value returns a copy of the stored value boxed in an interface, or nil.
func (a *Any) Value() any {
	if a.tb == nil {
		return nil
	}
	return a.tb.value(&a.c)
}

// Reset destroys the stored value. It is a no-op on an empty Any.
func (a *Any) Reset() {
	tb := a.tb
	if tb == nil {
		return
	}
	a.tb = nil
	tb.destroy(&a.c)
}

// CopyFrom replaces the value of a with a copy of the value of src. If the
// copy panics, a keeps its previous value.
func (a *Any) CopyFrom(src *Any) {
	if a == src {
		return
	}
	if src.tb == nil {
		a.Reset()
		return
	}
	var tmp Any
	src.tb.copy(&tmp.c, &src.c)
	tmp.tb = src.tb
	a.MoveFrom(&tmp)
}

// MoveFrom replaces the value of a with the value of src and leaves src empty.
func (a *Any) MoveFrom(src *Any) {
	if a == src {
		return
	}
	a.Reset()
	if src.tb == nil {
		return
	}
	src.tb.move(&a.c, &src.c)
	a.tb, src.tb = src.tb, nil
}

// Swap exchanges the values of a and b. Values of the same type are swapped
// in place; otherwise the exchange goes through a temporary.
func (a *Any) Swap(b *Any) {
	if a == b {
		return
	}
	if sameType(a.tb, b.tb) {
		if a.tb != nil {
			a.tb.swap(&a.c, &b.c)
		}
		return
	}
	var tmp Any
	tmp.MoveFrom(a)
	a.MoveFrom(b)
	b.MoveFrom(&tmp)
}

// Clone returns an independent copy of a.
func (a *Any) Clone() Any {
	var out Any
	out.CopyFrom(a)
	return out
}

func (a *Any) String() string {
	if a.tb == nil {
		return "Any(<empty>)"
	}
	return "Any(" + a.tb.id.String() + ")"
}
