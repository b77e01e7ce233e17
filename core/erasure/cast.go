package erasure

import "reflect"

func holds[T any](a *Any) bool {
	return a.tb != nil && a.tb.id.t == reflect.TypeFor[T]()
}

// Ptr returns a pointer to the stored value if it is a T, nil otherwise.
// The pointer is valid until the value is destroyed or moved.
func Ptr[T any](a *Any) *T {
	if !holds[T](a) {
		return nil
	}
	return (*T)(a.tb.address(&a.c))
}

// Ref is like Ptr but reports a mismatch as a *BadCastError.
func Ref[T any](a *Any) (*T, error) {
	p := Ptr[T](a)
	if p == nil {
		return nil, &BadCastError{Have: a.Type(), Want: TypeOf[T]()}
	}
	return p, nil
}

// Get returns a copy of the stored value.
func Get[T any](a *Any) (T, error) {
	p, err := Ref[T](a)
	if err != nil {
		var zero T
		return zero, err
	}
	return copyOf(p), nil
}

// Take extracts the stored value from a container that is about to be
// discarded. Movable values are moved out and the zero T is left behind;
// Pinned values are copied and left in place.
func Take[T any](a *Any) (T, error) {
	p, err := Ref[T](a)
	if err != nil {
		var zero T
		return zero, err
	}
	if !a.tb.movable {
		return copyOf(p), nil
	}
	v := *p
	var zero T
	*p = zero
	return v, nil
}
