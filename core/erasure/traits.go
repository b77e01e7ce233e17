package erasure

// Cloner is implemented by types that need a deep copy whenever a container
// copies them.
type Cloner[T any] interface {
	Clone() T
}

// Dropper is implemented by types that want to be notified when a container
// destroys them. Drop must not panic.
type Dropper interface {
	Drop()
}

// Pinned marks types whose values must never relocate. They are always heap
// placed, and Take copies them instead of moving them out.
type Pinned interface {
	Pinned()
}

// AsyncShareable marks types that are safe to share between goroutines even
// though they hold references to mutable memory.
type AsyncShareable interface {
	AsyncShareable()
}

func copyOf[T any](p *T) T {
	if c, ok := any(p).(Cloner[T]); ok {
		return c.Clone()
	}
	return *p
}

func drop[T any](p *T) {
	if d, ok := any(p).(Dropper); ok {
		d.Drop()
	}
}
