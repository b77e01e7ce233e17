package erasure

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/codewandler/safeany/core/reflector"
)

// InlineCapacity is the largest value size, in bytes, that can be stored
// inline in a container.
const InlineCapacity = 24

// Placement tells where a container keeps its value.
type Placement uint8

const (
	PlacementNone Placement = iota
	PlacementInline
	PlacementHeap
)

func (p Placement) String() string {
	switch p {
	case PlacementInline:
		return "inline"
	case PlacementHeap:
		return "heap"
	default:
		return "none"
	}
}

// cell holds either an inline value or a pointer to a heap value. Which one
// is active is decided by the table of the stored type.
type cell struct {
	buf  [InlineCapacity / 8]uint64
	heap unsafe.Pointer
}

var inlineAlign = unsafe.Alignof(cell{}.buf)

func (c *cell) inline() unsafe.Pointer { return unsafe.Pointer(&c.buf) }

type table struct {
	id        TypeID
	info      reflector.TypeInfo
	placement Placement
	shareable bool
	movable   bool

	destroy func(c *cell)
	copy    func(dst, src *cell)
	move    func(dst, src *cell)
	swap    func(a, b *cell)
	address func(c *cell) unsafe.Pointer
	value   func(c *cell) any
}

var registry = struct {
	mu     sync.RWMutex
	tables map[reflect.Type]*table
}{tables: make(map[reflect.Type]*table)}

// tableFor returns the memoized operation table of T.
func tableFor[T any]() *table {
	rt := reflect.TypeFor[T]()

	registry.mu.RLock()
	tb, ok := registry.tables[rt]
	registry.mu.RUnlock()
	if ok {
		return tb
	}

	tb = buildTable[T]()

	registry.mu.Lock()
	defer registry.mu.Unlock()
	if existing, ok := registry.tables[rt]; ok {
		return existing
	}
	registry.tables[rt] = tb
	return tb
}

func buildTable[T any]() *table {
	var zero T
	_, pinned := any(&zero).(Pinned)
	_, marked := any(&zero).(AsyncShareable)

	info := reflector.TypeInfoFor[T]()
	tb := &table{
		id:        TypeOf[T](),
		info:      info,
		shareable: marked || info.Immutable,
		movable:   !pinned,
	}

	if pinned || info.HasPointers || info.Size > InlineCapacity || info.Align > inlineAlign {
		tb.placement = PlacementHeap
		tb.address = func(c *cell) unsafe.Pointer { return c.heap }
		tb.destroy = func(c *cell) {
			p := (*T)(c.heap)
			c.heap = nil
			drop(p)
		}
		tb.copy = func(dst, src *cell) {
			p := new(T)
			*p = copyOf((*T)(src.heap))
			dst.heap = unsafe.Pointer(p)
		}
		tb.move = func(dst, src *cell) {
			dst.heap, src.heap = src.heap, nil
		}
		tb.swap = func(a, b *cell) {
			a.heap, b.heap = b.heap, a.heap
		}
	} else {
		tb.placement = PlacementInline
		tb.address = func(c *cell) unsafe.Pointer { return c.inline() }
		tb.destroy = func(c *cell) {
			drop((*T)(c.inline()))
			c.buf = [InlineCapacity / 8]uint64{}
		}
		tb.copy = func(dst, src *cell) {
			*(*T)(dst.inline()) = copyOf((*T)(src.inline()))
		}
		tb.move = func(dst, src *cell) {
			*(*T)(dst.inline()) = *(*T)(src.inline())
			src.buf = [InlineCapacity / 8]uint64{}
		}
		tb.swap = func(a, b *cell) {
			pa, pb := (*T)(a.inline()), (*T)(b.inline())
			*pa, *pb = *pb, *pa
		}
	}
	tb.value = func(c *cell) any { return copyOf((*T)(tb.address(c))) }

	return tb
}

// sameType compares two tables. Tables are unique per type within a
// process, so pointer equality settles it; the TypeID comparison covers the
// empty case and keeps the check correct should that ever change.
func sameType(a, b *table) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.id == b.id
}

// PlacementOf reports where values of T are stored. It never changes for a
// given T.
func PlacementOf[T any]() Placement { return tableFor[T]().placement }

// Shareable reports whether values of T may be shared between goroutines:
// T is built only from scalars and strings, or implements AsyncShareable.
func Shareable[T any]() bool { return tableFor[T]().shareable }
