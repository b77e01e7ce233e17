// Package erasure implements a type-erased single-value container.
//
// An [Any] holds at most one value of any type. The value goes in through a
// generic constructor and comes back out only when the requested type
// matches exactly:
//
//	a := erasure.New(42)
//	n, err := erasure.Get[int](&a)      // 42, nil
//	_, err = erasure.Get[float64](&a)   // errors.Is(err, erasure.ErrBadCast)
//	p := erasure.Ptr[string](&a)        // nil
//
// # Operation tables
//
// Every concrete type gets one immutable operation table (destroy, copy,
// move, swap, address) the first time it is stored. Tables are memoized in a
// process-wide registry keyed by type and are never evicted.
//
// # Placement
//
// Small values that hold no pointers are stored inline in the container's
// storage cell; everything else lives in a separate heap allocation. The
// decision is fixed per type (see [PlacementOf]):
//
//   - [Pinned] types always go to the heap, so the value never relocates.
//   - Types containing pointers go to the heap; the inline buffer is
//     untyped memory the garbage collector does not scan.
//   - Types larger than [InlineCapacity] or with a stricter alignment than
//     the buffer go to the heap.
//
// # Value semantics
//
// Copies use plain assignment unless the type implements [Cloner], in which
// case Clone is used for every copy. Values implementing [Dropper] are told
// when the container destroys them. [Take] moves a value out of the
// container, leaving the zero value behind, unless the type is [Pinned], in
// which case it copies.
//
// An Any must not be copied by assignment once it holds a value; use
// [Any.Clone] or [Any.CopyFrom]. It is not safe for concurrent use; the
// safeany package layers locking on top.
package erasure
