// Package safeany provides type-erased value containers that refuse to
// replace a value while a pointer into it is still in use.
//
// # Containers
//
//   - [Any]: single-goroutine use. Conflicts fail immediately with a
//     [*ViolationError].
//   - [AsyncAny]: shared between goroutines. Conflicts block. Only values
//     that are safe to share can be stored.
//   - [Fixed]: set once at construction, never replaced.
//   - [Scoped]: lives only inside a [WithScope] callback.
//
// # Borrowing
//
// A [Guard] holds a container's structure lock shared. While any guard is
// alive, [Base.Reset], [Assign], [Emplace], [Take], [Base.MoveFrom],
// [Base.CopyFrom] and [Base.Swap] on that container fail with
// [ErrStructureLockViolation]:
//
//	a := safeany.MakeAny("hello")
//
//	p, err := safeany.NewElementPointer[string](a.Ref())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(p.Load()) // hello
//
//	err = a.Reset()       // errors.Is(err, safeany.ErrStructureLockViolation)
//	p.Release()
//	err = a.Reset()       // nil
//
// An [ElementPointer] owns its guard, so the pointer and the lock live and
// die together.
//
// # Extraction
//
// [AnyCast] copies the value out, [MaybeAnyCast] reports a mismatch as a
// boolean, [AnyCastPtr] returns an unguarded pointer and [Take] moves the
// value out. A type mismatch is reported as [ErrBadCast].
//
// # Instrumentation
//
// Containers log through [log/slog] ([WithLogger]) and report lock
// violations, guard counts and lock wait times through [Metrics]
// ([WithMetrics]); adapters/prometheus provides a Prometheus implementation.
package safeany
