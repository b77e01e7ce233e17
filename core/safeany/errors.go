package safeany

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codewandler/safeany/core/erasure"
	"github.com/codewandler/safeany/core/tracked"
)

var (
	// Lock protocol errors
	ErrStructureLockViolation = errors.New("attempted to modify the structure of the container while a scoped reference to one of its elements still exists")
	ErrAccessLockViolation    = errors.New("attempted to access the object while it is being borrowed")

	// Lifecycle errors
	ErrClosed        = errors.New("container is closed")
	ErrFixed         = errors.New("container is fixed and cannot be modified")
	ErrGuardReleased = errors.New("guard already released")

	// Value errors
	ErrNotShareable   = errors.New("value type is not safe to share between goroutines")
	ErrUnsynchronized = errors.New("raw pointer into a container shared between goroutines")

	// Re-exported from the packages that produce them.
	ErrBadCast  = erasure.ErrBadCast
	ErrDangling = tracked.ErrDangling
)

// ViolationKind tells which lock a ViolationError is about.
type ViolationKind string

const (
	ViolationStructure ViolationKind = "structure"
	ViolationAccess    ViolationKind = "access"
)

// ViolationError reports a failed lock acquisition. It unwraps to
// ErrStructureLockViolation or ErrAccessLockViolation, and to the mutex
// error that caused it.
type ViolationError struct {
	Kind      ViolationKind
	Container string
	Op        string
	Borrows   []string // outstanding borrows at the time of the violation
	Cause     error
}

func (e *ViolationError) sentinel() error {
	if e.Kind == ViolationAccess {
		return ErrAccessLockViolation
	}
	return ErrStructureLockViolation
}

func (e *ViolationError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Container, e.Op, e.sentinel())
	if len(e.Borrows) > 0 {
		msg += " (borrows: " + strings.Join(e.Borrows, ", ") + ")"
	}
	return msg
}

func (e *ViolationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Cause}
}
