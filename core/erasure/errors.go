package erasure

import (
	"errors"
	"fmt"
)

// ErrBadCast is returned when the requested type does not match the stored
// one, or when the container is empty.
var ErrBadCast = errors.New("bad any cast")

// BadCastError describes a failed type-checked extraction.
type BadCastError struct {
	Have TypeID
	Want TypeID
}

func (e *BadCastError) Error() string {
	return fmt.Sprintf("%s: holds %s, requested %s", ErrBadCast, e.Have, e.Want)
}

func (e *BadCastError) Unwrap() error { return ErrBadCast }
