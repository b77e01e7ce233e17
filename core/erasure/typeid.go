package erasure

import (
	"reflect"

	"github.com/codewandler/safeany/core/reflector"
)

// TypeID identifies a concrete type. Two TypeIDs are equal iff they name the
// same type. The zero TypeID stands for "no value".
type TypeID struct {
	t reflect.Type
}

// TypeOf returns the TypeID of T.
func TypeOf[T any]() TypeID { return TypeID{t: reflect.TypeFor[T]()} }

func (id TypeID) IsZero() bool { return id.t == nil }

// Reflect returns the reflect.Type behind id, or nil for the zero TypeID.
func (id TypeID) Reflect() reflect.Type { return id.t }

func (id TypeID) String() string {
	if id.t == nil {
		return "<empty>"
	}
	return reflector.TypeInfoForType(id.t).Name
}

// Fingerprint returns a digest of the type's qualified name. Unlike the
// TypeID itself it can be compared across separately built binaries, at the
// cost of treating same-named types as equal.
func (id TypeID) Fingerprint() uint64 {
	if id.t == nil {
		return 0
	}
	return reflector.TypeInfoForType(id.t).Fingerprint
}
