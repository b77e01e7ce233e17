// Package reflector provides type reflection utilities with caching.
// It extracts and caches the layout facts the erasure engine needs to decide
// where and how a value of a given type may be stored.
package reflector

import (
	"encoding/binary"
	"reflect"
	"strconv"
	"sync"

	"golang.org/x/crypto/blake2b"
)

var (
	muCache sync.RWMutex
	cache   = make(map[reflect.Type]TypeInfo)
)

// TypeInfo holds metadata about a reflected type.
type TypeInfo struct {
	Name  string       // "pkg/path.TypeName" for named types, also inside composite types
	Type  reflect.Type // The underlying reflect.Type
	Size  uintptr
	Align uintptr

	// HasPointers is set when a value of the type holds memory the garbage
	// collector has to trace (pointers, strings, slices, maps, ...).
	HasPointers bool

	// Immutable is set when copies of a value never alias mutable memory,
	// i.e. the type is built only from scalar kinds and strings.
	Immutable bool

	// Fingerprint is derived from Name only, so it is stable across
	// independently built binaries.
	Fingerprint uint64
}

// TypeInfoOf returns TypeInfo for the dynamic type of x.
// The result is cached for subsequent lookups.
func TypeInfoOf(x any) TypeInfo {
	return TypeInfoForType(reflect.TypeOf(x))
}

// TypeInfoFor returns TypeInfo for type parameter T.
// The result is cached for subsequent lookups.
func TypeInfoFor[T any]() TypeInfo {
	return TypeInfoForType(reflect.TypeFor[T]())
}

// TypeInfoForType returns TypeInfo for the given reflect.Type.
// Results are cached; thread-safe for concurrent use.
func TypeInfoForType(t reflect.Type) TypeInfo {
	if t == nil {
		return TypeInfo{}
	}

	muCache.RLock()
	ti, ok := cache[t]
	muCache.RUnlock()
	if ok {
		return ti
	}

	ti = TypeInfo{
		Name:        typeName(t),
		Type:        t,
		Size:        t.Size(),
		Align:       uintptr(t.Align()),
		HasPointers: hasPointers(t),
		Immutable:   immutable(t),
	}
	ti.Fingerprint = fingerprint(ti.Name)

	muCache.Lock()
	// Double-check after acquiring write lock
	if existing, ok := cache[t]; ok {
		muCache.Unlock()
		return existing
	}
	cache[t] = ti
	muCache.Unlock()

	return ti
}

// typeName qualifies named types by their package path, also when they are
// nested in pointer, slice, array, map or channel types. Struct, func and
// interface literals keep the package-name form of reflect.Type.String.
func typeName(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		return t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeName(t.Elem())
	case reflect.Slice:
		return "[]" + typeName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + typeName(t.Elem())
	case reflect.Map:
		return "map[" + typeName(t.Key()) + "]" + typeName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + typeName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + typeName(t.Elem())
		}
		return "chan " + typeName(t.Elem())
	default:
		return t.String()
	}
}

func fingerprint(name string) uint64 {
	sum := blake2b.Sum256([]byte(name))
	return binary.BigEndian.Uint64(sum[:8])
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func immutable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String:
		return true
	case reflect.Array:
		return t.Len() == 0 || immutable(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !immutable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return !hasPointers(t)
	}
}
