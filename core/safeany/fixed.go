package safeany

import (
	"github.com/codewandler/safeany/core/erasure"
	"github.com/codewandler/safeany/core/mutex"
)

// Fixed is a container whose value is set once at construction and never
// replaced. With nothing to protect against, guards on it never conflict.
type Fixed struct {
	b Base
}

// MakeFixed returns a Fixed holding a copy of v.
func MakeFixed[T any](v T, opts ...Option) *Fixed {
	f := &Fixed{}
	f.b.init(mutex.Nop{}, mutex.NewDebug(), newConfig(opts))
	erasure.Emplace(&f.b.val, v)
	f.b.publish()
	f.b.fixed = true
	return f
}

func (f *Fixed) core() *Base { return &f.b }

func (f *Fixed) HasValue() bool       { return f.b.HasValue() }
func (f *Fixed) Type() erasure.TypeID { return f.b.Type() }
func (f *Fixed) Name() string         { return f.b.Name() }
func (f *Fixed) Ref() Ref             { return f.b.Ref() }
func (f *Fixed) String() string       { return f.b.String() }
