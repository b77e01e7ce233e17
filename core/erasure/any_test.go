package erasure

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int32
}

type wide [5]int64

type pinned struct {
	N int
}

func (*pinned) Pinned() {}

type cloned struct {
	Items  []int
	clones *int
}

func (c cloned) Clone() cloned {
	*c.clones++
	return cloned{Items: append([]int(nil), c.Items...), clones: c.clones}
}

type dropped struct {
	ID    int
	drops *[]int
}

func (d *dropped) Drop() { *d.drops = append(*d.drops, d.ID) }

type panicky struct{ S string }

func (panicky) Clone() panicky { panic("clone failed") }

func TestRoundTrip(t *testing.T) {
	a := New(42)
	v, err := Get[int](&a)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	s := New("hello")
	str, err := Get[string](&s)
	require.NoError(t, err)
	assert.Equal(t, "hello", str)

	p := Make(point{X: 1, Y: 2})
	pt, err := Get[point](p)
	require.NoError(t, err)
	assert.Equal(t, point{X: 1, Y: 2}, pt)

	w := Make(wide{1, 2, 3, 4, 5})
	wv, err := Get[wide](w)
	require.NoError(t, err)
	assert.Equal(t, wide{1, 2, 3, 4, 5}, wv)

	m := Make(map[string]int{"a": 1})
	mv, err := Get[map[string]int](m)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, mv)
}

func TestTypeSafety(t *testing.T) {
	a := New(42)

	assert.Nil(t, Ptr[float64](&a))
	assert.Nil(t, Ptr[int64](&a))

	_, err := Get[float64](&a)
	require.ErrorIs(t, err, ErrBadCast)

	var bce *BadCastError
	require.True(t, errors.As(err, &bce))
	assert.Equal(t, TypeOf[int](), bce.Have)
	assert.Equal(t, TypeOf[float64](), bce.Want)
	assert.Equal(t, "bad any cast: holds int, requested float64", err.Error())

	var empty Any
	_, err = Ref[int](&empty)
	require.ErrorIs(t, err, ErrBadCast)
	require.True(t, errors.As(err, &bce))
	assert.True(t, bce.Have.IsZero())
	assert.Nil(t, Ptr[int](&empty))
}

func TestEmptyAny(t *testing.T) {
	var a Any
	assert.False(t, a.HasValue())
	assert.True(t, a.Type().IsZero())
	assert.Equal(t, "<empty>", a.Type().String())
	assert.Equal(t, PlacementNone, a.Placement())
	assert.Nil(t, a.Value())
	assert.Equal(t, "Any(<empty>)", a.String())

	a.Reset()
	assert.False(t, a.HasValue())
}

func TestPlacement(t *testing.T) {
	assert.Equal(t, PlacementInline, PlacementOf[int]())
	assert.Equal(t, PlacementInline, PlacementOf[point]())
	assert.Equal(t, PlacementInline, PlacementOf[struct{}]())
	assert.Equal(t, PlacementInline, PlacementOf[[3]uint64]())
	assert.Equal(t, PlacementHeap, PlacementOf[[4]uint64]())
	assert.Equal(t, PlacementHeap, PlacementOf[wide]())
	assert.Equal(t, PlacementHeap, PlacementOf[string]())
	assert.Equal(t, PlacementHeap, PlacementOf[*int]())
	assert.Equal(t, PlacementHeap, PlacementOf[pinned]())

	for range 10 {
		a := New(point{})
		assert.Equal(t, PlacementInline, a.Placement())
		b := New("x")
		assert.Equal(t, PlacementHeap, b.Placement())
	}
}

func TestTableIsMemoized(t *testing.T) {
	const goroutines = 50

	tables := make([]*table, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := range goroutines {
		go func() {
			defer wg.Done()
			tables[i] = tableFor[point]()
		}()
	}
	wg.Wait()

	for _, tb := range tables {
		assert.Same(t, tables[0], tb)
	}
}

func TestMoveFrom(t *testing.T) {
	src := New("payload")
	var dst Any
	dst.MoveFrom(&src)

	assert.False(t, src.HasValue())
	v, err := Get[string](&dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", v)

	inline := New(point{X: 7})
	dst.MoveFrom(&inline)
	assert.False(t, inline.HasValue())
	assert.Equal(t, point{X: 7}, *Ptr[point](&dst))

	dst.MoveFrom(&dst)
	assert.True(t, dst.HasValue())
}

func TestMoveFrom_HeapTransfersPointer(t *testing.T) {
	src := New(wide{9})
	p := Ptr[wide](&src)

	var dst Any
	dst.MoveFrom(&src)
	assert.Same(t, p, Ptr[wide](&dst))
}

func TestSwap_SameInlineType(t *testing.T) {
	a := New(point{X: 1})
	b := New(point{X: 2})

	a.Swap(&b)
	assert.Equal(t, point{X: 2}, *Ptr[point](&a))
	assert.Equal(t, point{X: 1}, *Ptr[point](&b))

	allocs := testing.AllocsPerRun(100, func() { a.Swap(&b) })
	assert.Zero(t, allocs)
}

func TestSwap_SameHeapType(t *testing.T) {
	a := New("left")
	b := New("right")
	pa, pb := Ptr[string](&a), Ptr[string](&b)

	a.Swap(&b)
	assert.Same(t, pb, Ptr[string](&a))
	assert.Same(t, pa, Ptr[string](&b))
}

func TestSwap_DifferentTypes(t *testing.T) {
	a := New(1)
	b := New("two")

	a.Swap(&b)
	assert.Equal(t, TypeOf[string](), a.Type())
	assert.Equal(t, TypeOf[int](), b.Type())
	assert.Equal(t, "two", *Ptr[string](&a))
	assert.Equal(t, 1, *Ptr[int](&b))

	var empty Any
	a.Swap(&empty)
	assert.False(t, a.HasValue())
	assert.Equal(t, "two", *Ptr[string](&empty))
}

func TestCopyFrom_UsesCloner(t *testing.T) {
	clones := 0
	src := New(cloned{Items: []int{1, 2}, clones: &clones})
	assert.Equal(t, 1, clones)

	var dst Any
	dst.CopyFrom(&src)
	assert.Equal(t, 2, clones)

	Ptr[cloned](&dst).Items[0] = 100
	assert.Equal(t, []int{1, 2}, Ptr[cloned](&src).Items)

	c := src.Clone()
	assert.Equal(t, 3, clones)
	assert.True(t, c.HasValue())
}

func TestCopyFrom_PanicKeepsTarget(t *testing.T) {
	var src Any
	EmplaceWith(&src, func(p *panicky) { p.S = "boom" })
	dst := New(5)

	assert.Panics(t, func() { dst.CopyFrom(&src) })
	assert.Equal(t, 5, *Ptr[int](&dst))
}

func TestCopyFrom_Empty(t *testing.T) {
	var src Any
	dst := New(1)
	dst.CopyFrom(&src)
	assert.False(t, dst.HasValue())
}

func TestReset_Drops(t *testing.T) {
	var drops []int
	a := New(dropped{ID: 1, drops: &drops})

	Emplace(&a, dropped{ID: 2, drops: &drops})
	assert.Equal(t, []int{1}, drops)

	a.Reset()
	assert.Equal(t, []int{1, 2}, drops)
	assert.False(t, a.HasValue())

	a.Reset()
	assert.Equal(t, []int{1, 2}, drops)
}

func TestTake_MovesOut(t *testing.T) {
	a := New([]int{1, 2, 3})

	v, err := Take[[]int](&a)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, v)

	assert.True(t, a.HasValue())
	assert.Nil(t, *Ptr[[]int](&a))

	_, err = Take[string](&a)
	assert.ErrorIs(t, err, ErrBadCast)
}

func TestTake_PinnedCopies(t *testing.T) {
	a := New(pinned{N: 3})
	v, err := Take[pinned](&a)
	require.NoError(t, err)
	assert.Equal(t, 3, v.N)
	assert.Equal(t, 3, Ptr[pinned](&a).N)
}

func TestRef_NeverMoves(t *testing.T) {
	a := New([]int{1})
	p, err := Ref[[]int](&a)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, *p)
	assert.Equal(t, []int{1}, *Ptr[[]int](&a))
}

func TestEmplaceWith(t *testing.T) {
	var a Any
	EmplaceWith(&a, func(p *point) { p.X, p.Y = 3, 4 })
	assert.Equal(t, point{X: 3, Y: 4}, *Ptr[point](&a))

	EmplaceWith[wide](&a, nil)
	assert.Equal(t, wide{}, *Ptr[wide](&a))

	assert.Panics(t, func() {
		EmplaceWith(&a, func(*string) { panic("init failed") })
	})
	assert.False(t, a.HasValue())
}

func TestEmplaceWith_ZeroAfterPanic(t *testing.T) {
	var a Any
	assert.Panics(t, func() {
		EmplaceWith(&a, func(p *point) {
			p.X, p.Y = 7, 8
			panic("init failed")
		})
	})
	require.False(t, a.HasValue())

	var seen point
	EmplaceWith(&a, func(p *point) { seen = *p })
	assert.Equal(t, point{}, seen)
	assert.Equal(t, point{}, *Ptr[point](&a))
}

func TestClone_Independent(t *testing.T) {
	var drops []int
	a := New(dropped{ID: 1, drops: &drops})
	require.Equal(t, PlacementHeap, a.Placement())

	b := a.Clone()
	a.Reset()

	assert.Equal(t, []int{1}, drops)
	require.True(t, b.HasValue())
	assert.Equal(t, 1, Ptr[dropped](&b).ID)
}

func TestValue(t *testing.T) {
	a := New(point{X: 1})
	assert.Equal(t, point{X: 1}, a.Value())
	assert.Equal(t, "Any(github.com/codewandler/safeany/core/erasure.point)", a.String())
}

func TestShareable(t *testing.T) {
	assert.True(t, Shareable[int]())
	assert.True(t, Shareable[string]())
	assert.True(t, Shareable[point]())
	assert.False(t, Shareable[[]int]())
	assert.False(t, Shareable[*int]())

	a := New(map[string]int{})
	assert.False(t, a.Shareable())
	var empty Any
	assert.True(t, empty.Shareable())
}

func TestTypeID(t *testing.T) {
	assert.Equal(t, TypeOf[int](), TypeOf[int]())
	assert.NotEqual(t, TypeOf[int](), TypeOf[int64]())
	assert.Equal(t, "int", TypeOf[int]().String())
	assert.NotZero(t, TypeOf[int]().Fingerprint())
	assert.Zero(t, TypeID{}.Fingerprint())
	assert.Nil(t, TypeID{}.Reflect())
}
