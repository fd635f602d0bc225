package dsu_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/dsu"
)

func newDSU(t *testing.T, opts ...dsu.Option) *dsu.DSU {
	t.Helper()
	d, err := dsu.New(opts...)
	require.NoError(t, err)

	return d
}

func TestDSU_Singletons(t *testing.T) {
	d := newDSU(t)
	assert.Equal(t, dsu.DefaultUniverse, d.Len())
	assert.Len(t, d.Groups(), 10)

	res, trc, err := d.Find(4)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Root)
	assert.Equal(t, 0, res.Hops())
	assert.Equal(t, 2, trc.Len())
	assert.False(t, d.CanUndo(), "find on a root changes nothing")
}

func TestDSU_UnionScenario(t *testing.T) {
	d := newDSU(t)
	merged, _, err := d.Union(1, 2)
	require.NoError(t, err)
	assert.True(t, merged)
	merged, _, err = d.Union(2, 3)
	require.NoError(t, err)
	assert.True(t, merged)

	r1, _, _ := d.Find(1)
	r3, _, _ := d.Find(3)
	assert.Equal(t, r1.Root, r3.Root)
	assert.Equal(t, []int{1, 2, 3}, d.Groups()[1])

	merged, _, err = d.Union(3, 1)
	require.NoError(t, err)
	assert.False(t, merged)
}

func TestDSU_FindIdempotentWithCompression(t *testing.T) {
	// build a chain 0 <- 1 <- 2 <- ... by attaching each new root under the next
	d := newDSU(t)
	for i := 9; i > 0; i-- {
		_, _, err := d.Union(i-1, i)
		require.NoError(t, err)
	}
	first, _, err := d.Find(9)
	require.NoError(t, err)
	second, _, err := d.Find(9)
	require.NoError(t, err)

	assert.Equal(t, first.Root, second.Root)
	assert.LessOrEqual(t, second.Hops(), 1)
	for _, x := range first.Path {
		assert.Equal(t, first.Root, d.Parents()[x])
	}
}

func TestDSU_FindIdempotentRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 42))
	d := newDSU(t, dsu.WithUniverse(50))
	for i := 0; i < 80; i++ {
		_, _, err := d.Union(rng.IntN(50), rng.IntN(50))
		require.NoError(t, err)
	}
	for x := 0; x < 50; x++ {
		a, _, _ := d.Find(x)
		b, _, _ := d.Find(x)
		require.Equal(t, a.Root, b.Root)
		require.LessOrEqual(t, b.Hops(), 1)
	}
}

func TestDSU_FindTraceOneStepPerHop(t *testing.T) {
	d := newDSU(t)
	_, _, _ = d.Union(0, 1)
	_, _, _ = d.Union(2, 0) // 0's root (0) goes under 2

	res, trc, err := d.Find(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, res.Path)
	// one step per visited item plus the result step
	assert.Equal(t, len(res.Path)+1, trc.Len())
	last, _ := trc.Last()
	assert.Equal(t, res, last.Result)
}

func TestDSU_ErrorsLeaveStateAlone(t *testing.T) {
	d := newDSU(t)
	_, _, err := d.Find(10)
	assert.ErrorIs(t, err, dsu.ErrOutOfRange)
	_, _, err = d.Union(-1, 2)
	assert.ErrorIs(t, err, dsu.ErrOutOfRange)
	assert.False(t, d.CanUndo())

	_, err = dsu.New(dsu.WithUniverse(0))
	assert.ErrorIs(t, err, dsu.ErrBadUniverse)
}

func TestDSU_UndoUnion(t *testing.T) {
	d := newDSU(t)
	before := d.Parents()
	_, _, _ = d.Union(5, 6)
	require.True(t, d.Undo())
	assert.Equal(t, before, d.Parents())
	require.True(t, d.Redo())
	assert.Equal(t, 5, d.Parents()[6])
}
