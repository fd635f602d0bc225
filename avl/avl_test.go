package avl_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/avl"
	"github.com/katalvlaran/structviz/bintree"
)

// checkBalanced returns the height of n and fails if any node is out of
// balance, carries a stale height or breaks BST order.
func checkBalanced(t *testing.T, n *bintree.Node) int {
	t.Helper()
	if n == nil {
		return 0
	}
	if n.Left != nil {
		require.Less(t, n.Left.Value, n.Value)
	}
	if n.Right != nil {
		require.Greater(t, n.Right.Value, n.Value)
	}
	l, r := checkBalanced(t, n.Left), checkBalanced(t, n.Right)
	require.LessOrEqual(t, l-r, 1, "node %d", n.Value)
	require.GreaterOrEqual(t, l-r, -1, "node %d", n.Value)
	h := 1 + max(l, r)
	require.Equal(t, h, n.Height, "stale height at %d", n.Value)

	return h
}

func TestAVL_RotationCases(t *testing.T) {
	cases := []struct {
		name   string
		values []int
		rot    avl.Rotation
	}{
		{"LL", []int{30, 20, 10}, avl.RotateRight},
		{"RR", []int{10, 20, 30}, avl.RotateLeft},
		{"LR", []int{30, 10, 20}, avl.RotateLeftRight},
		{"RL", []int{10, 30, 20}, avl.RotateRightLeft},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := avl.New(bintree.WithValues(tc.values[:2]...))
			trc, err := tr.Insert(tc.values[2])
			require.NoError(t, err)

			root := tr.Root()
			assert.Equal(t, 20, root.Value)
			assert.Equal(t, 10, root.Left.Value)
			assert.Equal(t, 30, root.Right.Value)
			assert.Equal(t, 2, tr.Height())

			var rotated bool
			for s := range trc.All() {
				rotated = rotated || strings.Contains(s.Note, string(tc.rot)+" rotation")
			}
			assert.True(t, rotated, "trace names the %s rotation", tc.rot)
		})
	}
}

func TestAVL_BalanceInvariantRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	tr := avl.New()
	for i := 0; i < 300; i++ {
		_, _ = tr.Insert(rng.IntN(1000))
		checkBalanced(t, tr.Root())
	}
}

func TestAVL_SortedInsertStaysLogarithmic(t *testing.T) {
	tr := avl.New()
	for v := 1; v <= 127; v++ {
		_, err := tr.Insert(v)
		require.NoError(t, err)
	}
	assert.Equal(t, 7, tr.Height())
	checkBalanced(t, tr.Root())
}

func TestAVL_DuplicateIgnored(t *testing.T) {
	tr := avl.New(bintree.WithValues(5, 3, 8))
	before := tr.Root()
	_, err := tr.Insert(3)
	assert.ErrorIs(t, err, avl.ErrDuplicate)
	assert.Same(t, before, tr.Root())
}

func TestAVL_UndoKeepsOldSnapshotIntact(t *testing.T) {
	tr := avl.New(bintree.WithValues(10, 20))
	before := tr.Root()
	beforeValues := bintree.Values(before)

	_, err := tr.Insert(30) // rotates at the root
	require.NoError(t, err)
	assert.Equal(t, 20, tr.Root().Value)

	// the previous snapshot was not touched by the rotation
	assert.Equal(t, 10, before.Value)
	assert.Equal(t, beforeValues, bintree.Values(before))
	assert.Equal(t, 2, before.Height)

	require.True(t, tr.Undo())
	assert.Same(t, before, tr.Root())
	require.True(t, tr.Redo())
	assert.Equal(t, []int{10, 20, 30}, tr.Values())
}

func TestAVL_TraceUnwindSteps(t *testing.T) {
	tr := avl.New(bintree.WithValues(10))
	trc, err := tr.Insert(5)
	require.NoError(t, err)
	// compare with 10, unwind at 10, final insert step
	require.Equal(t, 3, trc.Len())
	last, ok := trc.Last()
	require.True(t, ok)
	assert.Equal(t, 5, tr.Root().Left.Value)
	assert.True(t, last.Highlighted(tr.Root().Left.ID))
}
