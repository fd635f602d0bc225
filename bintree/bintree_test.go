package bintree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/bintree"
)

//	    1
//	   / \
//	  2   3
//	 / \
//	4   5
func sample() *bintree.Tree {
	return bintree.NewTree(bintree.WithValues(1, 2, 3, 4, 5))
}

func TestTree_LevelOrderPlacement(t *testing.T) {
	tr := sample()
	root := tr.Root()
	require.NotNil(t, root)
	assert.Equal(t, 1, root.Value)
	assert.Equal(t, 2, root.Left.Value)
	assert.Equal(t, 3, root.Right.Value)
	assert.Equal(t, 4, root.Left.Left.Value)
	assert.Equal(t, 5, root.Left.Right.Value)
	assert.Equal(t, 5, root.Size())
	assert.False(t, tr.CanUndo(), "seeding does not create history")
}

func TestTree_Traversals(t *testing.T) {
	tr := sample()
	cases := []struct {
		order bintree.Order
		want  []int
	}{
		{bintree.LevelOrder, []int{1, 2, 3, 4, 5}},
		{bintree.PreOrder, []int{1, 2, 4, 5, 3}},
		{bintree.InOrder, []int{4, 2, 5, 1, 3}},
		{bintree.PostOrder, []int{4, 5, 2, 3, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.order.String(), func(t *testing.T) {
			vals, trc, err := tr.Traverse(tc.order)
			require.NoError(t, err)
			assert.Equal(t, tc.want, vals)
			require.Equal(t, len(tc.want), trc.Len())

			last, _ := trc.Last()
			assert.Equal(t, tc.want, last.Result)
		})
	}
}

func TestTree_TraverseEmpty(t *testing.T) {
	tr := bintree.NewTree()
	_, _, err := tr.Traverse(bintree.InOrder)
	assert.ErrorIs(t, err, bintree.ErrEmptyTree)
}

func TestTree_InsertSharesUntouchedSubtrees(t *testing.T) {
	tr := sample()
	before := tr.Root()
	tr.Insert(6) // goes under 3 (left)

	after := tr.Root()
	assert.NotSame(t, before, after)
	assert.Same(t, before.Left, after.Left, "left subtree untouched")
	assert.Nil(t, before.Right.Left, "old snapshot unchanged")
	assert.Equal(t, 6, after.Right.Left.Value)

	require.True(t, tr.Undo())
	assert.Same(t, before, tr.Root())
}

func TestTree_InsertTrace(t *testing.T) {
	tr := bintree.NewTree()
	trc := tr.Insert(10)
	require.Equal(t, 1, trc.Len())

	trc = tr.Insert(20)
	steps := trc.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, []int{tr.Root().ID}, steps[0].Highlight)
	assert.Equal(t, []int{tr.Root().Left.ID}, steps[1].Highlight)
}

func TestTree_IDsUnique(t *testing.T) {
	tr := sample()
	res, err := bintree.BFS(tr.Root())
	require.NoError(t, err)
	ids := map[int]bool{}
	for _, n := range res.Order {
		assert.False(t, ids[n.ID])
		ids[n.ID] = true
	}
}

func TestBFS_Hooks(t *testing.T) {
	tr := sample()
	var enq, deq []int
	res, err := bintree.BFS(tr.Root(),
		bintree.WithOnEnqueue(func(n *bintree.Node, _ int) { enq = append(enq, n.Value) }),
		bintree.WithOnDequeue(func(n *bintree.Node, _ int) { deq = append(deq, n.Value) }),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, enq)
	assert.Equal(t, enq, deq)
	assert.Equal(t, 2, res.Depth[tr.Root().Left.Left.ID])
}

func TestDFS_HookErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	_, err := bintree.DFS(sample().Root(), bintree.PreOrder, bintree.WithOnVisit(func(n *bintree.Node, _ int) error {
		if n.Value == 2 {
			return boom
		}
		return nil
	}))
	assert.ErrorIs(t, err, boom)
}

func TestParseOrder(t *testing.T) {
	o, err := bintree.ParseOrder("post")
	require.NoError(t, err)
	assert.Equal(t, bintree.PostOrder, o)

	_, err = bintree.ParseOrder("zigzag")
	assert.ErrorIs(t, err, bintree.ErrBadOrder)

	_, err = bintree.DFS(sample().Root(), bintree.Order(42))
	assert.ErrorIs(t, err, bintree.ErrBadOrder)
}
