package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/tree"
)

func TestTree_Seed(t *testing.T) {
	tr := tree.New()
	root := tr.Root()
	assert.Equal(t, tree.RootID, root.ID)
	assert.Equal(t, tree.DefaultRootValue, root.Value)
	assert.Empty(t, root.Children)
	assert.False(t, tr.CanUndo())
}

func TestTree_AddChildAndFind(t *testing.T) {
	tr := tree.New()
	a, _, err := tr.AddChild(tree.RootID, 20)
	require.NoError(t, err)
	b, trc, err := tr.AddChild(a, 30)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	last, ok := trc.Last()
	require.True(t, ok)
	assert.True(t, last.Highlighted(b))

	node, parent, ok := tr.Find(b)
	require.True(t, ok)
	assert.Equal(t, 30, node.Value)
	assert.Equal(t, a, parent.ID)

	_, parent, ok = tr.Find(tree.RootID)
	require.True(t, ok)
	assert.Nil(t, parent)

	_, _, ok = tr.Find(999)
	assert.False(t, ok)
}

func TestTree_AddChildUnknownParent(t *testing.T) {
	tr := tree.New()
	_, trc, err := tr.AddChild(42, 1)
	assert.ErrorIs(t, err, tree.ErrNodeNotFound)
	assert.Nil(t, trc)
	assert.False(t, tr.CanUndo())
}

func TestTree_RemoveRootRefused(t *testing.T) {
	tr := tree.New()
	_, err := tr.Remove(tree.RootID)
	assert.ErrorIs(t, err, tree.ErrRootRemoval)
	assert.False(t, tr.CanUndo())
}

func TestTree_RemoveSubtree(t *testing.T) {
	tr := tree.New()
	a, _, _ := tr.AddChild(tree.RootID, 20)
	_, _, _ = tr.AddChild(a, 21)
	b, _, _ := tr.AddChild(tree.RootID, 30)
	require.Equal(t, 4, tr.Root().Size())

	before := tr.Root()
	_, err := tr.Remove(a)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Root().Size())
	assert.Equal(t, b, tr.Root().Children[0].ID)

	// the old snapshot still has all four nodes
	assert.Equal(t, 4, before.Size())
	require.True(t, tr.Undo())
	assert.Same(t, before, tr.Root())

	_, err = tr.Remove(a + 100)
	assert.ErrorIs(t, err, tree.ErrNodeNotFound)
}

func TestTree_SharesUntouchedSubtrees(t *testing.T) {
	tr := tree.New()
	a, _, _ := tr.AddChild(tree.RootID, 20)
	b, _, _ := tr.AddChild(tree.RootID, 30)
	before := tr.Root()

	_, _, err := tr.AddChild(b, 31)
	require.NoError(t, err)
	after := tr.Root()
	assert.NotSame(t, before, after)
	assert.Same(t, before.Children[0], after.Children[0], "subtree #%d shared", a)
	assert.Empty(t, before.Children[1].Children)
}

func TestTree_IDsNeverReused(t *testing.T) {
	tr := tree.New()
	a, _, _ := tr.AddChild(tree.RootID, 1)
	_, _ = tr.Remove(a)
	b, _, _ := tr.AddChild(tree.RootID, 1)
	assert.Greater(t, b, a)
}
