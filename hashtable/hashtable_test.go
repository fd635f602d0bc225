package hashtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/hashtable"
)

func TestHash_PositionWeighted(t *testing.T) {
	assert.Equal(t, 6, hashtable.Hash("a", 7))  // 97 mod 7
	assert.Equal(t, 6, hashtable.Hash("ab", 7)) // (97 + 98*2) mod 7 = 293 mod 7
	assert.NotEqual(t, hashtable.Hash("ab", 7), hashtable.Hash("ba", 7))
	assert.Equal(t, 0, hashtable.Hash("", 7))
}

func TestTable_CollisionChains(t *testing.T) {
	tbl, err := hashtable.New()
	require.NoError(t, err)

	_, err = tbl.Insert("a", "1")
	require.NoError(t, err)
	tr, err := tbl.Insert("ab", "2")
	require.NoError(t, err)

	chain := tbl.Buckets()[6]
	require.Len(t, chain, 2)
	assert.Equal(t, "a", chain[0].Key)
	assert.Equal(t, "ab", chain[1].Key)

	last, _ := tr.Last()
	assert.Equal(t, []int{6}, last.Highlight)
}

func TestTable_InsertOverwritesInPlace(t *testing.T) {
	tbl, _ := hashtable.New()
	tbl.Insert("a", "1")
	tbl.Insert("ab", "2")
	tbl.Insert("a", "updated")

	chain := tbl.Buckets()[6]
	require.Len(t, chain, 2)
	assert.Equal(t, hashtable.Entry{Key: "a", Value: "updated"}, chain[0])
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_Search(t *testing.T) {
	tbl, _ := hashtable.New()
	tbl.Insert("cat", "meow")

	e, ok, tr := tbl.Search("cat")
	require.True(t, ok)
	assert.Equal(t, "meow", e.Value)
	last, _ := tr.Last()
	require.IsType(t, &hashtable.Entry{}, last.Result)

	_, ok, tr = tbl.Search("dog")
	assert.False(t, ok)
	last, _ = tr.Last()
	assert.Nil(t, last.Result)
}

func TestTable_RemoveIdempotent(t *testing.T) {
	tbl, _ := hashtable.New()
	tbl.Insert("a", "1")
	tbl.Insert("ab", "2")

	removed, _ := tbl.Remove("a")
	require.True(t, removed)
	assert.Equal(t, []hashtable.Entry{{Key: "ab", Value: "2"}}, tbl.Buckets()[6])

	removed, tr := tbl.Remove("a")
	assert.False(t, removed)
	assert.NotNil(t, tr)
	assert.Equal(t, 1, tbl.Len())

	require.True(t, tbl.Undo())
	assert.Equal(t, 2, tbl.Len(), "absent-key removal recorded no history entry")
}

func TestTable_InvalidInput(t *testing.T) {
	_, err := hashtable.New(hashtable.WithSize(0))
	assert.ErrorIs(t, err, hashtable.ErrBadSize)

	tbl, _ := hashtable.New()
	_, err = tbl.Insert("", "x")
	assert.ErrorIs(t, err, hashtable.ErrEmptyKey)
	assert.False(t, tbl.CanUndo())
}

func TestTable_UndoKeepsSnapshotsIndependent(t *testing.T) {
	tbl, _ := hashtable.New()
	tbl.Insert("a", "1")
	snap := tbl.Buckets()
	tbl.Insert("a", "2")

	assert.Equal(t, "1", snap[6][0].Value, "earlier snapshot is not mutated")
	tbl.Undo()
	assert.Equal(t, "1", tbl.Buckets()[6][0].Value)
}
