package render_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/bintree"
	"github.com/katalvlaran/structviz/graph"
	"github.com/katalvlaran/structviz/linear"
	"github.com/katalvlaran/structviz/render"
	"github.com/katalvlaran/structviz/segtree"
	"github.com/katalvlaran/structviz/trie"
)

func plain(buf *bytes.Buffer) *render.Terminal {
	return render.NewTerminal(buf, render.WithColor(false))
}

func TestSequenceMarksHighlightedIndex(t *testing.T) {
	term := plain(nil)
	out := term.Text([]int{7, 8, 9}, "1")
	assert.Contains(t, out, "[8]")
	assert.NotContains(t, out, "[7]")
	assert.NotContains(t, out, "[9]")
}

func TestChainShowsIDs(t *testing.T) {
	out := plain(nil).Text([]linear.ListNode{{ID: 1, Value: 10}, {ID: 2, Value: 99}}, "2")
	assert.Equal(t, "10(#1) -> [99(#2)] -> nil", out)
}

func TestBinaryTreeMarksMissingChild(t *testing.T) {
	root := &bintree.Node{ID: 1, Value: 50, Right: &bintree.Node{ID: 2, Value: 70}}
	out := plain(nil).Text(root, "2")
	assert.Contains(t, out, "50")
	assert.Contains(t, out, "L ·")
	assert.Contains(t, out, "R [70]")
}

func TestTrieMarksWordEnds(t *testing.T) {
	tr := trie.New(trie.WithWords("cat", "car"))
	out := plain(nil).Text(tr.Root())
	assert.Contains(t, out, "root")
	assert.Contains(t, out, "t •")
	assert.Contains(t, out, "r •")
	assert.NotContains(t, out, "a •")
}

func TestSegmentTreeSkipsUnusedSlot(t *testing.T) {
	st := &segtree.State{Source: []int{1, 2}, Tree: segtree.Build([]int{1, 2})}
	out := plain(nil).Text(st, "1")
	assert.Contains(t, out, "[3]")
	assert.Contains(t, out, "source")
}

func TestGraphFrontier(t *testing.T) {
	out := plain(nil).Text(graph.Frame{Visited: []string{"A", "B"}, Queue: []string{"B"}}, "A")
	assert.Equal(t, "visited: [A] B\nqueue:   B", out)
}

func TestEmptyStates(t *testing.T) {
	term := plain(nil)
	assert.Equal(t, "(empty)", term.Text([]int{}))
	assert.Equal(t, "(empty)", term.Text(nil))
	assert.Equal(t, "(empty)", term.Text((*bintree.Node)(nil)))
}

func TestShowWritesNoteAndResult(t *testing.T) {
	var buf bytes.Buffer
	term := plain(&buf)
	require.NoError(t, term.Show("heap", render.Frame{State: []int{1}, Note: "settled", Result: 1}))
	out := buf.String()
	assert.Contains(t, out, "heap: settled")
	assert.Contains(t, out, "=> 1")
}

func TestDiff(t *testing.T) {
	term := plain(nil)
	assert.Empty(t, term.Diff("same\n", "same\n"))

	out := term.Diff("a\nb\n", "a\nc\n")
	assert.Equal(t, "  a\n- b\n+ c\n", out)
}
