package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/history"
)

type value struct{ n int }

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	v0, v1 := &value{0}, &value{1}
	h := history.New(v0, 0)

	require.True(t, h.Set(v1))
	require.True(t, h.Undo())
	assert.Same(t, v0, h.Present(), "undo restores the value observed before Set")

	require.True(t, h.Redo())
	assert.Same(t, v1, h.Present(), "redo restores v1")
}

func TestHistory_SetSamePointerIsNoOp(t *testing.T) {
	v0 := &value{0}
	h := history.New(v0, 0)

	assert.False(t, h.Set(v0))
	assert.False(t, h.CanUndo())

	// Equal content but a new pointer is a genuine entry.
	assert.True(t, h.Set(&value{0}))
	assert.True(t, h.CanUndo())
}

func TestHistory_SetClearsRedo(t *testing.T) {
	h := history.New(&value{0}, 0)
	h.Set(&value{1})
	h.Undo()
	require.True(t, h.CanRedo())

	h.Set(&value{2})
	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo())
}

func TestHistory_EmptyStacks(t *testing.T) {
	h := history.New(&value{0}, 0)
	assert.False(t, h.Undo())
	assert.False(t, h.Redo())
}

func TestHistory_Limit(t *testing.T) {
	first := &value{0}
	h := history.New(first, 2)
	for i := 1; i <= 5; i++ {
		h.Set(&value{i})
	}
	undo, redo := h.Depth()
	assert.Equal(t, 2, undo)
	assert.Zero(t, redo)

	h.Undo()
	h.Undo()
	assert.False(t, h.CanUndo())
	assert.Equal(t, 3, h.Present().n)
}

func TestHistory_Reset(t *testing.T) {
	h := history.New(&value{0}, 0)
	h.Set(&value{1})
	h.Undo()

	fresh := &value{9}
	h.Reset(fresh)
	assert.Same(t, fresh, h.Present())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
