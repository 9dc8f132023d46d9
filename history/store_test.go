package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qerplunk/garin-draw/types"
)

func stroke(i int) types.Stroke {
	return types.Stroke{X1: float64(i), Y1: 0, X2: float64(i + 1), Y2: 1, Color: "#000", Size: 2, Tool: types.ToolBrush}
}

func TestStore_AppendKeepsCallOrder(t *testing.T) {
	store := NewStore()

	var want []types.Stroke
	for i := 0; i < 20; i++ {
		s := stroke(i)
		want = append(want, s)
		got := store.Append("r1", s)
		require.Equal(t, want, got, "after append %d", i)
	}

	assert.Equal(t, want, store.History("r1"))
}

func TestStore_UndoEmpty(t *testing.T) {
	store := NewStore()

	_, ok := store.Undo("missing")
	assert.False(t, ok)

	store.Ensure("r1")
	committed, ok := store.Undo("r1")
	assert.False(t, ok)
	assert.Nil(t, committed)

	c, u := store.Depth("r1")
	assert.Zero(t, c)
	assert.Zero(t, u)
}

func TestStore_UndoEmptyKeepsRedoBuffer(t *testing.T) {
	store := NewStore()
	store.Append("r1", stroke(1))
	store.Append("r1", stroke(2))

	_, ok := store.Undo("r1")
	require.True(t, ok)
	_, ok = store.Undo("r1")
	require.True(t, ok)

	committed, ok := store.Undo("r1")
	assert.False(t, ok)
	assert.Nil(t, committed)

	c, u := store.Depth("r1")
	assert.Zero(t, c)
	assert.Equal(t, 2, u)

	restored, ok := store.Redo("r1")
	require.True(t, ok)
	assert.Equal(t, []types.Stroke{stroke(1)}, restored)
}

func TestStore_RedoEmpty(t *testing.T) {
	store := NewStore()
	store.Append("r1", stroke(1))

	_, ok := store.Redo("r1")
	assert.False(t, ok)
	assert.Equal(t, []types.Stroke{stroke(1)}, store.History("r1"))
}

func TestStore_UndoRedoRoundTrip(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			store := NewStore()
			for i := 0; i < n; i++ {
				store.Append("r1", stroke(i))
			}
			original := store.History("r1")

			shorter, ok := store.Undo("r1")
			require.True(t, ok)
			assert.Equal(t, original[:n-1], shorter)

			restored, ok := store.Redo("r1")
			require.True(t, ok)
			assert.Equal(t, original, restored)
			assert.Equal(t, original, store.History("r1"))
		})
	}
}

func TestStore_UndoRedoStackOrder(t *testing.T) {
	store := NewStore()
	store.Append("r1", stroke(1))
	store.Append("r1", stroke(2))
	store.Append("r1", stroke(3))

	store.Undo("r1")
	store.Undo("r1")

	committed, ok := store.Redo("r1")
	require.True(t, ok)
	assert.Equal(t, []types.Stroke{stroke(1), stroke(2)}, committed)

	committed, ok = store.Redo("r1")
	require.True(t, ok)
	assert.Equal(t, []types.Stroke{stroke(1), stroke(2), stroke(3)}, committed)
}

func TestStore_AppendClearsRedo(t *testing.T) {
	store := NewStore()
	store.Append("r1", stroke(1))
	store.Append("r1", stroke(2))

	_, ok := store.Undo("r1")
	require.True(t, ok)

	committed := store.Append("r1", stroke(9))
	assert.Equal(t, []types.Stroke{stroke(1), stroke(9)}, committed)

	_, undone := store.Depth("r1")
	assert.Zero(t, undone)

	_, ok = store.Redo("r1")
	assert.False(t, ok)
}

func TestStore_SnapshotsAreIndependent(t *testing.T) {
	store := NewStore()
	got := store.Append("r1", stroke(1))
	got[0].Color = "mutated"

	assert.Equal(t, "#000", store.History("r1")[0].Color)
}

func TestStore_RoomsAreIsolated(t *testing.T) {
	store := NewStore()
	store.Append("r1", stroke(1))
	store.Append("r2", stroke(2))

	store.Undo("r1")

	assert.Empty(t, store.History("r1"))
	assert.Equal(t, []types.Stroke{stroke(2)}, store.History("r2"))
}

func TestStore_Drop(t *testing.T) {
	store := NewStore()
	store.Append("r1", stroke(1))
	store.Drop("r1")

	assert.Empty(t, store.History("r1"))
	_, ok := store.Undo("r1")
	assert.False(t, ok)
}
