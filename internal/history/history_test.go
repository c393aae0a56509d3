package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schematic-editor/internal/node"
	"schematic-editor/internal/scene"
	"schematic-editor/internal/settings"
	"schematic-editor/internal/wire"
	"schematic-editor/pkg/geometry"
)

func newScene() *scene.Scene {
	st := settings.Default()
	st.SnapToGrid = false
	return scene.New(st)
}

func addNode(s *scene.Scene, id string, pos geometry.Point2D) *node.Node {
	n := node.New(id)
	n.SetSize(100, 100)
	n.Position = pos
	n.AddConnector(node.NewConnector("p", geometry.NewPoint2D(100, 50)))
	s.AddNode(n)
	return n
}

func addWire(s *scene.Scene, points ...geometry.Point2D) *wire.Wire {
	w := wire.New()
	for _, p := range points {
		w.AppendPoint(p)
	}
	w.Commit()
	s.AddWire(w)
	return w
}

func TestMoveNodeUndoRedo(t *testing.T) {
	s := newScene()
	n := addNode(s, "n1", geometry.NewPoint2D(0, 0))
	w := addWire(s, geometry.NewPoint2D(100, 50), geometry.NewPoint2D(300, 50))

	stack := NewStack()
	stack.Push(&MoveNode{Scene: s, NodeID: "n1", By: geometry.NewPoint2D(20, 0)})

	assert.Equal(t, geometry.NewPoint2D(20, 0), n.Position)
	// The attached wire endpoint followed.
	assert.Equal(t, geometry.NewPoint2D(120, 50), w.PointsAbsolute()[0])

	require.True(t, stack.Undo())
	assert.Equal(t, geometry.NewPoint2D(0, 0), n.Position)
	assert.Equal(t, geometry.NewPoint2D(100, 50), w.PointsAbsolute()[0])

	require.True(t, stack.Redo())
	assert.Equal(t, geometry.NewPoint2D(20, 0), n.Position)
	assert.Equal(t, geometry.NewPoint2D(120, 50), w.PointsAbsolute()[0])
}

func TestResizeNodeUndoRedo(t *testing.T) {
	s := newScene()
	n := addNode(s, "n1", geometry.NewPoint2D(10, 10))

	stack := NewStack()
	stack.Push(&ResizeNode{
		Scene:   s,
		NodeID:  "n1",
		NewPos:  geometry.NewPoint2D(10, 10),
		NewSize: geometry.NewSize(140, 100),
	})
	assert.Equal(t, geometry.NewSize(140, 100), n.Size())

	require.True(t, stack.Undo())
	assert.Equal(t, geometry.NewSize(100, 100), n.Size())
	assert.Equal(t, geometry.NewPoint2D(10, 10), n.Position)
}

func TestRotateNodeUndoRedo(t *testing.T) {
	s := newScene()
	n := addNode(s, "n1", geometry.NewPoint2D(0, 0))
	w := addWire(s, geometry.NewPoint2D(100, 50), geometry.NewPoint2D(200, 50))

	stack := NewStack()
	stack.Push(&RotateNode{Scene: s, NodeID: "n1", NewAngle: 90})

	assert.Equal(t, 90.0, n.Rotation())
	first := w.PointsAbsolute()[0]
	assert.InDelta(t, 50, first.X, 1e-9)
	assert.InDelta(t, 100, first.Y, 1e-9)

	require.True(t, stack.Undo())
	assert.Equal(t, 0.0, n.Rotation())
	first = w.PointsAbsolute()[0]
	assert.InDelta(t, 100, first.X, 1e-9)
	assert.InDelta(t, 50, first.Y, 1e-9)
}

func TestAddRemoveWireUndoRedo(t *testing.T) {
	s := newScene()

	w := wire.New()
	w.AppendPoint(geometry.NewPoint2D(0, 0))
	w.AppendPoint(geometry.NewPoint2D(100, 0))
	w.Commit()

	stack := NewStack()
	stack.Push(&AddWire{Scene: s, Wire: w})
	require.Len(t, s.Wires(), 1)
	require.Len(t, s.Nets(), 1)

	require.True(t, stack.Undo())
	assert.Empty(t, s.Wires())
	assert.Empty(t, s.Nets())

	require.True(t, stack.Redo())
	require.Len(t, s.Wires(), 1)

	stack.Push(&RemoveWire{Scene: s, WireID: w.ID})
	assert.Empty(t, s.Wires())

	require.True(t, stack.Undo())
	require.Len(t, s.Wires(), 1)
	assert.Len(t, s.Nets(), 1)
}

func TestDirtyAfterPushPastCleanState(t *testing.T) {
	s := newScene()
	addNode(s, "n1", geometry.Point2D{})

	stack := NewStack()
	stack.Push(&MoveNode{Scene: s, NodeID: "n1", By: geometry.NewPoint2D(1, 0)})
	stack.SetClean()
	require.True(t, stack.Undo())

	// Pushing here discards the redo branch holding the saved state; the
	// document can never match it again.
	stack.Push(&MoveNode{Scene: s, NodeID: "n1", By: geometry.NewPoint2D(0, 1)})
	assert.True(t, stack.IsDirty())

	require.True(t, stack.Undo())
	assert.True(t, stack.IsDirty())
}

func TestStackBookkeeping(t *testing.T) {
	s := newScene()
	addNode(s, "n1", geometry.Point2D{})

	stack := NewStack()
	assert.False(t, stack.CanUndo())
	assert.False(t, stack.CanRedo())
	assert.False(t, stack.Undo())
	assert.False(t, stack.Redo())

	stack.Push(&MoveNode{Scene: s, NodeID: "n1", By: geometry.NewPoint2D(1, 0)})
	assert.True(t, stack.CanUndo())
	assert.True(t, stack.IsDirty())

	stack.SetClean()
	assert.False(t, stack.IsDirty())

	stack.Undo()
	assert.True(t, stack.IsDirty())
	assert.True(t, stack.CanRedo())

	// A new command discards the redo branch, and the saved state with it.
	stack.Push(&MoveNode{Scene: s, NodeID: "n1", By: geometry.NewPoint2D(0, 1)})
	assert.False(t, stack.CanRedo())
	assert.True(t, stack.IsDirty())

	stack.Clear()
	assert.False(t, stack.CanUndo())
	assert.False(t, stack.IsDirty())
}
