package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schematic-editor/internal/settings"
	"schematic-editor/pkg/geometry"
)

func TestNewDefaults(t *testing.T) {
	n := New("n1")
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, geometry.NewSize(DefaultWidth, DefaultHeight), n.Size())
	assert.True(t, n.AllowResize)
	assert.True(t, n.AllowRotate)
	assert.Equal(t, geometry.NewPoint2D(DefaultWidth/2, DefaultHeight/2), n.Pivot())
}

func TestSetSizeNoOp(t *testing.T) {
	n := New("n1")
	n.SetSize(100, 100)

	// Unchanged size is ignored.
	n.SetSize(100, 100)
	assert.Equal(t, geometry.NewSize(100, 100), n.Size())

	// Degenerate sizes are ignored.
	n.SetSize(0.5, 100)
	n.SetSize(100, -3)
	assert.Equal(t, geometry.NewSize(100, 100), n.Size())
}

func TestSetSizeMovesPivot(t *testing.T) {
	n := New("n1")
	n.SetSize(100, 100)
	assert.Equal(t, geometry.NewPoint2D(50, 50), n.Pivot())
	n.SetSize(200, 100)
	assert.Equal(t, geometry.NewPoint2D(100, 50), n.Pivot())
}

func TestSetSizeClampsConnectors(t *testing.T) {
	n := New("n1")
	n.SetSize(100, 100)

	onEdge := NewConnector("edge", geometry.NewPoint2D(100, 40))
	inside := NewConnector("inside", geometry.NewPoint2D(60, 40))
	outside := NewConnector("outside", geometry.NewPoint2D(90, 40))
	require.True(t, n.AddConnector(onEdge))
	require.True(t, n.AddConnector(inside))
	require.True(t, n.AddConnector(outside))

	n.SetSize(80, 100)

	// A connector sitting on the old far edge follows it to the new edge.
	assert.Equal(t, geometry.NewPoint2D(80, 40), onEdge.Pos)
	// A connector well inside the body stays put.
	assert.Equal(t, geometry.NewPoint2D(60, 40), inside.Pos)
	// A connector past the new edge is pulled back onto it.
	assert.Equal(t, geometry.NewPoint2D(80, 40), outside.Pos)
}

func TestConnectorDefaultsApplied(t *testing.T) {
	n := New("n1")
	n.ConnectorsMovable = true
	n.ConnectorsSnapPolicy = SnapNodeSizeRect

	c := NewConnector("a", geometry.NewPoint2D(0, 0))
	n.AddConnector(c)
	assert.True(t, c.Movable)
	assert.Equal(t, SnapNodeSizeRect, c.SnapPolicy)
}

func TestConnectionPointsRotated(t *testing.T) {
	n := New("n1")
	n.SetSize(100, 100)
	n.Position = geometry.NewPoint2D(100, 100)
	n.AddConnector(NewConnector("left", geometry.NewPoint2D(0, 50)))

	abs := n.ConnectionPointsAbsolute()
	require.Len(t, abs, 1)
	assert.Equal(t, geometry.NewPoint2D(100, 150), abs[0])

	// Rotating 90 degrees about the pivot carries the connector along.
	n.SetRotation(90)
	abs = n.ConnectionPointsAbsolute()
	assert.InDelta(t, 150, abs[0].X, 1e-9)
	assert.InDelta(t, 100, abs[0].Y, 1e-9)

	n.SetRotation(180)
	abs = n.ConnectionPointsAbsolute()
	assert.InDelta(t, 200, abs[0].X, 1e-9)
	assert.InDelta(t, 150, abs[0].Y, 1e-9)
}

func TestRemoveConnector(t *testing.T) {
	n := New("n1")
	c := NewConnector("a", geometry.NewPoint2D(0, 0))
	n.AddConnector(c)
	assert.True(t, n.RemoveConnector(c))
	assert.False(t, n.RemoveConnector(c))
	assert.Empty(t, n.Connectors())
}

func TestSpecialConnectorsExcluded(t *testing.T) {
	n := New("n1")
	n.AddConnector(NewConnector("pin", geometry.NewPoint2D(0, 20)))
	n.AddSpecialConnector(NewConnector("origin", geometry.NewPoint2D(0, 0)))

	assert.Len(t, n.Connectors(), 2)
	assert.Len(t, n.PersistentConnectors(), 1)

	clone := n.DeepCopy()
	require.Len(t, clone.Connectors(), 1)
	assert.Equal(t, "pin", clone.Connectors()[0].Name)

	// The copy is deep: mutating it leaves the original alone.
	clone.Connectors()[0].Pos.X = 99
	assert.Equal(t, 0.0, n.PersistentConnectors()[0].Pos.X)
}

func TestCanSnapToGrid(t *testing.T) {
	n := New("n1")
	assert.True(t, n.CanSnapToGrid())
	n.SetRotation(90)
	assert.True(t, n.CanSnapToGrid())
	n.SetRotation(45)
	assert.False(t, n.CanSnapToGrid())
	n.SetRotation(270)
	assert.True(t, n.CanSnapToGrid())
}

func TestSnapPosition(t *testing.T) {
	st := settings.Default() // grid 20
	n := New("n1")
	n.SetSize(160, 240)

	// Unrotated: plain rounding to the grid.
	got := n.SnapPosition(geometry.NewPoint2D(101, 109), st)
	assert.Equal(t, geometry.NewPoint2D(100, 100), got)

	// 90 degrees with an even cell difference (8 vs 12 cells): still plain.
	n.SetRotation(90)
	got = n.SnapPosition(geometry.NewPoint2D(101, 109), st)
	assert.Equal(t, geometry.NewPoint2D(100, 100), got)

	// 90 degrees with an odd cell difference (8 vs 11 cells): the rotated
	// outline is offset from the grid by half a cell.
	n.SetSize(160, 220)
	got = n.SnapPosition(geometry.NewPoint2D(101, 101), st)
	assert.Equal(t, geometry.NewPoint2D(110, 110), got)

	// Rotated off-axis: no snapping at all.
	n.SetRotation(45)
	free := geometry.NewPoint2D(101, 109)
	assert.Equal(t, free, n.SnapPosition(free, st))
}

func TestConnectorSnapPolicies(t *testing.T) {
	body := geometry.NewRect(0, 0, 100, 100)

	anywhere := NewConnector("", geometry.NewPoint2D(120, 50))
	anywhere.SnapPolicy = SnapAnywhere
	anywhere.applySnap(body, body.Corners())
	assert.Equal(t, geometry.NewPoint2D(120, 50), anywhere.Pos)

	rect := NewConnector("", geometry.NewPoint2D(120, 50))
	rect.SnapPolicy = SnapNodeSizeRect
	rect.applySnap(body, body.Corners())
	assert.Equal(t, geometry.NewPoint2D(100, 50), rect.Pos)

	outline := NewConnector("", geometry.NewPoint2D(120, 50))
	outline.SnapPolicy = SnapNodeSizeRectOutline
	outline.applySnap(body, body.Corners())
	assert.Equal(t, geometry.NewPoint2D(100, 50), outline.Pos)

	// Shape containment is tested against the polygon, not the body rect:
	// a point inside the rect but outside the triangle snaps to its edge.
	triangle := []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}}
	shape := NewConnector("", geometry.NewPoint2D(80, 80))
	shape.SnapPolicy = SnapNodeShape
	shape.applySnap(body, triangle)
	assert.Equal(t, geometry.NewPoint2D(50, 50), shape.Pos)

	inside := NewConnector("", geometry.NewPoint2D(20, 20))
	inside.SnapPolicy = SnapNodeShape
	inside.applySnap(body, triangle)
	assert.Equal(t, geometry.NewPoint2D(20, 20), inside.Pos)
}
