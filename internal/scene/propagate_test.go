package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schematic-editor/internal/node"
	"schematic-editor/pkg/geometry"
)

// connectedNode builds a 100x100 node at pos with one connector at local
// connectorPos.
func connectedNode(s *Scene, id string, pos, connectorPos geometry.Point2D) *node.Node {
	n := node.New(id)
	n.SetSize(100, 100)
	n.Position = pos
	n.AddConnector(node.NewConnector("p", connectorPos))
	s.AddNode(n)
	return n
}

func TestWireMovePointPreservesAngles(t *testing.T) {
	s := newTestScene()
	w := newWireAt(
		geometry.NewPoint2D(0, 0),
		geometry.NewPoint2D(50, 0),
		geometry.NewPoint2D(50, 50),
	)
	s.AddWire(w)

	// Moving the corner vertex down drags the horizontal neighbor's y along
	// and leaves the vertical neighbor's x alone.
	s.WireMovePoint(geometry.NewPoint2D(50, 20), w, geometry.NewPoint2D(0, 20))

	abs := w.PointsAbsolute()
	require.Len(t, abs, 3)
	assert.Equal(t, geometry.NewPoint2D(0, 20), abs[0])
	assert.Equal(t, geometry.NewPoint2D(50, 20), abs[1])
	assert.Equal(t, geometry.NewPoint2D(50, 50), abs[2])
}

func TestWireMovePointTwoPointPerpendicular(t *testing.T) {
	s := newTestScene()
	w := newWireAt(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	s.AddWire(w)

	// Moving one endpoint of a single horizontal segment perpendicular to
	// it inserts a vertex pair at the midpoint so the move becomes a corner.
	s.WireMovePoint(geometry.NewPoint2D(0, 30), w, geometry.NewPoint2D(0, 30))

	abs := w.PointsAbsolute()
	require.Len(t, abs, 4)
	assert.Equal(t, geometry.NewPoint2D(0, 30), abs[0])
	assert.Equal(t, geometry.NewPoint2D(50, 30), abs[1])
	assert.Equal(t, geometry.NewPoint2D(50, 0), abs[2])
	assert.Equal(t, geometry.NewPoint2D(100, 0), abs[3])
}

func TestWireMovePointTwoPointParallel(t *testing.T) {
	s := newTestScene()
	w := newWireAt(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	s.AddWire(w)

	// Moving along the segment direction needs no midpoint insertion.
	s.WireMovePoint(geometry.NewPoint2D(-20, 0), w, geometry.NewPoint2D(-20, 0))

	abs := w.PointsAbsolute()
	require.Len(t, abs, 2)
	assert.Equal(t, geometry.NewPoint2D(-20, 0), abs[0])
	assert.Equal(t, geometry.NewPoint2D(100, 0), abs[1])
}

func TestWireMovePointFreeAngles(t *testing.T) {
	st := newTestScene().settings
	st.PreserveStraightAngles = false
	s := New(st)

	w := newWireAt(
		geometry.NewPoint2D(0, 0),
		geometry.NewPoint2D(50, 0),
		geometry.NewPoint2D(50, 50),
	)
	s.AddWire(w)

	// Without angle preservation only the targeted vertex moves.
	s.WireMovePoint(geometry.NewPoint2D(50, 20), w, geometry.NewPoint2D(0, 20))

	abs := w.PointsAbsolute()
	assert.Equal(t, geometry.NewPoint2D(0, 0), abs[0])
	assert.Equal(t, geometry.NewPoint2D(50, 20), abs[1])
	assert.Equal(t, geometry.NewPoint2D(50, 50), abs[2])
}

func TestWirePointMovedRegroupsNets(t *testing.T) {
	s := newTestScene()
	w1 := newWireAt(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	w2 := newWireAt(geometry.NewPoint2D(0, 50), geometry.NewPoint2D(100, 50))
	s.AddWire(w1)
	s.AddWire(w2)
	require.Len(t, s.Nets(), 2)

	// Drag w2's first endpoint onto w1: the nets merge.
	w2.MovePointTo(0, geometry.NewPoint2D(50, 0))
	s.WirePointMoved(w2.ID)
	require.Len(t, s.Nets(), 1)
	assert.Equal(t, 2, s.Nets()[0].WireCount())

	// Drag it away again: w2 splits back out into its own net.
	w2.MovePointTo(0, geometry.NewPoint2D(0, 50))
	s.WirePointMoved(w2.ID)
	assert.Len(t, s.Nets(), 2)
}

func TestItemMovedDragsAttachedWire(t *testing.T) {
	s := newTestScene()
	n1 := connectedNode(s, "n1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 50))
	connectedNode(s, "n2",
		geometry.NewPoint2D(300, 0), geometry.NewPoint2D(0, 50))

	w := newWireAt(geometry.NewPoint2D(100, 50), geometry.NewPoint2D(300, 50))
	s.AddWire(w)

	moveBy := geometry.NewPoint2D(10, 10)
	n1.Position = n1.Position.Add(moveBy)
	s.ItemMoved("n1", moveBy)

	abs := w.PointsAbsolute()
	require.Len(t, abs, 4)
	// The endpoint on n1's connector followed the node.
	assert.Equal(t, geometry.NewPoint2D(110, 60), abs[0])
	// The perpendicular component was absorbed by an inserted corner pair.
	assert.Equal(t, geometry.NewPoint2D(200, 60), abs[1])
	assert.Equal(t, geometry.NewPoint2D(200, 50), abs[2])
	// The endpoint on n2's connector stayed put.
	assert.Equal(t, geometry.NewPoint2D(300, 50), abs[3])

	// The wire is still attached at both ends.
	assert.Equal(t, geometry.NewPoint2D(110, 60), n1.ConnectionPointsAbsolute()[0])
	assert.Len(t, s.Nets(), 1)
}

func TestItemMovedIgnoresDetachedWires(t *testing.T) {
	s := newTestScene()
	n := connectedNode(s, "n1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 50))

	w := newWireAt(geometry.NewPoint2D(150, 50), geometry.NewPoint2D(300, 50))
	s.AddWire(w)
	before := w.PointsAbsolute()

	n.Position = n.Position.Add(geometry.NewPoint2D(10, 0))
	s.ItemMoved("n1", geometry.NewPoint2D(10, 0))

	assert.Equal(t, before, w.PointsAbsolute())
}

func TestItemRotatedDragsAttachedWire(t *testing.T) {
	s := newTestScene()
	n := connectedNode(s, "n1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 50))

	w := newWireAt(geometry.NewPoint2D(100, 50), geometry.NewPoint2D(200, 50))
	s.AddWire(w)

	n.SetRotation(90)
	s.ItemRotated("n1", 90)

	// The connector moved from (100,50) to (50,100); the wire endpoint
	// followed it.
	cp := n.ConnectionPointsAbsolute()[0]
	assert.InDelta(t, 50, cp.X, 1e-9)
	assert.InDelta(t, 100, cp.Y, 1e-9)

	abs := w.PointsAbsolute()
	first := abs[0]
	assert.InDelta(t, 50, first.X, 1e-9)
	assert.InDelta(t, 100, first.Y, 1e-9)
	// The far endpoint stayed put.
	assert.Equal(t, geometry.NewPoint2D(200, 50), abs[len(abs)-1])
}

func TestItemMovedNoOp(t *testing.T) {
	s := newTestScene()
	n := connectedNode(s, "n1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 50))
	w := newWireAt(geometry.NewPoint2D(100, 50), geometry.NewPoint2D(300, 50))
	s.AddWire(w)

	before := w.PointsAbsolute()
	s.ItemMoved("n1", geometry.Point2D{})
	s.ItemMoved("missing", geometry.NewPoint2D(5, 5))
	assert.Equal(t, before, w.PointsAbsolute())
	_ = n
}

func TestWireMovePointSlidesPredecessorSegment(t *testing.T) {
	s := newTestScene()
	w := newWireAt(
		geometry.NewPoint2D(0, 0),
		geometry.NewPoint2D(100, 0),
		geometry.NewPoint2D(100, 100),
		geometry.NewPoint2D(200, 100),
	)
	s.AddWire(w)

	// Moving the third vertex up to within the collision gap of its
	// predecessor slides the leading segment out of the way instead of
	// crushing the two vertices together.
	s.WireMovePoint(geometry.NewPoint2D(100, 1), w, geometry.NewPoint2D(0, -99))

	abs := w.PointsAbsolute()
	require.Len(t, abs, 4)
	assert.Equal(t, geometry.NewPoint2D(0, -99), abs[0])
	assert.Equal(t, geometry.NewPoint2D(100, -99), abs[1])
	assert.Equal(t, geometry.NewPoint2D(100, 1), abs[2])
	assert.Equal(t, geometry.NewPoint2D(200, 1), abs[3])

	for i := 1; i < len(abs); i++ {
		assert.False(t, geometry.Coincident(abs[i-1], abs[i]),
			"vertices %d and %d collapsed", i-1, i)
	}
}

func TestWireMovePointSlidesSuccessorSegment(t *testing.T) {
	s := newTestScene()
	w := newWireAt(
		geometry.NewPoint2D(0, 0),
		geometry.NewPoint2D(100, 0),
		geometry.NewPoint2D(100, 100),
		geometry.NewPoint2D(200, 100),
	)
	s.AddWire(w)

	// Same guard on the trailing side: the second vertex chases its
	// successor, and the successor's segment slides by the full delta.
	s.WireMovePoint(geometry.NewPoint2D(100, 99), w, geometry.NewPoint2D(0, 99))

	abs := w.PointsAbsolute()
	require.Len(t, abs, 4)
	assert.Equal(t, geometry.NewPoint2D(0, 99), abs[0])
	assert.Equal(t, geometry.NewPoint2D(100, 99), abs[1])
	assert.Equal(t, geometry.NewPoint2D(100, 199), abs[2])
	assert.Equal(t, geometry.NewPoint2D(200, 199), abs[3])

	for i := 1; i < len(abs); i++ {
		assert.False(t, geometry.Coincident(abs[i-1], abs[i]),
			"vertices %d and %d collapsed", i-1, i)
	}
}
