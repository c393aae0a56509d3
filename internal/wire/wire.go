// Package wire provides wires (mutable polylines) and wire nets (groups of
// wires that form one electrical connection).
package wire

import (
	"schematic-editor/pkg/geometry"
)

// WirePoint is a polyline vertex. The Connected flag marks vertices that
// terminate on something external (a node connector or another wire), as
// opposed to plain routing corners. Equality is by coordinate.
type WirePoint struct {
	geometry.Point2D
	Connected bool `json:"connected,omitempty"`
}

// NewWirePoint creates an unconnected wire point.
func NewWirePoint(x, y float64) WirePoint {
	return WirePoint{Point2D: geometry.Point2D{X: x, Y: y}}
}

// Wire is an ordered, mutable sequence of wire points defining a polyline.
// Points are stored in a local coordinate space offset by the wire's scene
// position. A wire under construction may have fewer than two points; a
// committed wire has at least two.
type Wire struct {
	ID       string           `json:"id"`
	Position geometry.Point2D `json:"position"`
	Points   []WirePoint      `json:"points"`

	// Interaction flags, set when the wire is committed.
	Selectable bool `json:"-"`
	Hoverable  bool `json:"-"`
}

// New creates an empty wire at the scene origin.
func New() *Wire {
	return &Wire{}
}

// PointCount returns the number of vertices.
func (w *Wire) PointCount() int {
	return len(w.Points)
}

// PointsRelative returns the vertex positions in the wire's local space.
func (w *Wire) PointsRelative() []geometry.Point2D {
	points := make([]geometry.Point2D, len(w.Points))
	for i, p := range w.Points {
		points[i] = p.Point2D
	}
	return points
}

// PointsAbsolute returns the vertex positions in scene space.
func (w *Wire) PointsAbsolute() []geometry.Point2D {
	points := make([]geometry.Point2D, len(w.Points))
	for i, p := range w.Points {
		points[i] = p.Point2D.Add(w.Position)
	}
	return points
}

// WirePointsAbsolute returns the vertices, with connected flags, in scene space.
func (w *Wire) WirePointsAbsolute() []WirePoint {
	points := make([]WirePoint, len(w.Points))
	for i, p := range w.Points {
		points[i] = WirePoint{Point2D: p.Point2D.Add(w.Position), Connected: p.Connected}
	}
	return points
}

// LineSegments returns the wire's line segments in scene space.
func (w *Wire) LineSegments() []geometry.Line {
	if len(w.Points) < 2 {
		return nil
	}
	segments := make([]geometry.Line, 0, len(w.Points)-1)
	abs := w.PointsAbsolute()
	for i := 0; i < len(abs)-1; i++ {
		segments = append(segments, geometry.NewLine(abs[i], abs[i+1]))
	}
	return segments
}

// AppendPoint adds a vertex at the given scene position.
func (w *Wire) AppendPoint(p geometry.Point2D) {
	w.Points = append(w.Points, WirePoint{Point2D: p.Sub(w.Position)})
}

// InsertPoint inserts a vertex at index i, shifting later vertices up.
// Out-of-range indexes are ignored.
func (w *Wire) InsertPoint(i int, p geometry.Point2D) {
	if i < 0 || i > len(w.Points) {
		return
	}
	w.Points = append(w.Points, WirePoint{})
	copy(w.Points[i+1:], w.Points[i:])
	w.Points[i] = WirePoint{Point2D: p.Sub(w.Position)}
}

// RemoveLastPoint drops the final vertex, if any.
func (w *Wire) RemoveLastPoint() {
	if len(w.Points) > 0 {
		w.Points = w.Points[:len(w.Points)-1]
	}
}

// MovePointBy moves vertex i by the given vector. Out-of-range indexes are
// ignored.
func (w *Wire) MovePointBy(i int, delta geometry.Point2D) {
	if i < 0 || i >= len(w.Points) {
		return
	}
	w.Points[i].Point2D = w.Points[i].Point2D.Add(delta)
}

// MovePointTo moves vertex i to the given scene position. Out-of-range
// indexes are ignored.
func (w *Wire) MovePointTo(i int, p geometry.Point2D) {
	if i < 0 || i >= len(w.Points) {
		return
	}
	w.Points[i].Point2D = p.Sub(w.Position)
}

// MoveLineSegmentBy moves both endpoints of segment i (vertices i and i+1)
// by the given vector. Out-of-range indexes are ignored.
func (w *Wire) MoveLineSegmentBy(i int, delta geometry.Point2D) {
	if i < 0 || i+1 >= len(w.Points) {
		return
	}
	w.MovePointBy(i, delta)
	w.MovePointBy(i+1, delta)
}

// SetPointConnected marks vertex i as terminating on an external item.
func (w *Wire) SetPointConnected(i int, connected bool) {
	if i < 0 || i >= len(w.Points) {
		return
	}
	w.Points[i].Connected = connected
}

// PointIsOnWire returns true if the scene-space point lies on any of the
// wire's segments within the coincidence tolerance.
func (w *Wire) PointIsOnWire(p geometry.Point2D) bool {
	for _, segment := range w.LineSegments() {
		if segment.ContainsPoint(p, geometry.Epsilon) {
			return true
		}
	}
	return false
}

// Commit marks the wire as finished: it becomes selectable and hoverable.
func (w *Wire) Commit() {
	w.Selectable = true
	w.Hoverable = true
}

// Simplify removes redundant vertices: consecutive duplicates and interior
// vertices collinear with both neighbors. Connected endpoints are never
// dropped.
func (w *Wire) Simplify() {
	// Drop consecutive duplicates first so the collinearity pass sees
	// well-formed segments.
	for i := len(w.Points) - 1; i > 0; i-- {
		if geometry.Coincident(w.Points[i].Point2D, w.Points[i-1].Point2D) {
			keep := w.Points[i-1]
			if w.Points[i].Connected {
				keep.Connected = true
			}
			w.Points = append(w.Points[:i-1], w.Points[i:]...)
			w.Points[i-1] = keep
		}
	}

	for i := len(w.Points) - 2; i >= 1; i-- {
		if w.Points[i].Connected {
			continue
		}
		prev := w.Points[i-1].Point2D
		curr := w.Points[i].Point2D
		next := w.Points[i+1].Point2D

		cross := (curr.X-prev.X)*(next.Y-prev.Y) - (curr.Y-prev.Y)*(next.X-prev.X)
		if geometry.NearZero(cross) {
			w.Points = append(w.Points[:i], w.Points[i+1:]...)
		}
	}
}
