package scene

import (
	"math"

	"schematic-editor/internal/node"
	"schematic-editor/internal/wire"
	"schematic-editor/pkg/geometry"
)

// minVertexGap is the distance under which two adjacent wire vertices are
// considered colliding; an entire adjacent segment is slid out of the way
// before neighbor propagation would push them together.
const minVertexGap = 2.0

// WirePointMoved re-evaluates a wire's net membership after its geometry
// changed. The wire is detached from its current net (destroying it when
// left empty) and re-run through net formation, possibly joining a
// different net.
func (s *Scene) WirePointMoved(wireID string) {
	w := s.wires[wireID]
	if w == nil {
		return
	}
	s.detachWire(wireID)
	s.attachWire(w)
}

// WireMovePoint moves the wire vertex that ends up at the scene point
// `point` after moving by `movedBy`, preserving straight angles when the
// routing policy requires it.
//
// On a two-point wire, a move perpendicular to the single segment first
// inserts a vertex pair at the segment midpoint so the move is absorbed as a
// new corner. Neighbor vertices receive only the movement component that
// keeps their shared segment orthogonal: a horizontal segment propagates y,
// a vertical one propagates x. When propagation would bring two vertices
// within minVertexGap of each other, the adjacent segment is slid by the
// full delta first. The targeted vertex itself always moves by the full
// delta.
func (s *Scene) WireMovePoint(point geometry.Point2D, w *wire.Wire, movedBy geometry.Point2D) {
	if w == nil || movedBy.IsZero() {
		return
	}

	if w.PointCount() == 2 && s.settings.PreserveStraightAngles {
		segment := w.LineSegments()[0]

		// Only needed when moving against the segment direction;
		// moving along it just shifts one of the two points.
		if (segment.IsHorizontal() && !geometry.NearZero(movedBy.Y)) ||
			(segment.IsVertical() && !geometry.NearZero(movedBy.X)) {
			half := math.Floor(segment.Length() / 2)
			var mid geometry.Point2D

			if segment.IsHorizontal() {
				left := segment.P1
				if segment.P2.X < segment.P1.X {
					left = segment.P2
				}
				mid = geometry.NewPoint2D(left.X+half, left.Y)
			} else {
				top := segment.P1
				if segment.P2.Y < segment.P1.Y {
					top = segment.P2
				}
				mid = geometry.NewPoint2D(top.X, top.Y+half)
			}

			// Insert twice: the pair forms the new segment that
			// absorbs the perpendicular move as a corner.
			w.InsertPoint(1, mid)
			w.InsertPoint(1, mid)
		}
	}

	points := w.PointsAbsolute()
	for i, curr := range points {
		if !geometry.Coincident(curr, point.Sub(movedBy)) {
			continue
		}

		if s.settings.PreserveStraightAngles {
			// Adjust the predecessor.
			if i >= 1 {
				prev := points[i-1]
				segment := geometry.NewLine(prev, curr)

				if w.PointCount() > 3 && i >= 2 &&
					geometry.NewLine(curr.Add(movedBy), prev).Length() <= minVertexGap {
					w.MoveLineSegmentBy(i-2, movedBy)
				}

				if segment.IsHorizontal() {
					w.MovePointBy(i-1, geometry.NewPoint2D(0, movedBy.Y))
				} else if segment.IsVertical() {
					w.MovePointBy(i-1, geometry.NewPoint2D(movedBy.X, 0))
				}
			}

			// Adjust the successor.
			if i < w.PointCount()-1 && i+1 < len(points) {
				next := points[i+1]
				segment := geometry.NewLine(curr, next)

				if w.PointCount() > 3 &&
					geometry.NewLine(curr.Add(movedBy), next).Length() <= minVertexGap {
					w.MoveLineSegmentBy(i+1, movedBy)
				}

				if segment.IsHorizontal() {
					w.MovePointBy(i+1, geometry.NewPoint2D(0, movedBy.Y))
				} else if segment.IsVertical() {
					w.MovePointBy(i+1, geometry.NewPoint2D(movedBy.X, 0))
				}
			}
		}

		w.MovePointBy(i, movedBy)
		break
	}
}

// ItemMoved propagates a node translation into connected wires: every wire
// endpoint that was coincident with one of the node's connection points
// before the move is moved by the same vector, then the touched nets are
// simplified. Call after the node's position has been updated.
func (s *Scene) ItemMoved(nodeID string, movedBy geometry.Point2D) {
	if movedBy.IsZero() {
		return
	}
	n := s.nodes[nodeID]
	if n == nil {
		return
	}

	connected := s.wiresConnectedTo(n, movedBy.Scale(-1))

	for _, w := range connected {
		for _, cp := range n.ConnectionPointsAbsolute() {
			s.WireMovePoint(cp, w, movedBy)
		}
	}

	for _, w := range connected {
		s.simplifyNet(s.Net(w.ID))
	}
}

// ItemRotated propagates a node rotation by the given delta, in degrees,
// into connected wires: every wire endpoint whose reconstructed pre-rotation
// position coincides with one of the node's connection points is moved to
// that connector's post-rotation position. Call after the node's rotation
// has been updated.
func (s *Scene) ItemRotated(nodeID string, rotation float64) {
	n := s.nodes[nodeID]
	if n == nil {
		return
	}

	pivot := n.Pivot().Add(n.Position)
	var touched []*wire.Wire

	for _, id := range s.wireOrder {
		w := s.wires[id]
		for _, wp := range w.PointsAbsolute() {
			for _, cp := range n.ConnectionPointsAbsolute() {
				// Where was this connection point before the rotation?
				prev := cp.RotateAround(pivot, -rotation)
				if wp.Distance(prev) < geometry.Epsilon {
					s.WireMovePoint(cp, w, cp.Sub(prev))
					touched = append(touched, w)
					break
				}
			}
		}
	}

	for _, w := range touched {
		s.simplifyNet(s.Net(w.ID))
	}
}

// wiresConnectedTo returns the wires having an endpoint coincident with one
// of the node's connection points displaced by offset. Passing the negated
// movement vector finds wires that were attached before a move.
func (s *Scene) wiresConnectedTo(n *node.Node, offset geometry.Point2D) []*wire.Wire {
	var out []*wire.Wire

	for _, id := range s.wireOrder {
		w := s.wires[id]
		for _, wp := range w.PointsAbsolute() {
			attached := false
			for _, cp := range n.ConnectionPointsAbsolute() {
				if wp.Distance(cp.Add(offset)) < geometry.Epsilon {
					out = append(out, w)
					attached = true
					break
				}
			}
			if attached {
				break
			}
		}
	}

	return out
}
