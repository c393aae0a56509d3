package scene

import (
	"schematic-editor/internal/wire"
	"schematic-editor/pkg/geometry"
)

// Mode is the scene interaction mode.
type Mode int

const (
	// ModeNormal selects and moves items.
	ModeNormal Mode = iota
	// ModeWire draws new wires.
	ModeWire
)

// Mode returns the current scene mode.
func (s *Scene) Mode() Mode {
	return s.mode
}

// SetMode switches the scene mode. Leaving wire mode discards the wire
// under construction; each pointer step is a complete state transition, so
// nothing else needs rolling back.
func (s *Scene) SetMode(mode Mode) {
	if mode == s.mode {
		return
	}

	if s.mode == ModeWire && s.newWire != nil {
		s.RemoveWire(s.newWire.ID)
		s.newWire = nil
	}

	s.mode = mode
}

// ToggleWirePosture inverts which leg of the routing elbow is drawn first.
func (s *Scene) ToggleWirePosture() {
	s.invertWirePosture = !s.invertWirePosture
}

// PendingWire returns the wire currently being drawn, or nil.
func (s *Scene) PendingWire() *wire.Wire {
	return s.newWire
}

// WirePress handles a pointer press in wire mode: it starts a new wire on
// the first press and appends a grid-snapped vertex on each one.
func (s *Scene) WirePress(scenePos geometry.Point2D) {
	if s.mode != ModeWire {
		return
	}

	if s.newWire == nil {
		s.newWire = wire.New()
		s.registerWire(s.newWire)
	}

	s.newWire.AppendPoint(s.settings.SnapPoint(scenePos))
	s.newWireSegment = true
}

// WireMove handles pointer movement in wire mode. Under straight-angle
// routing the segment from the last committed vertex to the cursor is kept
// as a horizontal/vertical elbow whose posture follows invertWirePosture;
// otherwise the last vertex simply tracks the cursor.
func (s *Scene) WireMove(scenePos geometry.Point2D) {
	if s.mode != ModeWire || s.newWire == nil || s.newWire.PointCount() == 0 {
		return
	}

	snapped := s.settings.SnapPoint(scenePos)
	points := s.newWire.PointsAbsolute()

	if !s.settings.RouteStraightAngles {
		if len(points) > 1 {
			s.newWire.MovePointTo(len(points)-1, snapped)
		} else {
			s.newWire.AppendPoint(snapped)
		}
		return
	}

	if s.newWireSegment {
		// Starting a fresh segment: replace any stale cursor vertex,
		// then add the corner and the cursor vertex.
		if len(points) > 1 {
			s.newWire.RemoveLastPoint()
			points = s.newWire.PointsAbsolute()
		}

		prev := points[len(points)-1]
		corner := geometry.NewPoint2D(prev.X, snapped.Y)
		if s.invertWirePosture {
			corner = geometry.NewPoint2D(snapped.X, prev.Y)
		}

		s.newWire.AppendPoint(corner)
		s.newWire.AppendPoint(snapped)
		s.newWireSegment = false
		return
	}

	// Continue the current segment: re-derive corner and cursor vertices
	// from the last committed one.
	count := s.newWire.PointCount()
	if count < 3 {
		return
	}
	anchor := points[count-3]
	corner := geometry.NewPoint2D(anchor.X, snapped.Y)
	if s.invertWirePosture {
		corner = geometry.NewPoint2D(snapped.X, anchor.Y)
	}
	s.newWire.MovePointTo(count-2, corner)
	s.newWire.MovePointTo(count-1, snapped)
}

// WireFinish commits the wire under construction on a double-click. The
// duplicate vertex left by the preceding press is dropped first. The wire is
// rejected (and left in progress) when its terminal vertex lands neither on
// a node connection point nor on an existing wire; the host is responsible
// for telling the user. On success the wire becomes selectable and
// hoverable, is simplified, attached to a net, and its terminal vertices are
// flagged as connected.
func (s *Scene) WireFinish() bool {
	if s.mode != ModeWire || s.newWire == nil || s.newWire.PointCount() <= 1 {
		return false
	}

	// The double-click followed a press that already appended this vertex.
	s.newWire.RemoveLastPoint()

	points := s.newWire.PointsAbsolute()
	last := points[len(points)-1]

	floating := true
	for _, cp := range s.ConnectionPoints() {
		if geometry.Coincident(cp, last) {
			floating = false
			break
		}
	}
	if floating {
		for _, id := range s.wireOrder {
			w := s.wires[id]
			if w == s.newWire {
				continue
			}
			if w.PointIsOnWire(last) {
				floating = false
				break
			}
		}
	}

	if floating {
		s.newWire.RemoveLastPoint()
		return false
	}

	s.newWire.Commit()
	s.newWire.Simplify()
	s.markConnectedEndpoints(s.newWire)
	s.WirePointMoved(s.newWire.ID)
	s.newWire = nil
	s.newWireSegment = false
	return true
}

// markConnectedEndpoints flags the wire's terminal vertices that coincide
// with a node connection point or another wire.
func (s *Scene) markConnectedEndpoints(w *wire.Wire) {
	points := w.PointsAbsolute()
	if len(points) == 0 {
		return
	}

	for _, i := range []int{0, len(points) - 1} {
		p := points[i]
		connected := false
		for _, cp := range s.ConnectionPoints() {
			if geometry.Coincident(cp, p) {
				connected = true
				break
			}
		}
		if !connected {
			for _, id := range s.wireOrder {
				other := s.wires[id]
				if other == w {
					continue
				}
				if other.PointIsOnWire(p) {
					connected = true
					break
				}
			}
		}
		w.SetPointConnected(i, connected)
	}
}
