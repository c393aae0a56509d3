package geometry

// Line represents an ordered pair of points forming a line segment.
type Line struct {
	P1 Point2D `json:"p1"`
	P2 Point2D `json:"p2"`
}

// NewLine creates a new Line.
func NewLine(p1, p2 Point2D) Line {
	return Line{P1: p1, P2: p2}
}

// IsHorizontal returns true if both endpoints share the exact same y
// coordinate. A nearly-horizontal line is not horizontal.
func (l Line) IsHorizontal() bool {
	return l.P1.Y == l.P2.Y
}

// IsVertical returns true if both endpoints share the exact same x
// coordinate. A nearly-vertical line is not vertical.
func (l Line) IsVertical() bool {
	return l.P1.X == l.P2.X
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return l.P1.Distance(l.P2)
}

// ContainsPoint returns true if p lies on the segment within tolerance.
// The point is projected onto the segment; it is accepted when the
// perpendicular distance is at most tolerance and the projection falls
// within the segment extent.
func (l Line) ContainsPoint(p Point2D, tolerance float64) bool {
	d := l.P2.Sub(l.P1)

	// Degenerate segment: plain distance check.
	if d.IsZero() {
		return l.P1.Distance(p) <= tolerance
	}

	t := ((p.X-l.P1.X)*d.X + (p.Y-l.P1.Y)*d.Y) / (d.X*d.X + d.Y*d.Y)
	if t < 0 || t > 1 {
		return false
	}

	closest := Point2D{X: l.P1.X + t*d.X, Y: l.P1.Y + t*d.Y}
	return closest.Distance(p) <= tolerance
}
