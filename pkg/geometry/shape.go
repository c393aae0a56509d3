package geometry

import "math"

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// ClosestPointOnSegment returns the point on segment l closest to p.
func ClosestPointOnSegment(p Point2D, l Line) Point2D {
	d := l.P2.Sub(l.P1)
	if d.IsZero() {
		return l.P1
	}

	t := ((p.X-l.P1.X)*d.X + (p.Y-l.P1.Y)*d.Y) / (d.X*d.X + d.Y*d.Y)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return Point2D{X: l.P1.X + t*d.X, Y: l.P1.Y + t*d.Y}
}

// SnapToPolygonOutline returns the point on the polygon outline closest to p.
// Returns p unchanged when the polygon has fewer than two vertices.
func SnapToPolygonOutline(p Point2D, polygon []Point2D) Point2D {
	if len(polygon) < 2 {
		return p
	}

	best := p
	bestDist := math.Inf(1)
	n := len(polygon)
	for i := 0; i < n; i++ {
		edge := Line{P1: polygon[i], P2: polygon[(i+1)%n]}
		candidate := ClosestPointOnSegment(p, edge)
		if d := candidate.Distance(p); d < bestDist {
			bestDist = d
			best = candidate
		}
	}

	return best
}

// SnapToRect clamps p into the rectangle.
func SnapToRect(p Point2D, r Rect) Point2D {
	return Point2D{
		X: math.Min(math.Max(p.X, r.X), r.X+r.Width),
		Y: math.Min(math.Max(p.Y, r.Y), r.Y+r.Height),
	}
}

// SnapToRectOutline returns the point on the rectangle outline closest to p.
func SnapToRectOutline(p Point2D, r Rect) Point2D {
	return SnapToPolygonOutline(p, r.Corners())
}
