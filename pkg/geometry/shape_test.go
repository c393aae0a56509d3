package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square() []Point2D {
	return []Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
}

func TestPointInPolygon(t *testing.T) {
	assert.True(t, PointInPolygon(NewPoint2D(50, 50), square()))
	assert.False(t, PointInPolygon(NewPoint2D(150, 50), square()))
	assert.False(t, PointInPolygon(NewPoint2D(50, -1), square()))
	assert.False(t, PointInPolygon(NewPoint2D(0, 0), square()[:2]))
}

func TestClosestPointOnSegment(t *testing.T) {
	l := NewLine(NewPoint2D(0, 0), NewPoint2D(100, 0))
	assert.Equal(t, NewPoint2D(40, 0), ClosestPointOnSegment(NewPoint2D(40, 30), l))
	assert.Equal(t, NewPoint2D(0, 0), ClosestPointOnSegment(NewPoint2D(-10, 5), l))
	assert.Equal(t, NewPoint2D(100, 0), ClosestPointOnSegment(NewPoint2D(150, 5), l))
}

func TestSnapToRect(t *testing.T) {
	r := NewRect(0, 0, 100, 100)
	assert.Equal(t, NewPoint2D(100, 50), SnapToRect(NewPoint2D(120, 50), r))
	assert.Equal(t, NewPoint2D(0, 0), SnapToRect(NewPoint2D(-5, -5), r))
	assert.Equal(t, NewPoint2D(30, 40), SnapToRect(NewPoint2D(30, 40), r))
}

func TestSnapToRectOutline(t *testing.T) {
	r := NewRect(0, 0, 100, 100)
	// Outside: nearest outline point.
	assert.Equal(t, NewPoint2D(100, 50), SnapToRectOutline(NewPoint2D(120, 50), r))
	// Inside: projected to the nearest edge.
	assert.Equal(t, NewPoint2D(0, 50), SnapToRectOutline(NewPoint2D(10, 50), r))
}

func TestSnapToPolygonOutline(t *testing.T) {
	tri := []Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}}
	assert.Equal(t, NewPoint2D(50, 0), SnapToPolygonOutline(NewPoint2D(50, -20), tri))

	p := NewPoint2D(5, 5)
	assert.Equal(t, p, SnapToPolygonOutline(p, tri[:1]))
}
