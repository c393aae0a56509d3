// Package node provides rectangular schematic nodes with attached connectors
// and the resize/rotate transform model.
package node

import (
	"schematic-editor/pkg/geometry"
)

// SnapPolicy controls where a connector may sit on its node when the node is
// resized underneath it.
type SnapPolicy int

const (
	// SnapAnywhere leaves the connector position untouched.
	SnapAnywhere SnapPolicy = iota
	// SnapNodeSizeRect clamps the connector into the node's body rect.
	SnapNodeSizeRect
	// SnapNodeSizeRectOutline snaps the connector onto the body rect outline.
	SnapNodeSizeRectOutline
	// SnapNodeShape snaps the connector onto the node's painted outline shape.
	SnapNodeShape
)

func (p SnapPolicy) String() string {
	switch p {
	case SnapAnywhere:
		return "Anywhere"
	case SnapNodeSizeRect:
		return "NodeSizeRect"
	case SnapNodeSizeRectOutline:
		return "NodeSizeRectOutline"
	case SnapNodeShape:
		return "NodeShape"
	default:
		return "Unknown"
	}
}

// Connector is an attachment point on a node where wires may terminate.
// Pos is in the node's local (unrotated) coordinate space.
type Connector struct {
	Name       string           `json:"name,omitempty"`
	Pos        geometry.Point2D `json:"pos"`
	SnapPolicy SnapPolicy       `json:"snap_policy"`
	Movable    bool             `json:"-"`
	SnapToGrid bool             `json:"-"`

	// Special connectors are functional but excluded from persistence
	// and from deep copies.
	Special bool `json:"-"`
}

// NewConnector creates a connector at the given node-local position.
func NewConnector(name string, pos geometry.Point2D) *Connector {
	return &Connector{
		Name:       name,
		Pos:        pos,
		SnapPolicy: SnapNodeSizeRectOutline,
		SnapToGrid: true,
	}
}

// DeepCopy returns a copy of the connector.
func (c *Connector) DeepCopy() *Connector {
	clone := *c
	return &clone
}

// applySnap moves the connector back onto the node per its snap policy after
// a resize left it outside the new body rect. shape is the node's painted
// outline for SnapNodeShape; the body rect corners serve as a fallback.
func (c *Connector) applySnap(body geometry.Rect, shape []geometry.Point2D) {
	// The painted outline can be smaller than the body rect, so shape
	// containment is tested against the polygon itself.
	if c.SnapPolicy == SnapNodeShape && len(shape) >= 3 {
		if !geometry.PointInPolygon(c.Pos, shape) {
			c.Pos = geometry.SnapToPolygonOutline(c.Pos, shape)
		}
		return
	}

	if body.Contains(c.Pos) {
		return
	}

	switch c.SnapPolicy {
	case SnapAnywhere:
		// Nothing to do.
	case SnapNodeSizeRect:
		c.Pos = geometry.SnapToRect(c.Pos, body)
	case SnapNodeSizeRectOutline, SnapNodeShape:
		c.Pos = geometry.SnapToRectOutline(c.Pos, body)
	}
}
