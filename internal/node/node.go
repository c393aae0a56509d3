package node

import (
	"math"

	"schematic-editor/internal/settings"
	"schematic-editor/pkg/geometry"
)

// Default body size for newly created nodes.
const (
	DefaultWidth  = 160.0
	DefaultHeight = 240.0
)

// InteractionMode is the per-node interaction state. The only terminal-safe
// state between operations is ModeNone.
type InteractionMode int

const (
	ModeNone InteractionMode = iota
	ModeResize
	ModeRotate
)

// HandlePosition identifies one of the eight resize handles.
type HandlePosition int

const (
	HandleTopLeft HandlePosition = iota
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// ResizeFunc receives a resize intent: the proposed new scene position and
// body size. The host decides whether and how to commit it (e.g. wrapping it
// in an undoable command).
type ResizeFunc func(pos geometry.Point2D, size geometry.Size)

// RotateFunc receives a rotate intent: the proposed new absolute angle in
// degrees.
type RotateFunc func(angle float64)

// Node is a rectangular body with a mutable size, a rotation angle about the
// body-center pivot, and an ordered collection of connectors.
type Node struct {
	ID       string           `json:"id"`
	Position geometry.Point2D `json:"position"` // Scene space, body top-left when unrotated

	size       geometry.Size
	rotation   float64 // Degrees
	connectors []*Connector

	// Interaction policy
	AllowResize bool `json:"allow_resize"`
	AllowRotate bool `json:"allow_rotate"`
	SnapToGrid  bool `json:"-"`

	// Defaults applied to connectors as they are added.
	ConnectorsMovable    bool       `json:"-"`
	ConnectorsSnapToGrid bool       `json:"-"`
	ConnectorsSnapPolicy SnapPolicy `json:"-"`

	// Intent hooks. When nil, intents are applied directly.
	OnResize ResizeFunc `json:"-"`
	OnRotate RotateFunc `json:"-"`

	mode         InteractionMode
	resizeHandle HandlePosition
}

// New creates a node with the default body size at the scene origin.
func New(id string) *Node {
	return &Node{
		ID:                   id,
		size:                 geometry.NewSize(DefaultWidth, DefaultHeight),
		AllowResize:          true,
		AllowRotate:          true,
		SnapToGrid:           true,
		ConnectorsSnapToGrid: true,
		ConnectorsSnapPolicy: SnapNodeSizeRectOutline,
	}
}

// Size returns the body size.
func (n *Node) Size() geometry.Size {
	return n.size
}

// Width returns the body width.
func (n *Node) Width() float64 {
	return n.size.Width
}

// Height returns the body height.
func (n *Node) Height() float64 {
	return n.size.Height
}

// SizeRect returns the body rect in node-local coordinates.
func (n *Node) SizeRect() geometry.Rect {
	return geometry.NewRect(0, 0, n.size.Width, n.size.Height)
}

// Pivot returns the rotation pivot in node-local coordinates. It is always
// the body-rect center, so it relocates whenever the size changes.
func (n *Node) Pivot() geometry.Point2D {
	return n.SizeRect().Center()
}

// SetSize sets the body size. Unchanged or degenerate sizes (either axis
// below 1) are ignored. Connectors that sat on the old far edge, or that
// would fall outside the new bounds, are pulled back onto the body.
func (n *Node) SetSize(width, height float64) {
	// No-op on no effective change, as a matter of policy.
	if width == n.size.Width && height == n.size.Height {
		return
	}
	if width < 1 || height < 1 {
		return
	}

	oldSize := n.size
	n.size = geometry.NewSize(width, height)

	body := n.SizeRect()
	for _, c := range n.connectors {
		if geometry.EqualWithin(c.Pos.X, oldSize.Width) || c.Pos.X > width {
			c.Pos.X = width
		}
		if geometry.EqualWithin(c.Pos.Y, oldSize.Height) || c.Pos.Y > height {
			c.Pos.Y = height
		}
		c.applySnap(body, body.Corners())
	}
}

// SetWidth sets the body width, keeping the height.
func (n *Node) SetWidth(width float64) {
	n.SetSize(width, n.size.Height)
}

// SetHeight sets the body height, keeping the width.
func (n *Node) SetHeight(height float64) {
	n.SetSize(n.size.Width, height)
}

// Rotation returns the rotation angle in degrees.
func (n *Node) Rotation() float64 {
	return n.rotation
}

// SetRotation sets the rotation angle in degrees. The pivot does not move on
// rotation, only on resize.
func (n *Node) SetRotation(angle float64) {
	n.rotation = angle
}

// AddConnector attaches a connector, applying the node's connector defaults.
// Returns false on nil input.
func (n *Node) AddConnector(c *Connector) bool {
	if c == nil {
		return false
	}
	c.Movable = n.ConnectorsMovable
	c.SnapToGrid = n.ConnectorsSnapToGrid
	c.SnapPolicy = n.ConnectorsSnapPolicy
	n.connectors = append(n.connectors, c)
	return true
}

// AddSpecialConnector attaches a connector that is excluded from persistence
// and deep copies but otherwise behaves like any other.
func (n *Node) AddSpecialConnector(c *Connector) bool {
	if c == nil {
		return false
	}
	c.Special = true
	return n.AddConnector(c)
}

// RemoveConnector detaches a connector. Returns false if it was not attached.
func (n *Node) RemoveConnector(c *Connector) bool {
	for i, other := range n.connectors {
		if other == c {
			n.connectors = append(n.connectors[:i], n.connectors[i+1:]...)
			return true
		}
	}
	return false
}

// Connectors returns all connectors in attachment order.
func (n *Node) Connectors() []*Connector {
	return n.connectors
}

// PersistentConnectors returns the connectors that take part in persistence
// and copying, i.e. all non-special connectors.
func (n *Node) PersistentConnectors() []*Connector {
	var out []*Connector
	for _, c := range n.connectors {
		if !c.Special {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionPointsRelative returns each connector's position in node-local
// coordinates under the current rotation. These, with their absolute
// counterparts, are the sole authoritative source of where a wire can attach.
func (n *Node) ConnectionPointsRelative() []geometry.Point2D {
	pivot := n.Pivot()
	points := make([]geometry.Point2D, len(n.connectors))
	for i, c := range n.connectors {
		points[i] = c.Pos.RotateAround(pivot, n.rotation)
	}
	return points
}

// ConnectionPointsAbsolute returns each connector's position in scene space.
func (n *Node) ConnectionPointsAbsolute() []geometry.Point2D {
	points := n.ConnectionPointsRelative()
	for i := range points {
		points[i] = points[i].Add(n.Position)
	}
	return points
}

// DeepCopy returns a copy of the node, excluding special connectors and
// interaction state.
func (n *Node) DeepCopy() *Node {
	clone := &Node{
		ID:                   n.ID,
		Position:             n.Position,
		size:                 n.size,
		rotation:             n.rotation,
		AllowResize:          n.AllowResize,
		AllowRotate:          n.AllowRotate,
		SnapToGrid:           n.SnapToGrid,
		ConnectorsMovable:    n.ConnectorsMovable,
		ConnectorsSnapToGrid: n.ConnectorsSnapToGrid,
		ConnectorsSnapPolicy: n.ConnectorsSnapPolicy,
	}
	for _, c := range n.connectors {
		if c.Special {
			continue
		}
		clone.connectors = append(clone.connectors, c.DeepCopy())
	}
	return clone
}

// CanSnapToGrid reports whether the node is eligible for grid snapping.
// Only nodes rotated to an exact multiple of 90 degrees snap.
func (n *Node) CanSnapToGrid() bool {
	return n.SnapToGrid && math.Mod(n.rotation, 90) == 0
}

// SnapPosition snaps a candidate scene position for this node to the grid.
// At 90 or 270 degrees with an odd difference between width and height grid
// cell counts, the rotated bounding box corner no longer lands on a grid
// line, so the position is offset by half a grid cell on both axes.
func (n *Node) SnapPosition(pos geometry.Point2D, st settings.Settings) geometry.Point2D {
	if !n.CanSnapToGrid() || !st.SnapToGrid || st.GridSize <= 0 {
		return pos
	}

	g := float64(st.GridSize)
	absRot := math.Abs(math.Mod(n.rotation, 360))
	if (geometry.EqualWithin(absRot, 90) || geometry.EqualWithin(absRot, 270)) &&
		math.Mod(n.size.Width/g-n.size.Height/g, 2) != 0 {
		snapped := geometry.Point2D{
			X: math.Ceil(pos.X/g) * g,
			Y: math.Ceil(pos.Y/g) * g,
		}
		return snapped.Sub(geometry.NewPoint2D(g/2, g/2))
	}
	return st.SnapPoint(pos)
}
