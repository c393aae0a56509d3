package history

import (
	"schematic-editor/internal/scene"
	"schematic-editor/internal/wire"
	"schematic-editor/pkg/geometry"
)

// MoveNode translates a node and drags its connected wires along.
type MoveNode struct {
	Scene  *scene.Scene
	NodeID string
	By     geometry.Point2D
}

// Do moves the node by the vector and propagates into connected wires.
func (c *MoveNode) Do() {
	c.apply(c.By)
}

// Undo moves the node back.
func (c *MoveNode) Undo() {
	c.apply(c.By.Scale(-1))
}

func (c *MoveNode) apply(by geometry.Point2D) {
	n := c.Scene.Node(c.NodeID)
	if n == nil {
		return
	}
	n.Position = n.Position.Add(by)
	c.Scene.ItemMoved(c.NodeID, by)
}

// ResizeNode commits a resize intent.
type ResizeNode struct {
	Scene   *scene.Scene
	NodeID  string
	NewPos  geometry.Point2D
	NewSize geometry.Size

	oldPos  geometry.Point2D
	oldSize geometry.Size
}

// Do applies the new position and size, remembering the old ones.
func (c *ResizeNode) Do() {
	n := c.Scene.Node(c.NodeID)
	if n == nil {
		return
	}
	c.oldPos = n.Position
	c.oldSize = n.Size()
	n.ApplyResize(c.NewPos, c.NewSize)
}

// Undo restores the previous position and size.
func (c *ResizeNode) Undo() {
	n := c.Scene.Node(c.NodeID)
	if n == nil {
		return
	}
	n.ApplyResize(c.oldPos, c.oldSize)
}

// RotateNode commits a rotate intent and propagates into connected wires.
type RotateNode struct {
	Scene    *scene.Scene
	NodeID   string
	NewAngle float64

	oldAngle float64
}

// Do applies the new angle.
func (c *RotateNode) Do() {
	n := c.Scene.Node(c.NodeID)
	if n == nil {
		return
	}
	c.oldAngle = n.Rotation()
	delta := c.NewAngle - c.oldAngle
	n.SetRotation(c.NewAngle)
	c.Scene.ItemRotated(c.NodeID, delta)
}

// Undo restores the previous angle.
func (c *RotateNode) Undo() {
	n := c.Scene.Node(c.NodeID)
	if n == nil {
		return
	}
	delta := c.oldAngle - c.NewAngle
	n.SetRotation(c.oldAngle)
	c.Scene.ItemRotated(c.NodeID, delta)
}

// AddWire inserts a committed wire into the scene, running net formation.
// The command keeps the wire alive so redo can re-insert it.
type AddWire struct {
	Scene *scene.Scene
	Wire  *wire.Wire
}

// Do adds the wire.
func (c *AddWire) Do() {
	c.Scene.AddWire(c.Wire)
}

// Undo removes the wire again.
func (c *AddWire) Undo() {
	if c.Wire != nil {
		c.Scene.RemoveWire(c.Wire.ID)
	}
}

// RemoveWire deletes a wire from the scene.
type RemoveWire struct {
	Scene  *scene.Scene
	WireID string

	removed *wire.Wire
}

// Do removes the wire, keeping it for redo.
func (c *RemoveWire) Do() {
	c.removed = c.Scene.Wire(c.WireID)
	c.Scene.RemoveWire(c.WireID)
}

// Undo re-adds the wire.
func (c *RemoveWire) Undo() {
	if c.removed != nil {
		c.Scene.AddWire(c.removed)
	}
}
