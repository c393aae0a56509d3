package node

import (
	"math"

	"schematic-editor/internal/settings"
	"schematic-editor/pkg/geometry"
)

// ResizeBy computes the resize result for dragging the given handle by delta.
// delta must already be expressed in the node's unrotated local frame: the
// caller rotates the scene-space pointer delta by the inverse of the current
// rotation first (see SceneDeltaToLocal).
//
// The returned position and size are a proposal; route them through
// ProposeResize so the host can intercept the intent.
func (n *Node) ResizeBy(handle HandlePosition, delta geometry.Point2D, st settings.Settings) (geometry.Point2D, geometry.Size) {
	newX := n.Position.X
	newY := n.Position.Y
	newWidth := n.size.Width
	newHeight := n.size.Height

	switch handle {
	case HandleTopLeft:
		newX += delta.X
		newY += delta.Y
		newWidth -= delta.X
		newHeight -= delta.Y
	case HandleTop:
		newY += delta.Y
		newHeight -= delta.Y
	case HandleTopRight:
		newY += delta.Y
		newWidth += delta.X
		newHeight -= delta.Y
	case HandleRight:
		newWidth += delta.X
	case HandleBottomRight:
		newWidth += delta.X
		newHeight += delta.Y
	case HandleBottom:
		newHeight += delta.Y
	case HandleBottomLeft:
		newX += delta.X
		newWidth -= delta.X
		newHeight += delta.Y
	case HandleLeft:
		newX += delta.X
		newWidth -= delta.X
	}

	newPos := geometry.NewPoint2D(newX, newY)
	newSize := geometry.NewSize(newWidth, newHeight)
	if n.CanSnapToGrid() {
		newSize = st.SnapSize(newSize)
	}

	// Minimum size of 1 per axis. When a dimension is clamped and the drag
	// was moving that axis's position, compensate so the opposite edge
	// stays fixed.
	if newSize.Height < 1 {
		newSize.Height = 1
		if !geometry.EqualWithin(newPos.Y, n.Position.Y) {
			newPos.Y = n.Position.Y + n.size.Height - 1
		}
	}
	if newSize.Width < 1 {
		newSize.Width = 1
		if !geometry.EqualWithin(newPos.X, n.Position.X) {
			newPos.X = n.Position.X + n.size.Width - 1
		}
	}

	// Correct the origin: the pivot relocates to the new body center, and
	// the node is reinterpreted under the existing rotation about that new
	// pivot. Apply the difference between the rotated and unrotated pivot
	// shift so the dragged edge keeps tracking the cursor.
	newPivot := geometry.NewPoint2D(newSize.Width/2, newSize.Height/2).Add(newPos).Sub(n.Position)
	shift := newPivot.Sub(n.Pivot())
	rotatedShift := shift.RotateAround(geometry.Point2D{}, n.rotation)
	newPos = newPos.Add(rotatedShift.Sub(shift))

	return newPos, newSize
}

// SceneDeltaToLocal rotates a scene-space pointer delta into the node's
// unrotated local frame.
func (n *Node) SceneDeltaToLocal(delta geometry.Point2D) geometry.Point2D {
	return delta.RotateAround(geometry.Point2D{}, -n.rotation)
}

// ProposeResize reports a resize intent. The OnResize hook, when set,
// decides whether to commit; otherwise the resize is applied directly.
func (n *Node) ProposeResize(pos geometry.Point2D, size geometry.Size) {
	if n.OnResize != nil {
		n.OnResize(pos, size)
		return
	}
	n.ApplyResize(pos, size)
}

// ApplyResize commits a resize result.
func (n *Node) ApplyResize(pos geometry.Point2D, size geometry.Size) {
	n.Position = pos
	n.SetSize(size.Width, size.Height)
}

// RotationAngleTo derives the absolute rotation angle, in degrees, that
// points the rotation handle at the given scene-space cursor position. The
// component imposes no quantization; callers may round to 15 degree steps
// before proposing.
func (n *Node) RotationAngleTo(cursor geometry.Point2D) float64 {
	center := n.Pivot().Add(n.Position)
	delta := center.Sub(cursor)
	return math.Mod(math.Atan2(delta.Y, delta.X)*180/math.Pi+270, 360)
}

// ProposeRotate reports a rotate intent, same hook pattern as resize.
func (n *Node) ProposeRotate(angle float64) {
	if n.OnRotate != nil {
		n.OnRotate(angle)
		return
	}
	n.SetRotation(angle)
}

// ResizeHandles returns the hit-test rects for the resize handles, keyed by
// handle position, in node-local (unrotated) coordinates. Corner handles are
// always present; edge-midpoint handles appear only when the body is large
// enough to leave room between the corners.
func (n *Node) ResizeHandles(st settings.Settings) map[HandlePosition]geometry.Rect {
	handles := make(map[HandlePosition]geometry.Rect)
	hs := st.ResizeHandleSize
	r := n.SizeRect()

	handles[HandleTopLeft] = handleRect(r.TopLeft(), hs)
	handles[HandleTopRight] = handleRect(r.TopRight(), hs)
	handles[HandleBottomLeft] = handleRect(r.BottomLeft(), hs)
	handles[HandleBottomRight] = handleRect(r.BottomRight(), hs)

	if r.Width > 7*hs {
		handles[HandleTop] = handleRect(geometry.CenterPoint(r.TopLeft(), r.TopRight()), hs)
		handles[HandleBottom] = handleRect(geometry.CenterPoint(r.BottomLeft(), r.BottomRight()), hs)
	}
	if r.Height > 7*hs {
		handles[HandleLeft] = handleRect(geometry.CenterPoint(r.TopLeft(), r.BottomLeft()), hs)
		handles[HandleRight] = handleRect(geometry.CenterPoint(r.TopRight(), r.BottomRight()), hs)
	}

	return handles
}

// RotationHandle returns the hit-test rect for the rotate handle, placed
// above the top-center of the body, in node-local coordinates.
func (n *Node) RotationHandle(st settings.Settings) geometry.Rect {
	hs := st.ResizeHandleSize
	top := geometry.CenterPoint(n.SizeRect().TopLeft(), n.SizeRect().TopRight())
	return handleRect(top.Add(geometry.NewPoint2D(0, -3*hs)), hs)
}

func handleRect(center geometry.Point2D, handleSize float64) geometry.Rect {
	return geometry.NewRect(center.X-handleSize, center.Y-handleSize, 2*handleSize, 2*handleSize)
}

// Mode returns the current interaction mode.
func (n *Node) Mode() InteractionMode {
	return n.mode
}

// ResizeHandleInUse returns the handle grabbed at interaction start. Only
// meaningful while Mode is ModeResize.
func (n *Node) ResizeHandleInUse() HandlePosition {
	return n.resizeHandle
}

// BeginInteraction enters Resize or Rotate mode based on which hit-test
// succeeds at the given node-local pointer position. Resize handles are
// checked before the rotate handle, so corner proximity wins. Returns the
// entered mode; ModeNone when no handle was hit.
func (n *Node) BeginInteraction(localPos geometry.Point2D, st settings.Settings) InteractionMode {
	n.mode = ModeNone

	if n.AllowResize {
		for handle, rect := range n.ResizeHandles(st) {
			if rect.Contains(localPos) {
				n.mode = ModeResize
				n.resizeHandle = handle
				return n.mode
			}
		}
	}

	if n.AllowRotate && n.RotationHandle(st).Contains(localPos) {
		n.mode = ModeRotate
	}

	return n.mode
}

// EndInteraction returns the node to ModeNone.
func (n *Node) EndInteraction() {
	n.mode = ModeNone
}
