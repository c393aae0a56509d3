// Package canvas provides the schematic canvas widget with pan, zoom, and
// the pointer interaction that drives the connectivity core.
package canvas

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"schematic-editor/internal/history"
	"schematic-editor/internal/node"
	"schematic-editor/internal/render"
	"schematic-editor/internal/scene"
	"schematic-editor/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// SchematicCanvas displays a scene and routes pointer events into it.
type SchematicCanvas struct {
	widget.BaseWidget

	Scene   *scene.Scene
	History *history.Stack

	raster *fynecanvas.Raster
	zoom   float64
	offset geometry.Point2D

	// Interaction state
	selected   *node.Node
	active     *node.Node
	moving     bool
	panning    bool
	lastScene  geometry.Point2D
	gesturePos geometry.Point2D // node position at gesture start
	gestureSz  geometry.Size
	gestureRot float64

	// SnapRotation quantizes interactive rotation to 15 degree steps.
	SnapRotation bool

	// OnStatus receives short user-facing messages.
	OnStatus func(msg string)
}

// NewSchematicCanvas creates a canvas over the given scene.
func NewSchematicCanvas(s *scene.Scene, h *history.Stack) *SchematicCanvas {
	sc := &SchematicCanvas{
		Scene:   s,
		History: h,
		zoom:    1,
	}
	sc.raster = fynecanvas.NewRaster(sc.draw)
	sc.ExtendBaseWidget(sc)
	return sc
}

// CreateRenderer implements fyne.Widget.
func (sc *SchematicCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(sc.raster)
}

func (sc *SchematicCanvas) draw(w, h int) image.Image {
	return render.Render(sc.Scene, render.Options{
		Width:  w,
		Height: h,
		Scale:  sc.zoom,
		Offset: sc.offset,
	})
}

// Refresh redraws the canvas.
func (sc *SchematicCanvas) Refresh() {
	sc.raster.Refresh()
	sc.BaseWidget.Refresh()
}

// Selected returns the currently selected node, or nil.
func (sc *SchematicCanvas) Selected() *node.Node {
	return sc.selected
}

// toScene converts a widget position into scene coordinates.
func (sc *SchematicCanvas) toScene(pos fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(pos.X)/sc.zoom, float64(pos.Y)/sc.zoom).Add(sc.offset)
}

// toLocal converts a scene point into a node's unrotated local frame.
func toLocal(n *node.Node, p geometry.Point2D) geometry.Point2D {
	return p.Sub(n.Position).RotateAround(n.Pivot(), -n.Rotation())
}

// nodeAt returns the topmost node whose body or handles contain the scene
// point.
func (sc *SchematicCanvas) nodeAt(p geometry.Point2D) *node.Node {
	nodes := sc.Scene.Nodes()
	st := sc.Scene.Settings()
	pad := st.ResizeHandleSize * 4
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		local := toLocal(n, p)
		r := n.SizeRect()
		hit := geometry.NewRect(r.X-pad, r.Y-pad, r.Width+2*pad, r.Height+2*pad)
		if hit.Contains(local) {
			return n
		}
	}
	return nil
}

// MouseDown implements desktop.Mouseable.
func (sc *SchematicCanvas) MouseDown(e *desktop.MouseEvent) {
	scenePos := sc.toScene(e.Position)
	sc.lastScene = scenePos

	if e.Button == desktop.MouseButtonSecondary {
		sc.panning = true
		return
	}

	if sc.Scene.Mode() == scene.ModeWire {
		sc.Scene.WirePress(scenePos)
		sc.Refresh()
		return
	}

	n := sc.nodeAt(scenePos)
	sc.active = n
	sc.moving = false
	if n == nil {
		sc.selected = nil
		sc.Refresh()
		return
	}

	// A press selects; handles only respond on the selected node, and
	// resize handles win over the rotate handle.
	if sc.selected == n {
		if n.BeginInteraction(toLocal(n, scenePos), sc.Scene.Settings()) != node.ModeNone {
			sc.gesturePos = n.Position
			sc.gestureSz = n.Size()
			sc.gestureRot = n.Rotation()
			return
		}
	}
	sc.selected = n
	sc.moving = true
	sc.gesturePos = n.Position
	sc.Refresh()
}

// MouseUp implements desktop.Mouseable.
func (sc *SchematicCanvas) MouseUp(e *desktop.MouseEvent) {
	sc.panning = false
	n := sc.active
	sc.active = nil
	if n == nil {
		return
	}

	switch n.Mode() {
	case node.ModeResize:
		newPos, newSize := n.Position, n.Size()
		n.ApplyResize(sc.gesturePos, sc.gestureSz)
		sc.History.Push(&history.ResizeNode{
			Scene: sc.Scene, NodeID: n.ID, NewPos: newPos, NewSize: newSize,
		})
	case node.ModeRotate:
		newAngle := n.Rotation()
		n.SetRotation(sc.gestureRot)
		sc.Scene.ItemRotated(n.ID, sc.gestureRot-newAngle)
		sc.History.Push(&history.RotateNode{
			Scene: sc.Scene, NodeID: n.ID, NewAngle: newAngle,
		})
	default:
		if sc.moving {
			total := n.Position.Sub(sc.gesturePos)
			if !total.IsZero() {
				n.Position = sc.gesturePos
				sc.Scene.ItemMoved(n.ID, total.Scale(-1))
				sc.History.Push(&history.MoveNode{
					Scene: sc.Scene, NodeID: n.ID, By: total,
				})
			}
		}
	}

	n.EndInteraction()
	sc.moving = false
	sc.Refresh()
}

// Dragged implements fyne.Draggable.
func (sc *SchematicCanvas) Dragged(e *fyne.DragEvent) {
	scenePos := sc.toScene(e.Position)
	delta := scenePos.Sub(sc.lastScene)
	sc.lastScene = scenePos

	if sc.panning {
		sc.offset = sc.offset.Sub(delta)
		sc.Refresh()
		return
	}

	if sc.Scene.Mode() == scene.ModeWire {
		sc.Scene.WireMove(scenePos)
		sc.Refresh()
		return
	}

	n := sc.active
	if n == nil {
		return
	}

	st := sc.Scene.Settings()
	switch n.Mode() {
	case node.ModeResize:
		localDelta := n.SceneDeltaToLocal(delta)
		newPos, newSize := n.ResizeBy(n.ResizeHandleInUse(), localDelta, st)
		n.ProposeResize(newPos, newSize)
	case node.ModeRotate:
		angle := n.RotationAngleTo(scenePos)
		if sc.SnapRotation {
			angle = math.Round(angle/15) * 15
		}
		before := n.Rotation()
		n.ProposeRotate(angle)
		sc.Scene.ItemRotated(n.ID, angle-before)
	default:
		if sc.moving {
			target := n.SnapPosition(n.Position.Add(delta), st)
			moveBy := target.Sub(n.Position)
			if !moveBy.IsZero() {
				n.Position = target
				sc.Scene.ItemMoved(n.ID, moveBy)
			}
		}
	}
	sc.Refresh()
}

// DragEnd implements fyne.Draggable.
func (sc *SchematicCanvas) DragEnd() {}

// Tapped implements fyne.Tappable.
func (sc *SchematicCanvas) Tapped(e *fyne.PointEvent) {}

// DoubleTapped implements fyne.DoubleTappable. In wire mode it commits the
// wire under construction.
func (sc *SchematicCanvas) DoubleTapped(e *fyne.PointEvent) {
	if sc.Scene.Mode() != scene.ModeWire {
		return
	}
	if !sc.Scene.WireFinish() {
		sc.status("A wire must end on a node connector or another wire")
		return
	}
	sc.status("Wire committed")
	sc.Refresh()
}

// MouseMoved implements desktop.Hoverable: it drives wire routing preview.
func (sc *SchematicCanvas) MouseMoved(e *desktop.MouseEvent) {
	if sc.Scene.Mode() != scene.ModeWire || sc.Scene.PendingWire() == nil {
		return
	}
	sc.Scene.WireMove(sc.toScene(e.Position))
	sc.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (sc *SchematicCanvas) MouseIn(e *desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (sc *SchematicCanvas) MouseOut() {}

// Scrolled implements fyne.Scrollable: zoom around the cursor.
func (sc *SchematicCanvas) Scrolled(e *fyne.ScrollEvent) {
	factor := zoomStep
	if e.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}
	newZoom := sc.zoom * factor
	if newZoom < minZoom || newZoom > maxZoom {
		return
	}

	// Keep the scene point under the cursor fixed.
	before := sc.toScene(e.Position)
	sc.zoom = newZoom
	after := sc.toScene(e.Position)
	sc.offset = sc.offset.Add(before.Sub(after))
	sc.Refresh()
}

func (sc *SchematicCanvas) status(msg string) {
	if sc.OnStatus != nil {
		sc.OnStatus(msg)
	}
}
