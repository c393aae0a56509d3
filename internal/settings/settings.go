// Package settings provides the editor configuration passed explicitly into
// geometry operations. It is a plain value type so transform math stays pure.
package settings

import (
	"math"

	"schematic-editor/pkg/geometry"
)

// Settings holds grid and interaction parameters.
type Settings struct {
	GridSize               int     `json:"grid_size"`                // Grid cell size in scene units
	GridPointSize          int     `json:"grid_point_size"`          // Painted grid dot size
	ShowGrid               bool    `json:"show_grid"`                // Draw the background grid
	ResizeHandleSize       float64 `json:"resize_handle_size"`       // Half-extent of resize/rotate handles
	HighlightRectPadding   float64 `json:"highlight_rect_padding"`   // Padding around highlighted items
	SnapToGrid             bool    `json:"snap_to_grid"`             // Snap positions and sizes to the grid
	RouteStraightAngles    bool    `json:"route_straight_angles"`    // New wire segments are horizontal/vertical
	PreserveStraightAngles bool    `json:"preserve_straight_angles"` // Point edits keep segments orthogonal
}

// Default returns the standard editor settings.
func Default() Settings {
	return Settings{
		GridSize:               20,
		GridPointSize:          1,
		ShowGrid:               true,
		ResizeHandleSize:       3,
		HighlightRectPadding:   10,
		SnapToGrid:             true,
		RouteStraightAngles:    true,
		PreserveStraightAngles: true,
	}
}

// SnapPoint snaps a point to the nearest grid intersection. Returns the point
// unchanged when grid snapping is disabled or the grid size is degenerate.
func (s Settings) SnapPoint(p geometry.Point2D) geometry.Point2D {
	if !s.SnapToGrid || s.GridSize <= 0 {
		return p
	}
	g := float64(s.GridSize)
	return geometry.Point2D{
		X: math.Round(p.X/g) * g,
		Y: math.Round(p.Y/g) * g,
	}
}

// SnapSize snaps a size to whole grid cells. Returns the size unchanged when
// grid snapping is disabled or the grid size is degenerate.
func (s Settings) SnapSize(sz geometry.Size) geometry.Size {
	if !s.SnapToGrid || s.GridSize <= 0 {
		return sz
	}
	g := float64(s.GridSize)
	return geometry.Size{
		Width:  math.Round(sz.Width/g) * g,
		Height: math.Round(sz.Height/g) * g,
	}
}
