// Package render rasterizes a scene into an image for export.
package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/vector"

	"schematic-editor/internal/scene"
	"schematic-editor/pkg/colorutil"
	"schematic-editor/pkg/geometry"
)

var (
	colorBackground = colorutil.White
	colorGrid       = colorutil.Gray
	colorBody       = colorutil.Green
	colorBodyEdge   = colorutil.Black
	colorConnector  = colorutil.Indigo
	colorWire       = colorutil.Black
	colorHighlight  = colorutil.WithAlpha(colorutil.Lighten(colorutil.Blue, 0.35), 90)
)

const (
	wireWidth      = 1.5
	connectorSize  = 6.0
	bodyEdgeWidth  = 1.5
	highlightWidth = 6.0
)

// Options configures rendering.
type Options struct {
	Width  int // Output image width in pixels
	Height int // Output image height in pixels
	Scale  float64
	Offset geometry.Point2D // Scene point mapped to the image origin
}

// DefaultOptions renders the scene's bounding region at 1:1 scale.
func DefaultOptions(width, height int) Options {
	return Options{Width: width, Height: height, Scale: 1}
}

// Render rasterizes the scene.
func Render(s *scene.Scene, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	fill(img, colorBackground)

	view := geometry.Scaling(opts.Scale, opts.Scale).
		Compose(geometry.Translation(-opts.Offset.X, -opts.Offset.Y))

	st := s.Settings()
	if st.ShowGrid && st.GridSize > 0 {
		drawGrid(img, view, float64(st.GridSize))
	}

	viewport := geometry.NewRect(0, 0, float64(opts.Width), float64(opts.Height))

	for _, n := range s.Nodes() {
		pivot := n.Pivot().Add(n.Position)
		corners := n.SizeRect().Corners()
		for i, c := range corners {
			corners[i] = view.Apply(c.Add(n.Position).RotateAround(pivot, n.Rotation()))
		}

		// Skip nodes entirely outside the image, with margin for the
		// connector glyphs on the body outline.
		bounds := geometry.BoundingBox(corners)
		margin := connectorSize * opts.Scale
		bounds = geometry.NewRect(bounds.X-margin, bounds.Y-margin,
			bounds.Width+2*margin, bounds.Height+2*margin)
		if !bounds.Intersects(viewport) {
			continue
		}

		fillPolygon(img, corners, colorBody)
		strokePolygon(img, corners, bodyEdgeWidth*opts.Scale, colorBodyEdge)

		for _, cp := range n.ConnectionPointsAbsolute() {
			p := view.Apply(cp)
			half := connectorSize * opts.Scale / 2
			fillPolygon(img, []geometry.Point2D{
				{X: p.X - half, Y: p.Y - half},
				{X: p.X + half, Y: p.Y - half},
				{X: p.X + half, Y: p.Y + half},
				{X: p.X - half, Y: p.Y + half},
			}, colorConnector)
		}
	}

	for _, net := range s.Nets() {
		for _, wid := range net.WireIDs {
			w := s.Wire(wid)
			if w == nil {
				continue
			}
			for _, segment := range w.LineSegments() {
				p1 := view.Apply(segment.P1)
				p2 := view.Apply(segment.P2)
				if net.Highlighted {
					strokeSegment(img, p1, p2, highlightWidth*opts.Scale, colorHighlight)
				}
				strokeSegment(img, p1, p2, wireWidth*opts.Scale, colorWire)
			}
		}
	}

	return img
}

// SavePNG renders the scene and writes it to a PNG file.
func SavePNG(path string, s *scene.Scene, opts Options) error {
	img := Render(s, opts)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawGrid(img *image.RGBA, view geometry.AffineTransform, grid float64) {
	inv, ok := view.Inverse()
	if !ok {
		return
	}
	b := img.Bounds()
	topLeft := inv.Apply(geometry.NewPoint2D(float64(b.Min.X), float64(b.Min.Y)))
	bottomRight := inv.Apply(geometry.NewPoint2D(float64(b.Max.X), float64(b.Max.Y)))

	startX := float64(int(topLeft.X/grid)) * grid
	startY := float64(int(topLeft.Y/grid)) * grid
	for x := startX; x < bottomRight.X; x += grid {
		for y := startY; y < bottomRight.Y; y += grid {
			p := view.Apply(geometry.NewPoint2D(x, y))
			img.SetRGBA(int(p.X), int(p.Y), colorGrid)
		}
	}
}

// fillPolygon fills a polygon using the x/image vector rasterizer.
func fillPolygon(img *image.RGBA, points []geometry.Point2D, c color.RGBA) {
	if len(points) < 3 {
		return
	}
	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

// strokeSegment draws a line segment as a filled quad of the given width.
func strokeSegment(img *image.RGBA, p1, p2 geometry.Point2D, width float64, c color.RGBA) {
	d := p2.Sub(p1)
	length := d.Length()
	if length == 0 {
		return
	}
	// Perpendicular half-width offset
	n := geometry.NewPoint2D(-d.Y/length, d.X/length).Scale(width / 2)
	fillPolygon(img, []geometry.Point2D{
		p1.Add(n), p2.Add(n), p2.Sub(n), p1.Sub(n),
	}, c)
}

func strokePolygon(img *image.RGBA, points []geometry.Point2D, width float64, c color.RGBA) {
	for i := range points {
		strokeSegment(img, points[i], points[(i+1)%len(points)], width, c)
	}
}
