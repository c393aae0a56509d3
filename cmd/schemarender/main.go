// Command schemarender renders a schematic project to a PNG image.
package main

import (
	"flag"
	"fmt"
	"os"

	"schematic-editor/internal/project"
	"schematic-editor/internal/render"
	"schematic-editor/pkg/geometry"
)

func main() {
	projectPath := flag.String("project", "", "Path to schematic project JSON")
	outPath := flag.String("out", "schematic.png", "Output PNG path")
	width := flag.Int("width", 1600, "Output width in pixels")
	height := flag.Int("height", 1200, "Output height in pixels")
	scale := flag.Float64("scale", 1.0, "Scene units to pixels")
	offsetX := flag.Float64("x", 0, "Scene x mapped to the left edge")
	offsetY := flag.Float64("y", 0, "Scene y mapped to the top edge")
	flag.Parse()

	if *projectPath == "" {
		fmt.Println("Usage: schemarender -project <path> [-out schematic.png] [-width 1600] [-height 1200]")
		os.Exit(1)
	}

	doc, err := project.Load(*projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
		os.Exit(1)
	}

	s := doc.ToScene()
	opts := render.Options{
		Width:  *width,
		Height: *height,
		Scale:  *scale,
		Offset: geometry.NewPoint2D(*offsetX, *offsetY),
	}
	if err := render.SavePNG(*outPath, s, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %d nodes and %d wires to %s (%dx%d)\n",
		len(s.Nodes()), len(s.Wires()), *outPath, *width, *height)
}
