// Command netcheck loads a schematic project and reports its wire nets.
package main

import (
	"flag"
	"fmt"
	"os"

	"schematic-editor/internal/netlist"
	"schematic-editor/internal/project"
)

func main() {
	projectPath := flag.String("project", "", "Path to schematic project JSON")
	rebuild := flag.Bool("rebuild", false, "Re-run net formation instead of trusting stored grouping")
	jsonOut := flag.String("json", "", "Write the netlist to a JSON file")
	flag.Parse()

	if *projectPath == "" {
		fmt.Println("Usage: netcheck -project <path> [-rebuild] [-json out.json]")
		os.Exit(1)
	}

	doc, err := project.Load(*projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
		os.Exit(1)
	}

	s := doc.ToScene()
	fmt.Printf("Project %q: %d nodes, %d wires, %d nets\n\n",
		doc.Name, len(s.Nodes()), len(s.Wires()), len(s.Nets()))

	if *rebuild {
		// Detach every wire and re-run net formation from scratch. A net
		// count differing from the stored one means the file's grouping no
		// longer matches the geometry.
		wires := s.Wires()
		stored := len(s.Nets())
		for _, w := range wires {
			s.RemoveWire(w.ID)
		}
		for _, w := range wires {
			s.AddWire(w)
		}
		fmt.Printf("Rebuilt: %d nets (stored %d)\n\n", len(s.Nets()), stored)
	}

	nl := netlist.Build(s, doc.Name)
	fmt.Print(nl.Text())

	split := 0
	for _, n := range nl.Nets {
		if !n.IsContiguous {
			split++
		}
	}
	if split > 0 {
		fmt.Fprintf(os.Stderr, "%d net(s) are not contiguous\n", split)
		os.Exit(2)
	}

	if *jsonOut != "" {
		if err := nl.SaveJSON(*jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write netlist: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *jsonOut)
	}
}
