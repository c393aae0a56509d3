// Package netlist derives an exportable electrical netlist from a scene. A
// scene net is a group of wires; the netlist resolves which node connectors
// each group touches and checks that the group is geometrically contiguous.
package netlist

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"schematic-editor/internal/scene"
	"schematic-editor/internal/wire"
	"schematic-editor/pkg/geometry"
)

// autoNetRe matches auto-generated net names like "net-001", "net-042".
var autoNetRe = regexp.MustCompile(`^net-\d+$`)

// netNamePriority returns a priority score for a net name.
// Higher is better: 0=auto-generated, 1=pin-derived, 2=signal/user name.
func netNamePriority(name string) int {
	if autoNetRe.MatchString(name) {
		return 0
	}
	if strings.Contains(name, ".") {
		return 1 // pin-derived name like "U3.7"
	}
	return 2
}

// IsLowPriorityName reports whether the name is auto-generated ("net-NNN")
// or pin-derived ("U3.7"), i.e. safe to overwrite with a signal name.
func IsLowPriorityName(name string) bool {
	return netNamePriority(name) < 2
}

// BetterNetName returns the higher-priority name between a and b.
// At equal priority the shorter name wins, so "GND" beats "GND#2".
func BetterNetName(a, b string) string {
	pa := netNamePriority(a)
	pb := netNamePriority(b)
	if pa > pb {
		return a
	}
	if pb > pa {
		return b
	}
	if len(a) <= len(b) {
		return a
	}
	return b
}

// BaseNetName strips an instance suffix (e.g. "GND#2" -> "GND").
func BaseNetName(name string) string {
	if idx := strings.LastIndex(name, "#"); idx > 0 {
		return name[:idx]
	}
	return name
}

// Pin identifies a node connector touched by a net.
type Pin struct {
	NodeID    string           `json:"node_id"`
	Connector string           `json:"connector,omitempty"`
	Position  geometry.Point2D `json:"position"`
}

// Ref returns the "node.connector" form of the pin.
func (p Pin) Ref() string {
	if p.Connector == "" {
		return p.NodeID
	}
	return fmt.Sprintf("%s.%s", p.NodeID, p.Connector)
}

// Net is one entry of an exported netlist.
type Net struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Pins    []Pin    `json:"pins"`
	WireIDs []string `json:"wire_ids"`

	// IsContiguous is false when the net's wires do not all touch each
	// other, which indicates stale grouping in a loaded document.
	IsContiguous bool `json:"is_contiguous"`
}

// Netlist is the exportable connectivity summary of a scene.
type Netlist struct {
	Name string `json:"name,omitempty"`
	Nets []Net  `json:"nets"`
}

// Build derives the netlist from the scene's current nets and geometry.
// Unnamed nets receive auto-generated names in net order, upgraded to the
// best pin reference when one exists; nets sharing a signal name get
// instance suffixes ("GND", "GND#2").
func Build(s *scene.Scene, name string) *Netlist {
	nl := &Netlist{Name: name}

	for i, sn := range s.Nets() {
		n := Net{
			ID:           fmt.Sprintf("net-%03d", i+1),
			Name:         sn.Name,
			WireIDs:      append([]string(nil), sn.WireIDs...),
			Pins:         netPins(s, sn),
			IsContiguous: len(ContiguousGroups(s, sn)) <= 1,
		}
		if n.Name == "" {
			n.Name = n.ID
		}
		if IsLowPriorityName(n.Name) {
			for _, pin := range n.Pins {
				n.Name = BetterNetName(n.Name, pin.Ref())
			}
		}
		nl.Nets = append(nl.Nets, n)
	}

	counts := make(map[string]int)
	for i := range nl.Nets {
		base := BaseNetName(nl.Nets[i].Name)
		counts[base]++
		if c := counts[base]; c > 1 {
			nl.Nets[i].Name = fmt.Sprintf("%s#%d", base, c)
		}
	}

	return nl
}

// netPins resolves which node connectors lie on the net's line segments.
func netPins(s *scene.Scene, sn *wire.WireNet) []Pin {
	var segments []geometry.Line
	for _, wid := range sn.WireIDs {
		if w := s.Wire(wid); w != nil {
			segments = append(segments, w.LineSegments()...)
		}
	}

	var pins []Pin
	for _, n := range s.Nodes() {
		abs := n.ConnectionPointsAbsolute()
		connectors := n.Connectors()
		for i, cp := range abs {
			for _, segment := range segments {
				if segment.ContainsPoint(cp, geometry.Epsilon) {
					pin := Pin{NodeID: n.ID, Position: cp}
					if i < len(connectors) {
						pin.Connector = connectors[i].Name
					}
					pins = append(pins, pin)
					break
				}
			}
		}
	}
	return pins
}

// ContiguousGroups partitions a net's wires into groups whose geometry
// actually touches: two wires are adjacent when an endpoint of one lies on a
// segment of the other. A healthy net yields a single group.
func ContiguousGroups(s *scene.Scene, sn *wire.WireNet) [][]string {
	ids := sn.WireIDs
	if len(ids) <= 1 {
		return [][]string{ids}
	}

	adj := make(map[string][]string)
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			if wiresTouch(s.Wire(a), s.Wire(b)) {
				adj[a] = append(adj[a], b)
				adj[b] = append(adj[b], a)
			}
		}
	}

	visited := make(map[string]bool)
	var groups [][]string
	for _, id := range ids {
		if visited[id] {
			continue
		}
		var group []string
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			group = append(group, curr)
			for _, next := range adj[curr] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func wiresTouch(a, b *wire.Wire) bool {
	if a == nil || b == nil {
		return false
	}
	for _, segment := range a.LineSegments() {
		for _, p := range b.PointsAbsolute() {
			if segment.ContainsPoint(p, geometry.Epsilon) {
				return true
			}
		}
	}
	for _, segment := range b.LineSegments() {
		for _, p := range a.PointsAbsolute() {
			if segment.ContainsPoint(p, geometry.Epsilon) {
				return true
			}
		}
	}
	return false
}

// SaveJSON writes the netlist as indented JSON.
func (nl *Netlist) SaveJSON(path string) error {
	data, err := json.MarshalIndent(nl, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling netlist: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Text renders the netlist in a line-oriented form, one net per paragraph.
func (nl *Netlist) Text() string {
	var sb strings.Builder
	for _, n := range nl.Nets {
		fmt.Fprintf(&sb, "%s (%s)", n.Name, n.ID)
		if !n.IsContiguous {
			sb.WriteString(" [SPLIT]")
		}
		sb.WriteByte('\n')
		for _, pin := range n.Pins {
			fmt.Fprintf(&sb, "  %s\n", pin.Ref())
		}
		fmt.Fprintf(&sb, "  wires: %s\n\n", strings.Join(n.WireIDs, ", "))
	}
	return sb.String()
}
