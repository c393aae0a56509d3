// Package scene provides the schematic scene: the arena of nodes and wires,
// and the connectivity manager that keeps wire nets consistent with geometry.
package scene

import (
	"fmt"

	"schematic-editor/internal/node"
	"schematic-editor/internal/settings"
	"schematic-editor/internal/wire"
	"schematic-editor/pkg/geometry"
)

// Scene owns all schematic items and derives electrical connectivity from
// geometric coincidence. It is single-threaded: every operation runs to
// completion before the next one starts, and callers must serialize access
// externally when adapting it to a concurrent host.
type Scene struct {
	settings settings.Settings

	nodes     map[string]*node.Node
	nodeOrder []string

	wires     map[string]*wire.Wire
	wireOrder []string

	nets []*wire.WireNet

	mode              Mode
	newWire           *wire.Wire
	newWireSegment    bool
	invertWirePosture bool

	nextNodeID int
	nextWireID int
}

// New creates an empty scene.
func New(st settings.Settings) *Scene {
	return &Scene{
		settings:          st,
		nodes:             make(map[string]*node.Node),
		wires:             make(map[string]*wire.Wire),
		invertWirePosture: true,
	}
}

// Settings returns the scene settings.
func (s *Scene) Settings() settings.Settings {
	return s.settings
}

// SetSettings replaces the scene settings.
func (s *Scene) SetSettings(st settings.Settings) {
	s.settings = st
}

// AddNode adds a node to the scene, assigning an ID if it has none.
// Returns false on nil input.
func (s *Scene) AddNode(n *node.Node) bool {
	if n == nil {
		return false
	}
	for n.ID == "" {
		s.nextNodeID++
		id := fmt.Sprintf("node-%03d", s.nextNodeID)
		if _, taken := s.nodes[id]; !taken {
			n.ID = id
		}
	}
	if _, exists := s.nodes[n.ID]; !exists {
		s.nodeOrder = append(s.nodeOrder, n.ID)
	}
	s.nodes[n.ID] = n
	return true
}

// RemoveNode removes a node from the scene. Returns false if absent.
func (s *Scene) RemoveNode(id string) bool {
	if _, ok := s.nodes[id]; !ok {
		return false
	}
	delete(s.nodes, id)
	for i, nid := range s.nodeOrder {
		if nid == id {
			s.nodeOrder = append(s.nodeOrder[:i], s.nodeOrder[i+1:]...)
			break
		}
	}
	return true
}

// Node returns the node with the given ID, or nil.
func (s *Scene) Node(id string) *node.Node {
	return s.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (s *Scene) Nodes() []*node.Node {
	out := make([]*node.Node, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		out = append(out, s.nodes[id])
	}
	return out
}

// Wire returns the wire with the given ID, or nil.
func (s *Scene) Wire(id string) *wire.Wire {
	return s.wires[id]
}

// Wires returns all wires in insertion order.
func (s *Scene) Wires() []*wire.Wire {
	out := make([]*wire.Wire, 0, len(s.wireOrder))
	for _, id := range s.wireOrder {
		out = append(out, s.wires[id])
	}
	return out
}

// Nets returns all wire nets.
func (s *Scene) Nets() []*wire.WireNet {
	return s.nets
}

// AddWire adds a wire to the scene and attaches it to the net it is
// geometrically coincident with, creating a new net when there is none.
// Returns false on nil input.
func (s *Scene) AddWire(w *wire.Wire) bool {
	if w == nil {
		return false
	}
	s.registerWire(w)
	s.attachWire(w)
	return true
}

// registerWire places a wire in the arena, assigning an ID if needed.
func (s *Scene) registerWire(w *wire.Wire) {
	for w.ID == "" {
		s.nextWireID++
		id := fmt.Sprintf("wire-%03d", s.nextWireID)
		if _, taken := s.wires[id]; !taken {
			w.ID = id
		}
	}
	if _, exists := s.wires[w.ID]; !exists {
		s.wireOrder = append(s.wireOrder, w.ID)
	}
	s.wires[w.ID] = w
}

// attachWire runs net formation for a wire already in the arena.
//
// Precedence: first, any point of the wire lying on an existing net's line
// segments joins that net. Second, any existing wire endpoint lying on one
// of the new wire's segments joins that wire's net. Both directions must be
// tried because coincidence is not symmetric at segment boundaries. When
// neither matches, the wire gets a net of its own.
func (s *Scene) attachWire(w *wire.Wire) {
	points := w.PointsAbsolute()

	for _, net := range s.nets {
		for _, segment := range s.netLineSegments(net) {
			for _, p := range points {
				if segment.ContainsPoint(p, geometry.Epsilon) {
					net.AddWire(w.ID)
					return
				}
			}
		}
	}

	segments := w.LineSegments()
	for _, net := range s.nets {
		for _, wid := range net.WireIDs {
			other := s.wires[wid]
			if other == nil || other == w {
				continue
			}
			for _, op := range other.PointsAbsolute() {
				for _, segment := range segments {
					if segment.ContainsPoint(op, geometry.Epsilon) {
						net.AddWire(w.ID)
						return
					}
				}
			}
		}
	}

	newNet := wire.NewNet()
	newNet.AddWire(w.ID)
	s.nets = append(s.nets, newNet)
}

// RemoveWire removes a wire from the scene and from its net, destroying the
// net if it drops to zero wires. Returns false if the wire is not in the
// scene.
func (s *Scene) RemoveWire(id string) bool {
	if _, ok := s.wires[id]; !ok {
		return false
	}
	s.detachWire(id)
	delete(s.wires, id)
	for i, wid := range s.wireOrder {
		if wid == id {
			s.wireOrder = append(s.wireOrder[:i], s.wireOrder[i+1:]...)
			break
		}
	}
	return true
}

// detachWire removes a wire from whichever net contains it. Empty nets are
// destroyed immediately; a wire belongs to at most one net.
func (s *Scene) detachWire(id string) {
	for i, net := range s.nets {
		if !net.Contains(id) {
			continue
		}
		net.RemoveWire(id)
		net.Highlighted = false
		if net.WireCount() == 0 {
			s.nets = append(s.nets[:i], s.nets[i+1:]...)
		}
		return
	}
}

// Net returns the net containing the given wire, or nil.
func (s *Scene) Net(wireID string) *wire.WireNet {
	for _, net := range s.nets {
		if net.Contains(wireID) {
			return net
		}
	}
	return nil
}

// NetsAt returns all nets with a line segment containing the given scene
// point.
func (s *Scene) NetsAt(p geometry.Point2D) []*wire.WireNet {
	var out []*wire.WireNet
	for _, net := range s.nets {
		for _, segment := range s.netLineSegments(net) {
			if segment.ContainsPoint(p, geometry.Epsilon) {
				out = append(out, net)
				break
			}
		}
	}
	return out
}

// NetsByName returns the nets sharing the given net's non-empty name,
// case-insensitively, including the net itself. Naming links nets for
// highlighting only; their wire sets stay separate.
func (s *Scene) NetsByName(n *wire.WireNet) []*wire.WireNet {
	if n == nil || n.Name == "" {
		return nil
	}
	var out []*wire.WireNet
	for _, net := range s.nets {
		if net.SameName(n) {
			out = append(out, net)
		}
	}
	return out
}

// SetNetHighlighted sets a net's highlight state and propagates it to every
// other net sharing its name.
func (s *Scene) SetNetHighlighted(n *wire.WireNet, highlighted bool) {
	if n == nil {
		return
	}
	n.Highlighted = highlighted
	for _, other := range s.NetsByName(n) {
		if other != n {
			other.Highlighted = highlighted
		}
	}
}

// netLineSegments collects the scene-space line segments of every wire in
// the net.
func (s *Scene) netLineSegments(n *wire.WireNet) []geometry.Line {
	var segments []geometry.Line
	for _, wid := range n.WireIDs {
		if w := s.wires[wid]; w != nil {
			segments = append(segments, w.LineSegments()...)
		}
	}
	return segments
}

// simplifyNet removes redundant collinear and duplicate vertices from every
// wire in the net.
func (s *Scene) simplifyNet(n *wire.WireNet) {
	if n == nil {
		return
	}
	for _, wid := range n.WireIDs {
		if w := s.wires[wid]; w != nil {
			w.Simplify()
		}
	}
}

// RestoreNet registers the given wires in the arena and adds the net as-is,
// bypassing net formation. Used when rebuilding a scene from a persisted
// document, where net grouping is already known. Returns false when the net
// is nil or empty.
func (s *Scene) RestoreNet(n *wire.WireNet, ws []*wire.Wire) bool {
	if n == nil || len(ws) == 0 {
		return false
	}
	for _, w := range ws {
		s.registerWire(w)
		n.AddWire(w.ID)
	}
	s.nets = append(s.nets, n)
	return true
}

// Clear removes every item and net from the scene.
func (s *Scene) Clear() {
	s.nodes = make(map[string]*node.Node)
	s.nodeOrder = nil
	s.wires = make(map[string]*wire.Wire)
	s.wireOrder = nil
	s.nets = nil
	s.newWire = nil
	s.newWireSegment = false
}

// ConnectionPoints returns the absolute connection points of every node.
func (s *Scene) ConnectionPoints() []geometry.Point2D {
	var out []geometry.Point2D
	for _, id := range s.nodeOrder {
		out = append(out, s.nodes[id].ConnectionPointsAbsolute()...)
	}
	return out
}
