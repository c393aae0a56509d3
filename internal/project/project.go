// Package project provides schematic document persistence. It is the
// external serializer of the scene: the connectivity core hands it the
// persisted-state shape and never serializes itself.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"schematic-editor/internal/node"
	"schematic-editor/internal/scene"
	"schematic-editor/internal/settings"
	"schematic-editor/internal/wire"
	"schematic-editor/pkg/geometry"
)

// Document is the top level of a schematic project file (.schproj).
type Document struct {
	Version  int               `json:"version"`
	Name     string            `json:"name"`
	Created  time.Time         `json:"created"`
	Modified time.Time         `json:"modified"`
	Settings settings.Settings `json:"settings"`
	Nodes    []NodeRecord      `json:"nodes"`
	Nets     []NetRecord       `json:"nets"`
}

// NodeRecord is the persisted shape of a node: body size, rotation, and the
// non-special connectors with their local positions and snap policies.
type NodeRecord struct {
	ID          string            `json:"id"`
	Position    geometry.Point2D  `json:"position"`
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	Rotation    float64           `json:"rotation"`
	AllowResize bool              `json:"allow_mouse_resize"`
	AllowRotate bool              `json:"allow_mouse_rotate"`
	Connectors  []ConnectorRecord `json:"connectors"`
}

// ConnectorRecord is the persisted shape of a connector.
type ConnectorRecord struct {
	Name       string           `json:"name,omitempty"`
	Pos        geometry.Point2D `json:"pos"`
	SnapPolicy node.SnapPolicy  `json:"snap_policy"`
}

// NetRecord is the persisted shape of a wire net: its name and its wires
// with their ordered point lists.
type NetRecord struct {
	Name  string       `json:"name,omitempty"`
	Wires []WireRecord `json:"wires"`
}

// WireRecord is the persisted shape of a wire.
type WireRecord struct {
	ID       string           `json:"id"`
	Position geometry.Point2D `json:"position"`
	Points   []wire.WirePoint `json:"points"`
}

// New creates an empty document.
func New(name string) *Document {
	now := time.Now()
	return &Document{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Settings: settings.Default(),
	}
}

// FromScene captures the persisted-state shape of a scene.
func FromScene(name string, s *scene.Scene) *Document {
	doc := New(name)
	doc.Settings = s.Settings()

	for _, n := range s.Nodes() {
		record := NodeRecord{
			ID:          n.ID,
			Position:    n.Position,
			Width:       n.Width(),
			Height:      n.Height(),
			Rotation:    n.Rotation(),
			AllowResize: n.AllowResize,
			AllowRotate: n.AllowRotate,
		}
		for _, c := range n.PersistentConnectors() {
			record.Connectors = append(record.Connectors, ConnectorRecord{
				Name:       c.Name,
				Pos:        c.Pos,
				SnapPolicy: c.SnapPolicy,
			})
		}
		doc.Nodes = append(doc.Nodes, record)
	}

	for _, net := range s.Nets() {
		record := NetRecord{Name: net.Name}
		for _, wid := range net.WireIDs {
			w := s.Wire(wid)
			if w == nil {
				continue
			}
			record.Wires = append(record.Wires, WireRecord{
				ID:       w.ID,
				Position: w.Position,
				Points:   w.Points,
			})
		}
		doc.Nets = append(doc.Nets, record)
	}

	return doc
}

// ToScene rebuilds a scene from the document, preserving the stored net
// grouping rather than re-running net formation.
func (d *Document) ToScene() *scene.Scene {
	s := scene.New(d.Settings)

	for _, record := range d.Nodes {
		n := node.New(record.ID)
		n.Position = record.Position
		n.SetSize(record.Width, record.Height)
		n.SetRotation(record.Rotation)
		n.AllowResize = record.AllowResize
		n.AllowRotate = record.AllowRotate
		for _, cr := range record.Connectors {
			c := node.NewConnector(cr.Name, cr.Pos)
			n.AddConnector(c)
			c.SnapPolicy = cr.SnapPolicy
		}
		s.AddNode(n)
	}

	for _, record := range d.Nets {
		net := wire.NewNet()
		net.Name = record.Name
		var ws []*wire.Wire
		for _, wr := range record.Wires {
			w := &wire.Wire{
				ID:       wr.ID,
				Position: wr.Position,
				Points:   wr.Points,
			}
			w.Commit()
			ws = append(ws, w)
		}
		s.RestoreNet(net, ws)
	}

	return s
}

// Save writes the document to a JSON file.
func (d *Document) Save(path string) error {
	d.Modified = time.Now()
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a document from a JSON file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return &doc, nil
}
