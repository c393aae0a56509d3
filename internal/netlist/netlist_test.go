package netlist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schematic-editor/internal/node"
	"schematic-editor/internal/scene"
	"schematic-editor/internal/settings"
	"schematic-editor/internal/wire"
	"schematic-editor/pkg/geometry"
)

func TestNetNamePriority(t *testing.T) {
	assert.True(t, IsLowPriorityName("net-001"))
	assert.True(t, IsLowPriorityName("U3.7"))
	assert.False(t, IsLowPriorityName("GND"))

	assert.Equal(t, "GND", BetterNetName("net-002", "GND"))
	assert.Equal(t, "GND", BetterNetName("GND", "U3.7"))
	assert.Equal(t, "GND", BetterNetName("GND#2", "GND"))
	assert.Equal(t, "net-001", BetterNetName("net-001", "net-0002"))

	assert.Equal(t, "GND", BaseNetName("GND#2"))
	assert.Equal(t, "GND", BaseNetName("GND"))
}

func buildScene() *scene.Scene {
	s := scene.New(settings.Default())

	n := node.New("u1")
	n.SetSize(100, 100)
	n.AddConnector(node.NewConnector("out", geometry.NewPoint2D(100, 40)))
	s.AddNode(n)

	w := wire.New()
	w.AppendPoint(geometry.NewPoint2D(100, 40))
	w.AppendPoint(geometry.NewPoint2D(300, 40))
	w.Commit()
	s.AddWire(w)

	return s
}

func TestBuild(t *testing.T) {
	s := buildScene()
	nl := Build(s, "board")

	require.Len(t, nl.Nets, 1)
	n := nl.Nets[0]
	assert.Equal(t, "net-001", n.ID)
	assert.Equal(t, "u1.out", n.Name) // pin reference beats the auto name
	assert.True(t, n.IsContiguous)
	require.Len(t, n.Pins, 1)
	assert.Equal(t, "u1.out", n.Pins[0].Ref())
	assert.Equal(t, geometry.NewPoint2D(100, 40), n.Pins[0].Position)
}

func TestBuildNamedNet(t *testing.T) {
	s := buildScene()
	s.Nets()[0].Name = "CLK"

	nl := Build(s, "board")
	require.Len(t, nl.Nets, 1)
	assert.Equal(t, "CLK", nl.Nets[0].Name)
}

func TestContiguousGroups(t *testing.T) {
	s := scene.New(settings.Default())

	// A stale document can group wires that no longer touch.
	w1 := wire.New()
	w1.ID = "wire-001"
	w1.AppendPoint(geometry.NewPoint2D(0, 0))
	w1.AppendPoint(geometry.NewPoint2D(100, 0))
	w2 := wire.New()
	w2.ID = "wire-002"
	w2.AppendPoint(geometry.NewPoint2D(0, 200))
	w2.AppendPoint(geometry.NewPoint2D(100, 200))
	net := wire.NewNet()
	require.True(t, s.RestoreNet(net, []*wire.Wire{w1, w2}))

	groups := ContiguousGroups(s, net)
	assert.Len(t, groups, 2)

	nl := Build(s, "stale")
	require.Len(t, nl.Nets, 1)
	assert.Equal(t, "net-001", nl.Nets[0].Name) // no pins, keeps the auto name
	assert.False(t, nl.Nets[0].IsContiguous)
	assert.Contains(t, nl.Text(), "[SPLIT]")
}

func TestBuildDuplicateNetNames(t *testing.T) {
	s := scene.New(settings.Default())

	w1 := wire.New()
	w1.AppendPoint(geometry.NewPoint2D(0, 0))
	w1.AppendPoint(geometry.NewPoint2D(100, 0))
	w1.Commit()
	s.AddWire(w1)

	w2 := wire.New()
	w2.AppendPoint(geometry.NewPoint2D(0, 500))
	w2.AppendPoint(geometry.NewPoint2D(100, 500))
	w2.Commit()
	s.AddWire(w2)

	// Same-named scene nets stay separate; the export disambiguates them
	// with instance suffixes.
	nets := s.Nets()
	require.Len(t, nets, 2)
	nets[0].Name = "GND"
	nets[1].Name = "GND"

	nl := Build(s, "board")
	require.Len(t, nl.Nets, 2)
	assert.Equal(t, "GND", nl.Nets[0].Name)
	assert.Equal(t, "GND#2", nl.Nets[1].Name)
	assert.Equal(t, "GND", BaseNetName(nl.Nets[1].Name))
}

func TestSaveJSON(t *testing.T) {
	s := buildScene()
	nl := Build(s, "board")

	path := filepath.Join(t.TempDir(), "netlist.json")
	require.NoError(t, nl.SaveJSON(path))
	assert.FileExists(t, path)
}
