package wire

import "strings"

// WireNet is an unordered set of wires considered one electrical net.
// Membership is stored as wire IDs into the scene's wire arena; the net does
// not own the wires' graphical lifetime. A net always has at least one wire;
// the scene destroys nets that drop to zero wires.
type WireNet struct {
	Name        string   `json:"name,omitempty"`
	WireIDs     []string `json:"wires"`
	Highlighted bool     `json:"-"`
}

// NewNet creates an empty, unnamed net.
func NewNet() *WireNet {
	return &WireNet{}
}

// AddWire adds a wire ID to the net. Duplicates are ignored.
func (n *WireNet) AddWire(id string) {
	if id == "" || n.Contains(id) {
		return
	}
	n.WireIDs = append(n.WireIDs, id)
}

// RemoveWire removes a wire ID from the net. Returns true if it was present.
func (n *WireNet) RemoveWire(id string) bool {
	for i, wid := range n.WireIDs {
		if wid == id {
			n.WireIDs = append(n.WireIDs[:i], n.WireIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Contains returns true if the net holds the given wire ID.
func (n *WireNet) Contains(id string) bool {
	for _, wid := range n.WireIDs {
		if wid == id {
			return true
		}
	}
	return false
}

// WireCount returns the number of wires in the net.
func (n *WireNet) WireCount() int {
	return len(n.WireIDs)
}

// SameName returns true if both nets carry the same non-empty name,
// compared case-insensitively. Same-named nets are visually linked for
// highlighting but remain separate connectivity groups.
func (n *WireNet) SameName(other *WireNet) bool {
	if n.Name == "" || other == nil || other.Name == "" {
		return false
	}
	return strings.EqualFold(n.Name, other.Name)
}
