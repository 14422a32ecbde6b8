package snapshot

import (
	"encoding/json"
	"reflect"
)

// Clone returns a deep copy of the snapshot via a json round trip. The
// records are plain data, so the encoding is lossless and the copy shares
// nothing with the receiver.
func (s *Snapshot) Clone() *Snapshot {
	raw, err := json.Marshal(s)
	if err != nil {
		// Records contain only primitives and slices of primitives;
		// Marshal cannot fail on them.
		panic("snapshot: clone: " + err.Error())
	}
	var out Snapshot
	if err := json.Unmarshal(raw, &out); err != nil {
		panic("snapshot: clone: " + err.Error())
	}
	return &out
}

// StripLayout returns a copy with every per-instance layout field zeroed
// (positions, collapse state). The history manager compares stripped
// snapshots to recognize gestures that only move things around.
func (s *Snapshot) StripLayout() *Snapshot {
	out := s.Clone()
	strip := func(nodes []NodeRecord) {
		for i := range nodes {
			nodes[i].Local.X = 0
			nodes[i].Local.Y = 0
			nodes[i].Local.Collapsed = false
		}
	}
	for i := range out.Diagrams {
		strip(out.Diagrams[i].Nodes)
	}
	for i := range out.Trees {
		strip(out.Trees[i].Nodes)
	}
	strip(out.Entries)
	return out
}

// Equal reports field-wise equality of two snapshots.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return reflect.DeepEqual(s, other)
}
