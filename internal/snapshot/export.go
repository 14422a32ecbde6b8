package snapshot

import "arbor/internal/model"

// Export walks every diagram and tree root and serializes the forest into
// plain records. Clone links are written as the id of the resolved
// primary; when a chain is broken the immediate original's id is kept so
// the corruption survives a round trip instead of silently healing.
func Export(f *model.Forest) *Snapshot {
	s := &Snapshot{Version: Version, NextID: f.NextID()}

	for _, d := range f.Diagrams {
		dr := DiagramRecord{ID: d.ID, Name: d.Name}
		if d.Root != nil {
			dr.Root = d.Root.ID()
		}
		for _, n := range d.Nodes {
			dr.Nodes = append(dr.Nodes, exportNode(n))
		}
		s.Diagrams = append(s.Diagrams, dr)
	}

	for _, t := range f.Trees {
		tr := TreeRecord{ID: t.ID}
		if t.Root != nil {
			tr.Root = t.Root.ID()
			for _, n := range collectTree(t.Root) {
				tr.Nodes = append(tr.Nodes, exportNode(n))
			}
		}
		s.Trees = append(s.Trees, tr)
	}

	for _, e := range f.Entries {
		s.Entries = append(s.Entries, exportNode(e))
	}
	return s
}

// collectTree flattens a fault tree in depth-first order.
func collectTree(root model.Node) []model.Node {
	seen := make(map[model.Node]bool)
	var out []model.Node
	var walk func(n model.Node)
	walk = func(n model.Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
	return out
}

func exportNode(n model.Node) NodeRecord {
	x, y := n.Position()
	rec := NodeRecord{
		ID:      n.ID(),
		Kind:    string(n.Kind()),
		Flavor:  string(n.Flavor()),
		Primary: n.IsPrimary(),
		Local:   LocalRecord{X: x, Y: y},
	}
	if !n.IsPrimary() {
		if primary, err := model.ResolveOriginal(n); err == nil {
			rec.Original = primary.ID()
		} else if o := n.Original(); o != nil {
			rec.Original = o.ID()
		}
	}
	for _, c := range n.Children() {
		rec.Children = append(rec.Children, c.ID())
	}

	switch v := n.(type) {
	case *model.GSNNode:
		rec.Shared = SharedRecord{
			Name:           v.Name,
			Description:    v.Description,
			Notes:          v.Notes,
			WorkProducts:   append([]string(nil), v.WorkProducts...),
			EvidenceLink:   v.EvidenceLink,
			EvidenceStatus: v.EvidenceStatus,
		}
		rec.Local.Collapsed = v.Collapsed
	case *model.FaultTreeNode:
		rec.Shared = SharedRecord{
			Name:         v.Name,
			Description:  v.Description,
			Rationale:    v.Rationale,
			GateType:     v.GateType,
			Severity:     v.Severity,
			SafetyGoal:   v.SafetyGoal,
			ASIL:         v.ASIL,
			Requirements: append([]model.Requirement(nil), v.Requirements...),
		}
		rec.Local.Page = v.Page
	}
	return rec
}
