package snapshot

import (
	"fmt"
	"strconv"

	"arbor/internal/model"
)

// Import reconstructs a forest from records in two passes: pass one creates
// every node object and indexes it by serialized id, pass two resolves
// original and child references through that index so forward references
// resolve correctly regardless of list order.
//
// A child id that is missing from the document is structural corruption and
// fails the import; a missing original id leaves the clone's chain broken,
// which the registry reports rather than hides.
func Import(s *Snapshot) (*model.Forest, error) {
	f := model.NewForest()
	byID := make(map[string]model.Node)

	// Pass 1: create node objects.
	maxID := 0
	create := func(rec NodeRecord) (model.Node, error) {
		if _, dup := byID[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %s", rec.ID)
		}
		var n model.Node
		switch model.Flavor(rec.Flavor) {
		case model.FlavorArgument:
			g := model.RehydrateGSNNode(rec.ID, model.Kind(rec.Kind), rec.Primary)
			g.Name = rec.Shared.Name
			g.Description = rec.Shared.Description
			g.Notes = rec.Shared.Notes
			g.WorkProducts = append([]string(nil), rec.Shared.WorkProducts...)
			g.EvidenceLink = rec.Shared.EvidenceLink
			g.EvidenceStatus = rec.Shared.EvidenceStatus
			g.Collapsed = rec.Local.Collapsed
			n = g
		case model.FlavorFaultTree:
			t := model.RehydrateFaultTreeNode(rec.ID, model.Kind(rec.Kind), rec.Primary)
			t.Name = rec.Shared.Name
			t.Description = rec.Shared.Description
			t.Rationale = rec.Shared.Rationale
			t.GateType = rec.Shared.GateType
			t.Severity = rec.Shared.Severity
			t.SafetyGoal = rec.Shared.SafetyGoal
			t.ASIL = rec.Shared.ASIL
			t.Requirements = append([]model.Requirement(nil), rec.Shared.Requirements...)
			t.Page = rec.Local.Page
			if v, err := strconv.Atoi(rec.ID); err == nil && v > maxID {
				maxID = v
			}
			n = t
		default:
			return nil, fmt.Errorf("node %s: unknown flavor %q", rec.ID, rec.Flavor)
		}
		n.SetPosition(rec.Local.X, rec.Local.Y)
		byID[rec.ID] = n
		return n, nil
	}

	for _, dr := range s.Diagrams {
		d := &model.Diagram{ID: dr.ID, Name: dr.Name}
		for _, rec := range dr.Nodes {
			n, err := create(rec)
			if err != nil {
				return nil, fmt.Errorf("diagram %s: %w", dr.ID, err)
			}
			g, ok := n.(*model.GSNNode)
			if !ok {
				return nil, fmt.Errorf("diagram %s: node %s is not an argumentation node", dr.ID, rec.ID)
			}
			d.Nodes = append(d.Nodes, g)
			if rec.ID == dr.Root {
				d.Root = g
			}
		}
		f.AddDiagram(d)
	}

	for _, tr := range s.Trees {
		t := &model.Tree{ID: tr.ID}
		for _, rec := range tr.Nodes {
			n, err := create(rec)
			if err != nil {
				return nil, fmt.Errorf("tree %s: %w", tr.ID, err)
			}
			ft, ok := n.(*model.FaultTreeNode)
			if !ok {
				return nil, fmt.Errorf("tree %s: node %s is not a fault-tree node", tr.ID, rec.ID)
			}
			if rec.ID == tr.Root {
				t.Root = ft
			}
		}
		f.Trees = append(f.Trees, t)
	}

	for _, rec := range s.Entries {
		n, err := create(rec)
		if err != nil {
			return nil, fmt.Errorf("entries: %w", err)
		}
		ft, ok := n.(*model.FaultTreeNode)
		if !ok {
			return nil, fmt.Errorf("entries: node %s is not a fault-tree node", rec.ID)
		}
		f.Entries = append(f.Entries, ft)
	}

	// Pass 2: resolve references through the id index.
	link := func(rec NodeRecord) error {
		n := byID[rec.ID]
		for _, cid := range rec.Children {
			child, ok := byID[cid]
			if !ok {
				return fmt.Errorf("node %s: child %s not in document", rec.ID, cid)
			}
			n.AddChild(child)
		}
		if !rec.Primary && rec.Original != "" {
			if orig, ok := byID[rec.Original]; ok {
				n.SetOriginal(orig)
			}
		}
		n.RefreshLabel()
		return nil
	}
	for _, dr := range s.Diagrams {
		for _, rec := range dr.Nodes {
			if err := link(rec); err != nil {
				return nil, err
			}
		}
	}
	for _, tr := range s.Trees {
		for _, rec := range tr.Nodes {
			if err := link(rec); err != nil {
				return nil, err
			}
		}
	}
	for _, rec := range s.Entries {
		if err := link(rec); err != nil {
			return nil, err
		}
	}

	next := s.NextID
	if next <= maxID {
		next = maxID + 1
	}
	f.SetNextID(next)
	return f, nil
}
