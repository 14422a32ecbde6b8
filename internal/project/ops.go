package project

import (
	"fmt"

	"go.uber.org/zap"

	"arbor/internal/model"
)

// AddDiagram creates an argumentation page rooted at a fresh node of kind.
func (p *Project) AddDiagram(name string, rootKind model.Kind, rootName string) *model.Diagram {
	root := model.NewGSNNode(rootKind, rootName)
	d := model.NewDiagram(name, root)
	p.forest.AddDiagram(d)
	p.registry.Add(root)
	return d
}

// AddArgumentNode creates a fresh primary node on d, attached below parent
// when parent is non-nil.
func (p *Project) AddArgumentNode(d *model.Diagram, parent *model.GSNNode, kind model.Kind, name string) *model.GSNNode {
	n := model.NewGSNNode(kind, name)
	d.AddNode(n)
	if parent != nil {
		parent.AddChild(n)
	}
	p.registry.Add(n)
	return n
}

// AddTree creates a fault tree rooted at a fresh top event.
func (p *Project) AddTree(name string) *model.Tree {
	root := p.forest.NewFaultTreeNode(model.KindTopEvent, name)
	t := p.forest.AddTree(root)
	p.registry.Add(root)
	return t
}

// AddFaultTreeNode creates a fresh primary node below parent.
func (p *Project) AddFaultTreeNode(parent *model.FaultTreeNode, kind model.Kind, name string) *model.FaultTreeNode {
	n := p.forest.NewFaultTreeNode(kind, name)
	if parent != nil {
		parent.AddChild(n)
	}
	p.registry.Add(n)
	return n
}

// AddEntry registers an analysis worksheet row.
func (p *Project) AddEntry(n *model.FaultTreeNode) {
	p.forest.Entries = append(p.forest.Entries, n)
}

// Clone creates a non-primary instance of src, placed per the configured
// offset, and registers it. For argumentation nodes the clone lands on d
// (and links below parent when src is a contextual kind); fault-tree
// clones attach below parent when given, otherwise they become worksheet
// entries.
func (p *Project) Clone(src model.Node, d *model.Diagram, parent model.Node) (model.Node, error) {
	clone, err := p.forest.CloneNode(src, parent, p.cfg.Clone.OffsetX, p.cfg.Clone.OffsetY)
	if err != nil {
		return nil, err
	}
	switch c := clone.(type) {
	case *model.GSNNode:
		if d == nil {
			return nil, fmt.Errorf("argument clone needs a target diagram")
		}
		d.AddNode(c)
	case *model.FaultTreeNode:
		if parent != nil {
			if _, ok := parent.(*model.FaultTreeNode); !ok {
				return nil, fmt.Errorf("fault-tree clone parent must be a fault-tree node")
			}
			parent.AddChild(c)
		} else {
			p.forest.Entries = append(p.forest.Entries, c)
		}
	}
	p.registry.Add(clone)
	return clone, nil
}

// Delete removes exactly the given instance. Deleting a clone only
// unregisters it. Deleting a primary that still has clones promotes the
// oldest remaining clone to primary: it takes over the logical identity,
// the other clones re-point at it and every label is recomputed. Cascade
// deletion would destroy work on other pages, and leaving orphans would
// break chain resolution.
func (p *Project) Delete(n model.Node) error {
	p.detach(n)
	p.registry.Remove(n)

	if n.IsPrimary() {
		identity := n.ID()
		survivors := p.registry.Instances(identity)
		if len(survivors) > 0 {
			heir := survivors[0]
			heir.MakePrimary()
			for _, other := range survivors[1:] {
				other.SetOriginal(heir)
				other.RefreshLabel()
			}
			p.log.Info("promoted clone to primary",
				zap.String("old_identity", identity),
				zap.String("new_identity", heir.ID()))
			// The identity key changed to the heir's id; re-index.
			p.registry.Rebuild(p.forest)
		}
	}
	return nil
}

// detach removes n from every owning container and relationship list.
func (p *Project) detach(n model.Node) {
	for _, parent := range append([]model.Node(nil), n.Parents()...) {
		parent.RemoveChild(n)
	}
	for _, child := range append([]model.Node(nil), n.Children()...) {
		n.RemoveChild(child)
	}
	if g, ok := n.(*model.GSNNode); ok {
		for _, d := range p.forest.Diagrams {
			d.RemoveNode(g)
		}
	}
	if ft, ok := n.(*model.FaultTreeNode); ok {
		for i, e := range p.forest.Entries {
			if e == ft {
				p.forest.Entries = append(p.forest.Entries[:i], p.forest.Entries[i+1:]...)
				break
			}
		}
		for _, t := range p.forest.Trees {
			if t.Root == ft {
				t.Root = nil
			}
		}
	}
}
