package model

import (
	"strconv"

	"github.com/google/uuid"
)

// Diagram is one argumentation page. It owns the nodes placed on it,
// including the root and any unconnected elements, in stable draw order.
type Diagram struct {
	ID    string
	Name  string
	Root  *GSNNode
	Nodes []*GSNNode
}

// NewDiagram creates a page owning root.
func NewDiagram(name string, root *GSNNode) *Diagram {
	d := &Diagram{ID: uuid.NewString(), Name: name}
	if root != nil {
		d.Root = root
		d.Nodes = append(d.Nodes, root)
	}
	return d
}

// AddNode registers node with the diagram without connecting it.
func (d *Diagram) AddNode(n *GSNNode) {
	for _, e := range d.Nodes {
		if e == n {
			return
		}
	}
	d.Nodes = append(d.Nodes, n)
}

// RemoveNode unregisters node from the diagram.
func (d *Diagram) RemoveNode(n *GSNNode) {
	for i, e := range d.Nodes {
		if e == n {
			d.Nodes = append(d.Nodes[:i], d.Nodes[i+1:]...)
			break
		}
	}
	if d.Root == n {
		d.Root = nil
	}
}

// Tree is one fault-tree page, owning the tree rooted at a top event.
type Tree struct {
	ID   string
	Root *FaultTreeNode
}

// Forest is the whole model: every argumentation diagram, every fault
// tree, and the flat analysis worksheet entries. It also owns the
// sequential id allocator for fault-tree nodes.
type Forest struct {
	Diagrams []*Diagram
	Trees    []*Tree
	// Entries are analysis worksheet rows (FMEA-style), typically clones of
	// basic events that also live in a tree.
	Entries []*FaultTreeNode

	nextID int
}

// NewForest returns an empty model.
func NewForest() *Forest {
	return &Forest{nextID: 1}
}

// NewFaultTreeNode creates a fresh primary fault-tree instance with the
// next sequential id.
func (f *Forest) NewFaultTreeNode(kind Kind, name string) *FaultTreeNode {
	id := strconv.Itoa(f.nextID)
	f.nextID++
	return newFaultTreeNode(id, kind, name)
}

// NextID exposes the allocator state for the snapshot codec.
func (f *Forest) NextID() int { return f.nextID }

// SetNextID restores the allocator after import; values at or below an id
// already in use would mint duplicates, so the codec passes max+1.
func (f *Forest) SetNextID(n int) {
	if n < 1 {
		n = 1
	}
	f.nextID = n
}

// AddTree registers a fault tree rooted at root.
func (f *Forest) AddTree(root *FaultTreeNode) *Tree {
	t := &Tree{ID: uuid.NewString(), Root: root}
	f.Trees = append(f.Trees, t)
	return t
}

// AddDiagram registers an argumentation page.
func (f *Forest) AddDiagram(d *Diagram) {
	f.Diagrams = append(f.Diagrams, d)
}

// AllNodes enumerates every instance in the model: each fault tree walked
// from its root, each diagram's node list, and the worksheet entries.
// Any page may reference any identity, so synchronization always walks the
// full result. Duplicates are dropped while preserving first-seen order.
func (f *Forest) AllNodes() []Node {
	seen := make(map[Node]bool)
	var out []Node
	add := func(n Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
	}

	var walk func(n Node)
	walk = func(n Node) {
		if n == nil || seen[n] {
			return
		}
		add(n)
		for _, c := range n.Children() {
			walk(c)
		}
	}

	for _, t := range f.Trees {
		walk(t.Root)
	}
	for _, d := range f.Diagrams {
		for _, n := range d.Nodes {
			walk(n)
		}
	}
	for _, e := range f.Entries {
		add(e)
	}
	return out
}
