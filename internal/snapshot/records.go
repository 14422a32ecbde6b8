// Package snapshot serializes the whole model forest into a tree of plain
// records and reconstructs it, preserving identity and clone links. The
// records carry no pointers and no cycles: every cross-reference is an id
// resolved during import, so a snapshot is safe to deep-copy, diff or
// persist.
package snapshot

import "arbor/internal/model"

// Version tags the record layout.
const Version = 1

// Snapshot is a complete, serializable copy of the model at one point in
// time.
type Snapshot struct {
	Version int `json:"version" yaml:"version"`
	// NextID restores the fault-tree id allocator on import.
	NextID   int             `json:"next_id" yaml:"next_id"`
	Diagrams []DiagramRecord `json:"diagrams,omitempty" yaml:"diagrams,omitempty"`
	Trees    []TreeRecord    `json:"trees,omitempty" yaml:"trees,omitempty"`
	Entries  []NodeRecord    `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// DiagramRecord is one argumentation page. Nodes are stored flat, in the
// diagram's draw order, with child links as id lists.
type DiagramRecord struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Root  string       `json:"root,omitempty" yaml:"root,omitempty"`
	Nodes []NodeRecord `json:"nodes" yaml:"nodes"`
}

// TreeRecord is one fault tree, stored flat like a diagram.
type TreeRecord struct {
	ID    string       `json:"id" yaml:"id"`
	Root  string       `json:"root,omitempty" yaml:"root,omitempty"`
	Nodes []NodeRecord `json:"nodes" yaml:"nodes"`
}

// NodeRecord is one node instance. Original holds the logical identity of
// the resolved primary for clones and is empty for primaries; forward
// references (a clone serialized before its original) are legal and
// resolved in the import's second pass.
type NodeRecord struct {
	ID       string       `json:"id" yaml:"id"`
	Kind     string       `json:"kind" yaml:"kind"`
	Flavor   string       `json:"flavor" yaml:"flavor"`
	Primary  bool         `json:"primary" yaml:"primary"`
	Original string       `json:"original,omitempty" yaml:"original,omitempty"`
	Shared   SharedRecord `json:"shared" yaml:"shared"`
	Local    LocalRecord  `json:"local" yaml:"local"`
	Children []string     `json:"children,omitempty" yaml:"children,omitempty"`
}

// SharedRecord carries the union of both flavors' shared fields; unused
// fields stay at their zero value and are omitted from the encoding.
type SharedRecord struct {
	Name           string              `json:"name" yaml:"name"`
	Description    string              `json:"description,omitempty" yaml:"description,omitempty"`
	Notes          string              `json:"notes,omitempty" yaml:"notes,omitempty"`
	WorkProducts   []string            `json:"work_products,omitempty" yaml:"work_products,omitempty"`
	EvidenceLink   string              `json:"evidence_link,omitempty" yaml:"evidence_link,omitempty"`
	EvidenceStatus string              `json:"evidence_status,omitempty" yaml:"evidence_status,omitempty"`
	Rationale      string              `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	GateType       string              `json:"gate_type,omitempty" yaml:"gate_type,omitempty"`
	Severity       int                 `json:"severity,omitempty" yaml:"severity,omitempty"`
	SafetyGoal     string              `json:"safety_goal,omitempty" yaml:"safety_goal,omitempty"`
	ASIL           string              `json:"asil,omitempty" yaml:"asil,omitempty"`
	Requirements   []model.Requirement `json:"safety_requirements,omitempty" yaml:"safety_requirements,omitempty"`
}

// LocalRecord carries the per-instance fields that synchronization never
// touches.
type LocalRecord struct {
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Collapsed bool    `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Page      bool    `json:"page,omitempty" yaml:"page,omitempty"`
}
