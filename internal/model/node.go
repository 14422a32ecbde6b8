// Package model implements the shared-identity document model used by
// safety-engineering artifacts: fault-tree nodes and argumentation (GSN)
// nodes that can appear as multiple instances across diagrams while staying
// consistent. One instance per logical identity is the primary; the rest are
// clones that point back at it.
package model

// Flavor distinguishes the two node families that share the identity
// contract.
type Flavor string

const (
	// FlavorArgument is the GSN argumentation flavor.
	FlavorArgument Flavor = "argument"

	// FlavorFaultTree is the fault-tree flavor.
	FlavorFaultTree Flavor = "fault-tree"
)

// Kind identifies the node type within its flavor.
type Kind string

// Argumentation kinds.
const (
	KindGoal          Kind = "Goal"
	KindStrategy      Kind = "Strategy"
	KindSolution      Kind = "Solution"
	KindAssumption    Kind = "Assumption"
	KindJustification Kind = "Justification"
	KindContext       Kind = "Context"
	KindModule        Kind = "Module"
)

// Fault-tree kinds.
const (
	KindTopEvent   Kind = "Top Event"
	KindGate       Kind = "Gate"
	KindBasicEvent Kind = "Basic Event"
	KindPageRef    Kind = "Page Reference"
)

// Shared field names. Synchronization copies exactly these between
// instances of one logical identity; everything else is per-instance.
const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldNotes          = "notes"
	FieldWorkProducts   = "work_products"
	FieldEvidenceLink   = "evidence_link"
	FieldEvidenceStatus = "evidence_status"
	FieldRationale      = "rationale"
	FieldGateType       = "gate_type"
	FieldSeverity       = "severity"
	FieldSafetyGoal     = "safety_goal"
	FieldASIL           = "asil"
	FieldRequirements   = "safety_requirements"
)

// CloneSuffix decorates the derived label of every non-primary instance.
const CloneSuffix = " (clone)"

// Node is the identity contract implemented by both flavors.
//
// Identity methods (ID, IsPrimary, Original) are stable for the lifetime of
// an instance except when a clone is promoted after its primary is deleted.
// SharedFields, ValidateShared and ApplyShared exist for the
// synchronization engine and the snapshot codec; GUI-style callers mutate
// the exported struct fields directly and then synchronize.
type Node interface {
	ID() string
	Kind() Kind
	Flavor() Flavor

	IsPrimary() bool
	Original() Node
	SetOriginal(Node)
	// MakePrimary turns the instance into the primary of its identity,
	// pointing original at itself. Used by the delete-promotion policy and
	// the snapshot codec.
	MakePrimary()

	Label() string
	RefreshLabel()

	Children() []Node
	Parents() []Node
	AddChild(Node)
	RemoveChild(Node)

	Position() (x, y float64)
	SetPosition(x, y float64)

	// SharedFields returns a detached copy of the shared attribute set,
	// keyed by the Field* constants.
	SharedFields() map[string]any
	// ValidateShared reports whether value is acceptable for field without
	// mutating anything.
	ValidateShared(field string, value any) error
	// ApplyShared stores a detached copy of value into field. Callers are
	// expected to validate first; ApplyShared re-checks and rejects rather
	// than writing a partial update.
	ApplyShared(field string, value any) error

	addParent(Node)
	removeParent(Node)
}

// removeNode deletes the first occurrence of n from list, preserving order.
func removeNode(list []Node, n Node) []Node {
	for i, e := range list {
		if e == n {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
