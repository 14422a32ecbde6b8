package model

import "fmt"

// Requirement is one safety requirement attached to a fault-tree node.
// Requirements are part of the shared field set: editing them on any
// instance updates every instance of the identity.
type Requirement struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// ftaSharedFields is the shared attribute set of the fault-tree flavor.
var ftaSharedFields = []string{
	FieldName,
	FieldDescription,
	FieldRationale,
	FieldGateType,
	FieldSeverity,
	FieldSafetyGoal,
	FieldASIL,
	FieldRequirements,
}

// Gate types for KindGate nodes.
const (
	GateAnd = "AND"
	GateOr  = "OR"
)

// FaultTreeNode is one instance of a fault-tree element. IDs are sequential
// integers issued by the owning Forest, rendered as decimal strings so both
// flavors share the identity contract.
type FaultTreeNode struct {
	id       string
	kind     Kind
	primary  bool
	original Node
	label    string
	children []Node
	parents  []Node

	// Shared fields.
	Name         string
	Description  string
	Rationale    string
	GateType     string
	Severity     int
	SafetyGoal   string
	ASIL         string
	Requirements []Requirement

	// Local fields.
	X, Y float64
	Page bool
}

// newFaultTreeNode builds a fresh primary instance; ids come from the Forest.
func newFaultTreeNode(id string, kind Kind, name string) *FaultTreeNode {
	n := &FaultTreeNode{
		id:      id,
		kind:    kind,
		primary: true,
		Name:    name,
		X:       50,
		Y:       50,
	}
	if kind == KindGate {
		n.GateType = GateAnd
	}
	if kind == KindTopEvent {
		n.Severity = 1
	}
	n.original = n
	n.RefreshLabel()
	return n
}

// RehydrateFaultTreeNode builds an instance with a known id and primary
// flag for the snapshot codec.
func RehydrateFaultTreeNode(id string, kind Kind, primary bool) *FaultTreeNode {
	n := &FaultTreeNode{id: id, kind: kind, primary: primary}
	if primary {
		n.original = n
	}
	return n
}

func (n *FaultTreeNode) ID() string     { return n.id }
func (n *FaultTreeNode) Kind() Kind     { return n.kind }
func (n *FaultTreeNode) Flavor() Flavor { return FlavorFaultTree }

func (n *FaultTreeNode) IsPrimary() bool          { return n.primary }
func (n *FaultTreeNode) Original() Node           { return n.original }
func (n *FaultTreeNode) SetOriginal(o Node)       { n.original = o; n.primary = o == Node(n) }
func (n *FaultTreeNode) Label() string            { return n.label }
func (n *FaultTreeNode) Children() []Node         { return n.children }
func (n *FaultTreeNode) Parents() []Node          { return n.parents }
func (n *FaultTreeNode) Position() (x, y float64) { return n.X, n.Y }
func (n *FaultTreeNode) SetPosition(x, y float64) { n.X, n.Y = x, y }

// MakePrimary promotes the instance to primary of its identity.
func (n *FaultTreeNode) MakePrimary() {
	n.primary = true
	n.original = n
	n.RefreshLabel()
}

// RefreshLabel recomputes the derived label, decorating clones.
func (n *FaultTreeNode) RefreshLabel() {
	if n.primary {
		n.label = n.Name
		return
	}
	n.label = n.Name + CloneSuffix
}

// AddChild attaches child below n, updating both reference lists.
func (n *FaultTreeNode) AddChild(child Node) {
	n.children = append(n.children, child)
	child.addParent(n)
}

// RemoveChild detaches child from n.
func (n *FaultTreeNode) RemoveChild(child Node) {
	n.children = removeNode(n.children, child)
	child.removeParent(n)
}

func (n *FaultTreeNode) addParent(p Node)    { n.parents = append(n.parents, p) }
func (n *FaultTreeNode) removeParent(p Node) { n.parents = removeNode(n.parents, p) }

// SharedFields returns a detached copy of the shared attribute set.
func (n *FaultTreeNode) SharedFields() map[string]any {
	return map[string]any{
		FieldName:         n.Name,
		FieldDescription:  n.Description,
		FieldRationale:    n.Rationale,
		FieldGateType:     n.GateType,
		FieldSeverity:     n.Severity,
		FieldSafetyGoal:   n.SafetyGoal,
		FieldASIL:         n.ASIL,
		FieldRequirements: copyRequirements(n.Requirements),
	}
}

// ValidateShared checks value against field without mutating the node.
func (n *FaultTreeNode) ValidateShared(field string, value any) error {
	switch field {
	case FieldName, FieldDescription, FieldRationale, FieldGateType, FieldSafetyGoal, FieldASIL:
		if _, ok := value.(string); !ok {
			return &FieldError{NodeID: n.id, Field: field, Err: fmt.Errorf("%w: want string, got %T", ErrFieldType, value)}
		}
	case FieldSeverity:
		if _, ok := value.(int); !ok {
			return &FieldError{NodeID: n.id, Field: field, Err: fmt.Errorf("%w: want int, got %T", ErrFieldType, value)}
		}
	case FieldRequirements:
		if _, ok := value.([]Requirement); !ok {
			return &FieldError{NodeID: n.id, Field: field, Err: fmt.Errorf("%w: want []Requirement, got %T", ErrFieldType, value)}
		}
	default:
		return &FieldError{NodeID: n.id, Field: field, Err: ErrUnknownField}
	}
	return nil
}

// ApplyShared stores a copy of value into field.
func (n *FaultTreeNode) ApplyShared(field string, value any) error {
	if err := n.ValidateShared(field, value); err != nil {
		return err
	}
	switch field {
	case FieldName:
		n.Name = value.(string)
	case FieldDescription:
		n.Description = value.(string)
	case FieldRationale:
		n.Rationale = value.(string)
	case FieldGateType:
		n.GateType = value.(string)
	case FieldSeverity:
		n.Severity = value.(int)
	case FieldSafetyGoal:
		n.SafetyGoal = value.(string)
	case FieldASIL:
		n.ASIL = value.(string)
	case FieldRequirements:
		n.Requirements = copyRequirements(value.([]Requirement))
	}
	return nil
}

func copyRequirements(reqs []Requirement) []Requirement {
	if reqs == nil {
		return nil
	}
	out := make([]Requirement, len(reqs))
	copy(out, reqs)
	return out
}
