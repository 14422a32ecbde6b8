package model

import (
	"fmt"

	"github.com/google/uuid"
)

// gsnSharedFields is the shared attribute set of the argumentation flavor.
var gsnSharedFields = []string{
	FieldName,
	FieldDescription,
	FieldNotes,
	FieldWorkProducts,
	FieldEvidenceLink,
	FieldEvidenceStatus,
}

// allowedAwayKinds are the argumentation kinds that may appear as away
// (clone) instances on other diagrams. Strategy and Module are structural
// and stay unique.
var allowedAwayKinds = map[Kind]bool{
	KindGoal:          true,
	KindSolution:      true,
	KindContext:       true,
	KindAssumption:    true,
	KindJustification: true,
}

// contextKinds attach to their parent with an in-context-of relation.
var contextKinds = map[Kind]bool{
	KindContext:       true,
	KindAssumption:    true,
	KindJustification: true,
}

// GSNNode is one instance of an argumentation element. Exported fields are
// plain data; identity bookkeeping goes through the Node methods.
type GSNNode struct {
	id       string
	kind     Kind
	primary  bool
	original Node
	label    string
	children []Node
	parents  []Node

	// Shared fields, identical across all instances of one identity.
	Name           string
	Description    string
	Notes          string
	WorkProducts   []string
	EvidenceLink   string
	EvidenceStatus string

	// Local fields, never synchronized.
	X, Y      float64
	Collapsed bool
}

// NewGSNNode creates a fresh primary instance with a new uuid identity.
func NewGSNNode(kind Kind, name string) *GSNNode {
	n := &GSNNode{
		id:      uuid.NewString(),
		kind:    kind,
		primary: true,
		Name:    name,
		X:       50,
		Y:       50,
	}
	n.original = n
	n.RefreshLabel()
	return n
}

// RehydrateGSNNode builds an instance with a known id and primary flag.
// Used by the snapshot codec; the original link is wired in the codec's
// second pass.
func RehydrateGSNNode(id string, kind Kind, primary bool) *GSNNode {
	n := &GSNNode{id: id, kind: kind, primary: primary}
	if primary {
		n.original = n
	}
	return n
}

func (n *GSNNode) ID() string     { return n.id }
func (n *GSNNode) Kind() Kind     { return n.kind }
func (n *GSNNode) Flavor() Flavor { return FlavorArgument }

func (n *GSNNode) IsPrimary() bool      { return n.primary }
func (n *GSNNode) Original() Node       { return n.original }
func (n *GSNNode) SetOriginal(o Node)   { n.original = o; n.primary = o == Node(n) }
func (n *GSNNode) Label() string        { return n.label }
func (n *GSNNode) Children() []Node     { return n.children }
func (n *GSNNode) Parents() []Node      { return n.parents }
func (n *GSNNode) Position() (x, y float64) { return n.X, n.Y }
func (n *GSNNode) SetPosition(x, y float64) { n.X, n.Y = x, y }

// MakePrimary promotes the instance to primary of its identity.
func (n *GSNNode) MakePrimary() {
	n.primary = true
	n.original = n
	n.RefreshLabel()
}

// RefreshLabel recomputes the derived label, decorating clones.
func (n *GSNNode) RefreshLabel() {
	if n.primary {
		n.label = n.Name
		return
	}
	n.label = n.Name + CloneSuffix
}

// AddChild attaches child below n, updating both reference lists.
func (n *GSNNode) AddChild(child Node) {
	n.children = append(n.children, child)
	child.addParent(n)
}

// RemoveChild detaches child from n.
func (n *GSNNode) RemoveChild(child Node) {
	n.children = removeNode(n.children, child)
	child.removeParent(n)
}

func (n *GSNNode) addParent(p Node)    { n.parents = append(n.parents, p) }
func (n *GSNNode) removeParent(p Node) { n.parents = removeNode(n.parents, p) }

// SharedFields returns a detached copy of the shared attribute set.
func (n *GSNNode) SharedFields() map[string]any {
	return map[string]any{
		FieldName:           n.Name,
		FieldDescription:    n.Description,
		FieldNotes:          n.Notes,
		FieldWorkProducts:   copyStrings(n.WorkProducts),
		FieldEvidenceLink:   n.EvidenceLink,
		FieldEvidenceStatus: n.EvidenceStatus,
	}
}

// ValidateShared checks value against field without mutating the node.
func (n *GSNNode) ValidateShared(field string, value any) error {
	switch field {
	case FieldName, FieldDescription, FieldNotes, FieldEvidenceLink, FieldEvidenceStatus:
		if _, ok := value.(string); !ok {
			return &FieldError{NodeID: n.id, Field: field, Err: fmt.Errorf("%w: want string, got %T", ErrFieldType, value)}
		}
	case FieldWorkProducts:
		if _, ok := value.([]string); !ok {
			return &FieldError{NodeID: n.id, Field: field, Err: fmt.Errorf("%w: want []string, got %T", ErrFieldType, value)}
		}
	default:
		return &FieldError{NodeID: n.id, Field: field, Err: ErrUnknownField}
	}
	return nil
}

// ApplyShared stores a copy of value into field.
func (n *GSNNode) ApplyShared(field string, value any) error {
	if err := n.ValidateShared(field, value); err != nil {
		return err
	}
	switch field {
	case FieldName:
		n.Name = value.(string)
	case FieldDescription:
		n.Description = value.(string)
	case FieldNotes:
		n.Notes = value.(string)
	case FieldWorkProducts:
		n.WorkProducts = copyStrings(value.([]string))
	case FieldEvidenceLink:
		n.EvidenceLink = value.(string)
	case FieldEvidenceStatus:
		n.EvidenceStatus = value.(string)
	}
	return nil
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
