package model

import (
	"strconv"

	"github.com/google/uuid"
)

// DefaultCloneOffset is how far a fresh clone is placed from its source so
// the two do not overlap on a diagram.
const DefaultCloneOffset = 100

// Clonable reports whether instances of kind may be cloned. Strategy and
// Module argumentation nodes are structural and stay unique; fault-tree
// roots (top events) anchor their tree and stay unique too.
func Clonable(f Flavor, k Kind) bool {
	if f == FlavorArgument {
		return allowedAwayKinds[k]
	}
	return k != KindTopEvent
}

// CloneNode creates a non-primary instance of src's logical identity,
// offset by (dx, dy) from src. The clone records the resolved primary as
// its original, never a chain, and starts with empty child and parent
// lists.
//
// For argumentation nodes of a contextual kind (Context, Assumption,
// Justification) a non-nil parent is linked to the clone with an
// in-context-of relation, mirroring how away context elements attach in
// GSN. parent is ignored otherwise.
func (f *Forest) CloneNode(src Node, parent Node, dx, dy float64) (Node, error) {
	if !Clonable(src.Flavor(), src.Kind()) {
		return nil, &CloneNotAllowedError{NodeID: src.ID(), Kind: src.Kind()}
	}
	primary, err := ResolveOriginal(src)
	if err != nil {
		return nil, err
	}

	x, y := src.Position()
	var clone Node
	switch s := src.(type) {
	case *GSNNode:
		c := &GSNNode{
			id:             uuid.NewString(),
			kind:           s.kind,
			Name:           s.Name,
			Description:    s.Description,
			Notes:          s.Notes,
			WorkProducts:   copyStrings(s.WorkProducts),
			EvidenceLink:   s.EvidenceLink,
			EvidenceStatus: s.EvidenceStatus,
		}
		clone = c
	case *FaultTreeNode:
		id := strconv.Itoa(f.nextID)
		f.nextID++
		c := &FaultTreeNode{
			id:           id,
			kind:         s.kind,
			Name:         s.Name,
			Description:  s.Description,
			Rationale:    s.Rationale,
			GateType:     s.GateType,
			Severity:     s.Severity,
			SafetyGoal:   s.SafetyGoal,
			ASIL:         s.ASIL,
			Requirements: copyRequirements(s.Requirements),
			Page:         s.Page,
		}
		clone = c
	}
	clone.SetOriginal(primary)
	clone.SetPosition(x+dx, y+dy)
	clone.RefreshLabel()

	if parent != nil && src.Flavor() == FlavorArgument && contextKinds[src.Kind()] {
		parent.AddChild(clone)
	}
	return clone, nil
}
