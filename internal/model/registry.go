package model

import (
	"errors"
	"fmt"
)

// Registry maps logical identity (the primary's id) to every live instance
// of that identity. It holds lookup references only, never ownership: the
// diagrams and trees own their nodes. Rebuilt on import and maintained on
// create/clone/delete.
type Registry struct {
	byIdentity map[string][]Node
	// broken collects instances whose chain failed to resolve during the
	// last Rebuild; they are excluded from the index.
	broken []*BrokenIdentityError
}

// NewRegistry returns an empty index.
func NewRegistry() *Registry {
	return &Registry{byIdentity: make(map[string][]Node)}
}

// Rebuild re-indexes the whole forest. Instances with broken chains are
// recorded and skipped so one corrupted clone cannot hide the rest.
func (r *Registry) Rebuild(f *Forest) {
	r.byIdentity = make(map[string][]Node)
	r.broken = nil
	for _, n := range f.AllNodes() {
		r.Add(n)
	}
}

// Add indexes one instance under its resolved identity.
func (r *Registry) Add(n Node) {
	primary, err := ResolveOriginal(n)
	if err != nil {
		var be *BrokenIdentityError
		if !errors.As(err, &be) {
			be = &BrokenIdentityError{NodeID: n.ID(), Reason: err.Error()}
		}
		r.broken = append(r.broken, be)
		return
	}
	id := primary.ID()
	r.byIdentity[id] = append(r.byIdentity[id], n)
}

// Remove drops one instance from the index.
func (r *Registry) Remove(n Node) {
	for id, list := range r.byIdentity {
		trimmed := removeNode(list, n)
		if len(trimmed) != len(list) {
			if len(trimmed) == 0 {
				delete(r.byIdentity, id)
			} else {
				r.byIdentity[id] = trimmed
			}
			return
		}
	}
}

// Instances returns every indexed instance of identity in insertion order.
func (r *Registry) Instances(identity string) []Node {
	return r.byIdentity[identity]
}

// Identities returns every indexed logical identity.
func (r *Registry) Identities() []string {
	out := make([]string, 0, len(r.byIdentity))
	for id := range r.byIdentity {
		out = append(out, id)
	}
	return out
}

// Broken returns the chain failures recorded by the last Rebuild.
func (r *Registry) Broken() []*BrokenIdentityError {
	return r.broken
}

// Violation is one identity-invariant breach found by Validate.
type Violation struct {
	Identity string
	Problem  string
}

func (v Violation) String() string {
	return fmt.Sprintf("identity %s: %s", v.Identity, v.Problem)
}

// Validate checks that every indexed identity has exactly one primary
// instance and that every clone resolves to it.
func (r *Registry) Validate() []Violation {
	var out []Violation
	for id, list := range r.byIdentity {
		primaries := 0
		for _, n := range list {
			if n.IsPrimary() {
				primaries++
				if n.ID() != id {
					out = append(out, Violation{Identity: id, Problem: fmt.Sprintf("primary instance has id %s", n.ID())})
				}
			}
		}
		switch {
		case primaries == 0:
			out = append(out, Violation{Identity: id, Problem: "no primary instance"})
		case primaries > 1:
			out = append(out, Violation{Identity: id, Problem: fmt.Sprintf("%d primary instances", primaries)})
		}
	}
	for _, be := range r.broken {
		out = append(out, Violation{Identity: be.NodeID, Problem: be.Reason})
	}
	return out
}
