// Package sync fans an edit on one node instance out to every other
// instance of the same logical identity across the whole model forest.
package sync

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"arbor/internal/model"
)

// Engine copies shared fields between instances of one identity. It is
// re-entrant safe with respect to undo/redo replays because it never
// records state itself; callers push history frames around it.
type Engine struct {
	log *zap.Logger
}

// NewEngine returns an engine logging skip reports to log. A nil log is
// replaced with a no-op logger.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Report describes the non-fatal conditions met during one fan-out.
type Report struct {
	// Identity is the logical identity that was synchronized.
	Identity string
	// Updated lists the ids of every instance written to, excluding the
	// edited node itself.
	Updated []string
	// Skipped lists broken instances that could not be resolved to a
	// primary; they are reported, not raised, so one corrupted clone cannot
	// block the rest of the model.
	Skipped []*model.BrokenIdentityError
}

// Synchronize copies edited's shared fields into every other instance of
// its identity and recomputes every touched label.
//
// The copy is all-or-nothing: every target is validated against every
// field before a single instance is written, so a corrupted value aborts
// the whole call with the offending field named. Local fields, children
// and parents of other instances are never touched.
func (e *Engine) Synchronize(edited model.Node, forest *model.Forest) (*Report, error) {
	primary, err := model.ResolveOriginal(edited)
	if err != nil {
		return nil, fmt.Errorf("resolve edited node: %w", err)
	}

	rep := &Report{Identity: primary.ID()}
	fields := edited.SharedFields()
	names := model.SharedFieldNames(edited.Flavor())

	// Enumerate every other instance of the identity. Full-forest walk:
	// any page may reference any identity.
	var targets []model.Node
	for _, n := range forest.AllNodes() {
		if n == edited {
			continue
		}
		p, err := model.ResolveOriginal(n)
		if err != nil {
			var be *model.BrokenIdentityError
			if !errors.As(err, &be) {
				be = &model.BrokenIdentityError{NodeID: n.ID(), Reason: err.Error()}
			}
			rep.Skipped = append(rep.Skipped, be)
			e.log.Warn("skipping unresolvable instance during sync",
				zap.String("node", n.ID()),
				zap.String("reason", be.Reason))
			continue
		}
		if p == primary {
			targets = append(targets, n)
		}
	}

	// Validation pass: nothing is written until every copy is known good.
	for _, t := range targets {
		for _, name := range names {
			if err := t.ValidateShared(name, fields[name]); err != nil {
				return nil, fmt.Errorf("synchronization aborted: %w", err)
			}
		}
	}

	for _, t := range targets {
		for _, name := range names {
			if err := t.ApplyShared(name, fields[name]); err != nil {
				// Unreachable after the validation pass; surface it rather
				// than leave the model half-written silently.
				return nil, fmt.Errorf("synchronization aborted mid-apply: %w", err)
			}
		}
		t.RefreshLabel()
		rep.Updated = append(rep.Updated, t.ID())
	}
	edited.RefreshLabel()

	e.log.Debug("synchronized identity",
		zap.String("identity", rep.Identity),
		zap.Int("updated", len(rep.Updated)),
		zap.Int("skipped", len(rep.Skipped)))
	return rep, nil
}
