// Package project owns one open model: the forest of diagrams and trees,
// the identity registry, the synchronization engine and the undo/redo
// manager, wired the way the editing surface drives them.
package project

import (
	"fmt"

	"go.uber.org/zap"

	"arbor/internal/config"
	"arbor/internal/history"
	"arbor/internal/model"
	"arbor/internal/snapshot"
	modelsync "arbor/internal/sync"
)

// Project is one editing session over one model.
type Project struct {
	cfg *config.Config
	log *zap.Logger

	forest   *model.Forest
	registry *model.Registry
	syncer   *modelsync.Engine
	hist     *history.Manager
}

// New creates an empty project. nil cfg selects config.Default; nil log a
// no-op logger.
func New(cfg *config.Config, log *zap.Logger) *Project {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Project{
		cfg:      cfg,
		log:      log,
		forest:   model.NewForest(),
		registry: model.NewRegistry(),
		syncer:   modelsync.NewEngine(log),
	}
	p.hist = history.NewManager(p, cfg.History.Depth, log)
	return p
}

// Forest exposes the live model.
func (p *Project) Forest() *model.Forest { return p.forest }

// Registry exposes the identity index.
func (p *Project) Registry() *model.Registry { return p.registry }

// History exposes the undo/redo manager.
func (p *Project) History() *history.Manager { return p.hist }

// Capture implements history.Store via the snapshot codec.
func (p *Project) Capture() (*snapshot.Snapshot, error) {
	return snapshot.Export(p.forest), nil
}

// Restore implements history.Store: the live forest is replaced wholesale
// and the registry rebuilt, after which views refresh from scratch.
func (p *Project) Restore(s *snapshot.Snapshot) error {
	f, err := snapshot.Import(s)
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	p.forest = f
	p.registry.Rebuild(f)
	return nil
}

// Export serializes the live model for saving or diffing.
func (p *Project) Export() *snapshot.Snapshot {
	return snapshot.Export(p.forest)
}

// Import replaces the live model with the decoded document and clears the
// editing history, as on file open.
func (p *Project) Import(s *snapshot.Snapshot) error {
	if err := p.Restore(s); err != nil {
		return err
	}
	p.hist.Clear()
	for _, be := range p.registry.Broken() {
		p.log.Warn("document contains a broken identity chain", zap.String("node", be.NodeID), zap.String("reason", be.Reason))
	}
	return nil
}

// Synchronize fans edited's shared fields out to every instance of its
// identity. Dialogs call this right after mutating a node.
func (p *Project) Synchronize(edited model.Node) (*modelsync.Report, error) {
	return p.syncer.Synchronize(edited, p.forest)
}

// UpdateShared applies the given shared-field values to n and synchronizes
// the identity. Nothing is written when any value fails validation.
func (p *Project) UpdateShared(n model.Node, fields map[string]any) error {
	for name, value := range fields {
		if err := n.ValidateShared(name, value); err != nil {
			return fmt.Errorf("update rejected: %w", err)
		}
	}
	for name, value := range fields {
		if err := n.ApplyShared(name, value); err != nil {
			return fmt.Errorf("update failed: %w", err)
		}
	}
	if _, err := p.Synchronize(n); err != nil {
		return err
	}
	return nil
}

// Push records the current state before a mutation, using the configured
// coalescing strategy.
func (p *Project) Push() error {
	return p.hist.Push(p.cfg.Strategy())
}

// Undo restores the previous state; reported as false on an empty stack.
func (p *Project) Undo() (bool, error) {
	changed, err := p.hist.Undo(p.cfg.Strategy())
	if err != nil {
		return false, err
	}
	return changed, nil
}

// Redo reapplies an undone state.
func (p *Project) Redo() (bool, error) {
	return p.hist.Redo(p.cfg.Strategy())
}

// CommitGesture ends the current interactive gesture (mouse released).
func (p *Project) CommitGesture() {
	p.hist.CommitGesture()
}
