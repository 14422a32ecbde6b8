// Package history keeps undo/redo stacks of whole-model snapshots with a
// coalescing policy that collapses a continuous gesture (a drag reported
// move by move) into two frames: the state before the gesture and its
// final state.
package history

import (
	"fmt"

	"go.uber.org/zap"

	"arbor/internal/snapshot"
)

// DefaultDepth caps each stack; the oldest frame is dropped beyond it.
const DefaultDepth = 20

// Strategy selects one of the four interchangeable coalescing policies.
// All four honor the two-frames-per-gesture contract; they differ only in
// the internal signal used to recognize "same gesture".
type Strategy string

const (
	// StrategyV1 replaces the stack top once two consecutive frames already
	// match the incoming layout-stripped state.
	StrategyV1 Strategy = "v1"
	// StrategyV2 tracks the stripped state that opened the current move run.
	StrategyV2 Strategy = "v2"
	// StrategyV3 counts the length of the current move run.
	StrategyV3 Strategy = "v3"
	// StrategyV4 appends unconditionally, then collapses the middle of three
	// stripped-equal consecutive frames.
	StrategyV4 Strategy = "v4"
)

// Store captures and restores the live model; the project implements it
// with the snapshot codec.
type Store interface {
	Capture() (*snapshot.Snapshot, error)
	Restore(*snapshot.Snapshot) error
}

// Manager owns the two stacks. Push is called before every mutating
// action; Undo and Redo replace the live model wholesale through the
// Store. All methods are synchronous and run on the caller's single
// event-dispatch thread.
type Manager struct {
	store Store
	log   *zap.Logger
	depth int

	undo []*snapshot.Snapshot
	redo []*snapshot.Snapshot

	// Gesture trackers for v2/v3. Reset by CommitGesture.
	lastMoveBase *snapshot.Snapshot
	moveRun      int
}

// NewManager creates a manager over store. depth <= 0 selects
// DefaultDepth; a nil log is replaced with a no-op logger.
func NewManager(store Store, depth int, log *zap.Logger) *Manager {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log, depth: depth}
}

// Depths returns the current undo and redo stack sizes.
func (m *Manager) Depths() (undo, redo int) {
	return len(m.undo), len(m.redo)
}

// Clear drops all history.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
	m.lastMoveBase = nil
	m.moveRun = 0
}

// CommitGesture marks the end of the current gesture (mouse released).
// The frame already on top of the undo stack is the gesture's final state;
// no additional frame is written.
func (m *Manager) CommitGesture() {
	m.lastMoveBase = nil
	m.moveRun = 0
}

// Push records the current model state before a mutation. Depending on the
// strategy the new frame either extends the stack or overwrites its top,
// so a run of same-gesture pushes never grows the stack past two frames
// for that gesture.
func (m *Manager) Push(strategy Strategy) error {
	state, err := m.store.Capture()
	if err != nil {
		return fmt.Errorf("capture state: %w", err)
	}
	stripped := state.StripLayout()

	var changed bool
	switch strategy {
	case StrategyV2:
		changed = m.pushV2(state, stripped)
	case StrategyV3:
		changed = m.pushV3(state, stripped)
	case StrategyV4:
		changed = m.pushV4(state, stripped)
	default:
		changed = m.pushV1(state, stripped)
	}

	if changed && len(m.undo) > m.depth {
		m.undo = m.undo[1:]
	}
	if changed {
		m.redo = nil
	}
	m.log.Debug("push", zap.String("strategy", string(strategy)), zap.Bool("changed", changed), zap.Int("undo_depth", len(m.undo)))
	return nil
}

func (m *Manager) top() *snapshot.Snapshot {
	return m.undo[len(m.undo)-1]
}

func (m *Manager) pushV1(state, stripped *snapshot.Snapshot) bool {
	if len(m.undo) == 0 {
		m.undo = append(m.undo, state)
		return true
	}
	last := m.top()
	if last.Equal(state) {
		return false
	}
	if last.StripLayout().Equal(stripped) {
		if len(m.undo) >= 2 && m.undo[len(m.undo)-2].StripLayout().Equal(stripped) {
			m.undo[len(m.undo)-1] = state
			return true
		}
		m.undo = append(m.undo, state)
		return true
	}
	m.undo = append(m.undo, state)
	return true
}

func (m *Manager) pushV2(state, stripped *snapshot.Snapshot) bool {
	if len(m.undo) > 0 && m.top().Equal(state) {
		return false
	}
	if len(m.undo) > 0 && m.top().StripLayout().Equal(stripped) {
		if m.lastMoveBase != nil && m.lastMoveBase.Equal(stripped) {
			m.undo[len(m.undo)-1] = state
		} else {
			m.undo = append(m.undo, state)
			m.lastMoveBase = stripped
		}
		return true
	}
	m.lastMoveBase = nil
	m.undo = append(m.undo, state)
	return true
}

func (m *Manager) pushV3(state, stripped *snapshot.Snapshot) bool {
	if len(m.undo) > 0 && m.top().Equal(state) {
		return false
	}
	if len(m.undo) > 0 && m.top().StripLayout().Equal(stripped) {
		if m.moveRun > 0 {
			m.undo[len(m.undo)-1] = state
		} else {
			m.undo = append(m.undo, state)
		}
		m.moveRun++
		return true
	}
	m.moveRun = 0
	m.undo = append(m.undo, state)
	return true
}

func (m *Manager) pushV4(state, stripped *snapshot.Snapshot) bool {
	if len(m.undo) > 0 && m.top().Equal(state) {
		return false
	}
	m.undo = append(m.undo, state)
	if len(m.undo) >= 3 {
		s1 := m.undo[len(m.undo)-3].StripLayout()
		s2 := m.undo[len(m.undo)-2].StripLayout()
		if s1.Equal(stripped) && s2.Equal(stripped) {
			m.undo = append(m.undo[:len(m.undo)-2], m.undo[len(m.undo)-1])
		}
	}
	return true
}

// Undo restores the state before the last gesture. An empty stack is a
// silent no-op reported through the return value, never an error. When the
// top frame matches the live state (a push made right before Undo) it is
// discarded first so one call walks back a full step.
func (m *Manager) Undo(strategy Strategy) (bool, error) {
	if len(m.undo) == 0 {
		return false, nil
	}
	current, err := m.store.Capture()
	if err != nil {
		return false, fmt.Errorf("capture state: %w", err)
	}
	if m.top().Equal(current) {
		m.undo = m.undo[:len(m.undo)-1]
		if len(m.undo) == 0 {
			if strategy == StrategyV4 {
				m.pushRedo(current)
				return true, nil
			}
			return false, nil
		}
	}
	state := m.top()
	m.undo = m.undo[:len(m.undo)-1]
	m.pushRedo(current)
	if err := m.store.Restore(state); err != nil {
		return false, fmt.Errorf("restore state: %w", err)
	}
	m.log.Debug("undo", zap.String("strategy", string(strategy)), zap.Int("undo_depth", len(m.undo)), zap.Int("redo_depth", len(m.redo)))
	return true, nil
}

// Redo reapplies a state previously reverted with Undo. An empty redo
// stack is a silent no-op.
func (m *Manager) Redo(strategy Strategy) (bool, error) {
	if len(m.redo) == 0 {
		return false, nil
	}
	current, err := m.store.Capture()
	if err != nil {
		return false, fmt.Errorf("capture state: %w", err)
	}
	state := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, current)
	if len(m.undo) > m.depth {
		m.undo = m.undo[1:]
	}
	if err := m.store.Restore(state); err != nil {
		return false, fmt.Errorf("restore state: %w", err)
	}
	m.log.Debug("redo", zap.String("strategy", string(strategy)), zap.Int("undo_depth", len(m.undo)), zap.Int("redo_depth", len(m.redo)))
	return true, nil
}

func (m *Manager) pushRedo(s *snapshot.Snapshot) {
	m.redo = append(m.redo, s)
	if len(m.redo) > m.depth {
		m.redo = m.redo[1:]
	}
}
