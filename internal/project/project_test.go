package project

import (
	"testing"

	"github.com/stretchr/testify/require"

	"arbor/internal/model"
)

// editSession builds a project with a solution P on the main diagram and
// clones C1, C2 on a second one.
func editSession(t *testing.T) (*Project, *model.GSNNode, *model.GSNNode, *model.GSNNode) {
	t.Helper()
	p := New(nil, nil)
	main := p.AddDiagram("Main", model.KindGoal, "Top claim")
	orig := p.AddArgumentNode(main, main.Root, model.KindSolution, "Orig")

	sub := p.AddDiagram("Sub", model.KindGoal, "Sub claim")
	c1, err := p.Clone(orig, sub, nil)
	require.NoError(t, err)
	c2, err := p.Clone(orig, sub, nil)
	require.NoError(t, err)
	return p, orig, c1.(*model.GSNNode), c2.(*model.GSNNode)
}

func TestEditCloneDragUndoScenario(t *testing.T) {
	p, orig, c1, c2 := editSession(t)

	preX, preY := c1.Position()
	c2X, c2Y := c2.Position()

	// Edit C1 and fan the change out.
	c1.Name = "Updated"
	_, err := p.Synchronize(c1)
	require.NoError(t, err)

	require.Equal(t, "Updated", orig.Name)
	require.Equal(t, "Updated", c2.Name)
	require.Equal(t, "Updated", orig.Label())
	require.Equal(t, "Updated (clone)", c1.Label())
	require.Equal(t, "Updated (clone)", c2.Label())

	// Positions survived the sync untouched.
	x, y := c1.Position()
	require.Equal(t, preX, x)
	require.Equal(t, preY, y)
	x, y = c2.Position()
	require.Equal(t, c2X, x)
	require.Equal(t, c2Y, y)

	// Drag C1: push before the move, then on every further motion event.
	require.NoError(t, p.Push())
	c1.SetPosition(400, 400)
	for i := 0; i < 9; i++ {
		require.NoError(t, p.Push())
	}
	p.CommitGesture()

	undoDepth, _ := p.History().Depths()
	require.Equal(t, 2, undoDepth)

	// One undo restores the pre-drag position.
	changed, err := p.Undo()
	require.NoError(t, err)
	require.True(t, changed)

	// The forest was replaced wholesale; find C1 again by id.
	restored := findByID(t, p, c1.ID())
	x, y = restored.Position()
	require.Equal(t, preX, x)
	require.Equal(t, preY, y)

	// The synchronized edit was not part of the drag gesture.
	require.Equal(t, "Updated (clone)", restored.Label())
}

// findByID looks an instance up in the live forest.
func findByID(t *testing.T, p *Project, id string) model.Node {
	t.Helper()
	for _, n := range p.Forest().AllNodes() {
		if n.ID() == id {
			return n
		}
	}
	t.Fatalf("node %s not found in live forest", id)
	return nil
}

func TestUndoRedoRestoreSynchronizedEdit(t *testing.T) {
	p, orig, c1, _ := editSession(t)

	require.NoError(t, p.Push())
	require.NoError(t, p.UpdateShared(c1, map[string]any{model.FieldName: "Updated"}))
	p.CommitGesture()

	changed, err := p.Undo()
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "Orig", findByID(t, p, orig.ID()).(*model.GSNNode).Name)

	changed, err = p.Redo()
	require.NoError(t, err)
	require.True(t, changed)
	restored := findByID(t, p, orig.ID()).(*model.GSNNode)
	require.Equal(t, "Updated", restored.Name)

	// Every instance converged after the redo replay.
	for _, n := range p.Registry().Instances(orig.ID()) {
		require.Equal(t, "Updated", n.(*model.GSNNode).Name)
	}
}

func TestDeleteCloneLeavesPrimary(t *testing.T) {
	p, orig, c1, c2 := editSession(t)

	require.NoError(t, p.Delete(c2))

	instances := p.Registry().Instances(orig.ID())
	require.Len(t, instances, 2)
	require.Contains(t, instances, model.Node(orig))
	require.Contains(t, instances, model.Node(c1))
	require.Empty(t, p.Registry().Validate())
}

func TestDeletePrimaryPromotesOldestClone(t *testing.T) {
	p, orig, c1, c2 := editSession(t)

	require.NoError(t, p.Delete(orig))

	require.True(t, c1.IsPrimary())
	require.False(t, c2.IsPrimary())
	require.Same(t, model.Node(c1), c2.Original())
	require.Equal(t, "Orig", c1.Label())
	require.Equal(t, "Orig (clone)", c2.Label())

	// The identity re-keys to the heir and stays valid.
	require.Empty(t, p.Registry().Validate())
	require.Len(t, p.Registry().Instances(c1.ID()), 2)
	require.Empty(t, p.Registry().Instances(orig.ID()))

	// The deleted instance is gone from the forest.
	for _, n := range p.Forest().AllNodes() {
		require.NotEqual(t, orig.ID(), n.ID())
	}
}

func TestDeleteSolePrimary(t *testing.T) {
	p := New(nil, nil)
	d := p.AddDiagram("Main", model.KindGoal, "Top claim")
	sol := p.AddArgumentNode(d, d.Root, model.KindSolution, "Sn1")

	require.NoError(t, p.Delete(sol))
	require.Empty(t, p.Registry().Instances(sol.ID()))
	require.Empty(t, p.Registry().Validate())
}

func TestCloneRejectionLeavesModelUntouched(t *testing.T) {
	p := New(nil, nil)
	d := p.AddDiagram("Main", model.KindGoal, "Top claim")
	strat := p.AddArgumentNode(d, d.Root, model.KindStrategy, "Argue over hazards")

	before := p.Export()
	_, err := p.Clone(strat, d, nil)
	require.ErrorIs(t, err, model.ErrCloneNotAllowed)
	require.True(t, before.Equal(p.Export()))
}

func TestImportClearsHistory(t *testing.T) {
	p, _, c1, _ := editSession(t)

	require.NoError(t, p.Push())
	c1.SetPosition(300, 300)
	p.CommitGesture()

	doc := p.Export()
	require.NoError(t, p.Import(doc))

	undoDepth, redoDepth := p.History().Depths()
	require.Equal(t, 0, undoDepth)
	require.Equal(t, 0, redoDepth)

	changed, err := p.Undo()
	require.NoError(t, err)
	require.False(t, changed)
}

func TestUpdateSharedRejectsBadValueAtomically(t *testing.T) {
	p, orig, c1, _ := editSession(t)

	err := p.UpdateShared(c1, map[string]any{
		model.FieldName:  "New name",
		model.FieldNotes: 42,
	})
	require.Error(t, err)
	require.Equal(t, "Orig", c1.Name)
	require.Equal(t, "Orig", orig.Name)
}
