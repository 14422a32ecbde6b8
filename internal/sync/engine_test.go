package sync

import (
	"testing"

	"github.com/stretchr/testify/require"

	"arbor/internal/model"
)

// fanoutFixture builds a goal with two clones spread over two diagrams.
func fanoutFixture(t *testing.T) (*model.Forest, *model.GSNNode, *model.GSNNode, *model.GSNNode) {
	t.Helper()
	f := model.NewForest()
	primary := model.NewGSNNode(model.KindGoal, "Orig")
	f.AddDiagram(model.NewDiagram("Main", primary))

	sub := model.NewDiagram("Sub", model.NewGSNNode(model.KindGoal, "Sub claim"))
	f.AddDiagram(sub)

	c1, err := f.CloneNode(primary, nil, 100, 100)
	require.NoError(t, err)
	c2, err := f.CloneNode(primary, nil, 200, 200)
	require.NoError(t, err)
	sub.AddNode(c1.(*model.GSNNode))
	sub.AddNode(c2.(*model.GSNNode))
	return f, primary, c1.(*model.GSNNode), c2.(*model.GSNNode)
}

func TestSynchronizeFromClone(t *testing.T) {
	f, primary, c1, c2 := fanoutFixture(t)

	c1X, c1Y := c1.Position()
	c2X, c2Y := c2.Position()

	c1.Name = "Updated"
	c1.Description = "refined claim"

	rep, err := NewEngine(nil).Synchronize(c1, f)
	require.NoError(t, err)
	require.Equal(t, primary.ID(), rep.Identity)
	require.Len(t, rep.Updated, 2)
	require.Empty(t, rep.Skipped)

	require.Equal(t, "Updated", primary.Name)
	require.Equal(t, "Updated", c2.Name)
	require.Equal(t, "refined claim", primary.Description)

	// Labels decorate per instance.
	require.Equal(t, "Updated", primary.Label())
	require.Equal(t, "Updated (clone)", c1.Label())
	require.Equal(t, "Updated (clone)", c2.Label())

	// Local fields stay untouched.
	x, y := c1.Position()
	require.Equal(t, c1X, x)
	require.Equal(t, c1Y, y)
	x, y = c2.Position()
	require.Equal(t, c2X, x)
	require.Equal(t, c2Y, y)
	px, py := primary.Position()
	require.Equal(t, 50.0, px)
	require.Equal(t, 50.0, py)
}

func TestSynchronizeFromPrimary(t *testing.T) {
	f, primary, c1, c2 := fanoutFixture(t)

	primary.Name = "Updated"
	_, err := NewEngine(nil).Synchronize(primary, f)
	require.NoError(t, err)

	require.Equal(t, "Updated", c1.Name)
	require.Equal(t, "Updated", c2.Name)
}

func TestSynchronizePrimaryWithoutClones(t *testing.T) {
	f := model.NewForest()
	lone := model.NewGSNNode(model.KindGoal, "Only")
	f.AddDiagram(model.NewDiagram("Main", lone))

	rep, err := NewEngine(nil).Synchronize(lone, f)
	require.NoError(t, err)
	require.Empty(t, rep.Updated)
	require.Equal(t, "Only", lone.Label())
}

func TestSynchronizeSkipsBrokenInstances(t *testing.T) {
	f, primary, c1, c2 := fanoutFixture(t)
	c2.SetOriginal(nil)

	primary.Name = "Updated"
	rep, err := NewEngine(nil).Synchronize(primary, f)
	require.NoError(t, err)

	// The broken clone is reported and left alone; the sound one updates.
	require.Len(t, rep.Skipped, 1)
	require.Equal(t, c2.ID(), rep.Skipped[0].NodeID)
	require.Equal(t, "Updated", c1.Name)
	require.Equal(t, "Orig", c2.Name)
}

func TestSynchronizeAbortsBeforeAnyWrite(t *testing.T) {
	// A corrupted document can pair instances of different flavors under
	// one identity; the value copy then fails field validation and the
	// whole call must abort without touching anything.
	f := model.NewForest()
	primary := f.NewFaultTreeNode(model.KindBasicEvent, "BE1")
	root := f.NewFaultTreeNode(model.KindTopEvent, "TE")
	root.AddChild(primary)
	f.AddTree(root)

	impostor := model.NewGSNNode(model.KindGoal, "BE1")
	impostor.SetOriginal(primary)
	f.AddDiagram(model.NewDiagram("Arg", impostor))

	sound, err := f.CloneNode(primary, nil, 100, 100)
	require.NoError(t, err)
	root.AddChild(sound)

	primary.Name = "Updated"
	_, err = NewEngine(nil).Synchronize(primary, f)
	require.Error(t, err)
	require.ErrorIs(t, err, model.ErrUnknownField)

	// No partial writes: even the sound clone kept its old name.
	require.Equal(t, "BE1", sound.(*model.FaultTreeNode).Name)
	require.Equal(t, "BE1", impostor.Name)
}

func TestSynchronizeBrokenEditedNode(t *testing.T) {
	f, _, c1, _ := fanoutFixture(t)
	c1.SetOriginal(nil)

	_, err := NewEngine(nil).Synchronize(c1, f)
	require.ErrorIs(t, err, model.ErrBrokenIdentity)
}

