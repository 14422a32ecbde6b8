package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// registryFixture builds a forest with one goal appearing on two diagrams.
func registryFixture(t *testing.T) (*Forest, *GSNNode, Node) {
	t.Helper()
	f := NewForest()
	root := NewGSNNode(KindGoal, "Top claim")
	d1 := NewDiagram("Main", root)
	f.AddDiagram(d1)

	other := NewDiagram("Sub", NewGSNNode(KindGoal, "Sub claim"))
	f.AddDiagram(other)

	clone, err := f.CloneNode(root, nil, 100, 100)
	require.NoError(t, err)
	other.AddNode(clone.(*GSNNode))
	return f, root, clone
}

func TestRegistryRebuildIndexesByIdentity(t *testing.T) {
	f, root, clone := registryFixture(t)

	r := NewRegistry()
	r.Rebuild(f)

	instances := r.Instances(root.ID())
	require.Len(t, instances, 2)
	require.Contains(t, instances, Node(root))
	require.Contains(t, instances, clone)
	require.Empty(t, r.Validate())
}

func TestRegistryRemove(t *testing.T) {
	f, root, clone := registryFixture(t)

	r := NewRegistry()
	r.Rebuild(f)
	r.Remove(clone)
	require.Len(t, r.Instances(root.ID()), 1)

	r.Remove(root)
	require.Empty(t, r.Instances(root.ID()))
}

func TestRegistryReportsBrokenChains(t *testing.T) {
	f, root, clone := registryFixture(t)
	clone.SetOriginal(nil)

	r := NewRegistry()
	r.Rebuild(f)

	// The broken clone is excluded but reported; the rest still indexes.
	require.Len(t, r.Instances(root.ID()), 1)
	require.Len(t, r.Broken(), 1)
	require.Equal(t, clone.ID(), r.Broken()[0].NodeID)

	violations := r.Validate()
	require.Len(t, violations, 1)
	require.Equal(t, clone.ID(), violations[0].Identity)
}

func TestRegistryValidateFlagsOrphanedIdentity(t *testing.T) {
	f, root, clone := registryFixture(t)

	r := NewRegistry()
	r.Rebuild(f)

	// Removing the primary without promoting anyone leaves the clone's
	// identity without a primary instance.
	r.Remove(root)

	violations := r.Validate()
	require.Len(t, violations, 1)
	require.Equal(t, root.ID(), violations[0].Identity)
	require.Contains(t, violations[0].Problem, "no primary")
	require.Contains(t, r.Instances(root.ID()), clone)
}
