package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveOriginalPrimary(t *testing.T) {
	n := NewGSNNode(KindGoal, "G1")
	got, err := ResolveOriginal(n)
	require.NoError(t, err)
	require.Same(t, n, got)
}

func TestResolveOriginalClone(t *testing.T) {
	f := NewForest()
	primary := NewGSNNode(KindGoal, "G1")
	clone, err := f.CloneNode(primary, nil, 100, 100)
	require.NoError(t, err)

	got, err := ResolveOriginal(clone)
	require.NoError(t, err)
	require.Same(t, Node(primary), got)
}

func TestResolveOriginalChain(t *testing.T) {
	// A clone of a clone still records the primary directly, but a loaded
	// document may carry an intermediate hop; resolution walks through it.
	primary := NewGSNNode(KindGoal, "G1")
	mid := NewGSNNode(KindGoal, "G1")
	mid.SetOriginal(primary)
	leaf := NewGSNNode(KindGoal, "G1")
	leaf.SetOriginal(mid)

	got, err := ResolveOriginal(leaf)
	require.NoError(t, err)
	require.Same(t, Node(primary), got)
}

func TestResolveOriginalDangling(t *testing.T) {
	n := NewGSNNode(KindGoal, "G1")
	n.SetOriginal(nil)

	_, err := ResolveOriginal(n)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBrokenIdentity)

	var be *BrokenIdentityError
	require.True(t, errors.As(err, &be))
	require.Equal(t, n.ID(), be.NodeID)
}

func TestResolveOriginalCycle(t *testing.T) {
	a := NewGSNNode(KindGoal, "G1")
	b := NewGSNNode(KindGoal, "G1")
	a.SetOriginal(b)
	b.SetOriginal(a)

	_, err := ResolveOriginal(a)
	require.ErrorIs(t, err, ErrBrokenIdentity)

	var be *BrokenIdentityError
	require.True(t, errors.As(err, &be))
	require.Equal(t, maxResolveHops, be.Hops)
}
