package mipcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoVarTree() (*Tree, []*Variable) {
	vars := []*Variable{
		NewVariable(0, 1, 0, 10, false),
		NewVariable(1, 1, 0, 10, false),
	}
	return NewTree(vars), vars
}

func TestTree_FocusAppliesAndUndoesBoundChanges(t *testing.T) {
	tree, vars := twoVarTree()
	root := tree.Root()
	tree.Focus(root)

	child := tree.CreateChild(root, NodeChild, false)
	tree.RecordBoundChange(child, 0, BoundLower, 3, OriginBranching)

	cutoff := tree.Focus(child)
	require.False(t, cutoff)
	assert.Equal(t, 3.0, vars[0].LocalLB)

	sibling := tree.CreateChild(root, NodeSibling, false)
	tree.RecordBoundChange(sibling, 0, BoundLower, 7, OriginBranching)

	cutoff = tree.Focus(sibling)
	require.False(t, cutoff)
	assert.Equal(t, 7.0, vars[0].LocalLB, "moving focus away from child must undo its bound change first")

	tree.Focus(child)
	assert.Equal(t, 3.0, vars[0].LocalLB, "refocusing child must reapply its own bound change")
}

func TestTree_FocusRefusesClosedNode(t *testing.T) {
	tree, _ := twoVarTree()
	root := tree.Root()
	tree.Focus(root)
	child := tree.CreateChild(root, NodeChild, false)
	tree.Close(child)

	cutoff := tree.Focus(child)
	assert.True(t, cutoff)
}

func TestTree_CloseUpdatesOpenCount(t *testing.T) {
	tree, _ := twoVarTree()
	require.Equal(t, 1, tree.OpenCount())
	root := tree.Root()
	c1 := tree.CreateChild(root, NodeChild, false)
	_ = tree.CreateChild(root, NodeChild, false)
	assert.Equal(t, 3, tree.OpenCount())
	tree.Close(c1)
	assert.Equal(t, 2, tree.OpenCount())
}

func TestTree_PathDepth(t *testing.T) {
	tree, _ := twoVarTree()
	root := tree.Root()
	tree.Focus(root)
	child := tree.CreateChild(root, NodeChild, false)
	tree.Focus(child)

	assert.Equal(t, root, tree.PathDepth(0))
	assert.Equal(t, child, tree.PathDepth(1))
	assert.Equal(t, NoNode, tree.PathDepth(2))
}
