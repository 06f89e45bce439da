package mipcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdatePseudocost_AttributesGainToBranchingVar(t *testing.T) {
	tree, vars := twoVarTree()
	root := tree.Root()
	tree.Focus(root)
	root0 := tree.Node(root)
	root0.Lower = 5

	child := tree.CreateChild(root, NodeChild, true) // fork is itself once solved
	vars[0].LPSolVal = 1.5                           // outside the new local bounds, so isValidPseudoCostUpdate accepts it
	tree.RecordBranchingBoundChange(child, 0, BoundLower, 3)

	tree.Focus(child)

	UpdatePseudocost(tree, vars, root, child, 8.0)

	assert.Greater(t, vars[0].PscDownWeightSum+vars[0].PscUpWeightSum, 0.0)
	assert.Equal(t, PCFlagNone, vars[0].PseudoCostFlag(), "flag must be reset after the update")
}

func TestUpdatePseudocost_NoForkIsNoop(t *testing.T) {
	tree, vars := twoVarTree()
	UpdatePseudocost(tree, vars, NoNode, tree.Root(), 10.0)
	assert.Equal(t, 0.0, vars[0].PscDownWeightSum)
}

func TestIsValidPseudoCostUpdate(t *testing.T) {
	v := NewVariable(0, 1, 0, 10, false)
	v.LocalLB, v.LocalUB = 3, 10

	assert.True(t, isValidPseudoCostUpdate(v, DomChg{Side: BoundLower, BranchLPVal: 1.5, NewBound: 3}))
	assert.False(t, isValidPseudoCostUpdate(v, DomChg{Side: BoundLower, BranchLPVal: 3, NewBound: 3}))
}
