package mipcore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_WiresDefaults(t *testing.T) {
	prob := NewProb([]*Variable{NewVariable(0, 1, 0, 1, false)}, 0, math.Inf(1))
	e := NewEngine(prob, &fakeLPKernel{})

	require.NotNil(t, e.Stat)
	require.NotNil(t, e.Tree)
	require.NotNil(t, e.Primal)
	assert.Equal(t, math.Inf(1), e.Primal.CutoffBound)
	assert.IsType(t, BestBoundSelector{}, e.Selector)
}

func TestNewEngine_OptionsOverrideDefaults(t *testing.T) {
	prob := NewProb(nil, 0, math.Inf(1))
	custom := DefaultSet()
	custom.LimitNodes = 5
	e := NewEngine(prob, &fakeLPKernel{}, WithSet(custom))

	assert.EqualValues(t, 5, e.Set.LimitNodes)
}

func TestBestBoundSelector_PicksLowestLowerBound(t *testing.T) {
	vars := []*Variable{NewVariable(0, 1, 0, 1, false)}
	tree := NewTree(vars)
	root := tree.Root()
	tree.Focus(root)
	a := tree.CreateChild(root, NodeChild, false)
	b := tree.CreateChild(root, NodeChild, false)
	tree.Node(a).Lower = 10
	tree.Node(b).Lower = 2
	tree.Close(root)

	sel := BestBoundSelector{}
	picked := sel.SelectNode(tree)

	assert.Equal(t, b, picked)
}

func TestBestBoundSelector_ReturnsNoNodeWhenTreeExhausted(t *testing.T) {
	vars := []*Variable{NewVariable(0, 1, 0, 1, false)}
	tree := NewTree(vars)
	tree.Close(tree.Root())

	sel := BestBoundSelector{}
	assert.Equal(t, NoNode, sel.SelectNode(tree))
}

func TestEngine_SelectNode(t *testing.T) {
	prob := NewProb([]*Variable{NewVariable(0, 1, 0, 1, false)}, 0, math.Inf(1))
	e := NewEngine(prob, &fakeLPKernel{})

	id, err := e.SelectNode()
	require.NoError(t, err)
	assert.Equal(t, e.Tree.Root(), id)

	e.Tree.Close(e.Tree.Root())
	_, err = e.SelectNode()
	assert.ErrorIs(t, err, ErrNoNodeSelected)
}
