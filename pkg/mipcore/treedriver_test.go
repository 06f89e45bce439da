package mipcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveCIP_SingleVarProblemTerminatesOptimal(t *testing.T) {
	v := NewVariable(0, 1, 0, 1, false)
	v.Initial = true
	vars := []*Variable{v}
	prob := &Prob{Vars: vars}

	tree := NewTree(vars)
	lp := NewLP(&fakeLPKernel{solStat: SolStatOptimal, objVal: 0})
	primal := NewPrimal()

	tdc := &TreeDriverContext{
		Prob: prob, Set: DefaultSet(), Stat: NewStat(), Tree: tree, LP: lp,
		Primal: primal, Sepa: NewSepastore(), Cands: NewBranchCandStore(),
		Conflict: NewConflict(), Relax: newRelaxatorState(), Events: NewEventFilter(),
		Logger: NopLogger(), Selector: BestBoundSelector{},
		NodeSolveCtxFactory: func(focus NodeID, atRoot bool, nRuns int) *NodeSolveContext {
			return &NodeSolveContext{
				Prob: prob, Set: DefaultSet(), Stat: NewStat(), Tree: tree, LP: lp,
				Primal: primal, Sepa: NewSepastore(), Cands: NewBranchCandStore(),
				Conflict: NewConflict(), Relax: newRelaxatorState(),
				Focus: focus, AtRoot: atRoot, NRuns: nRuns,
			}
		},
	}

	res := SolveCIP(tdc)

	require.False(t, res.Restart, "with the default conf_restartnum=0 the conflict-restart channel must stay disabled")
	assert.Equal(t, 0, tree.OpenCount())
}

func TestSolveCIP_EmptyTreeReturnsImmediately(t *testing.T) {
	vars := []*Variable{NewVariable(0, 1, 0, 1, false)}
	prob := &Prob{Vars: vars}
	tree := NewTree(vars)
	tree.Close(tree.Root())

	tdc := &TreeDriverContext{
		Prob: prob, Set: DefaultSet(), Stat: NewStat(), Tree: tree, LP: NewLP(&fakeLPKernel{}),
		Primal: NewPrimal(), Sepa: NewSepastore(), Cands: NewBranchCandStore(),
		Conflict: NewConflict(), Relax: newRelaxatorState(), Events: NewEventFilter(),
		Logger: NopLogger(), Selector: BestBoundSelector{},
		NodeSolveCtxFactory: func(focus NodeID, atRoot bool, nRuns int) *NodeSolveContext {
			t.Fatal("node solver must not be invoked when the tree starts exhausted")
			return nil
		},
	}

	res := SolveCIP(tdc)

	assert.False(t, res.Restart)
	assert.Equal(t, 0, tree.OpenCount())
}

func TestGlobalLower_IgnoresClosedNodes(t *testing.T) {
	vars := []*Variable{NewVariable(0, 1, 0, 1, false)}
	tree := NewTree(vars)
	root := tree.Root()
	tree.Node(root).Lower = 5
	child := tree.CreateChild(root, NodeChild, false)
	tree.Node(child).Lower = 1
	tree.Close(child)

	assert.Equal(t, 5.0, globalLower(tree))
}
