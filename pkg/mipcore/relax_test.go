package mipcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveRelax_CutoffShortCircuits(t *testing.T) {
	r := &fakeRelaxator{name: "a", priority: 1, result: RelaxCutoff}
	prob := &Prob{Relaxators: []Relaxator{r}}
	node := &Node{Lower: 0}

	res := SolveRelax(prob, node, 0, true)

	assert.True(t, res.Cutoff)
}

func TestSolveRelax_SuccessRaisesNodeLowerBound(t *testing.T) {
	r := &fakeRelaxator{name: "a", priority: 1, result: RelaxSuccess, lb: 42}
	prob := &Prob{Relaxators: []Relaxator{r}}
	node := &Node{Lower: 0}

	SolveRelax(prob, node, 0, true)

	assert.Equal(t, 42.0, node.Lower)
}

func TestSolveRelax_PhaseFilteringByPrioritySign(t *testing.T) {
	before := &fakeRelaxator{name: "before", priority: 1, result: RelaxSuccess, lb: 1}
	after := &fakeRelaxator{name: "after", priority: -1, result: RelaxSuccess, lb: 99}
	prob := &Prob{Relaxators: []Relaxator{before, after}}
	node := &Node{Lower: 0}

	SolveRelax(prob, node, 0, true) // beforeLP phase: only non-negative priority runs

	assert.Equal(t, 1.0, node.Lower, "a negative-priority (post-LP) relaxator must not run in the pre-LP phase")
}

func TestRelaxatorState_MarkUnsolvedResetsEverything(t *testing.T) {
	rs := newRelaxatorState()
	rs.valid = true
	rs.solved["a"] = true
	rs.MarkRelaxsUnsolved()
	assert.False(t, rs.valid)
	assert.False(t, rs.solved["a"])
}
