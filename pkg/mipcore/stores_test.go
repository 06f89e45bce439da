package mipcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimal_AddSolutionOnlyAcceptsStrictImprovement(t *testing.T) {
	p := NewPrimal()
	assert.True(t, p.AddSolution(Solution{0: 1}, 10))
	assert.Equal(t, 10.0, p.CutoffBound)

	assert.False(t, p.AddSolution(Solution{0: 2}, 10), "equal objective is not a strict improvement")
	assert.False(t, p.AddSolution(Solution{0: 3}, 15), "worse objective must be rejected")
	assert.True(t, p.AddSolution(Solution{0: 4}, 5))
	assert.Equal(t, 5.0, p.CutoffBound)
	assert.EqualValues(t, 4, p.NSolutions)
	assert.EqualValues(t, 2, p.NBestSolutions)
}

func TestCutpool_AddDedupsByKey(t *testing.T) {
	cp := NewCutpool()
	cp.Add(Cut{Key: "k1", LHS: 0, RHS: 5})
	cp.Add(Cut{Key: "k1", LHS: 0, RHS: 10})
	assert.Equal(t, 5.0, cp.cuts["k1"].RHS, "the second insert with the same key must not overwrite the first")
}

func TestCutpool_SeparateFindsViolatedCuts(t *testing.T) {
	cp := NewCutpool()
	cp.Add(Cut{Key: "k1", Coeffs: map[VarID]float64{0: 1}, LHS: 0, RHS: 5})
	violated := cp.Separate(Solution{0: 10})
	assert.Len(t, violated, 1)

	satisfied := cp.Separate(Solution{0: 3})
	assert.Len(t, satisfied, 0)
}

func TestSepastore_DrainClearsPending(t *testing.T) {
	s := NewSepastore()
	s.Add(Cut{Key: "a"})
	s.Add(Cut{Key: "b"})
	assert.Equal(t, 2, s.NCuts())
	cuts := s.Drain()
	assert.Len(t, cuts, 2)
	assert.Equal(t, 0, s.NCuts())
}

func TestPricestore_ResetTempBoundsUndoesInReverse(t *testing.T) {
	vars := []*Variable{NewVariable(0, 1, 0, 10, false)}
	p := NewPricestore()
	p.RecordTempBoundChange(DomChg{Var: 0, Side: BoundLower, OldBound: 0, NewBound: 3})
	vars[0].LocalLB = 3
	p.RecordTempBoundChange(DomChg{Var: 0, Side: BoundLower, OldBound: 3, NewBound: 6})
	vars[0].LocalLB = 6

	p.ResetTempBounds(vars)

	assert.Equal(t, 0.0, vars[0].LocalLB)
}
