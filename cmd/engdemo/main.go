// Package main demonstrates driving the node-processing engine end to
// end over a small 0/1 knapsack instance.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"

	"github.com/gitrdm/mipcore/pkg/mipcore"
)

func main() {
	fmt.Println("=== mipcore Engine Demo ===")
	fmt.Println()

	knapsackDemo()
}

// knapsackDemo builds a 3-item 0/1 knapsack, wires a branching rule and
// an integrality constraint handler around the gonum reference LP
// kernel, and runs the tree driver to completion.
func knapsackDemo() {
	fmt.Println("1. Knapsack (3 items, capacity 4):")

	weights := []float64{2, 3, 4}
	values := []float64{3, 4, 5}
	capacity := 4.0

	// The engine minimizes; knapsack maximizes value, so the objective
	// coefficients are negated values.
	vars := make([]*mipcore.Variable, len(weights))
	for i := range vars {
		v := mipcore.NewVariable(mipcore.VarID(i), -values[i], 0, 1, false)
		v.Initial = true
		vars[i] = v
	}

	kernel := mipcore.NewGonumLPKernel(vars)

	prob := mipcore.NewProb(vars, 0, math.Inf(-1))

	bc := &branchContext{tree: nil} // tree wired in below, once the engine exists

	integrality := &integralityHandler{vars: vars}
	capacityRow := &capacityRowHandler{kernel: kernel, weights: weights, capacity: capacity}
	prob.RegisterConsHandler(capacityRow)
	prob.RegisterConsHandler(integrality)

	branchRule := &mostFractionalBranch{vars: vars, bc: bc}
	prob.RegisterBranchRule(branchRule)

	console := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(zerolog.InfoLevel)
	logger := mipcore.NewLogger(console)

	eng := mipcore.NewEngine(prob, kernel, mipcore.WithLogger(logger))
	bc.tree = eng.Tree
	integrality.primal = eng.Primal
	integrality.cands = eng.Cands

	nodeSolveCtxFactory := func(focus mipcore.NodeID, atRoot bool, nRuns int) *mipcore.NodeSolveContext {
		bc.focus = focus
		return &mipcore.NodeSolveContext{
			Prob: eng.Prob, Set: eng.Set, Stat: eng.Stat, Tree: eng.Tree, LP: eng.LP,
			Primal: eng.Primal, Sepa: eng.Sepa, Cands: eng.Cands, Conflict: eng.Conflict,
			Relax: eng.Relax, Cutpool: eng.Cutpool, Events: eng.Events,
			Focus: focus, AtRoot: atRoot, NRuns: nRuns,
			BranchRules: []mipcore.BranchRule{branchRule},
		}
	}

	res := eng.Solve(nodeSolveCtxFactory, nil)

	fmt.Printf("   status: %s\n", res.Status)
	if eng.Primal.BestSolution == nil {
		fmt.Println("   no feasible solution found")
		return
	}
	fmt.Printf("   best value: %.1f\n", -eng.Primal.CutoffBound)
	for i, v := range vars {
		fmt.Printf("   x%d = %.0f (weight %.0f, value %.0f)\n", i, eng.Primal.BestSolution[v.ID], weights[i], values[i])
	}
}

// capacityRowHandler installs the knapsack's single capacity row into the
// LP kernel at root. It is a static model row, not a derived cut, so it
// bypasses the sepastore and talks to the kernel directly.
type capacityRowHandler struct {
	kernel   *mipcore.GonumLPKernel
	weights  []float64
	capacity float64
}

func (h *capacityRowHandler) Name() string     { return "capacity-row" }
func (h *capacityRowHandler) SepaPriority() int { return 0 }
func (h *capacityRowHandler) EnfoPriority() int { return 0 }

func (h *capacityRowHandler) InitLP(sepa *mipcore.Sepastore, atRoot bool) (cutoff bool) {
	if atRoot {
		h.kernel.AddRow(h.weights, math.Inf(-1), h.capacity)
	}
	return false
}

func (h *capacityRowHandler) SeparateLP(sepa *mipcore.Sepastore, depth int, boundDist float64, onlyDelayed bool) mipcore.SepaResult {
	return mipcore.SepaDidNotRun
}

func (h *capacityRowHandler) SeparateSol(sepa *mipcore.Sepastore, sol mipcore.Solution, depth int, onlyDelayed bool) mipcore.SepaResult {
	return mipcore.SepaDidNotRun
}

func (h *capacityRowHandler) Propagate(depth int, full, onlyDelayed bool) mipcore.PropResult {
	return mipcore.PropDidNotRun
}

func (h *capacityRowHandler) EnforceLP(infeasible bool) mipcore.EnfoResult { return mipcore.EnfoFeasible }

func (h *capacityRowHandler) EnforcePseudo(infeasible, objInfeasible, forced bool) mipcore.EnfoResult {
	return mipcore.EnfoFeasible
}

func (h *capacityRowHandler) WasSepaDelayed() bool { return false }
func (h *capacityRowHandler) WasPropDelayed() bool { return false }

// integralityHandler enforces x in {0, 1}: it either records a primal
// solution when the LP relaxation is already all-integer, or flags a
// fractional candidate for branching. No core driver submits solutions
// on a plug-in's behalf, so AddSolution is called here.
type integralityHandler struct {
	vars   []*mipcore.Variable
	primal *mipcore.Primal
	cands  *mipcore.BranchCandStore
}

func (h *integralityHandler) Name() string     { return "integrality" }
func (h *integralityHandler) SepaPriority() int { return 0 }
func (h *integralityHandler) EnfoPriority() int { return 0 }

func (h *integralityHandler) InitLP(sepa *mipcore.Sepastore, atRoot bool) (cutoff bool) { return false }

func (h *integralityHandler) SeparateLP(sepa *mipcore.Sepastore, depth int, boundDist float64, onlyDelayed bool) mipcore.SepaResult {
	return mipcore.SepaDidNotRun
}

func (h *integralityHandler) SeparateSol(sepa *mipcore.Sepastore, sol mipcore.Solution, depth int, onlyDelayed bool) mipcore.SepaResult {
	return mipcore.SepaDidNotRun
}

func (h *integralityHandler) Propagate(depth int, full, onlyDelayed bool) mipcore.PropResult {
	return mipcore.PropDidNotRun
}

const integralityTol = 1e-6

func (h *integralityHandler) EnforceLP(infeasible bool) mipcore.EnfoResult {
	h.cands.Ext = nil

	var fracID mipcore.VarID
	found := false
	for _, v := range h.vars {
		if !v.HasLPSolVal {
			continue
		}
		frac := v.LPSolVal - math.Floor(v.LPSolVal)
		if frac > integralityTol && frac < 1-integralityTol {
			fracID = v.ID
			found = true
			break
		}
	}

	if found {
		h.cands.Ext = append(h.cands.Ext, fracID)
		return mipcore.EnfoInfeasible
	}

	sol := make(mipcore.Solution, len(h.vars))
	for _, v := range h.vars {
		val := v.LocalLB
		if v.HasLPSolVal {
			val = math.Round(v.LPSolVal)
		}
		sol[v.ID] = val
	}
	objVal := 0.0
	for _, v := range h.vars {
		objVal += v.ObjCoef * sol[v.ID]
	}
	h.primal.AddSolution(sol, objVal)
	return mipcore.EnfoFeasible
}

func (h *integralityHandler) EnforcePseudo(infeasible, objInfeasible, forced bool) mipcore.EnfoResult {
	h.cands.Pseudo = nil
	for _, v := range h.vars {
		if !v.IsFixed() {
			h.cands.Pseudo = append(h.cands.Pseudo, v.ID)
		}
	}
	if len(h.cands.Pseudo) == 0 {
		return mipcore.EnfoFeasible
	}
	return mipcore.EnfoInfeasible
}

func (h *integralityHandler) WasSepaDelayed() bool { return false }
func (h *integralityHandler) WasPropDelayed() bool { return false }

// branchContext carries the node the engine currently has focused, since
// BranchRule's interface is not handed the tree or focus directly.
type branchContext struct {
	tree  *mipcore.Tree
	focus mipcore.NodeID
}

// mostFractionalBranch splits on the first fractional candidate the
// integrality handler flagged.
type mostFractionalBranch struct {
	vars []*mipcore.Variable
	bc   *branchContext
}

func (r *mostFractionalBranch) Name() string { return "most-fractional" }
func (r *mostFractionalBranch) Priority() int { return 0 }

func (r *mostFractionalBranch) ExecLP(cands *mipcore.BranchCandStore) mipcore.BranchResult {
	if !cands.HasExt() {
		return mipcore.BranchDidNotRun
	}
	varID := cands.Ext[0]
	v := r.vars[varID]
	val := v.LPSolVal
	floor := math.Floor(val)
	ceil := floor + 1

	parent := r.bc.focus
	origLB, origUB := v.LocalLB, v.LocalUB

	down := r.bc.tree.CreateChild(parent, mipcore.NodeChild, false)
	r.bc.tree.RecordBranchingBoundChange(down, varID, mipcore.BoundUpper, floor)
	v.LocalLB, v.LocalUB = origLB, origUB // restore before recording the sibling's change

	up := r.bc.tree.CreateChild(parent, mipcore.NodeSibling, false)
	r.bc.tree.RecordBranchingBoundChange(up, varID, mipcore.BoundLower, ceil)
	v.LocalLB, v.LocalUB = origLB, origUB // restore again: the parent is about to be closed, not refocused

	fmt.Printf("   branching on x%d = %.3f -> child %d (<= %.0f), child %d (>= %.0f)\n", varID, val, down, floor, up, ceil)

	cands.Reset()
	return mipcore.BranchBranched
}

func (r *mostFractionalBranch) ExecPseudo(cands *mipcore.BranchCandStore) mipcore.BranchResult {
	return mipcore.BranchDidNotRun
}
