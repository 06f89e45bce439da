package mipcore

import "math"

// nodesolver.go implements the Node solver (§4.11): the outer fixed
// point driving propagate -> relax -> LP -> enforce -> branch for one
// focus node.

// NodeSolveResult is solve_node's return value, feeding the tree driver's
// event emission (§4.12 step 5).
type NodeSolveResult struct {
	Cutoff     bool
	Infeasible bool
	Branched   bool
	Restart    bool
}

// NodeSolveContext bundles everything one node-solver invocation needs.
type NodeSolveContext struct {
	Prob   *Prob
	Set    *Set
	Stat   *Stat
	Tree   *Tree
	LP     *LP
	Primal *Primal
	Sepa   *Sepastore
	Cands  *BranchCandStore
	Conflict *Conflict
	Relax  *relaxatorState
	Cutpool *Cutpool
	Events  *EventFilter

	Focus     NodeID
	AtRoot    bool
	NRuns     int
	LastRunNVars int // variable count at the start of the last run, for the immediate-restart check (step 15)

	BeforeNodeHeurs    []Heuristic
	AfterPropLoopHeurs []Heuristic
	AfterLPLoopHeurs   []Heuristic
	AfterNodeHeurs     []Heuristic

	BranchRules []BranchRule
}

// SolveNode implements §4.11.
func SolveNode(ctx *NodeSolveContext) NodeSolveResult {
	node := ctx.Tree.Node(ctx.Focus)
	set := ctx.Set

	focusHasLP := (set.LPSolveDepth < 0 || node.Depth <= set.LPSolveDepth) &&
		(set.LPSolveFreq == 0 || node.Depth%set.LPSolveFreq == 0) &&
		PseudoObjVal(ctx.Prob.Vars) < ctx.Primal.CutoffBound

	for _, h := range ctx.BeforeNodeHeurs {
		h.Exec(node.Depth, -1, TimingBeforeNode, 0)
	}

	if ctx.LP.ResolveLPError {
		focusHasLP = false
	}

	var cutoff, infeasible, branched, restart bool
	propagateAgain := true
	solveLPAgain := focusHasLP
	solveRelaxAgain := true
	nLPErrors := 0
	forcedLPSolve := false
	pricingAborted := false

	for !cutoff && (solveRelaxAgain || solveLPAgain || propagateAgain) && nLPErrors < 10 && !restart {
		// 1. Apply bounding.
		if br := ApplyBounding(node, ctx.Prob.Vars, ctx.Primal.CutoffBound, set.ExactSolve, ctx.Conflict); br.Cutoff {
			cutoff = true
			break
		}

		// 2. Propagate.
		if propagateAgain {
			wasFlushed := ctx.LP.Flushed
			pr := Propagate(ctx.Prob, set, node.Depth, 0, false, ctx.AtRoot)
			if pr.Cutoff {
				cutoff = true
				break
			}
			node.Propagated = true
			if wasFlushed && !ctx.LP.Flushed {
				solveLPAgain = true
			}
			solveRelaxAgain = true
			propagateAgain = false
			if br := ApplyBounding(node, ctx.Prob.Vars, ctx.Primal.CutoffBound, set.ExactSolve, ctx.Conflict); br.Cutoff {
				cutoff = true
				break
			}
		}

		// 3. After-prop-loop heuristics.
		for _, h := range ctx.AfterPropLoopHeurs {
			if h.Exec(node.Depth, -1, TimingAfterPropLoop, 0) {
				propagateAgain = true
			}
		}

		// 4. Pre-LP relaxators.
		rr := SolveRelax(ctx.Prob, node, node.Depth, true)
		if rr.Cutoff {
			cutoff = true
			break
		}
		propagateAgain = propagateAgain || rr.PropAgain
		solveLPAgain = solveLPAgain || rr.SolveLPAgain
		solveRelaxAgain = rr.SolveRelaxAgain // this call just ran the pre-LP relaxators; only a fresh RelaxSuspended verdict asks for another round
		if cuts := ctx.Sepa.Drain(); len(cuts) > 0 {
			ctx.LP.MarkRowsAdded(len(cuts))
		}
		if br := ApplyBounding(node, ctx.Prob.Vars, ctx.Primal.CutoffBound, set.ExactSolve, ctx.Conflict); br.Cutoff {
			cutoff = true
			break
		}

		// 5. LP solve + price-and-cut.
		forcedEnforcement := false
		lpRequested := solveLPAgain
		solveLPAgain = false // consumed here; later steps set it again to ask for another LP pass
		if lpRequested && focusHasLP {
			if !ctx.LP.Solved {
				cr := ConstructCurrentLP(ctx.Prob, ctx.LP, ctx.Sepa, ctx.AtRoot)
				if cr.Cutoff {
					cutoff = true
					break
				}
				if err := ctx.LP.SolveAndEval(-1, false, true); err != nil {
					nLPErrors, forcedEnforcement, focusHasLP = handleLPError(ctx.LP, forcedLPSolve, nLPErrors)
				} else {
					ctx.Stat.IncNInitialLPs()
					if ctx.LP.SolStat == SolStatOptimal {
						UpdatePseudocost(ctx.Tree, ctx.Prob.Vars, node.LPStateFork, ctx.Focus, ctx.LP.ObjVal)
					}
				}
			}
			if focusHasLP && !ctx.LP.ResolveLPError {
				pc := &PriceAndCutContext{
					Prob: ctx.Prob, Set: set, Stat: ctx.Stat, Tree: ctx.Tree, LP: ctx.LP, Primal: ctx.Primal,
					Cutpool: ctx.Cutpool, Events: ctx.Events,
					Focus: ctx.Focus, Depth: node.Depth, AtRoot: ctx.AtRoot, NRuns: ctx.NRuns,
				}
				res := PriceAndCut(pc)
				pricingAborted = pricingAborted || res.PricingAborted
				if res.LPError {
					nLPErrors, forcedEnforcement, focusHasLP = handleLPError(ctx.LP, forcedLPSolve, nLPErrors)
				} else if res.Cutoff {
					cutoff = true
					break
				}
				if ctx.LP.SolStat == SolStatIterLimit || ctx.LP.SolStat == SolStatTimeLimit {
					focusHasLP = false
					forcedEnforcement = true
				}
				if set.ExactSolve && ctx.LP.SolStat == SolStatInfeasible {
					if node.Lower < ctx.Primal.CutoffBound && (ctx.Cands.HasLPFrac() || ctx.Cands.HasPseudo()) {
						focusHasLP = false
					} else {
						// Exact infeasibility could not be proved and no
						// branching candidates remain: documented open
						// question (§9).
						panic(&FatalError{Plugin: "exact-solve", Reason: ErrExactInfeasibleUnresolved.Error()})
					}
				}
			}
		}
		ctx.Stat.IncNLPs()
		if br := ApplyBounding(node, ctx.Prob.Vars, ctx.Primal.CutoffBound, set.ExactSolve, ctx.Conflict); br.Cutoff {
			cutoff = true
			break
		}

		// 6. Post-LP relaxators.
		rr2 := SolveRelax(ctx.Prob, node, node.Depth, false)
		if rr2.Cutoff {
			cutoff = true
			break
		}
		propagateAgain = propagateAgain || rr2.PropAgain
		solveLPAgain = solveLPAgain || rr2.SolveLPAgain
		solveRelaxAgain = rr2.SolveRelaxAgain // this call just ran the post-LP relaxators; only a fresh RelaxSuspended verdict asks for another round
		if cuts := ctx.Sepa.Drain(); len(cuts) > 0 {
			ctx.LP.MarkRowsAdded(len(cuts))
		}
		if br := ApplyBounding(node, ctx.Prob.Vars, ctx.Primal.CutoffBound, set.ExactSolve, ctx.Conflict); br.Cutoff {
			cutoff = true
			break
		}

		// 7. Update loop-status flags.
		if branched {
			propagateAgain, solveRelaxAgain = false, false
		}

		// 8. After-LP-loop heuristics.
		for _, h := range ctx.AfterLPLoopHeurs {
			h.Exec(node.Depth, -1, TimingAfterLPLoop, 0)
		}
		if ctx.AtRoot && ctx.NRuns == 0 {
			for _, h := range ctx.AfterNodeHeurs {
				h.Exec(node.Depth, -1, TimingAfterNode, 0)
			}
		}
		if br := ApplyBounding(node, ctx.Prob.Vars, ctx.Primal.CutoffBound, set.ExactSolve, ctx.Conflict); br.Cutoff {
			cutoff = true
			break
		}

		// 9. Heuristic invalidated the LP.
		if ctx.LP.ResolveLPError {
			nLPErrors, _, focusHasLP = handleLPError(ctx.LP, forcedLPSolve, nLPErrors)
		}

		// 11. Enforcement.
		er := EnforceConstraints(ctx.Prob, ctx.Sepa, ctx.Relax, focusHasLP && ctx.LP.Solved,
			infeasible, node.Lower >= ctx.Primal.CutoffBound, forcedEnforcement,
			ctx.LP.SolStat == SolStatObjLimit)
		if er.Cutoff {
			cutoff = true
			infeasible = true
			break
		}
		infeasible = er.Infeasible
		branched = er.Branched
		propagateAgain = propagateAgain || er.PropagateAgain
		solveLPAgain = solveLPAgain || er.SolveLPAgain
		solveRelaxAgain = solveRelaxAgain || er.SolveRelaxAgain

		// 12. Pricing aborted but feasible: force branching.
		if pricingAborted && !cutoff && !infeasible && !branched {
			ctx.Primal.AddSolution(CurrentSolution(ctx.Prob.Vars), ctx.LP.ObjVal)
			infeasible = true
		}

		// 13. Branching.
		if infeasible && !cutoff && !branched && !propagateAgain && !solveLPAgain && !solveRelaxAgain {
			brResult := runBranching(ctx)
			switch brResult {
			case BranchBranched:
				branched = true
			case BranchCutoff:
				cutoff = true
			case BranchDidNotRun:
				if len(ctx.Prob.ActivePricers()) == 0 && ctx.Prob.NContinuous == 0 {
					cutoff = true
				} else {
					forcedLPSolve = true
					solveLPAgain = true
				}
			}
		}

		// 14. Apply cuts produced by branching rules.
		if cuts := ctx.Sepa.Drain(); len(cuts) > 0 {
			ctx.LP.MarkRowsAdded(len(cuts))
		}
		if br := ApplyBounding(node, ctx.Prob.Vars, ctx.Primal.CutoffBound, set.ExactSolve, ctx.Conflict); br.Cutoff {
			cutoff = true
			break
		}

		// 15. Immediate-restart condition (root only).
		if ctx.AtRoot && ctx.LastRunNVars > 0 {
			fixed := countFixed(ctx.Prob.Vars)
			if float64(fixed)/float64(ctx.LastRunNVars) >= set.PresolImmRestartFac &&
				(set.PresolMaxRestarts < 0 || int(ctx.Stat.NImmediateRestarts) < set.PresolMaxRestarts) {
				restart = true
				ctx.Stat.NImmediateRestarts++
			}
		}
	}

	for _, cc := range ctx.Conflict.Flush() {
		_ = cc // handed to the problem's constraint installer by the caller in a fuller wiring
	}

	if nLPErrors >= 10 {
		panic(&FatalError{Plugin: "lp-kernel", Reason: "exceeded 10 LP errors in one node"})
	}

	if cutoff {
		node.Lower = math.Inf(1)
		infeasible = true
		restart = false
	}

	return NodeSolveResult{Cutoff: cutoff, Infeasible: infeasible, Branched: branched, Restart: restart}
}

// handleLPError implements the §4.11 step 5 LP-error fallback: fatal
// under forcedLPSolve, otherwise downgrade to pseudo and keep counting.
func handleLPError(lp *LP, forcedLPSolve bool, nLPErrors int) (newCount int, forcedEnforcement bool, focusHasLP bool) {
	if forcedLPSolve {
		panic(&FatalError{Plugin: "lp-kernel", Reason: "LP error under forced LP solve"})
	}
	lp.ResolveLPError = false
	return nLPErrors + 1, true, false
}

func countFixed(vars []*Variable) int {
	n := 0
	for _, v := range vars {
		if v.IsFixed() {
			n++
		}
	}
	return n
}

// runBranching implements §4.11 step 13's source-ordering: LP branching
// if fractional candidates exist, else external candidates, else pseudo.
func runBranching(ctx *NodeSolveContext) BranchResult {
	nonNeg, neg := splitByPriority(len(ctx.BranchRules), func(i int) int { return ctx.BranchRules[i].Priority() })
	order := append(append([]int{}, nonNeg...), neg...)

	if ctx.Cands.HasLPFrac() || ctx.Cands.HasExt() {
		for _, i := range order {
			if r := ctx.BranchRules[i].ExecLP(ctx.Cands); r != BranchDidNotRun {
				return r
			}
		}
	}
	for _, i := range order {
		if r := ctx.BranchRules[i].ExecPseudo(ctx.Cands); r != BranchDidNotRun {
			return r
		}
	}
	return BranchDidNotRun
}
