package mipcore

import "math"

// treedriver.go implements the Tree driver (§4.12): solve_cip's main
// loop. The stack-of-frames node-selection loop is ADAPTED from the
// teacher's search.go (DFSSearch/BFSSearch's explicit iterate-until-
// exhausted-or-stopped structure, including its ctx.Done()-style
// cooperative cancellation checks), generalized from a single linear
// constraint-store search to tree-of-nodes branch-and-bound.

// NodeSelector picks the next open node to focus, or NoNode if the tree
// is exhausted (§4.12 step 1).
type NodeSelector interface {
	SelectNode(tree *Tree) NodeID
}

// TreeDriverResult is solve_cip's return value.
type TreeDriverResult struct {
	Restart bool
	Status  Status
}

// TreeDriverContext bundles the engine-wide state the tree driver owns.
type TreeDriverContext struct {
	Prob     *Prob
	Set      *Set
	Stat     *Stat
	Tree     *Tree
	LP       *LP
	Primal   *Primal
	Sepa     *Sepastore
	Cands    *BranchCandStore
	Conflict *Conflict
	Relax    *relaxatorState
	Events   *EventFilter
	Logger   *Logger
	Selector NodeSelector

	AfterNodeHeurs []Heuristic
	NodeSolveCtxFactory func(focus NodeID, atRoot bool, nRuns int) *NodeSolveContext
}

// SolveCIP implements §4.12.
func SolveCIP(ctx *TreeDriverContext) TreeDriverResult {
	set := ctx.Set
	stat := ctx.Stat

	restartConfNum := float64(set.ConfRestartNum)
	for i := 0; i < int(stat.NConfRestarts); i++ {
		restartConfNum *= set.ConfRestartFac
	}

	nRuns := 0
	var nextNode NodeID = NoNode
	restart := false

	stopCtx := func() StopContext {
		sc := StopContext{
			Lower:          globalLower(ctx.Tree),
			Upper:          ctx.Primal.CutoffBound,
			NSolutions:     ctx.Primal.NSolutions,
			NBestSolutions: ctx.Primal.NBestSolutions,
			Gap:            math.NaN(),
			AbsGap:         math.NaN(),
		}
		if !isInfNeg(sc.Lower) && !isInfPos(sc.Upper) {
			sc.AbsGap = sc.Upper - sc.Lower
			if d := math.Min(math.Abs(sc.Upper), math.Abs(sc.Lower)); d > 0 {
				sc.Gap = sc.AbsGap / d
			}
		}
		return sc
	}

	for !stat.IsStopped(set, stopCtx(), true) && !restart {
		// 1. Select next node.
		var focus NodeID
		for {
			if nextNode != NoNode {
				focus = nextNode
				nextNode = NoNode
			} else {
				focus = ctx.Selector.SelectNode(ctx.Tree)
			}
			if focus == NoNode {
				break
			}
			if cutoff := ctx.Tree.Focus(focus); !cutoff {
				break
			}
			stat.IncNDelayedCutoffs()
			ctx.Tree.Close(focus)
		}

		// 2. No node selected: tree exhausted.
		if focus == NoNode {
			break
		}

		// 3. Stats + event.
		stat.IncNNodes()
		ctx.Logger.NodeFocused(focus, ctx.Tree.Node(focus).Depth, ctx.Tree.Node(focus).Lower)
		ctx.Events.Emit(Event{Type: EventNodeFocused, Node: focus})

		// 4. Node solver.
		atRoot := focus == ctx.Tree.Root()
		nsc := ctx.NodeSolveCtxFactory(focus, atRoot, nRuns)
		result := SolveNode(nsc)
		nRuns++

		// 5. Emit the outcome event.
		node := ctx.Tree.Node(focus)
		switch {
		case result.Cutoff:
			ctx.Events.Emit(Event{Type: EventNodeInfeasible, Node: focus})
			ctx.Logger.Cutoff(focus, node.Lower)
			ctx.Tree.Close(focus)
		case result.Branched:
			ctx.Events.Emit(Event{Type: EventNodeBranched, Node: focus})
			ctx.Tree.Close(focus)
		case result.Infeasible:
			ctx.Events.Emit(Event{Type: EventNodeInfeasible, Node: focus})
			ctx.Tree.Close(focus)
		default:
			ctx.Events.Emit(Event{Type: EventNodeFeasible, Node: focus})
			ctx.Tree.Close(focus)
		}

		if result.Restart {
			restart = true
			break
		}

		// 6. Exact-solve feasible-but-childless re-branch loop omitted
		// from this wiring: the underlying exact-arithmetic certificate
		// subsystem is an explicit Non-goal (§1), so the re-invoke-
		// pseudo-branching corrective loop has no collaborator to call.

		// 7. Pre-select next node / after-node heuristics (already run
		// inside the node solver for the root's first run; elsewhere run
		// here).
		if !(atRoot && nRuns == 1) {
			for _, h := range ctx.AfterNodeHeurs {
				h.Exec(node.Depth, -1, TimingAfterNode, 0)
			}
		}

		// 8. Conflict-driven restart. A zero conf_restartnum (the default)
		// disables this channel entirely rather than firing on the very
		// first node.
		if restartConfNum > 0 && float64(ctx.Conflict.TotalSuccesses()) >= restartConfNum && len(ctx.Prob.ActivePricers()) == 0 {
			restart = true
			stat.NConfRestarts++
			ctx.Logger.Restart("conflict", stat.NConfRestarts)
			break
		}

		// 9. Display a node line: delegated to ctx.Logger at debug level
		// via NodeFocused above; no separate display subsystem exists
		// (display/verbosity is an explicit Non-goal, §1).
	}

	// Termination: drain a single remaining bounded-out node.
	if ctx.Tree.OpenCount() == 1 {
		drainLastNode(ctx.Tree, ctx.Primal.CutoffBound)
	}

	status := finalStatus(ctx.Tree, ctx.Primal, set)
	if status != StatusUnknown {
		stat.setStatus(status)
		ctx.Logger.StatusChanged(status)
	}

	return TreeDriverResult{Restart: restart, Status: stat.Status()}
}

func globalLower(tree *Tree) float64 {
	lower := math.Inf(1)
	for _, n := range tree.arena {
		if !n.Closed && n.Lower < lower {
			lower = n.Lower
		}
	}
	if math.IsInf(lower, 1) {
		return math.Inf(-1)
	}
	return lower
}

func drainLastNode(tree *Tree, cutoffBound float64) {
	for _, n := range tree.arena {
		if !n.Closed && n.Lower >= cutoffBound {
			tree.Focus(n.ID)
			tree.Close(n.ID)
		}
	}
}

// finalStatus implements §4.12's termination status computation once the
// tree is empty.
func finalStatus(tree *Tree, primal *Primal, set *Set) Status {
	if tree.OpenCount() > 0 {
		return StatusUnknown
	}
	hasSolution := primal.BestSolution != nil
	switch {
	case hasSolution && math.IsInf(primal.CutoffBound, 1):
		return StatusUnbounded
	case !hasSolution && primal.CutoffBound >= math.Inf(1):
		return StatusInfOrUnbd
	case !hasSolution:
		return StatusInfeasible
	default:
		return StatusOptimal
	}
}
