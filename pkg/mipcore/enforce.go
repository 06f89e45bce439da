package mipcore

// enforce.go implements Enforcement (§4.10). The verdict-to-loop-state
// translation table is ADAPTED from the teacher's labeling.go, which
// mapped a CSP assignment attempt's outcome (accepted / needs more
// propagation / contradiction) onto the search driver's control flags;
// here generalized to the full constraint-handler verdict table §4.10
// specifies.

// EnforceResult is enforce_constraints' return value.
type EnforceResult struct {
	Branched        bool
	Cutoff          bool
	Infeasible      bool
	PropagateAgain  bool
	SolveLPAgain    bool
	SolveRelaxAgain bool
}

// EnforceConstraints implements §4.10. useLPSol selects LP-sol vs
// pseudo-sol enforcement; objInfeasible reports whether the node's
// pseudo/LP objective already fails the objective limit (required for a
// DIDNOTRUN verdict to be valid); forced is passed through to pseudo-sol
// enforcement.
func EnforceConstraints(prob *Prob, sepa *Sepastore, relax *relaxatorState, useLPSol bool, infeasibleIn, objInfeasible, forced bool, lpObjLimitHit bool) EnforceResult {
	sepa.ForceCutAdding = true
	defer func() { sepa.ForceCutAdding = false }()

	var res EnforceResult
	infeasible := infeasibleIn
	resolved := false

	for _, h := range prob.ConsHandlers {
		if resolved {
			break
		}
		var verdict EnfoResult
		if useLPSol {
			verdict = h.EnforceLP(infeasible)
		} else {
			verdict = h.EnforcePseudo(infeasible, objInfeasible, forced)
		}

		switch verdict {
		case EnfoCutoff:
			res.Cutoff = true
			res.Infeasible = true
			resolved = true
		case EnfoConsAdded:
			res.Infeasible = true
			res.PropagateAgain = true
			res.SolveLPAgain = true
			res.SolveRelaxAgain = true
			resolved = true
		case EnfoReducedDom:
			res.Infeasible = true
			res.PropagateAgain = true
			res.SolveLPAgain = true
			res.SolveRelaxAgain = true
			resolved = true
		case EnfoSeparated:
			res.Infeasible = true
			res.SolveLPAgain = true
			res.SolveRelaxAgain = true
			resolved = true
		case EnfoBranched:
			res.Infeasible = true
			res.Branched = true
			resolved = true
		case EnfoSolveLP:
			res.Infeasible = true
			res.SolveLPAgain = true
			resolved = true
		case EnfoInfeasible:
			res.Infeasible = true
			// not resolved: keep querying remaining handlers
		case EnfoFeasible:
			// not resolved, no flags set; continue to next handler
		case EnfoDidNotRun:
			if !objInfeasible {
				panic(&FatalError{Plugin: h.Name(), Reason: "enforcement returned DIDNOTRUN while not objective-infeasible"})
			}
			res.Infeasible = true
		}

		if !useLPSol && (verdict == EnfoSeparated || verdict == EnfoConsAdded) {
			panic(&FatalError{Plugin: h.Name(), Reason: "pseudo-sol enforcement produced cuts"})
		}

		if res.SolveRelaxAgain && relax != nil {
			relax.MarkRelaxsUnsolved()
		}
	}

	// After enforcement, a heuristic that ran inside a handler may have
	// raised the primal bound past the LP objective limit.
	if lpObjLimitHit {
		res.Cutoff = true
	}

	return res
}
