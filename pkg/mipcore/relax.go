package mipcore

// relax.go implements the Relaxation driver (§4.9).

// RelaxResultSet is solve_relax's return value.
type RelaxResultSet struct {
	Cutoff          bool
	PropAgain       bool
	SolveLPAgain    bool
	SolveRelaxAgain bool
}

// SolveRelax implements §4.9. beforeLP selects relaxators whose priority
// band matches the pre-LP (true) or post-LP (false) phase.
func SolveRelax(prob *Prob, node *Node, depth int, beforeLP bool) RelaxResultSet {
	nonNeg, neg := splitByPriority(len(prob.Relaxators), func(i int) int { return prob.Relaxators[i].Priority() })
	order := append(append([]int{}, nonNeg...), neg...)

	var res RelaxResultSet

	for _, i := range order {
		r := prob.Relaxators[i]
		matches := (r.Priority() >= 0) == beforeLP
		if !matches {
			continue
		}
		lb, verdict := r.Exec(depth)
		switch verdict {
		case RelaxCutoff:
			res.Cutoff = true
			return res
		case RelaxConsAdded:
			res.SolveLPAgain = true
			res.PropAgain = true
		case RelaxReducedDom:
			res.SolveLPAgain = true
			res.PropAgain = true
		case RelaxSeparated:
			res.SolveLPAgain = true
		case RelaxSuspended:
			res.SolveRelaxAgain = true
		case RelaxSuccess, RelaxDidNotRun:
			// no effect beyond the bound update below
		}
		if verdict != RelaxCutoff && verdict != RelaxDidNotRun && verdict != RelaxSuspended {
			if lb > node.Lower {
				node.Lower = lb
			}
		}
	}
	return res
}

// relaxatorState tracks per-relaxator validity, invalidated by
// MarkRelaxsUnsolved whenever an improved incumbent, a new constraint, a
// reduced domain, or a new cut makes prior relaxator work stale (§4.9).
type relaxatorState struct {
	valid  bool
	solved map[string]bool
}

func newRelaxatorState() *relaxatorState { return &relaxatorState{solved: map[string]bool{}} }

// MarkRelaxsUnsolved resets the relaxation-valid flag and every
// relaxator's solved state.
func (r *relaxatorState) MarkRelaxsUnsolved() {
	r.valid = false
	for k := range r.solved {
		r.solved[k] = false
	}
}
