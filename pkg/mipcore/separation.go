package mipcore

// separation.go implements the Separation driver (§4.5). The per-plug-in
// type-switch dispatch idiom is ADAPTED from the teacher's fd_solver.go
// (FDSolver.Solve dispatching on a constraint's concrete type), replaced
// here with the priority-ordered separator/constraint-handler dispatch
// §4.5 specifies over real interfaces rather than a type switch.

// SepaMode selects whether a separation round works against the current
// LP solution or an externally supplied primal solution (§4.5 mode).
type SepaMode int

const (
	SepaModeLP SepaMode = iota
	SepaModeSol
)

// SeparationRoundResult is separation_round's return value (§4.5).
type SeparationRoundResult struct {
	Delayed    bool
	EnoughCuts bool
	Cutoff     bool
	LPError    bool
	MustSepa   bool
	MustPrice  bool
}

// SeparationRound implements §4.5. sol is consulted only in SepaModeSol.
func SeparationRound(prob *Prob, set *Set, stat *Stat, lp *LP, sepa *Sepastore, mode SepaMode, sol Solution, depth int, boundDist float64, onlyDelayed bool, atRoot bool) SeparationRoundResult {
	stat.IncNSepaRounds()

	nonNeg, neg := splitByPriority(len(prob.Separators), func(i int) int { return prob.Separators[i].Priority() })
	maxCuts := set.MaxCuts(atRoot)

	var res SeparationRoundResult

	enoughCuts := func() bool { return sepa.NCuts() >= 2*maxCuts }

	callSepa := func(i int) SepaResult {
		s := prob.Separators[i]
		if mode == SepaModeLP {
			if onlyDelayed && !s.WasLPDelayed() {
				return SepaDidNotRun
			}
			return s.ExecLP(sepa, depth, boundDist, onlyDelayed)
		}
		if onlyDelayed && !s.WasSolDelayed() {
			return SepaDidNotRun
		}
		return s.ExecSol(sepa, sol, depth, onlyDelayed)
	}

	maybeResolve := func() {
		if mode != SepaModeLP {
			return
		}
		if !lp.Flushed {
			if err := lp.SolveAndEval(-1, true, false); err != nil {
				res.LPError = true
			}
			res.MustSepa = true
			res.MustPrice = true
		}
	}

	runSet := func(idx []int) bool { // returns true if the caller should stop (cutoff / only_delayed early exit)
		for _, i := range idx {
			switch callSepa(i) {
			case SepaCutoff:
				res.Cutoff = true
				return true
			case SepaSeparated, SepaConsAdded, SepaReducedDom:
				maybeResolve()
				if onlyDelayed {
					res.Delayed = true
					return true
				}
			case SepaDelayed:
				res.Delayed = true
			}
			if enoughCuts() {
				res.EnoughCuts = true
				return true
			}
		}
		return false
	}

	runConsHandlers := func() bool {
		for _, h := range prob.ConsHandlers {
			var verdict SepaResult
			if mode == SepaModeLP {
				if onlyDelayed && !h.WasSepaDelayed() {
					continue
				}
				verdict = h.SeparateLP(sepa, depth, boundDist, onlyDelayed)
			} else {
				if onlyDelayed && !h.WasSepaDelayed() {
					continue
				}
				verdict = h.SeparateSol(sepa, sol, depth, onlyDelayed)
			}
			switch verdict {
			case SepaCutoff:
				res.Cutoff = true
				return true
			case SepaSeparated, SepaConsAdded, SepaReducedDom:
				maybeResolve()
				if onlyDelayed {
					res.Delayed = true
					return true
				}
			case SepaDelayed:
				res.Delayed = true
			}
			if enoughCuts() {
				res.EnoughCuts = true
				return true
			}
		}
		return false
	}

	if runSet(nonNeg) {
		return res
	}
	if runConsHandlers() {
		return res
	}
	if runSet(neg) {
		return res
	}

	// Reprocess constraint-handler separations until a pass adds no cuts.
	// At least one extra pass runs after every round, whether or not a
	// constraint was added; it catches cuts only unlocked by an addition.
	for {
		before := sepa.NCuts()
		if runConsHandlers() {
			return res
		}
		if sepa.NCuts() == before {
			break
		}
	}

	return res
}
