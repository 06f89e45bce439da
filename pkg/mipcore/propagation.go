package mipcore

// propagation.go implements the Propagation driver (§4.2): repeated
// rounds of propagator and constraint-handler domain tightening until a
// fixpoint, a cutoff, or a round cap is reached. GROUNDED on the general
// shape of the teacher's propagation.go (constraints run to a fixed point,
// an empty domain is a hard failure) generalized from concrete CSP
// filtering algorithms (AllDifferent/Arithmetic/Inequality, which have no
// counterpart in a MIP engine and are not carried over) to the
// propagator/constraint-handler priority-ordered round structure §4.2
// actually specifies.

// PropagateResult is the Propagation driver's return value.
type PropagateResult struct {
	Cutoff bool
	Err    error // set alongside Cutoff when the cause was a domain/consistency violation, not a plug-in's own cutoff verdict
}

// Propagate implements §4.2. depth is the focus node's depth; maxRounds
// is the caller's requested cap (0 = configured cap, -1 = unlimited);
// full forces full propagation of every constraint instead of only newly
// added ones.
func Propagate(prob *Prob, set *Set, depth int, maxRounds int, full bool, atRoot bool) PropagateResult {
	roundCap := set.PropRoundCap(maxRounds, atRoot)

	nonNegProp, negProp := splitByPriority(len(prob.Propagators), func(i int) int {
		return prob.Propagators[i].Priority()
	})

	round := 0
	keepGoing := true
	onlyDelayedNext := false

	for round < roundCap && keepGoing {
		round++
		reduction := false
		cutoff := false
		delayed := false
		onlyDelayed := onlyDelayedNext

		roundStartLB := make([]float64, len(prob.Vars))
		roundStartUB := make([]float64, len(prob.Vars))
		for i, v := range prob.Vars {
			roundStartLB[i], roundStartUB[i] = v.LocalLB, v.LocalUB
		}

		runProp := func(idx []int) {
			for _, i := range idx {
				if cutoff {
					return
				}
				pr := prob.Propagators[i]
				if onlyDelayed && !pr.WasDelayed() {
					continue
				}
				switch pr.Exec(depth, onlyDelayed) {
				case PropCutoff:
					cutoff = true
				case PropReducedDom:
					reduction = true
				case PropDelayed:
					delayed = true
				}
			}
		}
		runCons := func() {
			for _, h := range prob.ConsHandlers {
				if cutoff {
					return
				}
				if onlyDelayed && !h.WasPropDelayed() {
					continue
				}
				switch h.Propagate(depth, full, onlyDelayed) {
				case PropCutoff:
					cutoff = true
				case PropReducedDom:
					reduction = true
				case PropDelayed:
					delayed = true
				}
			}
		}

		runProp(nonNegProp)
		runCons()
		runProp(negProp)

		if cutoff {
			return PropagateResult{Cutoff: true}
		}

		if err := checkBoundIntegrity(prob.Vars, roundStartLB, roundStartUB); err != nil {
			return PropagateResult{Cutoff: true, Err: err}
		}

		if !reduction {
			if delayed && !onlyDelayed {
				// The round that would have terminated the loop left
				// delayed state: re-invoke exactly the delayed plug-ins
				// once more before actually stopping (§4.2).
				onlyDelayedNext = true
				keepGoing = true
				continue
			}
			keepGoing = false
		} else {
			onlyDelayedNext = false
			keepGoing = true
		}
	}

	return PropagateResult{Cutoff: false}
}

// checkBoundIntegrity is the defensive counterpart to a propagator's
// tighten-only contract: an empty domain is a hard failure (ErrDomainEmpty),
// and a bound that ends the round looser than it was at the round's start
// is reported as ErrInconsistent, since propagators only ever tighten.
// A loosening that stays within the round's starting bounds is not seen.
func checkBoundIntegrity(vars []*Variable, startLB, startUB []float64) error {
	for i, v := range vars {
		if v.LocalLB > v.LocalUB {
			return ErrDomainEmpty
		}
		if v.LocalLB < startLB[i] || v.LocalUB > startUB[i] {
			return ErrInconsistent
		}
	}
	return nil
}
