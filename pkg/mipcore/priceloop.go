package mipcore

import "math"

// priceloop.go implements the Price loop (§4.6).

// PriceLoopResult is price_loop's return value.
type PriceLoopResult struct {
	NPricedColVars int
	MustSepa       bool
	LowerBound     float64
	LPError        bool
	Aborted        bool
}

// mustPrice implements §4.6's must-price predicate.
func mustPrice(lp *LP, prob *Prob, rounds, maxRounds int, stopped bool) bool {
	if stopped {
		return false
	}
	if rounds >= maxRounds {
		return false
	}
	switch lp.SolStat {
	case SolStatOptimal, SolStatInfeasible, SolStatObjLimit:
	default:
		return false
	}
	if len(prob.ActivePricers()) == 0 {
		return false // only active pricers add columns, so a round would change nothing
	}
	return lp.NCols < countAllColumns(prob)
}

func countAllColumns(prob *Prob) int {
	n := 0
	for range prob.Vars {
		n++
	}
	return n
}

// PriceLoop implements §4.6. pretendRoot reports whether this invocation
// should behave as though it were at the root (used by sub-runs).
func PriceLoop(prob *Prob, set *Set, stat *Stat, lp *LP, price *Pricestore, duringPricingHeurs []Heuristic, depth int, pretendRoot bool, maxRounds int) PriceLoopResult {
	var res PriceLoopResult
	res.LowerBound = negInf()

	rounds := 0
	stopped := false

	for mustPrice(lp, prob, rounds, maxRounds, stopped) {
		rounds++
		stat.IncNPriceRounds()

		// Step 1: during-pricing heuristics.
		for _, h := range duringPricingHeurs {
			h.Exec(depth, -1, TimingDuringPricingLoop, 0)
		}

		// Step 2/3: sort active pricers by priority; call each until
		// enough_vars is reached.
		active := prob.ActivePricers()
		idxNonNeg, idxNeg := splitByPriority(len(active), func(i int) int { return active[i].Priority() })
		order := append(append([]int{}, idxNonNeg...), idxNeg...)

		maxVars := set.SepaMaxCutsRoot // no dedicated maxvars key in §6; reuse the cut cap order of magnitude as the pricestore threshold basis
		enoughVars := func() bool { return price.NVars() >= maxVars/2+1 }

		for _, i := range order {
			if enoughVars() {
				break
			}
			lb, result := active[i].Exec(prob, lp, price)
			if lb > res.LowerBound {
				res.LowerBound = lb
			}
			if result == PriceDidNotRun {
				res.Aborted = true
			}
		}

		// Step 4: apply priced variables, resolve, reset temp bounds,
		// re-run init-LP for newly-initial constraints, resolve again.
		priced := price.Drain()
		res.NPricedColVars += len(priced)
		if len(priced) > 0 {
			lp.MarkColsAdded(len(priced))
		}
		if err := lp.SolveAndEval(-1, true, false); err != nil {
			res.LPError = true
		}
		price.ResetTempBounds(varsOf(prob))

		sepa := NewSepastore()
		for _, h := range prob.ConsHandlers {
			if cutoff := h.InitLP(sepa, pretendRoot); cutoff {
				// Protocol violation: init-LP cutoff during pricing is
				// documented as disallowed (§4.6 step 4).
				panic(&FatalError{Plugin: h.Name(), Reason: "init_lp signalled cutoff during pricing"})
			}
		}
		if cuts := sepa.Drain(); len(cuts) > 0 {
			lp.MarkRowsAdded(len(cuts))
		}
		if err := lp.SolveAndEval(-1, true, false); err != nil {
			res.LPError = true
		}

		stopped = res.LPError
	}

	res.Aborted = res.Aborted || res.LPError || lp.SolStat == SolStatNotSolved || lp.SolStat == SolStatError || rounds == maxRounds
	lp.IsRelax = !res.Aborted
	res.MustSepa = res.MustSepa || res.NPricedColVars > 0
	return res
}

func varsOf(prob *Prob) []*Variable { return prob.Vars }

func negInf() float64 { return math.Inf(-1) }
