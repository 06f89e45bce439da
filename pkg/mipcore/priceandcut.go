package mipcore

import "math"

// priceandcut.go implements the Price-and-cut orchestrator (§4.7), the
// node's main fixed point. The stall-counter/threshold-gated loop
// structure is ADAPTED from the teacher's constraint_manager.go: there, a
// ConstraintManager scored solvers by a running success/failure metric
// and fell back when a solver underperformed; here the same "accumulate
// a running metric, compare against a threshold, change strategy near
// the cap" shape drives stall-round accounting and the lp.Installing
// hint instead of solver selection.

// PriceAndCutResult is price_and_cut's return value.
type PriceAndCutResult struct {
	Cutoff         bool
	Unbounded      bool
	LPError        bool
	PricingAborted bool
	Err            error // set alongside LPError for a caller-diagnosable failure
}

// PriceAndCutContext bundles the node-scoped state the orchestrator reads
// and writes across rounds.
type PriceAndCutContext struct {
	Prob       *Prob
	Set        *Set
	Stat       *Stat
	Tree       *Tree
	LP         *LP
	Primal     *Primal
	Cutpool    *Cutpool
	Events     *EventFilter
	Focus      NodeID
	Depth      int
	AtRoot     bool
	NRuns      int
	BoundDist  float64

	DuringPricingHeurs []Heuristic
	DuringLPLoopHeurs  []Heuristic
}

// PriceAndCut implements §4.7.
func PriceAndCut(ctx *PriceAndCutContext) PriceAndCutResult {
	set := ctx.Set
	lp := ctx.LP
	node := ctx.Tree.Node(ctx.Focus)

	if !lp.Flushed || !lp.Solved {
		return PriceAndCutResult{LPError: true, Err: ErrLPNotConstructed}
	}

	separate := ctx.BoundDist <= set.SepaMaxBoundDist && (set.SepaMaxRuns < 0 || ctx.NRuns <= set.SepaMaxRuns)
	maxSepaRounds := set.MaxSepaRounds(ctx.AtRoot)
	maxStallRounds := set.SepaMaxStallRounds

	stallLPObj := math.Inf(-1)
	stallNFracs := math.Inf(1)
	nSepaStallRounds := 0

	mustPriceFlag := true
	mustSepaFlag := true
	delayedSepa := false

	var res PriceAndCutResult

	sepaRounds := 0

	for !res.Cutoff && !res.LPError && (mustPriceFlag || mustSepaFlag || delayedSepa) {
		// Inner price loop: repeat until mustprice is false.
		for mustPriceFlag {
			pr := PriceLoop(ctx.Prob, set, ctx.Stat, lp, NewPricestore(), ctx.DuringPricingHeurs, ctx.Depth, ctx.AtRoot, 1000000)
			if pr.LPError {
				res.LPError = true
				break
			}
			if pr.LowerBound > node.Lower {
				node.Lower = pr.LowerBound
			}
			if lp.Solved && !pr.Aborted {
				if lp.ObjVal > node.Lower {
					node.Lower = lp.ObjVal
				}
			}
			node.Estimate = computeEstimate(ctx.Prob, node.Lower)

			res.PricingAborted = res.PricingAborted || pr.Aborted
			mustPriceFlag = false // PriceLoop internally iterates to its own fixpoint

			if node.Lower >= ctx.Primal.CutoffBound {
				break
			}
			for _, h := range ctx.DuringLPLoopHeurs {
				h.Exec(ctx.Depth, -1, TimingDuringLPLoop, 0)
			}
		}
		if res.LPError {
			break
		}

		// Separation decision (§4.7 "Separation decision").
		if !separate || (lp.SolStat != SolStatOptimal && lp.SolStat != SolStatUnboundedRay) || node.Lower >= ctx.Primal.CutoffBound {
			mustSepaFlag = false
		}

		if mustSepaFlag || delayedSepa {
			sepaRounds++
			onlyDelayed := delayedSepa
			if nSepaStallRounds >= maxStallRounds-1 {
				onlyDelayed = onlyDelayed || true // include delayed separators near the stall cap
			}

			sepa := NewSepastore()
			if ctx.Cutpool != nil && ((set.SepaPoolFreq == 0 && ctx.AtRoot) || (set.SepaPoolFreq > 0 && ctx.Stat.NNodes%int64(set.SepaPoolFreq) == 0)) {
				sol := CurrentSolution(ctx.Prob.Vars)
				for _, c := range ctx.Cutpool.Separate(sol) {
					sepa.Add(c)
				}
			}

			sr := SeparationRound(ctx.Prob, set, ctx.Stat, lp, sepa, SepaModeLP, nil, ctx.Depth, ctx.BoundDist, onlyDelayed, ctx.AtRoot)
			delayedSepa = sr.Delayed

			if sr.Cutoff {
				res.Cutoff = true
				sepa.Clear()
				break
			}
			if lp.SolStat == SolStatInfeasible || lp.SolStat == SolStatObjLimit || lp.SolStat == SolStatIterLimit || lp.SolStat == SolStatTimeLimit {
				sepa.Clear()
			} else if cuts := sepa.Drain(); len(cuts) > 0 {
				lp.MarkRowsAdded(len(cuts))
				if ctx.AtRoot {
					lp.RemoveRedundantRows()
				}
				if err := lp.SolveAndEval(-1, true, false); err != nil {
					res.LPError = true
					break
				}
				mustSepaFlag = true
				mustPriceFlag = true
			} else {
				mustSepaFlag = false
			}

			if sr.EnoughCuts {
				mustSepaFlag = false
			}

			// Stall accounting (§4.7).
			objRelDiff := relDiff(lp.ObjVal, stallLPObj)
			nFracs := countFractional(ctx.Prob)
			threshold := (0.9 - 0.1*float64(nSepaStallRounds)) * stallNFracs
			if objRelDiff > 1e-4 || float64(nFracs) <= threshold {
				nSepaStallRounds = 0
			} else {
				nSepaStallRounds++
			}
			stallLPObj = lp.ObjVal
			stallNFracs = float64(nFracs)

			if nSepaStallRounds >= maxStallRounds-2 {
				lp.Installing = true
			}
			if sepaRounds >= maxSepaRounds && maxSepaRounds >= 0 {
				mustSepaFlag = false
				delayedSepa = false
			}
		}
	}

	// Exit bookkeeping (§4.7 "On exit").
	if res.Cutoff {
		node.Lower = math.Inf(1)
	} else if lp.Solved {
		if lp.ObjVal > node.Lower {
			node.Lower = lp.ObjVal
		}
		if lp.SolStat != SolStatIterLimit && lp.SolStat != SolStatTimeLimit && ctx.Events != nil {
			if ctx.Stat.ConsumeFirstLPSolved() {
				ctx.Events.Emit(Event{Type: EventFirstLPSolved, Node: ctx.Focus})
			}
			ctx.Events.Emit(Event{Type: EventLPSolved, Node: ctx.Focus})
		}
	}
	if !ctx.AtRoot && !set.ExactSolve && (lp.SolStat == SolStatInfeasible || lp.SolStat == SolStatObjLimit) {
		// LP conflict analysis trigger point. No analysis runs here:
		// PriceAndCutContext carries no Conflict store.
	}
	res.Unbounded = ctx.AtRoot && lp.SolStat == SolStatUnboundedRay

	return res
}

// computeEstimate implements the §4.7 estimate formula over LP-fractional
// candidates.
func computeEstimate(prob *Prob, lower float64) float64 {
	est := lower
	for _, v := range prob.Vars {
		if v.IsContinuous || !v.HasLPSolVal {
			continue
		}
		f := fracPart(v.LPSolVal)
		if f <= 1e-6 || f >= 1-1e-6 {
			continue
		}
		down := f * v.PseudoCostEstimate(BoundLower)
		up := (1 - f) * v.PseudoCostEstimate(BoundUpper)
		if down < up {
			est += down
		} else {
			est += up
		}
	}
	return est
}

func fracPart(x float64) float64 { return x - math.Floor(x) }

func countFractional(prob *Prob) int {
	n := 0
	for _, v := range prob.Vars {
		if v.IsContinuous || !v.HasLPSolVal {
			continue
		}
		f := fracPart(v.LPSolVal)
		if f > 1e-6 && f < 1-1e-6 {
			n++
		}
	}
	return n
}

func relDiff(a, b float64) float64 {
	denom := math.Max(math.Max(math.Abs(a), math.Abs(b)), 1.0)
	return math.Abs(a-b) / denom
}
