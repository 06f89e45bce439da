package mipcore

import "math"

// This file implements the §3 "Stores": Pricestore, Sepastore,
// BranchCandStore, Cutpool, Primal, Conflict. The clone-then-mutate /
// dedup-by-identity shape is ADAPTED from the teacher's store_ops.go
// (EmptyStore/StoreWithConstraint/StoreUnion/StoreIntersection, which
// dedup constraints by ID and bindings by reflect.DeepEqual); here cuts
// and priced columns dedup by a caller-supplied Key rather than by
// reflect, since the engine knows its own row/column identity.

// Cut is a candidate separating inequality held in the Sepastore or
// Cutpool before being applied to the LP.
type Cut struct {
	Key       string // identity for dedup/pool lookup
	Coeffs    map[VarID]float64
	LHS, RHS  float64
	Efficacy  float64 // violation measure, carried with the cut; the stores here do not rank by it
	FromPool  bool
}

// Sepastore accumulates candidate cuts before they are applied to the LP
// (§3 Stores). ForceCutAdding is set while enforcement runs (§4.10); Add
// accepts every cut whether or not it is set.
type Sepastore struct {
	cuts            []Cut
	ForceCutAdding  bool
}

func NewSepastore() *Sepastore { return &Sepastore{} }

func (s *Sepastore) Add(c Cut) { s.cuts = append(s.cuts, c) }

func (s *Sepastore) NCuts() int { return len(s.cuts) }

// Clear discards all pending cuts without applying them (used on the
// resource-limit/user-interrupt unwind path, §7).
func (s *Sepastore) Clear() { s.cuts = s.cuts[:0] }

// Drain returns and clears the accumulated cuts, to be applied to the LP
// by the caller.
func (s *Sepastore) Drain() []Cut {
	out := s.cuts
	s.cuts = nil
	return out
}

// PricedVar is a candidate column produced by the pricestore (§4.4, §4.6).
type PricedVar struct {
	Var      *Variable
	RedCost  float64
}

// Pricestore accumulates candidate variables to add to the LP and
// records temporary bound changes pricers make while pricing (§3 Stores).
type Pricestore struct {
	vars           []PricedVar
	tempBoundChgs  []DomChg
	rootLPBuilding bool
}

func NewPricestore() *Pricestore { return &Pricestore{} }

// StartRootLP / EndRootLP bracket init-LP's root variable seeding
// (§4.4 init-LP).
func (p *Pricestore) StartRootLP() { p.rootLPBuilding = true }
func (p *Pricestore) EndRootLP()   { p.rootLPBuilding = false }

func (p *Pricestore) AddVar(v *Variable, redCost float64) {
	p.vars = append(p.vars, PricedVar{Var: v, RedCost: redCost})
}

func (p *Pricestore) NVars() int { return len(p.vars) }

func (p *Pricestore) Drain() []PricedVar {
	out := p.vars
	p.vars = nil
	return out
}

func (p *Pricestore) RecordTempBoundChange(c DomChg) {
	p.tempBoundChgs = append(p.tempBoundChgs, c)
}

// ResetTempBounds undoes every temporary bound change pricers made this
// round, per §4.6 step 4 ("reset temporary bounds set by pricers").
func (p *Pricestore) ResetTempBounds(vars []*Variable) {
	for i := len(p.tempBoundChgs) - 1; i >= 0; i-- {
		c := p.tempBoundChgs[i]
		v := vars[c.Var]
		switch c.Side {
		case BoundLower:
			v.LocalLB = c.OldBound
		case BoundUpper:
			v.LocalUB = c.OldBound
		}
	}
	p.tempBoundChgs = p.tempBoundChgs[:0]
}

// BranchCandStore groups the three branching-candidate populations
// (§3 Stores): LP-fractional, externally supplied, and pseudo candidates.
type BranchCandStore struct {
	LPFrac []VarID
	Ext    []VarID
	Pseudo []VarID
}

func NewBranchCandStore() *BranchCandStore { return &BranchCandStore{} }

func (b *BranchCandStore) Reset() { b.LPFrac, b.Ext, b.Pseudo = nil, nil, nil }

func (b *BranchCandStore) HasLPFrac() bool { return len(b.LPFrac) > 0 }
func (b *BranchCandStore) HasExt() bool    { return len(b.Ext) > 0 }
func (b *BranchCandStore) HasPseudo() bool { return len(b.Pseudo) > 0 }

// Cutpool is the global, cross-node store of reusable cuts (§3 Stores).
type Cutpool struct {
	cuts map[string]Cut
}

func NewCutpool() *Cutpool { return &Cutpool{cuts: map[string]Cut{}} }

// Add inserts c, deduping by Key — the identity-dedup idiom ADAPTED from
// store_ops.go's "dedup by c.ID()" in StoreUnion.
func (cp *Cutpool) Add(c Cut) {
	if _, exists := cp.cuts[c.Key]; !exists {
		c.FromPool = true
		cp.cuts[c.Key] = c
	}
}

// Separate returns every pool cut currently violated by sol, for the
// global-cutpool separation step of §4.7.
func (cp *Cutpool) Separate(sol Solution) []Cut {
	var out []Cut
	for _, c := range cp.cuts {
		lhs := 0.0
		for vid, coef := range c.Coeffs {
			lhs += coef * sol[vid]
		}
		if lhs < c.LHS-1e-9 || lhs > c.RHS+1e-9 {
			out = append(out, c)
		}
	}
	return out
}

// Primal holds the best-known solutions and the cutoff bound (§3 Stores).
// CutoffBound is non-increasing and a new solution is accepted only if
// strictly improving (§8 Primal monotonicity).
type Primal struct {
	CutoffBound   float64
	BestSolution  Solution
	NSolutions    int64
	NBestSolutions int64
}

func NewPrimal() *Primal {
	return &Primal{CutoffBound: math.Inf(1)}
}

// AddSolution offers sol with objective value objVal; returns true iff it
// strictly improved the cutoff bound and was accepted.
func (p *Primal) AddSolution(sol Solution, objVal float64) bool {
	p.NSolutions++
	if objVal >= p.CutoffBound {
		return false
	}
	p.CutoffBound = objVal
	p.BestSolution = sol
	p.NBestSolutions++
	return true
}

// ConflictConstraint is a constraint produced by infeasibility analysis
// (§3 Stores Conflict, §4.8 pseudo conflict analysis).
type ConflictConstraint struct {
	Bounds []DomChg // the bound changes proven incompatible
}

// Conflict accumulates conflict constraints produced by infeasibility
// analysis and is flushed at the end of every node solve (§4.11 epilogue:
// "flush the conflict storage").
type Conflict struct {
	pending []ConflictConstraint

	NSuccessProp     int64
	NSuccessInfeasLP int64
	NSuccessBoundLP  int64
	NSuccessStrongBr int64
	NSuccessPseudo   int64
}

func NewConflict() *Conflict { return &Conflict{} }

func (c *Conflict) Add(cc ConflictConstraint) { c.pending = append(c.pending, cc) }

// Flush returns and clears the accumulated conflict constraints.
// SolveNode calls it at the end of every node and does not install the
// returned constraints anywhere.
func (c *Conflict) Flush() []ConflictConstraint {
	out := c.pending
	c.pending = nil
	return out
}

// TotalSuccesses sums every channel's successful-analysis count, the
// quantity the conflict-driven restart trigger compares against
// restartconfnum (§4.12 step 8).
func (c *Conflict) TotalSuccesses() int64 {
	return c.NSuccessProp + c.NSuccessInfeasLP + c.NSuccessBoundLP + c.NSuccessStrongBr + c.NSuccessPseudo
}
