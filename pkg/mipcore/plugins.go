package mipcore

// This file declares the plug-in contracts the core consumes (§6). An
// implementer reproduces these contracts, never their bodies: the engine
// only ever calls through these interfaces, mirroring the teacher's
// fd_solver.go dispatch (there, a type switch over constraint values;
// here, real interface dispatch since the plug-in families are
// heterogeneous and externally supplied).

// Propagator tightens variable domains (§6 Propagator).
type Propagator interface {
	Name() string
	Priority() int
	Exec(depth int, onlyDelayed bool) PropResult
	WasDelayed() bool
}

// ConstraintHandler both propagates and enforces/separates its
// constraints (§6 Constraint handler).
type ConstraintHandler interface {
	Name() string
	SepaPriority() int
	EnfoPriority() int

	InitLP(sepa *Sepastore, atRoot bool) (cutoff bool)
	SeparateLP(sepa *Sepastore, depth int, boundDist float64, onlyDelayed bool) SepaResult
	SeparateSol(sepa *Sepastore, sol Solution, depth int, onlyDelayed bool) SepaResult
	Propagate(depth int, full, onlyDelayed bool) PropResult
	EnforceLP(infeasible bool) EnfoResult
	EnforcePseudo(infeasible, objInfeasible, forced bool) EnfoResult

	WasSepaDelayed() bool
	WasPropDelayed() bool
}

// Separator produces cutting planes independent of any one constraint
// handler (§6 Separator).
type Separator interface {
	Name() string
	Priority() int
	ExecLP(sepa *Sepastore, depth int, boundDist float64, onlyDelayed bool) SepaResult
	ExecSol(sepa *Sepastore, sol Solution, depth int, onlyDelayed bool) SepaResult
	WasLPDelayed() bool
	WasSolDelayed() bool
}

// Pricer generates problem-level variables with negative reduced cost
// (§6 Pricer).
type Pricer interface {
	Name() string
	Priority() int
	Active() bool
	Exec(prob *Prob, lp *LP, price *Pricestore) (lowerBound float64, result PriceResult)
}

// Relaxator computes an alternative lower-bound relaxation (§6 Relaxator).
type Relaxator interface {
	Name() string
	Priority() int
	Exec(depth int) (lowerBound float64, result RelaxResult)
}

// Heuristic searches for primal-feasible solutions (§6 Heuristic).
type Heuristic interface {
	Name() string
	Timing() HeurTiming
	Exec(depth, lpStateForkDepth int, timingMask HeurTiming, delayedCount int) (found bool)
}

// BranchRule produces a branching decision when enforcement could not
// resolve the focus node (§4.11 step 13).
type BranchRule interface {
	Name() string
	Priority() int
	ExecLP(cands *BranchCandStore) BranchResult
	ExecPseudo(cands *BranchCandStore) BranchResult
}

// LPKernel is the simplex kernel collaborator (§6 LP kernel). The core
// never implements this itself; lpkernel_gonum.go supplies a concrete
// reference adapter over gonum's dense simplex.
type LPKernel interface {
	Flush() error
	SolveAndEval(iterLim int, useDual, fromScratch bool) (lperror bool, err error)
	GetSolStat() SolStat
	GetObjVal() float64
	GetPseudoObjVal() float64
	SetCutoffBound(bound float64)
	RemoveRedundantRows()
	IsRelax() bool
}

// Solution is a primal-feasible (or candidate) assignment, keyed by
// VarID, consumed by separators' exec_sol and by Primal (§3 Stores).
type Solution map[VarID]float64

// CurrentSolution snapshots the assignment implied by the current
// relaxation: each variable's LP solution value, falling back to its
// local lower bound when the LP hasn't assigned one. This is the shape
// both global-cutpool separation (§4.7) and the pricing-aborted-but-
// feasible candidate (§4.11 step 12) need from "the solution right now".
func CurrentSolution(vars []*Variable) Solution {
	sol := make(Solution, len(vars))
	for _, v := range vars {
		if v.HasLPSolVal {
			sol[v.ID] = v.LPSolVal
		} else {
			sol[v.ID] = v.LocalLB
		}
	}
	return sol
}

// ObjValue evaluates a solution's objective under prob's coefficients.
func ObjValue(prob *Prob, sol Solution) float64 {
	sum := 0.0
	for _, v := range prob.Vars {
		if val, ok := sol[v.ID]; ok {
			sum += v.ObjCoef * val
		}
	}
	return sum
}
