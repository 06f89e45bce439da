package mipcore

import "math"

// LP is the engine's view of the linear relaxation at the focus node
// (§3 LP). The LP kernel itself (the simplex solver) is an external
// collaborator consumed only through the LPKernel interface (§6); LP
// holds the state the engine's drivers reason about between kernel
// calls.
type LP struct {
	Kernel LPKernel

	NCols, NRows int

	Flushed bool // all pending column/row edits applied to the kernel
	Solved  bool // flushed && the kernel produced a status
	SolStat SolStat
	ObjVal  float64

	CutoffBound float64 // mirrors Primal.CutoffBound

	// ResolveLPError is a latch set on a kernel error and cleared only by
	// the node solver (§9 redesign note: "LP installing hint and
	// resolvelperror latch").
	ResolveLPError bool

	// Installing marks that a stall cap is close. The price-and-cut
	// orchestrator sets it (§4.7, §9); no LPKernel method receives it, so
	// the kernel does not read it, and nothing in the engine clears it.
	Installing bool

	// IsRelax reports whether the LP currently represents a valid
	// relaxation of the focus node's subproblem (§3 LP invariants).
	IsRelax bool

	pendingCols int
	pendingRows int
}

// NewLP wires an LP handle to a concrete kernel collaborator.
func NewLP(kernel LPKernel) *LP {
	return &LP{Kernel: kernel, CutoffBound: math.Inf(1)}
}

// MarkColsAdded / MarkRowsAdded record that pending edits exist, clearing
// Flushed (§3 invariant: flushed ⇒ no pending edits).
func (lp *LP) MarkColsAdded(n int) { lp.pendingCols += n; lp.Flushed = false; lp.Solved = false }
func (lp *LP) MarkRowsAdded(n int) { lp.pendingRows += n; lp.Flushed = false; lp.Solved = false }

// Flush applies pending column/row edits to the kernel.
func (lp *LP) Flush() error {
	if lp.Flushed {
		return nil
	}
	if err := lp.Kernel.Flush(); err != nil {
		return &LPError{Op: "flush", Err: err}
	}
	lp.NCols += lp.pendingCols
	lp.NRows += lp.pendingRows
	lp.pendingCols, lp.pendingRows = 0, 0
	lp.Flushed = true
	lp.Solved = false
	return nil
}

// SolveAndEval flushes if needed, then asks the kernel to (re-)solve,
// updating SolStat/ObjVal/IsRelax. It is the single choke point every
// driver goes through to obtain "flushed && solved" (§8 LP-state
// consistency).
func (lp *LP) SolveAndEval(iterLim int, useDual, fromScratch bool) error {
	if err := lp.Flush(); err != nil {
		return err
	}
	lperr, err := lp.Kernel.SolveAndEval(iterLim, useDual, fromScratch)
	if err != nil {
		lp.ResolveLPError = true
		return &LPError{Op: "solve_and_eval", Err: err}
	}
	if lperr {
		lp.ResolveLPError = true
		return &LPError{Op: "solve_and_eval", Err: errLPKernelReportedError}
	}
	lp.SolStat = lp.Kernel.GetSolStat()
	lp.ObjVal = lp.Kernel.GetObjVal()
	lp.Solved = true
	lp.IsRelax = lp.Kernel.IsRelax()
	return nil
}

var errLPKernelReportedError = lpKernelErr("kernel reported lperror")

type lpKernelErr string

func (e lpKernelErr) Error() string { return string(e) }

// PseudoObjVal computes the pseudo-objective value (SUPPLEMENTED FEATURES
// §3): the sum, over all variables, of PseudoObjectiveContribution.
func PseudoObjVal(vars []*Variable) float64 {
	sum := 0.0
	for _, v := range vars {
		sum += v.PseudoObjectiveContribution()
	}
	return sum
}

// SetCutoffBound pushes the primal cutoff bound down to both the LP
// handle and the kernel (§6 LPKernel.set_cutoff_bound).
func (lp *LP) SetCutoffBound(bound float64) {
	lp.CutoffBound = bound
	lp.Kernel.SetCutoffBound(bound)
}

// RemoveRedundantRows asks the kernel to drop rows it judges redundant,
// used at the root after a global bound improvement (§4.7).
func (lp *LP) RemoveRedundantRows() { lp.Kernel.RemoveRedundantRows() }
