package mipcore

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// lpkernel_gonum.go is the reference LPKernel implementation (§6 LP
// kernel) wrapping gonum's dense simplex. GROUNDED on rlacjfjin/GoMILP's
// milpProblem/subProblem pairing of branch-and-bound with
// gonum.org/v1/gonum/optimize/convex/lp.Simplex, including its
// expectedFailures-style translation of lp.ErrInfeasible/lp.ErrSingular
// into the engine's own solve-status vocabulary (DOMAIN STACK §2).
//
// gonum's lp.Simplex solves standard-form problems (minimize c'x subject
// to Ax = b, x >= 0); GonumLPKernel keeps its own copy of the rows and
// rebuilds the dense standard-form system from them and the current
// variable bounds on every SolveAndEval call (Flush only clears the
// pending-row count), since the engine's column/row edits are expressed as
// incremental additions rather than a standard-form matrix.
type GonumLPKernel struct {
	vars []*Variable

	rows    [][]float64 // each row's coefficients, indexed like vars
	rowLHS  []float64
	rowRHS  []float64

	pendingRows int

	solStat SolStat
	objVal  float64
	pseudoObjVal float64
	cutoffBound  float64
	isRelax      bool

	lastSolution []float64
}

// NewGonumLPKernel constructs a kernel over the given variable set. Rows
// are added with AddRow before the engine's first Flush.
func NewGonumLPKernel(vars []*Variable) *GonumLPKernel {
	return &GonumLPKernel{vars: vars, solStat: SolStatNotSolved}
}

// AddRow installs one linear inequality lhs <= coeffs.x <= rhs, keyed by
// position in the vars slice this kernel was built with.
func (k *GonumLPKernel) AddRow(coeffs []float64, lhs, rhs float64) {
	k.rows = append(k.rows, coeffs)
	k.rowLHS = append(k.rowLHS, lhs)
	k.rowRHS = append(k.rowRHS, rhs)
	k.pendingRows++
}

func (k *GonumLPKernel) Flush() error {
	k.pendingRows = 0
	return nil
}

// SolveAndEval builds the standard-form system from the current rows and
// variable bounds and calls lp.Simplex. Every row "lhs <= a.x <= rhs" is
// split into up to two "<=" rows, each of which gets its own slack column
// so lp.Simplex's Ax = b, x >= 0 standard form actually relaxes the
// inequality instead of pinning it to equality, and every bounded
// variable is shifted so its lower bound is 0. iterLim/useDual/fromScratch
// are accepted for interface compatibility; gonum's Simplex always solves
// from scratch.
func (k *GonumLPKernel) SolveAndEval(iterLim int, useDual, fromScratch bool) (lperror bool, err error) {
	n := len(k.vars)
	if n == 0 {
		k.solStat = SolStatOptimal
		k.objVal = 0
		return false, nil
	}

	c := make([]float64, n)
	for i, v := range k.vars {
		c[i] = v.ObjCoef
	}

	var structRows [][]float64
	var bData []float64
	addRow := func(coeffs []float64, rhs float64) {
		row := make([]float64, n)
		copy(row, coeffs)
		structRows = append(structRows, row)
		bData = append(bData, rhs)
	}
	for i, row := range k.rows {
		shift := 0.0 // a.lb, moved to the right-hand side by the lower-bound shift
		for j, cf := range row {
			if cf != 0 {
				shift += cf * k.vars[j].LocalLB
			}
		}
		if !isInfPos(k.rowRHS[i]) {
			addRow(row, k.rowRHS[i]-shift)
		}
		if !isInfNeg(k.rowLHS[i]) {
			neg := make([]float64, n)
			for j, cf := range row {
				neg[j] = -cf
			}
			addRow(neg, -(k.rowLHS[i] - shift))
		}
	}
	// Variable upper bounds as additional rows (lower bounds are handled
	// by the shift below).
	for i, v := range k.vars {
		if !isInfPos(v.LocalUB) {
			row := make([]float64, n)
			row[i] = 1
			addRow(row, v.LocalUB-v.LocalLB)
		}
	}

	nRows := len(structRows)
	if nRows == 0 {
		// No rows and no finite upper bounds: report per the objective
		// sign. Any variable whose cost falls without limit makes the LP
		// unbounded; otherwise every variable sits at its lower bound.
		obj := 0.0
		for _, v := range k.vars {
			if v.ObjCoef < 0 || (v.ObjCoef > 0 && isInfNeg(v.LocalLB)) {
				k.solStat = SolStatUnboundedRay
				return false, nil
			}
			if v.ObjCoef != 0 {
				obj += v.ObjCoef * v.LocalLB
			}
		}
		for _, v := range k.vars {
			v.LPSolVal, v.HasLPSolVal = v.LocalLB, true
		}
		k.solStat, k.objVal, k.isRelax = SolStatOptimal, obj, true
		return false, nil
	}

	total := n + nRows
	aData := make([]float64, 0, nRows*total)
	for i, row := range structRows {
		full := make([]float64, total)
		copy(full, row)
		full[n+i] = 1 // this row's slack
		aData = append(aData, full...)
	}
	cFull := make([]float64, total)
	copy(cFull, c)

	A := mat.NewDense(nRows, total, aData)

	_, x, err := lp.Simplex(nil, cFull, A, bData, 0)
	switch {
	case err == nil:
		k.solStat = SolStatOptimal
		k.lastSolution = x[:n]
		obj := 0.0
		for i, v := range k.vars {
			val := x[i] + v.LocalLB
			obj += v.ObjCoef * val
			v.LPSolVal = val
			v.HasLPSolVal = true
		}
		k.objVal = obj
		k.isRelax = true
		return false, nil
	case errors.Is(err, lp.ErrInfeasible):
		k.solStat = SolStatInfeasible
		return false, nil
	case errors.Is(err, lp.ErrUnbounded):
		k.solStat = SolStatUnboundedRay
		return false, nil
	case errors.Is(err, lp.ErrSingular):
		// GoMILP's expectedFailures table treats a singular basis as a
		// numerical failure to recover from, not a proof of anything
		// about the subproblem (DOMAIN STACK §2).
		return true, err
	default:
		k.solStat = SolStatError
		return true, err
	}
}

func (k *GonumLPKernel) GetSolStat() SolStat       { return k.solStat }
func (k *GonumLPKernel) GetObjVal() float64        { return k.objVal }
func (k *GonumLPKernel) GetPseudoObjVal() float64  { return PseudoObjVal(k.vars) }
func (k *GonumLPKernel) SetCutoffBound(b float64)  { k.cutoffBound = b }
func (k *GonumLPKernel) RemoveRedundantRows()       {}
func (k *GonumLPKernel) IsRelax() bool              { return k.isRelax }
