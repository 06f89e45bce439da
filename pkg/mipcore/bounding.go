package mipcore

import "math"

// bounding.go implements Bounding (§4.8), using the pseudo-objective rule
// of SPEC_FULL.md SUPPLEMENTED FEATURES §3 as implemented by PseudoObjVal
// (lp.go).

// BoundingResult is apply_bounding's return value.
type BoundingResult struct {
	Cutoff bool
}

// ApplyBounding implements §4.8. node is the focus node; vars is the
// problem's variable set; cutoffBound mirrors Primal.CutoffBound;
// exactSolve selects exact vs numeric cutoff comparison.
func ApplyBounding(node *Node, vars []*Variable, cutoffBound float64, exactSolve bool, conflict *Conflict) BoundingResult {
	pseudoObj := PseudoObjVal(vars)
	if pseudoObj > node.Lower {
		node.Lower = pseudoObj
	}

	var cutoff bool
	if exactSolve {
		cutoff = node.Lower >= cutoffBound // exact comparison: no epsilon slack
	} else {
		cutoff = node.Lower >= cutoffBound-1e-9 // numeric LE with a small tolerance
	}

	if !cutoff {
		return BoundingResult{}
	}

	if pseudoObj >= cutoffBound {
		pseudoConflictAnalysis(node, vars, conflict)
	}

	node.Lower = math.Inf(1)

	return BoundingResult{Cutoff: true}
}

// pseudoConflictAnalysis turns the cost bound into conflict constraints:
// it walks the node's branching bound changes from newest to oldest,
// summing |obj * (new - old)| for each, until the sum reaches node.Lower,
// and records the changes walked as one conflict constraint (§4.8, §3
// Stores Conflict). The set is not minimized.
func pseudoConflictAnalysis(node *Node, vars []*Variable, conflict *Conflict) {
	if conflict == nil {
		return
	}
	var bounds []DomChg
	acc := 0.0
	target := node.Lower
	for i := len(node.DomChgs) - 1; i >= 0 && acc < target; i-- {
		ch := node.DomChgs[i]
		if ch.Origin != OriginBranching {
			continue
		}
		v := vars[ch.Var]
		acc += math.Abs(v.ObjCoef * (ch.NewBound - ch.OldBound))
		bounds = append(bounds, ch)
	}
	if len(bounds) > 0 {
		conflict.Add(ConflictConstraint{Bounds: bounds})
		conflict.NSuccessPseudo++
	}
}
