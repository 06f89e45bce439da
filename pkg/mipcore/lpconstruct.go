package mipcore

// lpconstruct.go implements the LP constructor (§4.4). GROUNDED on the
// general shape of a finite-domain solver's "install the model into the
// working store before search" step; here specialized to installing
// variables/rows into the LP kernel and running init-LP for every
// constraint handler.

// ConstructResult is construct_current_lp's return value.
type ConstructResult struct {
	Cutoff bool
}

// ConstructCurrentLP implements §4.4's outer operation: if the LP is not
// both flushed and solved it runs InitLP (atRoot reports whether this
// amounts to a root initialization); otherwise it does nothing. No LP
// state is loaded from the LP-state fork: the kernel's current rows and
// columns are used as they stand.
func ConstructCurrentLP(prob *Prob, lp *LP, sepa *Sepastore, atRoot bool) ConstructResult {
	if lp.Flushed && lp.Solved {
		return ConstructResult{}
	}
	return InitLP(prob, lp, sepa, atRoot)
}

// InitLP implements §4.4's init-LP procedure: at the root, seed the
// pricestore with every initial variable at reduced cost 0 and apply;
// then run every constraint handler's InitLP, applying any produced cuts
// through the sepastore with the root flag. Cutoff is reported only when a
// constraint handler's InitLP returns it; the drained cuts are counted as
// pending rows and are not checked for infeasibility.
func InitLP(prob *Prob, lp *LP, sepa *Sepastore, atRoot bool) ConstructResult {
	if atRoot {
		price := NewPricestore()
		price.StartRootLP()
		for _, v := range prob.Vars {
			if v.Initial {
				price.AddVar(v, 0)
			}
		}
		vars := price.Drain()
		lp.MarkColsAdded(len(vars))
		price.EndRootLP()
	}

	for _, h := range prob.ConsHandlers {
		if cutoff := h.InitLP(sepa, atRoot); cutoff {
			return ConstructResult{Cutoff: true}
		}
	}

	cuts := sepa.Drain()
	if len(cuts) > 0 {
		lp.MarkRowsAdded(len(cuts))
	}

	return ConstructResult{}
}
