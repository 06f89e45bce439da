package mipcore

import "github.com/gitrdm/mipcore/internal/bufpool"

// pseudocost.go implements the Pseudo-cost updater (§4.3). GROUNDED on
// the teacher's bound-change trail (formerly fd.go's FDChange/snapshot
// pattern, now generalized into Tree's DomChg list in tree.go): this
// driver walks exactly that per-node trail to find the branching bound
// changes responsible for an LP objective gain.
//
// The collection buffer §4.3 step 4 requires to be released whether the
// update completes normally or is short-circuited is leased from
// internal/bufpool's scoped block-memory allocator (§5) rather than
// hand-rolled, since that allocator is exactly the "collection buffer is
// scoped and freed" collaborator spec.md names.

// UpdatePseudocost implements §4.3. It must be called after the focus
// node's initial LP has been solved optimally and only when an LP-state
// fork ancestor exists (fork != NoNode).
func UpdatePseudocost(tree *Tree, vars []*Variable, fork NodeID, focus NodeID, lpObj float64) {
	if fork == NoNode {
		return
	}
	forkNode := tree.Node(fork)
	gain := lpObj - forkNode.Lower
	if gain < 0 {
		gain = 0
	}

	touched, release := bufpool.Shared.Get(len(vars))
	defer release()

	type candidate struct {
		v        *Variable
		side     BoundSide
		oldVal   float64
	}
	var candidates []candidate

	// Step 1: walk fork.depth+1 .. focus.depth, collecting BRANCHING-
	// origin changes on variables whose flag is still NONE.
	for d := forkNode.Depth + 1; d <= tree.Node(focus).Depth; d++ {
		nid := tree.PathDepth(d)
		if nid == NoNode {
			continue
		}
		n := tree.Node(nid)
		for _, ch := range n.DomChgs {
			if ch.Origin != OriginBranching {
				continue
			}
			v := vars[ch.Var]
			if v.PseudoCostFlag() != PCFlagNone {
				continue
			}
			if isValidPseudoCostUpdate(v, ch) {
				v.SetPseudoCostFlag(PCFlagUpdate)
				// The accumulators are keyed by rounding direction: a raised
				// lower bound rounds up, a lowered upper bound rounds down.
				dir := BoundLower
				if ch.Side == BoundLower {
					dir = BoundUpper
				}
				candidates = append(candidates, candidate{v: v, side: dir, oldVal: ch.BranchLPVal})
			} else {
				v.SetPseudoCostFlag(PCFlagIgnore)
			}
			touched = append(touched, int(ch.Var))
		}
	}

	// Step 3: uniform weight across valid candidates.
	n := len(candidates)
	w := 1.0
	if n > 0 {
		w = 1.0 / float64(n)
	}
	for _, c := range candidates {
		c.v.AddPseudoCostObservation(c.side, w, gain)
	}

	// Step 4: reset every touched variable's flag.
	for _, vid := range touched {
		vars[vid].SetPseudoCostFlag(PCFlagNone)
	}
}

// isValidPseudoCostUpdate implements the first half of §4.3 step 2: the
// old LP value lay strictly outside the bounds after the change (below a
// new lower bound or above the local upper bound, and symmetrically for an
// upper-bound change). The new LP value is not checked against the bound
// closest to the old value. ch.BranchLPVal
// is the LP solution value at the moment the branching change was
// recorded (Tree.RecordBranchingBoundChange), distinct from ch.OldBound
// (the previous bound, used only for undo).
func isValidPseudoCostUpdate(v *Variable, ch DomChg) bool {
	oldVal := ch.BranchLPVal
	switch ch.Side {
	case BoundLower:
		return oldVal < ch.NewBound || oldVal > v.LocalUB
	case BoundUpper:
		return oldVal > ch.NewBound || oldVal < v.LocalLB
	}
	return false
}
