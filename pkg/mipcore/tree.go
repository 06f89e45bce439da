package mipcore

import "math"

// NodeID indexes into Tree.arena. Using indices instead of pointers
// removes the tree/node/path/LP-state-fork cyclic references the original
// C structures relied on (§9 redesign note: "arena + stable indices").
type NodeID int

const NoNode NodeID = -1

// DomChg is one bound tightening recorded against a node, tagged with its
// origin (§3 Tree domain-change list).
type DomChg struct {
	Var      VarID
	Side     BoundSide
	OldBound float64
	NewBound float64
	Origin   BoundOrigin

	// BranchLPVal is the variable's LP solution value at the moment a
	// BRANCHING-origin change was recorded, distinct from OldBound (the
	// previous bound, used for undo). Only RecordBranchingBoundChange
	// fills this in; it is the value the Pseudo-cost updater (§4.3)
	// needs and OldBound cannot supply.
	BranchLPVal float64
}

// Node is one search-tree node (§3 Tree). Ancestor/child/LP-state-fork
// links are NodeIDs into the owning Tree's arena, never pointers.
type Node struct {
	ID       NodeID
	Parent   NodeID
	Depth    int
	Type     NodeType
	Lower    float64
	Estimate float64

	DomChgs []DomChg

	// LPStateFork is the nearest ancestor whose LP basis was stored and
	// can be warm-started from (GLOSSARY: LP-state fork).
	LPStateFork NodeID
	HasLPState  bool

	Children   []NodeID
	NOpenKids  int
	Closed     bool // cut off or replaced by children; no longer focusable

	Propagated bool // set by the node solver once a propagation pass completes without cutoff (§4.2)
}

// Tree owns the node arena, the active path, and focus/cutoff bookkeeping
// (§3 Tree, §9 redesign note). The trail-of-changes-with-undo idiom is
// ADAPTED from the teacher's FDStore snapshot/undo trail (fd.go); here
// the trail is partitioned per node instead of one flat stack, since
// nodes persist (closed, not discarded) after the focus moves away.
type Tree struct {
	arena []*Node
	path  []NodeID // path[d].Depth == d for d <= focus depth (§8 path integrity)
	focus NodeID
	root  NodeID

	openCount   int
	cutoffDepth int // path-prefix cutoff depth; -1 when no prefix is cut off

	vars []*Variable // owning problem's variables, for bound application/undo
}

// NewTree creates a tree with a single root node at depth 0.
func NewTree(vars []*Variable) *Tree {
	t := &Tree{vars: vars, cutoffDepth: -1}
	root := &Node{ID: 0, Parent: NoNode, Depth: 0, Type: NodeFocus, LPStateFork: NoNode}
	t.arena = []*Node{root}
	t.root = 0
	t.focus = NoNode
	t.openCount = 1
	return t
}

func (t *Tree) Node(id NodeID) *Node { return t.arena[id] }
func (t *Tree) Root() NodeID         { return t.root }
func (t *Tree) FocusID() NodeID      { return t.focus }
func (t *Tree) OpenCount() int       { return t.openCount }

// CreateChild allocates a new open child of parent, inheriting its
// LP-state fork unless hasNewLPState is set (the child itself becomes the
// fork, used right after an LP is solved and its basis stored).
func (t *Tree) CreateChild(parent NodeID, typ NodeType, hasNewLPState bool) NodeID {
	p := t.arena[parent]
	id := NodeID(len(t.arena))
	fork := p.LPStateFork
	if p.HasLPState {
		fork = parent
	}
	n := &Node{
		ID:          id,
		Parent:      parent,
		Depth:       p.Depth + 1,
		Type:        typ,
		Lower:       p.Lower,
		LPStateFork: fork,
		HasLPState:  hasNewLPState,
	}
	if hasNewLPState {
		n.LPStateFork = id
	}
	t.arena = append(t.arena, n)
	p.Children = append(p.Children, id)
	p.NOpenKids++
	t.openCount++
	return id
}

// Focus switches the focus node to id, replaying/undoing bound changes
// along the path difference. Returns cutoff=true if node id itself is
// closed and cannot be focused (§4.12 step 1); its ancestors are not
// checked.
func (t *Tree) Focus(id NodeID) (cutoff bool) {
	n := t.arena[id]
	if n.Closed {
		return true
	}

	newPath := t.pathTo(id)

	// Find common prefix with the current path.
	common := 0
	for common < len(t.path) && common < len(newPath) && t.path[common] == newPath[common] {
		common++
	}

	// Undo bound changes from the old path, deepest first, down to the
	// common ancestor.
	for d := len(t.path) - 1; d >= common; d-- {
		t.undoNode(t.path[d])
	}
	// Apply bound changes along the new path, shallowest first, from the
	// common ancestor down to id.
	for d := common; d < len(newPath); d++ {
		t.applyNode(newPath[d])
	}

	t.path = newPath
	t.focus = id
	n.Type = NodeFocus
	return false
}

func (t *Tree) pathTo(id NodeID) []NodeID {
	var rev []NodeID
	for cur := id; cur != NoNode; cur = t.arena[cur].Parent {
		rev = append(rev, cur)
	}
	path := make([]NodeID, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}

func (t *Tree) applyNode(id NodeID) {
	n := t.arena[id]
	for _, ch := range n.DomChgs {
		v := t.vars[ch.Var]
		switch ch.Side {
		case BoundLower:
			v.LocalLB = ch.NewBound
		case BoundUpper:
			v.LocalUB = ch.NewBound
		}
	}
}

func (t *Tree) undoNode(id NodeID) {
	n := t.arena[id]
	for i := len(n.DomChgs) - 1; i >= 0; i-- {
		ch := n.DomChgs[i]
		v := t.vars[ch.Var]
		switch ch.Side {
		case BoundLower:
			v.LocalLB = ch.OldBound
		case BoundUpper:
			v.LocalUB = ch.OldBound
		}
	}
}

// RecordBoundChange appends a domain change to node id's list and applies
// it immediately (id must be on the active path, normally the focus).
func (t *Tree) RecordBoundChange(id NodeID, varID VarID, side BoundSide, newBound float64, origin BoundOrigin) {
	n := t.arena[id]
	v := t.vars[varID]
	var old float64
	switch side {
	case BoundLower:
		old = v.LocalLB
		v.LocalLB = newBound
	case BoundUpper:
		old = v.LocalUB
		v.LocalUB = newBound
	}
	n.DomChgs = append(n.DomChgs, DomChg{Var: varID, Side: side, OldBound: old, NewBound: newBound, Origin: origin})
}

// RecordBranchingBoundChange is RecordBoundChange specialized to
// OriginBranching: it additionally stamps the variable's current LP
// solution value into BranchLPVal, since a branching decision is always
// made against an LP solution and the Pseudo-cost updater (§4.3) needs
// that value, not the bound being replaced.
func (t *Tree) RecordBranchingBoundChange(id NodeID, varID VarID, side BoundSide, newBound float64) {
	v := t.vars[varID]
	lpVal := v.LPSolVal
	t.RecordBoundChange(id, varID, side, newBound, OriginBranching)
	n := t.arena[id]
	n.DomChgs[len(n.DomChgs)-1].BranchLPVal = lpVal
}

// Close marks a node as closed (cut off, or superseded by its children)
// and propagates the open-child bookkeeping to its parent (§3 Lifecycle).
func (t *Tree) Close(id NodeID) {
	n := t.arena[id]
	if n.Closed {
		return
	}
	n.Closed = true
	n.Lower = math.Inf(1)
	t.openCount--
	if n.Parent != NoNode {
		p := t.arena[n.Parent]
		p.NOpenKids--
	}
}

// IsActive reports whether id lies on the current focus path (§3 Tree).
func (t *Tree) IsActive(id NodeID) bool {
	for _, p := range t.path {
		if p == id {
			return true
		}
	}
	return false
}

// PathDepth returns the node at the given depth on the current path, or
// NoNode if depth exceeds the focus depth.
func (t *Tree) PathDepth(d int) NodeID {
	if d < 0 || d >= len(t.path) {
		return NoNode
	}
	return t.path[d]
}
