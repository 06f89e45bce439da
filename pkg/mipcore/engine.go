package mipcore

import "math"

// engine.go wires Prob/Set/Stat/Tree/LP/Stores into one Engine and
// exposes the functional-options construction style ADAPTED from the
// teacher's optimize.go (OptimizeOption/optConfig/With* pattern), here
// configuring the engine instead of one search call.

// Engine owns the per-solve state a tree-driver invocation threads
// through every component (§9 redesign note: "pass an explicit engine
// context struct through every driver").
type Engine struct {
	Prob     *Prob
	Set      *Set
	Stat     *Stat
	Tree     *Tree
	LP       *LP
	Primal   *Primal
	Sepa     *Sepastore
	Cands    *BranchCandStore
	Cutpool  *Cutpool
	Conflict *Conflict
	Relax    *relaxatorState
	Events   *EventFilter
	Logger   *Logger
	Selector NodeSelector
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger   *Logger
	selector NodeSelector
	set      *Set
}

// WithLogger installs a structured logger (AMBIENT STACK §1).
func WithLogger(l *Logger) EngineOption { return func(c *engineConfig) { c.logger = l } }

// WithNodeSelector installs a custom node-selection strategy (§4.12 step 1).
func WithNodeSelector(s NodeSelector) EngineOption { return func(c *engineConfig) { c.selector = s } }

// WithSet installs a non-default configuration (§3 Settings).
func WithSet(s *Set) EngineOption { return func(c *engineConfig) { c.set = s } }

// NewEngine constructs an Engine over prob and kernel, applying opts.
func NewEngine(prob *Prob, kernel LPKernel, opts ...EngineOption) *Engine {
	cfg := &engineConfig{logger: NopLogger(), selector: BestBoundSelector{}, set: DefaultSet()}
	for _, o := range opts {
		o(cfg)
	}

	return &Engine{
		Prob:     prob,
		Set:      cfg.set,
		Stat:     NewStat(),
		Tree:     NewTree(prob.Vars),
		LP:       NewLP(kernel),
		Primal:   NewPrimal(),
		Sepa:     NewSepastore(),
		Cands:    NewBranchCandStore(),
		Cutpool:  NewCutpool(),
		Conflict: NewConflict(),
		Relax:    newRelaxatorState(),
		Events:   NewEventFilter(),
		Logger:   cfg.logger,
		Selector: cfg.selector,
	}
}

// BestBoundSelector picks the open node with the lowest lower bound, the
// classical best-first branch-and-bound strategy.
type BestBoundSelector struct{}

func (BestBoundSelector) SelectNode(tree *Tree) NodeID {
	best := NoNode
	bestLower := math.Inf(1)
	for _, n := range tree.arena {
		if n.Closed {
			continue
		}
		if n.ID == tree.FocusID() {
			continue
		}
		if n.Lower < bestLower {
			bestLower = n.Lower
			best = n.ID
		}
	}
	if best == NoNode && tree.FocusID() == NoNode && len(tree.arena) > 0 && !tree.arena[0].Closed {
		return tree.arena[0].ID
	}
	return best
}

// SelectNode exposes the node selector directly, for a caller stepping
// the tree one node at a time instead of running Solve to completion.
// Returns ErrNoNodeSelected once the open-node set is exhausted.
func (e *Engine) SelectNode() (NodeID, error) {
	id := e.Selector.SelectNode(e.Tree)
	if id == NoNode {
		return NoNode, ErrNoNodeSelected
	}
	return id, nil
}

// Solve runs the tree driver to completion (or restart), per §4.12.
func (e *Engine) Solve(nodeSolveCtxFactory func(focus NodeID, atRoot bool, nRuns int) *NodeSolveContext, afterNodeHeurs []Heuristic) TreeDriverResult {
	tdc := &TreeDriverContext{
		Prob: e.Prob, Set: e.Set, Stat: e.Stat, Tree: e.Tree, LP: e.LP, Primal: e.Primal,
		Sepa: e.Sepa, Cands: e.Cands, Conflict: e.Conflict, Relax: e.Relax, Events: e.Events,
		Logger: e.Logger, Selector: e.Selector, AfterNodeHeurs: afterNodeHeurs,
		NodeSolveCtxFactory: nodeSolveCtxFactory,
	}
	return SolveCIP(tdc)
}
