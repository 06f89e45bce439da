package mipcore

// Prob is the transformed optimization problem the engine operates on
// (§3 Problem). It is immutable after presolve (presolving itself is an
// explicit Non-goal, §1); the engine only ever reads it.
type Prob struct {
	Vars         []*Variable
	ConsHandlers []ConstraintHandler
	Separators   []Separator
	Propagators  []Propagator
	Pricers      []Pricer
	Relaxators   []Relaxator
	Heuristics   []Heuristic
	BranchRules  []BranchRule

	NContinuous int
	ObjLimit    float64 // objective limit; the obj-infeasible check (§4.10) compares against Primal.CutoffBound and does not read it
}

// NewProb constructs an (initially plug-in-free) problem over vars;
// plug-ins are registered with the Register* methods so a caller can wire
// in exactly the collaborators their problem domain needs.
func NewProb(vars []*Variable, nContinuous int, objLimit float64) *Prob {
	return &Prob{Vars: vars, NContinuous: nContinuous, ObjLimit: objLimit}
}

func (p *Prob) RegisterConsHandler(h ConstraintHandler) { p.ConsHandlers = append(p.ConsHandlers, h) }
func (p *Prob) RegisterSeparator(s Separator)           { p.Separators = append(p.Separators, s) }
func (p *Prob) RegisterPropagator(pr Propagator)        { p.Propagators = append(p.Propagators, pr) }
func (p *Prob) RegisterPricer(pc Pricer)                { p.Pricers = append(p.Pricers, pc) }
func (p *Prob) RegisterRelaxator(r Relaxator)           { p.Relaxators = append(p.Relaxators, r) }
func (p *Prob) RegisterHeuristic(h Heuristic)           { p.Heuristics = append(p.Heuristics, h) }
func (p *Prob) RegisterBranchRule(b BranchRule)         { p.BranchRules = append(p.BranchRules, b) }

// ActivePricers returns the currently active pricers; a restart may only
// trigger when this is empty (§8 Restart safety, §4.12 step 8).
func (p *Prob) ActivePricers() []Pricer {
	var out []Pricer
	for _, pc := range p.Pricers {
		if pc.Active() {
			out = append(out, pc)
		}
	}
	return out
}
