package mipcore

// fakes_test.go collects hand-written fakes implementing the plug-in
// interfaces of plugins.go, shared across this package's test files, per
// AMBIENT STACK §1's testing convention (fakes rather than integration
// fixtures).

type fakePropagator struct {
	name      string
	priority  int
	result    PropResult
	wasDelay  bool
	callCount int
	mutate    func() // optional: applied on each Exec, to test bound-integrity checking and call order
}

func (p *fakePropagator) Name() string    { return p.name }
func (p *fakePropagator) Priority() int   { return p.priority }
func (p *fakePropagator) WasDelayed() bool { return p.wasDelay }
func (p *fakePropagator) Exec(depth int, onlyDelayed bool) PropResult {
	p.callCount++
	if p.mutate != nil {
		p.mutate()
	}
	return p.result
}

type fakeConsHandler struct {
	name         string
	sepaPrio     int
	enfoPrio     int
	propResult   PropResult
	enfoLPResult EnfoResult
	sepaResult   SepaResult
	initCutoff   bool
}

func (h *fakeConsHandler) Name() string       { return h.name }
func (h *fakeConsHandler) SepaPriority() int  { return h.sepaPrio }
func (h *fakeConsHandler) EnfoPriority() int  { return h.enfoPrio }
func (h *fakeConsHandler) InitLP(sepa *Sepastore, atRoot bool) bool { return h.initCutoff }
func (h *fakeConsHandler) SeparateLP(sepa *Sepastore, depth int, boundDist float64, onlyDelayed bool) SepaResult {
	return h.sepaResult
}
func (h *fakeConsHandler) SeparateSol(sepa *Sepastore, sol Solution, depth int, onlyDelayed bool) SepaResult {
	return h.sepaResult
}
func (h *fakeConsHandler) Propagate(depth int, full, onlyDelayed bool) PropResult { return h.propResult }
func (h *fakeConsHandler) EnforceLP(infeasible bool) EnfoResult                   { return h.enfoLPResult }
func (h *fakeConsHandler) EnforcePseudo(infeasible, objInfeasible, forced bool) EnfoResult {
	return h.enfoLPResult
}
func (h *fakeConsHandler) WasSepaDelayed() bool { return false }
func (h *fakeConsHandler) WasPropDelayed() bool { return false }

type fakeSeparator struct {
	name     string
	priority int
	result   SepaResult
}

func (s *fakeSeparator) Name() string     { return s.name }
func (s *fakeSeparator) Priority() int    { return s.priority }
func (s *fakeSeparator) WasLPDelayed() bool  { return false }
func (s *fakeSeparator) WasSolDelayed() bool { return false }
func (s *fakeSeparator) ExecLP(sepa *Sepastore, depth int, boundDist float64, onlyDelayed bool) SepaResult {
	return s.result
}
func (s *fakeSeparator) ExecSol(sepa *Sepastore, sol Solution, depth int, onlyDelayed bool) SepaResult {
	return s.result
}

type fakePricer struct {
	name     string
	priority int
	active   bool
	lb       float64
	result   PriceResult
}

func (p *fakePricer) Name() string  { return p.name }
func (p *fakePricer) Priority() int { return p.priority }
func (p *fakePricer) Active() bool  { return p.active }
func (p *fakePricer) Exec(prob *Prob, lp *LP, price *Pricestore) (float64, PriceResult) {
	return p.lb, p.result
}

type fakeRelaxator struct {
	name     string
	priority int
	lb       float64
	result   RelaxResult
}

func (r *fakeRelaxator) Name() string  { return r.name }
func (r *fakeRelaxator) Priority() int { return r.priority }
func (r *fakeRelaxator) Exec(depth int) (float64, RelaxResult) { return r.lb, r.result }

type fakeHeuristic struct {
	name   string
	timing HeurTiming
	found  bool
	calls  int
}

func (h *fakeHeuristic) Name() string         { return h.name }
func (h *fakeHeuristic) Timing() HeurTiming   { return h.timing }
func (h *fakeHeuristic) Exec(depth, lpStateForkDepth int, timingMask HeurTiming, delayedCount int) bool {
	h.calls++
	return h.found
}

type fakeBranchRule struct {
	name     string
	priority int
	lpResult BranchResult
	pResult  BranchResult
}

func (b *fakeBranchRule) Name() string  { return b.name }
func (b *fakeBranchRule) Priority() int { return b.priority }
func (b *fakeBranchRule) ExecLP(cands *BranchCandStore) BranchResult     { return b.lpResult }
func (b *fakeBranchRule) ExecPseudo(cands *BranchCandStore) BranchResult { return b.pResult }

// fakeLPKernel is a minimal in-memory LPKernel: every SolveAndEval call
// reports the scripted status without touching any real row/column data,
// enough to drive LP.SolveAndEval's bookkeeping in isolation from a real
// simplex (lpkernel_gonum_test.go exercises the real one).
type fakeLPKernel struct {
	solStat      SolStat
	objVal       float64
	lperr        bool
	err          error
	isRelax      bool
	solveCalls   int
}

func (k *fakeLPKernel) Flush() error { return nil }
func (k *fakeLPKernel) SolveAndEval(iterLim int, useDual, fromScratch bool) (bool, error) {
	k.solveCalls++
	return k.lperr, k.err
}
func (k *fakeLPKernel) GetSolStat() SolStat      { return k.solStat }
func (k *fakeLPKernel) GetObjVal() float64       { return k.objVal }
func (k *fakeLPKernel) GetPseudoObjVal() float64 { return 0 }
func (k *fakeLPKernel) SetCutoffBound(b float64) {}
func (k *fakeLPKernel) RemoveRedundantRows()     {}
func (k *fakeLPKernel) IsRelax() bool            { return k.isRelax }

// fakeEventListener records every event it's handed, in order.
type fakeEventListener struct {
	events []Event
}

func (l *fakeEventListener) Name() string { return "fake" }
func (l *fakeEventListener) HandleEvent(ev Event) { l.events = append(l.events, ev) }
