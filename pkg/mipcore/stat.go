package mipcore

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Stat holds the engine's global counters (§3 Statistics). Counters are
// monotonically non-decreasing except Status, which IsStopped recomputes
// on every call. The atomic/CAS-based max-tracking idiom is ADAPTED from
// the teacher's SolverMonitor (fd_monitor.go); unlike that monitor this
// one is consulted synchronously from the single cooperative thread the
// engine runs on (§5), so the atomics buy safe external inspection
// (e.g. from a logger or a concurrently-polling caller) rather than
// concurrent-writer safety.
type Stat struct {
	NNodes            int64
	NLPs              int64
	NInitialLPs       int64
	NPriceRounds      int64 // pricing-iteration count (§3)
	NSepaRounds       int64
	BestSolNode       int64
	NDelayedCutoffs   int64

	// Restart bookkeeping, split per SUPPLEMENTED FEATURES in
	// SPEC_FULL.md §3 rather than collapsed into one counter, since
	// solve.c itself reports these three separately.
	NImmediateRestarts int64
	NFinalRestarts     int64
	NConfRestarts      int64

	// Conflict-analysis success counters. The conflict-driven restart
	// trigger (§4.12 step 8) reads Conflict's own NSuccess* counters, and
	// the engine does not update these fields.
	NConfSuccessProp      int64
	NConfSuccessInfeasLP  int64
	NConfSuccessBoundLP   int64
	NConfSuccessStrongBr  int64
	NConfSuccessPseudo    int64

	NLPErrors int64

	UserInterrupt int32 // one-shot flag, consumed during status computation (§5)
	firstLPSolved int32 // one-shot latch guarding FIRSTLPSOLVED (§6 Events)

	startTime time.Time
	status    int32 // Status, accessed atomically
}

// NewStat returns a freshly zeroed Stat with its clock started.
func NewStat() *Stat {
	return &Stat{startTime: time.Now(), status: int32(StatusUnknown)}
}

func (s *Stat) IncNNodes() int64            { return atomic.AddInt64(&s.NNodes, 1) }
func (s *Stat) IncNLPs() int64              { return atomic.AddInt64(&s.NLPs, 1) }
func (s *Stat) IncNInitialLPs() int64       { return atomic.AddInt64(&s.NInitialLPs, 1) }
func (s *Stat) IncNPriceRounds() int64      { return atomic.AddInt64(&s.NPriceRounds, 1) }
func (s *Stat) IncNSepaRounds() int64       { return atomic.AddInt64(&s.NSepaRounds, 1) }
func (s *Stat) IncNDelayedCutoffs() int64   { return atomic.AddInt64(&s.NDelayedCutoffs, 1) }
func (s *Stat) IncNLPErrors() int64         { return atomic.AddInt64(&s.NLPErrors, 1) }

func (s *Stat) SetBestSolNode(n int64) { atomic.StoreInt64(&s.BestSolNode, n) }

func (s *Stat) RequestUserInterrupt() { atomic.StoreInt32(&s.UserInterrupt, 1) }

// ConsumeUserInterrupt reports and clears the one-shot interrupt flag.
func (s *Stat) ConsumeUserInterrupt() bool {
	return atomic.SwapInt32(&s.UserInterrupt, 0) != 0
}

// ConsumeFirstLPSolved reports true exactly once, the first time it is
// called, so the caller can emit FIRSTLPSOLVED (§6 Events) only on the
// very first LP solved across the whole run.
func (s *Stat) ConsumeFirstLPSolved() bool {
	return atomic.CompareAndSwapInt32(&s.firstLPSolved, 0, 1)
}

func (s *Stat) Status() Status { return Status(atomic.LoadInt32(&s.status)) }

func (s *Stat) setStatus(st Status) { atomic.StoreInt32(&s.status, int32(st)) }

func (s *Stat) Elapsed() time.Duration { return time.Since(s.startTime) }

func (s *Stat) String() string {
	return fmt.Sprintf(
		"nodes=%d lps=%d sepa_rounds=%d price_rounds=%d lp_errors=%d restarts(imm=%d,final=%d,conf=%d) status=%s",
		atomic.LoadInt64(&s.NNodes), atomic.LoadInt64(&s.NLPs), atomic.LoadInt64(&s.NSepaRounds),
		atomic.LoadInt64(&s.NPriceRounds), atomic.LoadInt64(&s.NLPErrors),
		atomic.LoadInt64(&s.NImmediateRestarts), atomic.LoadInt64(&s.NFinalRestarts), atomic.LoadInt64(&s.NConfRestarts),
		s.Status())
}

// StopContext bundles the inputs the stop/status monitor needs beyond
// Set/Stat themselves: the current global bounds, to implement §4.1 step 1
// ("if the run will finish normally, don't stop early on a limit").
type StopContext struct {
	Lower, Upper   float64 // global lower/upper bound, upper = cutoff bound
	NSolutions     int64
	NBestSolutions int64
	Gap            float64 // relative gap; NaN if undefined
	AbsGap         float64 // absolute gap; NaN if undefined
}

// IsStopped implements the Stop/Status monitor (§4.1). check_node_limits
// selects whether node/stall-node limits participate.
func (s *Stat) IsStopped(set *Set, ctx StopContext, checkNodeLimits bool) bool {
	// Step 1: if the bounds already imply a normal finish, never stop
	// early regardless of limits.
	if ctx.Lower >= ctx.Upper && !isInfNeg(ctx.Upper) {
		return false
	}

	// Step 2: limitchanged forces a fresh UNKNOWN before re-evaluating.
	if set.limitchanged {
		s.setStatus(StatusUnknown)
		set.limitchanged = false
	}

	// Step 3: priority-ordered status assignment. Within one call the
	// first matching limit wins and overwrites the stored status; when no
	// limit matches, the status stored by an earlier call is kept.
	status := StatusUnknown

	switch {
	case s.ConsumeUserInterrupt():
		status = StatusUserInterrupt
	case set.LimitTime < s.Elapsed().Seconds():
		status = StatusTimeLimit
	case !isInfPos(set.LimitMemory) && currentMemMB() > set.LimitMemory:
		status = StatusMemLimit
	case set.LimitGap > 0 && ctx.Gap <= set.LimitGap:
		status = StatusGapLimit
	case set.LimitAbsGap > 0 && ctx.AbsGap <= set.LimitAbsGap:
		status = StatusGapLimit
	case set.LimitSolutions >= 0 && ctx.NSolutions >= set.LimitSolutions:
		status = StatusSolLimit
	case set.LimitBestSol >= 0 && ctx.NBestSolutions >= set.LimitBestSol:
		status = StatusBestSolLimit
	case checkNodeLimits && set.LimitNodes >= 0 && atomic.LoadInt64(&s.NNodes) >= set.LimitNodes:
		status = StatusNodeLimit
	case checkNodeLimits && set.LimitStallNodes >= 0 &&
		(atomic.LoadInt64(&s.NNodes)-atomic.LoadInt64(&s.BestSolNode)) >= set.LimitStallNodes:
		status = StatusStallNodeLimit
	}

	if status != StatusUnknown {
		s.setStatus(status)
	}

	// Step 4: a node-limit/stall-node-limit status doesn't stop an
	// interior (non-node-boundary) query.
	cur := s.Status()
	if !checkNodeLimits && (cur == StatusNodeLimit || cur == StatusStallNodeLimit) {
		return false
	}
	return cur != StatusUnknown
}

func isInfPos(f float64) bool { return f > 1e300 }
func isInfNeg(f float64) bool { return f < -1e300 }

// currentMemMB is a process memory probe point. The engine core never
// depends on a concrete OS/runtime sampling strategy; callers that care
// about MEMLIMIT wire a real sampler in with SetMemProbe, and this
// default stays a zero reading that effectively disables the check.
var memProbe = func() float64 { return 0 }

func currentMemMB() float64 { return memProbe() }

// SetMemProbe installs a process memory sampler (MB) used by IsStopped's
// MEMLIMIT check.
func SetMemProbe(f func() float64) { memProbe = f }
