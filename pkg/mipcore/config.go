package mipcore

import "math"

// Set holds the engine's configuration (§3 Settings, §6 configuration
// keys). Its fields are public and are not changed by the engine inside a
// single node; a caller that changes a limit calls SetLimitChanged so the
// stop/status monitor re-evaluates Stat.status on the next check,
// mirroring the teacher's
// SolverConfig / DefaultSolverConfig shape (fd.go) rather than reaching
// for a config-file library.
type Set struct {
	// Limits (§6: limit_*).
	LimitTime       float64 // seconds, +Inf = unlimited
	LimitMemory     float64 // MB, +Inf = unlimited
	LimitNodes      int64   // -1 = unlimited
	LimitStallNodes int64   // -1 = unlimited
	LimitSolutions  int64   // -1 = unlimited
	LimitBestSol    int64   // -1 = unlimited
	LimitGap        float64 // relative gap, 0 = disabled
	LimitAbsGap     float64 // absolute gap, 0 = disabled

	// Propagation (§6: prop_*).
	PropMaxRounds     int // non-root round cap used when Propagate is asked for 0 rounds (see PropRoundCap)
	PropMaxRoundsRoot int
	PropAbortOnCutoff bool

	// Separation (§6: sepa_*).
	SepaMaxRounds          int
	SepaMaxRoundsRoot      int
	SepaMaxRoundsRootSub   int
	SepaMaxAddRounds       int
	SepaMaxStallRounds     int
	SepaMaxCuts            int
	SepaMaxCutsRoot        int
	SepaMaxBoundDist       float64
	SepaMaxRuns            int
	SepaPoolFreq           int // 0 = root only

	// LP scheduling (§6: lp_*).
	LPSolveDepth int // -1 = unlimited
	LPSolveFreq  int // 0 = every node

	// Restarts / presolve interplay (§6: presol_*, conf_*).
	PresolMaxRestarts    int
	PresolRestartFac     float64
	PresolSubRestartFac  float64
	PresolImmRestartFac  float64
	PresolRestartMinRed  float64
	ConfRestartNum       int
	ConfRestartFac       float64

	// Modes (§6: misc_exactsolve, disp_verblevel).
	ExactSolve    bool
	AbortOnCutoff bool
	VerbLevel     int

	// limitchanged is a one-shot flag: set by SetLimitChanged, cleared
	// by the stop/status monitor on the next IsStopped call (§4.1 step 2).
	limitchanged bool
}

// DefaultSet returns the engine's default configuration, matching the
// SCIP defaults the spec's component descriptions are phrased against.
func DefaultSet() *Set {
	return &Set{
		LimitTime:       math.Inf(1),
		LimitMemory:     math.Inf(1),
		LimitNodes:      -1,
		LimitStallNodes: -1,
		LimitSolutions:  -1,
		LimitBestSol:    -1,
		LimitGap:        0,
		LimitAbsGap:     0,

		PropMaxRounds:     100,
		PropMaxRoundsRoot: 1000,
		PropAbortOnCutoff: true,

		SepaMaxRounds:        5,
		SepaMaxRoundsRoot:    -1,
		SepaMaxRoundsRootSub: -1,
		SepaMaxAddRounds:     1,
		SepaMaxStallRounds:   10,
		SepaMaxCuts:          100,
		SepaMaxCutsRoot:      2000,
		SepaMaxBoundDist:     0.0,
		SepaMaxRuns:          -1,
		SepaPoolFreq:         0,

		LPSolveDepth: -1,
		LPSolveFreq:  1,

		PresolMaxRestarts:   -1,
		PresolRestartFac:    1.0,
		PresolSubRestartFac: 1.0,
		PresolImmRestartFac: 0.1,
		PresolRestartMinRed: 0.10,
		ConfRestartNum:      0,
		ConfRestartFac:      1.5,

		ExactSolve:    false,
		AbortOnCutoff: true,
		VerbLevel:     0,
	}
}

// SetLimitChanged marks that limits were mutated externally, forcing the
// stop/status monitor to reset Stat.status to StatusUnknown and
// re-evaluate on its next call (§4.1 step 2).
func (s *Set) SetLimitChanged() { s.limitchanged = true }

// MaxSepaRounds returns the round cap for separation at the given depth,
// honoring the root-vs-non-root distinction (§4.7).
func (s *Set) MaxSepaRounds(atRoot bool) int {
	if atRoot {
		return s.SepaMaxRoundsRoot
	}
	return s.SepaMaxRounds
}

// MaxCuts returns the per-round cut cap, root vs non-root (§4.5 "enough cuts").
func (s *Set) MaxCuts(atRoot bool) int {
	if atRoot {
		return s.SepaMaxCutsRoot
	}
	return s.SepaMaxCuts
}

// PropRoundCap resolves max_rounds=0 to the configured cap and -1 to
// "unlimited" (represented as math.MaxInt32), per §4.2.
func (s *Set) PropRoundCap(requested int, atRoot bool) int {
	switch {
	case requested == -1:
		return math.MaxInt32
	case requested == 0 && atRoot:
		return s.PropMaxRoundsRoot
	case requested == 0:
		return s.PropMaxRounds
	default:
		return requested
	}
}
