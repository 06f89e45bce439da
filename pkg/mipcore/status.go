package mipcore

// Status is the terminating status reported by the tree driver and the
// stop/status monitor (§4.1, §6).
type Status int

const (
	StatusUnknown Status = iota
	StatusUserInterrupt
	StatusNodeLimit
	StatusStallNodeLimit
	StatusTimeLimit
	StatusMemLimit
	StatusGapLimit
	StatusSolLimit
	StatusBestSolLimit
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusInfOrUnbd
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "UNKNOWN"
	case StatusUserInterrupt:
		return "USERINTERRUPT"
	case StatusNodeLimit:
		return "NODELIMIT"
	case StatusStallNodeLimit:
		return "STALLNODELIMIT"
	case StatusTimeLimit:
		return "TIMELIMIT"
	case StatusMemLimit:
		return "MEMLIMIT"
	case StatusGapLimit:
		return "GAPLIMIT"
	case StatusSolLimit:
		return "SOLLIMIT"
	case StatusBestSolLimit:
		return "BESTSOLLIMIT"
	case StatusOptimal:
		return "OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusUnbounded:
		return "UNBOUNDED"
	case StatusInfOrUnbd:
		return "INFORUNBD"
	default:
		return "UNKNOWN"
	}
}

// SolStat is the LP kernel's solve status (§3 LP).
type SolStat int

const (
	SolStatNotSolved SolStat = iota
	SolStatOptimal
	SolStatInfeasible
	SolStatUnboundedRay
	SolStatObjLimit
	SolStatIterLimit
	SolStatTimeLimit
	SolStatError
)

// NodeType enumerates a node's role in the search tree (§3 Tree).
type NodeType int

const (
	NodeFocus NodeType = iota
	NodeRefocus
	NodeChild
	NodeSibling
	NodeLeaf
	NodeProbing
	NodeJunction
)

// BoundOrigin tags why a bound change happened (§3 Tree domain-change list).
type BoundOrigin int

const (
	OriginBranching BoundOrigin = iota
	OriginConsHdlr
	OriginProp
)

// BoundSide distinguishes lower/upper bound changes and, for pseudo costs,
// the rounding direction a branch takes (§4.3).
type BoundSide int

const (
	BoundLower BoundSide = iota
	BoundUpper
)

// PseudoCostFlag is the transient per-variable flag used only during one
// pseudo-cost update pass (§3 Variable, §8 pseudo-cost-flag hygiene).
type PseudoCostFlag int

const (
	PCFlagNone PseudoCostFlag = iota
	PCFlagIgnore
	PCFlagUpdate
)

// PropResult is a propagator's verdict (§6 Propagator).
type PropResult int

const (
	PropCutoff PropResult = iota
	PropReducedDom
	PropDelayed
	PropDidNotFind
	PropDidNotRun
)

// SepaResult is a separator's, or a constraint handler separation call's,
// verdict (§6 Separator).
type SepaResult int

const (
	SepaCutoff SepaResult = iota
	SepaConsAdded
	SepaSeparated
	SepaReducedDom
	SepaDelayed
	SepaDidNotFind
	SepaDidNotRun
)

// PriceResult is a pricer's verdict (§6 Pricer).
type PriceResult int

const (
	PriceSuccess PriceResult = iota
	PriceDidNotRun
)

// RelaxResult is a relaxator's verdict (§6 Relaxator, §4.9).
type RelaxResult int

const (
	RelaxCutoff RelaxResult = iota
	RelaxConsAdded
	RelaxReducedDom
	RelaxSeparated
	RelaxSuspended
	RelaxSuccess
	RelaxDidNotRun
)

// EnfoResult is a constraint handler enforcement verdict (§4.10).
type EnfoResult int

const (
	EnfoCutoff EnfoResult = iota
	EnfoConsAdded
	EnfoReducedDom
	EnfoSeparated
	EnfoBranched
	EnfoSolveLP
	EnfoInfeasible
	EnfoFeasible
	EnfoDidNotRun
)

// HeurTiming is a bit-flag mask of the points in the node loop at which a
// heuristic may run (§6 Heuristic).
type HeurTiming uint32

const (
	TimingBeforeNode HeurTiming = 1 << iota
	TimingDuringLPLoop
	TimingAfterLPLoop
	TimingAfterNode
	TimingDuringPricingLoop
	TimingBeforePresol
	TimingDuringPresolLoop
	TimingAfterPropLoop
	TimingAfterLPNode
	TimingAfterPseudoNode
	TimingAfterLPPlunge
	TimingAfterPseudoPlunge
)

// BranchResult is the outcome of invoking a branching rule (§4.11 step 13).
type BranchResult int

const (
	BranchBranched BranchResult = iota
	BranchReducedDom
	BranchCutoff
	BranchDidNotRun
)
