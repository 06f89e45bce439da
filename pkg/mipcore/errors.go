// Package mipcore implements the node-processing engine of a mixed integer
// / constraint integer programming solver: branch-and-bound with an
// integrated price-and-cut loop, domain propagation, and constraint-handler
// enforcement. The LP kernel, concrete propagators/separators/pricers and
// relaxators are external collaborators, consumed only through the
// interfaces in plugins.go.
package mipcore

import (
	"errors"
	"fmt"
)

// Sentinel errors for recoverable engine conditions. Drivers match these
// explicitly rather than inspecting error strings.
var (
	// ErrDomainEmpty is returned by propagation when a variable's bound
	// interval became empty (local lower bound exceeds local upper bound).
	ErrDomainEmpty = errors.New("mipcore: domain became empty")

	// ErrInconsistent is returned by propagation when a bound ends a
	// propagation round looser than it was at the start of that round.
	ErrInconsistent = errors.New("mipcore: inconsistent bound change")

	// ErrLPNotConstructed is returned when a driver that requires a
	// flushed LP is invoked before construct_current_lp has run.
	ErrLPNotConstructed = errors.New("mipcore: LP not constructed for focus node")

	// ErrNoNodeSelected is returned by Engine.SelectNode when the node
	// selector finds no open node to focus.
	ErrNoNodeSelected = errors.New("mipcore: no open node to focus")

	// ErrExactInfeasibleUnresolved is the documented open question of
	// §9: in exact-solve mode the engine cannot yet prove LP infeasibility
	// against exact arithmetic when every variable is fixed.
	ErrExactInfeasibleUnresolved = errors.New("mipcore: exact-mode infeasibility resolution not implemented")
)

// LPError wraps a numerical failure reported by the LP kernel collaborator.
// The node solver recovers from up to 10 of these per node (§7) by
// downgrading to a pseudo node; a LPError occurring while forcedLPSolve is
// set is promoted to a FatalError by the caller.
type LPError struct {
	Op  string // the LP operation that failed, e.g. "solve_and_eval"
	Err error
}

func (e *LPError) Error() string {
	return fmt.Sprintf("mipcore: LP error during %s: %v", e.Op, e.Err)
}

func (e *LPError) Unwrap() error { return e.Err }

// FatalError represents a programmer error: a plug-in violated its
// contract (§7). These never self-heal and must propagate to the caller
// of the tree driver.
type FatalError struct {
	Plugin string // identifies the offending plug-in, e.g. "conshdlr:knapsack"
	Reason string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("mipcore: protocol violation by %s: %s", e.Plugin, e.Reason)
}

// IsFatal reports whether err is, or wraps, a *FatalError. The drivers
// raise a FatalError by panicking with it rather than returning it, and no
// driver in this package calls IsFatal.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// AsLPError reports whether err is, or wraps, an *LPError, returning it.
func AsLPError(err error) (*LPError, bool) {
	var le *LPError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
