package mipcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforceConstraints_CutoffStopsImmediately(t *testing.T) {
	h1 := &fakeConsHandler{name: "a", enfoLPResult: EnfoCutoff}
	h2 := &fakeConsHandler{name: "b", enfoLPResult: EnfoBranched}
	prob := &Prob{ConsHandlers: []ConstraintHandler{h1, h2}}

	res := EnforceConstraints(prob, NewSepastore(), nil, true, false, false, false, false)

	assert.True(t, res.Cutoff)
	assert.True(t, res.Infeasible)
}

func TestEnforceConstraints_FeasibleFallsThroughToNextHandler(t *testing.T) {
	h1 := &fakeConsHandler{name: "a", enfoLPResult: EnfoFeasible}
	h2 := &fakeConsHandler{name: "b", enfoLPResult: EnfoBranched}
	prob := &Prob{ConsHandlers: []ConstraintHandler{h1, h2}}

	res := EnforceConstraints(prob, NewSepastore(), nil, true, false, false, false, false)

	assert.True(t, res.Branched)
	assert.True(t, res.Infeasible)
}

func TestEnforceConstraints_DidNotRunRequiresObjInfeasible(t *testing.T) {
	h := &fakeConsHandler{name: "a", enfoLPResult: EnfoDidNotRun}
	prob := &Prob{ConsHandlers: []ConstraintHandler{h}}

	require.Panics(t, func() {
		EnforceConstraints(prob, NewSepastore(), nil, true, false, false, false, false)
	}, "DIDNOTRUN while not objective-infeasible is a protocol violation")
}

func TestEnforceConstraints_PseudoSolCannotProduceCuts(t *testing.T) {
	h := &fakeConsHandler{name: "a", enfoLPResult: EnfoSeparated}
	prob := &Prob{ConsHandlers: []ConstraintHandler{h}}

	require.Panics(t, func() {
		EnforceConstraints(prob, NewSepastore(), nil, false, false, false, false, false)
	})
}
