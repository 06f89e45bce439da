package mipcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructCurrentLP_SkipsWhenAlreadyFlushedAndSolved(t *testing.T) {
	prob := &Prob{Vars: []*Variable{NewVariable(0, 1, 0, 1, false)}}
	lp := NewLP(&fakeLPKernel{})
	lp.Flushed = true
	lp.Solved = true

	res := ConstructCurrentLP(prob, lp, NewSepastore(), true)

	assert.False(t, res.Cutoff)
	assert.Equal(t, 0, lp.NCols, "a skipped construction must not touch the LP's column count")
}

func TestInitLP_SeedsRootWithInitialVarsOnly(t *testing.T) {
	initial := NewVariable(0, 1, 0, 1, false)
	initial.Initial = true
	priced := NewVariable(1, 1, 0, 1, false)
	priced.Initial = false
	prob := &Prob{Vars: []*Variable{initial, priced}}
	lp := NewLP(&fakeLPKernel{})

	res := InitLP(prob, lp, NewSepastore(), true)

	assert.False(t, res.Cutoff)
	assert.Equal(t, 1, lp.pendingCols, "only the initial variable is seeded; the column edit is still pending until Flush")
	assert.NoError(t, lp.Flush())
	assert.Equal(t, 1, lp.NCols)
}

func TestInitLP_NonRootSkipsVariableSeeding(t *testing.T) {
	initial := NewVariable(0, 1, 0, 1, false)
	initial.Initial = true
	prob := &Prob{Vars: []*Variable{initial}}
	lp := NewLP(&fakeLPKernel{})

	InitLP(prob, lp, NewSepastore(), false)

	assert.Equal(t, 0, lp.pendingCols)
}

func TestInitLP_ConsHandlerCutoffStopsImmediately(t *testing.T) {
	h := &fakeConsHandler{name: "h", initCutoff: true}
	prob := &Prob{Vars: nil, ConsHandlers: []ConstraintHandler{h}}
	lp := NewLP(&fakeLPKernel{})

	res := InitLP(prob, lp, NewSepastore(), true)

	assert.True(t, res.Cutoff)
}
