package mipcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustPrice_StopsWhenAllColumnsPresent(t *testing.T) {
	prob := &Prob{Vars: []*Variable{NewVariable(0, 1, 0, 1, false)}}
	lp := NewLP(&fakeLPKernel{solStat: SolStatOptimal})
	lp.SolStat = SolStatOptimal
	lp.NCols = 1

	assert.False(t, mustPrice(lp, prob, 0, 10, false))
}

func TestMustPrice_StoppedFlagWins(t *testing.T) {
	prob := &Prob{Vars: []*Variable{NewVariable(0, 1, 0, 1, false)}}
	lp := NewLP(&fakeLPKernel{})
	lp.SolStat = SolStatOptimal
	lp.NCols = 0
	assert.False(t, mustPrice(lp, prob, 0, 10, true))
}

func TestPriceLoop_NoActivePricersTerminatesImmediately(t *testing.T) {
	prob := &Prob{Vars: []*Variable{NewVariable(0, 1, 0, 1, false)}}
	kernel := &fakeLPKernel{solStat: SolStatOptimal}
	lp := NewLP(kernel)
	lp.SolStat = SolStatOptimal
	lp.NCols = 0 // fewer cols than prob.Vars, so mustPrice would otherwise want a round

	set := DefaultSet()
	stat := NewStat()
	price := NewPricestore()

	res := PriceLoop(prob, set, stat, lp, price, nil, 0, true, 5)

	assert.Equal(t, 0, res.NPricedColVars)
}
