package mipcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeparationRound_CutoffShortCircuits(t *testing.T) {
	sep := &fakeSeparator{name: "a", result: SepaCutoff}
	prob := &Prob{Separators: []Separator{sep}}
	set := DefaultSet()
	stat := NewStat()
	lp := NewLP(&fakeLPKernel{})

	res := SeparationRound(prob, set, stat, lp, NewSepastore(), SepaModeLP, nil, 0, 0, false, false)

	assert.True(t, res.Cutoff)
}

func TestSeparationRound_EnoughCutsStopsRound(t *testing.T) {
	sep := &fakeSeparator{name: "a", result: SepaSeparated}
	prob := &Prob{Separators: []Separator{sep}}
	set := DefaultSet()
	set.SepaMaxCuts = 1
	stat := NewStat()
	lp := NewLP(&fakeLPKernel{})
	lp.Flushed = true // avoid the resolve-on-unflush branch

	sepa := NewSepastore()
	for i := 0; i < 5; i++ {
		sepa.Add(Cut{Key: string(rune('a' + i))})
	}
	res := SeparationRound(prob, set, stat, lp, sepa, SepaModeLP, nil, 0, 0, false, false)

	assert.True(t, res.EnoughCuts)
}
