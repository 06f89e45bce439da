package mipcore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariable_PseudoObjectiveContribution(t *testing.T) {
	v := NewVariable(0, 2, 1, 5, false)
	assert.Equal(t, 2.0, v.PseudoObjectiveContribution(), "positive coefficient picks the local lower bound")

	v2 := NewVariable(1, -2, 1, 5, false)
	assert.Equal(t, -10.0, v2.PseudoObjectiveContribution(), "negative coefficient picks the local upper bound")

	v3 := NewVariable(2, 2, math.Inf(-1), 5, false)
	assert.Equal(t, 0.0, v3.PseudoObjectiveContribution(), "unbounded relevant side contributes 0")
}

func TestVariable_PseudoCostEstimateDefaultsToOne(t *testing.T) {
	v := NewVariable(0, 1, 0, 10, false)
	assert.Equal(t, 1.0, v.PseudoCostEstimate(BoundLower))
	v.AddPseudoCostObservation(BoundLower, 2, 6)
	assert.Equal(t, 6.0, v.PseudoCostEstimate(BoundLower))
}

func TestVariable_IsFixed(t *testing.T) {
	v := NewVariable(0, 1, 3, 3, false)
	assert.True(t, v.IsFixed())
	v.LocalUB = 4
	assert.False(t, v.IsFixed())
}
