package mipcore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStopped_NormalFinishNeverStopsEarly(t *testing.T) {
	s := NewStat()
	set := DefaultSet()
	set.LimitNodes = 0 // would otherwise trip immediately
	s.IncNNodes()
	stopped := s.IsStopped(set, StopContext{Lower: 10, Upper: 5}, true)
	require.False(t, stopped, "bounds already imply a normal finish; limits must not fire")
}

func TestIsStopped_NodeLimit(t *testing.T) {
	s := NewStat()
	set := DefaultSet()
	set.LimitNodes = 1
	s.IncNNodes()
	s.IncNNodes()
	stopped := s.IsStopped(set, StopContext{Lower: 0, Upper: math.Inf(1)}, true)
	assert.True(t, stopped)
	assert.Equal(t, StatusNodeLimit, s.Status())
}

func TestIsStopped_NodeLimitIgnoredAtNonNodeBoundary(t *testing.T) {
	s := NewStat()
	set := DefaultSet()
	set.LimitNodes = 1
	s.IncNNodes()
	s.IncNNodes()
	stopped := s.IsStopped(set, StopContext{Lower: 0, Upper: math.Inf(1)}, false)
	assert.False(t, stopped, "node limit must not stop an interior, non-node-boundary query")
}

func TestIsStopped_UserInterruptTakesPriority(t *testing.T) {
	s := NewStat()
	set := DefaultSet()
	set.LimitNodes = 1
	s.IncNNodes()
	s.IncNNodes()
	s.RequestUserInterrupt()
	stopped := s.IsStopped(set, StopContext{Lower: 0, Upper: math.Inf(1)}, true)
	assert.True(t, stopped)
	assert.Equal(t, StatusUserInterrupt, s.Status())
}

func TestIsStopped_LimitChangedForcesRecompute(t *testing.T) {
	s := NewStat()
	set := DefaultSet()
	set.LimitNodes = 1
	s.IncNNodes()
	s.IncNNodes()
	s.IsStopped(set, StopContext{Lower: 0, Upper: math.Inf(1)}, true)
	require.Equal(t, StatusNodeLimit, s.Status())

	set.LimitNodes = -1
	set.SetLimitChanged()
	stopped := s.IsStopped(set, StopContext{Lower: 0, Upper: math.Inf(1)}, true)
	assert.False(t, stopped)
	assert.Equal(t, StatusUnknown, s.Status())
}
