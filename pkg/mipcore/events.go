package mipcore

import "sort"

// EventType enumerates the events the core produces (§6 Events).
type EventType int

const (
	EventNodeFocused EventType = iota
	EventNodeFeasible
	EventNodeInfeasible
	EventNodeBranched
	EventFirstLPSolved
	EventLPSolved
)

func (e EventType) String() string {
	switch e {
	case EventNodeFocused:
		return "NODEFOCUSED"
	case EventNodeFeasible:
		return "NODEFEASIBLE"
	case EventNodeInfeasible:
		return "NODEINFEASIBLE"
	case EventNodeBranched:
		return "NODEBRANCHED"
	case EventFirstLPSolved:
		return "FIRSTLPSOLVED"
	case EventLPSolved:
		return "LPSOLVED"
	default:
		return "UNKNOWN"
	}
}

// Event carries the focus node and its type (§6 Events).
type Event struct {
	Type EventType
	Node NodeID
}

// EventListener processes one event synchronously. The filter does not
// permit a listener to re-enter the driver that emitted the event
// (§9 redesign note: "no callback reentry into the driver is permitted");
// listeners only observe.
type EventListener interface {
	Name() string
	HandleEvent(ev Event)
}

// EventFilter is a synchronous broadcast registry (§6 Events, §9 redesign
// note "Event dispatch"). The registry/priority-ordering shape is
// ADAPTED from the teacher's ConstraintManager (constraint_manager.go),
// simplified from its solver-routing-with-fallback design down to what
// event dispatch actually needs: an ordered set of listeners, all of
// which see every event.
type EventFilter struct {
	listeners []EventListener
}

func NewEventFilter() *EventFilter { return &EventFilter{} }

func (f *EventFilter) Register(l EventListener) { f.listeners = append(f.listeners, l) }

// Emit delivers ev to every registered listener in registration order and
// returns only once all have processed it (synchronous broadcast).
func (f *EventFilter) Emit(ev Event) {
	for _, l := range f.listeners {
		l.HandleEvent(ev)
	}
}

// splitByPriority partitions indices 0..n-1 by priority sign, non-negative
// first, then negative, and sorts each partition by descending priority
// (equal priorities keep their index order). This is the exact ordering §4.2/§4.5 specify for
// propagators/separators.
func splitByPriority(n int, priority func(i int) int) (nonNeg, neg []int) {
	for i := 0; i < n; i++ {
		if priority(i) >= 0 {
			nonNeg = append(nonNeg, i)
		} else {
			neg = append(neg, i)
		}
	}
	sort.SliceStable(nonNeg, func(a, b int) bool { return priority(nonNeg[a]) > priority(nonNeg[b]) })
	sort.SliceStable(neg, func(a, b int) bool { return priority(neg[a]) > priority(neg[b]) })
	return nonNeg, neg
}
