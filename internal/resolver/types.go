package resolver

import (
	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// EventKind classifies a decision taken for one edge during resolution.
type EventKind int

const (
	// EventSelected marks the winning edge of a (source, target) pair.
	EventSelected EventKind = iota
	// EventOmittedForNearer marks a visible edge that lost to a shorter path.
	EventOmittedForNearer
	// EventOmittedForLater marks a visible edge at the same distance that lost
	// to a later declaration.
	EventOmittedForLater
	// EventScopeFiltered marks an edge whose effective scope is not visible
	// under the requested scope, or whose path scope discards it.
	EventScopeFiltered
	// EventExcluded marks an edge whose target matches an exclusion declared
	// higher up the path.
	EventExcluded
)

func (k EventKind) String() string {
	switch k {
	case EventSelected:
		return "selected"
	case EventOmittedForNearer:
		return "omitted-for-nearer"
	case EventOmittedForLater:
		return "omitted-for-later"
	case EventScopeFiltered:
		return "scope-filtered"
	case EventExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// Event describes what happened to one edge.
type Event struct {
	Kind EventKind
	Edge graph.Edge
	// Winner is the selected edge for the same pair. It is the zero Edge for
	// EventSelected, EventScopeFiltered and EventExcluded.
	Winner graph.Edge
	// PathScope is the effective scope at the edge's source.
	PathScope scope.Scope
	// Effective is the effective scope at the edge's target, or Unspecified
	// when the combination was discarded.
	Effective scope.Scope
}

// Listener observes resolution decisions. Listeners are called synchronously
// in decision order.
type Listener interface {
	Observe(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) Observe(e Event) { f(e) }

// Recorder is a Listener that keeps every event.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Observe(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many recorded events have kind k.
func (r *Recorder) Count(k EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
