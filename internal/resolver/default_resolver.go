package resolver

import (
	"context"
	"sort"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// DefaultResolver walks the graph breadth first from the entry, filters each
// vertex's outgoing edges by scope and exclusions, and mediates between the
// survivors of every (source, target) pair with its Policy.
//
// A vertex is expanded once, with the effective scope and inherited
// exclusions of the first winning edge that reaches it, so cycles terminate.
type DefaultResolver struct {
	policy    Policy
	listeners []Listener
}

type Option func(*DefaultResolver)

// WithPolicy replaces NearestWins.
func WithPolicy(p Policy) Option {
	return func(r *DefaultResolver) {
		if p != nil {
			r.policy = p
		}
	}
}

// WithListener adds a listener notified of every edge decision.
func WithListener(l Listener) Option {
	return func(r *DefaultResolver) {
		if l != nil {
			r.listeners = append(r.listeners, l)
		}
	}
}

func NewDefault(opts ...Option) *DefaultResolver {
	r := &DefaultResolver{policy: NearestWins}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// frontier is a vertex waiting to be expanded.
type frontier struct {
	id         artifact.Identity
	scope      scope.Scope
	exclusions artifact.ExclusionSet
}

type candidate struct {
	edge      graph.Edge
	effective scope.Scope
}

func (r *DefaultResolver) Resolve(ctx context.Context, raw *graph.Graph, requested scope.Scope) (*graph.Graph, error) {
	if err := scope.Validate(requested); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNilGraph
	}
	entry, ok := raw.Entry()
	if !ok {
		return nil, graph.ErrNoEntry
	}
	visible, err := scope.VisibleSet(requested)
	if err != nil {
		return nil, err
	}

	logger := logr.FromContextOrDiscard(ctx).WithValues(
		"entry", entry.Identity().String(),
		"scope", string(requested),
	)

	var (
		keep      []graph.EdgeID
		effective = make(map[graph.EdgeID]scope.Scope)
		expanded  = sets.New(entry.Identity())
		queue     = []frontier{{id: entry.Identity(), scope: scope.Entry}}
	)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		var winners []candidate
		for _, group := range groupByTarget(raw.EdgesFrom(cur.id)) {
			survivors := make([]candidate, 0, len(group))
			for _, e := range group {
				if cur.exclusions.Matches(e.Target) {
					r.emit(logger, Event{Kind: EventExcluded, Edge: e, PathScope: cur.scope})
					continue
				}
				eff, ok := scope.Combine(cur.scope, e.Scope)
				if !ok || !visible.Has(eff) {
					r.emit(logger, Event{Kind: EventScopeFiltered, Edge: e, PathScope: cur.scope, Effective: eff})
					continue
				}
				survivors = append(survivors, candidate{edge: e, effective: eff})
			}
			if len(survivors) == 0 {
				continue
			}

			win := r.mediate(logger, cur.scope, survivors)
			keep = append(keep, win.edge.ID)
			effective[win.edge.ID] = win.effective
			winners = append(winners, win)
		}

		// Expand targets in mediation order so the first expansion of a
		// shared target is deterministic.
		sort.SliceStable(winners, func(i, j int) bool {
			return r.policy.Prefer(winners[i].edge, winners[j].edge)
		})
		for _, w := range winners {
			target := w.edge.Target
			if expanded.Has(target) {
				continue
			}
			expanded.Insert(target)
			queue = append(queue, frontier{
				id:         target,
				scope:      w.effective,
				exclusions: cur.exclusions.Union(w.edge.Exclusions),
			})
		}
	}

	resolved, err := raw.Subgraph(keep, &graph.Resolution{Requested: requested, Effective: effective})
	if err != nil {
		return nil, err
	}
	logger.Info("resolved dependency graph",
		"vertices", resolved.VertexCount(),
		"edges", resolved.EdgeCount(),
		"pruned", raw.EdgeCount()-resolved.EdgeCount(),
	)
	return resolved, nil
}

// mediate picks the winner among visible candidates for one pair and reports
// every loser.
func (r *DefaultResolver) mediate(logger logr.Logger, path scope.Scope, survivors []candidate) candidate {
	win := survivors[0]
	for _, c := range survivors[1:] {
		if r.policy.Prefer(c.edge, win.edge) {
			win = c
		}
	}
	for _, c := range survivors {
		if c.edge.ID == win.edge.ID {
			continue
		}
		kind := EventOmittedForLater
		if c.edge.Hop > win.edge.Hop {
			kind = EventOmittedForNearer
		}
		r.emit(logger, Event{Kind: kind, Edge: c.edge, Winner: win.edge, PathScope: path, Effective: c.effective})
	}
	r.emit(logger, Event{Kind: EventSelected, Edge: win.edge, PathScope: path, Effective: win.effective})
	return win
}

func (r *DefaultResolver) emit(logger logr.Logger, ev Event) {
	if v := logger.V(1); v.Enabled() {
		kv := []any{"edge", ev.Edge.String(), "effective", string(ev.Effective)}
		if ev.Winner.ID != 0 {
			kv = append(kv, "winner", ev.Winner.String())
		}
		v.Info(ev.Kind.String(), kv...)
	}
	for _, l := range r.listeners {
		l.Observe(ev)
	}
}

// groupByTarget splits edges into per-target groups, ordered by each
// target's first appearance. Edge order inside a group is preserved.
func groupByTarget(edges []graph.Edge) [][]graph.Edge {
	index := make(map[artifact.Identity]int)
	var groups [][]graph.Edge
	for _, e := range edges {
		i, ok := index[e.Target]
		if !ok {
			i = len(groups)
			index[e.Target] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], e)
	}
	return groups
}
