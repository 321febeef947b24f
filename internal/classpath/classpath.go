// Package classpath linearizes a resolved dependency graph into the ordered
// artifact list handed to compilers, test runners and packagers.
package classpath

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// ErrNilGraph is returned when Transform is called without a graph.
var ErrNilGraph = errors.New("classpath: nil graph")

// Entry is one artifact on the classpath.
type Entry struct {
	Identity artifact.Identity `json:"identity"`
	Version  string            `json:"version"`
	// Scope is the effective scope the artifact was admitted with, or
	// scope.Entry for the root module.
	Scope scope.Scope `json:"scope"`
}

func (e Entry) String() string {
	return e.Identity.String() + ":" + e.Version
}

// Classpath is an ordered artifact list.
type Classpath []Entry

// Lookup returns the entry for id.
func (c Classpath) Lookup(id artifact.Identity) (Entry, bool) {
	for _, e := range c {
		if e.Identity == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (c Classpath) String() string {
	parts := make([]string, 0, len(c))
	for _, e := range c {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "\n")
}

type options struct {
	includeEntry bool
}

type Option func(*options)

// IncludeEntry emits the entry vertex, with its nominal version, ahead of
// its dependencies. It is still omitted when no dependency is visible.
func IncludeEntry() Option {
	return func(o *options) { o.includeEntry = true }
}

type visit struct {
	id    artifact.Identity
	scope scope.Scope
}

// Transform walks resolved breadth first from its entry and returns every
// reachable artifact visible under requested, in visitation order. Outgoing
// edges are visited in mediation order: lower hop distance first, then
// higher sequence. Each artifact appears once, at its first visit.
//
// Effective scopes recorded by the resolver are used when present and
// recomputed with scope.Combine otherwise.
func Transform(ctx context.Context, resolved *graph.Graph, requested scope.Scope, opts ...Option) (Classpath, error) {
	if err := scope.Validate(requested); err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, ErrNilGraph
	}
	entry, ok := resolved.Entry()
	if !ok {
		return nil, graph.ErrNoEntry
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := logr.FromContextOrDiscard(ctx).WithValues(
		"entry", entry.Identity().String(),
		"scope", string(requested),
	)

	out := Classpath{}
	visited := sets.New(entry.Identity())
	queue := []visit{{id: entry.Identity(), scope: scope.Entry}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		edges := resolved.EdgesFrom(cur.id)
		sort.SliceStable(edges, func(i, j int) bool {
			if edges[i].Hop != edges[j].Hop {
				return edges[i].Hop < edges[j].Hop
			}
			return edges[i].Sequence > edges[j].Sequence
		})

		for _, e := range edges {
			eff, ok := resolved.EffectiveScope(e.ID)
			if !ok {
				eff, ok = scope.Combine(cur.scope, e.Scope)
				if !ok {
					continue
				}
			}
			if !scope.Visible(requested, eff) || visited.Has(e.Target) {
				continue
			}
			visited.Insert(e.Target)
			out = append(out, Entry{Identity: e.Target, Version: e.Version, Scope: eff})
			queue = append(queue, visit{id: e.Target, scope: eff})
			logger.V(1).Info("classpath entry", "artifact", e.Target.String(), "version", e.Version, "effective", string(eff))
		}
	}

	if o.includeEntry && len(out) > 0 {
		root := Entry{Identity: entry.Identity(), Version: entry.Metadata.Version, Scope: scope.Entry}
		out = append(Classpath{root}, out...)
	}

	logger.Info("built classpath", "entries", len(out))
	return out, nil
}
