package graph

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// Subgraph returns a new graph holding the edges in keep that are reachable
// from the entry, and the vertices those edges reach. Edge IDs are preserved.
// The receiver is not modified and shares no mutable state with the result.
//
// When res is non-nil the result carries it as its resolution annotation,
// restricted to the surviving edges.
func (g *Graph) Subgraph(keep []EdgeID, res *Resolution) (*Graph, error) {
	if !g.hasEntry {
		return nil, ErrNoEntry
	}

	kept := sets.New[EdgeID]()
	for _, id := range keep {
		if _, ok := g.byID[id]; !ok {
			return nil, fmt.Errorf("subgraph: edge %d: %w", id, ErrUnknownEdge)
		}
		kept.Insert(id)
	}

	reached := sets.New(g.entry)
	queue := []artifact.Identity{g.entry}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, id := range g.excident[v] {
			if !kept.Has(id) {
				continue
			}
			target := g.edges[g.byID[id]].Target
			if reached.Has(target) {
				continue
			}
			reached.Insert(target)
			queue = append(queue, target)
		}
	}

	out := New()
	for id := range reached {
		out.vertices[id] = &Vertex{Metadata: g.vertices[id].Metadata}
	}
	out.entry = g.entry
	out.hasEntry = true

	for _, e := range g.edges {
		if kept.Has(e.ID) && reached.Has(e.Source) {
			e.EdgeData = cloneData(e.EdgeData)
			out.insert(e)
		}
	}

	if res != nil {
		effective := make(map[EdgeID]scope.Scope, len(out.edges))
		for _, e := range out.edges {
			if s, ok := res.Effective[e.ID]; ok {
				effective[e.ID] = s
			}
		}
		out.resolved = &Resolution{Requested: res.Requested, Effective: effective}
	}
	return out, nil
}
