// Package graph holds the dependency multigraph that resolution operates on.
//
// Vertices are keyed by artifact identity (group and name, no version). Edges
// live in a flat append-only collection indexed by EdgeID; adjacency maps from
// a vertex pair, and the incident/excident indexes per vertex, only hold
// EdgeIDs. Several parallel edges may join the same pair of vertices: that is
// how competing version and scope requests for one artifact are represented.
//
// A Graph is not safe for concurrent mutation. Each resolution request should
// build its own.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// EdgeID identifies an edge within the graph that created it. Graphs derived
// with Subgraph keep the IDs of the edges they copy.
type EdgeID int

// Vertex is one artifact in the graph. Its metadata version is nominal only.
type Vertex struct {
	Metadata artifact.Metadata
}

func (v Vertex) Identity() artifact.Identity {
	return v.Metadata.Identity
}

// EdgeData is the per-declaration payload of an edge.
type EdgeData struct {
	// Version is the requested version.
	Version  string
	Resolved bool
	// Scope is the declared scope; Unspecified means build.
	Scope      scope.Scope
	Exclusions artifact.ExclusionSet
	// Hop is the number of edges from the entry to this edge's source, plus one.
	Hop int
	// Sequence is the declaration order, used only to break ties.
	Sequence int
}

// Edge is an immutable declaration from Source to Target.
type Edge struct {
	ID     EdgeID
	Source artifact.Identity
	Target artifact.Identity
	EdgeData
}

func (e Edge) String() string {
	return fmt.Sprintf("#%d %s -> %s@%s [%s hop=%d seq=%d]",
		e.ID, e.Source, e.Target, e.Version, scope.Declared(e.Scope), e.Hop, e.Sequence)
}

type pair struct {
	from artifact.Identity
	to   artifact.Identity
}

// Graph is a directed multigraph of artifact declarations.
type Graph struct {
	vertices map[artifact.Identity]*Vertex

	edges  []Edge
	byID   map[EdgeID]int
	nextID EdgeID

	pairs    map[pair][]EdgeID
	excident map[artifact.Identity][]EdgeID
	incident map[artifact.Identity][]EdgeID

	entry    artifact.Identity
	hasEntry bool
	resolved *Resolution
}

// Resolution annotates a graph produced by conflict resolution.
type Resolution struct {
	// Requested is the consumption scope the graph was resolved for.
	Requested scope.Scope
	// Effective is the effective scope at the target of every surviving edge.
	Effective map[EdgeID]scope.Scope
}

func New() *Graph {
	return &Graph{
		vertices: make(map[artifact.Identity]*Vertex),
		byID:     make(map[EdgeID]int),
		pairs:    make(map[pair][]EdgeID),
		excident: make(map[artifact.Identity][]EdgeID),
		incident: make(map[artifact.Identity][]EdgeID),
	}
}

// AddVertex inserts a vertex for md. It fails with *DuplicateVertexError if a
// vertex with the same identity exists.
func (g *Graph) AddVertex(md artifact.Metadata) (Vertex, error) {
	id := md.Identity
	if id.Group == "" || id.Name == "" {
		return Vertex{}, fmt.Errorf("add vertex %q: %w", id, ErrInvalidVertex)
	}
	if _, exists := g.vertices[id]; exists {
		return Vertex{}, &DuplicateVertexError{Identity: id}
	}
	if md.Type == "" {
		md.Type = artifact.DefaultType
	}
	v := &Vertex{Metadata: md}
	g.vertices[id] = v
	return *v, nil
}

// Lookup returns the vertex for id.
func (g *Graph) Lookup(id artifact.Identity) (Vertex, bool) {
	v, ok := g.vertices[id]
	if !ok {
		return Vertex{}, false
	}
	return *v, true
}

// SetEntry designates the root module.
func (g *Graph) SetEntry(id artifact.Identity) error {
	if _, ok := g.vertices[id]; !ok {
		return &UnknownVertexError{Identity: id}
	}
	g.entry = id
	g.hasEntry = true
	return nil
}

// Entry returns the entry vertex, if one was designated.
func (g *Graph) Entry() (Vertex, bool) {
	if !g.hasEntry {
		return Vertex{}, false
	}
	return *g.vertices[g.entry], true
}

// AddEdge appends a new parallel edge from source to target. Edges are never
// deduplicated.
func (g *Graph) AddEdge(source, target artifact.Identity, data EdgeData) (EdgeID, error) {
	for _, end := range []artifact.Identity{source, target} {
		if _, ok := g.vertices[end]; !ok {
			return 0, &UnknownEdgeEndpointError{Source: source, Target: target, Missing: end}
		}
	}
	g.nextID++
	id := g.nextID
	g.insert(Edge{ID: id, Source: source, Target: target, EdgeData: cloneData(data)})
	return id, nil
}

func (g *Graph) insert(e Edge) {
	g.byID[e.ID] = len(g.edges)
	g.edges = append(g.edges, e)
	if e.ID > g.nextID {
		g.nextID = e.ID
	}
	p := pair{from: e.Source, to: e.Target}
	g.pairs[p] = append(g.pairs[p], e.ID)
	g.excident[e.Source] = append(g.excident[e.Source], e.ID)
	g.incident[e.Target] = append(g.incident[e.Target], e.ID)
}

func cloneData(d EdgeData) EdgeData {
	if d.Exclusions != nil {
		d.Exclusions = append(artifact.ExclusionSet(nil), d.Exclusions...)
	}
	return d
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

func (g *Graph) collect(ids []EdgeID) []Edge {
	out := make([]Edge, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.edges[g.byID[id]])
	}
	return out
}

// EdgesFrom returns the excident edges of id in insertion order.
func (g *Graph) EdgesFrom(id artifact.Identity) []Edge {
	return g.collect(g.excident[id])
}

// EdgesTo returns the incident edges of id in insertion order.
func (g *Graph) EdgesTo(id artifact.Identity) []Edge {
	return g.collect(g.incident[id])
}

// EdgesBetween returns the parallel edges from source to target in insertion
// order.
func (g *Graph) EdgesBetween(source, target artifact.Identity) []Edge {
	return g.collect(g.pairs[pair{from: source, to: target}])
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Vertices returns every vertex ordered by identity.
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		return artifact.Compare(out[i].Identity(), out[j].Identity()) < 0
	})
	return out
}

func (g *Graph) VertexCount() int { return len(g.vertices) }

func (g *Graph) EdgeCount() int { return len(g.edges) }

// IsEmpty reports whether the graph has no entry or no vertices.
func (g *Graph) IsEmpty() bool {
	return !g.hasEntry || len(g.vertices) == 0
}

// HasEdges reports whether the graph holds at least one edge.
func (g *Graph) HasEdges() bool {
	return len(g.edges) > 0
}

// Resolution returns the resolution annotation, or nil for a raw graph.
func (g *Graph) Resolution() *Resolution {
	return g.resolved
}

// EffectiveScope returns the effective scope recorded for a surviving edge
// of a resolved graph.
func (g *Graph) EffectiveScope(id EdgeID) (scope.Scope, bool) {
	if g.resolved == nil {
		return scope.Unspecified, false
	}
	s, ok := g.resolved.Effective[id]
	return s, ok
}

func (g *Graph) String() string {
	if g.IsEmpty() {
		return "empty"
	}
	var b strings.Builder
	for _, v := range g.Vertices() {
		id := v.Identity()
		marker := ""
		if id == g.entry {
			marker = " (entry)"
		}
		fmt.Fprintf(&b, "vertex %s%s\n", v.Metadata, marker)
		ins := g.EdgesTo(id)
		if len(ins) == 0 {
			b.WriteString("  no incoming edges\n")
		}
		for _, e := range ins {
			fmt.Fprintf(&b, "  from %s\n", e)
		}
		outs := g.EdgesFrom(id)
		if len(outs) == 0 {
			b.WriteString("  no outgoing edges\n")
		}
		for _, e := range outs {
			fmt.Fprintf(&b, "  to   %s\n", e)
		}
	}
	return b.String()
}
