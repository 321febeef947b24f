// Package graphtest builds graphs for tests.
package graphtest

import (
	"fmt"

	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// Group is the group used by every fixture vertex.
const Group = "org.example"

func ID(name string) artifact.Identity {
	return artifact.Identity{Group: Group, Name: name}
}

// Builder wraps graph construction and panics on error, for table-driven
// fixtures.
type Builder struct {
	g   *graph.Graph
	seq int
}

// New returns a builder whose entry vertex is entry@1.0.
func New(entry string) *Builder {
	b := &Builder{g: graph.New()}
	b.Vertex(entry, "1.0")
	must(b.g.SetEntry(ID(entry)))
	return b
}

// Vertex adds a vertex unless one with the same name exists.
func (b *Builder) Vertex(name, version string) *Builder {
	if _, ok := b.g.Lookup(ID(name)); ok {
		return b
	}
	_, err := b.g.AddVertex(artifact.New(Group, name, version))
	must(err)
	return b
}

// Edge adds from -> to, creating missing vertices, with the next sequence.
func (b *Builder) Edge(from, to, version string, s scope.Scope, hop int) *Builder {
	b.seq++
	return b.EdgeSeq(from, to, version, s, hop, b.seq)
}

// EdgeSeq adds from -> to with an explicit sequence.
func (b *Builder) EdgeSeq(from, to, version string, s scope.Scope, hop, seq int) *Builder {
	b.Vertex(from, "0").Vertex(to, version)
	_, err := b.g.AddEdge(ID(from), ID(to), graph.EdgeData{
		Version:  version,
		Scope:    s,
		Hop:      hop,
		Sequence: seq,
	})
	must(err)
	return b
}

// Exclude adds from -> to carrying exclusions ("group:name" patterns).
func (b *Builder) Exclude(from, to, version string, hop int, exclusions ...string) *Builder {
	set := make(artifact.ExclusionSet, 0, len(exclusions))
	for _, raw := range exclusions {
		e, err := artifact.ParseExclusion(raw)
		must(err)
		set = append(set, e)
	}
	b.seq++
	b.Vertex(from, "0").Vertex(to, version)
	_, err := b.g.AddEdge(ID(from), ID(to), graph.EdgeData{
		Version:    version,
		Hop:        hop,
		Sequence:   b.seq,
		Exclusions: set,
	})
	must(err)
	return b
}

func (b *Builder) Graph() *graph.Graph {
	return b.g
}

// Reference is the canonical mediation scenario:
//
//	v1 -> v2  1.1 (hop 2, seq 1), 1.2 (hop 2, seq 2)
//	v1 -> v3  1.1 (hop 2, seq 1), 1.2 (hop 4, seq 2)
//	v3 -> v4  1.1 run (hop 2, seq 1), 1.2 test (hop 2, seq 2)
//
// Expected classpaths: build {v1, v2@1.2, v3@1.1}; run adds v4@1.1; test adds
// v4@1.2.
func Reference() *graph.Graph {
	return New("v1").
		EdgeSeq("v1", "v2", "1.1", scope.Unspecified, 2, 1).
		EdgeSeq("v1", "v2", "1.2", scope.Unspecified, 2, 2).
		EdgeSeq("v1", "v3", "1.1", scope.Unspecified, 2, 1).
		EdgeSeq("v1", "v3", "1.2", scope.Unspecified, 4, 2).
		EdgeSeq("v3", "v4", "1.1", scope.Run, 2, 1).
		EdgeSeq("v3", "v4", "1.2", scope.Test, 2, 2).
		Graph()
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("graphtest: %v", err))
	}
}
