package graph

import (
	"errors"
	"fmt"

	"github.com/bayleafwalker/depgraph/internal/artifact"
)

// Sentinel errors for graph construction. The typed errors below match them
// with errors.Is.
var (
	// ErrDuplicateVertex is returned when two vertices share an identity.
	ErrDuplicateVertex = errors.New("duplicate vertex")

	// ErrUnknownVertex is returned when the entry designation names a vertex
	// that is not in the graph.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrUnknownEdgeEndpoint is returned when an edge references a vertex that
	// has not been added.
	ErrUnknownEdgeEndpoint = errors.New("unknown edge endpoint")

	// ErrInvalidVertex is returned for vertices without a group or name.
	ErrInvalidVertex = errors.New("invalid vertex")

	// ErrUnknownEdge is returned when an EdgeID does not belong to the graph.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrNoEntry is returned when an operation needs the entry vertex and
	// none was designated.
	ErrNoEntry = errors.New("graph has no entry vertex")
)

type DuplicateVertexError struct {
	Identity artifact.Identity
}

func (e *DuplicateVertexError) Error() string {
	return fmt.Sprintf("duplicate vertex %s", e.Identity)
}

func (e *DuplicateVertexError) Is(target error) bool { return target == ErrDuplicateVertex }

type UnknownVertexError struct {
	Identity artifact.Identity
}

func (e *UnknownVertexError) Error() string {
	return fmt.Sprintf("unknown vertex %s", e.Identity)
}

func (e *UnknownVertexError) Is(target error) bool { return target == ErrUnknownVertex }

// UnknownEdgeEndpointError names the endpoint that was missing. Source and
// Target are both set so callers can report the whole edge.
type UnknownEdgeEndpointError struct {
	Source  artifact.Identity
	Target  artifact.Identity
	Missing artifact.Identity
}

func (e *UnknownEdgeEndpointError) Error() string {
	return fmt.Sprintf("edge %s -> %s: unknown endpoint %s", e.Source, e.Target, e.Missing)
}

func (e *UnknownEdgeEndpointError) Is(target error) bool { return target == ErrUnknownEdgeEndpoint }
