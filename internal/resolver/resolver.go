package resolver

import (
	"context"

	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// Resolver prunes a raw dependency graph down to at most one edge per
// (source, target) pair for a requested consumption scope.
//
// Implementations must not modify raw; the returned graph is newly built and
// independently owned by the caller.
type Resolver interface {
	Resolve(ctx context.Context, raw *graph.Graph, requested scope.Scope) (*graph.Graph, error)
}
