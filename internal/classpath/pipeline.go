package classpath

import (
	"context"
	"fmt"

	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/resolver"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// Result carries the classpath and the pruned graph it was read from. Each
// edge of Graph keeps its hop and sequence provenance.
type Result struct {
	Classpath Classpath
	Graph     *graph.Graph
}

// Pipeline runs conflict resolution followed by Transform.
type Pipeline struct {
	// Resolver defaults to resolver.NewDefault().
	Resolver resolver.Resolver
	Options  []Option
}

// Run resolves raw for requested and linearizes the result. raw is not
// modified.
func (p Pipeline) Run(ctx context.Context, raw *graph.Graph, requested scope.Scope) (Result, error) {
	r := p.Resolver
	if r == nil {
		r = resolver.NewDefault()
	}
	resolved, err := r.Resolve(ctx, raw, requested)
	if err != nil {
		return Result{}, fmt.Errorf("resolve %s: %w", requested, err)
	}
	cp, err := Transform(ctx, resolved, requested, p.Options...)
	if err != nil {
		return Result{}, fmt.Errorf("transform %s: %w", requested, err)
	}
	return Result{Classpath: cp, Graph: resolved}, nil
}

// Resolve is Pipeline{Options: opts}.Run.
func Resolve(ctx context.Context, raw *graph.Graph, requested scope.Scope, opts ...Option) (Result, error) {
	return Pipeline{Options: opts}.Run(ctx, raw, requested)
}
