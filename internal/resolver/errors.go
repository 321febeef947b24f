package resolver

import "errors"

var (
	// ErrNilGraph is returned when Resolve is called without a graph.
	ErrNilGraph = errors.New("resolver: nil graph")
)
