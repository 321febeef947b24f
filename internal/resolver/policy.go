package resolver

import (
	"github.com/bayleafwalker/depgraph/internal/graph"
)

// Policy chooses between two visible edges competing for the same
// (source, target) pair.
type Policy interface {
	// Prefer reports whether candidate should replace current as the winner.
	Prefer(candidate, current graph.Edge) bool
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(candidate, current graph.Edge) bool

func (f PolicyFunc) Prefer(candidate, current graph.Edge) bool { return f(candidate, current) }

// NearestWins is the default mediation: the lower hop distance wins, and at
// equal distance the later declaration (higher sequence) wins. Versions are
// never compared.
var NearestWins Policy = PolicyFunc(nearestWins)

func nearestWins(candidate, current graph.Edge) bool {
	if candidate.Hop != current.Hop {
		return candidate.Hop < current.Hop
	}
	return candidate.Sequence > current.Sequence
}
