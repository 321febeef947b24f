package graph

import (
	"errors"
	"fmt"

	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// TreeNode is one declaration in an unresolved dependency tree. The root
// node is the module being built; its scope, exclusions and resolved flag
// are ignored.
type TreeNode struct {
	Metadata   artifact.Metadata
	Scope      scope.Scope
	Resolved   bool
	Exclusions artifact.ExclusionSet
	Children   []*TreeNode
}

// FromTree builds a multigraph from a declaration tree.
//
// Every node becomes an edge from its parent's vertex to its own. The first
// node seen for an identity (depth first, in declaration order) supplies the
// vertex's nominal metadata. Hop distance is the node's depth, so direct
// dependencies have hop 1, and sequence counts edges in depth-first
// declaration order starting at 1.
func FromTree(root *TreeNode) (*Graph, error) {
	if root == nil {
		return nil, errors.New("graph: nil tree")
	}

	g := New()
	if _, err := g.AddVertex(root.Metadata); err != nil {
		return nil, fmt.Errorf("graph: tree root: %w", err)
	}
	if err := g.SetEntry(root.Metadata.Identity); err != nil {
		return nil, err
	}

	seq := 0
	var walk func(parent artifact.Identity, nodes []*TreeNode, depth int) error
	walk = func(parent artifact.Identity, nodes []*TreeNode, depth int) error {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			id := n.Metadata.Identity
			if _, ok := g.Lookup(id); !ok {
				if _, err := g.AddVertex(n.Metadata); err != nil {
					return fmt.Errorf("graph: tree node %s: %w", id, err)
				}
			}
			seq++
			if _, err := g.AddEdge(parent, id, EdgeData{
				Version:    n.Metadata.Version,
				Resolved:   n.Resolved,
				Scope:      n.Scope,
				Exclusions: n.Exclusions,
				Hop:        depth,
				Sequence:   seq,
			}); err != nil {
				return err
			}
			if err := walk(id, n.Children, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root.Metadata.Identity, root.Children, 1); err != nil {
		return nil, err
	}
	return g, nil
}
