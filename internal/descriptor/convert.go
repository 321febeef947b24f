package descriptor

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	depv1alpha1 "github.com/bayleafwalker/depgraph/api/v1alpha1"
	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// FromDependencyTree validates doc and builds its graph with graph.FromTree.
func FromDependencyTree(doc *depv1alpha1.DependencyTree) (*graph.Graph, error) {
	if errs := structErrors(&doc.Spec); len(errs) > 0 {
		return nil, invalid(depv1alpha1.KindDependencyTree, errs)
	}

	var errs []error
	root := &graph.TreeNode{Metadata: metadata(doc.Spec.Root)}
	root.Children = treeNodes(doc.Spec.Dependencies, "spec.dependencies", &errs)
	if len(errs) > 0 {
		return nil, invalid(depv1alpha1.KindDependencyTree, errs)
	}

	g, err := graph.FromTree(root)
	if err != nil {
		return nil, invalid(depv1alpha1.KindDependencyTree, []error{err})
	}
	return g, nil
}

func treeNodes(decls []depv1alpha1.Declaration, path string, errs *[]error) []*graph.TreeNode {
	if len(decls) == 0 {
		return nil
	}
	out := make([]*graph.TreeNode, 0, len(decls))
	for i, d := range decls {
		p := fmt.Sprintf("%s[%d]", path, i)
		s, err := scope.Parse(d.Scope)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s.scope: %w", p, err))
		}
		ex, err := exclusions(d.Exclusions)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s.exclusions: %w", p, err))
		}
		out = append(out, &graph.TreeNode{
			Metadata:   metadata(d.Coordinates),
			Scope:      s,
			Resolved:   d.Resolved != "",
			Exclusions: ex,
			Children:   treeNodes(d.Dependencies, p+".dependencies", errs),
		})
	}
	return out
}

// FromDependencyGraph validates doc and builds the graph it lists. Edges with
// no sequence are numbered by position, starting at 1.
func FromDependencyGraph(doc *depv1alpha1.DependencyGraph) (*graph.Graph, error) {
	if errs := structErrors(&doc.Spec); len(errs) > 0 {
		return nil, invalid(depv1alpha1.KindDependencyGraph, errs)
	}

	var errs []error
	g := graph.New()
	for i, v := range doc.Spec.Vertices {
		if _, err := g.AddVertex(metadata(v)); err != nil {
			errs = append(errs, fmt.Errorf("spec.vertices[%d]: %w", i, err))
		}
	}

	entry, err := artifact.ParseIdentity(doc.Spec.Entry)
	if err != nil {
		errs = append(errs, fmt.Errorf("spec.entry: %w", err))
	} else if err := g.SetEntry(entry); err != nil {
		errs = append(errs, fmt.Errorf("spec.entry: %w", err))
	}

	for i, e := range doc.Spec.Edges {
		p := fmt.Sprintf("spec.edges[%d]", i)
		before := len(errs)

		src, err := artifact.ParseIdentity(e.Source)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.source: %w", p, err))
		}
		dst, err := artifact.ParseIdentity(e.Target)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.target: %w", p, err))
		}
		s, err := scope.Parse(e.Scope)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.scope: %w", p, err))
		}
		ex, err := exclusions(e.Exclusions)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.exclusions: %w", p, err))
		}
		if len(errs) > before {
			continue
		}

		seq := e.Sequence
		if seq == 0 {
			seq = i + 1
		}
		if _, err := g.AddEdge(src, dst, graph.EdgeData{
			Version:    e.Version,
			Resolved:   e.Resolved != "",
			Scope:      s,
			Exclusions: ex,
			Hop:        e.Hop,
			Sequence:   seq,
		}); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}

	if len(errs) > 0 {
		return nil, invalid(depv1alpha1.KindDependencyGraph, errs)
	}
	return g, nil
}

func metadata(c depv1alpha1.Coordinates) artifact.Metadata {
	md := artifact.New(c.Group, c.Name, c.Version)
	if c.Type != "" {
		md.Type = c.Type
	}
	md.Classifier = c.Classifier
	return md
}

func exclusions(raw depv1alpha1.Exclusions) (artifact.ExclusionSet, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(artifact.ExclusionSet, 0, len(raw))
	for _, r := range raw {
		ex, err := artifact.ParseExclusion(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, nil
}

func invalid(kind string, errs []error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidDocument, kind, utilerrors.NewAggregate(errs))
}
