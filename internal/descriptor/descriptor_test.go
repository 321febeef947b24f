package descriptor

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/classpath"
	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/graph/graphtest"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

func entries(cp classpath.Classpath) []string {
	out := make([]string, 0, len(cp))
	for _, e := range cp {
		out = append(out, e.Identity.Name+"@"+e.Version)
	}
	return out
}

func TestLoad_DependencyGraphMatchesReferenceFixture(t *testing.T) {
	g, err := Load(filepath.Join("testdata", "reference.yaml"))
	require.NoError(t, err)
	assert.Equal(t, graphtest.Reference().String(), g.String())

	edges := g.EdgesBetween(graphtest.ID("v3"), graphtest.ID("v4"))
	require.Len(t, edges, 2)
	assert.Equal(t, scope.Run, edges[0].Scope, "runtime alias")
}

func TestLoad_DependencyTree(t *testing.T) {
	g, err := Load(filepath.Join("testdata", "tree.yaml"))
	require.NoError(t, err)

	entry, ok := g.Entry()
	require.True(t, ok)
	assert.Equal(t, "org.example:webapp:war:1.0", entry.Metadata.String())
	assert.Equal(t, 7, g.EdgeCount())

	web := g.EdgesBetween(artifact.Identity{Group: "org.example", Name: "webapp"}, artifact.Identity{Group: "org.example", Name: "web"})
	require.Len(t, web, 1)
	assert.Equal(t, artifact.ExclusionSet{{Group: "org.example", Name: "logging"}}, web[0].Exclusions)

	tests := []struct {
		scope scope.Scope
		want  []string
	}{
		{scope.Build, []string{"servlet-api@3.1", "web@2.0", "json@1.0"}},
		{scope.Run, []string{"logging@1.2", "web@2.0", "json@1.0"}},
		{scope.Test, []string{"logging@1.2", "junit@4.13", "servlet-api@3.1", "web@2.0", "hamcrest@1.3", "json@1.0"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			res, err := classpath.Resolve(context.Background(), g, tt.scope)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entries(res.Classpath))
		})
	}
}

func TestDecode_JSON(t *testing.T) {
	doc := `{
		"apiVersion": "depgraph.bayleafwalker.io/v1alpha1",
		"kind": "DependencyGraph",
		"spec": {
			"entry": "g:app",
			"vertices": [{"group": "g", "name": "app", "version": "1"}, {"group": "g", "name": "lib", "version": "2"}],
			"edges": [{"source": "g:app", "target": "g:lib", "version": "2", "hop": 1}]
		}
	}`
	g, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, 1, g.EdgeCount())
	e := g.Edges()[0]
	assert.Equal(t, 1, e.Sequence, "sequence defaults to position")
	assert.Equal(t, scope.Unspecified, e.Scope)
}

func TestDecode_UnsupportedKind(t *testing.T) {
	for _, doc := range []string{
		"apiVersion: v1\nkind: ConfigMap\n",
		"apiVersion: depgraph.bayleafwalker.io/v1alpha1\nkind: Lockfile\n",
		"spec: {}\n",
	} {
		_, err := Decode([]byte(doc))
		assert.ErrorIs(t, err, ErrUnsupportedKind, doc)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantIs  error
		message string
	}{
		{
			name:    "unknown field",
			doc:     "kind: DependencyTree\napiVersion: depgraph.bayleafwalker.io/v1alpha1\nspec:\n  rooot: {}\n",
			message: "rooot",
		},
		{
			name:    "missing root version",
			doc:     "kind: DependencyTree\napiVersion: depgraph.bayleafwalker.io/v1alpha1\nspec:\n  root: {group: g, name: app}\n",
			message: "spec.root.version",
		},
		{
			name: "unknown scope",
			doc: `kind: DependencyTree
apiVersion: depgraph.bayleafwalker.io/v1alpha1
spec:
  root: {group: g, name: app, version: "1"}
  dependencies:
    - {group: g, name: lib, version: "1", scope: import}
`,
			wantIs:  scope.ErrUnknownScope,
			message: "spec.dependencies[0].scope",
		},
		{
			name: "bad exclusion",
			doc: `kind: DependencyTree
apiVersion: depgraph.bayleafwalker.io/v1alpha1
spec:
  root: {group: g, name: app, version: "1"}
  dependencies:
    - {group: g, name: lib, version: "1", exclusions: ["nogroup"]}
`,
			wantIs:  artifact.ErrInvalidCoordinate,
			message: "spec.dependencies[0].exclusions",
		},
		{
			name: "edge to undeclared vertex",
			doc: `kind: DependencyGraph
apiVersion: depgraph.bayleafwalker.io/v1alpha1
spec:
  entry: g:app
  vertices: [{group: g, name: app, version: "1"}]
  edges: [{source: "g:app", target: "g:ghost", version: "1", hop: 1}]
`,
			wantIs:  graph.ErrUnknownEdgeEndpoint,
			message: "spec.edges[0]",
		},
		{
			name: "unknown entry",
			doc: `kind: DependencyGraph
apiVersion: depgraph.bayleafwalker.io/v1alpha1
spec:
  entry: g:ghost
  vertices: [{group: g, name: app, version: "1"}]
`,
			wantIs:  graph.ErrUnknownVertex,
			message: "spec.entry",
		},
		{
			name: "duplicate vertex",
			doc: `kind: DependencyGraph
apiVersion: depgraph.bayleafwalker.io/v1alpha1
spec:
  entry: g:app
  vertices: [{group: g, name: app, version: "1"}, {group: g, name: app, version: "2"}]
`,
			wantIs:  graph.ErrDuplicateVertex,
			message: "spec.vertices[1]",
		},
		{
			name: "zero hop",
			doc: `kind: DependencyGraph
apiVersion: depgraph.bayleafwalker.io/v1alpha1
spec:
  entry: g:app
  vertices: [{group: g, name: app, version: "1"}, {group: g, name: lib, version: "1"}]
  edges: [{source: "g:app", target: "g:lib", version: "1"}]
`,
			message: "hop",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDecode_ReportsEveryProblem(t *testing.T) {
	doc := `kind: DependencyTree
apiVersion: depgraph.bayleafwalker.io/v1alpha1
spec:
  root: {group: g, name: app, version: "1"}
  dependencies:
    - {group: g, name: a, version: "1", scope: import}
    - {group: g, name: b, version: "1", scope: bogus}
`
	_, err := Decode([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spec.dependencies[0].scope")
	assert.Contains(t, err.Error(), "spec.dependencies[1].scope")
}

func TestRead(t *testing.T) {
	g, err := Read(strings.NewReader("apiVersion: depgraph.bayleafwalker.io/v1alpha1\nkind: DependencyTree\nspec:\n  root: {group: g, name: app, version: \"1\"}\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, g.VertexCount())
	assert.False(t, g.HasEdges())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}
