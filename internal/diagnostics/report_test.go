package diagnostics

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/graph/graphtest"
	"github.com/bayleafwalker/depgraph/internal/resolver"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

func collect(t *testing.T, raw *graph.Graph, s scope.Scope) Report {
	t.Helper()
	c := NewCollector()
	_, err := resolver.NewDefault(resolver.WithListener(c)).Resolve(context.Background(), raw, s)
	require.NoError(t, err)
	return c.Report(s)
}

func TestReport_ReferenceRun(t *testing.T) {
	rep := collect(t, graphtest.Reference(), scope.Run)
	require.Len(t, rep.Conflicts, 3)

	v2 := rep.Conflicts[0]
	assert.Equal(t, "v2", v2.Target.Name)
	require.NotNil(t, v2.Selected)
	assert.Equal(t, "1.2", v2.Selected.Version)
	require.Len(t, v2.Candidates, 1)
	assert.Equal(t, "omitted-for-later", v2.Candidates[0].Outcome)
	assert.False(t, v2.Downgrade)

	v3 := rep.Conflicts[1]
	assert.Equal(t, "v3", v3.Target.Name)
	assert.Equal(t, "1.1", v3.Selected.Version)
	assert.Equal(t, "omitted-for-nearer", v3.Candidates[0].Outcome)
	assert.True(t, v3.Downgrade, "nearer 1.1 beat 1.2")
	assert.Equal(t, "1.2", v3.Newest)

	v4 := rep.Conflicts[2]
	assert.Equal(t, "v3", v4.Source.Name)
	assert.Equal(t, "1.1", v4.Selected.Version)
	assert.Equal(t, scope.Run, v4.Selected.Effective)
	assert.Equal(t, "scope-filtered", v4.Candidates[0].Outcome)
	assert.False(t, v4.Downgrade, "filtered candidates do not count as downgrades")
}

func TestReport_SkipsUncontestedPairs(t *testing.T) {
	raw := graphtest.New("app").
		Edge("app", "a", "1.0", scope.Build, 1).
		Edge("a", "b", "1.0", scope.Build, 2).
		Graph()
	rep := collect(t, raw, scope.Build)
	assert.Empty(t, rep.Conflicts)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	assert.Equal(t, "no conflicts for scope build\n", buf.String())
}

func TestReport_AllCandidatesFiltered(t *testing.T) {
	raw := graphtest.New("app").
		Edge("app", "junit", "4.13", scope.Test, 1).
		Exclude("app", "web", "1.0", 1, "org.example:log").
		Edge("web", "log", "2.0", scope.Build, 2).
		Graph()
	rep := collect(t, raw, scope.Build)
	require.Len(t, rep.Conflicts, 2)

	assert.Equal(t, "junit", rep.Conflicts[0].Target.Name)
	assert.Nil(t, rep.Conflicts[0].Selected)
	assert.Equal(t, "scope-filtered", rep.Conflicts[0].Candidates[0].Outcome)

	assert.Equal(t, "log", rep.Conflicts[1].Target.Name)
	assert.Equal(t, "excluded", rep.Conflicts[1].Candidates[0].Outcome)
}

func TestReport_UnparseableVersionsNeverDowngrade(t *testing.T) {
	raw := graphtest.New("app").
		Edge("app", "lib", "RELEASE", scope.Build, 3).
		Edge("app", "lib", "1.0", scope.Build, 1).
		Graph()
	rep := collect(t, raw, scope.Build)
	require.Len(t, rep.Conflicts, 1)
	assert.False(t, rep.Conflicts[0].Downgrade)
	assert.Equal(t, "1.0", rep.Conflicts[0].Newest)
}

func TestReport_WriteText(t *testing.T) {
	rep := collect(t, graphtest.Reference(), scope.Build)
	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, "org.example:v1 -> org.example:v3\n")
	assert.Contains(t, out, "  selected  1.1 [declared=build effective=build hop=2 seq=1]  (newer 1.2 requested elsewhere)\n")
	assert.Contains(t, out, "  omitted   1.2 [declared=build effective=build hop=4 seq=2]\n")
	assert.Contains(t, out, "  filtered  1.2 [declared=test effective=test hop=2 seq=2]\n")
}

func TestReport_JSON(t *testing.T) {
	rep := collect(t, graphtest.Reference(), scope.Test)
	data, err := json.Marshal(rep)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "test", decoded["requested"])
	conflicts, ok := decoded["conflicts"].([]any)
	require.True(t, ok)
	assert.Len(t, conflicts, 3)
}
