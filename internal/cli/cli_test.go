package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reference = filepath.Join("testdata", "reference.yaml")

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestClasspath_SingleScope(t *testing.T) {
	out, stderr, code := execute(t, "", "classpath", "-f", reference, "--scope", "build")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "org.example:v2:1.2\norg.example:v3:1.1\n", out)
}

func TestClasspath_SeveralScopesWithEntry(t *testing.T) {
	out, stderr, code := execute(t, "", "classpath", "-f", reference, "--scope", "build,runtime,test", "--include-entry")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `# build
org.example:v1:1.0
org.example:v2:1.2
org.example:v3:1.1

# run
org.example:v1:1.0
org.example:v2:1.2
org.example:v3:1.1
org.example:v4:1.1

# test
org.example:v1:1.0
org.example:v2:1.2
org.example:v3:1.1
org.example:v4:1.2
`, out)
}

func TestClasspath_JSON(t *testing.T) {
	out, stderr, code := execute(t, "", "classpath", "-f", reference, "--scope", "run", "-o", "json")
	require.Equal(t, 0, code, stderr)

	var got []ScopeClasspath
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "run", string(got[0].Scope))
	require.Len(t, got[0].Classpath, 3)
	assert.Equal(t, "v4", got[0].Classpath[2].Identity.Name)
	assert.Equal(t, "1.1", got[0].Classpath[2].Version)
}

func TestClasspath_YAML(t *testing.T) {
	out, stderr, code := execute(t, "", "classpath", "-f", reference, "--scope", "build", "-o", "yaml")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "scope: build")
	assert.Contains(t, out, "version: \"1.2\"")
}

func TestClasspath_Stdin(t *testing.T) {
	data, err := os.ReadFile(reference)
	require.NoError(t, err)
	out, stderr, code := execute(t, string(data), "classpath", "-f", "-", "--scope", "test")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "org.example:v2:1.2\norg.example:v3:1.1\norg.example:v4:1.2\n", out)
}

func TestClasspath_ScopeFromEnvironment(t *testing.T) {
	t.Setenv(ScopeEnv, "test")
	out, stderr, code := execute(t, "", "classpath", "-f", reference)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "org.example:v4:1.2")
}

func TestClasspath_MetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depgraph.prom")
	_, stderr, code := execute(t, "", "classpath", "-f", reference, "--scope", "build,test", "--metrics-textfile", path)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `depgraph_resolutions_total{result="success",scope="build"} 1`)
	assert.Contains(t, string(data), `depgraph_classpath_entries{scope="test"} 3`)
}

func TestClasspath_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown scope", []string{"classpath", "-f", reference, "--scope", "import"}, `unknown scope "import"`},
		{"missing file flag", []string{"classpath", "--scope", "build"}, "invalid flags"},
		{"bad output", []string{"classpath", "-f", reference, "-o", "xml"}, "invalid flags"},
		{"missing file", []string{"classpath", "-f", filepath.Join("testdata", "absent.yaml")}, "absent.yaml"},
		{"positional args", []string{"classpath", "-f", reference, "extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := execute(t, "", tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestClasspath_InvalidDocument(t *testing.T) {
	doc := "apiVersion: depgraph.bayleafwalker.io/v1alpha1\nkind: DependencyGraph\nspec:\n  entry: g:app\n  vertices: []\n"
	_, stderr, code := execute(t, doc, "classpath", "-f", "-", "--scope", "build,test")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid document")
}

func TestExplain_Text(t *testing.T) {
	out, stderr, code := execute(t, "", "explain", "-f", reference, "--scope", "build")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "== resolved graph (build)")
	assert.Contains(t, out, "== classpath\norg.example:v1:1.0\norg.example:v2:1.2\norg.example:v3:1.1\n")
	assert.Contains(t, out, "org.example:v1 -> org.example:v3\n  selected  1.1")
	assert.Contains(t, out, "(newer 1.2 requested elsewhere)")
}

func TestExplain_JSON(t *testing.T) {
	out, stderr, code := execute(t, "", "explain", "-f", reference, "--scope", "test", "-o", "json")
	require.Equal(t, 0, code, stderr)

	var got Explanation
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "test", string(got.Scope))
	assert.Len(t, got.Classpath, 4)
	assert.Len(t, got.Report.Conflicts, 3)
}

func TestExplain_RejectsScopeList(t *testing.T) {
	_, stderr, code := execute(t, "", "explain", "-f", reference, "--scope", "build,test")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown scope")
}
