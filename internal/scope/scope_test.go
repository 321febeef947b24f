package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]Scope{
		"":          Unspecified,
		"build":     Build,
		"compile":   Build,
		" Compile ": Build,
		"run":       Run,
		"runtime":   Run,
		"provided":  Provided,
		"system":    System,
		"TEST":      Test,
	}
	for raw, want := range tests {
		got, err := Parse(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := Parse("import")
	assert.ErrorIs(t, err, ErrUnknownScope)
	_, err = Parse("entry")
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func TestParseList(t *testing.T) {
	got, err := ParseList("test, compile,build,runtime")
	require.NoError(t, err)
	assert.Equal(t, []Scope{Test, Build, Run}, got)

	_, err = ParseList(" , ")
	assert.ErrorIs(t, err, ErrUnknownScope)

	_, err = ParseList("build,bogus")
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func TestValidate(t *testing.T) {
	for _, s := range All {
		assert.NoError(t, Validate(s))
	}
	assert.ErrorIs(t, Validate(Unspecified), ErrUnknownScope)
	assert.ErrorIs(t, Validate(Entry), ErrUnknownScope)
	assert.EqualError(t, Validate(Scope("import")), `unknown scope "import"`)
}

func TestRankIsTotalOverEnumeration(t *testing.T) {
	for i := 1; i < len(All); i++ {
		assert.Less(t, All[i-1].Rank(), All[i].Rank())
	}
	assert.Equal(t, -1, Entry.Rank())
}
