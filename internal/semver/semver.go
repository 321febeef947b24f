// Package semver compares requested versions for diagnostics. Mediation never
// consults it: distance and declaration order decide winners.
package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3. Two and one
// component versions ("1.2", "3") and qualifiers ("1.0-SNAPSHOT") are
// accepted.
type Version struct {
	v *mm.Version
}

func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// CompareRaw parses and compares two version strings. ok is false when
// either side does not parse; the result is then meaningless.
func CompareRaw(a, b string) (cmp int, ok bool) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, false
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, false
	}
	return Compare(va, vb), true
}

// Newest returns the highest parseable version in candidates.
//
// If multiple versions are equal, the first encountered wins. Unparseable
// candidates are skipped.
func Newest(candidates []string) (string, bool) {
	var best Version
	found := false
	for _, raw := range candidates {
		v, err := ParseVersion(raw)
		if err != nil {
			continue
		}
		if !found || Compare(v, best) > 0 {
			best = v
			found = true
		}
	}
	return best.String(), found
}
