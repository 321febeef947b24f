package artifact

import (
	"fmt"
	"strings"
)

// Wildcard matches any group or name in an Exclusion.
const Wildcard = "*"

// Exclusion removes matching artifacts from the subtree below the edge that
// declares it.
type Exclusion struct {
	Group string `json:"group"`
	Name  string `json:"name"`
}

func (e Exclusion) Matches(id Identity) bool {
	return (e.Group == Wildcard || e.Group == id.Group) &&
		(e.Name == Wildcard || e.Name == id.Name)
}

func (e Exclusion) String() string {
	return e.Group + ":" + e.Name
}

// ParseExclusion parses "group:name"; either side may be "*".
func ParseExclusion(raw string) (Exclusion, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Exclusion{}, fmt.Errorf("artifact: parse exclusion %q: %w", raw, ErrInvalidCoordinate)
	}
	return Exclusion{Group: parts[0], Name: parts[1]}, nil
}

// ExclusionSet is an immutable list of exclusions. The nil set excludes nothing.
type ExclusionSet []Exclusion

func (s ExclusionSet) Matches(id Identity) bool {
	for _, e := range s {
		if e.Matches(id) {
			return true
		}
	}
	return false
}

// Union returns a new set holding the exclusions of s followed by those of
// other that are not already present. Neither input is modified.
func (s ExclusionSet) Union(other ExclusionSet) ExclusionSet {
	if len(other) == 0 {
		return s
	}
	if len(s) == 0 {
		return other
	}
	out := make(ExclusionSet, 0, len(s)+len(other))
	out = append(out, s...)
	for _, e := range other {
		dup := false
		for _, have := range s {
			if have == e {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return out
}
