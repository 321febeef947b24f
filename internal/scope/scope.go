// Package scope encodes which declared dependency scopes are visible to a
// requested consumption scope, and how scopes combine along multi-hop paths.
//
// The tables in this package are policy. They reproduce long-standing
// build-tool behavior and are written out explicitly rather than derived.
package scope

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Scope is the lifecycle stage during which a dependency is needed.
type Scope string

const (
	// Unspecified is the zero value for an edge that declares no scope.
	// It is treated as Build.
	Unspecified Scope = ""

	Build    Scope = "build"
	Run      Scope = "run"
	Provided Scope = "provided"
	System   Scope = "system"
	Test     Scope = "test"

	// Entry is the effective scope of the entry vertex: the identity element
	// of Combine. It is not a member of the enumeration and cannot be requested.
	Entry Scope = "entry"
)

var (
	// ErrUnknownScope is returned when a scope outside the closed enumeration
	// is requested or declared.
	ErrUnknownScope = errors.New("unknown scope")
)

// UnknownScopeError carries the rejected value.
type UnknownScopeError struct {
	Scope Scope
}

func (e *UnknownScopeError) Error() string {
	return fmt.Sprintf("unknown scope %q", string(e.Scope))
}

func (e *UnknownScopeError) Is(target error) bool {
	return target == ErrUnknownScope
}

// All lists the enumeration in rank order.
var All = []Scope{Build, Run, Provided, System, Test}

var aliases = map[string]Scope{
	"build":    Build,
	"compile":  Build,
	"run":      Run,
	"runtime":  Run,
	"provided": Provided,
	"system":   System,
	"test":     Test,
}

// Parse accepts the canonical names plus the "compile" and "runtime" aliases,
// case-insensitively. The empty string parses to Unspecified.
func Parse(raw string) (Scope, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return Unspecified, nil
	}
	s, ok := aliases[trimmed]
	if !ok {
		return Unspecified, &UnknownScopeError{Scope: Scope(raw)}
	}
	return s, nil
}

// ParseList parses a comma separated list, dropping duplicates and keeping
// first-seen order. An empty list is an error.
func ParseList(raw string) ([]Scope, error) {
	seen := sets.New[Scope]()
	out := make([]Scope, 0, len(All))
	for _, part := range strings.Split(raw, ",") {
		s, err := Parse(part)
		if err != nil {
			return nil, err
		}
		if s == Unspecified || seen.Has(s) {
			continue
		}
		seen.Insert(s)
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, &UnknownScopeError{Scope: Scope(raw)}
	}
	return out, nil
}

// IsValid reports whether s is a member of the closed enumeration.
func (s Scope) IsValid() bool {
	switch s {
	case Build, Run, Provided, System, Test:
		return true
	default:
		return false
	}
}

// Validate returns an *UnknownScopeError unless s is a member of the
// enumeration.
func Validate(s Scope) error {
	if !s.IsValid() {
		return &UnknownScopeError{Scope: s}
	}
	return nil
}

// Declared normalizes a scope declared on an edge: Unspecified becomes Build.
func Declared(s Scope) Scope {
	if s == Unspecified {
		return Build
	}
	return s
}

// Rank is the restrictiveness order used by Combine. Higher is more
// restrictive. Scopes outside the enumeration rank -1.
func (s Scope) Rank() int {
	switch s {
	case Build:
		return 0
	case Run:
		return 1
	case Provided:
		return 2
	case System:
		return 3
	case Test:
		return 4
	default:
		return -1
	}
}

func (s Scope) String() string {
	if s == Unspecified {
		return "unspecified"
	}
	return string(s)
}
