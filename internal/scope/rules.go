package scope

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// none marks a combination that is discarded.
const none Scope = "-"

// combination[path][edge] is the effective scope at an edge's target.
var combination = map[Scope]map[Scope]Scope{
	Build: {
		Build:    Build,
		Run:      Run,
		Provided: Provided,
		Test:     Test,
		System:   System,
	},
	Run: {
		Build:    Run,
		Run:      Run,
		Provided: none,
		Test:     Test,
		System:   none,
	},
	Provided: {
		Build:    Provided,
		Run:      Provided,
		Provided: Provided,
		Test:     Test,
		System:   System,
	},
	System: {
		Build:    none,
		Run:      none,
		Provided: none,
		Test:     none,
		System:   none,
	},
	Test: {
		Build:    Test,
		Run:      Test,
		Provided: Test,
		Test:     Test,
		System:   Test,
	},
}

var visibility = map[Scope]sets.Set[Scope]{
	Build:    sets.New(Build, Provided, System),
	Run:      sets.New(Build, Run),
	Test:     sets.New(Build, Run, Provided, System, Test),
	Provided: sets.New(Build, Provided, System),
	System:   sets.New(System),
}

// Combine returns the effective scope at the target of an edge declaring
// edge, reached from a source whose effective scope is path. ok is false
// when the combination is discarded and the edge can never be visible.
//
// path may be Entry, in which case the declared edge scope is returned.
func Combine(path, edge Scope) (effective Scope, ok bool) {
	edge = Declared(edge)
	if !edge.IsValid() {
		return Unspecified, false
	}
	if path == Entry {
		return edge, true
	}
	row, found := combination[path]
	if !found {
		return Unspecified, false
	}
	effective = row[edge]
	if effective == none {
		return Unspecified, false
	}
	return effective, true
}

// VisibleSet returns the effective scopes visible when resolving for
// requested. The returned set is a copy and may be modified by the caller.
func VisibleSet(requested Scope) (sets.Set[Scope], error) {
	v, ok := visibility[requested]
	if !ok {
		return nil, &UnknownScopeError{Scope: requested}
	}
	return v.Clone(), nil
}

// Visible reports whether a dependency with the given effective scope
// belongs on the classpath for requested. Unknown requested scopes see
// nothing.
func Visible(requested, effective Scope) bool {
	v, ok := visibility[requested]
	if !ok {
		return false
	}
	return v.Has(effective)
}
