// Package diagnostics explains why a version was chosen. It listens to the
// resolver's decisions and groups them by (source, target) pair.
package diagnostics

import (
	"fmt"
	"io"
	"sort"

	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/resolver"
	"github.com/bayleafwalker/depgraph/internal/scope"
	"github.com/bayleafwalker/depgraph/internal/semver"
)

// Candidate is one declaration that competed for a pair.
type Candidate struct {
	EdgeID    graph.EdgeID `json:"edgeId"`
	Version   string       `json:"version"`
	Declared  scope.Scope  `json:"declaredScope,omitempty"`
	Effective scope.Scope  `json:"effectiveScope,omitempty"`
	Hop       int          `json:"hop"`
	Sequence  int          `json:"sequence"`
	Outcome   string       `json:"outcome"`
}

// Conflict summarizes the mediation of one (source, target) pair.
type Conflict struct {
	Source artifact.Identity `json:"source"`
	Target artifact.Identity `json:"target"`
	// Selected is nil when every candidate was filtered or excluded.
	Selected   *Candidate  `json:"selected,omitempty"`
	Candidates []Candidate `json:"candidates"`
	// Newest is the highest version requested by any visible candidate, when
	// versions parse.
	Newest string `json:"newest,omitempty"`
	// Downgrade is set when a visible losing candidate requested a newer
	// version than the one selected.
	Downgrade bool `json:"downgrade"`
}

// Report lists every pair that had more than one declaration or lost a
// declaration to scope filtering or exclusion.
type Report struct {
	Requested scope.Scope `json:"requested"`
	Conflicts []Conflict  `json:"conflicts"`
}

type pairKey struct {
	source artifact.Identity
	target artifact.Identity
}

// Collector is a resolver.Listener that accumulates events for one
// resolution. It must not be shared between concurrent resolutions.
type Collector struct {
	order  []pairKey
	events map[pairKey][]resolver.Event
}

var _ resolver.Listener = (*Collector)(nil)

func NewCollector() *Collector {
	return &Collector{events: make(map[pairKey][]resolver.Event)}
}

func (c *Collector) Observe(ev resolver.Event) {
	k := pairKey{source: ev.Edge.Source, target: ev.Edge.Target}
	if _, seen := c.events[k]; !seen {
		c.order = append(c.order, k)
	}
	c.events[k] = append(c.events[k], ev)
}

// Report builds the report for the events observed so far.
func (c *Collector) Report(requested scope.Scope) Report {
	rep := Report{Requested: requested, Conflicts: []Conflict{}}
	for _, k := range c.order {
		evs := c.events[k]
		if len(evs) == 1 && evs[0].Kind == resolver.EventSelected {
			continue
		}
		rep.Conflicts = append(rep.Conflicts, buildConflict(k, evs))
	}
	sort.SliceStable(rep.Conflicts, func(i, j int) bool {
		a, b := rep.Conflicts[i], rep.Conflicts[j]
		if cmp := artifact.Compare(a.Source, b.Source); cmp != 0 {
			return cmp < 0
		}
		return artifact.Compare(a.Target, b.Target) < 0
	})
	return rep
}

func buildConflict(k pairKey, evs []resolver.Event) Conflict {
	c := Conflict{Source: k.source, Target: k.target}
	var visible []string
	for _, ev := range evs {
		cand := Candidate{
			EdgeID:    ev.Edge.ID,
			Version:   ev.Edge.Version,
			Declared:  scope.Declared(ev.Edge.Scope),
			Effective: ev.Effective,
			Hop:       ev.Edge.Hop,
			Sequence:  ev.Edge.Sequence,
			Outcome:   ev.Kind.String(),
		}
		switch ev.Kind {
		case resolver.EventSelected:
			selected := cand
			c.Selected = &selected
			visible = append(visible, cand.Version)
		case resolver.EventOmittedForNearer, resolver.EventOmittedForLater:
			c.Candidates = append(c.Candidates, cand)
			visible = append(visible, cand.Version)
		default:
			c.Candidates = append(c.Candidates, cand)
		}
	}
	if newest, ok := semver.Newest(visible); ok {
		c.Newest = newest
	}
	if c.Selected != nil {
		for _, cand := range c.Candidates {
			if cand.Outcome != resolver.EventOmittedForNearer.String() && cand.Outcome != resolver.EventOmittedForLater.String() {
				continue
			}
			if cmp, ok := semver.CompareRaw(cand.Version, c.Selected.Version); ok && cmp > 0 {
				c.Downgrade = true
				break
			}
		}
	}
	return c
}

// WriteText renders the report for terminals.
func (r Report) WriteText(w io.Writer) error {
	if len(r.Conflicts) == 0 {
		_, err := fmt.Fprintf(w, "no conflicts for scope %s\n", r.Requested)
		return err
	}
	for _, c := range r.Conflicts {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", c.Source, c.Target); err != nil {
			return err
		}
		if c.Selected != nil {
			note := ""
			if c.Downgrade {
				note = fmt.Sprintf("  (newer %s requested elsewhere)", c.Newest)
			}
			if _, err := fmt.Fprintf(w, "  selected  %s%s\n", describe(*c.Selected), note); err != nil {
				return err
			}
		}
		for _, cand := range c.Candidates {
			if _, err := fmt.Fprintf(w, "  %-9s %s\n", short(cand.Outcome), describe(cand)); err != nil {
				return err
			}
		}
	}
	return nil
}

func describe(c Candidate) string {
	eff := "-"
	if c.Effective != scope.Unspecified {
		eff = string(c.Effective)
	}
	return fmt.Sprintf("%s [declared=%s effective=%s hop=%d seq=%d]", c.Version, c.Declared, eff, c.Hop, c.Sequence)
}

func short(outcome string) string {
	switch outcome {
	case resolver.EventOmittedForNearer.String(), resolver.EventOmittedForLater.String():
		return "omitted"
	case resolver.EventScopeFiltered.String():
		return "filtered"
	default:
		return outcome
	}
}
