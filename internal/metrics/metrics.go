// Package metrics exposes resolution counters and timings as Prometheus
// collectors.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/resolver"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// Recorder owns the depgraph collectors. It is safe for concurrent use.
type Recorder struct {
	resolutions      *prometheus.CounterVec
	decisions        *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	classpathEntries *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg. Collectors already
// registered by an earlier Recorder are reused.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depgraph_resolutions_total",
				Help: "Number of resolutions by requested scope and result.",
			},
			[]string{"scope", "result"},
		),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depgraph_resolution_decisions_total",
				Help: "Number of edge decisions taken during resolution, by requested scope and outcome.",
			},
			[]string{"scope", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "depgraph_resolution_duration_seconds",
				Help:    "Time taken to resolve a dependency graph.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"scope"},
		),
		classpathEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "depgraph_classpath_entries",
				Help: "Number of entries on the last classpath built for a scope.",
			},
			[]string{"scope"},
		),
	}

	var err error
	if r.resolutions, err = register(reg, r.resolutions); err != nil {
		return nil, err
	}
	if r.decisions, err = register(reg, r.decisions); err != nil {
		return nil, err
	}
	if r.duration, err = register(reg, r.duration); err != nil {
		return nil, err
	}
	if r.classpathEntries, err = register(reg, r.classpathEntries); err != nil {
		return nil, err
	}
	return r, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Listener counts the decisions of one resolution for requested.
func (r *Recorder) Listener(requested scope.Scope) resolver.Listener {
	return resolver.ListenerFunc(func(ev resolver.Event) {
		r.decisions.WithLabelValues(string(requested), ev.Kind.String()).Inc()
	})
}

// ObserveClasspath records the size of a classpath built for requested.
func (r *Recorder) ObserveClasspath(requested scope.Scope, entries int) {
	r.classpathEntries.WithLabelValues(string(requested)).Set(float64(entries))
}

// Instrument wraps next so every Resolve call is counted and timed.
func (r *Recorder) Instrument(next resolver.Resolver) resolver.Resolver {
	return &instrumented{next: next, rec: r}
}

type instrumented struct {
	next resolver.Resolver
	rec  *Recorder
}

func (i *instrumented) Resolve(ctx context.Context, raw *graph.Graph, requested scope.Scope) (*graph.Graph, error) {
	start := time.Now()
	g, err := i.next.Resolve(ctx, raw, requested)
	i.rec.duration.WithLabelValues(string(requested)).Observe(time.Since(start).Seconds())

	result := "success"
	if err != nil {
		result = "error"
	}
	i.rec.resolutions.WithLabelValues(string(requested), result).Inc()
	return g, err
}

// WriteTextfile writes everything g gathers to path in the Prometheus text
// format, for node_exporter's textfile collector.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, g)
}
