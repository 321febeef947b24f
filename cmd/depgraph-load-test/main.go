package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bayleafwalker/depgraph/internal/artifact"
	"github.com/bayleafwalker/depgraph/internal/classpath"
	"github.com/bayleafwalker/depgraph/internal/graph"
	"github.com/bayleafwalker/depgraph/internal/metrics"
	"github.com/bayleafwalker/depgraph/internal/resolver"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

// shape controls the synthetic graphs.
type shape struct {
	artifacts int
	fanout    int
	versions  int
}

var declaredScopes = []scope.Scope{scope.Unspecified, scope.Build, scope.Run, scope.Provided, scope.Test}

// generate builds a layered graph where each artifact requests fanout random
// later artifacts, so the graph is acyclic but heavily shared.
func generate(rng *rand.Rand, s shape) (*graph.Graph, error) {
	g := graph.New()
	ids := make([]artifact.Identity, s.artifacts)
	for i := range ids {
		md := artifact.New("org.synthetic", fmt.Sprintf("lib%04d", i), "1.0.0")
		if _, err := g.AddVertex(md); err != nil {
			return nil, err
		}
		ids[i] = md.Identity
	}
	if err := g.SetEntry(ids[0]); err != nil {
		return nil, err
	}

	seq := 0
	for i := 0; i < s.artifacts-1; i++ {
		for f := 0; f < s.fanout; f++ {
			target := i + 1 + rng.Intn(s.artifacts-i-1)
			seq++
			if _, err := g.AddEdge(ids[i], ids[target], graph.EdgeData{
				Version:  fmt.Sprintf("1.%d.0", rng.Intn(s.versions)),
				Scope:    declaredScopes[rng.Intn(len(declaredScopes))],
				Hop:      1 + rng.Intn(4),
				Sequence: seq,
			}); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func main() {
	var (
		numGraphs int
		seed      int64
		requested string
		s         shape
	)
	flag.IntVar(&numGraphs, "graphs", 10, "Number of graphs to resolve concurrently")
	flag.Int64Var(&seed, "seed", 1, "Random seed")
	flag.StringVar(&requested, "scope", "test", "Scope to resolve")
	flag.IntVar(&s.artifacts, "artifacts", 500, "Artifacts per graph")
	flag.IntVar(&s.fanout, "fanout", 4, "Dependencies declared per artifact")
	flag.IntVar(&s.versions, "versions", 5, "Distinct versions requested per artifact")
	flag.Parse()

	target, err := scope.Parse(requested)
	if err != nil {
		log.Fatalf("Invalid scope: %v", err)
	}
	if err := scope.Validate(target); err != nil {
		log.Fatalf("Invalid scope: %v", err)
	}
	if s.artifacts < 2 || s.fanout < 1 || s.versions < 1 {
		log.Fatalf("Invalid shape: artifacts>=2, fanout>=1 and versions>=1 are required")
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.New(reg)
	if err != nil {
		log.Fatalf("Error creating metrics: %v", err)
	}

	fmt.Printf("Starting load test: %d graphs of %d artifacts, scope %s\n", numGraphs, s.artifacts, target)

	var wg sync.WaitGroup
	start := time.Now()
	latencies := make(chan time.Duration, numGraphs)

	for i := 0; i < numGraphs; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			raw, err := generate(rand.New(rand.NewSource(seed+int64(id))), s)
			if err != nil {
				fmt.Printf("Error generating graph %d: %v\n", id, err)
				return
			}

			p := classpath.Pipeline{
				Resolver: rec.Instrument(resolver.NewDefault(resolver.WithListener(rec.Listener(target)))),
			}
			resolveStart := time.Now()
			res, err := p.Run(context.Background(), raw, target)
			if err != nil {
				fmt.Printf("Error resolving graph %d: %v\n", id, err)
				return
			}
			latency := time.Since(resolveStart)
			latencies <- latency
			fmt.Printf("Graph %d: %d edges -> %d kept, %d on classpath in %v\n",
				id, raw.EdgeCount(), res.Graph.EdgeCount(), len(res.Classpath), latency)
		}(i)
	}

	wg.Wait()
	close(latencies)
	totalDuration := time.Since(start)

	var totalLatency time.Duration
	count := 0
	for l := range latencies {
		totalLatency += l
		count++
	}

	if count > 0 {
		avgLatency := totalLatency / time.Duration(count)
		fmt.Printf("Load test completed in %v. Avg resolution latency: %v\n", totalDuration, avgLatency)
	} else {
		fmt.Printf("Load test completed in %v. No graphs resolved successfully.\n", totalDuration)
	}
}
