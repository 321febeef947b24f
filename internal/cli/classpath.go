package cli

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bayleafwalker/depgraph/internal/classpath"
	"github.com/bayleafwalker/depgraph/internal/descriptor"
	"github.com/bayleafwalker/depgraph/internal/metrics"
	"github.com/bayleafwalker/depgraph/internal/resolver"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

type classpathOptions struct {
	*rootOptions
	scopes       string
	includeEntry bool
}

// ScopeClasspath is the classpath built for one requested scope.
type ScopeClasspath struct {
	Scope     scope.Scope         `json:"scope"`
	Classpath classpath.Classpath `json:"classpath"`
}

func newClasspathCommand(root *rootOptions) *cobra.Command {
	o := &classpathOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "classpath",
		Short: "Print the classpath for one or more scopes",
		Example: `  depgraph classpath -f deps.yaml --scope build
  depgraph classpath -f deps.yaml --scope build,run,test --include-entry -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&o.scopes, "scope", "s", defaultScope(), "comma separated scopes to resolve (build, run, test, provided, system); defaults to $"+ScopeEnv)
	cmd.Flags().BoolVar(&o.includeEntry, "include-entry", false, "list the entry module ahead of its dependencies")
	return cmd
}

func (o *classpathOptions) run(cmd *cobra.Command) error {
	if err := o.validate(); err != nil {
		return err
	}
	scopes, err := scope.ParseList(o.scopes)
	if err != nil {
		return err
	}
	data, err := readInput(cmd, o.File)
	if err != nil {
		return err
	}
	rec, reg, err := newRecorder()
	if err != nil {
		return err
	}

	var opts []classpath.Option
	if o.includeEntry {
		opts = append(opts, classpath.IncludeEntry())
	}
	results, err := resolveScopes(cmd.Context(), data, scopes, rec, opts)
	if err != nil {
		return err
	}

	if err := writeMetrics(cmd, o.rootOptions, reg); err != nil {
		return err
	}
	return printClasspaths(cmd.OutOrStdout(), o.Output, results)
}

// resolveScopes resolves every scope concurrently. Each scope decodes its
// own graph from data, since graphs are not shared between resolutions.
func resolveScopes(ctx context.Context, data []byte, scopes []scope.Scope, rec *metrics.Recorder, opts []classpath.Option) ([]ScopeClasspath, error) {
	results := make([]ScopeClasspath, len(scopes))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range scopes {
		i, s := i, s
		g.Go(func() error {
			raw, err := descriptor.Decode(data)
			if err != nil {
				return err
			}
			p := classpath.Pipeline{
				Resolver: rec.Instrument(resolver.NewDefault(resolver.WithListener(rec.Listener(s)))),
				Options:  opts,
			}
			logger := logr.FromContextOrDiscard(gctx).WithValues("requested", string(s))
			res, err := p.Run(logr.NewContext(gctx, logger), raw, s)
			if err != nil {
				return err
			}
			rec.ObserveClasspath(s, len(res.Classpath))
			results[i] = ScopeClasspath{Scope: s, Classpath: res.Classpath}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("classpath: %w", err)
	}
	return results, nil
}
