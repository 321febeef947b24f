package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bayleafwalker/depgraph/internal/classpath"
	"github.com/bayleafwalker/depgraph/internal/descriptor"
	"github.com/bayleafwalker/depgraph/internal/diagnostics"
	"github.com/bayleafwalker/depgraph/internal/resolver"
	"github.com/bayleafwalker/depgraph/internal/scope"
)

type explainOptions struct {
	*rootOptions
	scope string
}

// Explanation is the json and yaml form of the explain command.
type Explanation struct {
	Scope     scope.Scope         `json:"scope"`
	Classpath classpath.Classpath `json:"classpath"`
	Report    diagnostics.Report  `json:"report"`
}

func newExplainCommand(root *rootOptions) *cobra.Command {
	o := &explainOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:     "explain",
		Short:   "Show the resolved graph and why each version won",
		Example: `  depgraph explain -f deps.yaml --scope test`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&o.scope, "scope", "s", defaultScope(), "scope to resolve; defaults to $"+ScopeEnv)
	return cmd
}

func (o *explainOptions) run(cmd *cobra.Command) error {
	if err := o.validate(); err != nil {
		return err
	}
	requested, err := scope.Parse(o.scope)
	if err != nil {
		return err
	}
	if err := scope.Validate(requested); err != nil {
		return err
	}

	data, err := readInput(cmd, o.File)
	if err != nil {
		return err
	}
	raw, err := descriptor.Read(bytes.NewReader(data))
	if err != nil {
		return err
	}
	rec, reg, err := newRecorder()
	if err != nil {
		return err
	}

	collector := diagnostics.NewCollector()
	p := classpath.Pipeline{
		Resolver: rec.Instrument(resolver.NewDefault(
			resolver.WithListener(collector),
			resolver.WithListener(rec.Listener(requested)),
		)),
		Options: []classpath.Option{classpath.IncludeEntry()},
	}
	res, err := p.Run(cmd.Context(), raw, requested)
	if err != nil {
		return err
	}
	rec.ObserveClasspath(requested, len(res.Classpath))
	if err := writeMetrics(cmd, o.rootOptions, reg); err != nil {
		return err
	}

	exp := Explanation{Scope: requested, Classpath: res.Classpath, Report: collector.Report(requested)}
	if o.Output != OutputText {
		return encode(cmd.OutOrStdout(), o.Output, exp)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "== resolved graph (%s)\n%s\n", requested, res.Graph)
	fmt.Fprintf(w, "== classpath\n")
	if len(res.Classpath) > 0 {
		fmt.Fprintf(w, "%s\n", res.Classpath)
	}
	fmt.Fprintf(w, "\n== conflicts\n")
	return exp.Report.WriteText(w)
}
