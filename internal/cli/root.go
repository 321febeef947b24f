// Package cli implements the depgraph command line.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/bayleafwalker/depgraph/internal/metrics"
)

// ScopeEnv supplies the default for --scope.
const ScopeEnv = "DEPGRAPH_SCOPE"

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

type rootOptions struct {
	File            string `validate:"required"`
	Output          string `validate:"oneof=text json yaml"`
	MetricsTextfile string

	zapOpts zap.Options
}

func (o *rootOptions) validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// NewRootCommand builds the depgraph command tree.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{
		zapOpts: zap.Options{Development: true, Level: zapcore.WarnLevel},
	}

	root := &cobra.Command{
		Use:           "depgraph",
		Short:         "Resolve dependency version conflicts and print classpaths",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger := zap.New(zap.UseFlagOptions(&o.zapOpts), zap.WriteTo(cmd.ErrOrStderr()))
			ctrllog.SetLogger(logger)
			cmd.SetContext(logr.NewContext(cmd.Context(), logger.WithName("depgraph")))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.File, "file", "f", "", "declaration document to read (YAML or JSON), or - for stdin")
	pf.StringVarP(&o.Output, "output", "o", OutputText, "output format: text, json or yaml")
	pf.StringVar(&o.MetricsTextfile, "metrics-textfile", "", "write resolution metrics in Prometheus text format to this path")

	zapFlags := flag.NewFlagSet("zap", flag.ContinueOnError)
	o.zapOpts.BindFlags(zapFlags)
	pf.AddGoFlagSet(zapFlags)

	root.AddCommand(newClasspathCommand(o), newExplainCommand(o))
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func defaultScope() string {
	if s := os.Getenv(ScopeEnv); s != "" {
		return s
	}
	return "build"
}

// readInput returns the raw document named by --file.
func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}

// newRecorder returns a metrics recorder on a private registry.
func newRecorder() (*metrics.Recorder, *prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.New(reg)
	if err != nil {
		return nil, nil, err
	}
	return rec, reg, nil
}

func writeMetrics(cmd *cobra.Command, o *rootOptions, reg prometheus.Gatherer) error {
	if o.MetricsTextfile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(reg, o.MetricsTextfile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	logr.FromContextOrDiscard(cmd.Context()).V(1).Info("wrote metrics", "path", o.MetricsTextfile)
	return nil
}
