package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/search/internal/format"
	"github.com/pdrpinto/search/internal/logging"
	"github.com/pdrpinto/search/internal/metrics"
	"github.com/pdrpinto/search/internal/runner"
	"github.com/pdrpinto/search/internal/tracing"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	logLevel    string
	logFormat   string
	tableFormat string
	dumpMetrics bool
	parallelism int
	otlp        tracing.Config

	mode     format.Mode
	registry *prometheus.Registry
	traces   *tracing.Provider
	runner   *runner.Runner
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "search",
		Short: "Solve state-space search problems",
		Long: "search runs breadth-first, depth-first, iterative-deepening and A* search\n" +
			"over problems described in YAML: weighted directed graphs and N×N tile puzzles.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.traces.Shutdown(cmd.Context()); err != nil {
				return err
			}
			if !a.dumpMetrics {
				return nil
			}
			return metrics.WriteText(cmd.ErrOrStderr(), a.registry)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	f.StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")
	f.StringVar(&a.tableFormat, "format", "ascii", "Table format: ascii or markdown")
	f.BoolVar(&a.dumpMetrics, "metrics", false, "Print Prometheus metrics to stderr when done")
	f.IntVar(&a.parallelism, "parallel", 0, "Maximum concurrent strategies in compare (0 = all)")
	f.StringVar(&a.otlp.Endpoint, "otlp-endpoint", "", "OTLP collector address for search spans (default: no export)")
	f.StringVar(&a.otlp.Protocol, "otlp-protocol", "grpc", "OTLP protocol: grpc or http")
	f.BoolVar(&a.otlp.Insecure, "otlp-insecure", false, "Use a plaintext connection to the collector")

	root.AddCommand(newSolveCmd(a))
	root.AddCommand(newCompareCmd(a))
	root.AddCommand(newTraceCmd(a))
	root.AddCommand(newRandomCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	logging.Init(logging.ParseLevel(a.logLevel), a.logFormat, cmd.ErrOrStderr())

	mode, err := format.ParseMode(a.tableFormat)
	if err != nil {
		return err
	}
	a.mode = mode

	a.registry = prometheus.NewRegistry()
	collector, err := metrics.NewCollector(a.registry)
	if err != nil {
		return err
	}
	a.traces, err = tracing.NewProvider(cmd.Context(), a.otlp)
	if err != nil {
		return err
	}
	if a.traces.Exporting() {
		a.traces.SetGlobal()
	}
	a.runner = &runner.Runner{
		Parallelism: a.parallelism,
		Logger:      logging.New("runner"),
		Metrics:     collector,
		Tracer:      a.traces.Tracer("github.com/pdrpinto/search/cmd/search"),
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
