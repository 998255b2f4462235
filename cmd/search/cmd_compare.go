package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/internal/config"
	"github.com/pdrpinto/search/internal/format"
	"github.com/pdrpinto/search/internal/runner"
	"github.com/pdrpinto/search/tilegame"
)

type compareFlags struct {
	strategies []string
	timeout    time.Duration
}

func newCompareCmd(a *app) *cobra.Command {
	var flags compareFlags
	cmd := &cobra.Command{
		Use:   "compare <problem.yaml>",
		Short: "Run several strategies on one problem and tabulate the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.LoadFile(args[0])
			if err != nil {
				return err
			}
			strategies, err := parseStrategies(flags.strategies)
			if err != nil {
				return err
			}
			if err := a.applyTimeout(flags.timeout, file); err != nil {
				return err
			}
			return withProblem(file, problemHandlers{
				graph: func(in instance[int]) error {
					return compare(cmd, a, in, strategies)
				},
				tilegame: func(in instance[tilegame.Board]) error {
					return compare(cmd, a, in, strategies)
				},
			})
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&flags.strategies, "strategies", nil, "Strategies to compare (default bfs,dfs,ids,astar)")
	f.DurationVar(&flags.timeout, "timeout", 0, "Per-strategy time limit (default from file, else none)")
	return cmd
}

func parseStrategies(names []string) ([]search.Strategy, error) {
	if len(names) == 0 {
		return search.Strategies(), nil
	}
	strategies := make([]search.Strategy, 0, len(names))
	for _, name := range names {
		strategy, err := search.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
	}
	return strategies, nil
}

func compare[S comparable](cmd *cobra.Command, a *app, in instance[S], strategies []search.Strategy) error {
	reports, err := runner.Compare(cmd.Context(), a.runner, in.problem, strategies, in.heuristic, in.options...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Problem: %s\n", in.name)
	fmt.Fprintln(out, format.Reports(a.mode, reports))
	return nil
}
