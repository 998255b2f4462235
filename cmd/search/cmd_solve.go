package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/internal/config"
	"github.com/pdrpinto/search/internal/runner"
	"github.com/pdrpinto/search/tilegame"
)

type solveFlags struct {
	strategy string
	timeout  time.Duration
	maxDepth int
}

func newSolveCmd(a *app) *cobra.Command {
	var flags solveFlags
	cmd := &cobra.Command{
		Use:   "solve <problem.yaml>",
		Short: "Solve a problem file with one strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.LoadFile(args[0])
			if err != nil {
				return err
			}
			strategy, err := pickStrategy(flags.strategy, file)
			if err != nil {
				return err
			}
			if err := a.applyTimeout(flags.timeout, file); err != nil {
				return err
			}
			extra := depthOption(cmd, flags.maxDepth)
			return withProblem(file, problemHandlers{
				graph: func(in instance[int]) error {
					return solve(cmd, a, in, strategy, extra)
				},
				tilegame: func(in instance[tilegame.Board]) error {
					return solve(cmd, a, in, strategy, extra)
				},
			})
		},
	}
	addSolveFlags(cmd, &flags)
	return cmd
}

func addSolveFlags(cmd *cobra.Command, flags *solveFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.strategy, "strategy", "s", "", "Strategy: bfs, dfs, ids, astar or dls (default from file, else astar)")
	f.DurationVar(&flags.timeout, "timeout", 0, "Give up after this long (default from file, else none)")
	f.IntVar(&flags.maxDepth, "max-depth", -1, "Depth bound for dls and cap for ids")
}

// applyTimeout sets the runner deadline from the flag, falling back to the file.
func (a *app) applyTimeout(flag time.Duration, file *config.ProblemFile) error {
	if flag > 0 {
		a.runner.Timeout = flag
		return nil
	}
	if file == nil {
		return nil
	}
	timeout, err := file.TimeoutDuration()
	if err != nil {
		return err
	}
	a.runner.Timeout = timeout
	return nil
}

func depthOption(cmd *cobra.Command, maxDepth int) []search.Option {
	if !cmd.Flags().Changed("max-depth") {
		return nil
	}
	return []search.Option{search.WithMaxDepth(maxDepth)}
}

func solve[S comparable](cmd *cobra.Command, a *app, in instance[S], strategy search.Strategy, extra []search.Option) error {
	options := append(append([]search.Option{}, in.options...), extra...)
	report := runner.Solve(cmd.Context(), a.runner, in.problem, strategy, in.heuristic, options...)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Problem:  %s\n", in.name)
	fmt.Fprintf(out, "Strategy: %s\n", strategy)
	fmt.Fprintf(out, "Outcome:  %s\n", report.Outcome())
	fmt.Fprintf(out, "Expanded: %d\n", report.Result.Expanded)
	fmt.Fprintf(out, "Elapsed:  %s\n", report.Elapsed.Round(time.Microsecond))
	if report.Err != nil {
		return fmt.Errorf("%s: %w", in.name, report.Err)
	}
	fmt.Fprintf(out, "Length:   %d\n", len(report.Result.Path))
	fmt.Fprintf(out, "Cost:     %g\n", report.Result.Cost)
	in.printPath(out, report.Result.Path)
	return nil
}
