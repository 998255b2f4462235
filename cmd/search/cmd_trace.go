package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/internal/config"
	"github.com/pdrpinto/search/internal/format"
	"github.com/pdrpinto/search/tilegame"
)

type traceFlags struct {
	strategy    string
	maxDepth    int
	maxSteps    int
	maxFrontier int
}

func newTraceCmd(a *app) *cobra.Command {
	var flags traceFlags
	cmd := &cobra.Command{
		Use:   "trace <problem.yaml>",
		Short: "Step through a search and print the frontier after every removal",
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
			extra := depthOption(cmd, flags.maxDepth)
			return withProblem(file, problemHandlers{
				graph: func(in instance[int]) error {
					return trace(cmd, a, in, strategy, extra, flags)
				},
				tilegame: func(in instance[tilegame.Board]) error {
					return trace(cmd, a, in, strategy, extra, flags)
				},
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.strategy, "strategy", "s", "", "Strategy: bfs, dfs, astar or dls (default from file, else astar)")
	f.IntVar(&flags.maxDepth, "max-depth", -1, "Depth bound for dls")
	f.IntVar(&flags.maxSteps, "max-steps", 50, "Stop tracing after this many removals (0 = no limit)")
	f.IntVar(&flags.maxFrontier, "max-frontier", 8, "Frontier states shown per step (0 = all)")
	return cmd
}

func trace[S comparable](cmd *cobra.Command, a *app, in instance[S], strategy search.Strategy, extra []search.Option, flags traceFlags) error {
	options := append(append([]search.Option{}, in.options...), extra...)
	stepper, err := search.NewStepper(in.problem, strategy, in.heuristic, options...)
	if err != nil {
		return err
	}

	var snapshots []search.StepSnapshot[S]
	for !stepper.Done() && (flags.maxSteps <= 0 || len(snapshots) < flags.maxSteps) {
		snap, err := stepper.Step()
		if err != nil {
			return err
		}
		snapshots = append(snapshots, snap)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Problem:  %s\n", in.name)
	fmt.Fprintf(out, "Strategy: %s\n", strategy)
	fmt.Fprintln(out, format.Trace(a.mode, snapshots, in.label, flags.maxFrontier))

	if !stepper.Done() {
		fmt.Fprintf(out, "Stopped after %d steps; search not finished.\n", len(snapshots))
		return nil
	}
	result, err := stepper.Result()
	if errors.Is(err, search.ErrNoPath) {
		fmt.Fprintln(out, "No path: frontier exhausted.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Cost:     %g\n", result.Cost)
	in.printPath(out, result.Path)
	return nil
}
