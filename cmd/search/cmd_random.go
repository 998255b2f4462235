package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/tilegame"
)

type randomFlags struct {
	size    int
	seed    uint64
	compare bool
	solveFlags
}

func newRandomCmd(a *app) *cobra.Command {
	var flags randomFlags
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Solve a randomly shuffled tile puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed := flags.seed
			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64()
			}
			game, err := tilegame.Random(flags.size, rand.New(rand.NewPCG(seed, seed)))
			if err != nil {
				return err
			}
			if err := a.applyTimeout(flags.timeout, nil); err != nil {
				return err
			}
			in := tileInstance(fmt.Sprintf("random %dx%d (seed %d)", flags.size, flags.size, seed), game, nil)
			fmt.Fprintf(cmd.OutOrStdout(), "Start:\n%s", game.Start())

			if flags.compare {
				return compare(cmd, a, in, search.Strategies())
			}
			strategy, err := pickStrategy(flags.strategy, nil)
			if err != nil {
				return err
			}
			return solve(cmd, a, in, strategy, depthOption(cmd, flags.maxDepth))
		},
	}
	f := cmd.Flags()
	f.IntVarP(&flags.size, "size", "n", 3, "Board size N")
	f.Uint64Var(&flags.seed, "seed", 0, "Random seed (default random)")
	f.BoolVar(&flags.compare, "compare", false, "Compare bfs, dfs, ids and astar instead of solving once")
	addSolveFlags(cmd, &flags.solveFlags)
	return cmd
}
