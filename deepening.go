package search

import (
	"context"
	"errors"
	"fmt"
)

// DepthBounded is DepthFirst restricted to paths of at most maxDepth edges.
// A state is expanded again when it is reached at a strictly smaller depth
// than before, so every state within the bound is eventually seen at its
// minimum depth.
func DepthBounded[S comparable](ctx context.Context, problem Problem[S], maxDepth int, options ...Option) (Result[S], error) {
	if problem == nil {
		return Result[S]{}, NewConfigError("dls: problem is nil", nil)
	}
	if maxDepth < 0 {
		return Result[S]{}, NewConfigError(fmt.Sprintf("dls: depth bound %d is negative", maxDepth), nil)
	}
	searchOptions := applyOptions(options)
	return observe(ctx, DepthBoundedStrategy, searchOptions, func() (Result[S], Stats, error) {
		result, stats, _, err := boundedRound(ctx, problem, maxDepth)
		return result, stats, err
	})
}

// IterativeDeepening runs DepthBounded with bounds 0, 1, 2, ... and returns the
// first path found, which has the fewest edges possible.
//
// The rounds stop early with ErrNoPath once a round explores the whole
// reachable space without hitting its bound. On infinite state spaces without
// a reachable goal the caller must bound the search with WithMaxDepth or a
// context deadline; the context is checked between and during rounds.
func IterativeDeepening[S comparable](ctx context.Context, problem Problem[S], options ...Option) (Result[S], error) {
	if problem == nil {
		return Result[S]{}, NewConfigError("ids: problem is nil", nil)
	}
	searchOptions := applyOptions(options)
	logger := searchOptions.Logger.With("strategy", IterativeDeepeningStrategy.String())
	return observe(ctx, IterativeDeepeningStrategy, searchOptions, func() (Result[S], Stats, error) {
		var total Stats
		for depth := 0; searchOptions.MaxDepth < 0 || depth <= searchOptions.MaxDepth; depth++ {
			if err := ctx.Err(); err != nil {
				return Result[S]{Expanded: total.Expanded}, total, err
			}
			result, stats, cutoff, err := boundedRound(ctx, problem, depth)
			total.Rounds++
			total.Expanded += stats.Expanded
			total.Generated += stats.Generated
			total.MaxFrontier = max(total.MaxFrontier, stats.MaxFrontier)
			result.Expanded = total.Expanded
			if err == nil {
				total.Found = true
				return result, total, nil
			}
			if !errors.Is(err, ErrNoPath) {
				return result, total, err
			}
			logger.DebugContext(ctx, "depth round exhausted", "depth", depth, "expanded", stats.Expanded)
			if !cutoff {
				return result, total, ErrNoPath
			}
		}
		return Result[S]{Expanded: total.Expanded}, total, ErrNoPath
	})
}

// boundedRound runs one depth-bounded exploration. cutoff reports whether any
// state was left unexpanded because it sat at the bound.
func boundedRound[S comparable](ctx context.Context, problem Problem[S], maxDepth int) (Result[S], Stats, bool, error) {
	e, err := newExplorer(problem, DepthBoundedStrategy, nil, maxDepth, false)
	if err != nil {
		return Result[S]{}, Stats{}, false, err
	}
	result, err := e.run(ctx)
	e.stats.Rounds = 1
	return result, e.stats, e.cutoff, err
}
