package search

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// BreadthFirst explores states in discovery order. The returned path has the
// fewest edges among all paths from the start to any goal.
func BreadthFirst[S comparable](ctx context.Context, problem Problem[S], options ...Option) (Result[S], error) {
	return frontierSearch(ctx, problem, BreadthFirstStrategy, options)
}

// DepthFirst explores the most recently discovered state first. It returns
// some valid path, with no guarantee on its length.
func DepthFirst[S comparable](ctx context.Context, problem Problem[S], options ...Option) (Result[S], error) {
	return frontierSearch(ctx, problem, DepthFirstStrategy, options)
}

// frontierSearch is the loop shared by BreadthFirst and DepthFirst; only the
// frontier discipline differs. Edge costs are ignored.
func frontierSearch[S comparable](
	ctx context.Context,
	problem Problem[S],
	strategy Strategy,
	options []Option,
) (Result[S], error) {
	if problem == nil {
		return Result[S]{}, NewConfigError(fmt.Sprintf("%v: problem is nil", strategy), nil)
	}
	searchOptions := applyOptions(options)
	return observe(ctx, strategy, searchOptions, func() (Result[S], Stats, error) {
		e, err := newExplorer(problem, strategy, nil, 0, false)
		if err != nil {
			return Result[S]{}, Stats{}, err
		}
		result, err := e.run(ctx)
		e.stats.Rounds = 1
		return result, e.stats, err
	})
}

// observe wraps one strategy run with observer notifications and debug logging.
func observe[S comparable](
	ctx context.Context,
	strategy Strategy,
	searchOptions Options,
	body func() (Result[S], Stats, error),
) (Result[S], error) {
	logger := searchOptions.Logger.With("strategy", strategy.String())
	searchOptions.Observer.SearchStarted(strategy)
	began := time.Now()

	result, stats, err := body()

	searchOptions.Observer.SearchFinished(strategy, stats)
	switch {
	case err == nil:
		logger.DebugContext(ctx, "search finished",
			"path_length", len(result.Path), "cost", result.Cost,
			"expanded", stats.Expanded, "generated", stats.Generated,
			"max_frontier", stats.MaxFrontier, "elapsed", time.Since(began))
	case errors.Is(err, ErrNoPath):
		logger.DebugContext(ctx, "search exhausted", "expanded", stats.Expanded, "elapsed", time.Since(began))
	default:
		logger.DebugContext(ctx, "search failed", "error", err, "expanded", stats.Expanded)
		err = fmt.Errorf("%v search: %w", strategy, err)
	}
	return result, err
}
