package search

import (
	"context"
)

// BestFirst runs A*: the frontier is ordered by g(s) + heuristic(s), where g is
// the accumulated edge cost from the start. Edge costs and heuristic values
// must be non-negative; a violation aborts the search with a *CostError.
//
// By default a state is re-queued whenever a strictly cheaper path to it is
// found, which makes the result cost-optimal for any admissible heuristic.
// WithFirstDiscovery keeps the first cost found instead.
func BestFirst[S comparable](
	ctx context.Context,
	problem Problem[S],
	heuristic Heuristic[S],
	options ...Option,
) (Result[S], error) {
	if problem == nil {
		return Result[S]{}, NewConfigError("astar: problem is nil", nil)
	}
	if heuristic == nil {
		return Result[S]{}, NewConfigError("astar: heuristic is nil", nil)
	}
	searchOptions := applyOptions(options)
	return observe(ctx, BestFirstStrategy, searchOptions, func() (Result[S], Stats, error) {
		e, err := newExplorer(problem, BestFirstStrategy, heuristic, 0, searchOptions.FirstDiscovery)
		if err != nil {
			return Result[S]{}, Stats{}, err
		}
		result, err := e.run(ctx)
		e.stats.Rounds = 1
		return result, e.stats, err
	})
}
