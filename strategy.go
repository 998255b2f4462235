package search

import (
	"context"
	"fmt"
	"strings"
)

// Strategy names an exploration discipline.
type Strategy int

const (
	BreadthFirstStrategy Strategy = iota
	DepthFirstStrategy
	IterativeDeepeningStrategy
	BestFirstStrategy
	DepthBoundedStrategy
)

var strategyNames = map[Strategy]string{
	BreadthFirstStrategy:       "bfs",
	DepthFirstStrategy:         "dfs",
	IterativeDeepeningStrategy: "ids",
	BestFirstStrategy:          "astar",
	DepthBoundedStrategy:       "dls",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy maps a short name ("bfs", "dfs", "ids", "astar", "dls") to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for strategy, strategyName := range strategyNames {
		if strings.EqualFold(name, strategyName) {
			return strategy, nil
		}
	}
	return 0, NewConfigError(fmt.Sprintf("unknown strategy %q", name), nil)
}

// Strategies lists the unbounded strategies in declaration order.
// DepthBoundedStrategy is left out since it needs a depth bound.
func Strategies() []Strategy {
	return []Strategy{BreadthFirstStrategy, DepthFirstStrategy, IterativeDeepeningStrategy, BestFirstStrategy}
}

// Run dispatches to the function implementing strategy. The heuristic is only
// consulted by BestFirstStrategy; nil means Zero. DepthBoundedStrategy takes its
// bound from WithMaxDepth.
func Run[S comparable](
	ctx context.Context,
	problem Problem[S],
	strategy Strategy,
	heuristic Heuristic[S],
	options ...Option,
) (Result[S], error) {
	switch strategy {
	case BreadthFirstStrategy:
		return BreadthFirst(ctx, problem, options...)
	case DepthFirstStrategy:
		return DepthFirst(ctx, problem, options...)
	case IterativeDeepeningStrategy:
		return IterativeDeepening(ctx, problem, options...)
	case BestFirstStrategy:
		if heuristic == nil {
			heuristic = Zero[S]
		}
		return BestFirst(ctx, problem, heuristic, options...)
	case DepthBoundedStrategy:
		return DepthBounded(ctx, problem, applyOptions(options).MaxDepth, options...)
	default:
		return Result[S]{}, NewConfigError(fmt.Sprintf("unsupported strategy %v", strategy), nil)
	}
}
