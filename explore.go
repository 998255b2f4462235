package search

import (
	"context"
	"math"

	"github.com/pdrpinto/search/internal"
)

// cancelCheckInterval is how many removals pass between context checks.
const cancelCheckInterval = 256

// explorer owns the frontier and bookkeeping of one search invocation.
// Exactly one of visited, depth and cost is non-nil, picked by the strategy:
// visited for plain BFS/DFS, depth for depth-bounded rounds, cost for best-first.
type explorer[S comparable] struct {
	problem        Problem[S]
	strategy       Strategy
	heuristic      Heuristic[S]
	maxDepth       int
	firstDiscovery bool

	frontier frontier[S]
	parent   map[S]S
	visited  map[S]struct{}
	depth    map[S]int
	cost     map[S]float64

	sequence int
	stats    Stats
	cutoff   bool
	done     bool
	err      error // fault that ended the exploration, if any
	goal     S
}

func newExplorer[S comparable](
	problem Problem[S],
	strategy Strategy,
	heuristic Heuristic[S],
	maxDepth int,
	firstDiscovery bool,
) (*explorer[S], error) {
	e := &explorer[S]{
		problem:        problem,
		strategy:       strategy,
		heuristic:      heuristic,
		maxDepth:       maxDepth,
		firstDiscovery: firstDiscovery,
		frontier:       newFrontier[S](strategy),
		parent:         make(map[S]S),
	}

	start := problem.Start()
	item := frontierItem[S]{State: start}
	switch strategy {
	case BestFirstStrategy:
		estimate := heuristic(start)
		if err := checkCost("heuristic", start, estimate); err != nil {
			return nil, err
		}
		e.cost = map[S]float64{start: 0}
		item.Priority = estimate
	case DepthBoundedStrategy:
		e.depth = map[S]int{start: 0}
	default:
		e.visited = map[S]struct{}{start: {}}
	}
	e.push(item)
	return e, nil
}

func (e *explorer[S]) push(item frontierItem[S]) {
	item.Sequence = e.sequence
	e.sequence++
	e.frontier.push(item)
	if n := e.frontier.Len(); n > e.stats.MaxFrontier {
		e.stats.MaxFrontier = n
	}
}

// step removes one state from the frontier, goal-tests it and, if it is not a
// goal, expands it. It reports whether a state was removed.
func (e *explorer[S]) step() (current S, removed bool, err error) {
	if e.done {
		return current, false, e.err
	}
	for {
		if e.frontier.Len() == 0 {
			e.done = true
			return current, false, nil
		}
		item := e.frontier.pop()
		// relaxed entries superseded by a cheaper push are stale
		if e.cost != nil && item.Cost > e.cost[item.State] {
			continue
		}
		current = item.State
		break
	}
	e.stats.Expanded++

	if e.problem.IsGoal(current) {
		e.done = true
		e.stats.Found = true
		e.goal = current
		return current, true, nil
	}

	switch {
	case e.cost != nil:
		err = e.expandWeighted(current)
	case e.depth != nil:
		e.expandBounded(current)
	default:
		e.expandUnweighted(current)
	}
	if err != nil {
		e.err = err
		e.done = true
	}
	return current, true, err
}

func (e *explorer[S]) expandUnweighted(current S) {
	for _, successor := range e.problem.Successors(current) {
		e.stats.Generated++
		if _, seen := e.visited[successor.State]; seen {
			continue
		}
		e.visited[successor.State] = struct{}{}
		e.parent[successor.State] = current
		e.push(frontierItem[S]{State: successor.State})
	}
}

func (e *explorer[S]) expandBounded(current S) {
	currentDepth := e.depth[current]
	if currentDepth >= e.maxDepth {
		e.cutoff = true
		return
	}
	for _, successor := range e.problem.Successors(current) {
		e.stats.Generated++
		childDepth := currentDepth + 1
		if recorded, seen := e.depth[successor.State]; seen && recorded <= childDepth {
			continue
		}
		e.depth[successor.State] = childDepth
		e.parent[successor.State] = current
		e.push(frontierItem[S]{State: successor.State})
	}
}

func (e *explorer[S]) expandWeighted(current S) error {
	currentCost := e.cost[current]
	for _, successor := range e.problem.Successors(current) {
		e.stats.Generated++
		if err := checkCost("edge", current, successor.Cost); err != nil {
			return err
		}
		tentative := currentCost + successor.Cost
		if recorded, seen := e.cost[successor.State]; seen && (e.firstDiscovery || tentative >= recorded) {
			continue
		}
		estimate := e.heuristic(successor.State)
		if err := checkCost("heuristic", successor.State, estimate); err != nil {
			return err
		}
		e.cost[successor.State] = tentative
		e.parent[successor.State] = current
		e.push(frontierItem[S]{State: successor.State, Cost: tentative, Priority: tentative + estimate})
	}
	return nil
}

// run steps until a goal is found or the frontier is exhausted.
func (e *explorer[S]) run(ctx context.Context) (Result[S], error) {
	for removals := 0; !e.done; removals++ {
		if removals%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result[S]{Expanded: e.stats.Expanded}, err
			}
		}
		if _, _, err := e.step(); err != nil {
			return Result[S]{Expanded: e.stats.Expanded}, err
		}
	}
	return e.result()
}

func (e *explorer[S]) result() (Result[S], error) {
	if e.err != nil {
		return Result[S]{Expanded: e.stats.Expanded}, e.err
	}
	if !e.stats.Found {
		return Result[S]{Expanded: e.stats.Expanded}, ErrNoPath
	}
	path := e.path()
	return Result[S]{
		Path:     path,
		Cost:     pathCost(e.problem, path),
		Expanded: e.stats.Expanded,
		Found:    true,
	}, nil
}

func (e *explorer[S]) path() []S {
	if len(e.parent) == 0 {
		return []S{e.goal}
	}
	return internal.ReconstructPath(e.parent, e.goal)
}

// pathCost sums the cheapest edge cost between each consecutive pair of path.
func pathCost[S comparable](problem Problem[S], path []S) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		edge := math.Inf(1)
		for _, successor := range problem.Successors(path[i-1]) {
			if successor.State == path[i] && successor.Cost < edge {
				edge = successor.Cost
			}
		}
		total += edge
	}
	return total
}

func checkCost(source string, state any, value float64) error {
	if value < 0 || math.IsNaN(value) {
		return &CostError{Source: source, State: state, Value: value}
	}
	return nil
}
