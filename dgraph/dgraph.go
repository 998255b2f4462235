// Package dgraph implements reachability on a weighted directed graph as a
// search problem. States are node indices.
package dgraph

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/pdrpinto/search"
)

// NoEdge marks the absence of an edge in an adjacency matrix.
var NoEdge = math.Inf(1)

// ErrInvalidGraph is wrapped by every graph construction error.
var ErrInvalidGraph = errors.New("invalid graph")

// Graph is a directed graph with a start node and a set of goal nodes.
type Graph struct {
	g     *simple.WeightedDirectedGraph
	order int
	start int
	goals map[int]struct{}
}

var _ search.Problem[int] = (*Graph)(nil)

// Option configures a Graph.
type Option func(*Graph)

// WithStart sets the start node. The default is node 0.
func WithStart(node int) Option {
	return func(g *Graph) { g.start = node }
}

// New builds a graph from a square adjacency matrix, where adjacency[i][j] is
// the cost of the edge i→j or NoEdge. Diagonal entries are ignored: a node is
// never its own successor.
func New(adjacency [][]float64, goals []int, options ...Option) (*Graph, error) {
	order := len(adjacency)
	if order == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrInvalidGraph)
	}
	graph := &Graph{
		g:     simple.NewWeightedDirectedGraph(0, NoEdge),
		order: order,
		goals: make(map[int]struct{}, len(goals)),
	}
	for _, option := range options {
		option(graph)
	}
	if graph.start < 0 || graph.start >= order {
		return nil, fmt.Errorf("%w: start node %d outside 0..%d", ErrInvalidGraph, graph.start, order-1)
	}

	for i := 0; i < order; i++ {
		graph.g.AddNode(simple.Node(i))
	}
	for i, row := range adjacency {
		if len(row) != order {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidGraph, i, len(row), order)
		}
		for j, weight := range row {
			if i == j || math.IsInf(weight, 1) {
				continue
			}
			if weight < 0 || math.IsNaN(weight) {
				return nil, fmt.Errorf("%w: edge %d->%d has cost %v", ErrInvalidGraph, i, j, weight)
			}
			graph.g.SetWeightedEdge(graph.g.NewWeightedEdge(simple.Node(i), simple.Node(j), weight))
		}
	}
	for _, goal := range goals {
		if goal < 0 || goal >= order {
			return nil, fmt.Errorf("%w: goal node %d outside 0..%d", ErrInvalidGraph, goal, order-1)
		}
		graph.goals[goal] = struct{}{}
	}
	return graph, nil
}

// Order returns the number of nodes.
func (g *Graph) Order() int { return g.order }

// Goals returns the goal nodes in ascending order.
func (g *Graph) Goals() []int {
	goals := make([]int, 0, len(g.goals))
	for goal := range g.goals {
		goals = append(goals, goal)
	}
	slices.Sort(goals)
	return goals
}

func (g *Graph) Start() int { return g.start }

func (g *Graph) IsGoal(node int) bool {
	_, ok := g.goals[node]
	return ok
}

// Successors lists the out-neighbours of node in ascending node order.
func (g *Graph) Successors(node int) []search.Successor[int] {
	var successors []search.Successor[int]
	for it := g.g.From(int64(node)); it.Next(); {
		to := it.Node().ID()
		weight, _ := g.g.Weight(int64(node), to)
		successors = append(successors, search.Successor[int]{State: int(to), Cost: weight})
	}
	slices.SortFunc(successors, func(a, b search.Successor[int]) int { return a.State - b.State })
	return successors
}

// ShortestCost returns the cheapest total edge cost from the start to any goal,
// computed independently with Dijkstra's algorithm. It is +Inf when no goal
// is reachable.
func (g *Graph) ShortestCost() float64 {
	shortest := path.DijkstraFrom(simple.Node(g.start), g.g)
	best := math.Inf(1)
	for goal := range g.goals {
		best = math.Min(best, shortest.WeightTo(int64(goal)))
	}
	return best
}
