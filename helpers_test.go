package search_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/dgraph"
	"github.com/pdrpinto/search/tilegame"
)

var none = dgraph.NoEdge

// requireValidPath checks that path starts at the problem's start, ends in a
// goal and only follows edges of the successor relation.
func requireValidPath[S comparable](t *testing.T, problem search.Problem[S], path []S) {
	t.Helper()
	require.NotEmpty(t, path, "path should not be empty")
	require.Equal(t, problem.Start(), path[0], "path should start with the start state")
	require.True(t, problem.IsGoal(path[len(path)-1]), "path should end with a goal state")
	for i := 1; i < len(path); i++ {
		found := false
		for _, successor := range problem.Successors(path[i-1]) {
			if successor.State == path[i] {
				found = true
				break
			}
		}
		require.Truef(t, found, "step %d: %v is not a successor of %v", i, path[i], path[i-1])
	}
}

func newGraph(t *testing.T, adjacency [][]float64, goals []int, options ...dgraph.Option) *dgraph.Graph {
	t.Helper()
	g, err := dgraph.New(adjacency, goals, options...)
	require.NoError(t, err)
	return g
}

func newGame(t *testing.T, start, goal tilegame.Board) *tilegame.Game {
	t.Helper()
	game, err := tilegame.New(start, goal)
	require.NoError(t, err)
	return game
}

// lineProblem walks the integers upward from 0 forever; target < 0 means no goal.
type lineProblem struct {
	target int
}

func (p lineProblem) Start() int           { return 0 }
func (p lineProblem) IsGoal(state int) bool { return state == p.target }
func (p lineProblem) Successors(state int) []search.Successor[int] {
	return []search.Successor[int]{{State: state + 1, Cost: 1}}
}

// costProblem is a single edge 0->1 with a configurable cost.
type costProblem struct {
	cost float64
}

func (p costProblem) Start() int           { return 0 }
func (p costProblem) IsGoal(state int) bool { return state == 1 }
func (p costProblem) Successors(state int) []search.Successor[int] {
	if state == 0 {
		return []search.Successor[int]{{State: 1, Cost: p.cost}}
	}
	return nil
}

type recordingObserver struct {
	mu       sync.Mutex
	started  []search.Strategy
	finished map[search.Strategy]search.Stats
}

func (o *recordingObserver) SearchStarted(strategy search.Strategy) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, strategy)
}

func (o *recordingObserver) SearchFinished(strategy search.Strategy, stats search.Stats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.finished == nil {
		o.finished = make(map[search.Strategy]search.Stats)
	}
	o.finished[strategy] = stats
}
