package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/tilegame"
)

func TestStepper_BreadthFirstSnapshots(t *testing.T) {
	g := newGraph(t, [][]float64{
		{none, 1, 1, none},
		{none, none, none, 1},
		{none, none, none, 1},
		{none, none, none, none},
	}, []int{3})

	stepper, err := search.NewStepper[int](g, search.BreadthFirstStrategy, nil)
	require.NoError(t, err)

	snap, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Current)
	assert.Equal(t, []int{1, 2}, snap.Frontier)
	assert.Equal(t, 1, snap.StepIndex)
	assert.False(t, snap.Done)

	snap, err = stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Current)
	assert.Equal(t, []int{2, 3}, snap.Frontier)

	snap, err = stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Current)
	assert.Equal(t, []int{3}, snap.Frontier)

	snap, err = stepper.Step()
	require.NoError(t, err)
	assert.True(t, snap.Done)
	assert.True(t, snap.Found)
	assert.Equal(t, []int{0, 1, 3}, snap.Path)
	assert.Equal(t, 4, snap.StepIndex)

	// further steps repeat the final snapshot
	again, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, snap, again)
	assert.True(t, stepper.Done())
}

func TestStepper_MatchesFullRun(t *testing.T) {
	game := newGame(t, tilegame.MustBoard([]int{4, 3}, []int{2, 1}), solved2)

	for _, strategy := range []search.Strategy{search.BreadthFirstStrategy, search.DepthFirstStrategy, search.BestFirstStrategy} {
		t.Run(strategy.String(), func(t *testing.T) {
			stepper, err := search.NewStepper[tilegame.Board](game, strategy, game.Heuristic)
			require.NoError(t, err)
			for !stepper.Done() {
				_, err := stepper.Step()
				require.NoError(t, err)
			}
			stepped, err := stepper.Result()
			require.NoError(t, err)

			full, err := search.Run[tilegame.Board](context.Background(), game, strategy, game.Heuristic)
			require.NoError(t, err)
			assert.Equal(t, full, stepped)
		})
	}
}

func TestStepper_Exhausted(t *testing.T) {
	g := newGraph(t, [][]float64{{none, none}, {none, none}}, []int{1})
	stepper, err := search.NewStepper[int](g, search.DepthBoundedStrategy, nil, search.WithMaxDepth(3))
	require.NoError(t, err)

	snap, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Current)
	assert.False(t, snap.Done)

	snap, err = stepper.Step()
	require.NoError(t, err)
	assert.True(t, snap.Done)
	assert.False(t, snap.Found)

	_, err = stepper.Result()
	require.ErrorIs(t, err, search.ErrNoPath)
}

func TestStepper_RejectsIterativeDeepening(t *testing.T) {
	_, err := search.NewStepper[int](lineProblem{target: 3}, search.IterativeDeepeningStrategy, nil)
	var configErr *search.ConfigError
	require.ErrorAs(t, err, &configErr)

	_, err = search.NewStepper[int](lineProblem{target: 3}, search.DepthBoundedStrategy, nil)
	require.ErrorAs(t, err, &configErr)
}

func TestStepper_CostErrorIsSticky(t *testing.T) {
	stepper, err := search.NewStepper[int](costProblem{cost: -1}, search.BestFirstStrategy, search.Zero[int])
	require.NoError(t, err)

	snap, err := stepper.Step()
	var costErr *search.CostError
	require.ErrorAs(t, err, &costErr)
	assert.Equal(t, "edge", costErr.Source)
	assert.Equal(t, 1, snap.StepIndex, "the failing removal still counts as a step")
	assert.True(t, stepper.Done())

	snap, err = stepper.Step()
	require.ErrorAs(t, err, &costErr)
	assert.False(t, snap.Found)
	assert.Equal(t, 1, snap.StepIndex)

	_, err = stepper.Result()
	require.ErrorAs(t, err, &costErr)
	assert.NotErrorIs(t, err, search.ErrNoPath)
}
