// Package tilegame implements the N×N tile-swap puzzle as a search problem.
//
// A move exchanges two tiles that are horizontally or vertically adjacent and
// costs 1. Any permutation of the tiles can be reached from any other.
package tilegame

import (
	"fmt"
	"math/rand/v2"

	"github.com/pdrpinto/search"
)

// Game is one puzzle instance: a start board and the board to reach.
type Game struct {
	start Board
	goal  Board
	// home[t] is the goal cell index of tile t
	home [MaxSize*MaxSize + 1]uint8
}

var _ search.Problem[Board] = (*Game)(nil)

// New creates a game from start to goal. Both boards must have the same size.
func New(start, goal Board) (*Game, error) {
	if start.Size() == 0 || start.Size() != goal.Size() {
		return nil, fmt.Errorf("%w: start is %dx%d but goal is %dx%d",
			ErrInvalidBoard, start.Size(), start.Size(), goal.Size(), goal.Size())
	}
	game := &Game{start: start, goal: goal}
	n := goal.Size()
	for i := 0; i < n*n; i++ {
		game.home[goal.tiles[i]] = uint8(i)
	}
	return game, nil
}

// Random creates an n×n game whose start is a uniformly shuffled board and
// whose goal is Solved(n).
func Random(n int, rng *rand.Rand) (*Game, error) {
	if n < 1 || n > MaxSize {
		return nil, fmt.Errorf("%w: size %d outside 1..%d", ErrInvalidBoard, n, MaxSize)
	}
	start := Board{size: uint8(n)}
	for i, tile := range rng.Perm(n * n) {
		start.tiles[i] = uint8(tile + 1)
	}
	return New(start, Solved(n))
}

func (g *Game) Start() Board { return g.start }

// Goal returns the board the game is solved at.
func (g *Game) Goal() Board { return g.goal }

func (g *Game) IsGoal(board Board) bool { return board == g.goal }

// Successors lists every board one adjacent swap away, scanning cells in
// row-major order and swapping each with its right then its lower neighbour.
func (g *Game) Successors(board Board) []search.Successor[Board] {
	n := board.Size()
	successors := make([]search.Successor[Board], 0, 2*n*(n-1))
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cell := r*n + c
			if c+1 < n {
				successors = append(successors, search.Successor[Board]{State: board.swap(cell, cell+1), Cost: 1})
			}
			if r+1 < n {
				successors = append(successors, search.Successor[Board]{State: board.swap(cell, cell+n), Cost: 1})
			}
		}
	}
	return successors
}

// Heuristic is the halved Manhattan distance of every tile from its cell on
// this game's goal board. A swap moves two tiles one step each, so the
// estimate never exceeds the number of swaps left.
func (g *Game) Heuristic(board Board) float64 {
	n := board.Size()
	total := 0
	for cell := 0; cell < n*n; cell++ {
		home := int(g.home[board.tiles[cell]])
		total += abs(cell/n-home/n) + abs(cell%n-home%n)
	}
	return float64(total / 2)
}

// Heuristic is the halved Manhattan distance of every tile v from its home
// cell ((v-1)/N, (v-1)%N) on the solved board.
func Heuristic(board Board) float64 {
	n := board.Size()
	total := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			tile := board.At(r, c)
			total += abs(r-(tile-1)/n) + abs(c-(tile-1)%n)
		}
	}
	return float64(total / 2)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
