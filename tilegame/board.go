package tilegame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxSize is the largest supported board edge.
const MaxSize = 5

// ErrInvalidBoard is wrapped by every board construction error.
var ErrInvalidBoard = errors.New("invalid tile board")

// Board is an immutable N×N arrangement of the tiles 1..N². It is a plain
// comparable value, so it can be used directly as a search state.
type Board struct {
	size  uint8
	tiles [MaxSize * MaxSize]uint8
}

// NewBoard builds a board from its rows. The rows must form a square of edge
// 1..MaxSize holding every tile 1..N² exactly once.
func NewBoard(rows [][]int) (Board, error) {
	n := len(rows)
	if n == 0 || n > MaxSize {
		return Board{}, fmt.Errorf("%w: size %d outside 1..%d", ErrInvalidBoard, n, MaxSize)
	}
	board := Board{size: uint8(n)}
	seen := make([]bool, n*n+1)
	for r, row := range rows {
		if len(row) != n {
			return Board{}, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrInvalidBoard, r, len(row), n)
		}
		for c, tile := range row {
			if tile < 1 || tile > n*n {
				return Board{}, fmt.Errorf("%w: tile %d at (%d,%d) outside 1..%d", ErrInvalidBoard, tile, r, c, n*n)
			}
			if seen[tile] {
				return Board{}, fmt.Errorf("%w: tile %d appears twice", ErrInvalidBoard, tile)
			}
			seen[tile] = true
			board.tiles[r*n+c] = uint8(tile)
		}
	}
	return board, nil
}

// MustBoard is NewBoard for literals known to be valid; it panics otherwise.
func MustBoard(rows ...[]int) Board {
	board, err := NewBoard(rows)
	if err != nil {
		panic(err)
	}
	return board
}

// Solved returns the n×n board with every tile at its home position.
func Solved(n int) Board {
	board := Board{size: uint8(n)}
	for i := 0; i < n*n; i++ {
		board.tiles[i] = uint8(i + 1)
	}
	return board
}

// Size returns the board edge N.
func (b Board) Size() int { return int(b.size) }

// At returns the tile at row, col.
func (b Board) At(row, col int) int { return int(b.tiles[row*int(b.size)+col]) }

// Rows returns the board as a fresh slice of rows.
func (b Board) Rows() [][]int {
	n := b.Size()
	rows := make([][]int, n)
	for r := range rows {
		rows[r] = make([]int, n)
		for c := range rows[r] {
			rows[r][c] = b.At(r, c)
		}
	}
	return rows
}

// swap returns a copy of b with the tiles at cells i and j exchanged.
func (b Board) swap(i, j int) Board {
	b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	return b
}

// String renders the board as a framed grid.
func (b Board) String() string {
	n := b.Size()
	width := len(strconv.Itoa(n * n))
	separator := "+" + strings.Repeat(strings.Repeat("-", width+2)+"+", n) + "\n"

	var sb strings.Builder
	sb.WriteString(separator)
	for r := 0; r < n; r++ {
		sb.WriteString("|")
		for c := 0; c < n; c++ {
			fmt.Fprintf(&sb, " %*d |", width, b.At(r, c))
		}
		sb.WriteString("\n")
		sb.WriteString(separator)
	}
	return sb.String()
}

// FormatPath renders every board of path in order, separated by blank lines.
func FormatPath(path []Board) string {
	parts := make([]string, len(path))
	for i, board := range path {
		parts[i] = board.String()
	}
	return strings.Join(parts, "\n")
}
