package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/dgraph"
	"github.com/pdrpinto/search/internal/config"
	"github.com/pdrpinto/search/tilegame"
)

// instance bundles a problem with what the CLI needs to run and print it.
type instance[S comparable] struct {
	name      string
	problem   search.Problem[S]
	heuristic search.Heuristic[S]
	options   []search.Option
	label     func(S) string
	printPath func(w io.Writer, path []S)
}

func graphInstance(name string, g *dgraph.Graph, options []search.Option) instance[int] {
	return instance[int]{
		name:      name,
		problem:   g,
		heuristic: search.Zero[int],
		options:   options,
		label:     strconv.Itoa,
		printPath: func(w io.Writer, path []int) {
			labels := make([]string, len(path))
			for i, node := range path {
				labels[i] = strconv.Itoa(node)
			}
			fmt.Fprintf(w, "Path:     %s\n", strings.Join(labels, " -> "))
		},
	}
}

func tileInstance(name string, game *tilegame.Game, options []search.Option) instance[tilegame.Board] {
	return instance[tilegame.Board]{
		name:      name,
		problem:   game,
		heuristic: game.Heuristic,
		options:   options,
		label:     compactBoard,
		printPath: func(w io.Writer, path []tilegame.Board) {
			fmt.Fprintln(w, "Path:")
			fmt.Fprint(w, tilegame.FormatPath(path))
		},
	}
}

// compactBoard renders a board on one line, rows separated by '/'.
func compactBoard(b tilegame.Board) string {
	rows := b.Rows()
	parts := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, tile := range row {
			cells[j] = strconv.Itoa(tile)
		}
		parts[i] = strings.Join(cells, " ")
	}
	return "[" + strings.Join(parts, "/") + "]"
}

// problemHandlers receives the loaded problem in its concrete form.
type problemHandlers struct {
	graph    func(instance[int]) error
	tilegame func(instance[tilegame.Board]) error
}

// withProblem builds the problem file describes and hands it to the matching handler.
func withProblem(file *config.ProblemFile, handlers problemHandlers) error {
	name := file.Name
	if name == "" {
		name = file.FilePath
	}
	switch file.Kind {
	case config.KindGraph:
		g, err := file.BuildGraph()
		if err != nil {
			return err
		}
		return handlers.graph(graphInstance(name, g, file.Options()))
	case config.KindTileGame:
		game, err := file.BuildTileGame()
		if err != nil {
			return err
		}
		return handlers.tilegame(tileInstance(name, game, file.Options()))
	default:
		return search.NewConfigError(fmt.Sprintf("unsupported problem kind %q", file.Kind), nil)
	}
}

// pickStrategy prefers the flag, then the file, then A*.
func pickStrategy(flag string, file *config.ProblemFile) (search.Strategy, error) {
	switch {
	case flag != "":
		return search.ParseStrategy(flag)
	case file != nil && file.Strategy != "":
		return search.ParseStrategy(file.Strategy)
	default:
		return search.BestFirstStrategy, nil
	}
}
