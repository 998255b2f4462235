// Package config loads search problem definitions from YAML files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/dgraph"
	"github.com/pdrpinto/search/tilegame"
)

// Kind selects the problem family a file describes.
type Kind string

const (
	KindGraph    Kind = "graph"
	KindTileGame Kind = "tilegame"
)

// ProblemFile is the decoded form of a problem definition.
type ProblemFile struct {
	Name           string        `yaml:"name"`
	Kind           Kind          `yaml:"kind"`
	Strategy       string        `yaml:"strategy"`
	Timeout        string        `yaml:"timeout"`
	MaxDepth       *int          `yaml:"maxDepth"`
	FirstDiscovery bool          `yaml:"firstDiscovery"`
	Graph          *GraphSpec    `yaml:"graph"`
	TileGame       *TileGameSpec `yaml:"tilegame"`

	// FilePath records where the definition was read from, if anywhere.
	FilePath string `yaml:"-"`
}

// GraphSpec describes a dgraph problem. A null adjacency entry means no edge.
type GraphSpec struct {
	Adjacency [][]*float64 `yaml:"adjacency"`
	Goals     []int        `yaml:"goals"`
	Start     int          `yaml:"start"`
}

// TileGameSpec describes a tile puzzle. Goal defaults to the solved board.
type TileGameSpec struct {
	Start [][]int `yaml:"start"`
	Goal  [][]int `yaml:"goal"`
}

// Load validates document against the embedded schema, decodes it strictly and
// checks that the described problem can be built. hint names the source in errors.
func Load(document []byte, hint string) (*ProblemFile, error) {
	if len(bytes.TrimSpace(document)) == 0 {
		return nil, search.NewConfigError(fmt.Sprintf("problem file '%s' is empty", hint), nil)
	}
	if err := ValidateWithSchema(document); err != nil {
		return nil, search.NewConfigError(fmt.Sprintf("problem file '%s' failed schema validation", hint), err)
	}

	var problem ProblemFile
	decoder := yaml.NewDecoder(bytes.NewReader(document))
	decoder.KnownFields(true)
	if err := decoder.Decode(&problem); err != nil {
		return nil, search.NewConfigError(fmt.Sprintf("failed to decode problem file '%s'", hint), err)
	}
	problem.FilePath = hint

	if _, err := problem.TimeoutDuration(); err != nil {
		return nil, err
	}
	if problem.Strategy != "" {
		if _, err := search.ParseStrategy(problem.Strategy); err != nil {
			return nil, err
		}
	}
	var err error
	switch problem.Kind {
	case KindGraph:
		_, err = problem.BuildGraph()
	case KindTileGame:
		_, err = problem.BuildTileGame()
	default:
		err = search.NewConfigError(fmt.Sprintf("problem file '%s' has unknown kind %q", hint, problem.Kind), nil)
	}
	if err != nil {
		return nil, err
	}
	return &problem, nil
}

// LoadFile reads and loads a problem definition from disk.
func LoadFile(path string) (*ProblemFile, error) {
	document, err := os.ReadFile(path)
	if err != nil {
		return nil, search.NewConfigError(fmt.Sprintf("failed to read problem file '%s'", path), err)
	}
	return Load(document, path)
}

// TimeoutDuration parses Timeout; zero means no timeout was set.
func (p *ProblemFile) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(p.Timeout)
	if err != nil || timeout <= 0 {
		return 0, search.NewConfigError(fmt.Sprintf("invalid timeout %q", p.Timeout), err)
	}
	return timeout, nil
}

// Options translates the file's search settings into search options.
func (p *ProblemFile) Options() []search.Option {
	var options []search.Option
	if p.MaxDepth != nil {
		options = append(options, search.WithMaxDepth(*p.MaxDepth))
	}
	if p.FirstDiscovery {
		options = append(options, search.WithFirstDiscovery())
	}
	return options
}

// BuildGraph constructs the graph problem the file describes.
func (p *ProblemFile) BuildGraph() (*dgraph.Graph, error) {
	if p.Kind != KindGraph || p.Graph == nil {
		return nil, search.NewConfigError(fmt.Sprintf("problem '%s' is not a graph problem", p.FilePath), nil)
	}
	adjacency := make([][]float64, len(p.Graph.Adjacency))
	for i, row := range p.Graph.Adjacency {
		adjacency[i] = make([]float64, len(row))
		for j, weight := range row {
			adjacency[i][j] = dgraph.NoEdge
			if weight != nil {
				adjacency[i][j] = *weight
			}
		}
	}
	g, err := dgraph.New(adjacency, p.Graph.Goals, dgraph.WithStart(p.Graph.Start))
	if err != nil {
		return nil, search.NewConfigError(fmt.Sprintf("problem '%s' describes an invalid graph", p.FilePath), err)
	}
	return g, nil
}

// BuildTileGame constructs the tile puzzle the file describes.
func (p *ProblemFile) BuildTileGame() (*tilegame.Game, error) {
	if p.Kind != KindTileGame || p.TileGame == nil {
		return nil, search.NewConfigError(fmt.Sprintf("problem '%s' is not a tile game", p.FilePath), nil)
	}
	start, err := tilegame.NewBoard(p.TileGame.Start)
	if err != nil {
		return nil, search.NewConfigError(fmt.Sprintf("problem '%s' has an invalid start board", p.FilePath), err)
	}
	goal := tilegame.Solved(start.Size())
	if p.TileGame.Goal != nil {
		if goal, err = tilegame.NewBoard(p.TileGame.Goal); err != nil {
			return nil, search.NewConfigError(fmt.Sprintf("problem '%s' has an invalid goal board", p.FilePath), err)
		}
	}
	game, err := tilegame.New(start, goal)
	if err != nil {
		return nil, search.NewConfigError(fmt.Sprintf("problem '%s' is not a valid tile game", p.FilePath), err)
	}
	return game, nil
}
