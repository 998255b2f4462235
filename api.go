package search

import (
	"log/slog"
)

// Problem is generic over state type S.
// S must be comparable so it can be used in maps.
type Problem[S comparable] interface {
	Start() S
	IsGoal(state S) bool
	// Successors lists the states reachable in one move, in a deterministic order.
	Successors(state S) []Successor[S]
}

// Successor is a state reachable in one move together with the move's cost.
// Problems without a natural weighting report a cost of 1.
type Successor[S comparable] struct {
	State S
	Cost  float64
}

// Heuristic estimates the remaining cost from a state to the nearest goal.
type Heuristic[S comparable] func(state S) float64

// Zero is the heuristic that always returns 0; BestFirst with it is uniform-cost search.
func Zero[S comparable](S) float64 { return 0 }

// Result contains the outcome of a search.
type Result[S comparable] struct {
	Path     []S
	Cost     float64
	Expanded int
	Found    bool
}

// Stats summarizes one run for an Observer.
type Stats struct {
	Expanded    int
	Generated   int
	MaxFrontier int
	Rounds      int
	Found       bool
}

// Observer is notified at the start and end of every search run.
type Observer interface {
	SearchStarted(strategy Strategy)
	SearchFinished(strategy Strategy, stats Stats)
}

// Options defines parameters for the search.
type Options struct {
	Logger         *slog.Logger
	Observer       Observer
	MaxDepth       int
	FirstDiscovery bool
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger used for debug output. Searches are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithObserver registers an Observer for run statistics.
func WithObserver(observer Observer) Option {
	return func(options *Options) { options.Observer = observer }
}

// WithMaxDepth caps IterativeDeepening: after the round with this depth bound
// fails, the search gives up with ErrNoPath. A negative value means no cap.
func WithMaxDepth(maxDepth int) Option {
	return func(options *Options) { options.MaxDepth = maxDepth }
}

// WithFirstDiscovery makes BestFirst fix each state's cost and parent at its
// first discovery instead of relaxing them when a cheaper path shows up.
// The result is optimal only for consistent heuristics.
func WithFirstDiscovery() Option {
	return func(options *Options) { options.FirstDiscovery = true }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{MaxDepth: -1}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.DiscardHandler)
	}
	if searchOptions.Observer == nil {
		searchOptions.Observer = nopObserver{}
	}
	return searchOptions
}

type nopObserver struct{}

func (nopObserver) SearchStarted(Strategy)         {}
func (nopObserver) SearchFinished(Strategy, Stats) {}
