package search

import (
	"fmt"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[S comparable] struct {
	Current   S
	Frontier  []S // next state to be removed comes first
	Expanded  int
	Generated int
	Done      bool
	Found     bool
	Path      []S
	StepIndex int
}

// Stepper advances a search one removal at a time, using the same exploration
// core as the full-run strategies.
type Stepper[S comparable] struct {
	explorer  *explorer[S]
	stepCount int
}

// NewStepper creates a Stepper for BreadthFirstStrategy, DepthFirstStrategy,
// BestFirstStrategy or DepthBoundedStrategy (bound taken from WithMaxDepth).
// IterativeDeepeningStrategy is a sequence of searches and cannot be stepped.
func NewStepper[S comparable](
	problem Problem[S],
	strategy Strategy,
	heuristic Heuristic[S],
	options ...Option,
) (*Stepper[S], error) {
	if problem == nil {
		return nil, NewConfigError("stepper: problem is nil", nil)
	}
	opts := applyOptions(options)
	switch strategy {
	case BreadthFirstStrategy, DepthFirstStrategy:
	case BestFirstStrategy:
		if heuristic == nil {
			heuristic = Zero[S]
		}
	case DepthBoundedStrategy:
		if opts.MaxDepth < 0 {
			return nil, NewConfigError("stepper: dls needs a non-negative WithMaxDepth", nil)
		}
	default:
		return nil, NewConfigError(fmt.Sprintf("stepper: strategy %v cannot be stepped", strategy), nil)
	}

	e, err := newExplorer(problem, strategy, heuristic, opts.MaxDepth, opts.FirstDiscovery)
	if err != nil {
		return nil, err
	}
	return &Stepper[S]{explorer: e}, nil
}

// Step removes and processes one state and returns a snapshot. Once the search
// is done every further call returns the final snapshot again, together with
// the error that ended it, if any.
func (s *Stepper[S]) Step() (StepSnapshot[S], error) {
	current, removed, err := s.explorer.step()
	if removed {
		s.stepCount++
	}
	return s.snapshot(current), err
}

// Done reports whether the search has finished.
func (s *Stepper[S]) Done() bool { return s.explorer.done }

// Result returns the outcome so far: the path once a goal has been found,
// ErrNoPath once the frontier is exhausted, or the error that aborted a step.
func (s *Stepper[S]) Result() (Result[S], error) {
	return s.explorer.result()
}

func (s *Stepper[S]) snapshot(current S) StepSnapshot[S] {
	e := s.explorer
	snap := StepSnapshot[S]{
		Current:   current,
		Frontier:  e.frontier.states(),
		Expanded:  e.stats.Expanded,
		Generated: e.stats.Generated,
		Done:      e.done,
		Found:     e.stats.Found,
		StepIndex: s.stepCount,
	}
	if e.stats.Found {
		snap.Current = e.goal
		snap.Path = e.path()
	}
	return snap
}
