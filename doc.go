// Package search provides generic state-space search over any Problem.
//
// It exposes four strategies that share one exploration core:
//
//   - BreadthFirst: FIFO frontier, shortest path in edge count.
//   - DepthFirst: LIFO frontier, some valid path.
//   - IterativeDeepening: repeated DepthBounded rounds with growing depth ceilings.
//   - BestFirst: priority frontier keyed by accumulated cost plus a heuristic (A*).
//
// A Stepper drives the same core one expansion at a time for UIs or debugging.
//
// Every call allocates its own frontier and bookkeeping, so concurrent calls on
// problems without shared mutable state need no synchronization.
package search
