// Package runner supervises search runs: it enforces timeouts, records
// metrics and traces, and compares several strategies on one problem.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/internal/metrics"
)

const tracerName = "github.com/pdrpinto/search/internal/runner"

// Outcome labels used in reports and the duration histogram.
const (
	OutcomeFound     = "found"
	OutcomeExhausted = "exhausted"
	OutcomeTimeout   = "timeout"
	OutcomeError     = "error"
)

// Runner executes searches under a deadline. The zero value runs without a
// timeout, metrics or logging and traces through the global tracer provider.
type Runner struct {
	Timeout     time.Duration
	Parallelism int
	Logger      *slog.Logger
	Metrics     *metrics.Collector
	Tracer      oteltrace.Tracer
}

// Report is the outcome of one supervised run.
type Report[S comparable] struct {
	Strategy search.Strategy
	Result   search.Result[S]
	Err      error
	Elapsed  time.Duration
	TimedOut bool
}

// Outcome classifies the report as found, exhausted, timeout or error.
func (r Report[S]) Outcome() string {
	switch {
	case r.Err == nil:
		return OutcomeFound
	case r.TimedOut:
		return OutcomeTimeout
	case errors.Is(r.Err, search.ErrNoPath):
		return OutcomeExhausted
	default:
		return OutcomeError
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *Runner) tracer() oteltrace.Tracer {
	if r.Tracer == nil {
		return otel.Tracer(tracerName)
	}
	return r.Tracer
}

type outcome[S comparable] struct {
	result search.Result[S]
	err    error
}

// Solve runs strategy on problem in its own goroutine and waits for it or for
// the deadline, whichever comes first. Searches check their context
// cooperatively, so a timed-out search stops shortly after the deadline.
func Solve[S comparable](
	ctx context.Context,
	r *Runner,
	problem search.Problem[S],
	strategy search.Strategy,
	heuristic search.Heuristic[S],
	options ...search.Option,
) Report[S] {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	ctx, span := r.tracer().Start(ctx, "search.run", oteltrace.WithAttributes(
		attribute.String("search.strategy", strategy.String()),
	))
	defer span.End()

	logger := r.logger().With("strategy", strategy.String())
	// Compare hands the same options to every run; never append in place
	options = slices.Clip(options)
	if r.Metrics != nil {
		options = append(options, search.WithObserver(r.Metrics))
	}
	// searches add their own strategy attribute
	options = append(options, search.WithLogger(r.logger()))

	began := time.Now()
	done := make(chan outcome[S], 1)
	go func() {
		result, err := search.Run(ctx, problem, strategy, heuristic, options...)
		done <- outcome[S]{result: result, err: err}
	}()

	report := Report[S]{Strategy: strategy}
	select {
	case out := <-done:
		report.Result, report.Err = out.result, out.err
	case <-ctx.Done():
		report.Err = ctx.Err()
	}
	report.Elapsed = time.Since(began)
	report.TimedOut = errors.Is(report.Err, context.DeadlineExceeded)

	outcomeLabel := report.Outcome()
	if r.Metrics != nil {
		r.Metrics.ObserveDuration(strategy, outcomeLabel, report.Elapsed)
	}
	span.SetAttributes(
		attribute.String("search.outcome", outcomeLabel),
		attribute.Int("search.expanded", report.Result.Expanded),
		attribute.Int("search.path_length", len(report.Result.Path)),
	)
	switch outcomeLabel {
	case OutcomeFound:
		span.SetAttributes(attribute.Float64("search.cost", report.Result.Cost))
		span.SetStatus(codes.Ok, "")
		logger.Info("Search found a path", "length", len(report.Result.Path), "cost", report.Result.Cost, "elapsed", report.Elapsed)
	case OutcomeExhausted:
		span.SetStatus(codes.Ok, "no path")
		logger.Info("Search exhausted without a path", "expanded", report.Result.Expanded, "elapsed", report.Elapsed)
	default:
		span.RecordError(report.Err)
		span.SetStatus(codes.Error, report.Err.Error())
		logger.Warn("Search did not complete", "outcome", outcomeLabel, "error", report.Err)
	}
	return report
}

// Compare runs every strategy on problem concurrently, at most Parallelism at
// a time, and returns one report per strategy in the order given. Individual
// search failures are reported, not returned; the error is non-nil only when
// ctx itself ends before all runs were scheduled.
func Compare[S comparable](
	ctx context.Context,
	r *Runner,
	problem search.Problem[S],
	strategies []search.Strategy,
	heuristic search.Heuristic[S],
	options ...search.Option,
) ([]Report[S], error) {
	ctx, span := r.tracer().Start(ctx, "search.compare", oteltrace.WithAttributes(
		attribute.Int("search.strategies", len(strategies)),
	))
	defer span.End()

	reports := make([]Report[S], len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	if r.Parallelism > 0 {
		g.SetLimit(r.Parallelism)
	}
	for i, strategy := range strategies {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			reports[i] = Solve(gctx, r, problem, strategy, heuristic, options...)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return reports, fmt.Errorf("comparing strategies: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return reports, nil
}
