// Package metrics records search statistics in Prometheus collectors.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/pdrpinto/search"
)

// Collector implements search.Observer on top of Prometheus metrics.
type Collector struct {
	runs        *prometheus.CounterVec
	inFlight    *prometheus.GaugeVec
	expanded    *prometheus.CounterVec
	generated   *prometheus.CounterVec
	rounds      *prometheus.CounterVec
	maxFrontier *prometheus.GaugeVec
	duration    *prometheus.HistogramVec
}

var _ search.Observer = (*Collector)(nil)

// NewCollector creates the search metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "search_runs_total", Help: "Total number of search runs by strategy and outcome."},
			[]string{"strategy", "outcome"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "search_runs_in_flight", Help: "Number of search runs currently executing."},
			[]string{"strategy"},
		),
		expanded: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "search_states_expanded_total", Help: "States removed from the frontier."},
			[]string{"strategy"},
		),
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "search_states_generated_total", Help: "Successor states produced during expansion."},
			[]string{"strategy"},
		),
		rounds: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "search_rounds_total", Help: "Exploration rounds; more than one per run only for iterative deepening."},
			[]string{"strategy"},
		),
		maxFrontier: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "search_frontier_max_size", Help: "Largest frontier seen in the most recent run."},
			[]string{"strategy"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "search_run_duration_seconds", Help: "Wall-clock duration of search runs.", Buckets: prometheus.DefBuckets},
			[]string{"strategy", "outcome"},
		),
	}
	for _, collector := range []prometheus.Collector{c.runs, c.inFlight, c.expanded, c.generated, c.rounds, c.maxFrontier, c.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("registering search metrics: %w", err)
		}
	}
	return c, nil
}

func (c *Collector) SearchStarted(strategy search.Strategy) {
	c.inFlight.WithLabelValues(strategy.String()).Inc()
}

func (c *Collector) SearchFinished(strategy search.Strategy, stats search.Stats) {
	label := strategy.String()
	c.inFlight.WithLabelValues(label).Dec()
	c.runs.WithLabelValues(label, outcome(stats.Found)).Inc()
	c.expanded.WithLabelValues(label).Add(float64(stats.Expanded))
	c.generated.WithLabelValues(label).Add(float64(stats.Generated))
	c.rounds.WithLabelValues(label).Add(float64(stats.Rounds))
	c.maxFrontier.WithLabelValues(label).Set(float64(stats.MaxFrontier))
}

// ObserveDuration records how long one supervised run took. outcome is
// "found", "exhausted", "timeout" or "error".
func (c *Collector) ObserveDuration(strategy search.Strategy, outcome string, elapsed time.Duration) {
	c.duration.WithLabelValues(strategy.String(), outcome).Observe(elapsed.Seconds())
}

func outcome(found bool) string {
	if found {
		return "found"
	}
	return "not_found"
}

// WriteText dumps every metric family gathered from g in the Prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("writing metric %s: %w", family.GetName(), err)
		}
	}
	return nil
}
