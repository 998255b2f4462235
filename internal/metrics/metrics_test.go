package metrics

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/dgraph"
)

func TestCollector_RecordsRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	require.NoError(t, err)

	g, err := dgraph.New([][]float64{{dgraph.NoEdge, 1}, {1, dgraph.NoEdge}}, []int{1})
	require.NoError(t, err)

	_, err = search.BreadthFirst[int](context.Background(), g, search.WithObserver(collector))
	require.NoError(t, err)
	_, err = search.IterativeDeepening[int](context.Background(), g, search.WithObserver(collector))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.runs.WithLabelValues("bfs", "found")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.expanded.WithLabelValues("bfs")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.generated.WithLabelValues("bfs")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.rounds.WithLabelValues("ids")))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.inFlight.WithLabelValues("bfs")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.maxFrontier.WithLabelValues("bfs")))
}

func TestCollector_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	require.Error(t, err)
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	require.NoError(t, err)
	collector.SearchStarted(search.BestFirstStrategy)
	collector.SearchFinished(search.BestFirstStrategy, search.Stats{Expanded: 7, Rounds: 1})
	collector.ObserveDuration(search.BestFirstStrategy, "found", 20*time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	out := buf.String()
	assert.Contains(t, out, `search_states_expanded_total{strategy="astar"} 7`)
	assert.Contains(t, out, `search_runs_total{outcome="not_found",strategy="astar"} 1`)
	assert.Contains(t, out, "search_run_duration_seconds_count")
}
