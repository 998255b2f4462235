package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/internal/metrics"
)

func newTestServer(t *testing.T, flags serveFlags) *httptest.Server {
	t.Helper()
	a := &app{tableFormat: "ascii"}
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetErr(io.Discard)
	require.NoError(t, a.setup(cmd))

	handler, err := a.stepHandler(flags)
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestServe_StepsThroughGraph(t *testing.T) {
	srv := newTestServer(t, serveFlags{file: writeProblem(t, diamondGraph), strategy: "bfs"})

	var views []stepView
	for i := 0; i < 10; i++ {
		var view stepView
		require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/next", &view))
		views = append(views, view)
		if view.Done {
			break
		}
	}
	require.Len(t, views, 4)
	assert.Equal(t, "0", views[0].Current)
	assert.Equal(t, []string{"1", "2"}, views[0].Frontier)
	last := views[len(views)-1]
	assert.True(t, last.Found)
	assert.Equal(t, []string{"0", "2", "3"}, last.Path)
	assert.Equal(t, 5.0, last.Cost)

	// switching strategy restarts from the start state
	var init map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/init?strategy=astar", &init))
	assert.Equal(t, "astar", init["strategy"])
	var view stepView
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/next", &view))
	assert.Equal(t, 1, view.Step)
	assert.Equal(t, "astar", view.Strategy)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/init?strategy=ids", &init))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/init?strategy=nope", &init))
}

func TestServe_RandomPuzzleAndMetrics(t *testing.T) {
	srv := newTestServer(t, serveFlags{size: 2})

	var view stepView
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/next", &view))
	assert.Equal(t, "astar", view.Strategy)
	assert.True(t, strings.HasPrefix(view.Current, "["))

	for !view.Done {
		require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/next", &view))
	}
	assert.True(t, view.Found, "every random puzzle is solvable")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `search_runs_total{outcome="found",strategy="astar"} 1`)
	assert.Contains(t, string(body), `search_runs_in_flight{strategy="astar"} 0`)
}

// negativeEdge has a single edge 0->1 whose cost is invalid.
type negativeEdge struct{}

func (negativeEdge) Start() int { return 0 }
func (negativeEdge) IsGoal(state int) bool { return state == 1 }
func (negativeEdge) Successors(state int) []search.Successor[int] {
	if state == 0 {
		return []search.Successor[int]{{State: 1, Cost: -1}}
	}
	return nil
}

func TestServe_CostErrorKeepsFailing(t *testing.T) {
	a := &app{tableFormat: "ascii"}
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetErr(io.Discard)
	require.NoError(t, a.setup(cmd))

	in := instance[int]{name: "broken", problem: negativeEdge{}, heuristic: search.Zero[int], label: strconv.Itoa}
	mux := http.NewServeMux()
	require.NoError(t, register(mux, a, in, search.BestFirstStrategy))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	var view stepView
	assert.Equal(t, http.StatusInternalServerError, getJSON(t, srv.URL+"/next", &view))
	assert.Equal(t, http.StatusInternalServerError, getJSON(t, srv.URL+"/next", &view), "a failed search must not turn into an exhausted one")

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf, a.registry))
	assert.Contains(t, buf.String(), `search_runs_in_flight{strategy="astar"} 0`)
	assert.Contains(t, buf.String(), `search_runs_total{outcome="not_found",strategy="astar"} 1`)
}
