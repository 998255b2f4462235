package format_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/internal/format"
	"github.com/pdrpinto/search/internal/runner"
)

func sampleReports() []runner.Report[int] {
	return []runner.Report[int]{
		{
			Strategy: search.BreadthFirstStrategy,
			Result:   search.Result[int]{Path: []int{0, 2, 3}, Cost: 5, Expanded: 4, Found: true},
			Elapsed:  1500 * time.Microsecond,
		},
		{
			Strategy: search.IterativeDeepeningStrategy,
			Result:   search.Result[int]{Expanded: 12},
			Err:      fmt.Errorf("ids search: %w", search.ErrNoPath),
		},
		{
			Strategy: search.BestFirstStrategy,
			Err:      context.DeadlineExceeded,
			TimedOut: true,
		},
	}
}

func TestReports_ASCII(t *testing.T) {
	out := format.Reports(format.ASCII, sampleReports())
	assert.Contains(t, out, "───", "ASCII mode uses box-drawing characters")
	assert.Contains(t, strings.ToLower(out), "strategy")

	lines := strings.Split(out, "\n")
	var bfs, ids, astar string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "bfs"):
			bfs = line
		case strings.Contains(line, "ids"):
			ids = line
		case strings.Contains(line, "astar"):
			astar = line
		}
	}
	require.NotEmpty(t, bfs)
	assert.Contains(t, bfs, "found")
	assert.Contains(t, bfs, "1.5ms")
	assert.Contains(t, ids, "exhausted")
	assert.Contains(t, ids, "12")
	assert.Contains(t, astar, "timeout")
}

func TestReports_Markdown(t *testing.T) {
	out := format.Reports(format.Markdown, sampleReports())
	assert.Contains(t, out, "| bfs")
	assert.Contains(t, out, "---")
	assert.NotContains(t, out, "───")
}

func TestTrace(t *testing.T) {
	snapshots := []search.StepSnapshot[int]{
		{Current: 0, Frontier: []int{1, 2, 3, 4}, Expanded: 1, Generated: 4, StepIndex: 1},
		{Current: 4, Done: true, Found: true, Expanded: 2, Generated: 4, StepIndex: 2, Path: []int{0, 4}},
	}
	out := format.Trace(format.Markdown, snapshots, func(s int) string { return fmt.Sprintf("n%d", s) }, 2)
	assert.Contains(t, out, "n1 n2 ... (+2)")
	assert.Contains(t, out, "n4")

	exhausted := []search.StepSnapshot[int]{{Done: true, StepIndex: 3}}
	assert.Contains(t, format.Trace(format.ASCII, exhausted, strconv.Itoa, 0), "(exhausted)")
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]format.Mode{"": format.ASCII, "ASCII": format.ASCII, "md": format.Markdown, "markdown": format.Markdown} {
		got, err := format.ParseMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := format.ParseMode("html")
	var configErr *search.ConfigError
	require.ErrorAs(t, err, &configErr)
}
