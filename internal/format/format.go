// Package format renders search reports and step traces as tables.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/internal/runner"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// ParseMode accepts "ascii" or "markdown" (also "md").
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "", "ascii", "text":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return ASCII, search.NewConfigError(fmt.Sprintf("unknown table format %q", name), nil)
}

func newWriter(m Mode) table.Writer {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

func render(w table.Writer, m Mode) string {
	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

// Reports renders one row per strategy run.
func Reports[S comparable](m Mode, reports []runner.Report[S]) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Strategy", "Outcome", "Length", "Cost", "Expanded", "Elapsed"})
	for _, report := range reports {
		length, cost := "-", "-"
		if report.Err == nil {
			length = fmt.Sprint(len(report.Result.Path))
			cost = fmt.Sprintf("%g", report.Result.Cost)
		}
		w.AppendRow(table.Row{
			report.Strategy.String(),
			report.Outcome(),
			length,
			cost,
			report.Result.Expanded,
			report.Elapsed.Round(time.Microsecond),
		})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return render(w, m)
}

// Trace renders stepper snapshots, one row per removal. label turns a state
// into its cell text; frontiers longer than maxFrontier are truncated.
func Trace[S comparable](m Mode, snapshots []search.StepSnapshot[S], label func(S) string, maxFrontier int) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Step", "Current", "Frontier", "Expanded", "Generated"})
	for _, snap := range snapshots {
		current := label(snap.Current)
		if snap.Done && !snap.Found {
			current = "(exhausted)"
		}
		w.AppendRow(table.Row{snap.StepIndex, current, joinStates(snap.Frontier, label, maxFrontier), snap.Expanded, snap.Generated})
	}
	return render(w, m)
}

func joinStates[S comparable](states []S, label func(S) string, limit int) string {
	n := len(states)
	if limit > 0 && n > limit {
		n = limit
	}
	parts := make([]string, 0, n+1)
	for _, state := range states[:n] {
		parts = append(parts, label(state))
	}
	if n < len(states) {
		parts = append(parts, fmt.Sprintf("... (+%d)", len(states)-n))
	}
	return strings.Join(parts, " ")
}
