package render

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/report"
)

func TestConnectDisabled(t *testing.T) {
	r, err := Connect("", "fintrack", "chart_render")
	if r != nil {
		t.Fatalf("expected no renderer for empty URL")
	}
	if !errors.Is(err, ErrRendererUnavailable) {
		t.Fatalf("expected ErrRendererUnavailable, got %v", err)
	}
}

func TestTextRendererHandlesAllModes(t *testing.T) {
	tr := NewTextRenderer(nil)
	ts := []core.Transaction{
		{ID: 1, Type: core.Expense, Name: "groceries", Amount: core.Money{Cents: 4000},
			Date: core.MustParseDate("2024-01-03"), Category: "Food"},
	}
	from := core.MustParseDate("2024-01-01")
	to := core.MustParseDate("2024-01-31")

	for _, mode := range []report.Mode{report.Weekly, report.Monthly, report.Category} {
		r, err := report.Generate(ts, from, to, mode)
		if err != nil {
			t.Fatalf("%s: generate: %v", mode, err)
		}
		if err := tr.Render(context.Background(), r); err != nil {
			t.Fatalf("%s: render: %v", mode, err)
		}
	}
}

func TestBuildChartConfigCyclesPalette(t *testing.T) {
	// More categories than palette entries: colors wrap around.
	n := len(pieColors) + 3
	chart := report.ChartData{
		Labels: make([]string, n),
		Values: make([]float64, n),
	}
	cfg := BuildChartConfig("category", chart)
	if cfg.Type != "pie" {
		t.Fatalf("expected pie, got %q", cfg.Type)
	}
	colors, ok := cfg.Data.Datasets[0].BackgroundColor.([]string)
	if !ok || len(colors) != n {
		t.Fatalf("expected %d colors, got %v", n, cfg.Data.Datasets[0].BackgroundColor)
	}
	if colors[0] != colors[len(pieColors)] {
		t.Fatalf("expected palette to cycle")
	}
}
