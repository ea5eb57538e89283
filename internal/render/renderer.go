// Package render hands finished reports to whatever can display them.
// The charting collaborator is optional: when it failed to load, the
// textual renderer takes over and the aggregation results stay fully
// usable.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/report"
)

// ErrRendererUnavailable signals degraded mode: the charting dependency
// did not come up, reports are still served without charts.
var ErrRendererUnavailable = errors.New("chart renderer unavailable")

// Renderer consumes a finished report. The core never renders; it only
// produces the data shapes a renderer needs.
type Renderer interface {
	Render(ctx context.Context, r *report.Report) error
}

// ChartRenderer publishes render payloads to the chart worker.
type ChartRenderer struct {
	client *amqp.Client
}

func NewChartRenderer(client *amqp.Client) *ChartRenderer {
	return &ChartRenderer{client: client}
}

func (c *ChartRenderer) Render(ctx context.Context, r *report.Report) error {
	return c.client.PublishChartRender(ctx, amqp.NewChartRenderMessage(r))
}

// TextRenderer logs the report breakdown. It is the degraded-mode
// fallback and is always available.
type TextRenderer struct {
	logger *slog.Logger
}

func NewTextRenderer(logger *slog.Logger) *TextRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextRenderer{logger: logger}
}

func (t *TextRenderer) Render(ctx context.Context, r *report.Report) error {
	t.logger.InfoContext(ctx, "Report generated",
		"mode", r.Mode.String(),
		"from", r.From.String(),
		"to", r.To.String(),
		"total_income", r.Summary.TotalIncome.String(),
		"total_expenses", r.Summary.TotalExpenses.String(),
		"net_change", r.Summary.NetChange.String(),
		"transactions", r.Summary.TransactionCount)
	for _, g := range r.Groups {
		t.logger.InfoContext(ctx, "Report group",
			"label", g.Label,
			"income", g.Income.String(),
			"expenses", g.Expenses.String(),
			"net", g.Income.Sub(g.Expenses).String())
	}
	for _, c := range r.Categories {
		t.logger.InfoContext(ctx, "Expense category",
			"category", c.Name,
			"total", c.Total.String(),
			"percentage", c.Percentage,
			"transactions", c.Count)
	}
	return nil
}

// Connect makes the single attempt to bring up the charting
// collaborator. An empty URL disables it outright; a failed dial is
// wrapped in ErrRendererUnavailable. Callers fall back to a
// TextRenderer in both cases, there is no retry.
func Connect(url, exchange, queue string) (Renderer, error) {
	if url == "" {
		return nil, ErrRendererUnavailable
	}
	client, err := amqp.NewClient(url, exchange, queue)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererUnavailable, err)
	}
	return NewChartRenderer(client), nil
}
