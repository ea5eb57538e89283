package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/report"
)

// ChartRenderMessage carries one finished report to the chart worker.
// The aggregation result is complete in itself; the worker only turns
// the series into a chart config, it never recomputes anything.
type ChartRenderMessage struct {
	Mode        string           `json:"mode"`
	Title       string           `json:"title"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Summary     report.Summary   `json:"summary"`
	Chart       report.ChartData `json:"chart"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// NewChartRenderMessage builds the render payload for a report.
func NewChartRenderMessage(r *report.Report) *ChartRenderMessage {
	return &ChartRenderMessage{
		Mode:        r.Mode.String(),
		Title:       "Financial Report: " + r.From.String() + " to " + r.To.String(),
		From:        r.From.String(),
		To:          r.To.String(),
		Summary:     r.Summary,
		Chart:       r.Chart,
		GeneratedAt: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ChartRenderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChartRenderMessageFromJSON creates a message from JSON bytes.
func ChartRenderMessageFromJSON(data []byte) (*ChartRenderMessage, error) {
	var msg ChartRenderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
