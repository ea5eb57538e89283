// Package worker implements the chart-rendering consumer: it turns
// finished report payloads into chart config files for the graphing
// library.
package worker

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/amqp"
	"fintrack/internal/render"
)

// ChartWorker consumes render messages and writes one chart config
// JSON per report to the output directory.
type ChartWorker struct {
	outputDir string
	logger    *slog.Logger
}

func NewChartWorker(outputDir string, logger *slog.Logger) (*ChartWorker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create chart output directory: %w", err)
	}
	return &ChartWorker{outputDir: outputDir, logger: logger}, nil
}

// HandleRender renders a single message. Errors are returned so the
// consumer can requeue the delivery.
func (w *ChartWorker) HandleRender(msg *amqp.ChartRenderMessage) error {
	cfg := render.BuildChartConfig(msg.Mode, msg.Chart)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode chart config: %w", err)
	}

	name := fmt.Sprintf("chart-%s-%s-%s.json", msg.Mode, msg.From, msg.To)
	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write chart config: %w", err)
	}

	w.logger.Info("Chart config written",
		"path", path,
		"mode", msg.Mode,
		"series", len(msg.Chart.Labels))
	return nil
}
