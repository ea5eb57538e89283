package worker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/report"
)

func TestHandleRenderWritesChartConfig(t *testing.T) {
	dir := t.TempDir()
	w, err := NewChartWorker(dir, nil)
	if err != nil {
		t.Fatalf("new worker: %v", err)
	}

	msg := &amqp.ChartRenderMessage{
		Mode: "weekly",
		From: "2024-01-01",
		To:   "2024-01-31",
		Chart: report.ChartData{
			Labels:   []string{"2023-12-31 - 2024-01-06"},
			Income:   []float64{100},
			Expenses: []float64{40},
		},
	}
	if err := w.HandleRender(msg); err != nil {
		t.Fatalf("handle render: %v", err)
	}

	path := filepath.Join(dir, "chart-weekly-2024-01-01-2024-01-31.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart config: %v", err)
	}

	var cfg struct {
		Type string `json:"type"`
		Data struct {
			Labels   []string `json:"labels"`
			Datasets []struct {
				Label string    `json:"label"`
				Data  []float64 `json:"data"`
			} `json:"datasets"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("decode chart config: %v", err)
	}
	if cfg.Type != "bar" {
		t.Fatalf("expected bar chart for weekly mode, got %q", cfg.Type)
	}
	if len(cfg.Data.Datasets) != 2 || cfg.Data.Datasets[0].Data[0] != 100 {
		t.Fatalf("unexpected datasets %+v", cfg.Data.Datasets)
	}
}

func TestHandleRenderCategoryPie(t *testing.T) {
	dir := t.TempDir()
	w, err := NewChartWorker(dir, nil)
	if err != nil {
		t.Fatalf("new worker: %v", err)
	}

	msg := &amqp.ChartRenderMessage{
		Mode: "category",
		From: "2024-01-01",
		To:   "2024-01-31",
		Chart: report.ChartData{
			Labels: []string{"Food", "Transport"},
			Values: []float64{30, 10},
		},
	}
	if err := w.HandleRender(msg); err != nil {
		t.Fatalf("handle render: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "chart-category-2024-01-01-2024-01-31.json"))
	if err != nil {
		t.Fatalf("read chart config: %v", err)
	}
	var cfg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("decode chart config: %v", err)
	}
	if cfg.Type != "pie" {
		t.Fatalf("expected pie chart for category mode, got %q", cfg.Type)
	}
}
