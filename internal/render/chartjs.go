package render

import "fintrack/internal/report"

// Chart.js-style config shapes. The chart worker writes these out as
// JSON for the graphing library to consume directly.
type (
	ChartConfig struct {
		Type    string       `json:"type"`
		Data    ChartPayload `json:"data"`
		Options ChartOptions `json:"options"`
	}

	ChartPayload struct {
		Labels   []string `json:"labels"`
		Datasets []Dataset `json:"datasets"`
	}

	Dataset struct {
		Label           string    `json:"label,omitempty"`
		Data            []float64 `json:"data"`
		BackgroundColor any       `json:"backgroundColor,omitempty"`
		BorderColor     any       `json:"borderColor,omitempty"`
		BorderWidth     int       `json:"borderWidth,omitempty"`
	}

	ChartOptions struct {
		Responsive          bool           `json:"responsive"`
		MaintainAspectRatio bool           `json:"maintainAspectRatio"`
		Scales              map[string]any `json:"scales,omitempty"`
	}
)

var pieColors = []string{
	"rgba(255, 99, 132, 0.2)",
	"rgba(54, 162, 235, 0.2)",
	"rgba(255, 206, 86, 0.2)",
	"rgba(75, 192, 192, 0.2)",
	"rgba(153, 102, 255, 0.2)",
	"rgba(255, 159, 64, 0.2)",
	"rgba(199, 199, 199, 0.2)",
}

var pieBorders = []string{
	"rgba(255, 99, 132, 1)",
	"rgba(54, 162, 235, 1)",
	"rgba(255, 206, 86, 1)",
	"rgba(75, 192, 192, 1)",
	"rgba(153, 102, 255, 1)",
	"rgba(255, 159, 64, 1)",
	"rgba(199, 199, 199, 1)",
}

// BuildChartConfig turns a report's chart series into a renderable
// config: a two-series bar chart for weekly/monthly reports, a pie for
// the category breakdown.
func BuildChartConfig(mode string, chart report.ChartData) ChartConfig {
	if mode == "category" {
		colors := make([]string, len(chart.Values))
		borders := make([]string, len(chart.Values))
		for i := range chart.Values {
			colors[i] = pieColors[i%len(pieColors)]
			borders[i] = pieBorders[i%len(pieBorders)]
		}
		return ChartConfig{
			Type: "pie",
			Data: ChartPayload{
				Labels: chart.Labels,
				Datasets: []Dataset{{
					Data:            chart.Values,
					BackgroundColor: colors,
					BorderColor:     borders,
					BorderWidth:     1,
				}},
			},
			Options: ChartOptions{Responsive: true},
		}
	}

	return ChartConfig{
		Type: "bar",
		Data: ChartPayload{
			Labels: chart.Labels,
			Datasets: []Dataset{
				{
					Label:           "Income",
					Data:            chart.Income,
					BackgroundColor: "rgba(75, 192, 192, 0.2)",
					BorderColor:     "rgba(75, 192, 192, 1)",
					BorderWidth:     1,
				},
				{
					Label:           "Expenses",
					Data:            chart.Expenses,
					BackgroundColor: "rgba(255, 99, 132, 0.2)",
					BorderColor:     "rgba(255, 99, 132, 1)",
					BorderWidth:     1,
				},
			},
		},
		Options: ChartOptions{
			Responsive: true,
			Scales: map[string]any{
				"y": map[string]any{
					"beginAtZero": true,
					"title":       map[string]any{"display": true, "text": "Amount ($)"},
				},
			},
		},
	}
}
