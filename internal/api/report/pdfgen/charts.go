// Package reportpdf renders the report artifacts: the three statistic
// charts and the paginated PDF document.
package reportpdf

import (
	"bytes"
	"fmt"
	"sort"

	reportmodels "netops_reports/internal/api/report/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Raster dimensions of every rendered chart.
const (
	chartWidth  = 500
	chartHeight = 280
)

// Fixed chart colors.
var (
	colorTotal    = drawing.ColorFromHex("4e73df") // blue
	colorActive   = drawing.ColorFromHex("e74a3b") // red
	colorResolved = drawing.ColorFromHex("1cc88a") // green
	colorLine     = drawing.ColorFromHex("36b9cc") // teal
	colorNoData   = drawing.ColorFromHex("d1d3e2") // neutral grey

	pieColors = []drawing.Color{
		drawing.ColorFromHex("4e73df"),
		drawing.ColorFromHex("1cc88a"),
		drawing.ColorFromHex("36b9cc"),
		drawing.ColorFromHex("f6c23e"),
		drawing.ColorFromHex("e74a3b"),
		drawing.ColorFromHex("858796"),
	}
)

// ChartRenderer renders statistic charts to PNG bytes. It holds no
// per-call state and is safe for concurrent use.
type ChartRenderer struct{}

// NewChartRenderer returns the shared rendering handle.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{}
}

// RenderAlertBarChart draws the Total/Active/Resolved bar chart.
func (r *ChartRenderer) RenderAlertBarChart(stats reportmodels.AlertStats) ([]byte, error) {
	maxValue := float64(stats.Total)
	if float64(stats.Active) > maxValue {
		maxValue = float64(stats.Active)
	}
	if float64(stats.Resolved) > maxValue {
		maxValue = float64(stats.Resolved)
	}
	if maxValue == 0 {
		// An all-zero range is rejected by the renderer.
		maxValue = 1
	}

	graph := chart.BarChart{
		Title:    "Alert Statistics",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue},
		},
		Bars: []chart.Value{
			{Value: float64(stats.Total), Label: "Total", Style: barStyle(colorTotal)},
			{Value: float64(stats.Active), Label: "Active", Style: barStyle(colorActive)},
			{Value: float64(stats.Resolved), Label: "Resolved", Style: barStyle(colorResolved)},
		},
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render alert bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderInterventionLineChart draws the two-point intervention series
// (Total, Average Duration). Not a trend chart, the two points only keep
// the chart trio visually consistent.
func (r *ChartRenderer) RenderInterventionLineChart(stats reportmodels.InterventionStats) ([]byte, error) {
	maxValue := float64(stats.Total)
	if stats.AverageDuration > maxValue {
		maxValue = stats.AverageDuration
	}
	if maxValue == 0 {
		maxValue = 1
	}

	graph := chart.Chart{
		Title:  "Intervention Statistics",
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Ticks: []chart.Tick{
				{Value: 0, Label: "Total"},
				{Value: 1, Label: "Avg Duration"},
			},
			Range: &chart.ContinuousRange{Min: -0.2, Max: 1.2},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{float64(stats.Total), stats.AverageDuration},
				Style: chart.Style{
					StrokeColor: colorLine,
					StrokeWidth: 3,
					DotColor:    colorLine,
					DotWidth:    6,
				},
			},
		},
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render intervention line chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderMaintenancePieChart draws one slice per maintenance type. An empty
// byType map renders a single neutral "No Data" slice instead of failing.
func (r *ChartRenderer) RenderMaintenancePieChart(byType map[string]int) ([]byte, error) {
	var values []chart.Value

	if len(byType) == 0 {
		values = []chart.Value{
			{Value: 1, Label: "No Data", Style: chart.Style{FillColor: colorNoData}},
		}
	} else {
		// Stable slice order keeps renders deterministic.
		types := make([]string, 0, len(byType))
		for name := range byType {
			types = append(types, name)
		}
		sort.Strings(types)

		for i, name := range types {
			values = append(values, chart.Value{
				Value: float64(byType[name]),
				Label: fmt.Sprintf("%s (%d)", name, byType[name]),
				Style: chart.Style{FillColor: pieColors[i%len(pieColors)]},
			})
		}
	}

	graph := chart.PieChart{
		Title:  "Maintenance by Type",
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render maintenance pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

func barStyle(color drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   color,
		StrokeColor: color,
		StrokeWidth: 0,
	}
}
