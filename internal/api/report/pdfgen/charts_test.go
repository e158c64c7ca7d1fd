package reportpdf

import (
	"bytes"
	"image/png"
	"sync"
	"testing"

	reportmodels "netops_reports/internal/api/report/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePNG(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func TestRenderAlertBarChart(t *testing.T) {
	renderer := NewChartRenderer()

	data, err := renderer.RenderAlertBarChart(reportmodels.AlertStats{Total: 5, Active: 2, Resolved: 3})
	require.NoError(t, err)

	width, height := decodePNG(t, data)
	assert.Equal(t, chartWidth, width)
	assert.Equal(t, chartHeight, height)
}

func TestRenderAlertBarChartAllZero(t *testing.T) {
	renderer := NewChartRenderer()

	data, err := renderer.RenderAlertBarChart(reportmodels.AlertStats{})
	require.NoError(t, err)
	decodePNG(t, data)
}

func TestRenderInterventionLineChart(t *testing.T) {
	renderer := NewChartRenderer()

	data, err := renderer.RenderInterventionLineChart(reportmodels.InterventionStats{Total: 3, AverageDuration: 20})
	require.NoError(t, err)

	width, height := decodePNG(t, data)
	assert.Equal(t, chartWidth, width)
	assert.Equal(t, chartHeight, height)
}

func TestRenderInterventionLineChartAllZero(t *testing.T) {
	renderer := NewChartRenderer()

	data, err := renderer.RenderInterventionLineChart(reportmodels.InterventionStats{})
	require.NoError(t, err)
	decodePNG(t, data)
}

func TestRenderMaintenancePieChart(t *testing.T) {
	renderer := NewChartRenderer()

	data, err := renderer.RenderMaintenancePieChart(map[string]int{"battery": 2, "antenna": 1})
	require.NoError(t, err)

	width, height := decodePNG(t, data)
	assert.Equal(t, chartWidth, width)
	assert.Equal(t, chartHeight, height)
}

func TestRenderMaintenancePieChartEmptyUsesPlaceholder(t *testing.T) {
	renderer := NewChartRenderer()

	// No maintenance data still yields a valid chart.
	data, err := renderer.RenderMaintenancePieChart(nil)
	require.NoError(t, err)
	decodePNG(t, data)
}

func TestChartRendererConcurrentUse(t *testing.T) {
	renderer := NewChartRenderer()

	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		_, errs[0] = renderer.RenderAlertBarChart(reportmodels.AlertStats{Total: 2, Active: 1, Resolved: 1})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = renderer.RenderInterventionLineChart(reportmodels.InterventionStats{Total: 3, AverageDuration: 20})
	}()
	go func() {
		defer wg.Done()
		_, errs[2] = renderer.RenderMaintenancePieChart(map[string]int{"fiber": 1})
	}()
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}
