package reportpdf

import (
	"bytes"
	"testing"
	"time"

	monitoringmodels "netops_reports/internal/api/monitoring/models"
	reportmodels "netops_reports/internal/api/report/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderCharts(t *testing.T, summary reportmodels.StatsSummary) ChartSet {
	t.Helper()
	renderer := NewChartRenderer()

	alertBar, err := renderer.RenderAlertBarChart(summary.AlertStats)
	require.NoError(t, err)
	interventionLine, err := renderer.RenderInterventionLineChart(summary.InterventionStats)
	require.NoError(t, err)
	maintenancePie, err := renderer.RenderMaintenancePieChart(summary.MaintenanceStats.ByType)
	require.NoError(t, err)

	return ChartSet{
		AlertBar:         alertBar,
		InterventionLine: interventionLine,
		MaintenancePie:   maintenancePie,
	}
}

func sampleReport() *reportmodels.Report {
	return &reportmodels.Report{
		SiteID:      "SITE001",
		ReportType:  "summary",
		FromDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		ToDate:      time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC).UnixMilli(),
		GeneratedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC).UnixMilli(),
		GeneratedBy: "noc-operator",
		Status:      reportmodels.ReportStatusPending,
	}
}

func TestBuildDocumentPageCount(t *testing.T) {
	summary := reportmodels.StatsSummary{
		AlertStats: reportmodels.AlertStats{Total: 2, Active: 1, Resolved: 1},
		InterventionStats: reportmodels.InterventionStats{
			Total:           3,
			AverageDuration: 20,
			ByType:          map[string]int{"fiber": 2, "power": 1},
		},
		MaintenanceStats: reportmodels.MaintenanceStats{ByType: map[string]int{}},
	}

	input := DocumentInput{
		Report:  sampleReport(),
		Summary: summary,
		Alerts: []monitoringmodels.AlertRecord{
			{ID: "a1", Message: "Power failure", Status: "active", CreatedAt: "2024-01-10T08:00:00Z"},
			{ID: "a2", Message: "Link flapping", Status: "resolved", CreatedAt: "2024-01-12T09:00:00Z", ResolvedAt: "2024-01-12T11:00:00Z"},
		},
		Interventions: []monitoringmodels.InterventionRecord{
			{ID: "i1", Description: "Fiber splice", Type: "fiber", Duration: 10, CreatedAt: "2024-01-11T10:00:00Z"},
			{ID: "i2", Description: "Generator refuel", Type: "power", Duration: 20, CreatedAt: "2024-01-13T10:00:00Z"},
			{ID: "i3", Description: "Fiber reroute", Type: "fiber", Duration: 30, CreatedAt: "2024-01-15T10:00:00Z"},
		},
		Charts: renderCharts(t, summary),
	}

	builder := NewDocumentBuilder()
	pdf, err := builder.buildDocument(input)
	require.NoError(t, err)

	// Summary, charts, alerts, interventions. No maintenance page.
	assert.Equal(t, 4, pdf.PageCount())
}

func TestBuildDocumentSkipsEmptySections(t *testing.T) {
	summary := reportmodels.StatsSummary{
		InterventionStats: reportmodels.InterventionStats{ByType: map[string]int{}},
		MaintenanceStats:  reportmodels.MaintenanceStats{ByType: map[string]int{}},
	}
	input := DocumentInput{
		Report:  sampleReport(),
		Summary: summary,
		Charts:  renderCharts(t, summary),
	}

	builder := NewDocumentBuilder()
	pdf, err := builder.buildDocument(input)
	require.NoError(t, err)

	// Summary and charts only.
	assert.Equal(t, 2, pdf.PageCount())
}

func TestBuildWritesPDFBytes(t *testing.T) {
	summary := reportmodels.StatsSummary{
		AlertStats:        reportmodels.AlertStats{Total: 1, Active: 1},
		InterventionStats: reportmodels.InterventionStats{ByType: map[string]int{}},
		MaintenanceStats:  reportmodels.MaintenanceStats{ByType: map[string]int{}},
	}
	input := DocumentInput{
		Report:  sampleReport(),
		Summary: summary,
		Alerts: []monitoringmodels.AlertRecord{
			{ID: "a1", Status: "active"},
		},
		Charts: renderCharts(t, summary),
	}

	var buf bytes.Buffer
	err := NewDocumentBuilder().Build(input, &buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestBuildDocumentIgnoresMissingExtraImages(t *testing.T) {
	summary := reportmodels.StatsSummary{
		InterventionStats: reportmodels.InterventionStats{ByType: map[string]int{}},
		MaintenanceStats:  reportmodels.MaintenanceStats{ByType: map[string]int{}},
	}
	input := DocumentInput{
		Report:          sampleReport(),
		Summary:         summary,
		Charts:          renderCharts(t, summary),
		ExtraImagePaths: []string{"/nonexistent/logo.png"},
	}

	pdf, err := NewDocumentBuilder().buildDocument(input)
	require.NoError(t, err)
	assert.Equal(t, 2, pdf.PageCount())
}

func TestBuildDocumentPlaceholdersForMissingFields(t *testing.T) {
	assert.Equal(t, "Untitled", titleOrUntitled(""))
	assert.Equal(t, "Power failure", titleOrUntitled("Power failure"))
	assert.Equal(t, "N/A", valueOrNA(""))
	assert.Equal(t, "power outage", valueOrNA("power outage"))
	assert.Equal(t, "N/A", formatDuration(0))
	assert.Equal(t, "45 min", formatDuration(45))
	assert.Equal(t, "N/A", formatDay(0))
	assert.Equal(t, "2024-01-01", formatDay(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC).UnixMilli()))
}

func TestBuildDocumentUntitledRecords(t *testing.T) {
	summary := reportmodels.StatsSummary{
		AlertStats:        reportmodels.AlertStats{Total: 1, Active: 1},
		InterventionStats: reportmodels.InterventionStats{Total: 1, ByType: map[string]int{"fiber": 1}},
		MaintenanceStats:  reportmodels.MaintenanceStats{Total: 1, ByType: map[string]int{"upgrade": 1}},
	}
	input := DocumentInput{
		Report:        sampleReport(),
		Summary:       summary,
		Alerts:        []monitoringmodels.AlertRecord{{ID: "a1", Status: "active"}},
		Interventions: []monitoringmodels.InterventionRecord{{ID: "i1", Type: "fiber"}},
		Maintenance:   []monitoringmodels.MaintenanceRecord{{ID: "m1", Type: "upgrade"}},
		Charts:        renderCharts(t, summary),
	}

	pdf, err := NewDocumentBuilder().buildDocument(input)
	require.NoError(t, err)
	assert.Equal(t, 5, pdf.PageCount())
}
