package reportpdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	monitoringmodels "netops_reports/internal/api/monitoring/models"
	reportmodels "netops_reports/internal/api/report/models"

	"github.com/jung-kurt/gofpdf"
)

// Page layout in millimeters (A4 portrait).
const (
	pageMargin   = 15.0
	contentWidth = 180.0
	chartImageW  = 120.0
	chartImageX  = 45.0 // centers a 120mm image on a 210mm page
	footerHeight = 20.0
)

// ChartSet carries the rendered PNG charts embedded in the document.
type ChartSet struct {
	AlertBar         []byte
	InterventionLine []byte
	MaintenancePie   []byte
}

// DocumentInput is everything the builder needs for one report document.
type DocumentInput struct {
	Report          *reportmodels.Report
	Summary         reportmodels.StatsSummary
	Alerts          []monitoringmodels.AlertRecord
	Interventions   []monitoringmodels.InterventionRecord
	Maintenance     []monitoringmodels.MaintenanceRecord
	Charts          ChartSet
	ExtraImagePaths []string
}

// DocumentBuilder builds the paginated report PDF. Stateless, each call
// creates its own document.
type DocumentBuilder struct{}

// NewDocumentBuilder returns the shared builder handle.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{}
}

// Build assembles the document and writes the PDF bytes to w.
func (b *DocumentBuilder) Build(input DocumentInput, w io.Writer) error {
	pdf, err := b.buildDocument(input)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write report document: %w", err)
	}
	return nil
}

// buildDocument lays out all pages. The {nb} alias defers the page total
// so every footer shows the exact final count.
func (b *DocumentBuilder) buildDocument(input DocumentInput) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, footerHeight)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	b.writeSummaryPage(pdf, input)
	b.writeChartsPage(pdf, input)

	if len(input.Alerts) > 0 {
		b.writeAlertSection(pdf, input.Alerts)
	}
	if len(input.Interventions) > 0 {
		b.writeInterventionSection(pdf, input.Interventions)
	}
	if len(input.Maintenance) > 0 {
		b.writeMaintenanceSection(pdf, input.Maintenance)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build report document: %w", err)
	}
	return pdf, nil
}

func (b *DocumentBuilder) writeSummaryPage(pdf *gofpdf.Fpdf, input DocumentInput) {
	report := input.Report
	summary := input.Summary

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Network Operations Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Site %s", report.SiteID), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Report Information", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	b.writeMetaLine(pdf, "Report Type", report.ReportType)
	b.writeMetaLine(pdf, "Period", fmt.Sprintf("%s to %s", formatDay(report.FromDate), formatDay(report.ToDate)))
	b.writeMetaLine(pdf, "Generated By", valueOrNA(report.GeneratedBy))
	b.writeMetaLine(pdf, "Generated At", formatTimestamp(report.GeneratedAt))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Alerts", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	b.writeMetaLine(pdf, "Total", fmt.Sprintf("%d", summary.AlertStats.Total))
	b.writeMetaLine(pdf, "Active", fmt.Sprintf("%d", summary.AlertStats.Active))
	b.writeMetaLine(pdf, "Resolved", fmt.Sprintf("%d", summary.AlertStats.Resolved))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Interventions", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	b.writeMetaLine(pdf, "Total", fmt.Sprintf("%d", summary.InterventionStats.Total))
	b.writeMetaLine(pdf, "Average Duration", fmt.Sprintf("%.1f min", summary.InterventionStats.AverageDuration))
	for _, name := range sortedKeys(summary.InterventionStats.ByType) {
		b.writeMetaLine(pdf, "  "+name, fmt.Sprintf("%d", summary.InterventionStats.ByType[name]))
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Maintenance", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	b.writeMetaLine(pdf, "Total", fmt.Sprintf("%d", summary.MaintenanceStats.Total))
	b.writeMetaLine(pdf, "Completed", fmt.Sprintf("%d", summary.MaintenanceStats.Completed))
	b.writeMetaLine(pdf, "Scheduled", fmt.Sprintf("%d", summary.MaintenanceStats.Scheduled))
	for _, name := range sortedKeys(summary.MaintenanceStats.ByType) {
		b.writeMetaLine(pdf, "  "+name, fmt.Sprintf("%d", summary.MaintenanceStats.ByType[name]))
	}
}

func (b *DocumentBuilder) writeChartsPage(pdf *gofpdf.Fpdf, input DocumentInput) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Statistics Charts", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	b.embedChart(pdf, "chart_alerts", input.Charts.AlertBar)
	b.embedChart(pdf, "chart_interventions", input.Charts.InterventionLine)
	b.embedChart(pdf, "chart_maintenance", input.Charts.MaintenancePie)

	for _, path := range input.ExtraImagePaths {
		if _, err := os.Stat(path); err != nil {
			// Missing supplementary images never block the report.
			continue
		}
		pdf.Ln(4)
		pdf.ImageOptions(path, chartImageX, 0, chartImageW, 0, true, gofpdf.ImageOptions{}, 0, "")
	}
}

// embedChart registers an in-memory PNG and places it in the flow.
func (b *DocumentBuilder) embedChart(pdf *gofpdf.Fpdf, name string, data []byte) {
	if len(data) == 0 {
		return
	}
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
	pdf.ImageOptions(name, chartImageX, 0, chartImageW, 0, true, gofpdf.ImageOptions{}, 0, "")
	pdf.Ln(4)
}

func (b *DocumentBuilder) writeAlertSection(pdf *gofpdf.Fpdf, alerts []monitoringmodels.AlertRecord) {
	pdf.AddPage()
	b.writeSectionHeader(pdf, fmt.Sprintf("Alert Details (%d)", len(alerts)))

	for _, alert := range alerts {
		b.writeRecordTitle(pdf, titleOrUntitled(alert.Message))
		b.writeMetaLine(pdf, "ID", valueOrNA(alert.ID))
		b.writeMetaLine(pdf, "Status", valueOrNA(alert.Status))
		b.writeMetaLine(pdf, "Site", valueOrNA(alert.SiteID))
		b.writeMetaLine(pdf, "Timestamp", valueOrNA(alert.Timestamp))
		b.writeMetaLine(pdf, "Created", valueOrNA(alert.CreatedAt))
		b.writeMetaLine(pdf, "Resolved", valueOrNA(alert.ResolvedAt))
		pdf.Ln(3)
	}
}

func (b *DocumentBuilder) writeInterventionSection(pdf *gofpdf.Fpdf, interventions []monitoringmodels.InterventionRecord) {
	pdf.AddPage()
	b.writeSectionHeader(pdf, fmt.Sprintf("Intervention Details (%d)", len(interventions)))

	for _, intervention := range interventions {
		b.writeRecordTitle(pdf, titleOrUntitled(intervention.Description))
		b.writeMetaLine(pdf, "ID", valueOrNA(intervention.ID))
		b.writeMetaLine(pdf, "Type", valueOrNA(intervention.Type))
		b.writeMetaLine(pdf, "Duration", formatDuration(intervention.Duration))
		b.writeMetaLine(pdf, "Created", valueOrNA(intervention.CreatedAt))
		pdf.Ln(3)
	}
}

func (b *DocumentBuilder) writeMaintenanceSection(pdf *gofpdf.Fpdf, maintenance []monitoringmodels.MaintenanceRecord) {
	pdf.AddPage()
	b.writeSectionHeader(pdf, fmt.Sprintf("Maintenance Details (%d)", len(maintenance)))

	for _, record := range maintenance {
		b.writeRecordTitle(pdf, titleOrUntitled(record.Description))
		b.writeMetaLine(pdf, "ID", valueOrNA(record.ID))
		b.writeMetaLine(pdf, "Type", valueOrNA(record.Type))
		b.writeMetaLine(pdf, "Status", valueOrNA(record.Status))
		b.writeMetaLine(pdf, "Created", valueOrNA(record.CreatedAt))
		b.writeMetaLine(pdf, "Completed", valueOrNA(record.CompletedAt))
		pdf.Ln(3)
	}
}

func (b *DocumentBuilder) writeSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "B", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (b *DocumentBuilder) writeRecordTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(contentWidth, 6, title, "", "L", false)
}

func (b *DocumentBuilder) writeMetaLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(contentWidth-45, 6, value, "", "L", false)
}

// titleOrUntitled is the record-title fallback for a missing message
// or description.
func titleOrUntitled(value string) string {
	if value == "" {
		return "Untitled"
	}
	return value
}

func valueOrNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

// Zero means the upstream omitted the duration field; a genuine
// zero-minute intervention is indistinguishable in the payload.
func formatDuration(minutes float64) string {
	if minutes == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.0f min", minutes)
}

func formatDay(unixMilli int64) string {
	if unixMilli == 0 {
		return "N/A"
	}
	return time.UnixMilli(unixMilli).UTC().Format("2006-01-02")
}

func formatTimestamp(unixMilli int64) string {
	if unixMilli == 0 {
		return "N/A"
	}
	return time.UnixMilli(unixMilli).UTC().Format("2006-01-02 15:04:05 MST")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
