// Package reportdto holds the request/response DTOs of the report domain.
package reportdto

import (
	"strings"
	"time"

	reportmodels "netops_reports/internal/api/report/models"
)

// DateOnlyFormat is the bare date layout accepted alongside RFC3339.
const DateOnlyFormat = "2006-01-02"

// ReportTypes lists the supported report type values.
var ReportTypes = []string{"summary", "daily", "weekly", "monthly"}

// GenerateReportInput is the body of POST /reports/generate.
type GenerateReportInput struct {
	SiteID      string `json:"siteId" validate:"required,no_xss"`
	FromDate    string `json:"fromDate" validate:"required"`
	ToDate      string `json:"toDate" validate:"required"`
	ReportType  string `json:"reportType,omitempty" validate:"omitempty,report_type"`
	GeneratedBy string `json:"generatedBy,omitempty" validate:"omitempty,no_xss"`
}

// DateRangeQuery is the query of GET /reports/date-range/:siteId.
type DateRangeQuery struct {
	FromDate string `query:"fromDate" validate:"required"`
	ToDate   string `query:"toDate" validate:"required"`
}

// GenerateReportResult is the success payload of a generation run.
type GenerateReportResult struct {
	Message           string               `json:"message"`
	FilePath          string               `json:"filePath"`
	Report            *reportmodels.Report `json:"report"`
	AlertCount        int                  `json:"alertCount"`
	InterventionCount int                  `json:"interventionCount"`
	MaintenanceCount  int                  `json:"maintenanceCount"`
}

// ParseFromDate parses a range start. Accepts RFC3339 timestamps and bare
// YYYY-MM-DD dates, which start at midnight UTC.
func ParseFromDate(value string) (time.Time, error) {
	return parseFlexible(value, false)
}

// ParseToDate parses a range end. A bare YYYY-MM-DD date is extended to
// 23:59:59.999 of that day so the whole day is included.
func ParseToDate(value string) (time.Time, error) {
	return parseFlexible(value, true)
}

func parseFlexible(value string, endOfDay bool) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(DateOnlyFormat, value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t, nil
}
