// Package reportmodels holds the persisted entities of the report domain.
package reportmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Report generation lifecycle states. A report is persisted as pending
// before its PDF exists, then flipped to complete or failed.
const (
	ReportStatusPending  = "pending"
	ReportStatusComplete = "complete"
	ReportStatusFailed   = "failed"
)

// AlertStats counts alerts by lifecycle status. Active and resolved need
// not sum to total when other statuses exist.
type AlertStats struct {
	Total    int `json:"total" bson:"total"`
	Active   int `json:"active" bson:"active"`
	Resolved int `json:"resolved" bson:"resolved"`
}

// InterventionStats aggregates interventions. ByType is derived for the
// PDF but not persisted with the report.
type InterventionStats struct {
	Total           int            `json:"total" bson:"total"`
	AverageDuration float64        `json:"averageDuration" bson:"averageDuration"`
	ByType          map[string]int `json:"byType,omitempty" bson:"-"`
}

// MaintenanceStats aggregates maintenance records by status and type.
type MaintenanceStats struct {
	Total     int            `json:"total" bson:"total"`
	Completed int            `json:"completed" bson:"completed"`
	Scheduled int            `json:"scheduled" bson:"scheduled"`
	ByType    map[string]int `json:"byType" bson:"byType"`
}

// StatsSummary is the aggregate computed from the three upstream record
// sets for one report run.
type StatsSummary struct {
	AlertStats        AlertStats        `json:"alertStats" bson:"alertStats"`
	InterventionStats InterventionStats `json:"interventionStats" bson:"interventionStats"`
	MaintenanceStats  MaintenanceStats  `json:"maintenanceStats" bson:"maintenanceStats"`
}

// ReportData is the statistics payload persisted inside a Report. Only the
// alert stats and the partial intervention stats are stored; maintenance
// details stay in the PDF.
type ReportData struct {
	AlertStats        AlertStats             `json:"alertStats" bson:"alertStats"`
	InterventionStats InterventionStats      `json:"interventionStats" bson:"interventionStats"`
	AdditionalInfo    map[string]interface{} `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
}

// Report is one persisted statistics snapshot for a site and date range
// (stored in the reports collection). The compound unique index on
// siteId + fromDate + toDate + reportType enforces the create-once policy
// at the storage layer.
type Report struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SiteID      string             `json:"siteId" bson:"siteId" index:"single;compound:report_site_range_unique"`
	ReportType  string             `json:"reportType" bson:"reportType" index:"compound:report_site_range_unique"` // summary | daily | weekly | monthly
	FromDate    int64              `json:"fromDate" bson:"fromDate" index:"compound:report_site_range_unique"`     // Unix milliseconds
	ToDate      int64              `json:"toDate" bson:"toDate" index:"compound:report_site_range_unique"`         // Unix milliseconds
	GeneratedAt int64              `json:"generatedAt" bson:"generatedAt"`                                         // Unix milliseconds
	GeneratedBy string             `json:"generatedBy" bson:"generatedBy"`
	Status      string             `json:"status" bson:"status"` // pending | complete | failed
	FilePath    string             `json:"filePath,omitempty" bson:"filePath,omitempty"`
	Data        ReportData         `json:"data" bson:"data"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"` // Unix milliseconds
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"` // Unix milliseconds
}
