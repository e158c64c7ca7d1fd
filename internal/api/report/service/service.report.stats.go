// Package reportsvc implements the report domain services: the statistics
// aggregator and the generation orchestrator.
package reportsvc

import (
	monitoringmodels "netops_reports/internal/api/monitoring/models"
	reportmodels "netops_reports/internal/api/report/models"
)

// unknownType is the bucket for records without a type value.
const unknownType = "unknown"

// AggregateStats computes the statistics summary from the raw record sets.
// Pure function, no I/O. Empty inputs yield all-zero stats with empty
// byType maps.
func AggregateStats(
	alerts []monitoringmodels.AlertRecord,
	interventions []monitoringmodels.InterventionRecord,
	maintenance []monitoringmodels.MaintenanceRecord,
) reportmodels.StatsSummary {
	return reportmodels.StatsSummary{
		AlertStats:        aggregateAlerts(alerts),
		InterventionStats: aggregateInterventions(interventions),
		MaintenanceStats:  aggregateMaintenance(maintenance),
	}
}

// aggregateAlerts counts alerts by status in a single pass. Statuses other
// than active/resolved count only toward the total.
func aggregateAlerts(alerts []monitoringmodels.AlertRecord) reportmodels.AlertStats {
	stats := reportmodels.AlertStats{Total: len(alerts)}
	for _, alert := range alerts {
		switch alert.Status {
		case "active":
			stats.Active++
		case "resolved":
			stats.Resolved++
		}
	}
	return stats
}

// aggregateInterventions accumulates the total, the duration average and
// the per-type counts in a single pass. Missing durations count as zero,
// missing types fall into the "unknown" bucket.
func aggregateInterventions(interventions []monitoringmodels.InterventionRecord) reportmodels.InterventionStats {
	stats := reportmodels.InterventionStats{
		Total:  len(interventions),
		ByType: map[string]int{},
	}

	var durationSum float64
	for _, intervention := range interventions {
		durationSum += intervention.Duration

		interventionType := intervention.Type
		if interventionType == "" {
			interventionType = unknownType
		}
		stats.ByType[interventionType]++
	}

	if stats.Total > 0 {
		stats.AverageDuration = durationSum / float64(stats.Total)
	}

	return stats
}

// aggregateMaintenance counts maintenance records by status and type in a
// single pass.
func aggregateMaintenance(maintenance []monitoringmodels.MaintenanceRecord) reportmodels.MaintenanceStats {
	stats := reportmodels.MaintenanceStats{
		Total:  len(maintenance),
		ByType: map[string]int{},
	}

	for _, record := range maintenance {
		switch record.Status {
		case "completed":
			stats.Completed++
		case "scheduled":
			stats.Scheduled++
		}

		recordType := record.Type
		if recordType == "" {
			recordType = unknownType
		}
		stats.ByType[recordType]++
	}

	return stats
}
