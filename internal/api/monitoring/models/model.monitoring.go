// Package monitoringmodels holds the read-only record types returned by the
// upstream monitoring services (alerts, interventions, maintenance).
package monitoringmodels

// AlertRecord is one alert event at a site, with an active/resolved
// lifecycle.
type AlertRecord struct {
	ID         string `json:"id"`
	SiteID     string `json:"siteId"`
	Message    string `json:"message"`
	Status     string `json:"status"` // active | resolved | other
	Timestamp  string `json:"timestamp,omitempty"`
	CreatedAt  string `json:"createdAt"`
	ResolvedAt string `json:"resolvedAt,omitempty"`
}

// InterventionRecord is one field-work record tied to a site.
type InterventionRecord struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Type        string  `json:"type,omitempty"`
	Duration    float64 `json:"duration,omitempty"` // minutes
	CreatedAt   string  `json:"createdAt"`
}

// MaintenanceRecord is one equipment-level maintenance activity record.
type MaintenanceRecord struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Status      string `json:"status"` // completed | scheduled | other
	CreatedAt   string `json:"createdAt"`
	CompletedAt string `json:"completedAt,omitempty"`
}
