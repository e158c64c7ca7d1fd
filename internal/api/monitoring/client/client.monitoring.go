// Package monitoringcli implements the read clients for the three upstream
// monitoring services the report pipeline pulls records from.
package monitoringcli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	monitoringmodels "netops_reports/internal/api/monitoring/models"
	"netops_reports/internal/common"
	"netops_reports/internal/logger"
)

// MonitoringClient calls the alert, intervention and maintenance services.
// The zero-value http.Client has no timeout, so a shared 10s client is used
// for every call.
type MonitoringClient struct {
	AlertBaseURL        string
	InterventionBaseURL string
	MaintenanceBaseURL  string

	httpClient *http.Client
}

// NewMonitoringClient builds a client for the three upstream base URLs.
func NewMonitoringClient(alertURL, interventionURL, maintenanceURL string) *MonitoringClient {
	return &MonitoringClient{
		AlertBaseURL:        strings.TrimRight(alertURL, "/"),
		InterventionBaseURL: strings.TrimRight(interventionURL, "/"),
		MaintenanceBaseURL:  strings.TrimRight(maintenanceURL, "/"),
		httpClient:          &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchAlerts returns the alert history of a site within the date range.
func (mc *MonitoringClient) FetchAlerts(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]monitoringmodels.AlertRecord, error) {
	var records []monitoringmodels.AlertRecord
	endpoint := fmt.Sprintf("%s/history/%s", mc.AlertBaseURL, url.PathEscape(siteID))
	if err := mc.fetchJSON(ctx, endpoint, fromDate, toDate, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchInterventions returns the interventions of a site within the range.
func (mc *MonitoringClient) FetchInterventions(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]monitoringmodels.InterventionRecord, error) {
	var records []monitoringmodels.InterventionRecord
	endpoint := fmt.Sprintf("%s/site/%s", mc.InterventionBaseURL, url.PathEscape(siteID))
	if err := mc.fetchJSON(ctx, endpoint, fromDate, toDate, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchMaintenance returns the maintenance records of a site's equipment
// within the range.
func (mc *MonitoringClient) FetchMaintenance(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]monitoringmodels.MaintenanceRecord, error) {
	var records []monitoringmodels.MaintenanceRecord
	endpoint := fmt.Sprintf("%s/equipment/%s", mc.MaintenanceBaseURL, url.PathEscape(siteID))
	if err := mc.fetchJSON(ctx, endpoint, fromDate, toDate, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// fetchJSON performs one upstream GET with fromDate/toDate query params and
// decodes the JSON array response into out. Non-200 answers come back as an
// upstream error carrying the upstream status code and a body excerpt.
func (mc *MonitoringClient) fetchJSON(ctx context.Context, endpoint string, fromDate, toDate time.Time, out interface{}) error {
	log := logger.GetAppLogger()

	query := url.Values{}
	query.Set("fromDate", fromDate.UTC().Format(time.RFC3339))
	query.Set("toDate", toDate.UTC().Format(time.RFC3339))
	fullURL := endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return common.NewError(common.ErrCodeUpstream, fmt.Sprintf("failed to build upstream request: %v", err), common.StatusInternalServerError, nil)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := mc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("url", fullURL).Error("Upstream monitoring call failed")
		return common.NewError(common.ErrCodeUpstream, fmt.Sprintf("upstream service unreachable: %v", err), common.StatusBadGateway, nil)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read the body for the upstream's own error detail.
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.WithFields(map[string]interface{}{
			"url":        fullURL,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("Upstream monitoring service returned an error")
		return common.NewError(
			common.ErrCodeUpstream,
			fmt.Sprintf("upstream service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes))),
			resp.StatusCode,
			nil,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return common.NewError(common.ErrCodeUpstream, fmt.Sprintf("failed to decode upstream response: %v", err), common.StatusBadGateway, nil)
	}

	return nil
}
