package monitoringcli

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"netops_reports/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateRange(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	from, err := time.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	to, err := time.Parse("2006-01-02", "2024-01-31")
	require.NoError(t, err)
	return from, to
}

func TestFetchAlerts(t *testing.T) {
	from, to := dateRange(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history/SITE001", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("fromDate"))
		assert.NotEmpty(t, r.URL.Query().Get("toDate"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"a1","siteId":"SITE001","message":"Link down","status":"active","createdAt":"2024-01-05T10:00:00Z"},
			{"id":"a2","siteId":"SITE001","message":"Power restored","status":"resolved","createdAt":"2024-01-08T14:30:00Z","resolvedAt":"2024-01-08T16:00:00Z"}
		]`))
	}))
	defer server.Close()

	client := NewMonitoringClient(server.URL, server.URL, server.URL)
	alerts, err := client.FetchAlerts(context.Background(), "SITE001", from, to)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "active", alerts[0].Status)
	assert.Equal(t, "Power restored", alerts[1].Message)
}

func TestFetchInterventionsPathAndDecoding(t *testing.T) {
	from, to := dateRange(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/site/SITE001", r.URL.Path)
		w.Write([]byte(`[{"id":"i1","description":"Fiber splice","type":"fiber","duration":45,"createdAt":"2024-01-10T09:00:00Z"}]`))
	}))
	defer server.Close()

	client := NewMonitoringClient(server.URL, server.URL, server.URL)
	interventions, err := client.FetchInterventions(context.Background(), "SITE001", from, to)
	require.NoError(t, err)
	require.Len(t, interventions, 1)
	assert.Equal(t, float64(45), interventions[0].Duration)
}

func TestFetchMaintenancePath(t *testing.T) {
	from, to := dateRange(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/equipment/SITE001", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewMonitoringClient(server.URL, server.URL, server.URL)
	records, err := client.FetchMaintenance(context.Background(), "SITE001", from, to)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchSurfacesUpstreamStatus(t *testing.T) {
	from, to := dateRange(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"maintenance window"}`))
	}))
	defer server.Close()

	client := NewMonitoringClient(server.URL, server.URL, server.URL)
	_, err := client.FetchAlerts(context.Background(), "SITE001", from, to)
	require.Error(t, err)

	var customErr *common.Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, http.StatusServiceUnavailable, customErr.StatusCode)
	assert.Contains(t, customErr.Message, "maintenance window")
}

func TestFetchUnreachableUpstream(t *testing.T) {
	from, to := dateRange(t)

	// Closed server: the connection is refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewMonitoringClient(server.URL, server.URL, server.URL)
	_, err := client.FetchAlerts(context.Background(), "SITE001", from, to)
	require.Error(t, err)

	var customErr *common.Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.StatusBadGateway, customErr.StatusCode)
}

func TestFetchInvalidJSON(t *testing.T) {
	from, to := dateRange(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewMonitoringClient(server.URL, server.URL, server.URL)
	_, err := client.FetchMaintenance(context.Background(), "SITE001", from, to)
	require.Error(t, err)

	var customErr *common.Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.StatusBadGateway, customErr.StatusCode)
}
