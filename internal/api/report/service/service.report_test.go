package reportsvc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	monitoringmodels "netops_reports/internal/api/monitoring/models"
	reportdto "netops_reports/internal/api/report/dto"
	reportmodels "netops_reports/internal/api/report/models"
	reportpdf "netops_reports/internal/api/report/pdfgen"
	"netops_reports/internal/common"
	"netops_reports/internal/global"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	global.InitValidator()
	os.Exit(m.Run())
}

type fakeStore struct {
	existsResult bool
	existsErr    error
	insertErr    error

	inserted   *reportmodels.Report
	updates    []bson.M
	findFilter interface{}
	findResult []reportmodels.Report
}

func (f *fakeStore) InsertOne(ctx context.Context, data reportmodels.Report) (reportmodels.Report, error) {
	if f.insertErr != nil {
		return reportmodels.Report{}, f.insertErr
	}
	data.ID = primitive.NewObjectID()
	now := time.Now().UnixMilli()
	data.CreatedAt = now
	data.UpdatedAt = now
	f.inserted = &data
	return data, nil
}

func (f *fakeStore) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]reportmodels.Report, error) {
	f.findFilter = filter
	if f.findResult == nil {
		return []reportmodels.Report{}, nil
	}
	return f.findResult, nil
}

func (f *fakeStore) FindOneById(ctx context.Context, id primitive.ObjectID) (reportmodels.Report, error) {
	if f.inserted != nil && f.inserted.ID == id {
		return *f.inserted, nil
	}
	return reportmodels.Report{}, common.ErrNotFound
}

func (f *fakeStore) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (reportmodels.Report, error) {
	update, ok := data.(bson.M)
	if !ok {
		return reportmodels.Report{}, common.ErrInvalidFormat
	}
	f.updates = append(f.updates, update)

	if f.inserted == nil || f.inserted.ID != id {
		return reportmodels.Report{}, common.ErrNotFound
	}
	if status, ok := update["status"].(string); ok {
		f.inserted.Status = status
	}
	if filePath, ok := update["filePath"].(string); ok {
		f.inserted.FilePath = filePath
	}
	return *f.inserted, nil
}

func (f *fakeStore) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	return f.existsResult, f.existsErr
}

type fakeFetcher struct {
	alerts        []monitoringmodels.AlertRecord
	interventions []monitoringmodels.InterventionRecord
	maintenance   []monitoringmodels.MaintenanceRecord

	alertErr        error
	interventionErr error
	maintenanceErr  error

	calls int
}

func (f *fakeFetcher) FetchAlerts(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]monitoringmodels.AlertRecord, error) {
	f.calls++
	return f.alerts, f.alertErr
}

func (f *fakeFetcher) FetchInterventions(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]monitoringmodels.InterventionRecord, error) {
	f.calls++
	return f.interventions, f.interventionErr
}

func (f *fakeFetcher) FetchMaintenance(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]monitoringmodels.MaintenanceRecord, error) {
	f.calls++
	return f.maintenance, f.maintenanceErr
}

// failingCharts breaks the bar chart render, the other two succeed.
type failingCharts struct {
	*reportpdf.ChartRenderer
}

func (f *failingCharts) RenderAlertBarChart(stats reportmodels.AlertStats) ([]byte, error) {
	return nil, errors.New("render broke")
}

func newTestService(t *testing.T, store *fakeStore, fetcher *fakeFetcher) *ReportService {
	t.Helper()
	return &ReportService{
		store:      store,
		client:     fetcher,
		charts:     reportpdf.NewChartRenderer(),
		documents:  reportpdf.NewDocumentBuilder(),
		reportsDir: t.TempDir(),
	}
}

func validInput() *reportdto.GenerateReportInput {
	return &reportdto.GenerateReportInput{
		SiteID:      "SITE001",
		FromDate:    "2024-01-01",
		ToDate:      "2024-01-31",
		GeneratedBy: "noc-operator",
	}
}

func sampleRecords() ([]monitoringmodels.AlertRecord, []monitoringmodels.InterventionRecord) {
	alerts := []monitoringmodels.AlertRecord{
		{ID: "a1", SiteID: "SITE001", Message: "Power failure", Status: "active", CreatedAt: "2024-01-10T08:00:00Z"},
		{ID: "a2", SiteID: "SITE001", Message: "Link flapping", Status: "resolved", CreatedAt: "2024-01-12T09:00:00Z"},
	}
	interventions := []monitoringmodels.InterventionRecord{
		{ID: "i1", Description: "Fiber splice", Type: "fiber", Duration: 10},
		{ID: "i2", Description: "Generator refuel", Type: "power", Duration: 20},
		{ID: "i3", Description: "Fiber reroute", Type: "fiber", Duration: 30},
	}
	return alerts, interventions
}

func TestGenerateReportHappyPath(t *testing.T) {
	alerts, interventions := sampleRecords()
	store := &fakeStore{}
	fetcher := &fakeFetcher{alerts: alerts, interventions: interventions}
	svc := newTestService(t, store, fetcher)

	result, err := svc.GenerateReport(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 2, result.AlertCount)
	assert.Equal(t, 3, result.InterventionCount)
	assert.Equal(t, 0, result.MaintenanceCount)
	assert.Equal(t, 3, fetcher.calls)

	require.NotNil(t, result.Report)
	assert.Equal(t, reportmodels.ReportStatusComplete, result.Report.Status)
	assert.Equal(t, "summary", result.Report.ReportType)
	assert.Equal(t, 2, result.Report.Data.AlertStats.Total)
	assert.Equal(t, 1, result.Report.Data.AlertStats.Active)
	assert.InDelta(t, 20.0, result.Report.Data.InterventionStats.AverageDuration, 1e-9)

	// The artifact exists and is a PDF.
	data, err := os.ReadFile(result.FilePath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, result.FilePath, result.Report.FilePath)

	name := filepath.Base(result.FilePath)
	assert.Contains(t, name, "report_SITE001_2024-01-01_")
	assert.Contains(t, name, store.inserted.ID.Hex())
}

func TestGenerateReportDefaultsGeneratedBy(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, &fakeFetcher{})

	input := validInput()
	input.GeneratedBy = ""

	result, err := svc.GenerateReport(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, store.inserted)
	assert.Equal(t, "system", store.inserted.GeneratedBy)
	assert.Equal(t, "system", result.Report.GeneratedBy)
}

func TestGenerateReportKeepsExplicitGeneratedBy(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, &fakeFetcher{})

	result, err := svc.GenerateReport(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "noc-operator", result.Report.GeneratedBy)
}

func TestGenerateReportValidationFailure(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{}
	svc := newTestService(t, store, fetcher)

	input := validInput()
	input.SiteID = ""

	_, err := svc.GenerateReport(context.Background(), input)
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
	assert.Zero(t, fetcher.calls)
}

func TestGenerateReportReversedRange(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, &fakeFetcher{})

	input := validInput()
	input.FromDate = "2024-02-01"
	input.ToDate = "2024-01-01"

	_, err := svc.GenerateReport(context.Background(), input)
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "fromDate")
}

func TestGenerateReportBadDateFormat(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, &fakeFetcher{})

	input := validInput()
	input.FromDate = "01/02/2024"

	_, err := svc.GenerateReport(context.Background(), input)
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
}

func TestGenerateReportDuplicatePreCheck(t *testing.T) {
	store := &fakeStore{existsResult: true}
	fetcher := &fakeFetcher{}
	svc := newTestService(t, store, fetcher)

	_, err := svc.GenerateReport(context.Background(), validInput())
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "already exists")
	// Nothing was fetched for a duplicate request.
	assert.Zero(t, fetcher.calls)
}

func TestGenerateReportDuplicateOnInsert(t *testing.T) {
	// Pre-check passed but a concurrent run won the insert race.
	store := &fakeStore{insertErr: common.ErrMongoDuplicate}
	svc := newTestService(t, store, &fakeFetcher{})

	_, err := svc.GenerateReport(context.Background(), validInput())
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "already exists")
}

func TestGenerateReportUpstreamFailure(t *testing.T) {
	upstreamErr := common.NewError(common.ErrCodeUpstream, "upstream service returned status 503: down", common.StatusServiceUnavailable, nil)
	store := &fakeStore{}
	fetcher := &fakeFetcher{alertErr: upstreamErr}
	svc := newTestService(t, store, fetcher)

	_, err := svc.GenerateReport(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, upstreamErr)
	// No report document is persisted when fetching fails.
	assert.Nil(t, store.inserted)
}

func TestGenerateReportRenderFailureMarksFailed(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, &fakeFetcher{})
	svc.charts = &failingCharts{ChartRenderer: reportpdf.NewChartRenderer()}

	_, err := svc.GenerateReport(context.Background(), validInput())
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusInternalServerError, appErr.StatusCode)
	assert.Equal(t, "RND_001", appErr.Code.Code)

	require.NotNil(t, store.inserted)
	assert.Equal(t, reportmodels.ReportStatusFailed, store.inserted.Status)
}

func TestFindByDateRangeFilter(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, &fakeFetcher{})

	fromDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	results, err := svc.FindByDateRange(context.Background(), "SITE001", fromDate, toDate)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)

	filter, ok := store.findFilter.(bson.M)
	require.True(t, ok)
	assert.Equal(t, "SITE001", filter["siteId"])
	assert.Equal(t, bson.M{"$gte": fromDate.UnixMilli()}, filter["fromDate"])
	assert.Equal(t, bson.M{"$lte": toDate.UnixMilli()}, filter["toDate"])
}

func TestFindByDateRangeReversed(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, &fakeFetcher{})

	fromDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.FindByDateRange(context.Background(), "SITE001", fromDate, toDate)
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
}
