package reportsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "netops_reports/internal/api/base/service"
	monitoringcli "netops_reports/internal/api/monitoring/client"
	monitoringmodels "netops_reports/internal/api/monitoring/models"
	reportdto "netops_reports/internal/api/report/dto"
	reportmodels "netops_reports/internal/api/report/models"
	reportpdf "netops_reports/internal/api/report/pdfgen"
	"netops_reports/internal/common"
	"netops_reports/internal/global"
	"netops_reports/internal/logger"
	"netops_reports/internal/utility"
)

// reportStore is the persistence surface the orchestrator needs from the
// generic mongo service.
type reportStore interface {
	InsertOne(ctx context.Context, data reportmodels.Report) (reportmodels.Report, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]reportmodels.Report, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (reportmodels.Report, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (reportmodels.Report, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}

// monitoringFetcher pulls the three upstream record sets.
type monitoringFetcher interface {
	FetchAlerts(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]monitoringmodels.AlertRecord, error)
	FetchInterventions(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]monitoringmodels.InterventionRecord, error)
	FetchMaintenance(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]monitoringmodels.MaintenanceRecord, error)
}

// chartRenderer renders the statistic charts to PNG bytes.
type chartRenderer interface {
	RenderAlertBarChart(stats reportmodels.AlertStats) ([]byte, error)
	RenderInterventionLineChart(stats reportmodels.InterventionStats) ([]byte, error)
	RenderMaintenancePieChart(byType map[string]int) ([]byte, error)
}

// documentBuilder assembles the paginated PDF.
type documentBuilder interface {
	Build(input reportpdf.DocumentInput, w io.Writer) error
}

// ReportService orchestrates report generation: validate, fetch, aggregate,
// persist, render, write.
type ReportService struct {
	store       reportStore
	client      monitoringFetcher
	charts      chartRenderer
	documents   documentBuilder
	reportsDir  string
	extraImages []string
}

// NewReportService wires the orchestrator from the registered reports
// collection and the configured upstream endpoints.
func NewReportService() (*ReportService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Reports)
	if !exists {
		return nil, fmt.Errorf("collection %s is not registered", global.MongoDB_ColNames.Reports)
	}

	cfg := global.ServerConfig

	var extraImages []string
	for _, name := range strings.Split(cfg.ExtraImages, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			extraImages = append(extraImages, filepath.Join(cfg.ReportsDir, name))
		}
	}

	return &ReportService{
		store:       basesvc.NewBaseServiceMongo[reportmodels.Report](collection),
		client:      monitoringcli.NewMonitoringClient(cfg.AlertServiceURL, cfg.InterventionServiceURL, cfg.MaintenanceServiceURL),
		charts:      reportpdf.NewChartRenderer(),
		documents:   reportpdf.NewDocumentBuilder(),
		reportsDir:  cfg.ReportsDir,
		extraImages: extraImages,
	}, nil
}

// GenerateReport runs the full pipeline for one report request. The report
// document is persisted as pending before rendering, then flipped to
// complete with its file path, or to failed when rendering or writing the
// PDF breaks.
func (s *ReportService) GenerateReport(ctx context.Context, input *reportdto.GenerateReportInput) (*reportdto.GenerateReportResult, error) {
	log := logger.GetAppLogger()

	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	fromDate, err := reportdto.ParseFromDate(input.FromDate)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("invalid fromDate: %s", input.FromDate), common.StatusBadRequest, nil)
	}
	toDate, err := reportdto.ParseToDate(input.ToDate)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("invalid toDate: %s", input.ToDate), common.StatusBadRequest, nil)
	}
	if fromDate.After(toDate) {
		return nil, common.NewError(common.ErrCodeValidationInput, "fromDate must not be after toDate", common.StatusBadRequest, nil)
	}

	reportType := input.ReportType
	if reportType == "" {
		reportType = "summary"
	}
	generatedBy := input.GeneratedBy
	if generatedBy == "" {
		generatedBy = "system"
	}

	duplicateFilter := bson.M{
		"siteId":     input.SiteID,
		"reportType": reportType,
		"fromDate":   fromDate.UnixMilli(),
		"toDate":     toDate.UnixMilli(),
	}
	exists, err := s.store.DocumentExists(ctx, duplicateFilter)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.NewError(common.ErrCodeBusinessState, "a report for this site, type and date range already exists", common.StatusBadRequest, nil)
	}

	alerts, interventions, maintenance, err := s.fetchRecords(ctx, input.SiteID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	summary := AggregateStats(alerts, interventions, maintenance)

	report := reportmodels.Report{
		SiteID:      input.SiteID,
		ReportType:  reportType,
		FromDate:    fromDate.UnixMilli(),
		ToDate:      toDate.UnixMilli(),
		GeneratedAt: time.Now().UnixMilli(),
		GeneratedBy: generatedBy,
		Status:      reportmodels.ReportStatusPending,
		Data: reportmodels.ReportData{
			AlertStats:        summary.AlertStats,
			InterventionStats: summary.InterventionStats,
			AdditionalInfo: map[string]interface{}{
				"alertCount":        len(alerts),
				"interventionCount": len(interventions),
				"maintenanceCount":  len(maintenance),
			},
		},
	}

	created, err := s.store.InsertOne(ctx, report)
	if err != nil {
		// The unique index backstops the pre-check against concurrent runs.
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.NewError(common.ErrCodeBusinessState, "a report for this site, type and date range already exists", common.StatusBadRequest, nil)
		}
		return nil, err
	}

	filePath, err := s.renderAndWrite(ctx, &created, summary, alerts, interventions, maintenance)
	if err != nil {
		s.markFailed(ctx, created.ID)
		return nil, err
	}

	completed, err := s.store.UpdateById(ctx, created.ID, bson.M{
		"status":   reportmodels.ReportStatusComplete,
		"filePath": filePath,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"siteId":   input.SiteID,
		"reportId": created.ID.Hex(),
		"filePath": filePath,
	}).Info("Report generated")

	return &reportdto.GenerateReportResult{
		Message:           "Report generated successfully",
		FilePath:          filePath,
		Report:            &completed,
		AlertCount:        len(alerts),
		InterventionCount: len(interventions),
		MaintenanceCount:  len(maintenance),
	}, nil
}

// fetchRecords pulls the three upstream record sets concurrently. The first
// error wins, one slow upstream never serializes the others.
func (s *ReportService) fetchRecords(ctx context.Context, siteID string, fromDate, toDate time.Time) (
	[]monitoringmodels.AlertRecord,
	[]monitoringmodels.InterventionRecord,
	[]monitoringmodels.MaintenanceRecord,
	error,
) {
	var (
		alerts        []monitoringmodels.AlertRecord
		interventions []monitoringmodels.InterventionRecord
		maintenance   []monitoringmodels.MaintenanceRecord
		errs          [3]error
		wg            sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		alerts, errs[0] = s.client.FetchAlerts(ctx, siteID, fromDate, toDate)
	}()
	go func() {
		defer wg.Done()
		interventions, errs[1] = s.client.FetchInterventions(ctx, siteID, fromDate, toDate)
	}()
	go func() {
		defer wg.Done()
		maintenance, errs[2] = s.client.FetchMaintenance(ctx, siteID, fromDate, toDate)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return alerts, interventions, maintenance, nil
}

// renderAndWrite renders the charts concurrently, assembles the PDF and
// writes it under the reports directory. Returns the artifact path.
func (s *ReportService) renderAndWrite(
	ctx context.Context,
	report *reportmodels.Report,
	summary reportmodels.StatsSummary,
	alerts []monitoringmodels.AlertRecord,
	interventions []monitoringmodels.InterventionRecord,
	maintenance []monitoringmodels.MaintenanceRecord,
) (string, error) {
	var (
		charts reportpdf.ChartSet
		errs   [3]error
		wg     sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		charts.AlertBar, errs[0] = s.charts.RenderAlertBarChart(summary.AlertStats)
	}()
	go func() {
		defer wg.Done()
		charts.InterventionLine, errs[1] = s.charts.RenderInterventionLineChart(summary.InterventionStats)
	}()
	go func() {
		defer wg.Done()
		charts.MaintenancePie, errs[2] = s.charts.RenderMaintenancePieChart(summary.MaintenanceStats.ByType)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return "", common.NewError(common.ErrCodeRender, err.Error(), common.StatusInternalServerError, nil)
		}
	}

	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", common.NewError(common.ErrCodeRender, fmt.Sprintf("failed to create reports directory: %v", err), common.StatusInternalServerError, nil)
	}

	fileName := fmt.Sprintf("report_%s_%s_%s.pdf",
		utility.SanitizeFileName(report.SiteID),
		time.UnixMilli(report.FromDate).UTC().Format("2006-01-02"),
		report.ID.Hex(),
	)
	filePath := filepath.Join(s.reportsDir, fileName)

	file, err := os.Create(filePath)
	if err != nil {
		return "", common.NewError(common.ErrCodeRender, fmt.Sprintf("failed to create report file: %v", err), common.StatusInternalServerError, nil)
	}
	defer file.Close()

	input := reportpdf.DocumentInput{
		Report:          report,
		Summary:         summary,
		Alerts:          alerts,
		Interventions:   interventions,
		Maintenance:     maintenance,
		Charts:          charts,
		ExtraImagePaths: s.extraImages,
	}
	if err := s.documents.Build(input, file); err != nil {
		// Do not leave a truncated artifact behind.
		file.Close()
		os.Remove(filePath)
		return "", common.NewError(common.ErrCodeRender, err.Error(), common.StatusInternalServerError, nil)
	}

	return filePath, nil
}

// markFailed is the best-effort failure commit point. Its own errors only
// get logged, the pipeline error is what the caller reports.
func (s *ReportService) markFailed(ctx context.Context, id primitive.ObjectID) {
	_, err := s.store.UpdateById(ctx, id, bson.M{"status": reportmodels.ReportStatusFailed})
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithField("reportId", id.Hex()).Error("Failed to mark report as failed")
	}
}

// FindBySite returns every report of a site, newest first.
func (s *ReportService) FindBySite(ctx context.Context, siteID string) ([]reportmodels.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.store.Find(ctx, bson.M{"siteId": siteID}, opts)
}

// FindByDateRange returns the reports of a site whose stored range lies
// entirely inside the query range.
func (s *ReportService) FindByDateRange(ctx context.Context, siteID string, fromDate, toDate time.Time) ([]reportmodels.Report, error) {
	if fromDate.After(toDate) {
		return nil, common.NewError(common.ErrCodeValidationInput, "fromDate must not be after toDate", common.StatusBadRequest, nil)
	}

	filter := bson.M{
		"siteId":   siteID,
		"fromDate": bson.M{"$gte": fromDate.UnixMilli()},
		"toDate":   bson.M{"$lte": toDate.UnixMilli()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "fromDate", Value: 1}})
	return s.store.Find(ctx, filter, opts)
}

// FindById returns one report by its ObjectId.
func (s *ReportService) FindById(ctx context.Context, id primitive.ObjectID) (reportmodels.Report, error) {
	return s.store.FindOneById(ctx, id)
}
