// Package reporthdl exposes the report domain over HTTP.
package reporthdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "netops_reports/internal/api/base/handler"
	reportdto "netops_reports/internal/api/report/dto"
	reportsvc "netops_reports/internal/api/report/service"
	"netops_reports/internal/common"
	"netops_reports/internal/global"
)

// ReportHandler handles the report endpoints.
type ReportHandler struct {
	service *reportsvc.ReportService
}

// NewReportHandler wires the handler with its service.
func NewReportHandler() (*ReportHandler, error) {
	service, err := reportsvc.NewReportService()
	if err != nil {
		return nil, err
	}
	return &ReportHandler{service: service}, nil
}

// HandleGenerateReport runs the generation pipeline.
// POST /reports/generate
func (h *ReportHandler) HandleGenerateReport(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		input := new(reportdto.GenerateReportInput)
		if err := c.Bind().Body(input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		result, err := h.service.GenerateReport(c.Context(), input)
		return basehdl.HandleResponse(c, result, err, common.StatusCreated)
	})
}

// HandleGetBySite lists the reports of a site, newest first.
// GET /reports/:siteId
func (h *ReportHandler) HandleGetBySite(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		siteID := c.Params("siteId")
		if siteID == "" {
			return basehdl.HandleResponse(c, nil, common.ErrRequiredField)
		}

		reports, err := h.service.FindBySite(c.Context(), siteID)
		return basehdl.HandleResponse(c, reports, err)
	})
}

// HandleGetByDateRange lists the reports of a site whose stored range lies
// inside the query range.
// GET /reports/date-range/:siteId?fromDate=...&toDate=...
func (h *ReportHandler) HandleGetByDateRange(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		siteID := c.Params("siteId")
		if siteID == "" {
			return basehdl.HandleResponse(c, nil, common.ErrRequiredField)
		}

		query := new(reportdto.DateRangeQuery)
		if err := c.Bind().Query(query); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(query); err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"fromDate and toDate query parameters are required",
				common.StatusBadRequest,
				err.Error(),
			))
		}

		fromDate, err := reportdto.ParseFromDate(query.FromDate)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		toDate, err := reportdto.ParseToDate(query.ToDate)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		reports, err := h.service.FindByDateRange(c.Context(), siteID, fromDate, toDate)
		return basehdl.HandleResponse(c, reports, err)
	})
}

// HandleGetDetail returns one report by id.
// GET /reports/detail/:id
func (h *ReportHandler) HandleGetDetail(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		report, err := h.service.FindById(c.Context(), id)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, report, nil)
	})
}
