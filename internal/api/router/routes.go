// Package router wires the HTTP routes of the service.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "netops_reports/internal/api/base/handler"
	reporthdl "netops_reports/internal/api/report/handler"
)

// registerSystemRoutes registers the system operation routes.
func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %v", err)
	}

	router.Get("/health", systemHandler.HandleHealth)

	return nil
}

// registerReportRoutes registers the report domain routes. The static
// date-range and detail paths come before the :siteId wildcard so they
// never get captured by it.
func registerReportRoutes(router fiber.Router) error {
	reportHandler, err := reporthdl.NewReportHandler()
	if err != nil {
		return fmt.Errorf("failed to create report handler: %v", err)
	}

	reports := router.Group("/reports")

	// POST /reports/generate: run the generation pipeline
	reports.Post("/generate", reportHandler.HandleGenerateReport)

	// GET /reports/date-range/:siteId?fromDate=...&toDate=...: reports inside a range
	reports.Get("/date-range/:siteId", reportHandler.HandleGetByDateRange)

	// GET /reports/detail/:id: one report by id
	reports.Get("/detail/:id", reportHandler.HandleGetDetail)

	// GET /reports/:siteId: all reports of a site, newest first
	reports.Get("/:siteId", reportHandler.HandleGetBySite)

	return nil
}

// SetupRoutes sets up every route of the application.
func SetupRoutes(app *fiber.App) error {
	if err := registerSystemRoutes(app); err != nil {
		return fmt.Errorf("failed to register system routes: %v", err)
	}

	if err := registerReportRoutes(app); err != nil {
		return fmt.Errorf("failed to register report routes: %v", err)
	}

	return nil
}
