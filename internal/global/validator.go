package global

import (
	"strings"

	"github.com/go-playground/validator/v10"

	reportdto "netops_reports/internal/api/report/dto"
	"netops_reports/internal/utility"
)

// InitValidator initializes the global validator and registers the custom
// validators used by the DTO layer.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("report_type", validateReportType)
}

// validateNoXSS rejects values carrying common script-injection markers.
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateReportType accepts the supported report type values. Empty is
// allowed so the service can apply its default.
func validateReportType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || utility.Contains(reportdto.ReportTypes, value)
}
