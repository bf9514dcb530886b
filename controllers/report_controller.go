package controllers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/blogem/regdesk/export"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/services"
)

// ReportController handles the reports page
type ReportController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewReportController creates a new report controller
func NewReportController(services *services.Services, logger *zap.Logger) *ReportController {
	return &ReportController{services: services, logger: logger}
}

// Index handles GET /reports
func (c *ReportController) Index(w http.ResponseWriter, r *http.Request) {
	rangeKey := models.NormalizeReportRange(r.URL.Query().Get("range"))

	templateData := struct {
		basePage
		Report *models.Report
		Range  string
		Ranges []struct {
			Key   string
			Label string
		}
	}{
		basePage: newBasePage(r, "Reports", "reports"),
		Range:    rangeKey,
		Ranges:   models.ReportRanges,
	}

	report, err := c.services.Reports.Summary(r.Context(), rangeKey)
	if err != nil {
		c.logger.Warn("failed to build report", zap.String("range", rangeKey), zap.Error(err))
		templateData.Error = "Failed to load report data: " + err.Error()
	}
	templateData.Report = report

	renderTemplate(w, "reports.html", templateData)
}

// Export handles GET /reports/export
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	rangeKey := models.NormalizeReportRange(r.URL.Query().Get("range"))
	filename, body, err := c.services.Reports.ExportCSV(r.Context(), rangeKey)
	if err != nil {
		redirectWith(w, r, "/reports?range="+rangeKey, "error", "Failed to export report: "+err.Error())
		return
	}
	if err := export.Write(w, filename, body); err != nil {
		c.logger.Warn("failed to write export", zap.Error(err))
	}
}
