package controllers

import (
	"net/http"
	"net/url"

	"github.com/blogem/regdesk/export"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/services"
)

// AuditController handles the audit log page
type AuditController struct {
	services *services.Services
}

// NewAuditController creates a new audit controller
func NewAuditController(services *services.Services) *AuditController {
	return &AuditController{services: services}
}

func auditFilterFrom(q url.Values) services.AuditFilter {
	return services.AuditFilter{
		Action:        q.Get("action"),
		Actor:         q.Get("actor"),
		Range:         q.Get("range"),
		ApplicationID: q.Get("application"),
	}
}

// Index handles GET /audit
func (c *AuditController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	trail := c.services.Audit.Trail(r.Context(), auditFilterFrom(q))

	templateData := struct {
		basePage
		Trail     *services.AuditTrail
		Actions   []string
		Ranges    []struct{ Key, Label string }
		ExportURL string
	}{
		basePage:  newBasePage(r, "Audit Log", "audit"),
		Trail:     trail,
		Actions:   models.AuditFilterActions,
		ExportURL: withQuery("/audit/export", q),
	}
	for _, rg := range services.AuditRanges {
		templateData.Ranges = append(templateData.Ranges, struct{ Key, Label string }{rg.Key, rg.Label})
	}

	renderTemplate(w, "audit.html", templateData)
}

// Export handles GET /audit/export
func (c *AuditController) Export(w http.ResponseWriter, r *http.Request) {
	filename, body, err := c.services.Audit.ExportCSV(r.Context(), auditFilterFrom(r.URL.Query()))
	if err != nil {
		redirectWith(w, r, withQuery("/audit", r.URL.Query()), "error", "Failed to export audit log: "+err.Error())
		return
	}
	export.Write(w, filename, body)
}
