package controllers

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/regdesk/middleware"
	"github.com/blogem/regdesk/services"
	"github.com/blogem/regdesk/userctx"
)

// DashboardController handles dashboard-related requests
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

// Index handles GET /: the landing page when signed out, the dashboard otherwise
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAuthenticated(r) {
		renderTemplate(w, "landing.html", newBasePage(r, "Registration Review Desk", "home"))
		return
	}

	r = r.WithContext(userctx.WithSession(r.Context(), middleware.SessionFromStore(session.GetSession(r))))

	templateData := struct {
		basePage
		Data *services.Dashboard
	}{
		basePage: newBasePage(r, "Dashboard", "dashboard"),
		Data:     c.services.Dashboard.GetDashboard(r.Context()),
	}

	renderTemplate(w, "dashboard.html", templateData)
}
