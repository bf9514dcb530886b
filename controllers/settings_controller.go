package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/services"
)

// SettingsController handles the system settings page
type SettingsController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewSettingsController creates a new settings controller
func NewSettingsController(services *services.Services, logger *zap.Logger) *SettingsController {
	return &SettingsController{services: services, logger: logger}
}

type settingsPage struct {
	basePage
	Settings *models.Settings
	Errors   models.ValidationErrors
}

// Show handles GET /settings
func (c *SettingsController) Show(w http.ResponseWriter, r *http.Request) {
	page := settingsPage{basePage: newBasePage(r, "Settings", "settings")}

	settings, err := c.services.Settings.Get(r.Context())
	if err != nil {
		c.logger.Warn("failed to load settings", zap.Error(err))
		page.Error = "Failed to load settings: " + err.Error()
		defaults := models.DefaultSettings()
		settings = &defaults
	}
	page.Settings = settings

	renderTemplate(w, "settings.html", page)
}

// Save handles POST /settings
func (c *SettingsController) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Unparseable numbers are left at zero and rejected by validation
	slaHours, _ := strconv.Atoi(r.FormValue("sla_hours"))
	timeout, _ := strconv.Atoi(r.FormValue("session_timeout_minutes"))

	settings := &models.Settings{
		SystemName:            r.FormValue("system_name"),
		AdminEmail:            r.FormValue("admin_email"),
		Timezone:              r.FormValue("timezone"),
		SLAHours:              slaHours,
		AutoAssignment:        r.FormValue("auto_assignment") == "on",
		EmailNotifications:    r.FormValue("email_notifications") == "on",
		SessionTimeoutMinutes: timeout,
	}

	if err := c.services.Settings.Save(r.Context(), settings); err != nil {
		page := settingsPage{basePage: newBasePage(r, "Settings", "settings"), Settings: settings}
		status := http.StatusInternalServerError
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) {
			status = http.StatusBadRequest
			page.Errors = verrs
		} else {
			c.logger.Warn("failed to save settings", zap.Error(err))
			page.Error = "Failed to save settings: " + err.Error()
		}
		renderTemplateWithStatus(w, status, "settings.html", page)
		return
	}

	redirectWith(w, r, "/settings", "success", "Settings saved successfully!")
}
