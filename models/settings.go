package models

import (
	"strings"
	"time"
)

// Settings holds the system-wide configuration edited on the settings page
type Settings struct {
	SystemName            string    `json:"system_name"`
	AdminEmail            string    `json:"admin_email"`
	Timezone              string    `json:"timezone"`
	SLAHours              int       `json:"sla_hours"`
	AutoAssignment        bool      `json:"auto_assignment"`
	EmailNotifications    bool      `json:"email_notifications"`
	SessionTimeoutMinutes int       `json:"session_timeout_minutes"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings used before anything is saved
func DefaultSettings() Settings {
	return Settings{
		SystemName:            "Registration Review Desk",
		AdminEmail:            "admin@regdesk.local",
		Timezone:              "UTC",
		SLAHours:              72,
		AutoAssignment:        true,
		EmailNotifications:    true,
		SessionTimeoutMinutes: 480,
	}
}

// Validate checks the settings form
func (s *Settings) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(s.SystemName) == "" {
		errs.add("system_name", "System name is required")
	}

	if strings.TrimSpace(s.AdminEmail) == "" {
		errs.add("admin_email", "Admin email is required")
	} else if !isValidEmail(s.AdminEmail) {
		errs.add("admin_email", "Admin email format is invalid")
	}

	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			errs.add("timezone", "Timezone is not recognized")
		}
	}

	if s.SLAHours < 1 {
		errs.add("sla_hours", "SLA hours must be at least 1")
	}

	if s.SessionTimeoutMinutes < 5 {
		errs.add("session_timeout_minutes", "Session timeout must be at least 5 minutes")
	}

	return errs
}
