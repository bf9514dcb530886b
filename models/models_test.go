package models

import (
	"testing"
	"time"
)

// Test ApplicationForm validation
func TestApplicationFormValidation(t *testing.T) {
	validForm := ApplicationForm{
		ApplicantName: "Maria Silva",
		BusinessName:  "Silva Traders",
		BusinessType:  "LLC",
		Email:         "maria@example.com",
	}
	if errs := validForm.Validate(); errs.HasErrors() {
		t.Errorf("Expected no errors for valid form, got: %v", errs)
	}

	invalidForm := ApplicationForm{
		ApplicantName: "",
		BusinessName:  " ",
		Email:         "not-an-email",
	}
	errs := invalidForm.Validate()
	if len(errs) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errs)
	}
	if errs.For("business_name") != "Business name is required" {
		t.Errorf("Unexpected business_name message: %q", errs.For("business_name"))
	}
}

// Test DecisionForm validation and target status
func TestDecisionForm(t *testing.T) {
	tests := []struct {
		name       string
		form       DecisionForm
		wantErrs   int
		wantStatus string
	}{
		{"approve needs no reason", DecisionForm{Decision: DecisionApprove}, 0, StatusApproved},
		{"reject needs reason", DecisionForm{Decision: DecisionReject}, 1, StatusRejected},
		{"reject with known reason", DecisionForm{Decision: DecisionReject, ReasonCode: ReasonCodes[0]}, 0, StatusRejected},
		{"request changes unknown reason", DecisionForm{Decision: DecisionRequestChanges, ReasonCode: "because"}, 1, StatusInReview},
		{"unknown decision", DecisionForm{Decision: "escalate"}, 1, StatusInReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.form.Validate()); got != tt.wantErrs {
				t.Errorf("Expected %d errors, got %d", tt.wantErrs, got)
			}
			if got := tt.form.TargetStatus(); got != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, got)
			}
		})
	}
}

// Test status normalization and badges
func TestStatusBadge(t *testing.T) {
	tests := map[string]string{
		"pending":      "pending",
		"approved":     "approved",
		"REJECTED":     "rejected",
		"in_review":    "review",
		"under_review": "review",
		"escalated":    "review",
	}
	for status, want := range tests {
		app := Application{Status: status}
		if got := app.StatusBadge(); got != want {
			t.Errorf("StatusBadge(%q) = %q, want %q", status, got, want)
		}
	}

	if NormalizeStatus("under_review") != StatusInReview {
		t.Error("Expected under_review to normalize to in-review")
	}
	if IsKnownStatus("escalated") {
		t.Error("Expected escalated to be unknown")
	}
}

// Test aging derivation
func TestAgingDays(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	submitted := now.AddDate(0, 0, -9)
	lastAction := now.Add(-50 * time.Hour)

	if got := AgingDays(submitted, nil, now); got != 9 {
		t.Errorf("Expected 9 days since submission, got %d", got)
	}
	if got := AgingDays(submitted, &lastAction, now); got != 2 {
		t.Errorf("Expected 2 days since last action, got %d", got)
	}
	future := now.Add(time.Hour)
	if got := AgingDays(future, nil, now); got != 0 {
		t.Errorf("Expected aging to never be negative, got %d", got)
	}

	app := Application{Aging: 6}
	if app.AgingBadge() != "critical" {
		t.Errorf("Expected critical badge, got %s", app.AgingBadge())
	}
	app.Aging = 4
	if app.AgingBadge() != "warning" {
		t.Errorf("Expected warning badge, got %s", app.AgingBadge())
	}
}

// Test lenient timestamp parsing
func TestParseTimestamp(t *testing.T) {
	inputs := []string{
		"2024-2-1",
		"2024-02-01T00:00:00Z",
		"2024-02-01 00:00:00",
		"2024-02-01 00:00:00+00:00",
	}
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range inputs {
		got, err := ParseTimestamp(in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) failed: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("Expected error for unparseable timestamp")
	}
}

// Test settings validation
func TestSettingsValidation(t *testing.T) {
	s := DefaultSettings()
	if errs := s.Validate(); errs.HasErrors() {
		t.Errorf("Expected defaults to validate, got: %v", errs)
	}

	s.SystemName = ""
	s.AdminEmail = "admin"
	s.SLAHours = 0
	s.SessionTimeoutMinutes = 4
	errs := s.Validate()
	for _, field := range []string{"system_name", "admin_email", "sla_hours", "session_timeout_minutes"} {
		if errs.For(field) == "" {
			t.Errorf("Expected an error for %s", field)
		}
	}
}

// Test message form and thread filter
func TestMessages(t *testing.T) {
	form := MessageForm{Body: "   ", Visibility: VisibilityInternal}
	if errs := form.Validate(); errs.For("body") == "" {
		t.Error("Expected blank body to be rejected")
	}

	msgs := []Message{
		{ID: "1", VisibleToApplicant: true},
		{ID: "2", VisibleToApplicant: false},
		{ID: "3", VisibleToApplicant: true},
	}
	if got := len(FilterMessages(msgs, VisibilityToApplicant)); got != 2 {
		t.Errorf("Expected 2 applicant-visible messages, got %d", got)
	}
	if got := len(FilterMessages(msgs, VisibilityInternal)); got != 1 {
		t.Errorf("Expected 1 internal message, got %d", got)
	}
	if got := len(FilterMessages(msgs, "all")); got != 3 {
		t.Errorf("Expected all messages, got %d", got)
	}
}

// Test audit entry presentation
func TestAuditEntryPresentation(t *testing.T) {
	known := AuditEntry{ActionType: ActionStatusChanged, Metadata: map[string]any{"new_status": "approved"}}
	if known.ActionLabel() != "Status Changed" {
		t.Errorf("Unexpected label %q", known.ActionLabel())
	}
	if known.MetaString("new_status") != "approved" || known.MetaString("missing") != "" {
		t.Error("Unexpected metadata rendering")
	}
	if known.Actor() != "System" {
		t.Errorf("Expected System actor, got %q", known.Actor())
	}

	unknown := AuditEntry{ActionType: "custom_kind"}
	if unknown.Icon() != "fas fa-info-circle" || unknown.ActionLabel() != "custom_kind" {
		t.Error("Expected defaults for unknown action kinds")
	}
}

// Test days waiting rounding
func TestDaysBetween(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	if got := DaysBetween(now.Add(-25*time.Hour), now); got != 2 {
		t.Errorf("Expected 25h to round up to 2 days, got %d", got)
	}
	if got := DaysBetween(now, now); got != 0 {
		t.Errorf("Expected 0 days, got %d", got)
	}
}

// Test report range handling
func TestReportRanges(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if NormalizeReportRange("bogus") != "30d" {
		t.Error("Expected unknown range to fall back to 30d")
	}
	if got := ReportRangeStart("1y", now); !got.Equal(now.AddDate(-1, 0, 0)) {
		t.Errorf("Unexpected 1y start %v", got)
	}
}
