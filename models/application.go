package models

import (
	"strings"
	"time"
)

// Application statuses
const (
	StatusPending  = "pending"
	StatusInReview = "in-review"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Statuses lists the recognized application statuses in workflow order
var Statuses = []string{StatusPending, StatusInReview, StatusApproved, StatusRejected}

// Business types
const (
	BusinessSoleProprietorship = "sole-proprietorship"
	BusinessPartnership        = "partnership"
	BusinessLLC                = "llc"
	BusinessCorporation        = "corporation"
)

// BusinessTypes lists the recognized business structures
var BusinessTypes = []string{BusinessSoleProprietorship, BusinessPartnership, BusinessLLC, BusinessCorporation}

var businessTypeLabels = map[string]string{
	BusinessSoleProprietorship: "Sole Proprietorship",
	BusinessPartnership:        "Partnership",
	BusinessLLC:                "LLC",
	BusinessCorporation:        "Corporation",
}

// UnassignedLabel is shown for applications without an assignee
const UnassignedLabel = "Unassigned"

// Application represents one business-registration submission
type Application struct {
	ID             string     `json:"id"`
	ApplicantName  string     `json:"applicant_name"`
	ApplicantEmail string     `json:"applicant_email,omitempty"`
	ApplicantPhone string     `json:"applicant_phone,omitempty"`
	BusinessName   string     `json:"business_name"`
	BusinessType   string     `json:"business_type"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	Assignee       string     `json:"assignee,omitempty"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	LastActionAt   *time.Time `json:"last_action_at,omitempty"`
	CreatedBy      string     `json:"created_by,omitempty"`

	// Aging is derived from SubmittedAt/LastActionAt when the record is loaded
	Aging int `json:"aging"`
}

// AssigneeName returns the assignee or the "Unassigned" placeholder
func (a *Application) AssigneeName() string {
	if a.Assignee == "" {
		return UnassignedLabel
	}
	return a.Assignee
}

// StatusBadge returns the badge class for the status.
// Unrecognized statuses fall back to the "review" visual.
func (a *Application) StatusBadge() string {
	switch NormalizeStatus(a.Status) {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "review"
	}
}

// AgingBadge returns "critical" above 5 days, "warning" above 3, else "normal"
func (a *Application) AgingBadge() string {
	switch {
	case a.Aging > 5:
		return "critical"
	case a.Aging > 3:
		return "warning"
	default:
		return "normal"
	}
}

// BusinessTypeLabel returns the display label for the business type
func (a *Application) BusinessTypeLabel() string {
	return BusinessTypeLabel(a.BusinessType)
}

// Stage returns the stepper position: 0 submitted, 1 in review, 2 decided
func (a *Application) Stage() int {
	switch NormalizeStatus(a.Status) {
	case StatusInReview:
		return 1
	case StatusApproved, StatusRejected:
		return 2
	default:
		return 0
	}
}

// AgingDays returns whole days elapsed since the last action (or submission).
// Never negative.
func AgingDays(submittedAt time.Time, lastActionAt *time.Time, now time.Time) int {
	from := submittedAt
	if lastActionAt != nil && !lastActionAt.IsZero() {
		from = *lastActionAt
	}
	if from.IsZero() || now.Before(from) {
		return 0
	}
	return int(now.Sub(from).Hours() / 24)
}

// NormalizeStatus maps the spellings seen in stored data onto the status enum.
// Unknown values are lower-cased and returned as-is.
func NormalizeStatus(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "in_review", "under_review", "in review", "review", "in-review":
		return StatusInReview
	}
	return v
}

// IsKnownStatus reports whether s normalizes to one of Statuses
func IsKnownStatus(s string) bool {
	n := NormalizeStatus(s)
	for _, st := range Statuses {
		if st == n {
			return true
		}
	}
	return false
}

// NormalizeBusinessType maps labels ("Sole Proprietorship", "LLC") onto slugs
func NormalizeBusinessType(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("_", "-", " ", "-").Replace(v)
	return v
}

// BusinessTypeLabel returns the display label for a business type slug
func BusinessTypeLabel(s string) string {
	if label, ok := businessTypeLabels[NormalizeBusinessType(s)]; ok {
		return label
	}
	return s
}

// StatusLabel returns the display label for a status
func StatusLabel(s string) string {
	switch NormalizeStatus(s) {
	case StatusPending:
		return "Pending"
	case StatusInReview:
		return "In Review"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	}
	return s
}

// ApplicationForm represents form data for creating an application
type ApplicationForm struct {
	ApplicantName string
	BusinessName  string
	BusinessType  string
	Email         string
	Phone         string
	Notes         string
}

// Validate performs the required-field checks done before any remote call
func (f *ApplicationForm) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(f.ApplicantName) == "" {
		errs.add("applicant_name", "Applicant name is required")
	} else if len(f.ApplicantName) > 100 {
		errs.add("applicant_name", "Applicant name must be less than 100 characters")
	}

	if strings.TrimSpace(f.BusinessName) == "" {
		errs.add("business_name", "Business name is required")
	} else if len(f.BusinessName) > 200 {
		errs.add("business_name", "Business name must be less than 200 characters")
	}

	if f.BusinessType != "" {
		known := false
		for _, bt := range BusinessTypes {
			if bt == NormalizeBusinessType(f.BusinessType) {
				known = true
			}
		}
		if !known {
			errs.add("business_type", "Business type is not recognized")
		}
	}

	if f.Email != "" && !isValidEmail(f.Email) {
		errs.add("email", "Email format is invalid")
	}

	return errs
}

// Decisions available on the decision panel
const (
	DecisionApprove        = "approve"
	DecisionReject         = "reject"
	DecisionRequestChanges = "request-changes"
)

// ReasonCodes are the fixed reasons offered for rejections and change requests
var ReasonCodes = []string{
	"Document Issues - Blurry/Unreadable",
	"Document Issues - Cropped",
	"Document Issues - Missing Page",
	"Document Issues - Expired",
	"Data Mismatch - Name mismatch",
	"Data Mismatch - Address mismatch",
	"Data Mismatch - ID number mismatch",
	"Compliance - Sanctions/PEP hit",
	"Compliance - Additional due diligence required",
	"Incomplete application",
}

// DecisionForm represents a reviewer decision
type DecisionForm struct {
	Decision   string
	ReasonCode string
	Notes      string
}

// Validate checks the decision and, for negative outcomes, the reason code
func (f *DecisionForm) Validate() ValidationErrors {
	var errs ValidationErrors

	switch f.Decision {
	case DecisionApprove:
		return errs
	case DecisionReject, DecisionRequestChanges:
	default:
		errs.add("decision", "Decision must be approve, reject or request-changes")
		return errs
	}

	if f.ReasonCode == "" {
		errs.add("reason_code", "A reason code is required")
		return errs
	}

	known := false
	for _, code := range ReasonCodes {
		if code == f.ReasonCode {
			known = true
			break
		}
	}
	if !known {
		errs.add("reason_code", "Reason code is not recognized")
	}

	return errs
}

// TargetStatus returns the status an application moves to for this decision
func (f *DecisionForm) TargetStatus() string {
	switch f.Decision {
	case DecisionApprove:
		return StatusApproved
	case DecisionReject:
		return StatusRejected
	default:
		return StatusInReview
	}
}
