package models

import (
	"fmt"
	"time"
)

// Audit action kinds
const (
	ActionApplicationSubmitted = "application_submitted"
	ActionDocumentUploaded     = "document_uploaded"
	ActionDocumentUpdated      = "document_updated"
	ActionApplicationViewed    = "application_viewed"
	ActionStatusChanged        = "status_changed"
	ActionMessageSent          = "message_sent"
	ActionApplicationApproved  = "application_approved"
	ActionApplicationRejected  = "application_rejected"
	ActionAssignmentChanged    = "assignment_changed"
	ActionCommentAdded         = "comment_added"
	ActionDocumentReviewed     = "document_reviewed"
	ActionSystemEvent          = "system_event"
	ActionUserApproved         = "user_approved"
	ActionUserRejected         = "user_rejected"
)

type actionInfo struct {
	label string
	icon  string
	color string
}

var actionCatalog = map[string]actionInfo{
	ActionApplicationSubmitted: {"Application Submitted", "fas fa-file-plus", "#10b981"},
	ActionDocumentUploaded:     {"Document Uploaded", "fas fa-upload", "#3b82f6"},
	ActionDocumentUpdated:      {"Document Updated", "fas fa-sync", "#f59e0b"},
	ActionApplicationViewed:    {"Application Viewed", "fas fa-eye", "#6b7280"},
	ActionStatusChanged:        {"Status Changed", "fas fa-exchange-alt", "#8b5cf6"},
	ActionMessageSent:          {"Message Sent", "fas fa-envelope", "#06b6d4"},
	ActionApplicationApproved:  {"Application Approved", "fas fa-check-circle", "#10b981"},
	ActionApplicationRejected:  {"Application Rejected", "fas fa-times-circle", "#ef4444"},
	ActionAssignmentChanged:    {"Assignment Changed", "fas fa-user-tag", "#f59e0b"},
	ActionCommentAdded:         {"Comment Added", "fas fa-comment", "#84cc16"},
	ActionDocumentReviewed:     {"Document Reviewed", "fas fa-file-check", "#10b981"},
	ActionSystemEvent:          {"System Event", "fas fa-cog", "#6b7280"},
	ActionUserApproved:         {"User Approved", "fas fa-user-check", "#10b981"},
	ActionUserRejected:         {"User Rejected", "fas fa-user-times", "#ef4444"},
}

// AuditFilterActions are the action kinds offered in the audit filter dropdown
var AuditFilterActions = []string{
	ActionApplicationSubmitted,
	ActionDocumentUploaded,
	ActionStatusChanged,
	ActionMessageSent,
	ActionApplicationViewed,
	ActionApplicationApproved,
	ActionApplicationRejected,
}

// AuditEntry is one append-only record of an action taken against an
// application or the system.
type AuditEntry struct {
	ID            string         `json:"id"`
	ApplicationID string         `json:"application_id,omitempty"`
	BusinessName  string         `json:"business_name,omitempty"`
	ActionType    string         `json:"action_type"`
	ActorID       string         `json:"actor_id,omitempty"`
	ActorName     string         `json:"actor_name,omitempty"`
	ActorEmail    string         `json:"actor_email,omitempty"`
	Details       string         `json:"details,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ActionLabel returns the human readable action, or the raw kind when unknown
func (e *AuditEntry) ActionLabel() string {
	return ActionLabel(e.ActionType)
}

// Icon returns the icon class for the action kind
func (e *AuditEntry) Icon() string {
	if info, ok := actionCatalog[e.ActionType]; ok {
		return info.icon
	}
	return "fas fa-info-circle"
}

// Color returns the timeline color for the action kind
func (e *AuditEntry) Color() string {
	if info, ok := actionCatalog[e.ActionType]; ok {
		return info.color
	}
	return "#6b7280"
}

// Actor returns the actor display name, "System" when none recorded
func (e *AuditEntry) Actor() string {
	if e.ActorName == "" {
		return "System"
	}
	return e.ActorName
}

// MetaString returns a metadata value rendered as text, "" when absent
func (e *AuditEntry) MetaString(key string) string {
	v, ok := e.Metadata[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// ActionLabel returns the label of an action kind
func ActionLabel(kind string) string {
	if info, ok := actionCatalog[kind]; ok {
		return info.label
	}
	return kind
}

// TimeAgo renders a relative timestamp the way the activity feed shows it
func TimeAgo(then, now time.Time) string {
	diff := now.Sub(then)
	mins := int(diff.Minutes())
	hours := mins / 60
	days := hours / 24

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	}
	return FormatDate(then)
}
