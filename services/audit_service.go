package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/export"
	"github.com/blogem/regdesk/metrics"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/repositories"
	"github.com/blogem/regdesk/userctx"
)

// Audit trail defaults
const (
	DefaultAuditRange = "7d"
	AuditTrailLimit   = 50
)

// AuditRanges are the time ranges offered on the audit page
var AuditRanges = []struct {
	Key   string
	Label string
}{
	{"1d", "Last 24 Hours"},
	{"7d", "Last 7 Days"},
	{"30d", "Last 30 Days"},
	{"90d", "Last 90 Days"},
	{"all", "All Time"},
}

// AuditFilter holds the audit page filters
type AuditFilter struct {
	Action        string
	Actor         string
	Range         string
	ApplicationID string
}

// AuditTrail is the audit page view state
type AuditTrail struct {
	Entries []models.AuditEntry
	Filter  AuditFilter
	Banner  *Banner
}

// AuditService interface defines audit trail business logic
type AuditService interface {
	Record(ctx context.Context, entry models.AuditEntry)
	Trail(ctx context.Context, f AuditFilter) *AuditTrail
	ForApplication(ctx context.Context, applicationID string) ([]models.AuditEntry, error)
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
	ExportCSV(ctx context.Context, f AuditFilter) (string, []byte, error)
}

// auditService implements AuditService interface
type auditService struct {
	auditRepo repositories.AuditRepository
	logger    *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository, logger *zap.Logger) AuditService {
	return &auditService{auditRepo: auditRepo, logger: logger}
}

// Record appends an entry for an action that already happened. The actor and
// client details are taken from the request context. Failures are logged and
// never reach the caller.
func (s *auditService) Record(ctx context.Context, entry models.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = timeNow().UTC()
	}
	if sess, ok := userctx.GetSession(ctx); ok {
		if entry.ActorID == "" {
			entry.ActorID = sess.UserID
		}
		if entry.ActorName == "" {
			entry.ActorName = sess.DisplayName
		}
		if entry.ActorEmail == "" {
			entry.ActorEmail = sess.Email
		}
	}

	meta := userctx.GetRequestMeta(ctx)
	if meta.IPAddress != "" || meta.UserAgent != "" {
		merged := make(map[string]any, len(entry.Metadata)+2)
		for k, v := range entry.Metadata {
			merged[k] = v
		}
		if meta.IPAddress != "" {
			merged["ip_address"] = meta.IPAddress
		}
		if meta.UserAgent != "" {
			merged["user_agent"] = meta.UserAgent
		}
		entry.Metadata = merged
	}

	if err := s.auditRepo.Append(ctx, &entry); err != nil {
		logFailure(s.logger, "failed to record audit entry", err,
			zap.String("action", entry.ActionType),
			zap.String("application_id", entry.ApplicationID))
	}
}

// Trail returns the filtered audit trail. When the fetch fails the sample
// trail is shown together with a banner.
func (s *auditService) Trail(ctx context.Context, f AuditFilter) *AuditTrail {
	f = normalizeAuditFilter(f)
	trail := &AuditTrail{Filter: f}

	entries, err := s.auditRepo.List(ctx, s.query(f, AuditTrailLimit))
	if err != nil {
		logFailure(s.logger, "failed to load audit trail", err)
		trail.Banner = bannerFor(err, "the audit trail")
		trail.Banner.Sample = true
		trail.Entries = filterSampleAudit(SampleAuditEntries(timeNow()), f)
		return trail
	}

	trail.Entries = entries
	return trail
}

// ForApplication returns the trail of one application, newest first
func (s *auditService) ForApplication(ctx context.Context, applicationID string) ([]models.AuditEntry, error) {
	entries, err := s.auditRepo.List(ctx, repositories.AuditQuery{ApplicationID: applicationID})
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail for %s: %w", applicationID, err)
	}
	return entries, nil
}

// Recent returns the latest entries across all applications
func (s *auditService) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	entries, err := s.auditRepo.List(ctx, repositories.AuditQuery{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}
	return entries, nil
}

// ExportCSV renders the filtered trail (without the page limit) as CSV
func (s *auditService) ExportCSV(ctx context.Context, f AuditFilter) (string, []byte, error) {
	f = normalizeAuditFilter(f)
	entries, err := s.auditRepo.List(ctx, s.query(f, 0))
	if err != nil {
		return "", nil, fmt.Errorf("failed to export audit trail: %w", err)
	}

	subject := "audit_log_all"
	if f.ApplicationID != "" {
		subject = "audit_log_" + f.ApplicationID
	}
	metrics.RecordExport("audit")
	return export.Filename(subject, timeNow()), export.CSV(entries, AuditColumns), nil
}

func (s *auditService) query(f AuditFilter, limit int) repositories.AuditQuery {
	return repositories.AuditQuery{
		ApplicationID: f.ApplicationID,
		ActionType:    f.Action,
		Actor:         f.Actor,
		Since:         auditSince(f.Range, timeNow()),
		Limit:         limit,
	}
}

// AuditColumns is the audit export column manifest
var AuditColumns = []export.Column[models.AuditEntry]{
	{Header: "Timestamp", Value: func(e models.AuditEntry) any { return e.CreatedAt }},
	{Header: "Action", Value: func(e models.AuditEntry) any { return e.ActionLabel() }},
	{Header: "Actor", Value: func(e models.AuditEntry) any { return e.Actor() }},
	{Header: "Actor Email", Value: func(e models.AuditEntry) any { return e.ActorEmail }},
	{Header: "Details", Value: func(e models.AuditEntry) any { return e.Details }},
	{Header: "Application ID", Value: func(e models.AuditEntry) any { return e.ApplicationID }},
	{Header: "Business Name", Value: func(e models.AuditEntry) any { return e.BusinessName }},
	{Header: "IP Address", Value: func(e models.AuditEntry) any { return e.MetaString("ip_address") }},
}

func normalizeAuditFilter(f AuditFilter) AuditFilter {
	known := false
	for _, r := range AuditRanges {
		if r.Key == f.Range {
			known = true
			break
		}
	}
	if !known {
		f.Range = DefaultAuditRange
	}
	if f.Action == "all" {
		f.Action = ""
	}
	return f
}

// auditSince returns the lower bound of an audit range, nil for "all"
func auditSince(key string, now time.Time) *time.Time {
	var since time.Time
	switch key {
	case "1d":
		since = now.Add(-24 * time.Hour)
	case "30d":
		since = now.AddDate(0, 0, -30)
	case "90d":
		since = now.AddDate(0, 0, -90)
	case "all":
		return nil
	default:
		since = now.AddDate(0, 0, -7)
	}
	return &since
}

func filterSampleAudit(entries []models.AuditEntry, f AuditFilter) []models.AuditEntry {
	out := entries[:0:0]
	since := auditSince(f.Range, timeNow())
	for _, e := range entries {
		if f.Action != "" && e.ActionType != f.Action {
			continue
		}
		if f.ApplicationID != "" && e.ApplicationID != f.ApplicationID {
			continue
		}
		if f.Actor != "" && !containsFold(e.ActorName, f.Actor) {
			continue
		}
		if since != nil && e.CreatedAt.Before(*since) {
			continue
		}
		out = append(out, e)
	}
	return out
}
