package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/models"
)

// AuditTable is the append-only audit collection
const AuditTable = "audit_logs"

// AuditQuery narrows an audit trail fetch
type AuditQuery struct {
	ApplicationID string
	ActionType    string
	Actor         string // case-insensitive match on actor name
	Since         *time.Time
	Limit         int
}

// AuditRepository handles audit trail persistence. Entries are never updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	List(ctx context.Context, q AuditQuery) ([]models.AuditEntry, error)
}

type auditRepository struct {
	client datastore.Client
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(client datastore.Client) AuditRepository {
	return &auditRepository{client: client}
}

// Append inserts a new audit entry
func (r *auditRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	metadata := "{}"
	if len(entry.Metadata) > 0 {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode audit metadata: %w", err)
		}
		metadata = string(b)
	}

	row := datastore.Row{
		"id":             entry.ID,
		"application_id": nullable(entry.ApplicationID),
		"business_name":  entry.BusinessName,
		"action_type":    entry.ActionType,
		"actor_id":       entry.ActorID,
		"actor_name":     entry.ActorName,
		"actor_email":    entry.ActorEmail,
		"details":        entry.Details,
		"metadata":       metadata,
		"created_at":     entry.CreatedAt.UTC(),
	}

	if err := r.client.Insert(ctx, AuditTable, row); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// List returns entries newest first
func (r *auditRepository) List(ctx context.Context, q AuditQuery) ([]models.AuditEntry, error) {
	query := datastore.Query{Collection: AuditTable, Limit: q.Limit}.OrderBy("created_at", true)

	if q.ApplicationID != "" {
		query = query.Where(datastore.Eq("application_id", q.ApplicationID))
	}
	if q.ActionType != "" {
		query = query.Where(datastore.Eq("action_type", q.ActionType))
	}
	if q.Actor != "" {
		query = query.Where(datastore.ILike("actor_name", q.Actor))
	}
	if q.Since != nil {
		query = query.Where(datastore.Gte("created_at", q.Since.UTC()))
	}

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]models.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entry := models.AuditEntry{
			ID:            rowString(row, "id"),
			ApplicationID: rowString(row, "application_id"),
			BusinessName:  rowString(row, "business_name"),
			ActionType:    rowString(row, "action_type"),
			ActorID:       rowString(row, "actor_id"),
			ActorName:     rowString(row, "actor_name"),
			ActorEmail:    rowString(row, "actor_email"),
			Details:       rowString(row, "details"),
			Metadata:      rowJSON(row, "metadata"),
		}
		if t, ok := rowTime(row, "created_at"); ok {
			entry.CreatedAt = t
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
