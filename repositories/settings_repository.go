package repositories

import (
	"context"
	"fmt"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/models"
)

// SettingsTable holds the single settings record
const SettingsTable = "settings"

const settingsID = "default"

// SettingsRepository interface defines settings persistence
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s *models.Settings) error
}

type settingsRepository struct {
	client datastore.Client
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(client datastore.Client) SettingsRepository {
	return &settingsRepository{client: client}
}

// Get loads the settings record; NotFound when it was never saved
func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	rows, err := r.client.Query(ctx, datastore.Query{Collection: SettingsTable, Limit: 1}.
		Where(datastore.Eq("id", settingsID)))
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if len(rows) == 0 {
		return nil, datastore.NewError(datastore.KindNotFound, SettingsTable, "no_rows", "settings not saved yet")
	}

	row := rows[0]
	s := &models.Settings{
		SystemName:            rowString(row, "system_name"),
		AdminEmail:            rowString(row, "admin_email"),
		Timezone:              rowString(row, "timezone"),
		SLAHours:              rowInt(row, "sla_hours"),
		AutoAssignment:        rowBool(row, "auto_assignment"),
		EmailNotifications:    rowBool(row, "email_notifications"),
		SessionTimeoutMinutes: rowInt(row, "session_timeout_minutes"),
	}
	if t, ok := rowTime(row, "updated_at"); ok {
		s.UpdatedAt = t
	}
	return s, nil
}

// Save updates the settings record, creating it on first save
func (r *settingsRepository) Save(ctx context.Context, s *models.Settings) error {
	row := datastore.Row{
		"system_name":             s.SystemName,
		"admin_email":             s.AdminEmail,
		"timezone":                s.Timezone,
		"sla_hours":               s.SLAHours,
		"auto_assignment":         s.AutoAssignment,
		"email_notifications":     s.EmailNotifications,
		"session_timeout_minutes": s.SessionTimeoutMinutes,
		"updated_at":              s.UpdatedAt.UTC(),
	}

	err := r.client.Update(ctx, SettingsTable, settingsID, row)
	if datastore.IsNotFound(err) {
		row["id"] = settingsID
		err = r.client.Insert(ctx, SettingsTable, row)
	}
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
