package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/models"
)

// Collections read and written by the application repository
const (
	ApplicationsTable = "applications"
	ApplicationsView  = "vw_applications_list"
)

// ApplicationQuery narrows an application list fetch
type ApplicationQuery struct {
	Status       string
	BusinessType string
	Emails       []string
	SubmittedGte *time.Time
	Limit        int
}

// ApplicationRepository interface defines application data operations
type ApplicationRepository interface {
	List(ctx context.Context, q ApplicationQuery) ([]models.Application, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Create(ctx context.Context, app *models.Application) error
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	Assign(ctx context.Context, id, assignee string, at time.Time) error
}

// applicationRepository implements ApplicationRepository on a datastore client
type applicationRepository struct {
	client datastore.Client
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(client datastore.Client) ApplicationRepository {
	return &applicationRepository{client: client}
}

// List reads the list view, newest submissions first
func (r *applicationRepository) List(ctx context.Context, q ApplicationQuery) ([]models.Application, error) {
	query := datastore.Query{Collection: ApplicationsView, Limit: q.Limit}.
		OrderBy("submitted_at", true)

	if q.Status != "" {
		query = query.Where(datastore.Eq("status", q.Status))
	}
	if q.BusinessType != "" {
		query = query.Where(datastore.Eq("business_type", q.BusinessType))
	}
	if len(q.Emails) > 0 {
		query = query.Where(datastore.In("applicant_email", q.Emails))
	}
	if q.SubmittedGte != nil {
		query = query.Where(datastore.Gte("submitted_at", q.SubmittedGte.UTC()))
	}

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	now := timeNow()
	apps := make([]models.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, applicationFromRow(row, now))
	}
	return apps, nil
}

// GetByID retrieves a single application
func (r *applicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	rows, err := r.client.Query(ctx, datastore.Query{Collection: ApplicationsTable, Limit: 1}.
		Where(datastore.Eq("id", id)))
	if err != nil {
		return nil, fmt.Errorf("failed to get application %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, datastore.NewError(datastore.KindNotFound, ApplicationsTable, "no_rows",
			fmt.Sprintf("application %s not found", id))
	}

	app := applicationFromRow(rows[0], timeNow())
	return &app, nil
}

// Create inserts a new application
func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	row := datastore.Row{
		"id":              app.ID,
		"applicant_name":  app.ApplicantName,
		"applicant_email": app.ApplicantEmail,
		"applicant_phone": app.ApplicantPhone,
		"business_name":   app.BusinessName,
		"business_type":   app.BusinessType,
		"status":          app.Status,
		"notes":           app.Notes,
		"assignee_name":   nullable(app.Assignee),
		"submitted_at":    app.SubmittedAt.UTC(),
		"created_by":      app.CreatedBy,
	}

	if err := r.client.Insert(ctx, ApplicationsTable, row); err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// UpdateStatus sets a new status and stamps the last action time
func (r *applicationRepository) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	err := r.client.Update(ctx, ApplicationsTable, id, datastore.Row{
		"status":         status,
		"last_action_at": at.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to update status of %s: %w", id, err)
	}
	return nil
}

// Assign sets the assignee; an empty name unassigns
func (r *applicationRepository) Assign(ctx context.Context, id, assignee string, at time.Time) error {
	err := r.client.Update(ctx, ApplicationsTable, id, datastore.Row{
		"assignee_name":  nullable(assignee),
		"last_action_at": at.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to assign %s: %w", id, err)
	}
	return nil
}

func applicationFromRow(row datastore.Row, now time.Time) models.Application {
	app := models.Application{
		ID:             rowString(row, "id"),
		ApplicantName:  rowString(row, "applicant_name"),
		ApplicantEmail: rowString(row, "applicant_email"),
		ApplicantPhone: rowString(row, "applicant_phone"),
		BusinessName:   rowString(row, "business_name"),
		BusinessType:   models.NormalizeBusinessType(rowString(row, "business_type")),
		Status:         models.NormalizeStatus(rowString(row, "status")),
		Notes:          rowString(row, "notes"),
		Assignee:       rowString(row, "assignee_name"),
		CreatedBy:      rowString(row, "created_by"),
		LastActionAt:   rowTimePtr(row, "last_action_at"),
	}
	if t, ok := rowTime(row, "submitted_at"); ok {
		app.SubmittedAt = t
	}
	app.Aging = models.AgingDays(app.SubmittedAt, app.LastActionAt, now)
	return app
}
