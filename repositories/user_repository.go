package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/models"
)

// UsersTable holds registered accounts
const UsersTable = "users"

// UserQuery narrows a user fetch
type UserQuery struct {
	Status string
	Role   string
	Limit  int
}

// UserRepository interface defines account operations
type UserRepository interface {
	List(ctx context.Context, q UserQuery) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateStatus(ctx context.Context, id, status, notes string) error
}

type userRepository struct {
	client datastore.Client
}

// NewUserRepository creates a new user repository
func NewUserRepository(client datastore.Client) UserRepository {
	return &userRepository{client: client}
}

// List returns accounts oldest first
func (r *userRepository) List(ctx context.Context, q UserQuery) ([]models.User, error) {
	query := datastore.Query{Collection: UsersTable, Limit: q.Limit}.OrderBy("created_at", false)
	if q.Status != "" {
		query = query.Where(datastore.Eq("status", q.Status))
	}
	if q.Role != "" {
		query = query.Where(datastore.Eq("role", q.Role))
	}

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	now := timeNow()
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row, now))
	}
	return users, nil
}

// GetByID retrieves a single account
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	rows, err := r.client.Query(ctx, datastore.Query{Collection: UsersTable, Limit: 1}.
		Where(datastore.Eq("id", id)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, datastore.NewError(datastore.KindNotFound, UsersTable, "no_rows",
			fmt.Sprintf("user %s not found", id))
	}

	user := userFromRow(rows[0], timeNow())
	return &user, nil
}

// UpdateStatus changes the account status and records verification notes
func (r *userRepository) UpdateStatus(ctx context.Context, id, status, notes string) error {
	patch := datastore.Row{"status": status}
	if notes != "" {
		patch["verification_notes"] = notes
	}
	if err := r.client.Update(ctx, UsersTable, id, patch); err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return nil
}

func userFromRow(row datastore.Row, now time.Time) models.User {
	user := models.User{
		ID:                rowString(row, "id"),
		Email:             rowString(row, "email"),
		FullName:          rowString(row, "full_name"),
		Phone:             rowString(row, "phone"),
		Role:              rowString(row, "role"),
		Status:            rowString(row, "status"),
		VerificationNotes: rowString(row, "verification_notes"),
		LastLogin:         rowTimePtr(row, "last_login"),
	}
	if t, ok := rowTime(row, "created_at"); ok {
		user.CreatedAt = t
		user.DaysWaiting = models.DaysBetween(t, now)
	}
	if name := rowString(row, "business_name"); name != "" {
		user.Profile = &models.BusinessProfile{
			BusinessName:        name,
			BusinessType:        models.NormalizeBusinessType(rowString(row, "business_type")),
			BusinessDescription: rowString(row, "business_description"),
		}
	}
	return user
}
