package repositories

import (
	"context"
	"fmt"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/models"
)

// MessagesTable holds application message threads
const MessagesTable = "messages"

// MessageRepository interface defines message thread operations
type MessageRepository interface {
	ListByApplication(ctx context.Context, applicationID string) ([]models.Message, error)
	Create(ctx context.Context, msg *models.Message) error
}

type messageRepository struct {
	client datastore.Client
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(client datastore.Client) MessageRepository {
	return &messageRepository{client: client}
}

// ListByApplication returns the thread oldest first
func (r *messageRepository) ListByApplication(ctx context.Context, applicationID string) ([]models.Message, error) {
	rows, err := r.client.Query(ctx, datastore.Query{Collection: MessagesTable}.
		Where(datastore.Eq("application_id", applicationID)).
		OrderBy("created_at", false))
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for %s: %w", applicationID, err)
	}

	messages := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		msg := models.Message{
			ID:                 rowString(row, "id"),
			ApplicationID:      rowString(row, "application_id"),
			Sender:             rowString(row, "sender"),
			Body:               rowString(row, "body"),
			Kind:               rowString(row, "kind"),
			VisibleToApplicant: rowBool(row, "visible_to_applicant"),
		}
		if t, ok := rowTime(row, "created_at"); ok {
			msg.CreatedAt = t
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Create inserts a message
func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	err := r.client.Insert(ctx, MessagesTable, datastore.Row{
		"id":                   msg.ID,
		"application_id":       msg.ApplicationID,
		"sender":               msg.Sender,
		"body":                 msg.Body,
		"kind":                 msg.Kind,
		"visible_to_applicant": msg.VisibleToApplicant,
		"created_at":           msg.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}
