package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/notify"
	"github.com/blogem/regdesk/repositories"
	"github.com/blogem/regdesk/userctx"
)

// MessageService interface defines the secure message thread logic
type MessageService interface {
	List(ctx context.Context, applicationID, filter string) ([]models.Message, error)
	Send(ctx context.Context, applicationID string, form *models.MessageForm) (*models.Message, error)
}

// messageService implements MessageService interface
type messageService struct {
	messageRepo repositories.MessageRepository
	appRepo     repositories.ApplicationRepository
	audit       AuditService
	settings    SettingsService
	notifier    notify.Notifier
	logger      *zap.Logger
}

// NewMessageService creates a new message service
func NewMessageService(
	messageRepo repositories.MessageRepository,
	appRepo repositories.ApplicationRepository,
	audit AuditService,
	settings SettingsService,
	notifier notify.Notifier,
	logger *zap.Logger,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		appRepo:     appRepo,
		audit:       audit,
		settings:    settings,
		notifier:    notifier,
		logger:      logger,
	}
}

// List returns the thread of an application narrowed by filter
func (s *messageService) List(ctx context.Context, applicationID, filter string) ([]models.Message, error) {
	messages, err := s.messageRepo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return models.FilterMessages(messages, filter), nil
}

// Send posts a reviewer message. Messages visible to the applicant are also emailed.
func (s *messageService) Send(ctx context.Context, applicationID string, form *models.MessageForm) (*models.Message, error) {
	if errs := form.Validate(); errs.HasErrors() {
		return nil, errs
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:                 uuid.NewString(),
		ApplicationID:      app.ID,
		Sender:             userctx.GetDisplayName(ctx),
		Body:               strings.TrimSpace(form.Body),
		Kind:               models.MessageAdmin,
		VisibleToApplicant: form.Visibility == models.VisibilityToApplicant,
		CreatedAt:          timeNow().UTC(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	details := "Internal note added"
	if msg.VisibleToApplicant {
		details = "Message sent to applicant"
	}
	s.audit.Record(ctx, models.AuditEntry{
		ApplicationID: app.ID,
		BusinessName:  app.BusinessName,
		ActionType:    models.ActionMessageSent,
		Details:       details,
		Metadata:      map[string]any{"visibility": form.Visibility, "message_id": msg.ID},
	})

	if msg.VisibleToApplicant && settingsOrDefault(ctx, s.settings, s.logger).EmailNotifications {
		if err := s.notifier.Notify(ctx, notify.MessageNotice(app, msg)); err != nil {
			s.logger.Warn("failed to forward message to applicant", zap.String("application_id", app.ID), zap.Error(err))
		}
	}
	return msg, nil
}
