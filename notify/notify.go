// Package notify emails applicants about decisions and reviewer messages.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/config"
	"github.com/blogem/regdesk/models"
)

// ErrNoRecipient is returned when a notification has no address
var ErrNoRecipient = errors.New("notification has no recipient")

// Notification is one email to an applicant
type Notification struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers notifications
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// SESAPI is the part of the SES client used here
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier sends notifications through Amazon SES
type SESNotifier struct {
	client SESAPI
	from   string
}

// NewSESNotifier creates a notifier using the given SES client
func NewSESNotifier(client SESAPI, from string) *SESNotifier {
	return &SESNotifier{client: client, from: from}
}

// Notify sends the email
func (n *SESNotifier) Notify(ctx context.Context, msg Notification) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrNoRecipient
	}

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body)},
			},
		},
		Source: aws.String(n.from),
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", msg.To, err)
	}
	return nil
}

// LogNotifier only logs notifications
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that writes to the log
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification
func (n *LogNotifier) Notify(_ context.Context, msg Notification) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrNoRecipient
	}
	n.logger.Info("notification",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// New builds the configured notifier
func New(ctx context.Context, cfg config.NotifyConfig, logger *zap.Logger) (Notifier, error) {
	if !cfg.SESEnabled {
		return NewLogNotifier(logger), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSESNotifier(ses.NewFromConfig(awsCfg), cfg.FromEmail), nil
}

// DecisionNotice tells the applicant about a decision on their application
func DecisionNotice(app *models.Application, form *models.DecisionForm) Notification {
	var subject, body string
	switch form.Decision {
	case models.DecisionApprove:
		subject = fmt.Sprintf("Application %s approved", app.ID)
		body = fmt.Sprintf("Dear %s,\n\nYour registration of %s has been approved. Next steps will follow by email.",
			app.ApplicantName, app.BusinessName)
	case models.DecisionReject:
		subject = fmt.Sprintf("Application %s rejected", app.ID)
		body = fmt.Sprintf("Dear %s,\n\nYour registration of %s has been rejected.\nReason: %s",
			app.ApplicantName, app.BusinessName, form.ReasonCode)
	default:
		subject = fmt.Sprintf("Changes requested for application %s", app.ID)
		body = fmt.Sprintf("Dear %s,\n\nWe need changes to your registration of %s before we can continue.\nReason: %s",
			app.ApplicantName, app.BusinessName, form.ReasonCode)
	}
	if strings.TrimSpace(form.Notes) != "" {
		body += "\n\n" + form.Notes
	}
	return Notification{To: app.ApplicantEmail, Subject: subject, Body: body}
}

// MessageNotice forwards a reviewer message to the applicant
func MessageNotice(app *models.Application, msg *models.Message) Notification {
	return Notification{
		To:      app.ApplicantEmail,
		Subject: fmt.Sprintf("New message about application %s", app.ID),
		Body:    fmt.Sprintf("Dear %s,\n\n%s\n\n%s", app.ApplicantName, msg.Body, msg.Sender),
	}
}
