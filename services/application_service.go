package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/blogem/regdesk/export"
	"github.com/blogem/regdesk/listview"
	"github.com/blogem/regdesk/metrics"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/notify"
	"github.com/blogem/regdesk/repositories"
	"github.com/blogem/regdesk/userctx"
)

// ListOptions sizes the application list
type ListOptions struct {
	PageSize   int
	FetchLimit int
}

// ApplicationDetail is what the detail page renders
type ApplicationDetail struct {
	Application *models.Application
	Messages    []models.Message
	Audit       []models.AuditEntry
	Banner      *Banner
}

// ApplicationService interface defines application review business logic
type ApplicationService interface {
	Refresh(ctx context.Context, view *ApplicationView, c listview.Criteria) bool
	List(view *ApplicationView, page int) *ApplicationList
	VisibleIDs(view *ApplicationView) []string
	ExportCSV(view *ApplicationView) (string, []byte)
	ExportSelected(view *ApplicationView) (string, []byte)
	Detail(ctx context.Context, id, messageFilter string) (*ApplicationDetail, error)
	Create(ctx context.Context, form *models.ApplicationForm) (*models.Application, error)
	Decide(ctx context.Context, id string, form *models.DecisionForm) (*models.Application, error)
	Assign(ctx context.Context, id, assignee string) error
	BulkAssign(ctx context.Context, ids []string, assignee string) (*BulkResult, error)
	BulkMoveToReview(ctx context.Context, ids []string) *BulkResult
}

// applicationService implements ApplicationService interface
type applicationService struct {
	appRepo     repositories.ApplicationRepository
	messageRepo repositories.MessageRepository
	audit       AuditService
	settings    SettingsService
	notifier    notify.Notifier
	logger      *zap.Logger
	opts        ListOptions
}

// NewApplicationService creates a new application service
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	messageRepo repositories.MessageRepository,
	audit AuditService,
	settings SettingsService,
	notifier notify.Notifier,
	logger *zap.Logger,
	opts ListOptions,
) ApplicationService {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = 100
	}
	return &applicationService{
		appRepo:     appRepo,
		messageRepo: messageRepo,
		audit:       audit,
		settings:    settings,
		notifier:    notifier,
		logger:      logger,
		opts:        opts,
	}
}

// Refresh fetches the list for c and commits it to the view. Selected rows
// hidden by the in-memory filters are deselected. It returns false when a
// newer fetch for the same view started in the meantime, in which case the
// result is dropped.
func (s *applicationService) Refresh(ctx context.Context, view *ApplicationView, c listview.Criteria) bool {
	ticket := view.BeginWith(c)

	apps, err := s.appRepo.List(ctx, repositories.ApplicationQuery{
		Status:       c.Selector(SelectorStatus),
		BusinessType: models.NormalizeBusinessType(c.Selector(SelectorType)),
		Limit:        s.opts.FetchLimit,
	})
	if err != nil {
		logFailure(s.logger, "failed to fetch applications", err)
	}

	if !view.Commit(ticket, apps, err) {
		metrics.RecordStaleFetch()
		s.logger.Debug("discarded stale application fetch", zap.Uint64("ticket", uint64(ticket)))
		return false
	}
	view.RetainSelection(s.VisibleIDs(view))
	return true
}

// List derives the requested page from the view's latest result set
func (s *applicationService) List(view *ApplicationView, page int) *ApplicationList {
	rows, err := view.Rows()
	criteria := view.Criteria()
	sort := view.Sort()

	filtered := listview.ApplyFilters(rows, criteria, ApplicationSchema, timeNow())
	sorted := listview.ApplySort(filtered, sort, ApplicationFields)

	return &ApplicationList{
		Page:     listview.Paginate(sorted, s.opts.PageSize, page),
		IDs:      view.IDsOf(filtered),
		Criteria: criteria,
		Sort:     sort,
		Fetched:  len(rows),
		Banner:   bannerFor(err, "applications"),
	}
}

// VisibleIDs returns the ids of the fetched rows that pass the view's filters
func (s *applicationService) VisibleIDs(view *ApplicationView) []string {
	rows, _ := view.Rows()
	return view.IDsOf(listview.ApplyFilters(rows, view.Criteria(), ApplicationSchema, timeNow()))
}

// ExportCSV renders the whole fetched set in fetch order
func (s *applicationService) ExportCSV(view *ApplicationView) (string, []byte) {
	rows, _ := view.Rows()
	metrics.RecordExport("applications")
	return export.Filename("applications", timeNow()), export.CSV(rows, ApplicationColumns)
}

// ExportSelected renders the selected rows in the current sort order
func (s *applicationService) ExportSelected(view *ApplicationView) (string, []byte) {
	rows := listview.ApplySort(view.Selected(), view.Sort(), ApplicationFields)
	metrics.RecordExport("applications_selected")
	return export.Filename("applications_selected", timeNow()), export.CSV(rows, ApplicationColumns)
}

// Detail loads an application with its messages and audit trail and records the view
func (s *applicationService) Detail(ctx context.Context, id, messageFilter string) (*ApplicationDetail, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ApplicationDetail{Application: app}

	var loadErrs []error
	messages, err := s.messageRepo.ListByApplication(ctx, id)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	detail.Messages = models.FilterMessages(messages, messageFilter)

	detail.Audit, err = s.audit.ForApplication(ctx, id)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}

	if err := errors.Join(loadErrs...); err != nil {
		logFailure(s.logger, "failed to load application detail", err, zap.String("application_id", id))
		detail.Banner = bannerFor(loadErrs[0], "part of this application")
	}

	s.audit.Record(ctx, models.AuditEntry{
		ApplicationID: app.ID,
		BusinessName:  app.BusinessName,
		ActionType:    models.ActionApplicationViewed,
		Details:       "Application details viewed",
	})
	return detail, nil
}

// Create validates and stores a new application in pending status
func (s *applicationService) Create(ctx context.Context, form *models.ApplicationForm) (*models.Application, error) {
	if errs := form.Validate(); errs.HasErrors() {
		return nil, errs
	}

	now := timeNow().UTC()
	app := &models.Application{
		ID:             newApplicationID(now),
		ApplicantName:  strings.TrimSpace(form.ApplicantName),
		ApplicantEmail: strings.TrimSpace(form.Email),
		ApplicantPhone: strings.TrimSpace(form.Phone),
		BusinessName:   strings.TrimSpace(form.BusinessName),
		BusinessType:   models.NormalizeBusinessType(form.BusinessType),
		Status:         models.StatusPending,
		Notes:          strings.TrimSpace(form.Notes),
		SubmittedAt:    now,
		CreatedBy:      userctx.GetUserID(ctx),
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.audit.Record(ctx, models.AuditEntry{
		ApplicationID: app.ID,
		BusinessName:  app.BusinessName,
		ActionType:    models.ActionApplicationSubmitted,
		Details:       fmt.Sprintf("Application submitted for %s", app.BusinessName),
	})
	return app, nil
}

// Decide applies a reviewer decision, records it and notifies the applicant
func (s *applicationService) Decide(ctx context.Context, id string, form *models.DecisionForm) (*models.Application, error) {
	if errs := form.Validate(); errs.HasErrors() {
		return nil, errs
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := app.Status
	newStatus := form.TargetStatus()
	now := timeNow().UTC()
	if err := s.appRepo.UpdateStatus(ctx, id, newStatus, now); err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}
	app.Status = newStatus
	app.LastActionAt = &now
	app.Aging = 0

	details := fmt.Sprintf("Status changed from %s to %s", models.StatusLabel(oldStatus), models.StatusLabel(newStatus))
	if form.ReasonCode != "" {
		details += ": " + form.ReasonCode
	}
	metadata := map[string]any{
		"old_status": oldStatus,
		"new_status": newStatus,
		"decision":   form.Decision,
	}
	if form.ReasonCode != "" {
		metadata["reason_code"] = form.ReasonCode
	}
	if notes := strings.TrimSpace(form.Notes); notes != "" {
		metadata["notes"] = notes
	}
	s.audit.Record(ctx, models.AuditEntry{
		ApplicationID: app.ID,
		BusinessName:  app.BusinessName,
		ActionType:    models.ActionStatusChanged,
		Details:       details,
		Metadata:      metadata,
	})

	switch newStatus {
	case models.StatusApproved:
		s.audit.Record(ctx, models.AuditEntry{
			ApplicationID: app.ID,
			BusinessName:  app.BusinessName,
			ActionType:    models.ActionApplicationApproved,
			Details:       "Application approved",
		})
	case models.StatusRejected:
		s.audit.Record(ctx, models.AuditEntry{
			ApplicationID: app.ID,
			BusinessName:  app.BusinessName,
			ActionType:    models.ActionApplicationRejected,
			Details:       "Application rejected: " + form.ReasonCode,
		})
	}

	s.notifyApplicant(ctx, notify.DecisionNotice(app, form))
	return app, nil
}

// Assign sets the reviewer responsible for an application
func (s *applicationService) Assign(ctx context.Context, id, assignee string) error {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return models.ValidationErrors{{Field: "assignee", Message: "Assignee is required"}}
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.appRepo.Assign(ctx, id, assignee, timeNow().UTC()); err != nil {
		return fmt.Errorf("failed to assign application: %w", err)
	}

	s.audit.Record(ctx, models.AuditEntry{
		ApplicationID: app.ID,
		BusinessName:  app.BusinessName,
		ActionType:    models.ActionAssignmentChanged,
		Details:       fmt.Sprintf("Assigned to %s", assignee),
		Metadata: map[string]any{
			"old_assignee": app.AssigneeName(),
			"new_assignee": assignee,
		},
	})
	return nil
}

// BulkAssign assigns every id; failures are collected, not fatal
func (s *applicationService) BulkAssign(ctx context.Context, ids []string, assignee string) (*BulkResult, error) {
	if strings.TrimSpace(assignee) == "" {
		return nil, models.ValidationErrors{{Field: "assignee", Message: "Assignee is required"}}
	}

	result := &BulkResult{}
	for _, id := range cleanIDs(ids) {
		if err := s.Assign(ctx, id, assignee); err != nil {
			logFailure(s.logger, "bulk assign failed", err, zap.String("application_id", id))
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

// BulkMoveToReview moves every id to in-review
func (s *applicationService) BulkMoveToReview(ctx context.Context, ids []string) *BulkResult {
	result := &BulkResult{}
	for _, id := range cleanIDs(ids) {
		if err := s.moveToReview(ctx, id); err != nil {
			logFailure(s.logger, "bulk move to review failed", err, zap.String("application_id", id))
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Succeeded++
	}
	return result
}

func (s *applicationService) moveToReview(ctx context.Context, id string) error {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if models.NormalizeStatus(app.Status) == models.StatusInReview {
		return nil
	}

	if err := s.appRepo.UpdateStatus(ctx, id, models.StatusInReview, timeNow().UTC()); err != nil {
		return err
	}

	s.audit.Record(ctx, models.AuditEntry{
		ApplicationID: app.ID,
		BusinessName:  app.BusinessName,
		ActionType:    models.ActionStatusChanged,
		Details:       fmt.Sprintf("Status changed from %s to %s", models.StatusLabel(app.Status), models.StatusLabel(models.StatusInReview)),
		Metadata: map[string]any{
			"old_status": app.Status,
			"new_status": models.StatusInReview,
		},
	})
	return nil
}

// notifyApplicant sends a notification when enabled in settings. Failures are logged.
func (s *applicationService) notifyApplicant(ctx context.Context, n notify.Notification) {
	if !settingsOrDefault(ctx, s.settings, s.logger).EmailNotifications {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("failed to notify applicant", zap.String("to", n.To), zap.Error(err))
	}
}
