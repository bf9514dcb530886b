package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blogem/regdesk/export"
	"github.com/blogem/regdesk/listview"
	"github.com/blogem/regdesk/metrics"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/repositories"
)

// Selector keys on the user directory
const (
	SelectorRole = "role"
)

// UserView is the per-session state of a user list
type UserView = listview.View[models.User]

// NewUserView creates empty user list state
func NewUserView() *UserView {
	return listview.NewView(func(u models.User) string { return u.ID })
}

// UserSchema defines the searchable fields and selectors of the user directory
var UserSchema = listview.Schema[models.User]{
	Search: []func(models.User) string{
		func(u models.User) string { return u.Email },
		func(u models.User) string { return u.FullName },
		func(u models.User) string { return u.BusinessName() },
	},
	Selectors: map[string]func(models.User) string{
		SelectorStatus: func(u models.User) string { return u.Status },
		SelectorRole:   func(u models.User) string { return u.Role },
	},
	Date: func(u models.User) time.Time { return u.CreatedAt },
}

// UserFields are the sortable columns of the user directory
var UserFields = []listview.Field[models.User]{
	{Key: "name", Kind: listview.Text, Value: func(u models.User) any { return u.FullName }},
	{Key: "email", Kind: listview.Text, Value: func(u models.User) any { return u.Email }},
	{Key: "status", Kind: listview.Text, Value: func(u models.User) any { return u.Status }},
	{Key: "role", Kind: listview.Text, Value: func(u models.User) any { return u.Role }},
	{Key: "created", Kind: listview.Time, Value: func(u models.User) any { return u.CreatedAt }},
}

// UserColumns is the user export column manifest
var UserColumns = []export.Column[models.User]{
	{Header: "User ID", Value: func(u models.User) any { return u.ID }},
	{Header: "Full Name", Value: func(u models.User) any { return u.FullName }},
	{Header: "Email", Value: func(u models.User) any { return u.Email }},
	{Header: "Phone", Value: func(u models.User) any { return u.Phone }},
	{Header: "Role", Value: func(u models.User) any { return u.Role }},
	{Header: "Status", Value: func(u models.User) any { return u.Status }},
	{Header: "Business Name", Value: func(u models.User) any { return u.BusinessName() }},
	{Header: "Created", Value: func(u models.User) any { return models.FormatDate(u.CreatedAt) }},
	{Header: "Last Login", Value: func(u models.User) any { return u.LastLogin }},
}

// PendingStats are the quick stats of the approval queue
type PendingStats struct {
	Total       int
	WaitingLong int
	InReview    int
}

// PendingUsers is the pending approval page view state
type PendingUsers struct {
	Users []models.User
	// IDs are the selectable rows; empty while sample data is shown
	IDs    []string
	Stats  PendingStats
	Banner *Banner
}

// UserList is what the user directory renders
type UserList struct {
	Page     listview.Page[models.User]
	Criteria listview.Criteria
	Sort     listview.Sort
	Banner   *Banner
}

// UserService interface defines account approval business logic
type UserService interface {
	Pending(ctx context.Context, view *UserView) *PendingUsers
	PendingIDs(view *UserView) []string
	RefreshDirectory(ctx context.Context, view *UserView, c listview.Criteria) bool
	Directory(view *UserView, page int) *UserList
	ExportCSV(view *UserView) (string, []byte)
	Approve(ctx context.Context, id, notes string) error
	Reject(ctx context.Context, id, notes string) error
	BulkApprove(ctx context.Context, ids []string) *BulkResult
	BulkReject(ctx context.Context, ids []string) *BulkResult
}

// userService implements UserService interface
type userService struct {
	userRepo repositories.UserRepository
	appRepo  repositories.ApplicationRepository
	audit    AuditService
	logger   *zap.Logger
	pageSize int
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	appRepo repositories.ApplicationRepository,
	audit AuditService,
	logger *zap.Logger,
	pageSize int,
) UserService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &userService{userRepo: userRepo, appRepo: appRepo, audit: audit, logger: logger, pageSize: pageSize}
}

// Pending loads the approval queue, oldest first, into view. On failure the
// sample queue is returned for display and the view is left empty, so
// nothing from it can be selected.
func (s *userService) Pending(ctx context.Context, view *UserView) *PendingUsers {
	ticket := view.Begin()

	users, err := s.userRepo.List(ctx, repositories.UserQuery{Status: models.UserPending})
	if err == nil {
		s.attachApplications(ctx, users)
	} else {
		logFailure(s.logger, "failed to fetch pending users", err)
	}

	if !view.Commit(ticket, users, err) {
		metrics.RecordStaleFetch()
	}

	rows, err := view.Rows()
	result := &PendingUsers{Users: rows, IDs: view.IDsOf(rows)}
	if err != nil {
		result.Banner = bannerFor(err, "pending users")
		result.Banner.Sample = true
		result.Users = SamplePendingUsers(timeNow())
	}
	result.Stats = pendingStats(result.Users)
	return result
}

// PendingIDs returns the ids of the committed approval queue
func (s *userService) PendingIDs(view *UserView) []string {
	rows, _ := view.Rows()
	return view.IDsOf(rows)
}

// attachApplications fills in the related application summaries by email
func (s *userService) attachApplications(ctx context.Context, users []models.User) {
	emails := make([]string, 0, len(users))
	for _, u := range users {
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
	}
	if len(emails) == 0 {
		return
	}

	apps, err := s.appRepo.List(ctx, repositories.ApplicationQuery{Emails: emails})
	if err != nil {
		logFailure(s.logger, "failed to load applications of pending users", err)
		return
	}

	byEmail := make(map[string][]models.ApplicationSummary)
	for _, a := range apps {
		key := strings.ToLower(a.ApplicantEmail)
		byEmail[key] = append(byEmail[key], models.ApplicationSummary{
			ID:          a.ID,
			Status:      a.Status,
			SubmittedAt: a.SubmittedAt,
		})
	}
	for i := range users {
		users[i].Applications = byEmail[strings.ToLower(users[i].Email)]
	}
}

func pendingStats(users []models.User) PendingStats {
	stats := PendingStats{Total: len(users)}
	for i := range users {
		if users[i].DaysWaiting > 3 {
			stats.WaitingLong++
		}
		if users[i].HasApplicationInReview() {
			stats.InReview++
		}
	}
	return stats
}

// RefreshDirectory fetches all accounts matching the selectors into view
func (s *userService) RefreshDirectory(ctx context.Context, view *UserView, c listview.Criteria) bool {
	ticket := view.BeginWith(c)

	users, err := s.userRepo.List(ctx, repositories.UserQuery{
		Status: c.Selector(SelectorStatus),
		Role:   c.Selector(SelectorRole),
	})
	if err != nil {
		logFailure(s.logger, "failed to fetch users", err)
	}

	if !view.Commit(ticket, users, err) {
		metrics.RecordStaleFetch()
		return false
	}
	return true
}

// Directory derives the requested page of the user directory
func (s *userService) Directory(view *UserView, page int) *UserList {
	rows, err := view.Rows()
	criteria := view.Criteria()
	sort := view.Sort()

	filtered := listview.ApplyFilters(rows, criteria, UserSchema, timeNow())
	return &UserList{
		Page:     listview.Paginate(listview.ApplySort(filtered, sort, UserFields), s.pageSize, page),
		Criteria: criteria,
		Sort:     sort,
		Banner:   bannerFor(err, "users"),
	}
}

// ExportCSV renders the filtered directory in its current order
func (s *userService) ExportCSV(view *UserView) (string, []byte) {
	rows, _ := view.Rows()
	rows = listview.ApplyFilters(rows, view.Criteria(), UserSchema, timeNow())
	rows = listview.ApplySort(rows, view.Sort(), UserFields)
	metrics.RecordExport("users")
	return export.Filename("users", timeNow()), export.CSV(rows, UserColumns)
}

// Approve activates an account
func (s *userService) Approve(ctx context.Context, id, notes string) error {
	return s.setStatus(ctx, id, models.UserActive, notes)
}

// Reject rejects an account
func (s *userService) Reject(ctx context.Context, id, notes string) error {
	return s.setStatus(ctx, id, models.UserRejected, notes)
}

// BulkApprove activates every id
func (s *userService) BulkApprove(ctx context.Context, ids []string) *BulkResult {
	return s.bulk(ctx, ids, models.UserActive)
}

// BulkReject rejects every id
func (s *userService) BulkReject(ctx context.Context, ids []string) *BulkResult {
	return s.bulk(ctx, ids, models.UserRejected)
}

func (s *userService) bulk(ctx context.Context, ids []string, status string) *BulkResult {
	result := &BulkResult{}
	for _, id := range cleanIDs(ids) {
		if err := s.setStatus(ctx, id, status, ""); err != nil {
			logFailure(s.logger, "bulk user update failed", err, zap.String("user_id", id), zap.String("status", status))
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Succeeded++
	}
	return result
}

func (s *userService) setStatus(ctx context.Context, id, status, notes string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	notes = strings.TrimSpace(notes)
	if err := s.userRepo.UpdateStatus(ctx, id, status, notes); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	action, verb := models.ActionUserApproved, "approved"
	if status == models.UserRejected {
		action, verb = models.ActionUserRejected, "rejected"
	}
	metadata := map[string]any{"user_id": user.ID, "old_status": user.Status, "new_status": status}
	if notes != "" {
		metadata["notes"] = notes
	}
	s.audit.Record(ctx, models.AuditEntry{
		BusinessName: user.BusinessName(),
		ActionType:   action,
		Details:      fmt.Sprintf("Account %s %s", user.Email, verb),
		Metadata:     metadata,
	})
	return nil
}
