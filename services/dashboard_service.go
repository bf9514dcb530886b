package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/repositories"
)

// Dashboard list sizes
const (
	DashboardPendingLimit  = 10
	DashboardActivityLimit = 8
)

// DashboardStats are the stat cards of the dashboard
type DashboardStats struct {
	Total         int
	Pending       int
	InReview      int
	ApprovedToday int
	PendingUsers  int
}

// Dashboard is the dashboard view state
type Dashboard struct {
	Stats         DashboardStats
	NewestPending []models.Application
	Activity      []models.AuditEntry
	Banner        *Banner
}

// DashboardService interface defines the dashboard summary
type DashboardService interface {
	GetDashboard(ctx context.Context) *Dashboard
}

// dashboardService implements DashboardService interface
type dashboardService struct {
	appRepo  repositories.ApplicationRepository
	userRepo repositories.UserRepository
	audit    AuditService
	logger   *zap.Logger
	limit    int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	appRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	audit AuditService,
	logger *zap.Logger,
	fetchLimit int,
) DashboardService {
	return &dashboardService{appRepo: appRepo, userRepo: userRepo, audit: audit, logger: logger, limit: fetchLimit}
}

// GetDashboard gathers the stat cards, the newest pending applications and
// the latest activity. Each part fails independently.
func (s *dashboardService) GetDashboard(ctx context.Context) *Dashboard {
	dash := &Dashboard{}
	now := timeNow()
	today := models.StartOfDay(now)

	apps, err := s.appRepo.List(ctx, repositories.ApplicationQuery{Limit: s.limit})
	if err != nil {
		logFailure(s.logger, "failed to load dashboard applications", err)
		dash.Banner = bannerFor(err, "applications")
	}
	for _, a := range apps {
		dash.Stats.Total++
		switch models.NormalizeStatus(a.Status) {
		case models.StatusPending:
			dash.Stats.Pending++
			if len(dash.NewestPending) < DashboardPendingLimit {
				dash.NewestPending = append(dash.NewestPending, a)
			}
		case models.StatusInReview:
			dash.Stats.InReview++
		case models.StatusApproved:
			if a.LastActionAt != nil && !a.LastActionAt.Before(today) {
				dash.Stats.ApprovedToday++
			}
		}
	}

	users, err := s.userRepo.List(ctx, repositories.UserQuery{Status: models.UserPending})
	if err != nil {
		logFailure(s.logger, "failed to count pending users", err)
	}
	dash.Stats.PendingUsers = len(users)

	dash.Activity, err = s.audit.Recent(ctx, DashboardActivityLimit)
	if err != nil {
		logFailure(s.logger, "failed to load recent activity", err)
	}
	return dash
}
