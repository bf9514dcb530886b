package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/blogem/regdesk/cache"
	"github.com/blogem/regdesk/notify"
	"github.com/blogem/regdesk/repositories"
)

// Options carries the tunables the services need from configuration
type Options struct {
	List      ListOptions
	ReportTTL time.Duration
}

// Services holds all service instances
type Services struct {
	Applications ApplicationService
	Messages     MessageService
	Audit        AuditService
	Users        UserService
	Reports      ReportService
	Settings     SettingsService
	Dashboard    DashboardService
}

// NewServices creates and initializes all service instances
func NewServices(
	repos *repositories.Repositories,
	c cache.Cache,
	notifier notify.Notifier,
	logger *zap.Logger,
	opts Options,
) *Services {
	audit := NewAuditService(repos.Audit, logger)
	settings := NewSettingsService(repos.Settings, c, logger)

	return &Services{
		Applications: NewApplicationService(repos.Applications, repos.Messages, audit, settings, notifier, logger, opts.List),
		Messages:     NewMessageService(repos.Messages, repos.Applications, audit, settings, notifier, logger),
		Audit:        audit,
		Users:        NewUserService(repos.Users, repos.Applications, audit, logger, opts.List.PageSize),
		Reports:      NewReportService(repos.Applications, settings, c, opts.ReportTTL, logger),
		Settings:     settings,
		Dashboard:    NewDashboardService(repos.Applications, repos.Users, audit, logger, opts.List.FetchLimit),
	}
}
