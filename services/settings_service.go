package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/blogem/regdesk/cache"
	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/repositories"
)

// SettingsService interface defines system settings business logic
type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s *models.Settings) error
}

// settingsService implements SettingsService interface
type settingsService struct {
	settingsRepo repositories.SettingsRepository
	cache        cache.Cache
	logger       *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repositories.SettingsRepository, c cache.Cache, logger *zap.Logger) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, cache: c, logger: logger}
}

// Get returns the saved settings, or the defaults when none were saved
func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if datastore.IsNotFound(err) {
		defaults := models.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Save validates and stores the settings. Cached reports depend on the SLA
// target and are dropped.
func (s *settingsService) Save(ctx context.Context, settings *models.Settings) error {
	settings.SystemName = strings.TrimSpace(settings.SystemName)
	settings.AdminEmail = strings.TrimSpace(settings.AdminEmail)
	if settings.Timezone == "" {
		settings.Timezone = "UTC"
	}

	if errs := settings.Validate(); errs.HasErrors() {
		return errs
	}

	settings.UpdatedAt = timeNow().UTC()
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if err := s.cache.Delete(ctx, reportCacheKeys()...); err != nil {
		s.logger.Warn("failed to drop cached reports", zap.Error(err))
	}
	return nil
}

// settingsOrDefault is used where settings only tune behaviour
func settingsOrDefault(ctx context.Context, svc SettingsService, logger *zap.Logger) models.Settings {
	settings, err := svc.Get(ctx)
	if err != nil {
		logFailure(logger, "failed to load settings, using defaults", err)
		return models.DefaultSettings()
	}
	return *settings
}
