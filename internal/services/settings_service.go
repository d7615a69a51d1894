package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"diotrix/internal/events"
	"diotrix/internal/models"
	"diotrix/internal/repositories"
)

// SettingsService owns the single merged preference record. Reads fall
// through to defaults when nothing is stored yet; updates are field-wise
// merges onto the previous value.
type SettingsService interface {
	Startup(ctx context.Context)
	Refresh(ctx context.Context) (models.StoredSettings, error)
	Update(ctx context.Context, patch models.SettingsPatch) (models.StoredSettings, error)
	Clear(ctx context.Context) (models.StoredSettings, error)
}

type settingsService struct {
	repo    repositories.SettingsRepository
	logger  *zap.SugaredLogger
	context context.Context
}

func NewSettingsService(repo repositories.SettingsRepository, logger *zap.SugaredLogger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Startup(ctx context.Context) {
	s.context = ctx
}

// Refresh reads the stored record. When absent it returns defaults
// without persisting them; the first Update writes the merged record.
func (s *settingsService) Refresh(ctx context.Context) (models.StoredSettings, error) {
	row, err := s.repo.Load(ctx)
	if err != nil {
		return models.StoredSettings{}, err
	}
	if row == nil {
		return models.DefaultSettings(), nil
	}

	var stored models.StoredSettings
	if err := json.Unmarshal([]byte(row.Value), &stored); err != nil {
		// A corrupt record must not lock the user out of the app.
		s.logger.Warnw("stored settings are unreadable, falling back to defaults", "error", err)
		return models.DefaultSettings(), nil
	}
	return stored, nil
}

// Update merges patch onto the current record. Nil patch fields never
// overwrite the existing value, so an explicit empty API key or zero
// credits is distinguishable from "no change".
func (s *settingsService) Update(ctx context.Context, patch models.SettingsPatch) (models.StoredSettings, error) {
	current, err := s.Refresh(ctx)
	if err != nil {
		return models.StoredSettings{}, err
	}

	merged := mergeSettings(current, patch)
	merged.LastUpdatedAt = time.Now()

	data, err := json.Marshal(merged)
	if err != nil {
		return models.StoredSettings{}, err
	}
	if err := s.repo.Store(ctx, string(data)); err != nil {
		return models.StoredSettings{}, err
	}

	s.emitChanged("settings updated")
	return merged, nil
}

// Clear erases the persisted record and returns fresh defaults.
func (s *settingsService) Clear(ctx context.Context) (models.StoredSettings, error) {
	if err := s.repo.Delete(ctx); err != nil {
		return models.StoredSettings{}, err
	}
	s.emitChanged("settings reset")
	return models.DefaultSettings(), nil
}

func (s *settingsService) emitChanged(message string) {
	if s.context == nil {
		return
	}
	events.Emit(s.context, events.SettingsChanged, events.NewSuccess(message))
}

func mergeSettings(current models.StoredSettings, patch models.SettingsPatch) models.StoredSettings {
	merged := current
	if patch.Theme != nil {
		merged.Theme = *patch.Theme
	}
	if patch.AIAPIKey != nil {
		merged.AIAPIKey = strings.TrimSpace(*patch.AIAPIKey)
	}
	if patch.ShowOnboarding != nil {
		merged.ShowOnboarding = *patch.ShowOnboarding
	}
	if patch.IsTrialVersion != nil {
		merged.IsTrialVersion = *patch.IsTrialVersion
	}
	if patch.RemainingCredits != nil {
		credits := *patch.RemainingCredits
		merged.RemainingCredits = &credits
	}
	return merged
}
