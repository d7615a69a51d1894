package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"diotrix/internal/apperrors"
	"diotrix/internal/models"
)

// SettingsKey is the namespaced key the serialized preference record
// lives under in the key-value table.
const SettingsKey = "@diotrix:settings"

// SettingsRepository stores the serialized preference record as one
// namespaced key in the local key-value table.
type SettingsRepository interface {
	Load(ctx context.Context) (*models.Setting, error)
	Store(ctx context.Context, value string) error
	Delete(ctx context.Context) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Load returns the stored record, or (nil, nil) when none exists yet.
func (r *settingsRepository) Load(ctx context.Context) (*models.Setting, error) {
	var row models.Setting
	if err := r.db.WithContext(ctx).Where("key = ?", SettingsKey).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Persistence("load settings", err)
	}
	return &row, nil
}

func (r *settingsRepository) Store(ctx context.Context, value string) error {
	row := models.Setting{
		Key:   SettingsKey,
		Value: value,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&row).Error; err != nil {
		return apperrors.Persistence("store settings", err)
	}
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("key = ?", SettingsKey).Delete(&models.Setting{}).Error; err != nil {
		return apperrors.Persistence("delete settings", err)
	}
	return nil
}
