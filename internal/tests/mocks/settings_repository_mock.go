package mocks

import (
	"context"

	"diotrix/internal/models"
)

// SettingsRepositoryMock keeps the serialized record in memory by
// default so settings round-trips work without a database.
type SettingsRepositoryMock struct {
	LoadFunc   func(ctx context.Context) (*models.Setting, error)
	StoreFunc  func(ctx context.Context, value string) error
	DeleteFunc func(ctx context.Context) error

	Stored *models.Setting
}

func (m *SettingsRepositoryMock) Load(ctx context.Context) (*models.Setting, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return m.Stored, nil
}

func (m *SettingsRepositoryMock) Store(ctx context.Context, value string) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, value)
	}
	m.Stored = &models.Setting{Key: "@diotrix:settings", Value: value}
	return nil
}

func (m *SettingsRepositoryMock) Delete(ctx context.Context) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx)
	}
	m.Stored = nil
	return nil
}
