package mocks

import (
	"context"

	"diotrix/internal/models"
)

type ImageRepositoryMock struct {
	CreateFunc     func(ctx context.Context, uri, prompt string, metadata *models.ImageMetadata) (*models.GeneratedImage, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*models.GeneratedImage, error)
	ListFunc       func(ctx context.Context) ([]models.GeneratedImage, error)
	DeleteByIDFunc func(ctx context.Context, id int64) (*models.GeneratedImage, error)
	DeleteAllFunc  func(ctx context.Context) error
}

func (m *ImageRepositoryMock) Create(ctx context.Context, uri, prompt string, metadata *models.ImageMetadata) (*models.GeneratedImage, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, uri, prompt, metadata)
	}
	return &models.GeneratedImage{ID: 1, URI: uri, Prompt: prompt, Metadata: models.EncodeMetadata(metadata), Meta: metadata}, nil
}

func (m *ImageRepositoryMock) GetByID(ctx context.Context, id int64) (*models.GeneratedImage, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.GeneratedImage{ID: id}, nil
}

func (m *ImageRepositoryMock) List(ctx context.Context) ([]models.GeneratedImage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *ImageRepositoryMock) DeleteByID(ctx context.Context, id int64) (*models.GeneratedImage, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *ImageRepositoryMock) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}
