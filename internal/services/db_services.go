package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"diotrix/internal/repositories"
	"diotrix/internal/storage"
)

// DbServices aggregates the domain services backed by the database and
// the blob store.
type DbServices struct {
	Gallery  GalleryService
	Settings SettingsService
}

// NewDbServices constructs the service container using repositories
// backed by db and blobs for the binary assets.
func NewDbServices(db *gorm.DB, blobs storage.BlobStore, logger *zap.SugaredLogger) *DbServices {
	imageRepo := repositories.NewImageRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	return &DbServices{
		Gallery:  NewGalleryService(imageRepo, blobs, logger),
		Settings: NewSettingsService(settingsRepo, logger),
	}
}

// StartDbServices hands the runtime context to every service.
func (s *DbServices) StartDbServices(ctx context.Context) {
	s.Gallery.Startup(ctx)
	s.Settings.Startup(ctx)
}
