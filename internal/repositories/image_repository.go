package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"diotrix/internal/apperrors"
	"diotrix/internal/models"
)

// ImageRepository is the durable record of every generated image's
// provenance. Callers validate prompt/uri before Create; the repository
// only reports storage-level failures.
type ImageRepository interface {
	Create(ctx context.Context, uri, prompt string, metadata *models.ImageMetadata) (*models.GeneratedImage, error)
	GetByID(ctx context.Context, id int64) (*models.GeneratedImage, error)
	List(ctx context.Context) ([]models.GeneratedImage, error)
	DeleteByID(ctx context.Context, id int64) (*models.GeneratedImage, error)
	DeleteAll(ctx context.Context) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, uri, prompt string, metadata *models.ImageMetadata) (*models.GeneratedImage, error) {
	record := models.GeneratedImage{
		URI:      uri,
		Prompt:   prompt,
		Metadata: models.EncodeMetadata(metadata),
		Meta:     metadata,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, apperrors.Persistence("insert image record", err)
	}
	return &record, nil
}

func (r *imageRepository) GetByID(ctx context.Context, id int64) (*models.GeneratedImage, error) {
	var record models.GeneratedImage
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("image record", id)
		}
		return nil, apperrors.Persistence("load image record", err)
	}
	return &record, nil
}

// List returns every record newest first. Ties on creation time break
// toward the higher id, i.e. insertion order.
func (r *imageRepository) List(ctx context.Context) ([]models.GeneratedImage, error) {
	var records []models.GeneratedImage
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, apperrors.Persistence("list image records", err)
	}
	return records, nil
}

// DeleteByID removes the row and returns its snapshot so the caller can
// clean up the associated blob. A missing id yields (nil, nil).
func (r *imageRepository) DeleteByID(ctx context.Context, id int64) (*models.GeneratedImage, error) {
	var record models.GeneratedImage
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Persistence("load image record", err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.GeneratedImage{}, id).Error; err != nil {
		return nil, apperrors.Persistence("delete image record", err)
	}
	return &record, nil
}

func (r *imageRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.GeneratedImage{}).Error; err != nil {
		return apperrors.Persistence("clear image records", err)
	}
	return nil
}
