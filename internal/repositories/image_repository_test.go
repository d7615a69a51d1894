package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"diotrix/internal/apperrors"
	"diotrix/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.GeneratedImage{}, &models.Setting{}))
	return db
}

func TestImageRepository_CreateAndGet(t *testing.T) {
	repo := NewImageRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "/gallery/cat.png", "a cat", &models.ImageMetadata{
		AspectRatio: models.AspectSquare,
		Model:       "imagen-4.0-generate-001",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	assert.NotNil(t, created.Meta, "fresh records carry the decoded metadata")

	loaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "/gallery/cat.png", loaded.URI)
	assert.Equal(t, "a cat", loaded.Prompt)

	require.NotNil(t, loaded.Meta)
	assert.Equal(t, models.AspectSquare, loaded.Meta.AspectRatio)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Meta, "listed records carry the decoded metadata")
	assert.Equal(t, "imagen-4.0-generate-001", records[0].Meta.Model)
}

func TestImageRepository_GetByID_Missing(t *testing.T) {
	repo := NewImageRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 404)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestImageRepository_List_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, "/gallery/a.png", "first", nil)
	require.NoError(t, err)
	second, err := repo.Create(ctx, "/gallery/b.png", "second", nil)
	require.NoError(t, err)

	// Both rows land in the same second; the id tiebreak must put the
	// later insert first.
	require.NoError(t, db.Exec(
		"UPDATE generated_images SET created_at = ? WHERE id IN (?, ?)",
		first.CreatedAt, first.ID, second.ID,
	).Error)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].Prompt)
	assert.Equal(t, "first", records[1].Prompt)
}

func TestImageRepository_DeleteByID(t *testing.T) {
	repo := NewImageRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "/gallery/cat.png", "a cat", nil)
	require.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "/gallery/cat.png", deleted.URI)

	again, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, again, "deleting a missing id is a no-op")

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestImageRepository_DeleteAll(t *testing.T) {
	repo := NewImageRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, fmt.Sprintf("/gallery/%d.png", i), "prompt", nil)
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteAll(ctx))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestImageRepository_CorruptMetadataIsTolerated(t *testing.T) {
	db := newTestDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "/gallery/cat.png", "a cat", nil)
	require.NoError(t, err)
	require.NoError(t, db.Exec(
		"UPDATE generated_images SET metadata = ? WHERE id = ?", "{broken", created.ID,
	).Error)

	loaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.DecodedMetadata())
	assert.Nil(t, loaded.Meta)
}
