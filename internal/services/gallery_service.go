package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"diotrix/internal/apperrors"
	"diotrix/internal/events"
	"diotrix/internal/models"
	"diotrix/internal/repositories"
	"diotrix/internal/storage"
)

// GalleryState is the reactive projection the presentation layer reads.
// Error is the last terminal failure, cleared at the start of the next
// attempt; a failed refresh keeps the previous Images intact.
type GalleryState struct {
	Images    []models.GeneratedImage `json:"images"`
	Loading   bool                    `json:"loading"`
	Saving    bool                    `json:"saving"`
	Error     string                  `json:"error,omitempty"`
	HasImages bool                    `json:"hasImages"`
}

// SaveGeneratedImageInput carries a generated asset into the gallery.
type SaveGeneratedImageInput struct {
	Prompt     string                `json:"prompt"`
	Base64Data string                `json:"base64Data"`
	Extension  string                `json:"extension,omitempty"`
	FileName   string                `json:"fileName,omitempty"`
	Metadata   *models.ImageMetadata `json:"metadata,omitempty"`
}

// GalleryService coordinates the blob store and the metadata table into
// gallery-level operations. It is the sole writer of image record
// lifecycle transitions.
type GalleryService interface {
	Startup(ctx context.Context)
	State() GalleryState
	Refresh(ctx context.Context) ([]models.GeneratedImage, error)
	RefreshInBackground()
	GetImage(ctx context.Context, id int64) (*models.GeneratedImage, error)
	SaveGeneratedImage(ctx context.Context, input SaveGeneratedImageInput) (*models.GeneratedImage, error)
	DeleteImage(ctx context.Context, id int64) error
	ClearGallery(ctx context.Context) error
	SweepOrphans(ctx context.Context) (int, error)
}

type galleryService struct {
	images  repositories.ImageRepository
	blobs   storage.BlobStore
	logger  *zap.SugaredLogger
	context context.Context

	mu         sync.Mutex
	state      GalleryState
	refreshGen uint64
}

func NewGalleryService(images repositories.ImageRepository, blobs storage.BlobStore, logger *zap.SugaredLogger) GalleryService {
	return &galleryService{
		images: images,
		blobs:  blobs,
		logger: logger,
		state:  GalleryState{Loading: true},
	}
}

func (s *galleryService) Startup(ctx context.Context) {
	s.context = ctx
}

// State returns a snapshot of the in-memory projection.
func (s *galleryService) State() GalleryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state
	snapshot.Images = append([]models.GeneratedImage(nil), s.state.Images...)
	return snapshot
}

// Refresh loads the full list into memory. Overlapping calls are safe:
// a generation counter discards stale in-flight results so the last
// call's list wins. Failure keeps the previous list and records the
// error explicitly.
func (s *galleryService) Refresh(ctx context.Context) ([]models.GeneratedImage, error) {
	s.mu.Lock()
	s.refreshGen++
	gen := s.refreshGen
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	records, err := s.images.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.refreshGen {
		// A newer refresh finished (or started) after this one; its
		// result owns the projection.
		return records, err
	}
	s.state.Loading = false
	if err != nil {
		s.state.Error = err.Error()
		return nil, err
	}
	s.state.Images = records
	s.state.HasImages = len(records) > 0
	return records, nil
}

// RefreshInBackground spawns a refresh with a log-and-continue error
// policy, for callers that do not care about the result.
func (s *galleryService) RefreshInBackground() {
	ctx := s.context
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		if _, err := s.Refresh(ctx); err != nil {
			s.logger.Warnw("background gallery refresh failed", "error", err)
		}
	}()
}

func (s *galleryService) GetImage(ctx context.Context, id int64) (*models.GeneratedImage, error) {
	return s.images.GetByID(ctx, id)
}

// SaveGeneratedImage writes the blob first, then the metadata row, then
// prepends the record to the in-memory list. A failed blob write blocks
// row creation so no row ever points at a missing file. A row-create
// failure after a successful blob write leaves the file orphaned; the
// sweep reclaims it later.
func (s *galleryService) SaveGeneratedImage(ctx context.Context, input SaveGeneratedImageInput) (*models.GeneratedImage, error) {
	if strings.TrimSpace(input.Prompt) == "" {
		return nil, apperrors.Validation("prompt must not be empty")
	}
	if input.Base64Data == "" {
		return nil, apperrors.Validation("cannot save an empty image payload")
	}

	s.setSaving(true)

	blob, err := s.blobs.Save(input.Base64Data, input.Extension, input.FileName)
	if err != nil {
		s.failSaving(err)
		return nil, err
	}

	record, err := s.images.Create(ctx, blob.URI, input.Prompt, input.Metadata)
	if err != nil {
		s.logger.Warnw("image file saved but record creation failed, file is orphaned",
			"uri", blob.URI, "error", err)
		s.failSaving(err)
		return nil, err
	}

	s.mu.Lock()
	s.state.Images = append([]models.GeneratedImage{*record}, s.state.Images...)
	s.state.HasImages = true
	s.state.Saving = false
	s.mu.Unlock()

	s.emit(events.GalleryChanged, events.NewSuccess("image saved").WithImage(record.ID))
	return record, nil
}

// DeleteImage removes the metadata row first, then attempts to delete
// the blob. Blob cleanup failure never fails the operation: the row is
// already gone, which is what the user asked for. Deleting a missing id
// is a no-op.
func (s *galleryService) DeleteImage(ctx context.Context, id int64) error {
	s.setSaving(true)

	record, err := s.images.DeleteByID(ctx, id)
	if err != nil {
		s.failSaving(err)
		return err
	}
	if record != nil {
		// Best-effort: the row is gone, a stray file never blocks the
		// user's delete. The store logs the failure.
		_ = s.blobs.Delete(record.URI)
	}

	s.mu.Lock()
	filtered := s.state.Images[:0:0]
	for _, img := range s.state.Images {
		if img.ID != id {
			filtered = append(filtered, img)
		}
	}
	s.state.Images = filtered
	s.state.HasImages = len(filtered) > 0
	s.state.Saving = false
	s.mu.Unlock()

	s.emit(events.GalleryChanged, events.NewSuccess("image deleted").WithImage(id))
	return nil
}

// ClearGallery clears the blob directory and the metadata table
// concurrently. Unlike single-item delete, this destructive bulk action
// fails when either half fails.
func (s *galleryService) ClearGallery(ctx context.Context) error {
	s.setSaving(true)

	var wg sync.WaitGroup
	var dirErr, tableErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		dirErr = s.blobs.ClearDirectory()
	}()
	go func() {
		defer wg.Done()
		tableErr = s.images.DeleteAll(ctx)
	}()
	wg.Wait()

	if dirErr != nil || tableErr != nil {
		err := dirErr
		if err == nil {
			err = tableErr
		}
		s.failSaving(err)
		return fmt.Errorf("clear gallery: %w", err)
	}

	s.mu.Lock()
	s.state.Images = nil
	s.state.HasImages = false
	s.state.Saving = false
	s.mu.Unlock()

	s.emit(events.GalleryCleared, events.NewSuccess("gallery cleared"))
	return nil
}

// SweepOrphans deletes blob files no metadata row references. It is
// only ever run explicitly; routine operation tolerates the occasional
// stray file instead of paying for a scan.
func (s *galleryService) SweepOrphans(ctx context.Context) (int, error) {
	records, err := s.images.List(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]bool, len(records))
	for _, r := range records {
		referenced[r.URI] = true
	}

	files, err := s.blobs.ListFiles()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range files {
		if referenced[f] {
			continue
		}
		if err := s.blobs.Delete(f); err == nil {
			removed++
		}
	}
	if removed > 0 {
		s.logger.Infow("swept orphaned image files", "count", removed)
	}
	return removed, nil
}

func (s *galleryService) setSaving(saving bool) {
	s.mu.Lock()
	s.state.Saving = saving
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *galleryService) failSaving(err error) {
	s.mu.Lock()
	s.state.Saving = false
	s.state.Error = apperrors.Normalize(err, "unknown gallery error occurred").Error()
	s.mu.Unlock()
	s.emit(events.GalleryChanged, events.NewError(s.State().Error))
}

func (s *galleryService) emit(name string, evt events.GalleryEvent) {
	if s.context == nil {
		return
	}
	events.Emit(s.context, name, evt)
}
