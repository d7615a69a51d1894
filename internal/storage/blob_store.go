package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yargevad/filepathx"
	"go.uber.org/zap"

	"diotrix/internal/apperrors"
)

// SavedBlob describes where a written image asset landed.
type SavedBlob struct {
	URI      string `json:"uri"`
	FileName string `json:"fileName"`
}

// BlobStore persists binary image assets as files under a dedicated
// directory. It knows nothing about metadata rows; the gallery service
// keeps the two in step.
type BlobStore interface {
	Save(base64Data, extension, fileName string) (*SavedBlob, error)
	Delete(uri string) error
	ClearDirectory() error
	ListFiles() ([]string, error)
}

type diskBlobStore struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewDiskBlobStore creates a blob store rooted at dir.
func NewDiskBlobStore(dir string, logger *zap.SugaredLogger) BlobStore {
	return &diskBlobStore{dir: dir, logger: logger}
}

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
}

// sanitizeExtension maps anything unrecognized to png.
func sanitizeExtension(value string) string {
	normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), "."))
	if allowedExtensions[normalized] {
		return normalized
	}
	return "png"
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	slugStripRe  = regexp.MustCompile(`[^a-z0-9-_]`)
)

// resolveFileName slugifies an explicit name, or synthesizes a
// timestamp+random one. The random suffix makes collisions a practical
// non-issue without a global sequence.
func resolveFileName(extension, explicitName string) string {
	slug := strings.ToLower(whitespaceRe.ReplaceAllString(explicitName, "-"))
	slug = slugStripRe.ReplaceAllString(slug, "")
	if slug != "" {
		return slug + "." + extension
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("diotrix-%d-%s.%s", time.Now().UnixMilli(), suffix, extension)
}

func (s *diskBlobStore) Save(base64Data, extension, fileName string) (*SavedBlob, error) {
	if base64Data == "" {
		return nil, apperrors.Validation("cannot save an empty image payload")
	}

	payload, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, apperrors.Validation("image payload is not valid base64 data")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, apperrors.Persistence("create gallery directory", err)
	}

	resolvedName := resolveFileName(sanitizeExtension(extension), fileName)
	path := filepath.Join(s.dir, resolvedName)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return nil, apperrors.Persistence("write image file", err)
	}

	return &SavedBlob{URI: path, FileName: resolvedName}, nil
}

// Delete removes the file at uri. A missing file is a successful no-op.
// Unexpected I/O errors are logged and returned; callers for whom file
// cleanup is best-effort ignore the error, while the orphan sweep uses
// it to count what was actually reclaimed.
func (s *diskBlobStore) Delete(uri string) error {
	if uri == "" {
		return nil
	}
	if err := os.Remove(uri); err != nil && !os.IsNotExist(err) {
		s.logger.Warnw("failed to delete image file", "uri", uri, "error", err)
		return apperrors.Persistence("delete image file", err)
	}
	return nil
}

// ClearDirectory deletes and recreates the whole gallery directory.
func (s *diskBlobStore) ClearDirectory() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return apperrors.Persistence("clear gallery directory", err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return apperrors.Persistence("recreate gallery directory", err)
	}
	return nil
}

// ListFiles returns every blob file under the gallery directory. Feeds
// the orphan reconciliation sweep.
func (s *diskBlobStore) ListFiles() ([]string, error) {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return nil, nil
	}
	matches, err := filepathx.Glob(filepath.Join(s.dir, "**", "*"))
	if err != nil {
		return nil, apperrors.Persistence("list gallery directory", err)
	}
	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}
