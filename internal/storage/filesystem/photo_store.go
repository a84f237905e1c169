package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/interfaces"
)

// PhotoStore stores venue photos on the local filesystem under a bucket
// directory. Paths are deterministic and uploads overwrite in place, so a
// re-import of the same venue is idempotent.
type PhotoStore struct {
	root    string
	baseURL string
	logger  arbor.ILogger
}

// NewPhotoStore creates a filesystem photo store rooted at the configured
// directory
func NewPhotoStore(config *common.PhotosConfig, logger arbor.ILogger) (interfaces.PhotoStore, error) {
	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}

	return &PhotoStore{
		root:    config.Dir,
		baseURL: strings.TrimSuffix(config.PublicBaseURL, "/"),
		logger:  logger,
	}, nil
}

// Save writes the photo bytes under the given bucket path and returns the
// public URL. An existing object at the same path is overwritten.
func (s *PhotoStore) Save(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	cleaned, err := s.cleanPath(path)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create photo subdirectory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	s.logger.Debug().
		Str("path", cleaned).
		Str("content_type", contentType).
		Int("bytes", len(data)).
		Msg("Photo stored")

	return s.PublicURL(cleaned), nil
}

// PublicURL resolves the permanent URL for a stored path
func (s *PhotoStore) PublicURL(path string) string {
	return s.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// cleanPath rejects paths that would escape the bucket root
func (s *PhotoStore) cleanPath(path string) (string, error) {
	cleaned := filepath.ToSlash(filepath.Clean("/" + path))
	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid photo path: %s", path)
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}
