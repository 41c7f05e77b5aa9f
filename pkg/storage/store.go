package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/pkg/config"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ErrUnsupportedType signals an upload whose extension is not an accepted image format.
var ErrUnsupportedType = errors.New("unsupported file type")

// Store writes uploaded files to local disk and maps them to public URLs.
type Store struct {
	dir        string
	publicBase string
	maxBytes   int64
}

// New prepares the upload directory and returns a disk-backed store.
func New(cfg config.UploadsConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("uploads dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", cfg.Dir, err)
	}
	maxBytes := int64(cfg.MaxUploadMB) * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}
	return &Store{
		dir:        cfg.Dir,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
		maxBytes:   maxBytes,
	}, nil
}

// MaxBytes returns the per-file upload limit.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save persists one multipart upload under a collision-free name and returns
// the public URL path clients can fetch it from.
func (s *Store) Save(header *multipart.FileHeader, subdir string) (string, error) {
	if header == nil {
		return "", errors.New("file header is required")
	}
	if header.Size > s.maxBytes {
		return "", fmt.Errorf("file exceeds %d bytes", s.maxBytes)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", ErrUnsupportedType
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	targetDir := s.dir
	if subdir != "" {
		targetDir = filepath.Join(s.dir, subdir)
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %q: %w", targetDir, err)
		}
	}

	dst, err := os.Create(filepath.Join(targetDir, name))
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes)); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return s.PublicURL(subdir, name), nil
}

// PublicURL maps a stored file back to the path it is served from.
func (s *Store) PublicURL(subdir, name string) string {
	if subdir == "" {
		return path.Join(s.publicBase, name)
	}
	return path.Join(s.publicBase, subdir, name)
}

// Delete removes a previously stored file by its public URL. Missing files
// are not an error.
func (s *Store) Delete(publicURL string) error {
	rel := strings.TrimPrefix(publicURL, s.publicBase)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid stored path %q", publicURL)
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// Dir returns the root directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}
