package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage persists uploaded attachments on disk under a base directory.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads/logpapers"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// StoredFile describes a persisted attachment.
type StoredFile struct {
	Filename string
	Path     string
	MimeType string
	Size     int64
	URL      string
}

// SaveUpload copies a multipart file header to disk under a collision-free name
// and returns the stored metadata. Only metadata leaves this package; callers
// never re-read the bytes.
func (s *LocalStorage) SaveUpload(fh *multipart.FileHeader) (*StoredFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close() //nolint:errcheck

	name := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(fh.Filename))
	path := filepath.Join(s.baseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close() //nolint:errcheck

	size, err := io.Copy(dst, src)
	if err != nil {
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &StoredFile{
		Filename: fh.Filename,
		Path:     path,
		MimeType: mimeType,
		Size:     size,
		URL:      fmt.Sprintf("%s/%s", s.baseURL, name),
	}, nil
}
