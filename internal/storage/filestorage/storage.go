package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalFileStorage keeps uploads on disk and serves them under baseURL.
// It stands in for the hosted image CDN during development.
type LocalFileStorage struct {
	baseDir string
	baseURL string
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload copies src to <baseDir>/<folder>/<uuid><ext> and returns its public URL.
func (s *LocalFileStorage) Upload(ctx context.Context, src io.Reader, filename, folder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	folder = cleanFolder(folder)
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	relPath := path.Join(folder, name)
	fullPath := s.GetFullPath(relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var copyErr error

	go func() {
		_, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(fullPath)
			return "", fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(fullPath)
		return "", ctx.Err()
	}

	return s.baseURL + "/" + (&url.URL{Path: relPath}).EscapedPath(), nil
}

func (s *LocalFileStorage) Delete(ctx context.Context, relPath string) error {
	return os.Remove(s.GetFullPath(relPath))
}

func (s *LocalFileStorage) GetFullPath(relPath string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(relPath))
}

func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

// cleanFolder keeps the folder inside the storage root.
func cleanFolder(folder string) string {
	folder = path.Clean("/" + strings.ReplaceAll(folder, "\\", "/"))
	return strings.TrimPrefix(folder, "/")
}
