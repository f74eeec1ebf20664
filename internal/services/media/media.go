package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/services"
	"photostudio/internal/storage"
)

// ImageHost stores an image and returns its public delivery URL.
type ImageHost interface {
	Upload(ctx context.Context, src io.Reader, filename, folder string) (string, error)
}

type MediaService struct {
	log     *slog.Logger
	host    ImageHost
	maxSize int64
}

func NewMediaService(log *slog.Logger, host ImageHost, maxSize int64) *MediaService {
	return &MediaService{log: log, host: host, maxSize: maxSize}
}

// Upload relays src to the image host. size is the declared length; bodies
// longer than the limit are rejected even when size understates them.
func (s *MediaService) Upload(ctx context.Context, src io.Reader, filename, folder string, size int64) (string, error) {
	const op = "service.MediaService.Upload"

	log := s.log.With(
		slog.String("op", op),
		slog.String("filename", filename),
		slog.Int64("size", size),
	)

	if s.maxSize > 0 {
		if size > s.maxSize {
			log.Warn("upload rejected: too large")
			return "", fmt.Errorf("%s: %w", op, services.ErrTooLarge)
		}
		src = &limitedReader{r: src, n: s.maxSize}
	}

	url, err := s.host.Upload(ctx, src, filename, folder)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			log.Warn("upload rejected: body exceeds limit")
		} else {
			log.Error("upload relay failed", sl.Err(err))
		}
		return "", fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	log.Info("image uploaded", slog.String("url", url))

	return url, nil
}

// limitedReader fails with storage.ErrFileTooLarge once more than n bytes
// have been read.
type limitedReader struct {
	r io.Reader
	n int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n < 0 {
		return 0, storage.ErrFileTooLarge
	}
	if int64(len(p)) > l.n+1 {
		p = p[:l.n+1]
	}

	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, storage.ErrFileTooLarge
	}

	return n, err
}
