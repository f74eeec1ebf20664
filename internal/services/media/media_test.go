package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"photostudio/internal/lib/logger/handlers/slogdiscard"
	"photostudio/internal/services"
	"photostudio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	body   []byte
	folder string
	err    error
}

func (h *fakeHost) Upload(ctx context.Context, src io.Reader, filename, folder string) (string, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	if h.err != nil {
		return "", h.err
	}
	h.body = b
	h.folder = folder
	return "https://cdn.example.com/" + filename, nil
}

func TestMediaService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		body     string
		declared int64
		hostErr  error
		wantURL  string
		wantErr  error
	}{
		{name: "ok", body: "abc", declared: 3, wantURL: "https://cdn.example.com/a.jpg"},
		{name: "declared too large", body: "abc", declared: 11, wantErr: services.ErrTooLarge},
		{name: "understated size", body: strings.Repeat("x", 20), declared: 1, wantErr: services.ErrTooLarge},
		{name: "exactly at limit", body: strings.Repeat("x", 10), declared: 10, wantURL: "https://cdn.example.com/a.jpg"},
		{name: "relay failure", body: "abc", declared: 3, hostErr: storage.ErrUpload, wantErr: storage.ErrUpload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &fakeHost{err: tt.hostErr}
			s := NewMediaService(slogdiscard.NewDiscardLogger(), host, 10)

			url, err := s.Upload(ctx, bytes.NewBufferString(tt.body), "a.jpg", "wedding", tt.declared)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, url)
			assert.Equal(t, tt.body, string(host.body))
			assert.Equal(t, "wedding", host.folder)
		})
	}
}
