package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	storage "photostudio/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T) *storage.LocalFileStorage {
	t.Helper()

	fs, err := storage.NewLocalFileStorage(t.TempDir(), "http://test.local/uploads/")
	require.NoError(t, err)

	return fs
}

// relPath maps a returned URL back to a path under the storage root.
func relPath(fs *storage.LocalFileStorage, url string) string {
	return strings.TrimPrefix(url, fs.BaseURL()+"/")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestLocalFileStorage_Upload(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful upload", func(t *testing.T) {
		url, err := fs.Upload(ctx, strings.NewReader("test content"), "Photo.JPG", "client-galleries")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(url, "http://test.local/uploads/client-galleries/"))
		assert.True(t, strings.HasSuffix(url, ".jpg"))

		data, err := os.ReadFile(fs.GetFullPath(relPath(fs, url)))
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("empty folder", func(t *testing.T) {
		url, err := fs.Upload(ctx, strings.NewReader("x"), "a.png", "")
		require.NoError(t, err)

		assert.NotContains(t, relPath(fs, url), "/")
	})

	t.Run("folder cannot escape root", func(t *testing.T) {
		url, err := fs.Upload(ctx, strings.NewReader("x"), "a.png", "../../etc")
		require.NoError(t, err)

		full := fs.GetFullPath(relPath(fs, url))
		assert.True(t, strings.HasPrefix(full, fs.GetBaseDir()))
	})

	t.Run("context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := fs.Upload(ctx, strings.NewReader("x"), "a.png", "")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("reader failure removes partial file", func(t *testing.T) {
		dir := filepath.Join(fs.GetBaseDir(), "broken")

		_, err := fs.Upload(ctx, failingReader{}, "a.png", "broken")
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		url, err := fs.Upload(ctx, strings.NewReader("content"), "to_delete.txt", "")
		require.NoError(t, err)

		rel := relPath(fs, url)
		require.NoError(t, fs.Delete(ctx, rel))

		_, err = os.Stat(fs.GetFullPath(rel))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete non-existent file", func(t *testing.T) {
		assert.Error(t, fs.Delete(ctx, "nonexistent.txt"))
	})
}

func TestLocalFileStorage_GetFullPath(t *testing.T) {
	fs := setupFileStorage(t)

	expected := filepath.Join(fs.GetBaseDir(), "test", "file.txt")
	assert.Equal(t, expected, fs.GetFullPath("test/file.txt"))
}

func TestLocalFileStorage_BaseURL(t *testing.T) {
	fs := setupFileStorage(t)
	assert.Equal(t, "http://test.local/uploads", fs.BaseURL())
}

func TestConcurrentUploads(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		urls = make(map[string]struct{})
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			url, err := fs.Upload(ctx, strings.NewReader("data"), "concurrent.jpg", "concurrent")
			assert.NoError(t, err)

			mu.Lock()
			urls[url] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, urls, 10)
}
