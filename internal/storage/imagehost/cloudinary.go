package imagehost

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"photostudio/internal/storage"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Cloudinary relays uploads to the hosted CDN with the studio branding
// transformation applied on ingest.
type Cloudinary struct {
	api            uploadAPI
	rootFolder     string
	transformation string
}

func NewCloudinary(cloudName, apiKey, apiSecret, rootFolder, transformation string) (*Cloudinary, error) {
	const op = "storage.imagehost.NewCloudinary"

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return newCloudinary(&cld.Upload, rootFolder, transformation), nil
}

func newCloudinary(api uploadAPI, rootFolder, transformation string) *Cloudinary {
	return &Cloudinary{
		api:            api,
		rootFolder:     rootFolder,
		transformation: transformation,
	}
}

func (c *Cloudinary) Upload(ctx context.Context, src io.Reader, filename, folder string) (string, error) {
	const op = "storage.imagehost.Cloudinary.Upload"

	unique := true

	resp, err := c.api.Upload(ctx, src, uploader.UploadParams{
		Folder:         c.folder(folder),
		Transformation: c.transformation,
		UniqueFilename: &unique,
		PublicID:       strings.TrimSuffix(path.Base(filename), path.Ext(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if resp.Error.Message != "" {
		return "", fmt.Errorf("%s: %w: %s", op, storage.ErrUpload, resp.Error.Message)
	}

	if resp.SecureURL == "" {
		return "", fmt.Errorf("%s: %w: empty url", op, storage.ErrUpload)
	}

	return resp.SecureURL, nil
}

func (c *Cloudinary) folder(sub string) string {
	sub = strings.Trim(path.Clean("/"+sub), "/")
	if sub == "" {
		return c.rootFolder
	}

	return path.Join(c.rootFolder, sub)
}
