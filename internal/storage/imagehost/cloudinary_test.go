package imagehost

import (
	"context"
	"errors"
	"strings"
	"testing"

	"photostudio/internal/storage"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUploadAPI struct {
	mock.Mock
}

func (m *MockUploadAPI) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	args := m.Called(ctx, file, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.UploadResult), args.Error(1)
}

const branding = "l_text:Arial_40_bold:PHOTO STUDIO,co_white,o_40,g_south_east,x_20,y_20"

func TestCloudinary_Upload(t *testing.T) {
	ctx := context.Background()

	paramsFor := func(folder string) interface{} {
		return mock.MatchedBy(func(p uploader.UploadParams) bool {
			return p.Folder == folder && p.Transformation == branding && p.PublicID == "wedding"
		})
	}

	tests := []struct {
		name      string
		folder    string
		mockSetup func(m *MockUploadAPI)
		wantURL   string
		wantErr   error
	}{
		{
			name:   "root folder",
			folder: "",
			mockSetup: func(m *MockUploadAPI) {
				m.On("Upload", ctx, mock.Anything, paramsFor("client-galleries")).
					Return(&uploader.UploadResult{SecureURL: "https://res.cloudinary.com/s/image/upload/v1/client-galleries/wedding.jpg"}, nil).Once()
			},
			wantURL: "https://res.cloudinary.com/s/image/upload/v1/client-galleries/wedding.jpg",
		},
		{
			name:   "sub folder",
			folder: "ana/../ana",
			mockSetup: func(m *MockUploadAPI) {
				m.On("Upload", ctx, mock.Anything, paramsFor("client-galleries/ana")).
					Return(&uploader.UploadResult{SecureURL: "https://cdn/x.jpg"}, nil).Once()
			},
			wantURL: "https://cdn/x.jpg",
		},
		{
			name: "api error response",
			mockSetup: func(m *MockUploadAPI) {
				m.On("Upload", ctx, mock.Anything, mock.Anything).
					Return(&uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}, nil).Once()
			},
			wantErr: storage.ErrUpload,
		},
		{
			name: "transport error",
			mockSetup: func(m *MockUploadAPI) {
				m.On("Upload", ctx, mock.Anything, mock.Anything).
					Return(nil, errors.New("connection reset")).Once()
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockUploadAPI)
			tt.mockSetup(m)

			host := newCloudinary(m, "client-galleries", branding)

			url, err := host.Upload(ctx, strings.NewReader("img"), "wedding.jpg", tt.folder)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, storage.ErrUpload) {
					assert.ErrorIs(t, err, storage.ErrUpload)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				assert.Empty(t, url)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantURL, url)
			}

			m.AssertExpectations(t)
		})
	}
}
