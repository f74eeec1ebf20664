package client

import (
	"context"
	"errors"
	"testing"

	"photostudio/internal/domain/models"
	"photostudio/internal/lib/logger/handlers/slogdiscard"
	"photostudio/internal/services"
	"photostudio/internal/storage"
	"photostudio/internal/transport/http/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client models.Client) (models.Client, error) {
	args := m.Called(ctx, client)
	return args.Get(0).(models.Client), args.Error(1)
}

func (m *MockClientRepository) ClientByEmail(ctx context.Context, email string) (models.Client, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.Client), args.Error(1)
}

func (m *MockClientRepository) ClientByID(ctx context.Context, id uuid.UUID) (models.Client, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, limit int) ([]models.Client, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Client), args.Error(1)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo *MockClientRepository) *ClientService {
	s := NewClientService(slogdiscard.NewDiscardLogger(), repo)
	s.cost = bcrypt.MinCost
	return s
}

func TestClientService_CreateClient(t *testing.T) {
	ctx := context.Background()
	req := request.ClientRequest{Name: "Ana", Email: "Ana@X.com", Password: "pw"}

	t.Run("hashes password and normalizes email", func(t *testing.T) {
		repo := new(MockClientRepository)
		id := uuid.New()

		repo.On("SaveClient", ctx, mock.MatchedBy(func(c models.Client) bool {
			return c.Email == "ana@x.com" &&
				string(c.PassHash) != "pw" &&
				bcrypt.CompareHashAndPassword(c.PassHash, []byte("pw")) == nil
		})).Return(models.Client{ID: id, Name: "Ana", Email: "ana@x.com"}, nil).Once()

		got, err := newTestService(repo).CreateClient(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockClientRepository)
		repo.On("SaveClient", ctx, mock.Anything).Return(models.Client{}, storage.ErrEmailExists).Once()

		_, err := newTestService(repo).CreateClient(ctx, req)
		assert.ErrorIs(t, err, services.ErrConflict)
	})
}

func TestClientService_DeleteClient(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "deleted"},
		{name: "missing", repoErr: storage.ErrNotFound, wantErr: services.ErrNotFound},
		{name: "failure", repoErr: errors.New("db down"), wantErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockClientRepository)
			repo.On("DeleteClient", ctx, id).Return(tt.repoErr).Once()

			err := newTestService(repo).DeleteClient(ctx, id)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else if errors.Is(tt.wantErr, services.ErrNotFound) {
				assert.ErrorIs(t, err, services.ErrNotFound)
			} else {
				assert.ErrorContains(t, err, tt.wantErr.Error())
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestClientService_GetClient(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(MockClientRepository)
	repo.On("ClientByID", ctx, id).Return(models.Client{}, storage.ErrNotFound).Once()

	_, err := newTestService(repo).GetClient(ctx, id)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
