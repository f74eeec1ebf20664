package jwt_test

import (
	"testing"
	"time"

	"photostudio/internal/domain/models"
	"photostudio/internal/lib/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminSecret  = "admin-secret"
	clientSecret = "client-secret"
)

func TestAdminToken(t *testing.T) {
	admin := models.Admin{ID: uuid.New(), Email: "owner@studio.test", Role: models.RoleAdmin}

	token, err := jwt.NewAdminToken(admin, adminSecret, time.Hour)
	require.NoError(t, err)

	claims, err := jwt.ParseAdminToken(token, adminSecret)
	require.NoError(t, err)

	assert.Equal(t, admin.ID, claims.ID)
	assert.Equal(t, admin.Email, claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestClientToken(t *testing.T) {
	client := models.Client{ID: uuid.New(), Email: "ana@x.com"}

	token, err := jwt.NewClientToken(client, clientSecret, 24*time.Hour)
	require.NoError(t, err)

	claims, err := jwt.ParseClientToken(token, clientSecret)
	require.NoError(t, err)

	assert.Equal(t, client.ID, claims.ClientID)
	assert.Equal(t, client.Email, claims.Email)
}

func TestParse_Rejects(t *testing.T) {
	admin := models.Admin{ID: uuid.New(), Email: "owner@studio.test", Role: models.RoleAdmin}
	client := models.Client{ID: uuid.New(), Email: "ana@x.com"}

	adminToken, err := jwt.NewAdminToken(admin, adminSecret, time.Hour)
	require.NoError(t, err)

	clientToken, err := jwt.NewClientToken(client, clientSecret, time.Hour)
	require.NoError(t, err)

	expired, err := jwt.NewAdminToken(admin, adminSecret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		parse func() error
	}{
		{
			name: "admin token with client secret",
			parse: func() error {
				_, err := jwt.ParseClientToken(adminToken, clientSecret)
				return err
			},
		},
		{
			name: "client token with admin secret",
			parse: func() error {
				_, err := jwt.ParseAdminToken(clientToken, adminSecret)
				return err
			},
		},
		{
			name: "expired",
			parse: func() error {
				_, err := jwt.ParseAdminToken(expired, adminSecret)
				return err
			},
		},
		{
			name: "malformed",
			parse: func() error {
				_, err := jwt.ParseAdminToken("not.a.token", adminSecret)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.parse(), jwt.ErrInvalidToken)
		})
	}
}
