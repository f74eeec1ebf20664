package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"photostudio/internal/domain/models"
	jwtlib "photostudio/internal/lib/jwt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminSecret  = "admin-secret"
	clientSecret = "client-secret"
)

func newAuthEcho() *echo.Echo {
	e := echo.New()

	e.GET("/admin", func(c echo.Context) error {
		claims, ok := AdminFromContext(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, claims.Email)
	}, AdminAuth(adminSecret), RequireRole(models.RoleAdmin))

	e.GET("/client", func(c echo.Context) error {
		claims, ok := ClientFromContext(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, claims.ClientID.String())
	}, ClientAuth(clientSecret))

	return e
}

func do(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthGates(t *testing.T) {
	e := newAuthEcho()

	admin := models.Admin{ID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin}
	client := models.Client{ID: uuid.New(), Email: "ana@example.com"}

	adminToken, err := jwtlib.NewAdminToken(admin, adminSecret, time.Hour)
	require.NoError(t, err)
	clientToken, err := jwtlib.NewClientToken(client, clientSecret, time.Hour)
	require.NoError(t, err)
	expiredAdmin, err := jwtlib.NewAdminToken(admin, adminSecret, -time.Minute)
	require.NoError(t, err)
	editorToken, err := jwtlib.NewAdminToken(models.Admin{ID: uuid.New(), Email: "ed@example.com", Role: "editor"}, adminSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantBody string
	}{
		{name: "admin ok", path: "/admin", token: adminToken, wantCode: http.StatusOK, wantBody: admin.Email},
		{name: "admin missing token", path: "/admin", wantCode: http.StatusUnauthorized},
		{name: "admin malformed", path: "/admin", token: "abc.def", wantCode: http.StatusUnauthorized},
		{name: "admin expired", path: "/admin", token: expiredAdmin, wantCode: http.StatusUnauthorized},
		{name: "client token on admin route", path: "/admin", token: clientToken, wantCode: http.StatusUnauthorized},
		{name: "wrong role", path: "/admin", token: editorToken, wantCode: http.StatusForbidden},
		{name: "client ok", path: "/client", token: clientToken, wantCode: http.StatusOK, wantBody: client.ID.String()},
		{name: "admin token on client route", path: "/client", token: adminToken, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.path, tt.token)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
