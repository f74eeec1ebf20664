package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"photostudio/internal/lib/logger/handlers/slogdiscard"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRateLimitRepository struct {
	mock.Mock
}

func (m *MockRateLimitRepository) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

func serveLimited(l *Limiter, ip string) int {
	e := echo.New()
	e.POST("/messages", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, l.Middleware)

	req := httptest.NewRequest(http.MethodPost, "/messages", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec.Code
}

func TestLimiter(t *testing.T) {
	window := time.Hour

	tests := []struct {
		name     string
		hits     int64
		err      error
		wantCode int
	}{
		{name: "first request", hits: 1, wantCode: http.StatusCreated},
		{name: "at limit", hits: 5, wantCode: http.StatusCreated},
		{name: "over limit", hits: 6, wantCode: http.StatusTooManyRequests},
		{name: "store down fails open", err: errors.New("dial tcp: refused"), wantCode: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRateLimitRepository)
			repo.On("Hit", mock.Anything, "203.0.113.7", window).Return(tt.hits, tt.err).Once()

			l := NewLimiter(slogdiscard.NewDiscardLogger(), repo, "contact", 5, window)

			assert.Equal(t, tt.wantCode, serveLimited(l, "203.0.113.7"))
			repo.AssertExpectations(t)
		})
	}
}

func TestLimiter_NoStore(t *testing.T) {
	l := NewLimiter(slogdiscard.NewDiscardLogger(), nil, "contact", 5, time.Hour)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusCreated, serveLimited(l, "203.0.113.7"))
	}
}
