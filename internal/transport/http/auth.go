package http

import (
	"errors"
	"log/slog"
	"net/http"

	"photostudio/internal/middleware"
	"photostudio/internal/services"
	"photostudio/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

// AdminLogin godoc
// @Summary Admin login
// @Description Authenticates an administrator and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=object{token=string,admin=models.Admin}}
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 401 {object} response.ErrorResponse "Invalid credentials"
// @Router /api/v1/auth/admin/login [post]
func (r *Routers) AdminLogin(c echo.Context) error {
	const op = "http.routers.AdminLogin"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	token, admin, err := r.Auth.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn("admin login failed", slog.String("ip", c.RealIP()))
		}
		return err
	}

	return ok(c, http.StatusOK, map[string]interface{}{
		"token": token,
		"admin": admin,
	})
}

// ClientLogin godoc
// @Summary Client login
// @Description Authenticates a studio client and returns a bearer token for the client portal.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=object{token=string,client=models.Client}}
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 401 {object} response.ErrorResponse "Invalid credentials"
// @Router /api/v1/auth/client/login [post]
func (r *Routers) ClientLogin(c echo.Context) error {
	const op = "http.routers.ClientLogin"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	token, client, err := r.Auth.ClientLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn("client login failed", slog.String("ip", c.RealIP()))
		}
		return err
	}

	return ok(c, http.StatusOK, map[string]interface{}{
		"token":  token,
		"client": client,
	})
}

// AdminMe godoc
// @Summary Current admin
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response{data=object{id=string,email=string,role=string}}
// @Failure 401 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/auth/admin/me [get]
func (r *Routers) AdminMe(c echo.Context) error {
	claims, found := middleware.AdminFromContext(c)
	if !found {
		return echo.ErrUnauthorized
	}

	return ok(c, http.StatusOK, map[string]interface{}{
		"id":    claims.ID,
		"email": claims.Email,
		"role":  claims.Role,
	})
}

// ClientMe godoc
// @Summary Current client
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response{data=object{clientId=string,email=string}}
// @Failure 401 {object} response.ErrorResponse
// @Security ClientAuth
// @Router /api/v1/auth/client/me [get]
func (r *Routers) ClientMe(c echo.Context) error {
	claims, found := middleware.ClientFromContext(c)
	if !found {
		return echo.ErrUnauthorized
	}

	return ok(c, http.StatusOK, map[string]interface{}{
		"clientId": claims.ClientID,
		"email":    claims.Email,
	})
}
