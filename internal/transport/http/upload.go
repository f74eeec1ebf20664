package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// UploadImage godoc
// @Summary Upload image
// @Description Relays a multipart file to the image host with the studio branding applied.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Param folder formData string false "Sub-folder inside the client galleries folder"
// @Success 201 {object} response.Response{data=object{url=string}}
// @Failure 400 {object} response.ErrorResponse "No file"
// @Failure 413 {object} response.ErrorResponse "File too large"
// @Failure 500 {object} response.ErrorResponse "Relay failed"
// @Security AdminAuth
// @Router /api/v1/uploads [post]
func (r *Routers) UploadImage(c echo.Context) error {
	const op = "http.routers.UploadImage"

	log := r.log.With(slog.String("op", op))

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("no file in request", sl.Err(err))
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}

	log.Debug("got file for upload",
		slog.String("filename", file.Filename),
		slog.Int64("size", file.Size),
		slog.String("mime_type", file.Header.Get(echo.HeaderContentType)),
	)

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	url, err := r.Media.Upload(c.Request().Context(), src, file.Filename, c.FormValue("folder"), file.Size)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, map[string]string{"url": url})
}

// Healthz godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 503 {object} response.Response{data=map[string]string}
// @Router /healthz [get]
func (r *Routers) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(r.Health))

	for name, hc := range r.Health {
		if err := hc.Ping(ctx); err != nil {
			r.log.Warn("health check failed", slog.String("component", name), sl.Err(err))
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	resp := response.SuccessResponse(checks)
	if status != http.StatusOK {
		resp.Status = "error"
	}

	return c.JSON(status, resp)
}
