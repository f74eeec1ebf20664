package http

import (
	"net/http"

	"photostudio/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

// SubmitMessage godoc
// @Summary Contact form
// @Description Stores an inquiry and notifies the studio by email. Rate limited per client IP.
// @Tags messages
// @Accept json
// @Produce json
// @Param request body request.MessageRequest true "Inquiry"
// @Success 201 {object} response.Response{data=models.Message}
// @Failure 400 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /api/v1/messages [post]
func (r *Routers) SubmitMessage(c echo.Context) error {
	var req request.MessageRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	msg, err := r.Messages.Submit(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, msg)
}

// ListMessages godoc
// @Summary List inquiries
// @Tags messages
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Message}
// @Security AdminAuth
// @Router /api/v1/messages [get]
func (r *Routers) ListMessages(c echo.Context) error {
	list, err := r.Messages.ListMessages(c.Request().Context())
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, list)
}

// MarkMessageRead godoc
// @Summary Set inquiry read flag
// @Tags messages
// @Accept json
// @Param id path string true "Message ID" format(uuid)
// @Param request body request.ReadRequest true "Read flag"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/messages/{id}/read [patch]
func (r *Routers) MarkMessageRead(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req request.ReadRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	if err := r.Messages.SetRead(c.Request().Context(), id, *req.Read); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteMessage godoc
// @Summary Delete inquiry
// @Tags messages
// @Param id path string true "Message ID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/messages/{id} [delete]
func (r *Routers) DeleteMessage(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := r.Messages.DeleteMessage(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetDashboard godoc
// @Summary Admin dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.Response{data=models.Dashboard}
// @Security AdminAuth
// @Router /api/v1/dashboard [get]
func (r *Routers) GetDashboard(c echo.Context) error {
	d, err := r.Dashboard.Summary(c.Request().Context())
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, d)
}
