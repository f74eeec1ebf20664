package http

import (
	"log/slog"
	"net/http"

	"photostudio/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

// GetAbout godoc
// @Summary About page
// @Tags content
// @Produce json
// @Success 200 {object} response.Response{data=models.About}
// @Router /api/v1/about [get]
func (r *Routers) GetAbout(c echo.Context) error {
	about, err := r.About.GetAbout(c.Request().Context())
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, about)
}

// UpdateAbout godoc
// @Summary Update about page
// @Tags content
// @Accept json
// @Produce json
// @Param request body request.AboutRequest true "About content"
// @Success 200 {object} response.Response{data=models.About}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/about [put]
func (r *Routers) UpdateAbout(c echo.Context) error {
	var req request.AboutRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	about, err := r.About.UpdateAbout(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, about)
}

// ListServices godoc
// @Summary List offered services
// @Description Services in display order; missing optional fields are filled with defaults.
// @Tags services
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Service}
// @Router /api/v1/services [get]
func (r *Routers) ListServices(c echo.Context) error {
	list, err := r.Offerings.ListServices(c.Request().Context())
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, list)
}

// CreateService godoc
// @Summary Create service
// @Tags services
// @Accept json
// @Produce json
// @Param request body request.ServiceRequest true "Service"
// @Success 201 {object} response.Response{data=models.Service}
// @Failure 400 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/services [post]
func (r *Routers) CreateService(c echo.Context) error {
	var req request.ServiceRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	svc, err := r.Offerings.CreateService(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, svc)
}

// UpdateService godoc
// @Summary Update service
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ID" format(uuid)
// @Param request body request.ServiceRequest true "Service"
// @Success 200 {object} response.Response{data=models.Service}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/services/{id} [put]
func (r *Routers) UpdateService(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req request.ServiceRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	svc, err := r.Offerings.UpdateService(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, svc)
}

// DeleteService godoc
// @Summary Delete service
// @Tags services
// @Param id path string true "Service ID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/services/{id} [delete]
func (r *Routers) DeleteService(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := r.Offerings.DeleteService(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderServices godoc
// @Summary Reorder services
// @Description Sets each service's rank to its position in ids. Nothing is applied when an id is unknown.
// @Tags services
// @Accept json
// @Param request body request.ReorderRequest true "Ordered ids"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/services/reorder [put]
func (r *Routers) ReorderServices(c echo.Context) error {
	const op = "http.routers.ReorderServices"

	var req request.ReorderRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	if err := r.Offerings.ReorderServices(c.Request().Context(), req.IDs); err != nil {
		return err
	}

	r.log.Info("services reordered", slog.String("op", op), slog.Int("count", len(req.IDs)))

	return c.NoContent(http.StatusNoContent)
}

// ListFAQs godoc
// @Summary List FAQs
// @Tags faqs
// @Produce json
// @Success 200 {object} response.Response{data=[]models.FAQ}
// @Router /api/v1/faqs [get]
func (r *Routers) ListFAQs(c echo.Context) error {
	list, err := r.FAQs.ListFAQs(c.Request().Context())
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, list)
}

// CreateFAQ godoc
// @Summary Create FAQ
// @Tags faqs
// @Accept json
// @Produce json
// @Param request body request.FAQRequest true "FAQ"
// @Success 201 {object} response.Response{data=models.FAQ}
// @Failure 400 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/faqs [post]
func (r *Routers) CreateFAQ(c echo.Context) error {
	var req request.FAQRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	faq, err := r.FAQs.CreateFAQ(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, faq)
}

// UpdateFAQ godoc
// @Summary Update FAQ
// @Tags faqs
// @Accept json
// @Produce json
// @Param id path string true "FAQ ID" format(uuid)
// @Param request body request.FAQRequest true "FAQ"
// @Success 200 {object} response.Response{data=models.FAQ}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/faqs/{id} [put]
func (r *Routers) UpdateFAQ(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req request.FAQRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	faq, err := r.FAQs.UpdateFAQ(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, faq)
}

// DeleteFAQ godoc
// @Summary Delete FAQ
// @Tags faqs
// @Param id path string true "FAQ ID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/faqs/{id} [delete]
func (r *Routers) DeleteFAQ(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := r.FAQs.DeleteFAQ(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListPortfolio godoc
// @Summary List portfolio
// @Tags portfolio
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} response.Response{data=[]models.PortfolioItem}
// @Router /api/v1/portfolio [get]
func (r *Routers) ListPortfolio(c echo.Context) error {
	list, err := r.Portfolio.ListPortfolio(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, list)
}

// CreatePortfolioItem godoc
// @Summary Create portfolio item
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body request.PortfolioRequest true "Portfolio item"
// @Success 201 {object} response.Response{data=models.PortfolioItem}
// @Failure 400 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/portfolio [post]
func (r *Routers) CreatePortfolioItem(c echo.Context) error {
	var req request.PortfolioRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	item, err := r.Portfolio.CreatePortfolioItem(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, item)
}

// UpdatePortfolioItem godoc
// @Summary Update portfolio item
// @Tags portfolio
// @Accept json
// @Produce json
// @Param id path string true "Item ID" format(uuid)
// @Param request body request.PortfolioRequest true "Portfolio item"
// @Success 200 {object} response.Response{data=models.PortfolioItem}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/portfolio/{id} [put]
func (r *Routers) UpdatePortfolioItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req request.PortfolioRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	item, err := r.Portfolio.UpdatePortfolioItem(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, item)
}

// DeletePortfolioItem godoc
// @Summary Delete portfolio item
// @Tags portfolio
// @Param id path string true "Item ID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/portfolio/{id} [delete]
func (r *Routers) DeletePortfolioItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := r.Portfolio.DeletePortfolioItem(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
