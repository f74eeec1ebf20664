package http

import (
	"log/slog"
	"net/http"

	"photostudio/internal/middleware"
	"photostudio/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

// CreateClient godoc
// @Summary Create client
// @Description Creates a client portal account. The password is stored hashed and never returned.
// @Tags clients
// @Accept json
// @Produce json
// @Param request body request.ClientRequest true "Client"
// @Success 201 {object} response.Response{data=models.Client}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Email already registered"
// @Security AdminAuth
// @Router /api/v1/clients [post]
func (r *Routers) CreateClient(c echo.Context) error {
	var req request.ClientRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	client, err := r.Clients.CreateClient(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, client)
}

// ListClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Client}
// @Security AdminAuth
// @Router /api/v1/clients [get]
func (r *Routers) ListClients(c echo.Context) error {
	list, err := r.Clients.ListClients(c.Request().Context())
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, list)
}

// GetClient godoc
// @Summary Get client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Success 200 {object} response.Response{data=models.Client}
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/clients/{id} [get]
func (r *Routers) GetClient(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	client, err := r.Clients.GetClient(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, client)
}

// DeleteClient godoc
// @Summary Delete client
// @Description Deletes the client together with its galleries and selections.
// @Tags clients
// @Param id path string true "Client ID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/clients/{id} [delete]
func (r *Routers) DeleteClient(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := r.Clients.DeleteClient(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateGallery godoc
// @Summary Create gallery
// @Tags galleries
// @Accept json
// @Produce json
// @Param request body request.GalleryRequest true "Gallery"
// @Success 201 {object} response.Response{data=models.Gallery}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Client not found"
// @Security AdminAuth
// @Router /api/v1/galleries [post]
func (r *Routers) CreateGallery(c echo.Context) error {
	var req request.GalleryRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	g, err := r.Galleries.CreateGallery(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, g)
}

// ListGalleries godoc
// @Summary List galleries
// @Tags galleries
// @Produce json
// @Param status query string false "proofing or selection_complete"
// @Success 200 {object} response.Response{data=[]models.Gallery}
// @Failure 400 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/galleries [get]
func (r *Routers) ListGalleries(c echo.Context) error {
	list, err := r.Galleries.ListGalleries(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, list)
}

// GetGallery godoc
// @Summary Get gallery
// @Tags galleries
// @Produce json
// @Param id path string true "Gallery ID" format(uuid)
// @Success 200 {object} response.Response{data=models.Gallery}
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/galleries/{id} [get]
func (r *Routers) GetGallery(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	g, err := r.Galleries.GetGallery(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, g)
}

// UpdateGalleryImages godoc
// @Summary Replace gallery images
// @Tags galleries
// @Accept json
// @Produce json
// @Param id path string true "Gallery ID" format(uuid)
// @Param request body request.GalleryImagesRequest true "Images"
// @Success 200 {object} response.Response{data=models.Gallery}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/galleries/{id}/images [put]
func (r *Routers) UpdateGalleryImages(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req request.GalleryImagesRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	g, err := r.Galleries.UpdateImages(c.Request().Context(), id, req.Images)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, g)
}

// MarkGalleryRead godoc
// @Summary Set gallery read flag
// @Tags galleries
// @Accept json
// @Param id path string true "Gallery ID" format(uuid)
// @Param request body request.ReadRequest true "Read flag"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/galleries/{id}/read [patch]
func (r *Routers) MarkGalleryRead(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req request.ReadRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	if err := r.Galleries.SetRead(c.Request().Context(), id, *req.Read); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteGallery godoc
// @Summary Delete gallery
// @Tags galleries
// @Param id path string true "Gallery ID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/galleries/{id} [delete]
func (r *Routers) DeleteGallery(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := r.Galleries.DeleteGallery(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ClientGalleries godoc
// @Summary My galleries
// @Description Galleries of the authenticated client with watermarked previews.
// @Tags client-portal
// @Produce json
// @Success 200 {object} response.Response{data=[]models.ProofGallery}
// @Failure 401 {object} response.ErrorResponse
// @Security ClientAuth
// @Router /api/v1/client/galleries [get]
func (r *Routers) ClientGalleries(c echo.Context) error {
	claims, found := middleware.ClientFromContext(c)
	if !found {
		return echo.ErrUnauthorized
	}

	list, err := r.Galleries.ClientGalleries(c.Request().Context(), claims.ClientID)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, list)
}

// ClientGallery godoc
// @Summary My gallery
// @Description One gallery of the authenticated client with watermarked previews.
// @Tags client-portal
// @Produce json
// @Param id path string true "Gallery ID" format(uuid)
// @Success 200 {object} response.Response{data=models.ProofGallery}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Gallery belongs to another client"
// @Failure 404 {object} response.ErrorResponse
// @Security ClientAuth
// @Router /api/v1/client/galleries/{id} [get]
func (r *Routers) ClientGallery(c echo.Context) error {
	claims, found := middleware.ClientFromContext(c)
	if !found {
		return echo.ErrUnauthorized
	}

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	g, err := r.Galleries.ClientGallery(c.Request().Context(), claims.ClientID, id)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, g)
}

// SubmitSelection godoc
// @Summary Submit photo selection
// @Description Replaces the selection of a gallery and completes it. The studio is notified by email.
// @Tags client-portal
// @Accept json
// @Produce json
// @Param request body request.SelectionRequest true "Selection"
// @Success 200 {object} response.Response{data=models.ProofGallery}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ClientAuth
// @Router /api/v1/client/selections [post]
func (r *Routers) SubmitSelection(c echo.Context) error {
	const op = "http.routers.SubmitSelection"

	claims, found := middleware.ClientFromContext(c)
	if !found {
		return echo.ErrUnauthorized
	}

	var req request.SelectionRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	g, err := r.Galleries.SubmitSelection(c.Request().Context(), claims.ClientID, req)
	if err != nil {
		return err
	}

	r.log.Info("selection accepted",
		slog.String("op", op),
		slog.String("gallery_id", g.ID.String()),
		slog.Int("count", len(g.Selections)),
	)

	return ok(c, http.StatusOK, g)
}
