package http

import (
	"net/http"

	"photostudio/internal/domain/models"
	"photostudio/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

// ListPublishedPosts godoc
// @Summary List published posts
// @Description Published posts, newest first, paginated.
// @Tags posts
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param per_page query int false "Posts per page (max 100)"
// @Success 200 {object} response.Response{data=blog.PostList}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/posts [get]
func (r *Routers) ListPublishedPosts(c echo.Context) error {
	var q request.PostListQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}

	list, err := r.Blog.ListPosts(c.Request().Context(), models.PostStatusPublished, q.Page, q.PerPage)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, list)
}

// ListAllPosts godoc
// @Summary List posts (admin)
// @Description Posts in any status, optionally filtered.
// @Tags posts
// @Produce json
// @Param status query string false "draft or published"
// @Param page query int false "Page number (1-based)"
// @Param per_page query int false "Posts per page (max 100)"
// @Success 200 {object} response.Response{data=blog.PostList}
// @Failure 400 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/admin/posts [get]
func (r *Routers) ListAllPosts(c echo.Context) error {
	var q request.PostListQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}

	list, err := r.Blog.ListPosts(c.Request().Context(), q.Status, q.Page, q.PerPage)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, list)
}

// GetPublishedPost godoc
// @Summary Get published post
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/posts/{slug} [get]
func (r *Routers) GetPublishedPost(c echo.Context) error {
	post, err := r.Blog.PublishedPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, post)
}

// GetPost godoc
// @Summary Get post by id (admin)
// @Tags posts
// @Produce json
// @Param id path string true "Post ID" format(uuid)
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/admin/posts/{id} [get]
func (r *Routers) GetPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	post, err := r.Blog.GetPost(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create post
// @Description The slug is derived from the title when omitted.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body request.PostRequest true "Post"
// @Success 201 {object} response.Response{data=models.Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Slug already taken"
// @Security AdminAuth
// @Router /api/v1/posts [post]
func (r *Routers) CreatePost(c echo.Context) error {
	var req request.PostRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	post, err := r.Blog.CreatePost(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID" format(uuid)
// @Param request body request.PostRequest true "Post"
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/posts/{id} [put]
func (r *Routers) UpdatePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req request.PostRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	post, err := r.Blog.UpdatePost(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, post)
}

// PublishPost godoc
// @Summary Publish or unpublish post
// @Description Publishes by default; send {"published": false} to move back to draft.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID" format(uuid)
// @Param request body request.PublishRequest false "Publication flag"
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/posts/{id}/publish [patch]
func (r *Routers) PublishPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req request.PublishRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	published := req.Published == nil || *req.Published

	post, err := r.Blog.SetPublished(c.Request().Context(), id, published)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete post
// @Tags posts
// @Param id path string true "Post ID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security AdminAuth
// @Router /api/v1/posts/{id} [delete]
func (r *Routers) DeletePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := r.Blog.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
