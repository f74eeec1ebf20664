package http

import (
	"net/http"

	"photostudio/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindValid binds the request into req and runs struct validation.
func bindValid(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format").SetInternal(err)
	}

	return c.Validate(req)
}

func paramID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}

	return id, nil
}

func ok(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, response.SuccessResponse(data))
}
