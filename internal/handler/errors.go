package handler

import (
	"errors"
	"net/http"

	"floral-commerce/internal/dto"
	"floral-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

// writeError maps the service error taxonomy onto HTTP responses. Upstream
// provider failures never leak their details to the client.
func writeError(c echo.Context, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Message: ve.Message,
			Field:   ve.Field,
		})
	}

	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Resource not found."})
	}

	if service.IsIntegration(err) {
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Message: "An upstream service is unavailable. Please try again later.",
		})
	}

	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error."})
}
