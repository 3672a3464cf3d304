package handler

import (
	"net/http"

	"floral-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Tracking returns carrier tracking for an order. The payload always has a
// usable shape; carrier outages surface as an error-status payload, not an
// HTTP failure.
func (h *OrderHandler) Tracking(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	info, err := h.orders.TrackShipment(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, info)
}
