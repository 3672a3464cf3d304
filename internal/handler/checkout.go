package handler

import (
	"errors"
	"net/http"
	"net/url"

	"floral-commerce/internal/dto"
	"floral-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
}

func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Create opens a hosted checkout session for the posted cart and returns
// the redirect URL.
func (h *CheckoutHandler) Create(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	items := make([]service.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CartItem{PriceID: item.PriceID, Quantity: item.Quantity})
	}

	redirect, err := h.checkout.CreateSession(c.Request().Context(), items)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CheckoutResponse{
		SessionID: redirect.SessionID,
		URL:       redirect.URL,
	})
}

// Success is the return URL the provider redirects the customer to. It
// always lands the customer back on the storefront with a flash message;
// errors never strand the browser on an API response.
func (h *CheckoutHandler) Success(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return redirectWithError(c, "Invalid checkout session.")
	}

	order, err := h.checkout.ConfirmSession(c.Request().Context(), sessionID)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return redirectWithError(c, ve.Message)
		}
		return redirectWithError(c, "There was an issue processing your order. Please contact support.")
	}

	return redirectWithSuccess(c, "Thank you for your order! Order #"+order.OrderNumber)
}

func redirectWithError(c echo.Context, message string) error {
	return c.Redirect(http.StatusFound, "/?error="+url.QueryEscape(message))
}

func redirectWithSuccess(c echo.Context, message string) error {
	return c.Redirect(http.StatusFound, "/?success="+url.QueryEscape(message))
}
