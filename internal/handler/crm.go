package handler

import (
	"net/http"

	"floral-commerce/internal/dto"
	"floral-commerce/internal/model"
	"floral-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) ListUnread(c echo.Context) error {
	notifications, err := h.notifications.ListUnread(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type NewsletterHandler struct {
	subscribers *service.NewsletterSubscriberService
}

func NewNewsletterHandler(subscribers *service.NewsletterSubscriberService) *NewsletterHandler {
	return &NewsletterHandler{subscribers: subscribers}
}

func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req dto.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	subscriber, err := h.subscribers.Subscribe(c.Request().Context(), &model.NewsletterSubscriber{
		Email:     req.Email,
		FirstName: optional(req.FirstName),
		LastName:  optional(req.LastName),
		Source:    optional(req.Source),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, subscriber)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	var req dto.UnsubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	subscriber, err := h.subscribers.Unsubscribe(c.Request().Context(), req.Email)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, subscriber)
}
