package service

import (
	"context"
	"fmt"
	"log/slog"

	"floral-commerce/internal/event"
	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"
)

// RegisterListeners wires entity lifecycle events to their notification and
// email side effects. Listener failures are logged and swallowed; the
// triggering mutation has already committed and must stay committed.
func RegisterListeners(bus *event.Bus, notifications repository.NotificationRepository, email *EmailService, logger *slog.Logger) {
	createNotification := func(ctx context.Context, n *model.Notification) {
		if _, err := notifications.Store(ctx, n); err != nil {
			logger.Error("failed to create notification", "title", n.Title, "error", err)
		}
	}

	bus.Subscribe(event.LeadStatusChanged, func(ctx context.Context, evt event.Event) {
		p, ok := evt.Payload.(event.LeadStatusChangedPayload)
		if !ok {
			return
		}

		createNotification(ctx, &model.Notification{
			Type:       "primary",
			Title:      "Lead Status Updated",
			Message:    fmt.Sprintf("Lead %s status updated to %s", p.Lead.Name, p.Lead.Status),
			ActionURL:  strPtr(fmt.Sprintf("/admin/leads/%d", p.Lead.ID)),
			ActionText: strPtr("View Lead"),
		})
	})

	bus.Subscribe(event.QuoteRequestCreated, func(ctx context.Context, evt event.Event) {
		p, ok := evt.Payload.(event.QuoteRequestCreatedPayload)
		if !ok {
			return
		}

		createNotification(ctx, &model.Notification{
			Type:       "info",
			Title:      "New Quote Request",
			Message:    fmt.Sprintf("%s requested a quote for %s", p.QuoteRequest.Name, p.QuoteRequest.ServiceType),
			ActionURL:  strPtr(fmt.Sprintf("/admin/quote-requests/%d", p.QuoteRequest.ID)),
			ActionText: strPtr("View Quote Request"),
		})

		email.SendQuoteRequestConfirmation(p.QuoteRequest)
	})

	bus.Subscribe(event.ContactMessageCreated, func(ctx context.Context, evt event.Event) {
		p, ok := evt.Payload.(event.ContactMessageCreatedPayload)
		if !ok {
			return
		}

		createNotification(ctx, &model.Notification{
			Type:       "info",
			Title:      "New Contact Message",
			Message:    fmt.Sprintf("%s sent a message", p.ContactMessage.Name),
			ActionURL:  strPtr(fmt.Sprintf("/admin/contact-messages/%d", p.ContactMessage.ID)),
			ActionText: strPtr("View Message"),
		})

		email.SendContactFormConfirmation(p.ContactMessage)
	})

	bus.Subscribe(event.OrderCreated, func(ctx context.Context, evt event.Event) {
		p, ok := evt.Payload.(event.OrderCreatedPayload)
		if !ok {
			return
		}

		email.SendOrderConfirmation(p.Order)
	})

	bus.Subscribe(event.OrderStatusChanged, func(ctx context.Context, evt event.Event) {
		p, ok := evt.Payload.(event.OrderStatusChangedPayload)
		if !ok {
			return
		}

		email.SendOrderStatusUpdate(p.Order, p.PreviousStatus)
	})
}
