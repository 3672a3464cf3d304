// Package event carries entity lifecycle events from mutating service
// operations to their side-effect listeners. Publishing is synchronous and
// in-process; listeners must never fail the triggering mutation, so handler
// errors stay inside the handler.
package event

import (
	"context"
	"sync"

	"floral-commerce/internal/model"
)

type Name string

const (
	OrderCreated          Name = "order.created"
	OrderStatusChanged    Name = "order.status_changed"
	LeadStatusChanged     Name = "lead.status_changed"
	QuoteRequestCreated   Name = "quote_request.created"
	ContactMessageCreated Name = "contact_message.created"
)

type Event struct {
	Name    Name
	Payload any
}

type OrderCreatedPayload struct {
	Order *model.Order
}

type OrderStatusChangedPayload struct {
	Order          *model.Order
	PreviousStatus model.OrderStatus
}

type LeadStatusChangedPayload struct {
	Lead           *model.Lead
	PreviousStatus model.LeadStatus
}

type QuoteRequestCreatedPayload struct {
	QuoteRequest *model.QuoteRequest
}

type ContactMessageCreatedPayload struct {
	ContactMessage *model.ContactMessage
}

type Handler func(ctx context.Context, evt Event)

type Bus struct {
	mu       sync.RWMutex
	handlers map[Name][]Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Name][]Handler),
	}
}

func (b *Bus) Subscribe(name Name, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

func (b *Bus) Publish(ctx context.Context, evt Event) {
	b.mu.RLock()
	handlers := b.handlers[evt.Name]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, evt)
	}
}
