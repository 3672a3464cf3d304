package service

import (
	"context"
	"fmt"
	"time"

	"floral-commerce/internal/client"
	"floral-commerce/internal/event"
	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"
)

type OrderService struct {
	*Base[model.Order]
	orders   repository.OrderRepository
	tracking client.TrackingClient
	bus      *event.Bus
}

func NewOrderService(orders repository.OrderRepository, tracking client.TrackingClient, bus *event.Bus) *OrderService {
	return &OrderService{
		Base:     NewBase(orders, "LineItems", "LineItems.Product"),
		orders:   orders,
		tracking: tracking,
		bus:      bus,
	}
}

func (s *OrderService) Store(ctx context.Context, input *model.Order) (*model.Order, error) {
	order, err := s.Base.Store(ctx, input)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Name:    event.OrderCreated,
		Payload: event.OrderCreatedPayload{Order: order},
	})

	return order, nil
}

func (s *OrderService) Update(ctx context.Context, input map[string]any, entity *model.Order) (*model.Order, error) {
	previous := entity.Status

	if raw, ok := input["status"]; ok {
		next := model.OrderStatus(fmt.Sprint(raw))
		if next != previous {
			now := time.Now()
			switch next {
			case model.OrderStatusShipped:
				if entity.ShippedAt == nil {
					input["shipped_at"] = now
				}
			case model.OrderStatusDelivered:
				if entity.DeliveredAt == nil {
					input["delivered_at"] = now
				}
			}
		}
	}

	order, err := s.Base.Update(ctx, input, entity)
	if err != nil {
		return nil, err
	}

	if order.Status != previous {
		s.bus.Publish(ctx, event.Event{
			Name: event.OrderStatusChanged,
			Payload: event.OrderStatusChangedPayload{
				Order:          order,
				PreviousStatus: previous,
			},
		})
	}

	return order, nil
}

// TrackShipment looks up carrier tracking for an order. The carrier client
// degrades to mock or error payloads on its own, so this only fails when
// the order is missing or has no tracking number yet.
func (s *OrderService) TrackShipment(ctx context.Context, orderID uint) (*client.TrackingInfo, error) {
	order, err := s.GetByID(ctx, orderID, []string{})
	if err != nil {
		return nil, err
	}

	if order.TrackingNumber == nil || *order.TrackingNumber == "" {
		return nil, &ValidationError{Field: "tracking_number", Message: "Order has no tracking number."}
	}

	return s.tracking.GetTrackingInfo(ctx, *order.TrackingNumber), nil
}
