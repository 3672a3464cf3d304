package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"floral-commerce/internal/event"
	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"

	"gorm.io/gorm"
)

type LeadService struct {
	*Base[model.Lead]
	bus *event.Bus
}

func NewLeadService(leads repository.Repository[model.Lead], bus *event.Bus) *LeadService {
	return &LeadService{
		Base: NewBase(leads),
		bus:  bus,
	}
}

func (s *LeadService) Store(ctx context.Context, input *model.Lead) (*model.Lead, error) {
	if input.Status == "" {
		input.Status = model.LeadStatusNew
	}
	return s.Base.Store(ctx, input)
}

func (s *LeadService) Update(ctx context.Context, input map[string]any, entity *model.Lead) (*model.Lead, error) {
	previous := entity.Status

	lead, err := s.Base.Update(ctx, input, entity)
	if err != nil {
		return nil, err
	}

	if lead.Status != previous {
		s.bus.Publish(ctx, event.Event{
			Name: event.LeadStatusChanged,
			Payload: event.LeadStatusChangedPayload{
				Lead:           lead,
				PreviousStatus: previous,
			},
		})
	}

	return lead, nil
}

type QuoteRequestService struct {
	*Base[model.QuoteRequest]
	bus *event.Bus
}

func NewQuoteRequestService(quoteRequests repository.Repository[model.QuoteRequest], bus *event.Bus) *QuoteRequestService {
	return &QuoteRequestService{
		Base: NewBase(quoteRequests),
		bus:  bus,
	}
}

func (s *QuoteRequestService) Store(ctx context.Context, input *model.QuoteRequest) (*model.QuoteRequest, error) {
	if input.Status == "" {
		input.Status = model.QuoteRequestStatusNew
	}

	quoteRequest, err := s.Base.Store(ctx, input)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Name:    event.QuoteRequestCreated,
		Payload: event.QuoteRequestCreatedPayload{QuoteRequest: quoteRequest},
	})

	return quoteRequest, nil
}

type ContactMessageService struct {
	*Base[model.ContactMessage]
	bus *event.Bus
}

func NewContactMessageService(contactMessages repository.Repository[model.ContactMessage], bus *event.Bus) *ContactMessageService {
	return &ContactMessageService{
		Base: NewBase(contactMessages),
		bus:  bus,
	}
}

func (s *ContactMessageService) Store(ctx context.Context, input *model.ContactMessage) (*model.ContactMessage, error) {
	if input.Status == "" {
		input.Status = model.ContactMessageStatusNew
	}

	contactMessage, err := s.Base.Store(ctx, input)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Name:    event.ContactMessageCreated,
		Payload: event.ContactMessageCreatedPayload{ContactMessage: contactMessage},
	})

	return contactMessage, nil
}

type NotificationService struct {
	*Base[model.Notification]
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		Base:          NewBase(notifications),
		notifications: notifications,
	}
}

func (s *NotificationService) ListUnread(ctx context.Context) ([]*model.Notification, error) {
	return s.notifications.ListUnread(ctx)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	err := s.notifications.MarkRead(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type NewsletterSubscriberService struct {
	*Base[model.NewsletterSubscriber]
	subscribers repository.NewsletterSubscriberRepository
}

func NewNewsletterSubscriberService(subscribers repository.NewsletterSubscriberRepository) *NewsletterSubscriberService {
	return &NewsletterSubscriberService{
		Base:        NewBase(subscribers),
		subscribers: subscribers,
	}
}

// Subscribe registers an email address, reactivating a previously
// unsubscribed record instead of creating a duplicate.
func (s *NewsletterSubscriberService) Subscribe(ctx context.Context, input *model.NewsletterSubscriber) (*model.NewsletterSubscriber, error) {
	if input.Email == "" {
		return nil, &ValidationError{Field: "email", Message: "Email is required."}
	}

	now := time.Now()

	existing, err := s.subscribers.FindByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("look up subscriber: %w", err)
		}

		input.Status = model.SubscriberStatusActive
		input.SubscribedAt = &now
		return s.Base.Store(ctx, input)
	}

	if existing.Status == model.SubscriberStatusActive {
		return existing, nil
	}

	return s.subscribers.Update(ctx, existing, map[string]any{
		"status":          model.SubscriberStatusActive,
		"subscribed_at":   now,
		"unsubscribed_at": nil,
	})
}

func (s *NewsletterSubscriberService) Unsubscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	existing, err := s.subscribers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if existing.Status == model.SubscriberStatusUnsubscribed {
		return existing, nil
	}

	return s.subscribers.Update(ctx, existing, map[string]any{
		"status":          model.SubscriberStatusUnsubscribed,
		"unsubscribed_at": time.Now(),
	})
}
