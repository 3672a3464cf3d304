package service

import (
	"log/slog"

	"floral-commerce/internal/mailer"
	"floral-commerce/internal/model"
)

// Enqueuer is the slice of the mail queue the email service needs.
type Enqueuer interface {
	Enqueue(msg mailer.Message)
}

// EmailService decides which transactional email, if any, an entity
// lifecycle event warrants. All sends are queued and best-effort.
type EmailService struct {
	queue  Enqueuer
	logger *slog.Logger
}

func NewEmailService(queue Enqueuer, logger *slog.Logger) *EmailService {
	return &EmailService{
		queue:  queue,
		logger: logger,
	}
}

func (s *EmailService) SendOrderConfirmation(order *model.Order) bool {
	if order.CustomerEmail == nil || *order.CustomerEmail == "" {
		s.logger.Warn("cannot send order confirmation: no customer email", "order_id", order.ID)
		return false
	}

	s.queue.Enqueue(mailer.Message{
		To:       *order.CustomerEmail,
		Subject:  "Order Confirmation - " + order.OrderNumber,
		Template: mailer.TemplateOrderConfirmation,
		Data:     orderMailData(order),
	})

	s.logger.Info("order confirmation email queued",
		"order_id", order.ID,
		"email", *order.CustomerEmail,
	)
	return true
}

func (s *EmailService) SendOrderShipped(order *model.Order) bool {
	if order.CustomerEmail == nil || *order.CustomerEmail == "" {
		s.logger.Warn("cannot send order shipped email: no customer email", "order_id", order.ID)
		return false
	}

	data := orderMailData(order)
	if order.TrackingNumber != nil {
		data["TrackingNumber"] = *order.TrackingNumber
	}

	s.queue.Enqueue(mailer.Message{
		To:       *order.CustomerEmail,
		Subject:  "Your Order Has Shipped - " + order.OrderNumber,
		Template: mailer.TemplateOrderShipped,
		Data:     data,
	})

	s.logger.Info("order shipped email queued",
		"order_id", order.ID,
		"email", *order.CustomerEmail,
		"tracking_number", order.TrackingNumber,
	)
	return true
}

func (s *EmailService) SendOrderStatusUpdate(order *model.Order, previousStatus model.OrderStatus) bool {
	if order.CustomerEmail == nil || *order.CustomerEmail == "" {
		s.logger.Warn("cannot send order status update: no customer email", "order_id", order.ID)
		return false
	}

	if order.Status == model.OrderStatusShipped {
		return s.SendOrderShipped(order)
	}

	if !shouldSendStatusUpdate(order.Status, previousStatus) {
		return false
	}

	data := orderMailData(order)
	data["Status"] = string(order.Status)
	data["PreviousStatus"] = string(previousStatus)

	s.queue.Enqueue(mailer.Message{
		To:       *order.CustomerEmail,
		Subject:  "Order Update - " + order.OrderNumber,
		Template: mailer.TemplateOrderStatusUpdate,
		Data:     data,
	})

	s.logger.Info("order status update email queued",
		"order_id", order.ID,
		"email", *order.CustomerEmail,
		"from_status", previousStatus,
		"to_status", order.Status,
	)
	return true
}

func (s *EmailService) SendQuoteRequestConfirmation(quoteRequest *model.QuoteRequest) bool {
	if quoteRequest.Email == "" {
		s.logger.Warn("cannot send quote confirmation: no email", "quote_request_id", quoteRequest.ID)
		return false
	}

	s.queue.Enqueue(mailer.Message{
		To:       quoteRequest.Email,
		Subject:  "We Received Your Quote Request",
		Template: mailer.TemplateQuoteRequestConfirmation,
		Data: map[string]any{
			"Name":        quoteRequest.Name,
			"ServiceType": quoteRequest.ServiceType,
		},
	})

	s.logger.Info("quote request confirmation email queued",
		"quote_request_id", quoteRequest.ID,
		"email", quoteRequest.Email,
	)
	return true
}

func (s *EmailService) SendContactFormConfirmation(contactMessage *model.ContactMessage) bool {
	if contactMessage.Email == "" {
		s.logger.Warn("cannot send contact confirmation: no email", "contact_message_id", contactMessage.ID)
		return false
	}

	s.queue.Enqueue(mailer.Message{
		To:       contactMessage.Email,
		Subject:  "Thanks for Getting in Touch",
		Template: mailer.TemplateContactFormConfirmation,
		Data: map[string]any{
			"Name": contactMessage.Name,
		},
	})

	s.logger.Info("contact form confirmation email queued",
		"contact_message_id", contactMessage.ID,
		"email", contactMessage.Email,
	)
	return true
}

// Status changes outside this list are not worth a customer email.
func shouldSendStatusUpdate(newStatus, previousStatus model.OrderStatus) bool {
	switch newStatus {
	case model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
		return newStatus != previousStatus
	}
	return false
}

func orderMailData(order *model.Order) map[string]any {
	customerName := "there"
	if order.CustomerFirstName != nil && *order.CustomerFirstName != "" {
		customerName = *order.CustomerFirstName
	}

	data := map[string]any{
		"CustomerName": customerName,
		"OrderNumber":  order.OrderNumber,
		"Subtotal":     order.Subtotal.StringFixed(2),
		"TotalAmount":  order.TotalAmount.StringFixed(2),
		"Currency":     order.Currency,
	}
	if order.TaxAmount.Valid {
		data["TaxAmount"] = order.TaxAmount.Decimal.StringFixed(2)
	}
	if order.ShippingCost.Valid {
		data["ShippingCost"] = order.ShippingCost.Decimal.StringFixed(2)
	}

	return data
}
