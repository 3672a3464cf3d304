package service

import (
	"context"
	"testing"

	"floral-commerce/internal/client"
	"floral-commerce/internal/event"
	"floral-commerce/internal/mailer"
	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockTracker struct {
	lastNumber string
}

func (m *mockTracker) GetTrackingInfo(_ context.Context, trackingNumber string) *client.TrackingInfo {
	m.lastNumber = trackingNumber
	return &client.TrackingInfo{
		TrackingNumber: trackingNumber,
		Status:         "In Transit",
		StatusCode:     "IN_TRANSIT",
	}
}

func newOrderFixture(t *testing.T) (*OrderService, *gorm.DB, *recordingQueue, *mockTracker) {
	t.Helper()

	db := newTestDB(t)
	bus := event.NewBus()
	queue := &recordingQueue{}
	tracker := &mockTracker{}

	email := NewEmailService(queue, testLogger())
	RegisterListeners(bus, repository.NewNotificationRepository(db), email, testLogger())

	svc := NewOrderService(repository.NewOrderRepository(db), tracker, bus)
	return svc, db, queue, tracker
}

func seedOrder(t *testing.T, svc *OrderService, email string) *model.Order {
	t.Helper()

	order, err := svc.Store(context.Background(), &model.Order{
		Status:        model.OrderStatusProcessing,
		Subtotal:      decimal.New(5000, -2),
		TotalAmount:   decimal.New(5000, -2),
		Currency:      "USD",
		PaymentStatus: model.PaymentStatusPaid,
		CustomerEmail: strPtr(email),
	})
	require.NoError(t, err)
	return order
}

func TestOrderNumberGenerated(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)

	order := seedOrder(t, svc, "buyer@example.com")
	assert.Regexp(t, `^ORD-[0-9A-F]{16}$`, order.OrderNumber)
}

func TestOrderStoreSendsConfirmation(t *testing.T) {
	svc, _, queue, _ := newOrderFixture(t)

	order := seedOrder(t, svc, "buyer@example.com")

	messages := queue.all()
	require.Len(t, messages, 1)
	assert.Equal(t, mailer.TemplateOrderConfirmation, messages[0].Template)
	assert.Equal(t, "buyer@example.com", messages[0].To)
	assert.Contains(t, messages[0].Subject, order.OrderNumber)
}

func TestOrderShippedTransitionStampsAndEmails(t *testing.T) {
	svc, _, queue, _ := newOrderFixture(t)
	order := seedOrder(t, svc, "buyer@example.com")

	updated, err := svc.Update(context.Background(), map[string]any{
		"status":          "shipped",
		"tracking_number": "9400100000000000000000",
	}, order)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusShipped, updated.Status)
	require.NotNil(t, updated.ShippedAt)

	messages := queue.all()
	require.Len(t, messages, 2) // confirmation + shipped
	shipped := messages[1]
	assert.Equal(t, mailer.TemplateOrderShipped, shipped.Template)
	assert.Equal(t, "9400100000000000000000", shipped.Data["TrackingNumber"])
}

func TestOrderDeliveredTransitionStamps(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)
	order := seedOrder(t, svc, "buyer@example.com")

	updated, err := svc.Update(context.Background(), map[string]any{"status": "delivered"}, order)
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveredAt)
	assert.Nil(t, updated.ShippedAt)
}

func TestOrderNonStatusUpdateSendsNothing(t *testing.T) {
	svc, _, queue, _ := newOrderFixture(t)
	order := seedOrder(t, svc, "buyer@example.com")

	_, err := svc.Update(context.Background(), map[string]any{"shipping_method": "ground"}, order)
	require.NoError(t, err)

	assert.Len(t, queue.all(), 1) // just the confirmation
}

func TestTrackShipment(t *testing.T) {
	svc, db, _, tracker := newOrderFixture(t)
	order := seedOrder(t, svc, "buyer@example.com")

	_, err := svc.TrackShipment(context.Background(), order.ID)
	require.True(t, IsValidation(err), "order without tracking number should be rejected")

	require.NoError(t, db.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Update("tracking_number", "9400123").Error)

	info, err := svc.TrackShipment(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "9400123", info.TrackingNumber)
	assert.Equal(t, "9400123", tracker.lastNumber)

	_, err = svc.TrackShipment(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
