package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"floral-commerce/internal/client"
	"floral-commerce/internal/mailer"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Shared test fixtures

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, client.AutoMigrate(db))
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubStripe lets each test script the provider's responses.
type stubStripe struct {
	createSession  func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	getSession     func(sessionID string) (*stripe.CheckoutSession, error)
	products       []*stripe.Product
	pricesByProd   map[string][]*stripe.Price
	shippingRates  []*stripe.ShippingRate
	getSessionHits int
}

func (s *stubStripe) CreateCheckoutSession(_ context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if s.createSession == nil {
		return &stripe.CheckoutSession{ID: "cs_test_stub", URL: "https://checkout.example/cs_test_stub"}, nil
	}
	return s.createSession(params)
}

func (s *stubStripe) GetCheckoutSession(_ context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	s.getSessionHits++
	if s.getSession == nil {
		return nil, fmt.Errorf("no session scripted")
	}
	return s.getSession(sessionID)
}

func (s *stubStripe) ListProducts(_ context.Context, _ int64) ([]*stripe.Product, error) {
	return s.products, nil
}

func (s *stubStripe) ListPrices(_ context.Context, stripeProductID string) ([]*stripe.Price, error) {
	return s.pricesByProd[stripeProductID], nil
}

func (s *stubStripe) ListShippingRates(_ context.Context) ([]*stripe.ShippingRate, error) {
	return s.shippingRates, nil
}

// recordingQueue captures enqueued mail instead of delivering it.
type recordingQueue struct {
	mu       sync.Mutex
	messages []mailer.Message
}

func (q *recordingQueue) Enqueue(msg mailer.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, msg)
}

func (q *recordingQueue) all() []mailer.Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]mailer.Message(nil), q.messages...)
}
