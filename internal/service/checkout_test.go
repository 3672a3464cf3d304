package service

import (
	"context"
	"testing"

	"floral-commerce/internal/event"
	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
	"gorm.io/gorm"
)

func newCheckoutFixture(t *testing.T, stub *stubStripe) (*CheckoutService, *gorm.DB, *event.Bus) {
	t.Helper()

	db := newTestDB(t)
	bus := event.NewBus()
	svc := NewCheckoutService(
		stub,
		repository.NewOrderRepository(db),
		repository.NewLineItemRepository(db),
		repository.NewProductRepository(db),
		repository.NewPriceRepository(db),
		bus,
		"https://shop.example",
		testLogger(),
	)

	return svc, db, bus
}

func seedProductWithPrice(t *testing.T, db *gorm.DB, stripeProductID, stripePriceID string, active bool) *model.Product {
	t.Helper()

	product := &model.Product{
		StripeProductID: strPtr(stripeProductID),
		Name:            "Spring Bouquet",
		Slug:            "spring-bouquet-" + stripePriceID,
		Description:     "Seasonal arrangement",
		IsActive:        true,
	}
	require.NoError(t, db.Create(product).Error)

	price := &model.Price{
		StripePriceID:   stripePriceID,
		ProductID:       product.ID,
		Active:          active,
		Currency:        "USD",
		Type:            model.PriceTypeOneTime,
		UnitAmount:      decimal.New(5000, -2),
		UnitAmountMinor: 5000,
		IsCurrent:       true,
	}
	require.NoError(t, db.Create(price).Error)

	return product
}

func TestCreateSessionEmptyCart(t *testing.T) {
	svc, _, _ := newCheckoutFixture(t, &stubStripe{})

	_, err := svc.CreateSession(context.Background(), nil)
	assert.True(t, IsValidation(err))
}

func TestCreateSessionQuantityBounds(t *testing.T) {
	svc, db, _ := newCheckoutFixture(t, &stubStripe{})
	seedProductWithPrice(t, db, "prod_1", "price_1", true)

	for _, qty := range []int64{0, 100, -1} {
		_, err := svc.CreateSession(context.Background(), []CartItem{{PriceID: "price_1", Quantity: qty}})
		assert.True(t, IsValidation(err), "quantity %d should be rejected", qty)
	}
}

func TestCreateSessionUnknownPrice(t *testing.T) {
	svc, _, _ := newCheckoutFixture(t, &stubStripe{})

	_, err := svc.CreateSession(context.Background(), []CartItem{{PriceID: "price_missing", Quantity: 1}})
	require.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "invalid")
}

func TestCreateSessionInactivePrice(t *testing.T) {
	svc, db, _ := newCheckoutFixture(t, &stubStripe{})
	seedProductWithPrice(t, db, "prod_1", "price_old", false)

	_, err := svc.CreateSession(context.Background(), []CartItem{{PriceID: "price_old", Quantity: 1}})
	require.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "no longer available")
}

func TestCreateSessionReturnsRedirect(t *testing.T) {
	var captured *stripe.CheckoutSessionParams
	stub := &stubStripe{
		createSession: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			captured = params
			return &stripe.CheckoutSession{ID: "cs_123", URL: "https://checkout.example/cs_123"}, nil
		},
	}
	svc, db, _ := newCheckoutFixture(t, stub)
	seedProductWithPrice(t, db, "prod_1", "price_1", true)

	redirect, err := svc.CreateSession(context.Background(), []CartItem{{PriceID: "price_1", Quantity: 2}})
	require.NoError(t, err)

	assert.Equal(t, "cs_123", redirect.SessionID)
	assert.Equal(t, "https://checkout.example/cs_123", redirect.URL)

	require.NotNil(t, captured)
	assert.Equal(t, "https://shop.example/checkout/success?session_id={CHECKOUT_SESSION_ID}", *captured.SuccessURL)
	assert.Equal(t, "https://shop.example/", *captured.CancelURL)
	require.Len(t, captured.LineItems, 1)
	assert.Equal(t, int64(2), *captured.LineItems[0].Quantity)
}

func completedSession(id string) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:             id,
		AmountSubtotal: 5000,
		AmountTotal:    5400,
		Currency:       stripe.CurrencyUSD,
		PaymentIntent:  &stripe.PaymentIntent{ID: "pi_123"},
		Customer:       &stripe.Customer{ID: "cus_123"},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Email: "mary.jane@example.com",
			Name:  "Mary Jane Watson",
			Phone: "+13035550100",
		},
		ShippingDetails: &stripe.ShippingDetails{
			Address: &stripe.Address{
				Line1:      "100 Main St",
				City:       "Denver",
				State:      "CO",
				PostalCode: "80202",
				Country:    "US",
			},
		},
		LineItems: &stripe.LineItemList{
			Data: []*stripe.LineItem{
				{
					ID:          "li_1",
					Description: "Spring Bouquet",
					Quantity:    1,
					AmountTotal: 5000,
					Currency:    stripe.CurrencyUSD,
					Price: &stripe.Price{
						ID:         "price_1",
						UnitAmount: 5000,
						Product:    &stripe.Product{ID: "prod_1", Name: "Spring Bouquet"},
					},
				},
			},
		},
	}
}

func TestConfirmSessionMaterializesOrder(t *testing.T) {
	stub := &stubStripe{
		getSession: func(sessionID string) (*stripe.CheckoutSession, error) {
			return completedSession(sessionID), nil
		},
	}
	svc, db, bus := newCheckoutFixture(t, stub)
	product := seedProductWithPrice(t, db, "prod_1", "price_1", true)

	var created []*model.Order
	bus.Subscribe(event.OrderCreated, func(_ context.Context, evt event.Event) {
		p := evt.Payload.(event.OrderCreatedPayload)
		created = append(created, p.Order)
	})

	order, err := svc.ConfirmSession(context.Background(), "cs_ok")
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusProcessing, order.Status)
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "50.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "54.00", order.TotalAmount.StringFixed(2))
	require.True(t, order.TaxAmount.Valid)
	assert.Equal(t, "4.00", order.TaxAmount.Decimal.StringFixed(2))
	assert.False(t, order.ShippingCost.Valid)
	assert.Equal(t, "USD", order.Currency)

	// total = subtotal + tax + shipping
	sum := order.Subtotal.Add(order.TaxAmount.Decimal)
	assert.True(t, sum.Equal(order.TotalAmount))

	require.NotNil(t, order.CustomerFirstName)
	assert.Equal(t, "Mary", *order.CustomerFirstName)
	require.NotNil(t, order.CustomerLastName)
	assert.Equal(t, "Jane Watson", *order.CustomerLastName)
	require.NotNil(t, order.CustomerEmail)
	assert.Equal(t, "mary.jane@example.com", *order.CustomerEmail)
	require.NotNil(t, order.ShippingCity)
	assert.Equal(t, "Denver", *order.ShippingCity)
	assert.NotNil(t, order.PaymentCompletedAt)
	assert.Regexp(t, `^ORD-[0-9A-F]{16}$`, order.OrderNumber)

	var items []model.LineItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Spring Bouquet", items[0].ProductName)
	require.NotNil(t, items[0].ProductID)
	assert.Equal(t, product.ID, *items[0].ProductID)
	assert.Equal(t, "50.00", items[0].UnitPrice.StringFixed(2))

	require.Len(t, created, 1)
	assert.Equal(t, order.ID, created[0].ID)
}

func TestConfirmSessionIdempotent(t *testing.T) {
	stub := &stubStripe{
		getSession: func(sessionID string) (*stripe.CheckoutSession, error) {
			return completedSession(sessionID), nil
		},
	}
	svc, db, _ := newCheckoutFixture(t, stub)
	seedProductWithPrice(t, db, "prod_1", "price_1", true)

	first, err := svc.ConfirmSession(context.Background(), "cs_once")
	require.NoError(t, err)

	second, err := svc.ConfirmSession(context.Background(), "cs_once")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, stub.getSessionHits)

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConfirmSessionMissingID(t *testing.T) {
	svc, _, _ := newCheckoutFixture(t, &stubStripe{})

	_, err := svc.ConfirmSession(context.Background(), "")
	assert.True(t, IsValidation(err))
}

func TestConfirmSessionProviderFailure(t *testing.T) {
	stub := &stubStripe{} // getSession unscripted, returns an error
	svc, db, _ := newCheckoutFixture(t, stub)

	_, err := svc.ConfirmSession(context.Background(), "cs_gone")
	assert.True(t, IsIntegration(err))

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestConfirmSessionWithShippingCost(t *testing.T) {
	stub := &stubStripe{
		getSession: func(sessionID string) (*stripe.CheckoutSession, error) {
			sess := completedSession(sessionID)
			sess.AmountTotal = 6000
			sess.ShippingCost = &stripe.CheckoutSessionShippingCost{AmountTotal: 600}
			return sess, nil
		},
	}
	svc, db, _ := newCheckoutFixture(t, stub)
	seedProductWithPrice(t, db, "prod_1", "price_1", true)

	order, err := svc.ConfirmSession(context.Background(), "cs_ship")
	require.NoError(t, err)

	require.True(t, order.ShippingCost.Valid)
	assert.Equal(t, "6.00", order.ShippingCost.Decimal.StringFixed(2))
	require.True(t, order.TaxAmount.Valid)
	assert.Equal(t, "4.00", order.TaxAmount.Decimal.StringFixed(2))

	sum := order.Subtotal.Add(order.TaxAmount.Decimal).Add(order.ShippingCost.Decimal)
	assert.True(t, sum.Equal(order.TotalAmount))
}

func TestConfirmSessionUnknownProductStillSnapshots(t *testing.T) {
	stub := &stubStripe{
		getSession: func(sessionID string) (*stripe.CheckoutSession, error) {
			return completedSession(sessionID), nil
		},
	}
	svc, db, _ := newCheckoutFixture(t, stub)
	// no local product seeded

	order, err := svc.ConfirmSession(context.Background(), "cs_noprod")
	require.NoError(t, err)

	var items []model.LineItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].ProductID)
	assert.Equal(t, "Spring Bouquet", items[0].ProductName)
}
