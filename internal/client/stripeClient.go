package client

import (
	"context"

	"floral-commerce/internal/config"

	"github.com/stripe/stripe-go/v80"
	stripeclient "github.com/stripe/stripe-go/v80/client"
)

// StripeClient wraps the hosted-checkout and catalog surface of the payment
// provider so services can be exercised against a fake in tests.
type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
	ListProducts(ctx context.Context, limit int64) ([]*stripe.Product, error)
	ListPrices(ctx context.Context, stripeProductID string) ([]*stripe.Price, error)
	ListShippingRates(ctx context.Context) ([]*stripe.ShippingRate, error)
}

type stripeClientImpl struct {
	api *stripeclient.API
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	api := &stripeclient.API{}
	api.Init(stripeCfg.SecretKey, nil)

	return &stripeClientImpl{api: api}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return c.api.CheckoutSessions.New(params)
}

func (c *stripeClientImpl) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("line_items")
	params.AddExpand("line_items.data.price.product")
	params.AddExpand("customer")

	return c.api.CheckoutSessions.Get(sessionID, params)
}

func (c *stripeClientImpl) ListProducts(ctx context.Context, limit int64) ([]*stripe.Product, error) {
	params := &stripe.ProductListParams{
		Active: stripe.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(limit)

	var products []*stripe.Product
	iter := c.api.Products.List(params)
	for iter.Next() {
		products = append(products, iter.Product())
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *stripeClientImpl) ListPrices(ctx context.Context, stripeProductID string) ([]*stripe.Price, error) {
	params := &stripe.PriceListParams{
		Product: stripe.String(stripeProductID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(100)

	var prices []*stripe.Price
	iter := c.api.Prices.List(params)
	for iter.Next() {
		prices = append(prices, iter.Price())
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	return prices, nil
}

func (c *stripeClientImpl) ListShippingRates(ctx context.Context) ([]*stripe.ShippingRate, error) {
	params := &stripe.ShippingRateListParams{
		Active: stripe.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(10)

	var rates []*stripe.ShippingRate
	iter := c.api.ShippingRates.List(params)
	for iter.Next() {
		rates = append(rates, iter.ShippingRate())
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	return rates, nil
}
