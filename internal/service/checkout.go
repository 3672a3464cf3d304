package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"floral-commerce/internal/client"
	"floral-commerce/internal/event"
	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"

	"github.com/stripe/stripe-go/v80"
	"gorm.io/gorm"
)

type CartItem struct {
	PriceID  string `json:"price_id"`
	Quantity int64  `json:"quantity"`
}

type CheckoutRedirect struct {
	SessionID string
	URL       string
}

// CheckoutService owns the checkout flow: building hosted-checkout sessions
// from a cart and, on return, materializing the order exactly once from the
// provider's session payload.
type CheckoutService struct {
	stripe    client.StripeClient
	orders    repository.OrderRepository
	lineItems repository.LineItemRepository
	products  repository.ProductRepository
	prices    repository.PriceRepository
	bus       *event.Bus
	baseURL   string
	logger    *slog.Logger
}

func NewCheckoutService(
	stripeClient client.StripeClient,
	orders repository.OrderRepository,
	lineItems repository.LineItemRepository,
	products repository.ProductRepository,
	prices repository.PriceRepository,
	bus *event.Bus,
	baseURL string,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		stripe:    stripeClient,
		orders:    orders,
		lineItems: lineItems,
		products:  products,
		prices:    prices,
		bus:       bus,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// CreateSession validates the cart and opens a hosted checkout session. No
// local order exists until the customer returns; abandoned checkouts leave
// nothing behind.
func (s *CheckoutService) CreateSession(ctx context.Context, items []CartItem) (*CheckoutRedirect, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Field: "items", Message: "You must select at least one item."}
	}

	cart := make(map[string]int64, len(items))
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 || item.Quantity > 99 {
			return nil, &ValidationError{Field: "quantity", Message: "Quantity must be between 1 and 99."}
		}

		price, err := s.prices.FindByStripePriceID(ctx, item.PriceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ValidationError{Field: "price_id", Message: "The selected price is invalid."}
			}
			return nil, fmt.Errorf("look up price %s: %w", item.PriceID, err)
		}
		if !price.Active {
			return nil, &ValidationError{Field: "price_id", Message: "The selected price is no longer available."}
		}

		cart[item.PriceID] += item.Quantity
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.baseURL + "/"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US"}),
		},
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		CustomerCreation: stripe.String(string(stripe.CheckoutSessionCustomerCreationAlways)),
	}

	if cartJSON, err := json.Marshal(cart); err == nil {
		params.AddMetadata("cart_items", string(cartJSON))
	}
	params.AddMetadata("source", "website_store")

	// Shipping options are best effort: a rate-listing failure must not
	// block the checkout itself.
	rates, err := s.stripe.ListShippingRates(ctx)
	if err != nil {
		s.logger.Error("failed to fetch shipping rates", "error", err)
	} else {
		for _, rate := range rates {
			params.ShippingOptions = append(params.ShippingOptions, &stripe.CheckoutSessionShippingOptionParams{
				ShippingRate: stripe.String(rate.ID),
			})
		}
	}

	sess, err := s.stripe.CreateCheckoutSession(ctx, params)
	if err != nil {
		s.logger.Error("checkout session creation failed",
			"cart", cart,
			"error", err,
		)
		return nil, &IntegrationError{Provider: "stripe", Op: "create checkout session", Err: err}
	}

	return &CheckoutRedirect{SessionID: sess.ID, URL: sess.URL}, nil
}

// ConfirmSession materializes the order for a completed checkout session.
// The session id is the idempotency key: a repeated confirmation returns
// the already-created order untouched.
func (s *CheckoutService) ConfirmSession(ctx context.Context, sessionID string) (*model.Order, error) {
	if sessionID == "" {
		return nil, &ValidationError{Field: "session_id", Message: "Invalid checkout session."}
	}

	existing, err := s.orders.FindBySessionID(ctx, sessionID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up order for session %s: %w", sessionID, err)
	}

	sess, err := s.stripe.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.logger.Error("failed to retrieve checkout session",
			"session_id", sessionID,
			"error", err,
		)
		return nil, &IntegrationError{Provider: "stripe", Op: "retrieve checkout session", Err: err}
	}

	order := buildOrderFromSession(sess)
	if _, err := s.orders.Store(ctx, order); err != nil {
		return nil, fmt.Errorf("store order for session %s: %w", sessionID, err)
	}

	// Line items are best effort per item: one bad snapshot must not lose
	// the order or its siblings.
	if sess.LineItems != nil {
		for _, li := range sess.LineItems.Data {
			if err := s.materializeLineItem(ctx, order, li); err != nil {
				s.logger.Error("failed to materialize line item",
					"order_id", order.ID,
					"session_id", sessionID,
					"error", err,
				)
			}
		}
	}

	s.bus.Publish(ctx, event.Event{
		Name:    event.OrderCreated,
		Payload: event.OrderCreatedPayload{Order: order},
	})

	return order, nil
}

func buildOrderFromSession(sess *stripe.CheckoutSession) *model.Order {
	now := time.Now()

	shippingMinor := int64(0)
	order := &model.Order{
		Status:                  model.OrderStatusProcessing,
		Subtotal:                minorToDecimal(sess.AmountSubtotal),
		TotalAmount:             minorToDecimal(sess.AmountTotal),
		Currency:                strings.ToUpper(string(sess.Currency)),
		PaymentStatus:           model.PaymentStatusPaid,
		PaymentMethod:           strPtr("stripe"),
		PaymentCompletedAt:      &now,
		StripeCheckoutSessionID: strPtr(sess.ID),
	}

	if sess.ShippingCost != nil {
		shippingMinor = sess.ShippingCost.AmountTotal
		order.ShippingCost = nullDecimal(minorToDecimal(shippingMinor))
	}

	// Tax is derived, not reported: whatever part of the total is neither
	// subtotal nor shipping. Zero stays null.
	if taxMinor := sess.AmountTotal - sess.AmountSubtotal - shippingMinor; taxMinor > 0 {
		order.TaxAmount = nullDecimal(minorToDecimal(taxMinor))
	}

	if sess.PaymentIntent != nil {
		order.PaymentTransactionID = strPtr(sess.PaymentIntent.ID)
		order.StripePaymentIntentID = strPtr(sess.PaymentIntent.ID)
	}
	if sess.Customer != nil {
		order.StripeCustomerID = strPtr(sess.Customer.ID)
	}

	if cd := sess.CustomerDetails; cd != nil {
		order.CustomerEmail = strPtrOrNil(cd.Email)
		order.CustomerPhone = strPtrOrNil(cd.Phone)
		if cd.Name != "" {
			// Split on the first space: multi-word last names survive,
			// multi-word first names do not. Kept as-is for compatibility
			// with existing order data.
			first, last, _ := strings.Cut(cd.Name, " ")
			order.CustomerFirstName = strPtr(first)
			order.CustomerLastName = strPtrOrNil(last)
		}
	}

	// A guest or digital-only checkout may carry no shipping details at
	// all; every field is optional.
	if sd := sess.ShippingDetails; sd != nil && sd.Address != nil {
		addr := sd.Address
		order.ShippingAddressLine1 = strPtrOrNil(addr.Line1)
		order.ShippingAddressLine2 = strPtrOrNil(addr.Line2)
		order.ShippingCity = strPtrOrNil(addr.City)
		order.ShippingState = strPtrOrNil(addr.State)
		order.ShippingPostalCode = strPtrOrNil(addr.PostalCode)
		order.ShippingCountry = strPtrOrNil(addr.Country)
	}

	return order
}

// materializeLineItem snapshots one purchased item. Presentation fields
// come from the session payload first, so the record preserves exactly what
// the customer saw, with local product fields filling the gaps.
func (s *CheckoutService) materializeLineItem(ctx context.Context, order *model.Order, li *stripe.LineItem) error {
	item := &model.LineItem{
		OrderID:     order.ID,
		ProductName: li.Description,
		Quantity:    int(li.Quantity),
		TotalPrice:  minorToDecimal(li.AmountTotal),
		Currency:    strings.ToUpper(string(li.Currency)),
	}

	if li.Price != nil {
		item.UnitPrice = minorToDecimal(li.Price.UnitAmount)
		item.StripePriceID = strPtrOrNil(li.Price.ID)

		if li.Price.Product != nil {
			item.StripeProductID = strPtrOrNil(li.Price.Product.ID)
			if item.ProductName == "" {
				item.ProductName = li.Price.Product.Name
			}

			product, err := s.products.FindByStripeProductID(ctx, li.Price.Product.ID)
			switch {
			case err == nil:
				item.ProductID = &product.ID
				item.ProductSKU = product.SKU
				item.ProductDescription = strPtrOrNil(product.Description)
				item.ProductImageURL = product.ImageURL
			case !errors.Is(err, gorm.ErrRecordNotFound):
				s.logger.Warn("product lookup failed during line item materialization",
					"stripe_product_id", li.Price.Product.ID,
					"error", err,
				)
			}
		}
	}

	_, err := s.lineItems.Store(ctx, item)
	return err
}
