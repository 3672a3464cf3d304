package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

type Order struct {
	ID          uint        `gorm:"primaryKey"`
	OrderNumber string      `gorm:"size:64;uniqueIndex;not null"`
	Status      OrderStatus `gorm:"size:32;index;not null"`

	Subtotal     decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	TaxAmount    decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	ShippingCost decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Currency     string              `gorm:"size:8;not null"`

	CustomerEmail     *string `gorm:"size:255;index"`
	CustomerFirstName *string `gorm:"size:255"`
	CustomerLastName  *string `gorm:"size:255"`
	CustomerPhone     *string `gorm:"size:64"`

	ShippingAddressLine1 *string `gorm:"size:255"`
	ShippingAddressLine2 *string `gorm:"size:255"`
	ShippingCity         *string `gorm:"size:128"`
	ShippingState        *string `gorm:"size:64"`
	ShippingPostalCode   *string `gorm:"size:32"`
	ShippingCountry      *string `gorm:"size:8"`
	ShippingMethod       *string `gorm:"size:128"`

	TrackingNumber *string `gorm:"size:64"`
	ShippedAt      *time.Time
	DeliveredAt    *time.Time

	PaymentStatus        PaymentStatus `gorm:"size:32;not null"`
	PaymentMethod        *string       `gorm:"size:32"`
	PaymentTransactionID *string       `gorm:"size:128"`
	PaymentCompletedAt   *time.Time

	// The checkout-session id is the idempotency key: one order per session.
	StripeCheckoutSessionID *string `gorm:"size:128;uniqueIndex"`
	StripePaymentIntentID   *string `gorm:"size:128"`
	StripeCustomerID        *string `gorm:"size:128"`

	LineItems []LineItem

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = GenerateOrderNumber()
	}
	return nil
}

// GenerateOrderNumber returns a human-readable order reference such as
// ORD-9F3C21AB7D04E218.
func GenerateOrderNumber() string {
	id := uuid.New()
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:16]
}

// LineItem is an immutable purchase-time snapshot of one product on an
// order. Product linkage is optional so historical orders survive product
// deletion.
type LineItem struct {
	ID        uint  `gorm:"primaryKey"`
	OrderID   uint  `gorm:"index;not null"`
	ProductID *uint `gorm:"index"`
	Product   *Product

	ProductName        string  `gorm:"size:255;not null"`
	ProductSKU         *string `gorm:"size:64"`
	ProductDescription *string `gorm:"type:text"`
	ProductImageURL    *string `gorm:"size:2048"`

	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Currency   string          `gorm:"size:8;not null"`

	StripePriceID   *string `gorm:"size:64"`
	StripeProductID *string `gorm:"size:64"`

	CreatedAt time.Time
}
