package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PriceType string

const (
	PriceTypeOneTime   PriceType = "one_time"
	PriceTypeRecurring PriceType = "recurring"
)

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Slug        string `gorm:"size:255;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
	SortOrder   int    `gorm:"not null;default:0"`

	Products []Product

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Product struct {
	ID              uint    `gorm:"primaryKey"`
	StripeProductID *string `gorm:"size:64;uniqueIndex"`
	CategoryID      *uint   `gorm:"index"`
	Category        *Category

	Name        string  `gorm:"size:255;not null"`
	Slug        string  `gorm:"size:255;uniqueIndex;not null"`
	SKU         *string `gorm:"size:64"`
	Description string  `gorm:"type:text"`
	ImageURL    *string `gorm:"size:2048"`
	Images      datatypes.JSONSlice[string]

	// Shipping metadata as reported by the catalog, "LxWxH" string plus weight.
	PackageDimensions *string `gorm:"size:64"`
	Weight            *float64
	Shippable         bool    `gorm:"not null;default:true"`
	TaxCode           *string `gorm:"size:64"`
	UnitLabel         *string `gorm:"size:64"`
	Metadata          datatypes.JSONMap

	IsActive   bool `gorm:"not null;default:true;index"`
	IsFeatured bool `gorm:"not null;default:false"`

	Prices    []Price
	LineItems []LineItem

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Price struct {
	ID            uint   `gorm:"primaryKey"`
	StripePriceID string `gorm:"size:64;uniqueIndex;not null"`
	ProductID     uint   `gorm:"index;not null"`
	Product       *Product

	Active   bool      `gorm:"not null;default:true;index"`
	Currency string    `gorm:"size:8;not null"`
	Type     PriceType `gorm:"size:16;not null"`

	// UnitAmount is the currency-unit decimal, UnitAmountMinor the raw
	// minor-unit integer as delivered by the provider.
	UnitAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitAmountMinor int64           `gorm:"not null"`

	BillingScheme string  `gorm:"size:32"`
	Recurring     datatypes.JSONMap
	UsageType     *string `gorm:"size:32"`
	TaxInclusive  bool    `gorm:"not null;default:false"`
	Nickname      *string `gorm:"size:255"`
	Metadata      datatypes.JSONMap

	// At most one current price per product, enforced in the service layer.
	IsCurrent bool `gorm:"not null;default:false"`

	StripeCreatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
