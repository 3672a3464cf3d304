package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"floral-commerce/internal/client"
	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"

	"github.com/gosimple/slug"
	"github.com/stripe/stripe-go/v80"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const importedCategorySlug = "imported-from-stripe"

// ImportResult summarizes one catalog sync run.
type ImportResult struct {
	Imported          int `json:"imported"`
	Skipped           int `json:"skipped"`
	ProductErrors     int `json:"product_errors"`
	PriceErrors       int `json:"price_errors"`
	DeactivatedPrices int `json:"deactivated_prices"`
}

// CatalogImportService syncs the provider catalog into local products and
// prices, keyed on the provider's ids so repeat runs converge instead of
// duplicating.
type CatalogImportService struct {
	stripe     client.StripeClient
	products   repository.ProductRepository
	prices     repository.PriceRepository
	categories repository.CategoryRepository
	logger     *slog.Logger
}

func NewCatalogImportService(
	stripeClient client.StripeClient,
	products repository.ProductRepository,
	prices repository.PriceRepository,
	categories repository.CategoryRepository,
	logger *slog.Logger,
) *CatalogImportService {
	return &CatalogImportService{
		stripe:     stripeClient,
		products:   products,
		prices:     prices,
		categories: categories,
		logger:     logger,
	}
}

// Import fetches up to limit active products and their prices. Existing
// products are skipped unless force is set. Failures are counted per item;
// one bad product never aborts the batch.
func (s *CatalogImportService) Import(ctx context.Context, limit int64, force bool) (*ImportResult, error) {
	if limit <= 0 {
		limit = 100
	}

	stripeProducts, err := s.stripe.ListProducts(ctx, limit)
	if err != nil {
		s.logger.Error("catalog product listing failed", "error", err)
		return nil, &IntegrationError{Provider: "stripe", Op: "list products", Err: err}
	}

	result := &ImportResult{}
	for _, sp := range stripeProducts {
		existing, err := s.products.FindByStripeProductID(ctx, sp.ID)
		switch {
		case err == nil && !force:
			result.Skipped++
			continue
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Error("product lookup failed during import",
				"stripe_product_id", sp.ID,
				"error", err,
			)
			result.ProductErrors++
			continue
		case err != nil:
			existing = nil
		}

		product, err := s.upsertProduct(ctx, sp, existing)
		if err != nil {
			s.logger.Error("product import failed",
				"stripe_product_id", sp.ID,
				"name", sp.Name,
				"error", err,
			)
			result.ProductErrors++
			continue
		}
		result.Imported++

		if err := s.importPrices(ctx, sp.ID, product, result); err != nil {
			s.logger.Error("price import failed",
				"stripe_product_id", sp.ID,
				"product_id", product.ID,
				"error", err,
			)
			result.PriceErrors++
		}
	}

	s.logger.Info("catalog import finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"product_errors", result.ProductErrors,
		"price_errors", result.PriceErrors,
		"deactivated_prices", result.DeactivatedPrices,
	)

	return result, nil
}

func (s *CatalogImportService) upsertProduct(ctx context.Context, sp *stripe.Product, existing *model.Product) (*model.Product, error) {
	if existing == nil {
		category, err := s.categories.FirstOrCreate(ctx, importedCategorySlug, &model.Category{
			Name:        "Imported from Stripe",
			Description: "Products synced from the payment provider catalog.",
			IsActive:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("resolve import category: %w", err)
		}

		productSlug, err := ensureUniqueSlug(ctx, sp.Name, 0, s.products.SlugTaken)
		if err != nil {
			return nil, err
		}

		product := &model.Product{
			StripeProductID: strPtr(sp.ID),
			CategoryID:      &category.ID,
			Name:            sp.Name,
			Slug:            productSlug,
			Description:     sp.Description,
			IsActive:        sp.Active,
		}
		applyCatalogFields(product, sp)

		return s.products.Store(ctx, product)
	}

	// Refresh on force keeps local curation: the category assignment and
	// featured flag are never touched by a sync.
	productSlug, err := s.resolveSlug(ctx, existing, sp.Name)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":        sp.Name,
		"slug":        productSlug,
		"description": sp.Description,
		"is_active":   sp.Active,
	}
	refreshed := &model.Product{}
	*refreshed = *existing
	applyCatalogFields(refreshed, sp)
	fields["sku"] = refreshed.SKU
	fields["image_url"] = refreshed.ImageURL
	fields["images"] = refreshed.Images
	fields["package_dimensions"] = refreshed.PackageDimensions
	fields["weight"] = refreshed.Weight
	fields["shippable"] = refreshed.Shippable
	fields["tax_code"] = refreshed.TaxCode
	fields["unit_label"] = refreshed.UnitLabel
	fields["metadata"] = refreshed.Metadata

	return s.products.Update(ctx, existing, fields)
}

// resolveSlug keeps the product's slug stable across re-imports when the
// name has not materially changed, including slugs that carry a collision
// suffix from the original import.
func (s *CatalogImportService) resolveSlug(ctx context.Context, existing *model.Product, name string) (string, error) {
	base := slug.Make(name)
	if existing.Slug == base || strings.HasPrefix(existing.Slug, base+"-") {
		return existing.Slug, nil
	}

	return ensureUniqueSlug(ctx, name, existing.ID, s.products.SlugTaken)
}

func applyCatalogFields(product *model.Product, sp *stripe.Product) {
	if sp.Description != "" {
		product.Description = sp.Description
	}

	if len(sp.Images) > 0 {
		product.ImageURL = strPtr(sp.Images[0])
		product.Images = sp.Images
	}
	product.Shippable = sp.Shippable
	if sp.PackageDimensions != nil {
		dims := fmt.Sprintf("%.2fx%.2fx%.2f", sp.PackageDimensions.Length, sp.PackageDimensions.Width, sp.PackageDimensions.Height)
		product.PackageDimensions = strPtr(dims)
		product.Weight = &sp.PackageDimensions.Weight
	}
	if sp.UnitLabel != "" {
		product.UnitLabel = strPtr(sp.UnitLabel)
	}
	if sp.TaxCode != nil {
		product.TaxCode = strPtr(sp.TaxCode.ID)
	}
	if len(sp.Metadata) > 0 {
		product.Metadata = toJSONMap(sp.Metadata)
		if sku, ok := sp.Metadata["sku"]; ok && sku != "" {
			product.SKU = strPtr(sku)
		}
	}
}

func (s *CatalogImportService) importPrices(ctx context.Context, stripeProductID string, product *model.Product, result *ImportResult) error {
	stripePrices, err := s.stripe.ListPrices(ctx, stripeProductID)
	if err != nil {
		return &IntegrationError{Provider: "stripe", Op: "list prices", Err: err}
	}

	hasCurrent, err := s.prices.HasCurrent(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("check current price: %w", err)
	}

	seen := make([]string, 0, len(stripePrices))
	for _, sp := range stripePrices {
		// The first active price of a product with no current price
		// becomes the default storefront price.
		markCurrent := !hasCurrent && sp.Active
		if err := s.upsertPrice(ctx, product.ID, sp, markCurrent); err != nil {
			s.logger.Error("price upsert failed",
				"stripe_price_id", sp.ID,
				"product_id", product.ID,
				"error", err,
			)
			result.PriceErrors++
			continue
		}
		if markCurrent {
			hasCurrent = true
		}
		seen = append(seen, sp.ID)
	}

	deactivated, err := s.prices.DeactivateMissing(ctx, product.ID, seen)
	if err != nil {
		return fmt.Errorf("deactivate missing prices: %w", err)
	}
	result.DeactivatedPrices += int(deactivated)

	return nil
}

func (s *CatalogImportService) upsertPrice(ctx context.Context, productID uint, sp *stripe.Price, markCurrent bool) error {
	priceType := model.PriceTypeOneTime
	var recurring datatypes.JSONMap
	if sp.Recurring != nil {
		priceType = model.PriceTypeRecurring
		recurring = datatypes.JSONMap{
			"interval":       string(sp.Recurring.Interval),
			"interval_count": sp.Recurring.IntervalCount,
		}
	}

	var stripeCreatedAt *time.Time
	if sp.Created > 0 {
		created := time.Unix(sp.Created, 0)
		stripeCreatedAt = &created
	}

	existing, err := s.prices.FindByStripePriceID(ctx, sp.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		price := &model.Price{
			StripePriceID:   sp.ID,
			ProductID:       productID,
			Active:          sp.Active,
			Currency:        strings.ToUpper(string(sp.Currency)),
			Type:            priceType,
			UnitAmount:      minorToDecimal(sp.UnitAmount),
			UnitAmountMinor: sp.UnitAmount,
			BillingScheme:   string(sp.BillingScheme),
			Recurring:       recurring,
			TaxInclusive:    sp.TaxBehavior == stripe.PriceTaxBehaviorInclusive,
			Nickname:        strPtrOrNil(sp.Nickname),
			Metadata:        toJSONMap(sp.Metadata),
			IsCurrent:       markCurrent,
			StripeCreatedAt: stripeCreatedAt,
		}

		_, err := s.prices.Store(ctx, price)
		return err
	}

	// is_current is operator-controlled after the initial import; a sync
	// never unsets it.
	fields := map[string]any{
		"product_id":        productID,
		"active":            sp.Active,
		"currency":          strings.ToUpper(string(sp.Currency)),
		"type":              priceType,
		"unit_amount":       minorToDecimal(sp.UnitAmount),
		"unit_amount_minor": sp.UnitAmount,
		"billing_scheme":    string(sp.BillingScheme),
		"recurring":         recurring,
		"tax_inclusive":     sp.TaxBehavior == stripe.PriceTaxBehaviorInclusive,
		"nickname":          strPtrOrNil(sp.Nickname),
		"metadata":          toJSONMap(sp.Metadata),
		"stripe_created_at": stripeCreatedAt,
	}
	if markCurrent && !existing.IsCurrent {
		fields["is_current"] = true
	}

	_, err = s.prices.Update(ctx, existing, fields)
	return err
}
