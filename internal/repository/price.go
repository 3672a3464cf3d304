package repository

import (
	"context"

	"floral-commerce/internal/model"

	"gorm.io/gorm"
)

type PriceRepository interface {
	Repository[model.Price]
	FindByStripePriceID(ctx context.Context, stripePriceID string) (*model.Price, error)
	ListByProduct(ctx context.Context, productID uint) ([]*model.Price, error)
	HasCurrent(ctx context.Context, productID uint) (bool, error)
	ClearCurrent(ctx context.Context, productID uint) error
	DeactivateMissing(ctx context.Context, productID uint, keepStripeIDs []string) (int64, error)
}

type priceRepoImpl struct {
	Repository[model.Price]
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepoImpl{
		Repository: NewRepository[model.Price](db),
		db:         db,
	}
}

func (r *priceRepoImpl) FindByStripePriceID(ctx context.Context, stripePriceID string) (*model.Price, error) {
	var price model.Price
	err := r.db.WithContext(ctx).
		Where("stripe_price_id = ?", stripePriceID).
		First(&price).Error

	if err != nil {
		return nil, err
	}

	return &price, nil
}

func (r *priceRepoImpl) ListByProduct(ctx context.Context, productID uint) ([]*model.Price, error) {
	var prices []*model.Price
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("is_current DESC").
		Order("unit_amount").
		Find(&prices).Error

	if err != nil {
		return nil, err
	}

	return prices, nil
}

func (r *priceRepoImpl) HasCurrent(ctx context.Context, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Price{}).
		Where("product_id = ?", productID).
		Where("is_current = ?", true).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *priceRepoImpl) ClearCurrent(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).Model(&model.Price{}).
		Where("product_id = ?", productID).
		Where("is_current = ?", true).
		Update("is_current", false).Error
}

// DeactivateMissing delists local prices whose external id is absent from
// the latest upstream sync. Rows are kept for historical line items.
func (r *priceRepoImpl) DeactivateMissing(ctx context.Context, productID uint, keepStripeIDs []string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Price{}).
		Where("product_id = ?", productID).
		Where("active = ?", true)
	if len(keepStripeIDs) > 0 {
		q = q.Where("stripe_price_id NOT IN ?", keepStripeIDs)
	}

	res := q.Update("active", false)
	return res.RowsAffected, res.Error
}
