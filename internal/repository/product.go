package repository

import (
	"context"

	"floral-commerce/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Repository[model.Product]
	FindByStripeProductID(ctx context.Context, stripeProductID string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	ListActive(ctx context.Context) ([]*model.Product, error)
}

type productRepoImpl struct {
	Repository[model.Product]
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		Repository: NewRepository[model.Product](db),
		db:         db,
	}
}

func (r *productRepoImpl) FindByStripeProductID(ctx context.Context, stripeProductID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("stripe_product_id = ?", stripeProductID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

// SlugTaken reports whether another product already owns the slug.
func (r *productRepoImpl) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *productRepoImpl) ListActive(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
