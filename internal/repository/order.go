package repository

import (
	"context"

	"floral-commerce/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Repository[model.Order]
	FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)
}

type orderRepoImpl struct {
	Repository[model.Order]
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		Repository: NewRepository[model.Order](db),
		db:         db,
	}
}

func (r *orderRepoImpl) FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("stripe_checkout_session_id = ?", sessionID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

type LineItemRepository interface {
	Repository[model.LineItem]
	ListByOrder(ctx context.Context, orderID uint) ([]*model.LineItem, error)
}

type lineItemRepoImpl struct {
	Repository[model.LineItem]
	db *gorm.DB
}

func NewLineItemRepository(db *gorm.DB) LineItemRepository {
	return &lineItemRepoImpl{
		Repository: NewRepository[model.LineItem](db),
		db:         db,
	}
}

func (r *lineItemRepoImpl) ListByOrder(ctx context.Context, orderID uint) ([]*model.LineItem, error) {
	var items []*model.LineItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}
