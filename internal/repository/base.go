package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository is the uniform CRUD contract every entity gateway satisfies.
// Lookups that miss return gorm.ErrRecordNotFound; the service layer maps
// that to its own taxonomy.
type Repository[T any] interface {
	All(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id uint, preloads ...string) (*T, error)
	Store(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, entity *T, fields map[string]any) (*T, error)
	Delete(ctx context.Context, entity *T) (bool, error)
}

type gormRepository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) Repository[T] {
	return &gormRepository[T]{db: db}
}

func (r *gormRepository[T]) All(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := r.db.WithContext(ctx).Find(&entities).Error
	if err != nil {
		return nil, err
	}

	return entities, nil
}

func (r *gormRepository[T]) FindByID(ctx context.Context, id uint, preloads ...string) (*T, error) {
	q := r.db.WithContext(ctx)
	for _, preload := range preloads {
		q = q.Preload(preload)
	}

	var entity T
	if err := q.First(&entity, id).Error; err != nil {
		return nil, err
	}

	return &entity, nil
}

func (r *gormRepository[T]) Store(ctx context.Context, entity *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return entity, nil
}

// Update applies a partial field map and returns the refreshed row.
func (r *gormRepository[T]) Update(ctx context.Context, entity *T, fields map[string]any) (*T, error) {
	if err := r.db.WithContext(ctx).Model(entity).Updates(fields).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).First(entity).Error; err != nil {
		return nil, err
	}

	return entity, nil
}

func (r *gormRepository[T]) Delete(ctx context.Context, entity *T) (bool, error) {
	res := r.db.WithContext(ctx).Delete(entity)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
