package repository

import (
	"context"
	"errors"

	"floral-commerce/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Repository[model.Category]
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FirstOrCreate(ctx context.Context, slug string, defaults *model.Category) (*model.Category, error)
}

type categoryRepoImpl struct {
	Repository[model.Category]
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepoImpl{
		Repository: NewRepository[model.Category](db),
		db:         db,
	}
}

func (r *categoryRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&category).Error

	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepoImpl) FirstOrCreate(ctx context.Context, slug string, defaults *model.Category) (*model.Category, error) {
	existing, err := r.FindBySlug(ctx, slug)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults.Slug = slug
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		return nil, err
	}

	return defaults, nil
}
