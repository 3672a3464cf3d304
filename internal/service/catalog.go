package service

import (
	"context"

	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"

	"github.com/gosimple/slug"
)

type CategoryService struct {
	*Base[model.Category]
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		Base:       NewBase(categories, "Products"),
		categories: categories,
	}
}

func (s *CategoryService) Store(ctx context.Context, input *model.Category) (*model.Category, error) {
	if input.Slug == "" {
		input.Slug = slug.Make(input.Name)
	}
	return s.Base.Store(ctx, input)
}

type ProductService struct {
	*Base[model.Product]
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{
		Base:     NewBase(products, "Category", "Prices", "LineItems"),
		products: products,
	}
}

func (s *ProductService) Store(ctx context.Context, input *model.Product) (*model.Product, error) {
	if input.Slug == "" {
		unique, err := ensureUniqueSlug(ctx, input.Name, 0, s.products.SlugTaken)
		if err != nil {
			return nil, err
		}
		input.Slug = unique
	}

	return s.Base.Store(ctx, input)
}

// ListActive returns the storefront-visible products.
func (s *ProductService) ListActive(ctx context.Context) ([]*model.Product, error) {
	return s.products.ListActive(ctx)
}

func (s *ProductService) Update(ctx context.Context, input map[string]any, entity *model.Product) (*model.Product, error) {
	if name, ok := input["name"].(string); ok && input["slug"] == nil {
		unique, err := ensureUniqueSlug(ctx, name, entity.ID, s.products.SlugTaken)
		if err != nil {
			return nil, err
		}
		input["slug"] = unique
	}

	return s.Base.Update(ctx, input, entity)
}

type PriceService struct {
	*Base[model.Price]
	prices repository.PriceRepository
}

func NewPriceService(prices repository.PriceRepository) *PriceService {
	return &PriceService{
		Base:   NewBase(prices, "Product"),
		prices: prices,
	}
}

// SetCurrent makes the given price the product's single current price.
func (s *PriceService) SetCurrent(ctx context.Context, productID, priceID uint) (*model.Price, error) {
	price, err := s.GetByID(ctx, priceID, []string{})
	if err != nil {
		return nil, err
	}
	if price.ProductID != productID {
		return nil, ErrNotFound
	}

	if err := s.prices.ClearCurrent(ctx, productID); err != nil {
		return nil, err
	}

	return s.prices.Update(ctx, price, map[string]any{"is_current": true})
}
