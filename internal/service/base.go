package service

import (
	"context"
	"errors"
	"fmt"

	"floral-commerce/internal/repository"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Base wraps one entity gateway with the shared service contract. Each
// entity service embeds it and declares the relations it is willing to
// eager-load; specializations shadow Store/Update to inject computed
// fields or emit events.
type Base[T any] struct {
	repo      repository.Repository[T]
	relations []string
}

func NewBase[T any](repo repository.Repository[T], relations ...string) *Base[T] {
	return &Base[T]{
		repo:      repo,
		relations: relations,
	}
}

func (s *Base[T]) GetAll(ctx context.Context) ([]*T, error) {
	return s.repo.All(ctx)
}

// GetByID loads the entity and its relations. A nil request loads the
// service's full default set; otherwise only the requested relations that
// appear on the allow-list are loaded, unknown names are dropped.
func (s *Base[T]) GetByID(ctx context.Context, id uint, relations []string) (*T, error) {
	entity, err := s.repo.FindByID(ctx, id, s.resolveRelations(relations)...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return entity, nil
}

func (s *Base[T]) Store(ctx context.Context, input *T) (*T, error) {
	return s.repo.Store(ctx, input)
}

func (s *Base[T]) Update(ctx context.Context, input map[string]any, entity *T) (*T, error) {
	return s.repo.Update(ctx, entity, input)
}

func (s *Base[T]) Delete(ctx context.Context, entity *T) (bool, error) {
	return s.repo.Delete(ctx, entity)
}

func (s *Base[T]) resolveRelations(requested []string) []string {
	if requested == nil {
		return s.relations
	}

	allowed := make(map[string]bool, len(s.relations))
	for _, name := range s.relations {
		allowed[name] = true
	}

	filtered := make([]string, 0, len(requested))
	for _, name := range requested {
		if allowed[name] {
			filtered = append(filtered, name)
		}
	}

	return filtered
}

// ensureUniqueSlug derives a slug from name and appends an incrementing
// numeric suffix until no other row owns it.
func ensureUniqueSlug(ctx context.Context, name string, excludeID uint,
	taken func(context.Context, string, uint) (bool, error)) (string, error) {

	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		exists, err := taken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
