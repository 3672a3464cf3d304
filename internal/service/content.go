package service

import (
	"context"
	"time"

	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"
)

type BlogPostService struct {
	*Base[model.BlogPost]
	blogPosts repository.BlogPostRepository
}

func NewBlogPostService(blogPosts repository.BlogPostRepository) *BlogPostService {
	return &BlogPostService{
		Base:      NewBase(blogPosts),
		blogPosts: blogPosts,
	}
}

func (s *BlogPostService) Store(ctx context.Context, input *model.BlogPost) (*model.BlogPost, error) {
	if input.Slug == "" {
		unique, err := ensureUniqueSlug(ctx, input.Title, 0, s.blogPosts.SlugTaken)
		if err != nil {
			return nil, err
		}
		input.Slug = unique
	}
	if input.Status == "" {
		input.Status = model.BlogPostStatusDraft
	}
	if input.Status == model.BlogPostStatusPublished && input.PublishedAt == nil {
		now := time.Now()
		input.PublishedAt = &now
	}

	return s.Base.Store(ctx, input)
}

func (s *BlogPostService) Update(ctx context.Context, input map[string]any, entity *model.BlogPost) (*model.BlogPost, error) {
	if title, ok := input["title"].(string); ok && input["slug"] == nil {
		unique, err := ensureUniqueSlug(ctx, title, entity.ID, s.blogPosts.SlugTaken)
		if err != nil {
			return nil, err
		}
		input["slug"] = unique
	}
	if status, ok := input["status"].(string); ok &&
		model.BlogPostStatus(status) == model.BlogPostStatusPublished && entity.PublishedAt == nil {
		input["published_at"] = time.Now()
	}

	return s.Base.Update(ctx, input, entity)
}

type TestimonialService struct {
	*Base[model.Testimonial]
}

func NewTestimonialService(testimonials repository.Repository[model.Testimonial]) *TestimonialService {
	return &TestimonialService{
		Base: NewBase(testimonials),
	}
}

type NewsletterTemplateService struct {
	*Base[model.NewsletterTemplate]
}

func NewNewsletterTemplateService(templates repository.Repository[model.NewsletterTemplate]) *NewsletterTemplateService {
	return &NewsletterTemplateService{
		Base: NewBase(templates),
	}
}
