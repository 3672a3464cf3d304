package repository

import (
	"context"

	"floral-commerce/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Repository[model.Notification]
	ListUnread(ctx context.Context) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id uint) error
}

type notificationRepoImpl struct {
	Repository[model.Notification]
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepoImpl{
		Repository: NewRepository[model.Notification](db),
		db:         db,
	}
}

func (r *notificationRepoImpl) ListUnread(ctx context.Context) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := r.db.WithContext(ctx).
		Where("is_read = ?", false).
		Order("created_at DESC").
		Find(&notifications).Error

	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepoImpl) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

type NewsletterSubscriberRepository interface {
	Repository[model.NewsletterSubscriber]
	FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error)
}

type newsletterSubscriberRepoImpl struct {
	Repository[model.NewsletterSubscriber]
	db *gorm.DB
}

func NewNewsletterSubscriberRepository(db *gorm.DB) NewsletterSubscriberRepository {
	return &newsletterSubscriberRepoImpl{
		Repository: NewRepository[model.NewsletterSubscriber](db),
		db:         db,
	}
}

func (r *newsletterSubscriberRepoImpl) FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	var subscriber model.NewsletterSubscriber
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&subscriber).Error

	if err != nil {
		return nil, err
	}

	return &subscriber, nil
}

type BlogPostRepository interface {
	Repository[model.BlogPost]
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}

type blogPostRepoImpl struct {
	Repository[model.BlogPost]
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepoImpl{
		Repository: NewRepository[model.BlogPost](db),
		db:         db,
	}
}

func (r *blogPostRepoImpl) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.BlogPost{}).
		Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
