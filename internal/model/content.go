package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BlogPostStatus string

const (
	BlogPostStatusDraft     BlogPostStatus = "draft"
	BlogPostStatusPublished BlogPostStatus = "published"
	BlogPostStatusArchived  BlogPostStatus = "archived"
)

type BlogPost struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"size:255;not null"`
	Slug        string         `gorm:"size:255;uniqueIndex;not null"`
	Excerpt     *string        `gorm:"size:512"`
	Content     string         `gorm:"type:text"`
	ImageURL    *string        `gorm:"size:2048"`
	Status      BlogPostStatus `gorm:"size:32;index;not null"`
	PublishedAt *time.Time
	Tags        datatypes.JSONSlice[string]

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Testimonial struct {
	ID         uint    `gorm:"primaryKey"`
	Name       string  `gorm:"size:255;not null"`
	Title      *string `gorm:"size:255"`
	Quote      string  `gorm:"type:text;not null"`
	Rating     int     `gorm:"not null;default:5"`
	IsFeatured bool    `gorm:"not null;default:false"`
	IsActive   bool    `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type SubscriberStatus string

const (
	SubscriberStatusActive       SubscriberStatus = "active"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
	SubscriberStatusBounced      SubscriberStatus = "bounced"
)

type NewsletterSubscriber struct {
	ID             uint             `gorm:"primaryKey"`
	Email          string           `gorm:"size:255;uniqueIndex;not null"`
	FirstName      *string          `gorm:"size:255"`
	LastName       *string          `gorm:"size:255"`
	Status         SubscriberStatus `gorm:"size:32;index;not null"`
	SubscribedAt   *time.Time
	UnsubscribedAt *time.Time
	Source         *string `gorm:"size:128"`
	Preferences    datatypes.JSONMap
	Tags           datatypes.JSONSlice[string]

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type NewsletterTemplateStatus string

const (
	NewsletterTemplateStatusDraft     NewsletterTemplateStatus = "draft"
	NewsletterTemplateStatusScheduled NewsletterTemplateStatus = "scheduled"
	NewsletterTemplateStatusSent      NewsletterTemplateStatus = "sent"
)

type NewsletterTemplate struct {
	ID          uint                     `gorm:"primaryKey"`
	Name        string                   `gorm:"size:255;not null"`
	Subject     string                   `gorm:"size:255;not null"`
	Content     string                   `gorm:"type:text"`
	PreviewText *string                  `gorm:"size:512"`
	Status      NewsletterTemplateStatus `gorm:"size:32;index;not null"`
	ScheduledAt *time.Time
	SentAt      *time.Time

	RecipientsCount int `gorm:"not null;default:0"`
	OpensCount      int `gorm:"not null;default:0"`
	ClicksCount     int `gorm:"not null;default:0"`

	Tags     datatypes.JSONSlice[string]
	Metadata datatypes.JSONMap

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
