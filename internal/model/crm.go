package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusProposal  LeadStatus = "proposal"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

type Lead struct {
	ID          uint       `gorm:"primaryKey"`
	Name        string     `gorm:"size:255;not null"`
	Email       string     `gorm:"size:255;index;not null"`
	PhoneNumber *string    `gorm:"size:64"`
	Company     *string    `gorm:"size:255"`
	Status      LeadStatus `gorm:"size:32;index;not null"`
	Source      *string    `gorm:"size:128"`
	Notes       *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type QuoteRequestStatus string

const (
	QuoteRequestStatusNew       QuoteRequestStatus = "new"
	QuoteRequestStatusReviewed  QuoteRequestStatus = "reviewed"
	QuoteRequestStatusQuoted    QuoteRequestStatus = "quoted"
	QuoteRequestStatusAccepted  QuoteRequestStatus = "accepted"
	QuoteRequestStatusDeclined  QuoteRequestStatus = "declined"
	QuoteRequestStatusCompleted QuoteRequestStatus = "completed"
)

type QuoteRequest struct {
	ID            uint                `gorm:"primaryKey"`
	Name          string              `gorm:"size:255;not null"`
	Email         string              `gorm:"size:255;index;not null"`
	PhoneNumber   *string             `gorm:"size:64"`
	ServiceType   string              `gorm:"size:128;not null"`
	EventDate     *time.Time
	EventLocation *string             `gorm:"size:255"`
	GuestCount    *int
	Budget        decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Description   string              `gorm:"type:text"`
	Status        QuoteRequestStatus  `gorm:"size:32;index;not null"`
	Notes         *string             `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type ContactMessageStatus string

const (
	ContactMessageStatusNew      ContactMessageStatus = "new"
	ContactMessageStatusRead     ContactMessageStatus = "read"
	ContactMessageStatusReplied  ContactMessageStatus = "replied"
	ContactMessageStatusArchived ContactMessageStatus = "archived"
)

type ContactMessage struct {
	ID          uint                 `gorm:"primaryKey"`
	Name        string               `gorm:"size:255;not null"`
	Email       string               `gorm:"size:255;index;not null"`
	PhoneNumber *string              `gorm:"size:64"`
	Subject     *string              `gorm:"size:255"`
	Message     string               `gorm:"type:text;not null"`
	Status      ContactMessageStatus `gorm:"size:32;index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Notification struct {
	ID         uint    `gorm:"primaryKey"`
	Type       string  `gorm:"size:32;not null"`
	Title      string  `gorm:"size:255;not null"`
	Message    string  `gorm:"type:text;not null"`
	ActionURL  *string `gorm:"size:2048"`
	ActionText *string `gorm:"size:64"`
	IsRead     bool    `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
