package client

import (
	"log"
	"time"

	"floral-commerce/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitMysqlClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	return db
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Price{},
		&model.Order{},
		&model.LineItem{},
		&model.Lead{},
		&model.QuoteRequest{},
		&model.ContactMessage{},
		&model.Notification{},
		&model.NewsletterSubscriber{},
		&model.NewsletterTemplate{},
		&model.Testimonial{},
		&model.BlogPost{},
	)
}
