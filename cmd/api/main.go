package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"floral-commerce/internal/client"
	"floral-commerce/internal/config"
	"floral-commerce/internal/event"
	"floral-commerce/internal/mailer"
	"floral-commerce/internal/model"
	"floral-commerce/internal/repository"
	"floral-commerce/internal/server"
	"floral-commerce/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(&cfg.Log)
	slog.SetDefault(logger)

	db := client.InitMysqlClient(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)
	uspsClient := client.NewUSPSClient(&cfg.USPS, logger)

	var sender mailer.Sender
	sesSender, err := mailer.NewSESSender(&cfg.Mail)
	if err != nil {
		logger.Warn("ses sender unavailable, falling back to log sender", "error", err)
		sender = mailer.NewLogSender(logger)
	} else {
		sender = sesSender
	}
	mailQueue := mailer.NewQueue(sender, cfg.Mail.QueueSize, logger)

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	lineItemRepo := repository.NewLineItemRepository(db)
	leadRepo := repository.NewRepository[model.Lead](db)
	quoteRequestRepo := repository.NewRepository[model.QuoteRequest](db)
	contactMessageRepo := repository.NewRepository[model.ContactMessage](db)
	notificationRepo := repository.NewNotificationRepository(db)
	subscriberRepo := repository.NewNewsletterSubscriberRepository(db)
	templateRepo := repository.NewRepository[model.NewsletterTemplate](db)
	testimonialRepo := repository.NewRepository[model.Testimonial](db)
	blogPostRepo := repository.NewBlogPostRepository(db)

	bus := event.NewBus()
	emailService := service.NewEmailService(mailQueue, logger)
	service.RegisterListeners(bus, notificationRepo, emailService, logger)

	services := &server.Services{
		Checkout: service.NewCheckoutService(
			stripeClient, orderRepo, lineItemRepo, productRepo, priceRepo,
			bus, cfg.BaseURL, logger,
		),
		CatalogImport: service.NewCatalogImportService(
			stripeClient, productRepo, priceRepo, categoryRepo, logger,
		),

		Products:   service.NewProductService(productRepo),
		Prices:     service.NewPriceService(priceRepo),
		Categories: service.NewCategoryService(categoryRepo),
		Orders:     service.NewOrderService(orderRepo, uspsClient, bus),

		Leads:           service.NewLeadService(leadRepo, bus),
		QuoteRequests:   service.NewQuoteRequestService(quoteRequestRepo, bus),
		ContactMessages: service.NewContactMessageService(contactMessageRepo, bus),
		Notifications:   service.NewNotificationService(notificationRepo),

		Subscribers:  service.NewNewsletterSubscriberService(subscriberRepo),
		Templates:    service.NewNewsletterTemplateService(templateRepo),
		Testimonials: service.NewTestimonialService(testimonialRepo),
		BlogPosts:    service.NewBlogPostService(blogPostRepo),
	}

	srv := server.NewServer(services)
	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	logger.Info("starting http server", "addr", serverAddr, "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	// flush remaining emails before exit
	mailQueue.Close()
}

func newLogger(logCfg *config.Log) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logCfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if logCfg.Format == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(h)
}
