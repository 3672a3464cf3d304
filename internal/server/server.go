package server

import (
	"floral-commerce/internal/handler"
	"floral-commerce/internal/model"
	"floral-commerce/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Services bundles everything the HTTP layer needs.
type Services struct {
	Checkout      *service.CheckoutService
	CatalogImport *service.CatalogImportService

	Products   *service.ProductService
	Prices     *service.PriceService
	Categories *service.CategoryService
	Orders     *service.OrderService

	Leads           *service.LeadService
	QuoteRequests   *service.QuoteRequestService
	ContactMessages *service.ContactMessageService
	Notifications   *service.NotificationService

	Subscribers  *service.NewsletterSubscriberService
	Templates    *service.NewsletterTemplateService
	Testimonials *service.TestimonialService
	BlogPosts    *service.BlogPostService
}

type Server struct {
	echo     *echo.Echo
	services *Services
}

func NewServer(services *Services) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:     e,
		services: services,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	checkoutHandler := handler.NewCheckoutHandler(s.services.Checkout)
	catalogHandler := handler.NewCatalogHandler(s.services.Products, s.services.Prices, s.services.CatalogImport)
	orderHandler := handler.NewOrderHandler(s.services.Orders)
	notificationHandler := handler.NewNotificationHandler(s.services.Notifications)
	newsletterHandler := handler.NewNewsletterHandler(s.services.Subscribers)

	quoteRequests := handler.NewResource[model.QuoteRequest](s.services.QuoteRequests)
	contactMessages := handler.NewResource[model.ContactMessage](s.services.ContactMessages)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	api.GET("/products", catalogHandler.ListActive)
	api.POST("/checkout", checkoutHandler.Create)
	api.POST("/quote-requests", quoteRequests.Create)
	api.POST("/contact-messages", contactMessages.Create)
	api.POST("/newsletter/subscribe", newsletterHandler.Subscribe)
	api.POST("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)

	// -------- checkout return --------
	s.echo.GET("/checkout/success", checkoutHandler.Success)

	// -------- admin --------
	admin := api.Group("/admin")

	handler.NewResource[model.Product](s.services.Products).Register(admin, "products")
	handler.NewResource[model.Price](s.services.Prices).Register(admin, "prices")
	handler.NewResource[model.Category](s.services.Categories).Register(admin, "categories")
	handler.NewResource[model.Order](s.services.Orders).Register(admin, "orders")
	handler.NewResource[model.Lead](s.services.Leads).Register(admin, "leads")
	quoteRequests.Register(admin, "quote-requests")
	contactMessages.Register(admin, "contact-messages")
	handler.NewResource[model.Testimonial](s.services.Testimonials).Register(admin, "testimonials")
	handler.NewResource[model.BlogPost](s.services.BlogPosts).Register(admin, "blog-posts")
	handler.NewResource[model.NewsletterTemplate](s.services.Templates).Register(admin, "newsletter-templates")
	handler.NewResource[model.NewsletterSubscriber](s.services.Subscribers).Register(admin, "newsletter-subscribers")
	handler.NewResource[model.Notification](s.services.Notifications).Register(admin, "notifications")

	admin.POST("/products/import-stripe", catalogHandler.Import)
	admin.POST("/products/:id/prices/:priceID/current", catalogHandler.SetCurrentPrice)
	admin.GET("/orders/:id/tracking", orderHandler.Tracking)
	admin.GET("/notifications/unread", notificationHandler.ListUnread)
	admin.POST("/notifications/:id/read", notificationHandler.MarkRead)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
