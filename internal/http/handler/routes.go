package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"realtyapi/docs"
	"realtyapi/internal/service"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Listings  service.ListingService
	Realtors  service.RealtorService
	Inquiries service.InquiryService
	Reports   service.ReportService
}

// Options tunes route registration. Zero values are usable.
type Options struct {
	// MaxUploadBytes caps a single image upload; 0 disables the check.
	MaxUploadBytes int
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, opts Options) {
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", Liveness())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", Swagger())

	listings := app.Group("/listings")
	listings.Get("/", ListListings(svc.Listings))
	listings.Post("/", CreateListing(svc.Listings, opts.MaxUploadBytes, opts.Logger))
	listings.Get("/:id", GetListing(svc.Listings))
	listings.Get("/:id/images", ListingImages(svc.Listings))
	listings.Post("/:id/inquiries", CreateInquiry(svc.Inquiries))

	realtors := app.Group("/realtors")
	realtors.Post("/", CreateRealtor(svc.Realtors))
	realtors.Get("/:id", GetRealtor(svc.Realtors))
	realtors.Get("/:id/listings", RealtorListings(svc.Realtors))

	app.Get("/reports/contacts", ContactsReport(svc.Reports))
}

// Swagger serves the UI with the host and scheme of the incoming request.
func Swagger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
