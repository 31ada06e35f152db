package router

import (
	"time"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/config"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/handler"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/infra"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/middleware"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/repository"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(200, time.Minute)) // 200 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	renderer := infra.NewInvoiceRenderer(infra.DefaultLetterhead(), cfg.LogoPath)

	// ── Repositories ─────────────────────────────────────────────────────────
	customerRepo := repository.NewCustomerRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	customerSvc := service.NewCustomerService(customerRepo)
	importer := service.NewBookingImporter()
	pricing := service.NewPricingEngine(service.HomeCurrency, service.DefaultRates())
	invoiceSvc := service.NewInvoiceService(customerRepo, importer, pricing, renderer)

	// ── Handlers ─────────────────────────────────────────────────────────────
	customersH := handler.NewCustomersHandler(customerSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc, mailer)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db))

	v1 := r.Group("/v1")
	{
		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.POST("/document", invoicesH.Document)
			invoices.POST("/specification", invoicesH.Specification)
			invoices.POST("/email", invoicesH.Email)
		}
	}

	return r
}
