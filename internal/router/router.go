package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/matiiroda/mg/internal/config"
	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/handler"
	"github.com/matiiroda/mg/internal/infra"
	"github.com/matiiroda/mg/internal/middleware"
	"github.com/matiiroda/mg/internal/model"
	"github.com/matiiroda/mg/internal/repository"
	"github.com/matiiroda/mg/internal/service"
	"github.com/matiiroda/mg/internal/worker"
)

// Engine bundles the in-memory runtime the server keeps authoritative
// between requests. Built and seeded in main before the router starts.
type Engine struct {
	Catalog *core.CatalogStore
	Caja    *core.CajaManager
	Ledger  *core.SaleLedger
	Cart    *core.CartBuilder
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Engine/Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, eng *Engine, sheetCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	sheetClient := infra.NewSheetClient(cfg.SheetCSVBaseURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	syncSvc := service.NewSyncService(eng.Catalog, catalogRepo, settingsRepo, sheetClient, sheetCB, dispatcher,
		time.Duration(cfg.AutoPullIntervalMin)*time.Minute)
	catalogSvc := service.NewCatalogService(eng.Catalog, catalogRepo, syncSvc)
	cajaSvc := service.NewCajaService(eng.Caja, cajaRepo, dispatcher, cfg)
	saleSvc := service.NewSaleService(eng.Cart, eng.Caja, eng.Ledger, eng.Catalog,
		saleRepo, cajaRepo, catalogRepo, apptRepo, settingsRepo, syncSvc, cfg)
	reportSvc := service.NewReportService(eng.Ledger)
	apptSvc := service.NewAppointmentService(apptRepo, eng.Catalog)
	settingsSvc := service.NewSettingsService(settingsRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	syncH := handler.NewSyncHandler(syncSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	apptH := handler.NewAppointmentsHandler(apptSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, sheetCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleEmployee, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog — reads for everyone at the counter, writes admin only
		v1.GET("/products", anyRole, catalogH.ListProducts)
		v1.GET("/products/alerts", anyRole, catalogH.LowStockAlerts)
		v1.PUT("/products", adminOnly, catalogH.UpsertProduct)
		v1.DELETE("/products/:id", adminOnly, catalogH.DeleteProduct)
		v1.GET("/services", anyRole, catalogH.ListServices)
		v1.PUT("/services", adminOnly, catalogH.UpsertService)
		v1.DELETE("/services/:id", adminOnly, catalogH.DeleteService)

		// Cart and sales
		v1.GET("/cart", anyRole, salesH.GetCart)
		v1.POST("/cart/items", anyRole, salesH.AddCartItem)
		v1.DELETE("/cart/items/:index", anyRole, salesH.RemoveCartLine)
		v1.POST("/sales", anyRole, salesH.CommitSale)
		v1.GET("/sales", anyRole, salesH.ListSales)
		v1.GET("/sales/:id/ticket", anyRole, salesH.Ticket)

		// Caja
		caja := v1.Group("/caja")
		{
			caja.GET("", anyRole, cajaH.Current)
			caja.POST("/open", anyRole, cajaH.Open)
			caja.POST("/close", anyRole, cajaH.Close)
			caja.GET("/history", adminOnly, cajaH.History)
		}

		// Sheet sync — manual pull allowed to anyone, config admin only
		v1.POST("/sync/pull", anyRole, syncH.Pull)
		v1.GET("/sync/config", adminOnly, syncH.GetConfig)
		v1.PUT("/sync/config", adminOnly, syncH.UpdateConfig)

		// Reports
		v1.GET("/reports/summary", anyRole, reportsH.Summary)
		v1.GET("/reports/export", adminOnly, reportsH.Export)

		// Appointments
		v1.GET("/appointments", anyRole, apptH.List)
		v1.POST("/appointments", anyRole, apptH.Create)
		v1.PUT("/appointments/:id/status", anyRole, apptH.UpdateStatus)

		// Ticket layout
		v1.GET("/ticket-config", anyRole, settingsH.GetTicketConfig)
		v1.PUT("/ticket-config", adminOnly, settingsH.UpdateTicketConfig)

		// Users
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
			users.POST("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
