package router

import (
	"time"

	"brigadepos/internal/config"
	"brigadepos/internal/handler"
	"brigadepos/internal/middleware"
	"brigadepos/internal/repository"
	"brigadepos/internal/service"
	"brigadepos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	menuRepo := repository.NewMenuRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	inventorySvc := service.NewInventoryService(menuRepo, recipeRepo, inventoryRepo, movementRepo, dispatcher)
	orderSvc := service.NewOrderService(orderRepo, menuRepo, inventorySvc)
	expenseSvc := service.NewExpenseService(expenseRepo)
	reportSvc := service.NewReportService(reportRepo, inventoryRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	reportsH := handler.NewReportsHandler(reportSvc, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes — tokens come from the external identity provider.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: staff, manager, admin — declared per-endpoint
		v1.POST("/inventory/reduce", middleware.RequireRole("staff", "manager", "admin"), inventoryH.ReduceStock)
		v1.GET("/inventory", middleware.RequireRole("staff", "manager", "admin"), inventoryH.List)
		v1.PATCH("/inventory/:id/stock", middleware.RequireRole("manager", "admin"), inventoryH.AdjustStock)
		v1.GET("/inventory/movements", middleware.RequireRole("manager", "admin"), inventoryH.ListMovements)

		orders := v1.Group("/orders", middleware.RequireRole("staff", "manager", "admin"))
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.PATCH("/:id/status", ordersH.UpdateStatus)
		}

		expenses := v1.Group("/expenses", middleware.RequireRole("manager", "admin"))
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
		}

		reports := v1.Group("/reports", middleware.RequireRole("manager", "admin"))
		{
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/sales/export", reportsH.ExportSales)
			reports.GET("/expenses", reportsH.Expenses)
			reports.GET("/low-stock", reportsH.LowStock)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
