package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/StockWatch-api/internal/application/auth"
	appsync "github.com/jhoicas/StockWatch-api/internal/application/sync"
	"github.com/jhoicas/StockWatch-api/internal/application/usecase"
	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ReportUC  *usecase.ReportUseCase
	SyncUC    *appsync.UseCase
	TenantUC  *usecase.TenantUseCase
	Customers repository.CustomerRepository
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/low-stock/pdf", reportHandler.LowStockPDF)

	// Sync bajo demanda (protegido, solo admin)
	syncGroup := protected.Group("/sync", RequireRole(entity.RoleAdmin))
	syncHandler := NewSyncHandler(deps.SyncUC, deps.Customers)
	syncGroup.Post("/run", syncHandler.Run)

	// Aprovisionamiento de credenciales del WMS (protegido, solo admin)
	tenants := protected.Group("/tenants", RequireRole(entity.RoleAdmin))
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Post("/credentials", tenantHandler.ProvisionCredentials)
}
