package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/StockWatch-api/internal/application/alerts"
	"github.com/jhoicas/StockWatch-api/internal/application/auth"
	appsync "github.com/jhoicas/StockWatch-api/internal/application/sync"
	"github.com/jhoicas/StockWatch-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/StockWatch-api/internal/infrastructure/pdf"
	"github.com/jhoicas/StockWatch-api/internal/infrastructure/postgres"
	"github.com/jhoicas/StockWatch-api/internal/infrastructure/wms"
	httpRouter "github.com/jhoicas/StockWatch-api/internal/interfaces/http"
	"github.com/jhoicas/StockWatch-api/pkg/config"
	"github.com/jhoicas/StockWatch-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	levelRepo := postgres.NewInventoryLevelRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	thresholdRepo := postgres.NewThresholdRepository(pool)

	wmsClient := wms.NewClient(cfg.WMS.BaseURL, &http.Client{
		Timeout: time.Duration(cfg.WMS.TimeoutSeconds) * time.Second,
	}, log)

	syncUC := appsync.New(
		wmsClient, tenantRepo, customerRepo,
		productRepo, locationRepo, levelRepo, movementRepo,
		cfg.WMS.MovementWindowDays, log,
	)
	// El API solo evalúa; la entrega por correo es del worker.
	alertsUC := alerts.New(customerRepo, levelRepo, thresholdRepo, nil, cfg.Alerts.DefaultThreshold, log)
	reportUC := usecase.NewReportUseCase(customerRepo, alertsUC, infrapdf.NewMarotoReportGenerator(), cfg.Alerts.DefaultThreshold)
	tenantUC := usecase.NewTenantUseCase(tenantRepo, wmsClient)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "StockWatch API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ReportUC:  reportUC,
		SyncUC:    syncUC,
		TenantUC:  tenantUC,
		Customers: customerRepo,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
