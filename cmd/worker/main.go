// El worker corre los dos ciclos periódicos de la aplicación: sincronización
// contra el WMS y notificación de stock bajo. Cada ciclo corre en su propio
// loop y de forma síncrona: una corrida no arranca hasta que terminó la
// anterior, así nunca se solapan pasadas del mismo cliente.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/StockWatch-api/internal/application/alerts"
	appsync "github.com/jhoicas/StockWatch-api/internal/application/sync"
	"github.com/jhoicas/StockWatch-api/internal/infrastructure/email"
	"github.com/jhoicas/StockWatch-api/internal/infrastructure/postgres"
	"github.com/jhoicas/StockWatch-api/internal/infrastructure/wms"
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
		Msg("iniciando worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	levelRepo := postgres.NewInventoryLevelRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	thresholdRepo := postgres.NewThresholdRepository(pool)

	wmsClient := wms.NewClient(cfg.WMS.BaseURL, &http.Client{
		Timeout: time.Duration(cfg.WMS.TimeoutSeconds) * time.Second,
	}, log)
	notifier := email.NewGomailNotifier(cfg.SMTP, log)

	syncUC := appsync.New(
		wmsClient, tenantRepo, customerRepo,
		productRepo, locationRepo, levelRepo, movementRepo,
		cfg.WMS.MovementWindowDays, log,
	)
	alertsUC := alerts.New(customerRepo, levelRepo, thresholdRepo, notifier, cfg.Alerts.DefaultThreshold, log)

	go runEvery(ctx, "sync", time.Duration(cfg.Alerts.SyncIntervalMinutes)*time.Minute, log, syncUC.RunCycle)
	go runEvery(ctx, "alerts", time.Duration(cfg.Alerts.NotifyIntervalMinutes)*time.Minute, log, alertsUC.RunCycle)

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, worker detenido")
}

// runEvery ejecuta cycle inmediatamente y luego en cada tick. La ejecución es
// síncrona dentro del loop: si una corrida tarda más que el intervalo, el tick
// se pierde y la siguiente arranca al tick posterior.
func runEvery(ctx context.Context, name string, interval time.Duration, log *logger.Logger, cycle func(context.Context) error) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	run := func() {
		start := time.Now()
		if err := cycle(ctx); err != nil {
			log.Error().Err(err).Str("cycle", name).Msg("worker: ciclo terminó con error")
			return
		}
		log.Info().Str("cycle", name).Dur("elapsed", time.Since(start)).Msg("worker: ciclo completado")
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
