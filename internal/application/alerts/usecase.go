// Package alerts orquesta el ciclo de notificación: evalúa el stock bajo de
// cada cliente sobre el estado ya persistido y entrega la lista ordenada al
// notificador. El scheduler externo invoca RunCycle a intervalos fijos.
package alerts

import (
	"context"
	"fmt"

	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	"github.com/jhoicas/StockWatch-api/internal/domain"
	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/inventory"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
	"github.com/jhoicas/StockWatch-api/pkg/logger"
)

// UseCase es el caso de uso del ciclo de notificación de stock bajo.
// Repetir una pasada sobre estado sin cambios produce exactamente la misma
// lista en el mismo orden: la evaluación es pura y determinista.
type UseCase struct {
	customers        repository.CustomerRepository
	levels           repository.InventoryLevelRepository
	thresholds       repository.ThresholdRepository
	notifier         ports.AlertNotifier
	defaultThreshold int
	log              *logger.Logger
}

// New construye el caso de uso.
func New(
	customers repository.CustomerRepository,
	levels repository.InventoryLevelRepository,
	thresholds repository.ThresholdRepository,
	notifier ports.AlertNotifier,
	defaultThreshold int,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		customers:        customers,
		levels:           levels,
		thresholds:       thresholds,
		notifier:         notifier,
		defaultThreshold: defaultThreshold,
		log:              log,
	}
}

// RunCycle evalúa y notifica todos los clientes activos. Un fallo por cliente
// se registra y no aborta el resto del lote.
func (uc *UseCase) RunCycle(ctx context.Context) error {
	customers, err := uc.customers.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("alerts: listar clientes: %w", err)
	}

	for _, customer := range customers {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := uc.NotifyCustomer(ctx, customer); err != nil {
			uc.log.Warn().
				Err(err).
				Str("customer_id", customer.ID).
				Msg("alerts: cliente con errores, se continúa con el siguiente")
		}
	}
	return nil
}

// NotifyCustomer evalúa el stock bajo de un cliente y, si hay filas bajo
// umbral y su plan incluye alertas, las entrega al notificador. Un cliente
// sin stock bajo o sin la función en su plan no genera entrega alguna.
func (uc *UseCase) NotifyCustomer(ctx context.Context, customer *entity.Customer) error {
	if customer == nil || !customer.IsActive {
		return domain.ErrCustomerInactive
	}
	if !customer.HasFeature(entity.FeatureLowStockAlerts) {
		uc.log.Debug().Str("customer_id", customer.ID).Str("plan", customer.Plan).
			Msg("alerts: plan sin alertas de stock bajo, se omite")
		return nil
	}

	items, err := uc.Evaluate(ctx, customer.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	if err := uc.notifier.SendLowStockAlert(ctx, customer, items); err != nil {
		return fmt.Errorf("alerts: entregar alerta de %s: %w", customer.ID, err)
	}
	uc.log.Info().Str("customer_id", customer.ID).Int("items", len(items)).
		Msg("alerts: alerta de stock bajo entregada")
	return nil
}

// Evaluate corre el evaluador puro sobre el snapshot persistido del cliente.
func (uc *UseCase) Evaluate(ctx context.Context, customerID string) ([]entity.LowStockItem, error) {
	snapshots, err := uc.levels.ListForEvaluation(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("alerts: snapshot de stock de %s: %w", customerID, err)
	}
	rules, err := uc.thresholds.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("alerts: reglas de umbral de %s: %w", customerID, err)
	}

	rows := make([]inventory.StockRow, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, inventory.StockRow{
			ProductID:    s.ProductID,
			SKU:          s.SKU,
			ProductName:  s.ProductName,
			LocationID:   s.LocationID,
			LocationCode: s.LocationCode,
			LocationName: s.LocationName,
			Available:    s.Available,
		})
	}
	return inventory.EvaluateLowStock(customerID, rows, rules, uc.defaultThreshold), nil
}
