// Package sync orquesta el ciclo de sincronización: por cada cliente activo,
// trae los datos del WMS y los reconcilia en el almacén local vía los puertos
// de persistencia. El scheduler externo invoca RunCycle a intervalos fijos;
// el driver garantiza que no se solapan corridas del mismo cliente.
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	"github.com/jhoicas/StockWatch-api/internal/domain"
	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
	"github.com/jhoicas/StockWatch-api/pkg/logger"
)

// UseCase es el caso de uso del ciclo de sincronización. Idempotente y
// seguro de reintentar: las escrituras locales son upserts por clave natural
// y contra el WMS solo se lee.
type UseCase struct {
	provider  ports.InventoryProvider
	tenants   repository.TenantRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	locations repository.LocationRepository
	levels    repository.InventoryLevelRepository
	movements repository.InventoryMovementRepository
	window    time.Duration // ventana de movimientos por pasada
	log       *logger.Logger
}

// New construye el caso de uso. windowDays <= 0 usa 7 días.
func New(
	provider ports.InventoryProvider,
	tenants repository.TenantRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	levels repository.InventoryLevelRepository,
	movements repository.InventoryMovementRepository,
	windowDays int,
	log *logger.Logger,
) *UseCase {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &UseCase{
		provider:  provider,
		tenants:   tenants,
		customers: customers,
		products:  products,
		locations: locations,
		levels:    levels,
		movements: movements,
		window:    time.Duration(windowDays) * 24 * time.Hour,
		log:       log,
	}
}

// RunCycle sincroniza todos los clientes activos, uno a la vez. Un fallo de
// un cliente se registra y no aborta el resto del lote; solo la cancelación
// del contexto corta el ciclo.
func (uc *UseCase) RunCycle(ctx context.Context) error {
	customers, err := uc.customers.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("sync: listar clientes: %w", err)
	}

	var failed int
	for _, customer := range customers {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := uc.SyncCustomer(ctx, customer); err != nil {
			failed++
			uc.log.Warn().
				Err(err).
				Str("customer_id", customer.ID).
				Str("customer", customer.Name).
				Msg("sync: cliente con errores, se continúa con el siguiente")
		}
	}

	uc.log.Info().
		Int("customers", len(customers)).
		Int("failed", failed).
		Msg("sync: ciclo completado")
	return nil
}

// SyncCustomer trae y reconcilia los cuatro conjuntos de datos de un cliente.
// Un fallo por endpoint se registra y no impide los endpoints restantes; los
// errores acumulados se devuelven juntos al driver.
func (uc *UseCase) SyncCustomer(ctx context.Context, customer *entity.Customer) error {
	if customer == nil || !customer.IsActive {
		return domain.ErrCustomerInactive
	}
	tenant, err := uc.tenants.GetByID(ctx, customer.TenantID)
	if err != nil {
		return fmt.Errorf("sync: tenant de %s: %w", customer.ID, err)
	}
	if tenant == nil || !tenant.HasCredentials() {
		return domain.ErrTenantNotProvision
	}
	creds := ports.TokenPair{TenantToken: tenant.TenantToken, UserToken: tenant.UserToken}

	var errs []error
	if err := uc.syncProducts(ctx, customer, creds); err != nil {
		errs = append(errs, fmt.Errorf("productos: %w", err))
		uc.log.Warn().Err(err).Str("customer_id", customer.ID).Msg("sync: productos fallaron")
	}
	if err := uc.syncLocations(ctx, customer, creds); err != nil {
		errs = append(errs, fmt.Errorf("ubicaciones: %w", err))
		uc.log.Warn().Err(err).Str("customer_id", customer.ID).Msg("sync: ubicaciones fallaron")
	}
	if err := uc.syncInventory(ctx, customer, creds); err != nil {
		errs = append(errs, fmt.Errorf("inventario: %w", err))
		uc.log.Warn().Err(err).Str("customer_id", customer.ID).Msg("sync: inventario falló")
	}
	if err := uc.syncMovements(ctx, customer, creds); err != nil {
		errs = append(errs, fmt.Errorf("movimientos: %w", err))
		uc.log.Warn().Err(err).Str("customer_id", customer.ID).Msg("sync: movimientos fallaron")
	}
	return errors.Join(errs...)
}

func (uc *UseCase) syncProducts(ctx context.Context, customer *entity.Customer, creds ports.TokenPair) error {
	records, err := uc.provider.FetchProducts(ctx, creds)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, r := range records {
		if r.SKU == "" {
			continue
		}
		product := &entity.Product{
			ID:              uuid.NewString(), // solo se usa si el upsert inserta
			CustomerID:      customer.ID,
			SKU:             r.SKU,
			Description:     r.Description,
			LongDescription: r.LongDescription,
			Classification:  r.Classification,
			Cost:            r.Cost,
			RetailPrice:     r.RetailPrice,
			UpdatedAt:       now,
		}
		if err := uc.products.UpsertBySKU(ctx, product); err != nil {
			return err
		}
	}
	uc.log.Debug().Str("customer_id", customer.ID).Int("count", len(records)).Msg("sync: productos reconciliados")
	return nil
}

func (uc *UseCase) syncLocations(ctx context.Context, customer *entity.Customer, creds ports.TokenPair) error {
	records, err := uc.provider.FetchLocations(ctx, creds)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, r := range records {
		if r.LocationCode == "" {
			continue
		}
		location := &entity.Location{
			ID:            uuid.NewString(),
			CustomerID:    customer.ID,
			Code:          r.LocationCode,
			Name:          r.LocationName,
			WarehouseName: r.WarehouseName,
			IsActive:      r.IsActive,
			UpdatedAt:     now,
		}
		if err := uc.locations.UpsertByCode(ctx, location); err != nil {
			return err
		}
	}
	uc.log.Debug().Str("customer_id", customer.ID).Int("count", len(records)).Msg("sync: ubicaciones reconciliadas")
	return nil
}

func (uc *UseCase) syncInventory(ctx context.Context, customer *entity.Customer, creds ports.TokenPair) error {
	records, err := uc.provider.FetchInventory(ctx, creds)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, r := range records {
		level := &entity.InventoryLevel{
			CustomerID:   customer.ID,
			SKU:          r.SKU,
			LocationCode: r.LocationCode,
			OnHand:       r.OnHand,
			Available:    r.Available,
			Allocated:    r.Allocated,
			UpdatedAt:    now,
		}
		if err := uc.levels.Upsert(ctx, level); err != nil {
			return err
		}
	}
	uc.log.Debug().Str("customer_id", customer.ID).Int("count", len(records)).Msg("sync: niveles reconciliados")
	return nil
}

func (uc *UseCase) syncMovements(ctx context.Context, customer *entity.Customer, creds ports.TokenPair) error {
	to := time.Now().UTC()
	from := to.Add(-uc.window)
	records, err := uc.provider.FetchMovements(ctx, creds, from, to)
	if err != nil {
		return err
	}
	for _, r := range records {
		movement := &entity.InventoryMovement{
			ID:             uuid.NewString(),
			CustomerID:     customer.ID,
			SKU:            r.SKU,
			Location:       r.Location,
			Quantity:       r.Quantity,
			QuantityBefore: r.QuantityBefore,
			QuantityAfter:  r.QuantityAfter,
			Reason:         r.Reason,
			Note:           r.Note,
			User:           r.User,
			Type:           r.Type,
			Context:        r.Context,
			Date:           r.Date,
		}
		if err := uc.movements.UpsertByDedupKey(ctx, movement); err != nil {
			return err
		}
	}
	uc.log.Debug().Str("customer_id", customer.ID).Int("count", len(records)).Msg("sync: movimientos reconciliados")
	return nil
}
