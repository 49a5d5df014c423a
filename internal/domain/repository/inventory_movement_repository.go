package repository

import (
	"context"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para los
// movimientos históricos (DIP). UpsertByDedupKey deduplica por el hash de
// clave natural (sku + fecha + usuario + contexto): re-ingerir el mismo
// movimiento del WMS no crea filas duplicadas.
type InventoryMovementRepository interface {
	UpsertByDedupKey(ctx context.Context, movement *entity.InventoryMovement) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
