package repository

import (
	"context"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// StockSnapshot es el resultado crudo del repositorio para la evaluación de
// stock bajo: una fila por (producto, ubicación) con los nombres ya resueltos
// y los IDs que las reglas de umbral referencian.
type StockSnapshot struct {
	ProductID    string
	SKU          string
	ProductName  string
	LocationID   string
	LocationCode string
	LocationName string
	Available    int
}

// InventoryLevelRepository define el puerto para el stock materializado por
// ubicación+producto (DIP). Upsert deduplica por (customer_id, sku,
// location_code).
type InventoryLevelRepository interface {
	Upsert(ctx context.Context, level *entity.InventoryLevel) error
	// ListForEvaluation devuelve el snapshot de stock del cliente con
	// productos y ubicaciones resueltos, listo para el evaluador.
	ListForEvaluation(ctx context.Context, customerID string) ([]StockSnapshot, error)
}
