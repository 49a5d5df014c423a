package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación del puerto InventoryLevelRepository sobre
// PostgreSQL. La tabla no tiene ID sintético: la fila se identifica por la
// clave natural (customer_id, sku, location_code).
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador de persistencia para niveles de stock.
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// Upsert reemplaza el nivel completo de la tripla (cliente, sku, ubicación).
func (r *InventoryLevelRepo) Upsert(ctx context.Context, level *entity.InventoryLevel) error {
	query := `
		INSERT INTO inventory_levels (customer_id, sku, location_code, on_hand, available, allocated, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (customer_id, sku, location_code) DO UPDATE SET
			on_hand    = EXCLUDED.on_hand,
			available  = EXCLUDED.available,
			allocated  = EXCLUDED.allocated,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		level.CustomerID, level.SKU, level.LocationCode,
		level.OnHand, level.Available, level.Allocated, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory level: %w", err)
	}
	return nil
}

// ListForEvaluation devuelve el snapshot de stock del cliente con producto y
// ubicación resueltos. Niveles cuyo SKU o ubicación aún no se sincronizaron
// quedan fuera: sin producto no hay regla que aplicar ni fila que reportar.
// El orden de salida no importa, el evaluador reordena.
func (r *InventoryLevelRepo) ListForEvaluation(ctx context.Context, customerID string) ([]repository.StockSnapshot, error) {
	query := `
		SELECT p.id, il.sku, p.description, l.id, il.location_code, l.name, il.available
		FROM inventory_levels il
		JOIN products  p ON p.customer_id = il.customer_id AND p.sku  = il.sku
		JOIN locations l ON l.customer_id = il.customer_id AND l.code = il.location_code
		WHERE il.customer_id = $1 AND l.is_active`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list stock snapshot: %w", err)
	}
	defer rows.Close()
	var list []repository.StockSnapshot
	for rows.Next() {
		var s repository.StockSnapshot
		if err := rows.Scan(&s.ProductID, &s.SKU, &s.ProductName, &s.LocationID,
			&s.LocationCode, &s.LocationName, &s.Available); err != nil {
			return nil, fmt.Errorf("scan stock snapshot: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
