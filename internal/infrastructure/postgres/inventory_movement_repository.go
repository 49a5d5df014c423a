package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del puerto InventoryMovementRepository
// sobre PostgreSQL.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador de persistencia para movimientos.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// UpsertByDedupKey inserta el movimiento salvo que su hash de deduplicación ya
// exista: las ventanas de ingesta se solapan y el mismo evento upstream llega
// más de una vez. Un movimiento ya visto se ignora, no se actualiza.
func (r *InventoryMovementRepo) UpsertByDedupKey(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, customer_id, dedup_hash, sku, location, quantity, quantity_before, quantity_after, reason, note, wms_user, movement_type, context, moved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
		ON CONFLICT (customer_id, dedup_hash) DO NOTHING`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CustomerID, m.DedupKey(), m.SKU, m.Location,
		m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.Reason, m.Note, m.User, m.Type, m.Context, m.Date,
	)
	if err != nil {
		return fmt.Errorf("upsert movement: %w", err)
	}
	return nil
}

// ListByCustomer lista movimientos del cliente, más recientes primero.
func (r *InventoryMovementRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, customer_id, sku, location, quantity, quantity_before, quantity_after, reason, note, wms_user, movement_type, context, moved_at, created_at
		FROM inventory_movements WHERE customer_id = $1
		ORDER BY moved_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.CustomerID, &m.SKU, &m.Location,
			&m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
			&m.Reason, &m.Note, &m.User, &m.Type, &m.Context,
			&m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
