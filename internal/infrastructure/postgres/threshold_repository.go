package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

var _ repository.ThresholdRepository = (*ThresholdRepo)(nil)

// ThresholdRepo implementación del puerto ThresholdRepository sobre PostgreSQL.
// Solo lectura: las reglas las administra la capa administrativa.
type ThresholdRepo struct {
	q Querier
}

// NewThresholdRepository construye el adaptador de lectura de reglas de umbral.
func NewThresholdRepository(q Querier) *ThresholdRepo {
	return &ThresholdRepo{q: q}
}

// ListActiveByCustomer lista las reglas activas del cliente. location_id NULL
// en la tabla se expone como string vacío: regla por defecto del producto.
func (r *ThresholdRepo) ListActiveByCustomer(ctx context.Context, customerID string) ([]*entity.ThresholdRule, error) {
	query := `
		SELECT id, customer_id, product_id, COALESCE(location_id, ''), threshold, is_active, created_at, updated_at
		FROM threshold_rules WHERE customer_id = $1 AND is_active`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list threshold rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.ThresholdRule
	for rows.Next() {
		var rule entity.ThresholdRule
		if err := rows.Scan(&rule.ID, &rule.CustomerID, &rule.ProductID, &rule.LocationID,
			&rule.Threshold, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan threshold rule: %w", err)
		}
		list = append(list, &rule)
	}
	return list, rows.Err()
}
