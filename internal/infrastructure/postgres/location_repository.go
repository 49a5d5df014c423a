package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// UpsertByCode inserta o actualiza la ubicación por su clave natural
// (customer_id, code).
func (r *LocationRepo) UpsertByCode(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, customer_id, code, name, warehouse_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), $7)
		ON CONFLICT (customer_id, code) DO UPDATE SET
			name           = EXCLUDED.name,
			warehouse_name = EXCLUDED.warehouse_name,
			is_active      = EXCLUDED.is_active,
			updated_at     = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CustomerID, l.Code, l.Name, l.WarehouseName, l.IsActive, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert location: %w", err)
	}
	return nil
}

// ListByCustomer lista las ubicaciones del cliente en orden estable por código.
func (r *LocationRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Location, error) {
	query := `
		SELECT id, customer_id, code, name, warehouse_name, is_active, created_at, updated_at
		FROM locations WHERE customer_id = $1 ORDER BY code`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.CustomerID, &l.Code, &l.Name, &l.WarehouseName,
			&l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
