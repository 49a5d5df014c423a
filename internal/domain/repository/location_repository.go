package repository

import (
	"context"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
// UpsertByCode deduplica por la clave natural (customer_id, code).
type LocationRepository interface {
	UpsertByCode(ctx context.Context, location *entity.Location) error
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Location, error)
}
