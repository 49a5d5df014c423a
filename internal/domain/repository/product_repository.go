package repository

import (
	"context"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpsertBySKU deduplica por la clave natural (customer_id, sku): la ingesta
// repetida del mismo registro upstream no crea filas nuevas.
type ProductRepository interface {
	UpsertBySKU(ctx context.Context, product *entity.Product) error
	GetByCustomerAndSKU(ctx context.Context, customerID, sku string) (*entity.Product, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Product, error)
}
