package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// UpsertBySKU inserta o actualiza el producto por su clave natural
// (customer_id, sku). La ingesta repetida del mismo catálogo es idempotente.
func (r *ProductRepo) UpsertBySKU(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, customer_id, sku, description, long_description, classification, cost, retail_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), $9)
		ON CONFLICT (customer_id, sku) DO UPDATE SET
			description      = EXCLUDED.description,
			long_description = EXCLUDED.long_description,
			classification   = EXCLUDED.classification,
			cost             = EXCLUDED.cost,
			retail_price     = EXCLUDED.retail_price,
			updated_at       = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CustomerID, p.SKU, p.Description, p.LongDescription,
		p.Classification, p.Cost, p.RetailPrice, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// GetByCustomerAndSKU obtiene un producto por cliente y SKU.
func (r *ProductRepo) GetByCustomerAndSKU(ctx context.Context, customerID, sku string) (*entity.Product, error) {
	query := `
		SELECT id, customer_id, sku, description, long_description, classification, cost, retail_price, created_at, updated_at
		FROM products WHERE customer_id = $1 AND sku = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, customerID, sku).Scan(
		&p.ID, &p.CustomerID, &p.SKU, &p.Description, &p.LongDescription,
		&p.Classification, &p.Cost, &p.RetailPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}

// ListByCustomer lista productos por cliente con paginación, en orden estable por SKU.
func (r *ProductRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, customer_id, sku, description, long_description, classification, cost, retail_price, created_at, updated_at
		FROM products WHERE customer_id = $1 ORDER BY sku LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.SKU, &p.Description, &p.LongDescription,
			&p.Classification, &p.Cost, &p.RetailPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
