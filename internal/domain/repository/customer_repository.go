package repository

import (
	"context"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// ListActive devuelve los clientes activos en orden estable (por nombre)
	// para que los ciclos los procesen siempre en el mismo orden.
	ListActive(ctx context.Context) ([]*entity.Customer, error)
}
