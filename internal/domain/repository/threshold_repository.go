package repository

import (
	"context"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// ThresholdRepository define el puerto de lectura de reglas de umbral (DIP).
// Las reglas las muta la administración del cliente (fuera de este servicio);
// el evaluador solo las lee.
type ThresholdRepository interface {
	ListActiveByCustomer(ctx context.Context, customerID string) ([]*entity.ThresholdRule, error)
}
