package ports

import (
	"context"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// AlertNotifier es el puerto de salida para entregar alertas de stock bajo.
// El core no asume nada sobre el mecanismo ni el éxito de la entrega; items
// llega ya ordenado de forma determinista por el evaluador.
type AlertNotifier interface {
	SendLowStockAlert(ctx context.Context, customer *entity.Customer, items []entity.LowStockItem) error
}
