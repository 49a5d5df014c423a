package ports

import (
	"context"
	"time"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// LowStockPDFGenerator es el puerto para la exportación PDF del reporte de
// stock bajo. La implementación concreta usa Maroto; para tests se mockea.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, customer *entity.Customer, items []entity.LowStockItem, generatedAt time.Time) ([]byte, error)
}
