// Package inventory contiene la lógica de dominio pura sobre el stock
// sincronizado: sin I/O, determinista y repetible entre pasadas.
package inventory

import (
	"sort"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// StockRow es la entrada del evaluador: una fila de stock por
// (producto, ubicación) del cliente, con los nombres ya resueltos.
type StockRow struct {
	ProductID    string
	SKU          string
	ProductName  string
	LocationID   string
	LocationCode string
	LocationName string
	Available    int
}

// EvaluateLowStock calcula el conjunto de pares (producto, ubicación) cuya
// disponibilidad cruzó el umbral efectivo del cliente.
//
// Precedencia del umbral: regla activa para (producto, ubicación) exacta →
// regla activa de producto sin ubicación (default del producto) →
// defaultThreshold global. Un Available <= umbral marca la fila; las
// cantidades negativas se comparan como cualquier otro entero.
//
// El resultado se ordena ascendente por SKU y luego por nombre de ubicación
// (con fallback al código cuando no hay nombre), de modo que dos evaluaciones
// sobre el mismo estado producen salidas idénticas byte a byte.
func EvaluateLowStock(customerID string, rows []StockRow, rules []*entity.ThresholdRule, defaultThreshold int) []entity.LowStockItem {
	type ruleKey struct {
		productID  string
		locationID string
	}
	thresholds := make(map[ruleKey]int, len(rules))
	for _, r := range rules {
		if r == nil || !r.IsActive || r.CustomerID != customerID {
			continue
		}
		thresholds[ruleKey{r.ProductID, r.LocationID}] = r.Threshold
	}

	items := make([]entity.LowStockItem, 0)
	for _, row := range rows {
		threshold := defaultThreshold
		if t, ok := thresholds[ruleKey{row.ProductID, row.LocationID}]; ok {
			threshold = t
		} else if t, ok := thresholds[ruleKey{row.ProductID, ""}]; ok {
			threshold = t
		}
		if row.Available > threshold {
			continue
		}
		locationName := row.LocationName
		if locationName == "" {
			locationName = row.LocationCode
		}
		items = append(items, entity.LowStockItem{
			ProductSKU:        row.SKU,
			ProductName:       row.ProductName,
			LocationName:      locationName,
			CurrentQuantity:   row.Available,
			ThresholdQuantity: threshold,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].ProductSKU != items[j].ProductSKU {
			return items[i].ProductSKU < items[j].ProductSKU
		}
		return items[i].LocationName < items[j].LocationName
	})

	return items
}
