package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/inventory"
)

const testCustomerID = "cust-1"

func row(sku, productID, locationID, locationCode, locationName string, available int) inventory.StockRow {
	return inventory.StockRow{
		ProductID:    productID,
		SKU:          sku,
		ProductName:  "Producto " + sku,
		LocationID:   locationID,
		LocationCode: locationCode,
		LocationName: locationName,
		Available:    available,
	}
}

func rule(productID, locationID string, threshold int, active bool) *entity.ThresholdRule {
	return &entity.ThresholdRule{
		ID:         "rule-" + productID + "-" + locationID,
		CustomerID: testCustomerID,
		ProductID:  productID,
		LocationID: locationID,
		Threshold:  threshold,
		IsActive:   active,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Precedencia de umbrales
// ──────────────────────────────────────────────────────────────────────────────

// Con default global 10 y regla de ubicación 3 para L2: cantidad 5 en L2 NO se
// marca (5 > 3), pero la misma cantidad en L1 SÍ (5 <= 10).
func TestEvaluateLowStock_ReglaDeUbicacionSobreescribeDefault(t *testing.T) {
	rows := []inventory.StockRow{
		row("SKU1", "p1", "l1", "L1", "Bodega Norte", 5),
		row("SKU1", "p1", "l2", "L2", "Bodega Sur", 5),
	}
	rules := []*entity.ThresholdRule{rule("p1", "l2", 3, true)}

	items := inventory.EvaluateLowStock(testCustomerID, rows, rules, 10)

	require.Len(t, items, 1, "solo la fila sin regla específica debe marcarse")
	assert.Equal(t, "Bodega Norte", items[0].LocationName)
	assert.Equal(t, 5, items[0].CurrentQuantity)
	assert.Equal(t, 10, items[0].ThresholdQuantity, "debe aplicar el default global")
}

// Una regla de producto sin ubicación actúa como default del producto y una
// regla con ubicación la sobreescribe solo para esa ubicación.
func TestEvaluateLowStock_ReglaDeProductoComoDefault(t *testing.T) {
	rows := []inventory.StockRow{
		row("SKU1", "p1", "l1", "L1", "", 7),
		row("SKU1", "p1", "l2", "L2", "", 7),
	}
	rules := []*entity.ThresholdRule{
		rule("p1", "", 8, true),   // default del producto: 7 <= 8 marca
		rule("p1", "l2", 2, true), // override en l2: 7 > 2 no marca
	}

	items := inventory.EvaluateLowStock(testCustomerID, rows, rules, 100)

	require.Len(t, items, 1)
	assert.Equal(t, "L1", items[0].LocationName, "sin nombre debe caer al código")
	assert.Equal(t, 8, items[0].ThresholdQuantity)
}

// Las reglas inactivas o de otro cliente se ignoran.
func TestEvaluateLowStock_IgnoraReglasInactivasYDeOtroCliente(t *testing.T) {
	rows := []inventory.StockRow{row("SKU1", "p1", "l1", "L1", "Norte", 5)}
	otra := rule("p1", "l1", 1, true)
	otra.CustomerID = "otro-cliente"
	rules := []*entity.ThresholdRule{
		rule("p1", "l1", 1, false), // inactiva: 5 > 1 no aplicaría
		otra,
	}

	items := inventory.EvaluateLowStock(testCustomerID, rows, rules, 10)

	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].ThresholdQuantity, "solo cuenta el default global")
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinismo y orden
// ──────────────────────────────────────────────────────────────────────────────

// Evaluar dos veces el mismo estado produce salidas idénticas y en el mismo
// orden (idempotencia sin cambios de estado).
func TestEvaluateLowStock_Idempotente(t *testing.T) {
	rows := []inventory.StockRow{
		row("SKU2", "p2", "l1", "L1", "Zeta", 0),
		row("SKU1", "p1", "l2", "L2", "Alfa", 1),
		row("SKU1", "p1", "l1", "L1", "Beta", 2),
	}

	first := inventory.EvaluateLowStock(testCustomerID, rows, nil, 5)
	second := inventory.EvaluateLowStock(testCustomerID, rows, nil, 5)

	assert.Equal(t, first, second, "misma entrada debe producir misma salida ordenada")
}

func TestEvaluateLowStock_OrdenPorSKUYLuegoUbicacion(t *testing.T) {
	rows := []inventory.StockRow{
		row("SKU2", "p2", "l1", "L1", "Zeta", 0),
		row("SKU1", "p1", "l2", "L2", "Beta", 0),
		row("SKU1", "p1", "l1", "L1", "Alfa", 0),
	}

	items := inventory.EvaluateLowStock(testCustomerID, rows, nil, 5)

	require.Len(t, items, 3)
	assert.Equal(t, "SKU1", items[0].ProductSKU)
	assert.Equal(t, "Alfa", items[0].LocationName)
	assert.Equal(t, "SKU1", items[1].ProductSKU)
	assert.Equal(t, "Beta", items[1].LocationName)
	assert.Equal(t, "SKU2", items[2].ProductSKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos borde
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluateLowStock_SinFilasDevuelveVacio(t *testing.T) {
	items := inventory.EvaluateLowStock(testCustomerID, nil, nil, 5)
	assert.Empty(t, items, "cliente sin inventario no es un error")
	assert.NotNil(t, items)
}

// Una cantidad negativa se compara como cualquier otro entero.
func TestEvaluateLowStock_CantidadNegativa(t *testing.T) {
	rows := []inventory.StockRow{row("SKU1", "p1", "l1", "L1", "Norte", -4)}

	items := inventory.EvaluateLowStock(testCustomerID, rows, nil, 0)

	require.Len(t, items, 1)
	assert.Equal(t, -4, items[0].CurrentQuantity)
}

// El umbral es inclusivo: cantidad == umbral marca la fila.
func TestEvaluateLowStock_UmbralInclusivo(t *testing.T) {
	rows := []inventory.StockRow{
		row("SKU1", "p1", "l1", "L1", "Norte", 5),
		row("SKU2", "p2", "l1", "L1", "Norte", 6),
	}

	items := inventory.EvaluateLowStock(testCustomerID, rows, nil, 5)

	require.Len(t, items, 1)
	assert.Equal(t, "SKU1", items[0].ProductSKU)
}
