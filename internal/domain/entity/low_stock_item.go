package entity

// LowStockItem es una fila del reporte de stock bajo: un par
// (producto, ubicación) cuya disponibilidad cruzó su umbral efectivo.
// Existe solo durante una pasada de evaluación; el core nunca lo persiste.
type LowStockItem struct {
	ProductSKU        string
	ProductName       string
	LocationName      string
	CurrentQuantity   int
	ThresholdQuantity int
}
